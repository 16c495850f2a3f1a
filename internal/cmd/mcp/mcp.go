// Package mcp parses MCP command flags and selects stdio or HTTP transport.
package mcp

import (
	"context"
	"flag"
	"log"
	"time"

	"github.com/noahgsolomon/pumpfun-mcp-server/internal/mcp/service"
	"github.com/noahgsolomon/pumpfun-mcp-server/internal/platform/config"
	"github.com/noahgsolomon/pumpfun-mcp-server/internal/platform/otel"
)

// Config holds MCP command configuration.
type Config struct {
	RPCEndpoint string `env:"PUMPFUN_RPC_ENDPOINT"  envDefault:"https://api.mainnet-beta.solana.com"`
	KeysDir     string `env:"PUMPFUN_KEYS_DIR"      envDefault:".keys"`
	Account     string `env:"PUMPFUN_ACCOUNT"       envDefault:"default"`
	Transport   string `env:"PUMPFUN_MCP_TRANSPORT" envDefault:"stdio"`
	HTTPAddr    string `env:"PUMPFUN_MCP_HTTP_ADDR" envDefault:"localhost:8081"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.RPCEndpoint, "rpc-endpoint", cfg.RPCEndpoint, "Solana RPC endpoint URL")
	fs.StringVar(&cfg.KeysDir, "keys-dir", cfg.KeysDir, "directory holding account keypair files")
	fs.StringVar(&cfg.Account, "account", cfg.Account, "default account name for tools that omit one")
	fs.StringVar(&cfg.Transport, "transport", cfg.Transport, "transport type: stdio or http")
	fs.StringVar(&cfg.HTTPAddr, "http-addr", cfg.HTTPAddr, "HTTP server address (for http transport)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run starts the MCP server.
func Run(ctx context.Context, cfg Config) error {
	shutdown, err := otel.Setup(ctx, "pumpfun-mcp")
	if err != nil {
		return err
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(shutdownCtx); err != nil {
			log.Printf("otel shutdown: %v", err)
		}
	}()

	return service.Run(ctx, service.Config{
		RPCEndpoint:    cfg.RPCEndpoint,
		KeysDir:        cfg.KeysDir,
		DefaultAccount: cfg.Account,
		Transport:      service.TransportKind(cfg.Transport),
		HTTPAddr:       cfg.HTTPAddr,
	})
}
