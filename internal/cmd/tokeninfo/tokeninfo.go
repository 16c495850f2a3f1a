// Package tokeninfo implements the token-info command.
package tokeninfo

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/noahgsolomon/pumpfun-mcp-server/internal/chain"
	"github.com/noahgsolomon/pumpfun-mcp-server/internal/keystore"
	"github.com/noahgsolomon/pumpfun-mcp-server/internal/mcp/domain"
	"github.com/noahgsolomon/pumpfun-mcp-server/internal/platform/config"
	"github.com/noahgsolomon/pumpfun-mcp-server/internal/pumpfun"
)

// Config holds token-info command configuration.
type Config struct {
	RPCEndpoint string `env:"PUMPFUN_RPC_ENDPOINT" envDefault:"https://api.mainnet-beta.solana.com"`
	KeysDir     string `env:"PUMPFUN_KEYS_DIR"     envDefault:".keys"`
	Mint        string
}

// ParseConfig parses environment and flags into a Config. The mint may be
// given as a flag or as the first positional argument.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.RPCEndpoint, "rpc-endpoint", cfg.RPCEndpoint, "Solana RPC endpoint URL")
	fs.StringVar(&cfg.Mint, "mint", "", "token mint address")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if cfg.Mint == "" && fs.NArg() > 0 {
		cfg.Mint = fs.Arg(0)
	}
	return cfg, nil
}

// Run fetches and prints token info for the configured mint.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	trader := pumpfun.New(chain.NewProvider(cfg.RPCEndpoint), keystore.New(cfg.KeysDir))
	info, err := trader.Info(ctx, cfg.Mint)
	if err != nil {
		return err
	}
	fmt.Fprint(out, Format(info))
	return nil
}

// Format renders token info as human-readable text.
func Format(info pumpfun.TokenInfo) string {
	return fmt.Sprintf("Token: %s\nSupply: %v (raw %s, %d decimals)\nURL: %s\n",
		info.Mint, info.Supply, info.Raw, info.Decimals, domain.CoinURL(info.Mint))
}
