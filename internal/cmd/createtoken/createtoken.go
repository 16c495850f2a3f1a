// Package createtoken implements the create-token command.
package createtoken

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

// Config holds create-token command configuration.
type Config struct {
	RPCEndpoint string `env:"PUMPFUN_RPC_ENDPOINT" envDefault:"https://api.mainnet-beta.solana.com"`
	KeysDir     string `env:"PUMPFUN_KEYS_DIR"     envDefault:".keys"`
	Account     string `env:"PUMPFUN_ACCOUNT"      envDefault:"default"`
	Name        string
	Symbol      string
	URI         string
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.RPCEndpoint, "rpc-endpoint", cfg.RPCEndpoint, "Solana RPC endpoint URL")
	fs.StringVar(&cfg.KeysDir, "keys-dir", cfg.KeysDir, "directory holding account keypair files")
	fs.StringVar(&cfg.Account, "account", cfg.Account, "account that signs and pays for the creation")
	fs.StringVar(&cfg.Name, "name", "", "token name")
	fs.StringVar(&cfg.Symbol, "symbol", "", "token ticker symbol")
	fs.StringVar(&cfg.URI, "uri", "", "metadata JSON URI")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run creates the token and prints the mint address and signature.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	store := keystore.New(cfg.KeysDir)
	trader := pumpfun.New(chain.NewProvider(cfg.RPCEndpoint), store)
	created, err := trader.CreateToken(ctx, cfg.Account, cfg.Name, cfg.Symbol, cfg.URI)
	if err != nil {
		return err
	}
	fmt.Fprint(out, Format(created))
	return nil
}

// Format renders a creation result as human-readable text.
func Format(created pumpfun.CreateResult) string {
	return fmt.Sprintf("Token created: %s\nSignature: %s\nMint keypair: %s\nURL: %s\n",
		created.Mint, created.Signature, created.KeypairPath, domain.CoinURL(created.Mint))
}
