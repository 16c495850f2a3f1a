// Package buytoken implements the buy-token command.
package buytoken

import (
	"context"
	"flag"
	"fmt"
	"io"
	"math"

	"github.com/noahgsolomon/pumpfun-mcp-server/internal/chain"
	"github.com/noahgsolomon/pumpfun-mcp-server/internal/errors"
	"github.com/noahgsolomon/pumpfun-mcp-server/internal/keystore"
	"github.com/noahgsolomon/pumpfun-mcp-server/internal/mcp/domain"
	"github.com/noahgsolomon/pumpfun-mcp-server/internal/platform/config"
	"github.com/noahgsolomon/pumpfun-mcp-server/internal/pumpfun"
)

// Config holds buy-token command configuration.
type Config struct {
	RPCEndpoint string `env:"PUMPFUN_RPC_ENDPOINT" envDefault:"https://api.mainnet-beta.solana.com"`
	KeysDir     string `env:"PUMPFUN_KEYS_DIR"     envDefault:".keys"`
	Account     string `env:"PUMPFUN_ACCOUNT"      envDefault:"default"`
	Mint        string
	SolAmount   float64
	SlippageBps uint
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.RPCEndpoint, "rpc-endpoint", cfg.RPCEndpoint, "Solana RPC endpoint URL")
	fs.StringVar(&cfg.KeysDir, "keys-dir", cfg.KeysDir, "directory holding account keypair files")
	fs.StringVar(&cfg.Account, "account", cfg.Account, "account that signs and pays")
	fs.StringVar(&cfg.Mint, "mint", "", "token mint address")
	fs.Float64Var(&cfg.SolAmount, "sol", 0, "SOL to spend")
	fs.UintVar(&cfg.SlippageBps, "slippage-bps", 0, "slippage tolerance in basis points (default 500)")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	if cfg.SlippageBps > math.MaxUint16 {
		return Config{}, errors.New(errors.CodeValidation,
			fmt.Sprintf("slippage-bps %d exceeds the maximum of %d", cfg.SlippageBps, math.MaxUint16))
	}
	return cfg, nil
}

// Run executes the buy and prints the result.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	store := keystore.New(cfg.KeysDir)
	trader := pumpfun.New(chain.NewProvider(cfg.RPCEndpoint), store)
	trade, err := trader.Buy(ctx, cfg.Account, cfg.Mint, cfg.SolAmount, uint16(cfg.SlippageBps))
	if err != nil {
		return err
	}
	fmt.Fprint(out, Format(trade))
	return nil
}

// Format renders a buy result as human-readable text.
func Format(trade pumpfun.TradeResult) string {
	return fmt.Sprintf("Bought %s for %v SOL\nSignature: %s\nURL: %s\n",
		trade.Mint, trade.Amount, trade.Signature, domain.CoinURL(trade.Mint))
}
