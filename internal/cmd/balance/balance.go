// Package balance implements the balance command, covering both native SOL
// balances and per-mint token balances.
package balance

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/gagliardetto/solana-go"

	"github.com/noahgsolomon/pumpfun-mcp-server/internal/chain"
	"github.com/noahgsolomon/pumpfun-mcp-server/internal/keystore"
	"github.com/noahgsolomon/pumpfun-mcp-server/internal/platform/config"
	"github.com/noahgsolomon/pumpfun-mcp-server/internal/pumpfun"
)

// Config holds balance command configuration.
type Config struct {
	RPCEndpoint string `env:"PUMPFUN_RPC_ENDPOINT" envDefault:"https://api.mainnet-beta.solana.com"`
	KeysDir     string `env:"PUMPFUN_KEYS_DIR"     envDefault:".keys"`
	Account     string `env:"PUMPFUN_ACCOUNT"      envDefault:"default"`
	Address     string
	Mint        string
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.RPCEndpoint, "rpc-endpoint", cfg.RPCEndpoint, "Solana RPC endpoint URL")
	fs.StringVar(&cfg.KeysDir, "keys-dir", cfg.KeysDir, "directory holding account keypair files")
	fs.StringVar(&cfg.Account, "account", cfg.Account, "local account name to query")
	fs.StringVar(&cfg.Address, "address", "", "query this base58 address instead of a local account")
	fs.StringVar(&cfg.Mint, "mint", "", "report the balance of this token mint instead of SOL")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run resolves the owner and prints either the SOL balance or, when a mint
// is given, the token balance.
func Run(ctx context.Context, cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	provider := chain.NewProvider(cfg.RPCEndpoint)

	owner, err := resolveOwner(cfg)
	if err != nil {
		return err
	}

	if cfg.Mint == "" {
		lamports, err := provider.SOLBalance(ctx, owner)
		if err != nil {
			return err
		}
		fmt.Fprint(out, FormatSOL(owner, lamports))
		return nil
	}

	mint, err := pumpfun.ParseAddress(cfg.Mint)
	if err != nil {
		return err
	}
	held, found, err := provider.TokenBalance(ctx, mint, owner)
	if err != nil {
		return err
	}
	fmt.Fprint(out, FormatToken(owner, mint, held, found))
	return nil
}

// resolveOwner picks the explicit address when given, otherwise loads (or
// creates) the named local account.
func resolveOwner(cfg Config) (solana.PublicKey, error) {
	if cfg.Address != "" {
		return pumpfun.ParseAddress(cfg.Address)
	}
	id, err := keystore.New(cfg.KeysDir).GetOrCreate(cfg.Account)
	if err != nil {
		return solana.PublicKey{}, err
	}
	return id.PublicKey, nil
}

// FormatSOL renders a native balance as human-readable text.
func FormatSOL(owner solana.PublicKey, lamports uint64) string {
	return fmt.Sprintf("Address: %s\nBalance: %.9f SOL (%d lamports)\n",
		owner, float64(lamports)/float64(solana.LAMPORTS_PER_SOL), lamports)
}

// FormatToken renders a token balance, with an explicit line for the
// no-token-account case so it cannot be read as a zero holding.
func FormatToken(owner, mint solana.PublicKey, held chain.Balance, found bool) string {
	if !found {
		return fmt.Sprintf("Address: %s\nMint: %s\nNo token account found for this mint.\n", owner, mint)
	}
	return fmt.Sprintf("Address: %s\nMint: %s\nBalance: %v (raw %s, %d decimals)\n",
		owner, mint, held.Amount, held.Raw, held.Decimals)
}
