// Package listaccounts implements the list-accounts command.
package listaccounts

import (
	"flag"
	"fmt"
	"io"
	"strings"

	"github.com/noahgsolomon/pumpfun-mcp-server/internal/keystore"
	"github.com/noahgsolomon/pumpfun-mcp-server/internal/platform/config"
)

// Config holds list-accounts command configuration.
type Config struct {
	KeysDir string `env:"PUMPFUN_KEYS_DIR" envDefault:".keys"`
}

// ParseConfig parses environment and flags into a Config.
func ParseConfig(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := config.ParseEnv(&cfg); err != nil {
		return Config{}, err
	}

	fs.StringVar(&cfg.KeysDir, "keys-dir", cfg.KeysDir, "directory holding account keypair files")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Run lists the local account keypairs.
func Run(cfg Config, out io.Writer) error {
	if out == nil {
		out = io.Discard
	}
	entries, err := keystore.New(cfg.KeysDir).List()
	if err != nil {
		return err
	}
	fmt.Fprint(out, Format(entries))
	return nil
}

// Format renders a listing as human-readable text.
func Format(entries []keystore.Entry) string {
	if len(entries) == 0 {
		return "No accounts found.\n"
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Accounts (%d):\n", len(entries))
	for _, entry := range entries {
		fmt.Fprintf(&b, "  %s: %s\n", entry.Name, entry.PublicKey)
	}
	return b.String()
}
