package listaccounts

import (
	"bytes"
	"flag"
	"strings"
	"testing"

	"github.com/noahgsolomon/pumpfun-mcp-server/internal/keystore"
)

func TestParseConfig(t *testing.T) {
	t.Setenv("PUMPFUN_KEYS_DIR", "/var/keys")

	fs := flag.NewFlagSet("list-accounts", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.KeysDir != "/var/keys" {
		t.Fatalf("KeysDir = %q, want /var/keys", cfg.KeysDir)
	}
}

func TestRunMissingDirectory(t *testing.T) {
	var out bytes.Buffer
	if err := Run(Config{KeysDir: t.TempDir() + "/absent"}, &out); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if got := out.String(); got != "No accounts found.\n" {
		t.Fatalf("Run() output = %q", got)
	}
}

func TestRunListsAccounts(t *testing.T) {
	dir := t.TempDir()
	store := keystore.New(dir)
	alice, err := store.GetOrCreate("alice")
	if err != nil {
		t.Fatalf("GetOrCreate(alice) error = %v", err)
	}
	if _, err := store.GetOrCreate("bob"); err != nil {
		t.Fatalf("GetOrCreate(bob) error = %v", err)
	}

	var out bytes.Buffer
	if err := Run(Config{KeysDir: dir}, &out); err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	got := out.String()
	if !strings.Contains(got, "Accounts (2):") {
		t.Errorf("output missing count header: %q", got)
	}
	if !strings.Contains(got, "alice: "+alice.PublicKey.String()) {
		t.Errorf("output missing alice entry: %q", got)
	}
}

func TestFormatCorruptEntry(t *testing.T) {
	got := Format([]keystore.Entry{{Name: "broken", PublicKey: keystore.ErrReadingKeypair}})
	if !strings.Contains(got, "broken: "+keystore.ErrReadingKeypair) {
		t.Fatalf("Format() = %q, want corrupt placeholder", got)
	}
}
