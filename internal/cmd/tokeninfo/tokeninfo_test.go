package tokeninfo

import (
	"flag"
	"strings"
	"testing"

	"github.com/gagliardetto/solana-go"

	"github.com/noahgsolomon/pumpfun-mcp-server/internal/pumpfun"
)

func TestParseConfigMintFlag(t *testing.T) {
	fs := flag.NewFlagSet("token-info", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"-mint", "So11111111111111111111111111111111111111112"})
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.Mint != "So11111111111111111111111111111111111111112" {
		t.Fatalf("Mint = %q", cfg.Mint)
	}
	if cfg.RPCEndpoint != "https://api.mainnet-beta.solana.com" {
		t.Fatalf("RPCEndpoint = %q", cfg.RPCEndpoint)
	}
}

func TestParseConfigMintPositional(t *testing.T) {
	fs := flag.NewFlagSet("token-info", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{"So11111111111111111111111111111111111111112"})
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.Mint != "So11111111111111111111111111111111111111112" {
		t.Fatalf("Mint = %q", cfg.Mint)
	}
}

func TestFormat(t *testing.T) {
	mint := solana.NewWallet().PublicKey().String()
	got := Format(pumpfun.TokenInfo{Mint: mint, Supply: 1000, Raw: "1000000000", Decimals: 6})

	for _, want := range []string{mint, "1000000000", "https://pump.fun/coin/" + mint} {
		if !strings.Contains(got, want) {
			t.Errorf("Format() missing %q in %q", want, got)
		}
	}
}
