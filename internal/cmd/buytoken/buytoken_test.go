package buytoken

import (
	"flag"
	"strings"
	"testing"

	"github.com/gagliardetto/solana-go"

	"github.com/noahgsolomon/pumpfun-mcp-server/internal/errors"
	"github.com/noahgsolomon/pumpfun-mcp-server/internal/pumpfun"
)

func TestParseConfigRejectsOversizedSlippage(t *testing.T) {
	fs := flag.NewFlagSet("buy-token", flag.ContinueOnError)
	_, err := ParseConfig(fs, []string{"-slippage-bps", "65536"})
	if !errors.IsCode(err, errors.CodeValidation) {
		t.Fatalf("ParseConfig() error = %v, want %s", err, errors.CodeValidation)
	}
}

func TestParseConfigFlags(t *testing.T) {
	fs := flag.NewFlagSet("buy-token", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{
		"-mint", "So11111111111111111111111111111111111111112",
		"-sol", "0.25", "-slippage-bps", "250", "-account", "trader",
	})
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.Mint != "So11111111111111111111111111111111111111112" {
		t.Fatalf("Mint = %q", cfg.Mint)
	}
	if cfg.SolAmount != 0.25 {
		t.Fatalf("SolAmount = %v, want 0.25", cfg.SolAmount)
	}
	if cfg.SlippageBps != 250 {
		t.Fatalf("SlippageBps = %d, want 250", cfg.SlippageBps)
	}
	if cfg.Account != "trader" {
		t.Fatalf("Account = %q", cfg.Account)
	}
}

func TestParseConfigEnvOverrides(t *testing.T) {
	t.Setenv("PUMPFUN_RPC_ENDPOINT", "http://localhost:8899")
	t.Setenv("PUMPFUN_ACCOUNT", "dev")

	fs := flag.NewFlagSet("buy-token", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.RPCEndpoint != "http://localhost:8899" {
		t.Fatalf("RPCEndpoint = %q", cfg.RPCEndpoint)
	}
	if cfg.Account != "dev" {
		t.Fatalf("Account = %q", cfg.Account)
	}
}

func TestFormat(t *testing.T) {
	mint := solana.NewWallet().PublicKey().String()
	got := Format(pumpfun.TradeResult{Mint: mint, Amount: 0.5, Signature: "3xyz"})

	for _, want := range []string{mint, "0.5 SOL", "3xyz", "https://pump.fun/coin/" + mint} {
		if !strings.Contains(got, want) {
			t.Errorf("Format() missing %q in %q", want, got)
		}
	}
}
