package selltoken

import (
	"flag"
	"strings"
	"testing"

	"github.com/gagliardetto/solana-go"

	"github.com/noahgsolomon/pumpfun-mcp-server/internal/errors"
	"github.com/noahgsolomon/pumpfun-mcp-server/internal/pumpfun"
)

func TestParseConfigRejectsOversizedSlippage(t *testing.T) {
	fs := flag.NewFlagSet("sell-token", flag.ContinueOnError)
	_, err := ParseConfig(fs, []string{"-slippage-bps", "70000"})
	if !errors.IsCode(err, errors.CodeValidation) {
		t.Fatalf("ParseConfig() error = %v, want %s", err, errors.CodeValidation)
	}
}

func TestParseConfigFlags(t *testing.T) {
	fs := flag.NewFlagSet("sell-token", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, []string{
		"-mint", "So11111111111111111111111111111111111111112",
		"-amount", "1500", "-slippage-bps", "100",
	})
	if err != nil {
		t.Fatalf("ParseConfig() error = %v", err)
	}
	if cfg.TokenAmount != 1500 {
		t.Fatalf("TokenAmount = %v, want 1500", cfg.TokenAmount)
	}
	if cfg.SlippageBps != 100 {
		t.Fatalf("SlippageBps = %d, want 100", cfg.SlippageBps)
	}
	if cfg.Account != "default" {
		t.Fatalf("Account = %q, want default", cfg.Account)
	}
}

func TestFormat(t *testing.T) {
	mint := solana.NewWallet().PublicKey().String()
	got := Format(pumpfun.TradeResult{Mint: mint, Amount: 1500, Signature: "4abc"})

	for _, want := range []string{"1500 tokens", mint, "4abc"} {
		if !strings.Contains(got, want) {
			t.Errorf("Format() missing %q in %q", want, got)
		}
	}
}
