package mcp

import (
	"flag"
	"testing"
)

func TestParseConfigDefaults(t *testing.T) {
	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.RPCEndpoint != "https://api.mainnet-beta.solana.com" {
		t.Fatalf("expected default endpoint, got %q", cfg.RPCEndpoint)
	}
	if cfg.KeysDir != ".keys" {
		t.Fatalf("expected default keys dir, got %q", cfg.KeysDir)
	}
	if cfg.Account != "default" {
		t.Fatalf("expected default account, got %q", cfg.Account)
	}
	if cfg.Transport != "stdio" {
		t.Fatalf("expected default transport stdio, got %q", cfg.Transport)
	}
	if cfg.HTTPAddr != "localhost:8081" {
		t.Fatalf("expected default http addr, got %q", cfg.HTTPAddr)
	}
}

func TestParseConfigEnvOverrides(t *testing.T) {
	t.Setenv("PUMPFUN_RPC_ENDPOINT", "https://rpc.example.com")
	t.Setenv("PUMPFUN_KEYS_DIR", "/tmp/keys")
	t.Setenv("PUMPFUN_MCP_TRANSPORT", "http")

	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	cfg, err := ParseConfig(fs, nil)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.RPCEndpoint != "https://rpc.example.com" {
		t.Fatalf("expected env endpoint, got %q", cfg.RPCEndpoint)
	}
	if cfg.KeysDir != "/tmp/keys" {
		t.Fatalf("expected env keys dir, got %q", cfg.KeysDir)
	}
	if cfg.Transport != "http" {
		t.Fatalf("expected env transport, got %q", cfg.Transport)
	}
}

func TestParseConfigFlagsBeatEnv(t *testing.T) {
	t.Setenv("PUMPFUN_MCP_HTTP_ADDR", "env-addr")

	fs := flag.NewFlagSet("mcp", flag.ContinueOnError)
	args := []string{"-http-addr", "flag-addr", "-transport", "http", "-account", "trader"}
	cfg, err := ParseConfig(fs, args)
	if err != nil {
		t.Fatalf("parse config: %v", err)
	}
	if cfg.HTTPAddr != "flag-addr" {
		t.Fatalf("expected flag addr to win, got %q", cfg.HTTPAddr)
	}
	if cfg.Account != "trader" {
		t.Fatalf("expected flag account, got %q", cfg.Account)
	}
}
