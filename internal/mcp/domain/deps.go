// Package domain defines the MCP tool schemas and handlers for the pump.fun
// operations. Handlers accept narrow interfaces over the keypair store, the
// balance resolver and the trader so tests can substitute fakes.
package domain

import (
	"context"

	"github.com/gagliardetto/solana-go"

	"github.com/noahgsolomon/pumpfun-mcp-server/internal/chain"
	"github.com/noahgsolomon/pumpfun-mcp-server/internal/keystore"
	"github.com/noahgsolomon/pumpfun-mcp-server/internal/pumpfun"
)

// Accounts is the keypair store surface the tools need.
type Accounts interface {
	GetOrCreate(name string) (keystore.Identity, error)
	List() ([]keystore.Entry, error)
}

// Balances is the balance resolver surface the tools need.
type Balances interface {
	TokenBalance(ctx context.Context, mint, owner solana.PublicKey) (chain.Balance, bool, error)
	SOLBalance(ctx context.Context, owner solana.PublicKey) (uint64, error)
}

// Trading is the trading surface the tools need.
type Trading interface {
	CreateToken(ctx context.Context, account, name, symbol, uri string) (pumpfun.CreateResult, error)
	Buy(ctx context.Context, account, mint string, solAmount float64, slippageBps uint16) (pumpfun.TradeResult, error)
	Sell(ctx context.Context, account, mint string, tokenAmount float64, slippageBps uint16) (pumpfun.TradeResult, error)
	Info(ctx context.Context, mint string) (pumpfun.TokenInfo, error)
}

var (
	_ Accounts = (*keystore.Store)(nil)
	_ Balances = (*chain.Provider)(nil)
	_ Trading  = (*pumpfun.Trader)(nil)
)
