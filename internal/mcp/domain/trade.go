package domain

import (
	"context"
	"fmt"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// BuyTokenInput represents the MCP tool input for buying a token.
type BuyTokenInput struct {
	Mint        string  `json:"mint" jsonschema:"token mint address"`
	SolAmount   float64 `json:"sol_amount" jsonschema:"SOL to spend"`
	SlippageBps uint16  `json:"slippage_bps,omitempty" jsonschema:"slippage tolerance in basis points (default 500)"`
	Account     string  `json:"account,omitempty" jsonschema:"local account that signs and pays (default account when omitted)"`
}

// SellTokenInput represents the MCP tool input for selling a token.
type SellTokenInput struct {
	Mint        string  `json:"mint" jsonschema:"token mint address"`
	TokenAmount float64 `json:"token_amount" jsonschema:"tokens to sell, human-scale units"`
	SlippageBps uint16  `json:"slippage_bps,omitempty" jsonschema:"slippage tolerance in basis points (default 500)"`
	Account     string  `json:"account,omitempty" jsonschema:"local account that signs (default account when omitted)"`
}

// TradeResult represents the MCP tool output for a buy or sell.
type TradeResult struct {
	Mint      string  `json:"mint" jsonschema:"token mint address"`
	Amount    float64 `json:"amount" jsonschema:"amount traded (SOL for buys, tokens for sells)"`
	Signature string  `json:"signature" jsonschema:"transaction signature"`
	URL       string  `json:"url" jsonschema:"pump.fun coin page"`
}

// BuyTokenTool defines the MCP tool schema for buying.
func BuyTokenTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "buy_token",
		Description: "Buys a pump.fun token with SOL from a local account",
	}
}

// SellTokenTool defines the MCP tool schema for selling.
func SellTokenTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "sell_token",
		Description: "Sells a pump.fun token held by a local account",
	}
}

// BuyTokenHandler executes a buy.
func BuyTokenHandler(trading Trading, defaultAccount string) mcp.ToolHandlerFor[BuyTokenInput, TradeResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input BuyTokenInput) (*mcp.CallToolResult, TradeResult, error) {
		account := input.Account
		if account == "" {
			account = defaultAccount
		}

		runCtx, cancel := context.WithTimeout(ctx, tradeTimeout)
		defer cancel()

		trade, err := trading.Buy(runCtx, account, input.Mint, input.SolAmount, input.SlippageBps)
		if err != nil {
			return nil, TradeResult{}, fmt.Errorf("buy failed: %w", err)
		}
		return nil, tradeResult(trade.Mint, trade.Amount, trade.Signature), nil
	}
}

// SellTokenHandler executes a sell.
func SellTokenHandler(trading Trading, defaultAccount string) mcp.ToolHandlerFor[SellTokenInput, TradeResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input SellTokenInput) (*mcp.CallToolResult, TradeResult, error) {
		account := input.Account
		if account == "" {
			account = defaultAccount
		}

		runCtx, cancel := context.WithTimeout(ctx, tradeTimeout)
		defer cancel()

		trade, err := trading.Sell(runCtx, account, input.Mint, input.TokenAmount, input.SlippageBps)
		if err != nil {
			return nil, TradeResult{}, fmt.Errorf("sell failed: %w", err)
		}
		return nil, tradeResult(trade.Mint, trade.Amount, trade.Signature), nil
	}
}

func tradeResult(mint string, amount float64, signature string) TradeResult {
	return TradeResult{
		Mint:      mint,
		Amount:    amount,
		Signature: signature,
		URL:       CoinURL(mint),
	}
}
