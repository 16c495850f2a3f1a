package domain

import (
	"context"
	"fmt"
	"time"

	"github.com/modelcontextprotocol/go-sdk/mcp"
)

// tradeTimeout bounds operations that submit transactions. Confirmation can
// take several block times, so it is much longer than queryTimeout.
const tradeTimeout = 90 * time.Second

// TokenInfoInput represents the MCP tool input for token info.
type TokenInfoInput struct {
	Mint string `json:"mint" jsonschema:"token mint address"`
}

// TokenInfoResult represents the MCP tool output for token info.
type TokenInfoResult struct {
	Mint     string  `json:"mint" jsonschema:"token mint address"`
	Supply   float64 `json:"supply" jsonschema:"total supply in human-scale units"`
	Decimals uint8   `json:"decimals" jsonschema:"mint decimals"`
	URL      string  `json:"url" jsonschema:"pump.fun coin page"`
}

// CreateTokenInput represents the MCP tool input for token creation.
type CreateTokenInput struct {
	Name    string `json:"name" jsonschema:"token name"`
	Symbol  string `json:"symbol" jsonschema:"token ticker symbol"`
	URI     string `json:"uri,omitempty" jsonschema:"metadata JSON URI"`
	Account string `json:"account,omitempty" jsonschema:"local account that signs and pays (default account when omitted)"`
}

// CreateTokenResult represents the MCP tool output for token creation.
type CreateTokenResult struct {
	Mint      string `json:"mint" jsonschema:"new token mint address"`
	Signature string `json:"signature" jsonschema:"transaction signature"`
	URL       string `json:"url" jsonschema:"pump.fun coin page"`
}

// TokenInfoTool defines the MCP tool schema for token info.
func TokenInfoTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_token_info",
		Description: "Fetches supply and decimals for a token mint",
	}
}

// CreateTokenTool defines the MCP tool schema for token creation.
func CreateTokenTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "create_token",
		Description: "Creates a new pump.fun token signed by a local account",
	}
}

// TokenInfoHandler fetches on-chain facts about a mint.
func TokenInfoHandler(trading Trading) mcp.ToolHandlerFor[TokenInfoInput, TokenInfoResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TokenInfoInput) (*mcp.CallToolResult, TokenInfoResult, error) {
		runCtx, cancel := context.WithTimeout(ctx, queryTimeout)
		defer cancel()

		info, err := trading.Info(runCtx, input.Mint)
		if err != nil {
			return nil, TokenInfoResult{}, fmt.Errorf("token info failed: %w", err)
		}
		return nil, TokenInfoResult{
			Mint:     info.Mint,
			Supply:   info.Supply,
			Decimals: info.Decimals,
			URL:      CoinURL(info.Mint),
		}, nil
	}
}

// CreateTokenHandler launches a new token.
func CreateTokenHandler(trading Trading, defaultAccount string) mcp.ToolHandlerFor[CreateTokenInput, CreateTokenResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input CreateTokenInput) (*mcp.CallToolResult, CreateTokenResult, error) {
		account := input.Account
		if account == "" {
			account = defaultAccount
		}

		runCtx, cancel := context.WithTimeout(ctx, tradeTimeout)
		defer cancel()

		created, err := trading.CreateToken(runCtx, account, input.Name, input.Symbol, input.URI)
		if err != nil {
			return nil, CreateTokenResult{}, fmt.Errorf("create token failed: %w", err)
		}
		return nil, CreateTokenResult{
			Mint:      created.Mint,
			Signature: created.Signature,
			URL:       CoinURL(created.Mint),
		}, nil
	}
}

// CoinURL renders the pump.fun page for a mint.
func CoinURL(mint string) string {
	return "https://pump.fun/coin/" + mint
}
