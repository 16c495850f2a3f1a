package domain

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/noahgsolomon/pumpfun-mcp-server/internal/pumpfun"
)

// queryTimeout bounds read-only RPC lookups issued by tool handlers.
const queryTimeout = 15 * time.Second

// ListAccountsInput represents the MCP tool input for listing accounts.
type ListAccountsInput struct{}

// AccountEntry is one local account in a listing.
type AccountEntry struct {
	Name      string `json:"name" jsonschema:"account name"`
	PublicKey string `json:"public_key" jsonschema:"base58 public key, or an error marker when the keypair file is unreadable"`
}

// ListAccountsResult represents the MCP tool output for listing accounts.
type ListAccountsResult struct {
	Accounts []AccountEntry `json:"accounts" jsonschema:"local accounts under the keys directory"`
}

// AccountBalanceInput represents the MCP tool input for a native balance.
type AccountBalanceInput struct {
	Account string `json:"account,omitempty" jsonschema:"local account name (default account when omitted)"`
	Address string `json:"address,omitempty" jsonschema:"base58 address to query instead of a local account"`
}

// AccountBalanceResult represents the MCP tool output for a native balance.
type AccountBalanceResult struct {
	Address  string  `json:"address" jsonschema:"base58 address the balance belongs to"`
	SOL      float64 `json:"sol" jsonschema:"native balance in SOL"`
	Lamports uint64  `json:"lamports" jsonschema:"native balance in lamports"`
}

// TokenBalanceInput represents the MCP tool input for a token balance.
type TokenBalanceInput struct {
	Mint    string `json:"mint" jsonschema:"token mint address"`
	Account string `json:"account,omitempty" jsonschema:"local account name (default account when omitted)"`
	Address string `json:"address,omitempty" jsonschema:"base58 owner address to query instead of a local account"`
}

// TokenBalanceResult represents the MCP tool output for a token balance.
// Found distinguishes "no token account for this mint" from a zero holding.
type TokenBalanceResult struct {
	Mint    string  `json:"mint" jsonschema:"token mint address"`
	Owner   string  `json:"owner" jsonschema:"owner address"`
	Found   bool    `json:"found" jsonschema:"false when the owner has no token account for the mint"`
	Balance float64 `json:"balance" jsonschema:"human-scale token balance; zero when absent"`
}

// ListAccountsTool defines the MCP tool schema for listing local accounts.
func ListAccountsTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "list_accounts",
		Description: "Lists the local account keypairs in the keys directory",
	}
}

// AccountBalanceTool defines the MCP tool schema for native balance lookups.
func AccountBalanceTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_account_balance",
		Description: "Reports the SOL balance of a local account or an arbitrary address",
	}
}

// AccountListResource defines the readable MCP resource for local accounts.
func AccountListResource() *mcp.Resource {
	return &mcp.Resource{
		Name:        "account_list",
		Title:       "Local accounts",
		Description: "Readable listing of the local account keypairs",
		MIMEType:    "application/json",
		URI:         "accounts://list",
	}
}

// AccountListResourceHandler returns the account listing as a JSON resource.
func AccountListResourceHandler(accounts Accounts) mcp.ResourceHandler {
	return func(ctx context.Context, req *mcp.ReadResourceRequest) (*mcp.ReadResourceResult, error) {
		uri := AccountListResource().URI
		if req != nil && req.Params != nil && req.Params.URI != "" {
			uri = req.Params.URI
		}

		entries, err := accounts.List()
		if err != nil {
			return nil, fmt.Errorf("list accounts failed: %w", err)
		}
		payload := ListAccountsResult{Accounts: make([]AccountEntry, 0, len(entries))}
		for _, entry := range entries {
			payload.Accounts = append(payload.Accounts, AccountEntry{Name: entry.Name, PublicKey: entry.PublicKey})
		}

		data, err := json.MarshalIndent(payload, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal account list: %w", err)
		}
		return &mcp.ReadResourceResult{
			Contents: []*mcp.ResourceContents{
				{
					URI:      uri,
					MIMEType: "application/json",
					Text:     string(data),
				},
			},
		}, nil
	}
}

// TokenBalanceTool defines the MCP tool schema for token balance lookups.
func TokenBalanceTool() *mcp.Tool {
	return &mcp.Tool{
		Name:        "get_token_balance",
		Description: "Reports one owner's holding of a token mint, distinguishing a missing token account from a zero balance",
	}
}

// ListAccountsHandler lists the keypairs known to the store.
func ListAccountsHandler(accounts Accounts) mcp.ToolHandlerFor[ListAccountsInput, ListAccountsResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, _ ListAccountsInput) (*mcp.CallToolResult, ListAccountsResult, error) {
		entries, err := accounts.List()
		if err != nil {
			return nil, ListAccountsResult{}, fmt.Errorf("list accounts failed: %w", err)
		}
		result := ListAccountsResult{Accounts: make([]AccountEntry, 0, len(entries))}
		for _, entry := range entries {
			result.Accounts = append(result.Accounts, AccountEntry{Name: entry.Name, PublicKey: entry.PublicKey})
		}
		return nil, result, nil
	}
}

// AccountBalanceHandler reports the native balance of the resolved owner.
func AccountBalanceHandler(accounts Accounts, balances Balances, defaultAccount string) mcp.ToolHandlerFor[AccountBalanceInput, AccountBalanceResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input AccountBalanceInput) (*mcp.CallToolResult, AccountBalanceResult, error) {
		owner, err := resolveOwner(accounts, input.Account, input.Address, defaultAccount)
		if err != nil {
			return nil, AccountBalanceResult{}, err
		}

		runCtx, cancel := context.WithTimeout(ctx, queryTimeout)
		defer cancel()

		lamports, err := balances.SOLBalance(runCtx, owner)
		if err != nil {
			return nil, AccountBalanceResult{}, fmt.Errorf("balance lookup failed: %w", err)
		}
		return nil, AccountBalanceResult{
			Address:  owner.String(),
			SOL:      float64(lamports) / float64(solana.LAMPORTS_PER_SOL),
			Lamports: lamports,
		}, nil
	}
}

// TokenBalanceHandler reports the resolved owner's holding of one mint.
func TokenBalanceHandler(accounts Accounts, balances Balances, defaultAccount string) mcp.ToolHandlerFor[TokenBalanceInput, TokenBalanceResult] {
	return func(ctx context.Context, _ *mcp.CallToolRequest, input TokenBalanceInput) (*mcp.CallToolResult, TokenBalanceResult, error) {
		mint, err := pumpfun.ParseAddress(input.Mint)
		if err != nil {
			return nil, TokenBalanceResult{}, err
		}
		owner, err := resolveOwner(accounts, input.Account, input.Address, defaultAccount)
		if err != nil {
			return nil, TokenBalanceResult{}, err
		}

		runCtx, cancel := context.WithTimeout(ctx, queryTimeout)
		defer cancel()

		balance, found, err := balances.TokenBalance(runCtx, mint, owner)
		if err != nil {
			return nil, TokenBalanceResult{}, fmt.Errorf("token balance lookup failed: %w", err)
		}
		result := TokenBalanceResult{Mint: mint.String(), Owner: owner.String(), Found: found}
		if found {
			result.Balance = balance.Amount
		}
		return nil, result, nil
	}
}

// resolveOwner turns tool input into an owner public key: an explicit address
// wins, otherwise the named (or default) local account is loaded, creating it
// on first use.
func resolveOwner(accounts Accounts, account, address, defaultAccount string) (solana.PublicKey, error) {
	if address != "" {
		return pumpfun.ParseAddress(address)
	}
	if account == "" {
		account = defaultAccount
	}
	id, err := accounts.GetOrCreate(account)
	if err != nil {
		return solana.PublicKey{}, fmt.Errorf("load account %q failed: %w", account, err)
	}
	return id.PublicKey, nil
}
