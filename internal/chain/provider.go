// Package chain wraps the Solana JSON-RPC client behind the narrow query
// surface the commands need, so tests can substitute fakes for the network.
package chain

import (
	"context"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
)

// Client is the subset of the Solana RPC client the commands rely on.
type Client interface {
	GetBalance(ctx context.Context, account solana.PublicKey, commitment rpc.CommitmentType) (*rpc.GetBalanceResult, error)
	GetTokenAccountsByOwner(ctx context.Context, owner solana.PublicKey, conf *rpc.GetTokenAccountsConfig, opts *rpc.GetTokenAccountsOpts) (*rpc.GetTokenAccountsResult, error)
	GetTokenAccountBalance(ctx context.Context, account solana.PublicKey, commitment rpc.CommitmentType) (*rpc.GetTokenAccountBalanceResult, error)
	GetTokenSupply(ctx context.Context, mint solana.PublicKey, commitment rpc.CommitmentType) (*rpc.GetTokenSupplyResult, error)
}

// Provider supplies a ready-to-use RPC client for one endpoint.
type Provider struct {
	endpoint string
	client   Client
}

// NewProvider connects to the given RPC endpoint.
func NewProvider(endpoint string) *Provider {
	return &Provider{endpoint: endpoint, client: rpc.New(endpoint)}
}

// NewProviderWithClient wraps an existing client. Used by tests.
func NewProviderWithClient(client Client) *Provider {
	return &Provider{client: client}
}

// Endpoint returns the RPC endpoint URL the provider was built for. Empty for
// providers constructed around an injected client.
func (p *Provider) Endpoint() string {
	return p.endpoint
}

// Client returns the underlying RPC client surface.
func (p *Provider) Client() Client {
	return p.client
}
