package chain

import (
	"context"
	"errors"
	"testing"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	apperrors "github.com/noahgsolomon/pumpfun-mcp-server/internal/errors"
)

// fakeClient implements Client for tests.
type fakeClient struct {
	balanceResult      *rpc.GetBalanceResult
	balanceErr         error
	accountsResult     *rpc.GetTokenAccountsResult
	accountsErr        error
	accountBalance     *rpc.GetTokenAccountBalanceResult
	accountBalanceErr  error
	supplyResult       *rpc.GetTokenSupplyResult
	supplyErr          error
	lastOwner          solana.PublicKey
	lastMint           *solana.PublicKey
	lastBalanceAccount solana.PublicKey
}

func (f *fakeClient) GetBalance(ctx context.Context, account solana.PublicKey, commitment rpc.CommitmentType) (*rpc.GetBalanceResult, error) {
	f.lastOwner = account
	return f.balanceResult, f.balanceErr
}

func (f *fakeClient) GetTokenAccountsByOwner(ctx context.Context, owner solana.PublicKey, conf *rpc.GetTokenAccountsConfig, opts *rpc.GetTokenAccountsOpts) (*rpc.GetTokenAccountsResult, error) {
	f.lastOwner = owner
	if conf != nil {
		f.lastMint = conf.Mint
	}
	return f.accountsResult, f.accountsErr
}

func (f *fakeClient) GetTokenAccountBalance(ctx context.Context, account solana.PublicKey, commitment rpc.CommitmentType) (*rpc.GetTokenAccountBalanceResult, error) {
	f.lastBalanceAccount = account
	return f.accountBalance, f.accountBalanceErr
}

func (f *fakeClient) GetTokenSupply(ctx context.Context, mint solana.PublicKey, commitment rpc.CommitmentType) (*rpc.GetTokenSupplyResult, error) {
	return f.supplyResult, f.supplyErr
}

func uiAmount(amount float64, raw string, decimals uint8) *rpc.UiTokenAmount {
	return &rpc.UiTokenAmount{Amount: raw, Decimals: decimals, UiAmount: &amount}
}

func TestTokenBalanceAbsent(t *testing.T) {
	fake := &fakeClient{accountsResult: &rpc.GetTokenAccountsResult{}}
	provider := NewProviderWithClient(fake)

	balance, found, err := provider.TokenBalance(context.Background(), solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if found {
		t.Fatal("expected absent balance, got found")
	}
	if balance.Amount != 0 {
		t.Fatalf("absent balance must be zero-valued, got %v", balance.Amount)
	}
}

func TestTokenBalanceSingleAccount(t *testing.T) {
	account := solana.NewWallet().PublicKey()
	fake := &fakeClient{
		accountsResult: &rpc.GetTokenAccountsResult{
			Value: []*rpc.TokenAccount{{Pubkey: account}},
		},
		accountBalance: &rpc.GetTokenAccountBalanceResult{Value: uiAmount(123.456, "123456000", 6)},
	}
	provider := NewProviderWithClient(fake)

	mint := solana.NewWallet().PublicKey()
	owner := solana.NewWallet().PublicKey()
	balance, found, err := provider.TokenBalance(context.Background(), mint, owner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !found {
		t.Fatal("expected balance to be found")
	}
	if balance.Amount != 123.456 || balance.Raw != "123456000" || balance.Decimals != 6 {
		t.Fatalf("unexpected balance %+v", balance)
	}
	if fake.lastMint == nil || !fake.lastMint.Equals(mint) {
		t.Fatalf("expected query restricted to mint %s, got %v", mint, fake.lastMint)
	}
	if !fake.lastBalanceAccount.Equals(account) {
		t.Fatalf("expected balance lookup on %s, got %s", account, fake.lastBalanceAccount)
	}
}

func TestTokenBalanceFirstAccountWins(t *testing.T) {
	first := solana.NewWallet().PublicKey()
	second := solana.NewWallet().PublicKey()
	fake := &fakeClient{
		accountsResult: &rpc.GetTokenAccountsResult{
			Value: []*rpc.TokenAccount{{Pubkey: first}, {Pubkey: second}},
		},
		accountBalance: &rpc.GetTokenAccountBalanceResult{Value: uiAmount(5, "5", 0)},
	}
	provider := NewProviderWithClient(fake)

	balance, found, err := provider.TokenBalance(context.Background(), solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey())
	if err != nil || !found {
		t.Fatalf("unexpected result: %v %v", found, err)
	}
	if balance.Amount != 5 {
		t.Fatalf("unexpected amount %v", balance.Amount)
	}
	if !fake.lastBalanceAccount.Equals(first) {
		t.Fatal("expected the first token account to win")
	}
}

func TestTokenBalanceQueryFailureIsNotAbsence(t *testing.T) {
	fake := &fakeClient{accountsErr: errors.New("rpc node unreachable")}
	provider := NewProviderWithClient(fake)

	_, found, err := provider.TokenBalance(context.Background(), solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey())
	if err == nil {
		t.Fatal("expected query failure to surface as an error")
	}
	if found {
		t.Fatal("failed query must not report a balance")
	}
	if !apperrors.IsCode(err, apperrors.CodeNetworkQueryFailed) {
		t.Fatalf("expected NETWORK_QUERY_FAILED, got %v", err)
	}
}

func TestTokenBalanceUiAmountStringFallback(t *testing.T) {
	account := solana.NewWallet().PublicKey()
	fake := &fakeClient{
		accountsResult: &rpc.GetTokenAccountsResult{
			Value: []*rpc.TokenAccount{{Pubkey: account}},
		},
		accountBalance: &rpc.GetTokenAccountBalanceResult{
			Value: &rpc.UiTokenAmount{Amount: "42000000", Decimals: 6, UiAmountString: "42"},
		},
	}
	provider := NewProviderWithClient(fake)

	balance, found, err := provider.TokenBalance(context.Background(), solana.NewWallet().PublicKey(), solana.NewWallet().PublicKey())
	if err != nil || !found {
		t.Fatalf("unexpected result: %v %v", found, err)
	}
	if balance.Amount != 42 {
		t.Fatalf("expected fallback to UiAmountString, got %v", balance.Amount)
	}
}

func TestSOLBalance(t *testing.T) {
	fake := &fakeClient{balanceResult: &rpc.GetBalanceResult{Value: 2_500_000_000}}
	provider := NewProviderWithClient(fake)

	owner := solana.NewWallet().PublicKey()
	lamports, err := provider.SOLBalance(context.Background(), owner)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if lamports != 2_500_000_000 {
		t.Fatalf("unexpected lamports %d", lamports)
	}
	if !fake.lastOwner.Equals(owner) {
		t.Fatal("expected query for the requested owner")
	}
}

func TestSOLBalanceFailure(t *testing.T) {
	fake := &fakeClient{balanceErr: errors.New("timeout")}
	provider := NewProviderWithClient(fake)

	_, err := provider.SOLBalance(context.Background(), solana.NewWallet().PublicKey())
	if !apperrors.IsCode(err, apperrors.CodeNetworkQueryFailed) {
		t.Fatalf("expected NETWORK_QUERY_FAILED, got %v", err)
	}
}

func TestSupply(t *testing.T) {
	fake := &fakeClient{
		supplyResult: &rpc.GetTokenSupplyResult{Value: uiAmount(1_000_000_000, "1000000000000000", 6)},
	}
	provider := NewProviderWithClient(fake)

	supply, err := provider.Supply(context.Background(), solana.NewWallet().PublicKey())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if supply.Amount != 1_000_000_000 || supply.Decimals != 6 {
		t.Fatalf("unexpected supply %+v", supply)
	}
}

func TestSupplyUnknownMint(t *testing.T) {
	fake := &fakeClient{supplyErr: errors.New("could not find mint")}
	provider := NewProviderWithClient(fake)

	_, err := provider.Supply(context.Background(), solana.NewWallet().PublicKey())
	if !apperrors.IsCode(err, apperrors.CodeNetworkQueryFailed) {
		t.Fatalf("expected NETWORK_QUERY_FAILED, got %v", err)
	}
}
