// Package pumpfun exposes the pump.fun launchpad operations: token creation,
// buys, sells and token info. Bonding-curve pricing, transaction construction
// and retries live in the SDK underneath; this package validates input,
// runs local pre-checks and reformats results.
package pumpfun

import (
	"context"
	"fmt"
	"math"

	"github.com/gagliardetto/solana-go"

	"github.com/noahgsolomon/pumpfun-mcp-server/internal/chain"
	apperrors "github.com/noahgsolomon/pumpfun-mcp-server/internal/errors"
	"github.com/noahgsolomon/pumpfun-mcp-server/internal/keystore"
)

// DefaultSlippageBps is applied when a trade does not specify slippage.
const DefaultSlippageBps uint16 = 500

// CreateResult reports a successful token creation.
type CreateResult struct {
	Mint        string
	Signature   string
	KeypairPath string
}

// TradeResult reports a successful buy or sell.
type TradeResult struct {
	Mint      string
	Signature string
	Amount    float64
}

// TokenInfo reports on-chain facts about a mint.
type TokenInfo struct {
	Mint     string
	Supply   float64
	Raw      string
	Decimals uint8
}

// Trader coordinates the keypair store, the balance resolver and the
// pump.fun SDK for one RPC endpoint.
type Trader struct {
	provider *chain.Provider
	store    *keystore.Store
	engine   engine
}

// New builds a Trader backed by the pump.fun SDK at the provider's endpoint.
func New(provider *chain.Provider, store *keystore.Store) *Trader {
	return &Trader{
		provider: provider,
		store:    store,
		engine:   newSDKEngine(provider.Endpoint()),
	}
}

// newWithEngine is used by tests to substitute a fake SDK boundary.
func newWithEngine(provider *chain.Provider, store *keystore.Store, eng engine) *Trader {
	return &Trader{provider: provider, store: store, engine: eng}
}

// CreateToken launches a new pump.fun token signed by the named account and
// persists the generated mint keypair next to the account keypairs.
func (t *Trader) CreateToken(ctx context.Context, account, name, symbol, uri string) (CreateResult, error) {
	if name == "" || symbol == "" {
		return CreateResult{}, apperrors.New(apperrors.CodeValidation, "token name and symbol must not be empty")
	}
	creator, err := t.store.GetOrCreate(account)
	if err != nil {
		return CreateResult{}, err
	}

	ix, mintKey, err := t.engine.BuildCreate(ctx, creator.PublicKey, name, symbol, uri)
	if err != nil {
		return CreateResult{}, apperrors.Wrap(apperrors.CodeNetworkQueryFailed, "build create instruction", err)
	}
	// Persist the mint keypair before submitting; losing it after a
	// successful launch would orphan the token's authority key.
	path, err := t.store.SaveMint(mintKey)
	if err != nil {
		return CreateResult{}, err
	}
	sig, err := t.engine.Submit(ctx, creator.PrivateKey, []solana.PrivateKey{mintKey}, ix)
	if err != nil {
		return CreateResult{}, apperrors.Wrap(apperrors.CodeNetworkQueryFailed, "submit create transaction", err)
	}
	return CreateResult{
		Mint:        mintKey.PublicKey().String(),
		Signature:   sig.String(),
		KeypairPath: path,
	}, nil
}

// Buy spends solAmount SOL from the named account on the given mint. The
// account's lamport balance is checked locally first so an obviously
// underfunded buy never reaches the network.
func (t *Trader) Buy(ctx context.Context, account, mintAddress string, solAmount float64, slippageBps uint16) (TradeResult, error) {
	mint, err := ParseAddress(mintAddress)
	if err != nil {
		return TradeResult{}, err
	}
	if err := validateAmount(solAmount); err != nil {
		return TradeResult{}, err
	}
	if slippageBps == 0 {
		slippageBps = DefaultSlippageBps
	}
	buyer, err := t.store.GetOrCreate(account)
	if err != nil {
		return TradeResult{}, err
	}

	lamports := uint64(math.Round(solAmount * float64(solana.LAMPORTS_PER_SOL)))
	held, err := t.provider.SOLBalance(ctx, buyer.PublicKey)
	if err != nil {
		return TradeResult{}, err
	}
	if held < lamports {
		return TradeResult{}, apperrors.New(apperrors.CodeInsufficientFunds,
			fmt.Sprintf("account %s holds %.9f SOL, need %.9f", account,
				float64(held)/float64(solana.LAMPORTS_PER_SOL), solAmount))
	}

	ix, err := t.engine.BuildBuy(ctx, buyer.PublicKey, mint, lamports, slippageBps)
	if err != nil {
		return TradeResult{}, apperrors.Wrap(apperrors.CodeNetworkQueryFailed, "build buy instruction", err)
	}
	sig, err := t.engine.Submit(ctx, buyer.PrivateKey, nil, ix)
	if err != nil {
		return TradeResult{}, apperrors.Wrap(apperrors.CodeNetworkQueryFailed, "submit buy transaction", err)
	}
	return TradeResult{Mint: mint.String(), Signature: sig.String(), Amount: solAmount}, nil
}

// Sell disposes of tokenAmount units of the given mint from the named
// account. The token balance is resolved first: an absent token account or a
// holding below the requested amount fails locally as insufficient funds.
func (t *Trader) Sell(ctx context.Context, account, mintAddress string, tokenAmount float64, slippageBps uint16) (TradeResult, error) {
	mint, err := ParseAddress(mintAddress)
	if err != nil {
		return TradeResult{}, err
	}
	if err := validateAmount(tokenAmount); err != nil {
		return TradeResult{}, err
	}
	if slippageBps == 0 {
		slippageBps = DefaultSlippageBps
	}
	seller, err := t.store.GetOrCreate(account)
	if err != nil {
		return TradeResult{}, err
	}

	balance, found, err := t.provider.TokenBalance(ctx, mint, seller.PublicKey)
	if err != nil {
		return TradeResult{}, err
	}
	if !found {
		return TradeResult{}, apperrors.New(apperrors.CodeInsufficientFunds,
			fmt.Sprintf("account %s has no token account for mint %s", account, mint))
	}
	if balance.Amount < tokenAmount {
		return TradeResult{}, apperrors.New(apperrors.CodeInsufficientFunds,
			fmt.Sprintf("account %s holds %v tokens of %s, need %v", account, balance.Amount, mint, tokenAmount))
	}

	rawAmount := uint64(math.Round(tokenAmount * math.Pow10(int(balance.Decimals))))
	ix, err := t.engine.BuildSell(ctx, seller.PublicKey, mint, rawAmount, slippageBps)
	if err != nil {
		return TradeResult{}, apperrors.Wrap(apperrors.CodeNetworkQueryFailed, "build sell instruction", err)
	}
	sig, err := t.engine.Submit(ctx, seller.PrivateKey, nil, ix)
	if err != nil {
		return TradeResult{}, apperrors.Wrap(apperrors.CodeNetworkQueryFailed, "submit sell transaction", err)
	}
	return TradeResult{Mint: mint.String(), Signature: sig.String(), Amount: tokenAmount}, nil
}

// Info fetches on-chain facts about a mint. An unknown mint surfaces as a
// query failure from the RPC node.
func (t *Trader) Info(ctx context.Context, mintAddress string) (TokenInfo, error) {
	mint, err := ParseAddress(mintAddress)
	if err != nil {
		return TokenInfo{}, err
	}
	supply, err := t.provider.Supply(ctx, mint)
	if err != nil {
		return TokenInfo{}, err
	}
	return TokenInfo{
		Mint:     mint.String(),
		Supply:   supply.Amount,
		Raw:      supply.Raw,
		Decimals: supply.Decimals,
	}, nil
}

// ParseAddress validates a base58 Solana address.
func ParseAddress(address string) (solana.PublicKey, error) {
	key, err := solana.PublicKeyFromBase58(address)
	if err != nil {
		return solana.PublicKey{}, apperrors.Wrap(apperrors.CodeValidation,
			fmt.Sprintf("invalid address %q", address), err)
	}
	return key, nil
}

// validateAmount rejects non-finite and non-positive trade amounts.
func validateAmount(amount float64) error {
	if math.IsNaN(amount) || math.IsInf(amount, 0) {
		return apperrors.New(apperrors.CodeValidation, "amount must be a finite number")
	}
	if amount <= 0 {
		return apperrors.New(apperrors.CodeValidation, "amount must be greater than zero")
	}
	return nil
}
