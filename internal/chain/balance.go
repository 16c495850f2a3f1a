package chain

import (
	"context"
	"fmt"
	"strconv"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"

	apperrors "github.com/noahgsolomon/pumpfun-mcp-server/internal/errors"
)

// Balance is one owner's holding of one mint, read live from the chain at
// call time. Balances are never cached or persisted.
type Balance struct {
	Amount   float64 // human-scale amount (raw amount divided by 10^decimals)
	Raw      string  // raw integer amount as reported by the RPC node
	Decimals uint8
}

// TokenBalance reports how many units of mint the owner holds.
//
// The three outcomes are distinct: (balance, true, nil) when a token account
// exists, (zero, false, nil) when the owner has no token account for the mint
// at all, and (zero, false, err) when the query itself failed. "No token
// account" is not the same thing as holding zero tokens, and a network
// failure is reported as an error rather than folded into absence.
//
// When an owner holds several token accounts for the same mint (possible but
// unusual on chain), the first account in the node's response wins; amounts
// are not summed across accounts.
func (p *Provider) TokenBalance(ctx context.Context, mint, owner solana.PublicKey) (Balance, bool, error) {
	out, err := p.client.GetTokenAccountsByOwner(
		ctx,
		owner,
		&rpc.GetTokenAccountsConfig{Mint: &mint},
		&rpc.GetTokenAccountsOpts{
			Commitment: rpc.CommitmentConfirmed,
			Encoding:   solana.EncodingBase64,
		},
	)
	if err != nil {
		return Balance{}, false, apperrors.Wrap(apperrors.CodeNetworkQueryFailed,
			fmt.Sprintf("query token accounts for owner %s mint %s", owner, mint), err)
	}
	if out == nil || len(out.Value) == 0 {
		return Balance{}, false, nil
	}

	account := out.Value[0].Pubkey
	bal, err := p.client.GetTokenAccountBalance(ctx, account, rpc.CommitmentConfirmed)
	if err != nil {
		return Balance{}, false, apperrors.Wrap(apperrors.CodeNetworkQueryFailed,
			fmt.Sprintf("query balance of token account %s", account), err)
	}
	if bal == nil || bal.Value == nil {
		return Balance{}, false, apperrors.New(apperrors.CodeNetworkQueryFailed,
			fmt.Sprintf("token account %s returned no balance value", account))
	}

	return toBalance(bal.Value), true, nil
}

// SOLBalance reports the owner's native balance in lamports.
func (p *Provider) SOLBalance(ctx context.Context, owner solana.PublicKey) (uint64, error) {
	out, err := p.client.GetBalance(ctx, owner, rpc.CommitmentConfirmed)
	if err != nil {
		return 0, apperrors.Wrap(apperrors.CodeNetworkQueryFailed,
			fmt.Sprintf("query native balance of %s", owner), err)
	}
	if out == nil {
		return 0, apperrors.New(apperrors.CodeNetworkQueryFailed,
			fmt.Sprintf("native balance of %s returned no value", owner))
	}
	return out.Value, nil
}

// Supply reports a mint's total supply, which doubles as an existence probe
// for token info: an unknown mint fails the query.
func (p *Provider) Supply(ctx context.Context, mint solana.PublicKey) (Balance, error) {
	out, err := p.client.GetTokenSupply(ctx, mint, rpc.CommitmentConfirmed)
	if err != nil {
		return Balance{}, apperrors.Wrap(apperrors.CodeNetworkQueryFailed,
			fmt.Sprintf("query supply of mint %s", mint), err)
	}
	if out == nil || out.Value == nil {
		return Balance{}, apperrors.New(apperrors.CodeNetworkQueryFailed,
			fmt.Sprintf("supply of mint %s returned no value", mint))
	}
	return toBalance(out.Value), nil
}

// toBalance converts an RPC token amount into a Balance, preferring the
// node-computed UiAmount and falling back to parsing its string form.
func toBalance(v *rpc.UiTokenAmount) Balance {
	b := Balance{Raw: v.Amount, Decimals: v.Decimals}
	if v.UiAmount != nil {
		b.Amount = *v.UiAmount
		return b
	}
	if parsed, err := strconv.ParseFloat(v.UiAmountString, 64); err == nil {
		b.Amount = parsed
	}
	return b
}
