package pumpfun

import (
	"context"
	"time"

	"github.com/gagliardetto/solana-go"
	"github.com/gagliardetto/solana-go/rpc"
	"github.com/ninja0404/pump-go-sdk/pkg/autofill"
	sdkconfig "github.com/ninja0404/pump-go-sdk/pkg/config"
	sdkrpc "github.com/ninja0404/pump-go-sdk/pkg/rpc"
	"github.com/ninja0404/pump-go-sdk/pkg/txbuilder"
	"github.com/ninja0404/pump-go-sdk/pkg/wallet"
)

// engine is the boundary to the pump.fun SDK. Instruction building,
// transaction assembly, signing, submission and confirmation all happen on
// the other side of it; this repo never constructs transactions itself.
type engine interface {
	BuildCreate(ctx context.Context, user solana.PublicKey, name, symbol, uri string) (solana.Instruction, solana.PrivateKey, error)
	BuildBuy(ctx context.Context, user, mint solana.PublicKey, lamports uint64, slippageBps uint16) (solana.Instruction, error)
	BuildSell(ctx context.Context, user, mint solana.PublicKey, rawAmount uint64, slippageBps uint16) (solana.Instruction, error)
	Submit(ctx context.Context, payer solana.PrivateKey, extraSigners []solana.PrivateKey, ixs ...solana.Instruction) (solana.Signature, error)
}

// sdkEngine implements engine on top of pump-go-sdk.
type sdkEngine struct {
	client  *sdkrpc.Client
	builder *txbuilder.Builder
}

func newSDKEngine(endpoint string) *sdkEngine {
	cfg := sdkconfig.DefaultRPCConfig()
	cfg.RPCURL = endpoint
	cfg.Timeout = 30 * time.Second
	client := sdkrpc.NewClient(cfg)
	return &sdkEngine{
		client:  client,
		builder: txbuilder.NewBuilder(client, rpc.CommitmentConfirmed),
	}
}

func (e *sdkEngine) BuildCreate(ctx context.Context, user solana.PublicKey, name, symbol, uri string) (solana.Instruction, solana.PrivateKey, error) {
	_, _, ix, mintKey, err := autofill.PumpCreate(ctx, e.client, user, name, symbol, uri)
	if err != nil {
		return nil, nil, err
	}
	return ix, mintKey, nil
}

func (e *sdkEngine) BuildBuy(ctx context.Context, user, mint solana.PublicKey, lamports uint64, slippageBps uint16) (solana.Instruction, error) {
	_, _, ix, err := autofill.PumpBuy(ctx, e.client, user, mint, lamports, slippageBps)
	if err != nil {
		return nil, err
	}
	return ix, nil
}

func (e *sdkEngine) BuildSell(ctx context.Context, user, mint solana.PublicKey, rawAmount uint64, slippageBps uint16) (solana.Instruction, error) {
	_, _, ix, err := autofill.PumpSell(ctx, e.client, user, mint, rawAmount, slippageBps)
	if err != nil {
		return nil, err
	}
	return ix, nil
}

func (e *sdkEngine) Submit(ctx context.Context, payer solana.PrivateKey, extraSigners []solana.PrivateKey, ixs ...solana.Instruction) (solana.Signature, error) {
	signers := make([]wallet.Signer, 0, len(extraSigners))
	for _, key := range extraSigners {
		signers = append(signers, wallet.NewLocalFromPrivateKey(key))
	}
	return e.builder.BuildSignSendAndConfirm(ctx, wallet.NewLocalFromPrivateKey(payer), signers, txbuilder.ConfirmationConfirmed, ixs...)
}
