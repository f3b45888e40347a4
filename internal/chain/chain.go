// Package chain wraps the blockchain RPC collaborator: transfer submission,
// fee data and ERC-20 token metadata. The rest of the service depends on the
// Client interface so tests can substitute a fake.
package chain

import (
	"context"
	"math/big"
)

// TokenMetadata is the on-chain identity of an ERC-20 contract.
type TokenMetadata struct {
	Name     string
	Symbol   string
	Decimals int
}

type Client interface {
	// SubmitNativeTransfer signs and broadcasts a plain native-coin transfer and
	// returns the transaction hash.
	SubmitNativeTransfer(ctx context.Context, rpcUrl string, chainId int64, privateKeyHex, to string, amountWei *big.Int) (string, error)
	// SuggestGasPrice returns the node's current gas price in wei.
	SuggestGasPrice(ctx context.Context, rpcUrl string) (*big.Int, error)
	// FetchTokenMetadata reads name/symbol/decimals from an ERC-20 contract.
	FetchTokenMetadata(ctx context.Context, rpcUrl, contractAddr string) (*TokenMetadata, error)
}
