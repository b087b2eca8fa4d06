package network

import (
	"context"
	"crypto/ecdsa"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi/bind/v2"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
)

// Well-known anvil development keys (mnemonic "test test ... junk")
var anvilDevKeys = []string{
	"ac0974bec39a17e36ba4a6b4d238ff944bacb478cbed5efcae784d7bf4f2ff80",
	"59c6995e998f97a5a0044966f0945389dc9e86dae88c7a8412f4603b6b78690d",
	"5de4111afa1a4b94908f83103eb1f1706367c2e68ca870fc3fb9a804cdab365a",
}

var errNotAuthorized = errors.New("not authorized to sign this account")

// signer is a funded account the session sends transactions from
type signer struct {
	key     *ecdsa.PrivateKey
	address common.Address
}

func newSigner(key *ecdsa.PrivateKey) signer {
	return signer{key: key, address: crypto.PubkeyToAddress(key.PublicKey)}
}

// parseKey decodes a hex private key, with or without 0x
func parseKey(hex string) (*ecdsa.PrivateKey, error) {
	key, err := crypto.HexToECDSA(strings.TrimPrefix(strings.TrimSpace(hex), "0x"))
	if err != nil {
		return nil, fmt.Errorf("invalid private key: %w", err)
	}
	return key, nil
}

// generateSigners creates n fresh keys
func generateSigners(n int) ([]signer, error) {
	signers := make([]signer, 0, n)
	for range n {
		key, err := crypto.GenerateKey()
		if err != nil {
			return nil, fmt.Errorf("failed to generate key: %w", err)
		}
		signers = append(signers, newSigner(key))
	}
	return signers, nil
}

// transactOpts builds EIP-155 signing options for the chain
func (s signer) transactOpts(ctx context.Context, chainID *big.Int) *bind.TransactOpts {
	latest := types.LatestSignerForChainID(chainID)
	return &bind.TransactOpts{
		From: s.address,
		Signer: func(address common.Address, tx *types.Transaction) (*types.Transaction, error) {
			if address != s.address {
				return nil, errNotAuthorized
			}
			return types.SignTx(tx, latest, s.key)
		},
		Context: ctx,
	}
}
