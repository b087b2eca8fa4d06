package domain

import (
	"math/big"
	"time"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
)

// Artifact is a compiled contract ready to be deployed
type Artifact struct {
	Name     string
	ABI      *abi.ABI
	Bytecode []byte
	Source   string // file the artifact was read from, "embedded" for the built-in one
}

// ContractHandle identifies one deployed counter instance
type ContractHandle struct {
	Name        string         `json:"name"`
	Address     common.Address `json:"address"`
	ChainID     uint64         `json:"chainId"`
	Deployer    common.Address `json:"deployer"`
	TxHash      common.Hash    `json:"txHash"`
	BlockNumber uint64         `json:"blockNumber"`
	GasUsed     uint64         `json:"gasUsed"`
}

// CallResult is what a counter call produced on chain
type CallResult struct {
	Operation   Operation
	Value       *big.Int // value after the call; nil when the call emitted nothing to read
	TxHash      common.Hash
	BlockNumber uint64
	GasUsed     uint64
	Duration    time.Duration
}

// Wallet is a funded signer on a test network
type Wallet struct {
	Address common.Address
	Balance *big.Int
}

// Network kinds
const (
	NetworkKindSimulated = "simulated"
	NetworkKindRPC       = "rpc"
)

// NetworkInfo describes a network session
type NetworkInfo struct {
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	ChainID uint64 `json:"chainId"`
	RPCURL  string `json:"rpcUrl,omitempty"`
}

// LaunchOptions configures a test network launch
type LaunchOptions struct {
	Network string   // empty for an in-process simulated chain
	Wallets int      // number of funded wallets to provision
	Balance *big.Int // wei per wallet
}
