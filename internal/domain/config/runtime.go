package config

import (
	"math/big"
	"time"
)

// RuntimeConfig represents the complete runtime configuration
// This is injected into use cases and contains all resolved settings
type RuntimeConfig struct {
	// Core settings
	ProjectRoot string
	DataDir     string

	// Network is the target network; nil runs against an in-process simulated chain
	Network *Network

	// Execution settings
	Debug          bool
	NonInteractive bool
	JSON           bool // Output in JSON format
	Timeout        time.Duration

	// Resolved configurations
	Networks   map[string]string // name -> RPC URL, env vars expanded
	PrivateKey string            // hex signer key for RPC networks, optional
	Harness    HarnessConfig

	// Config source tracking
	ConfigSource string // path to counter.toml, empty when running on defaults
}

// Network represents network configuration
type Network struct {
	Name    string `json:"name"`
	RPCURL  string `json:"rpcUrl"`
	ChainID uint64 `json:"chainId,omitempty"`
}

// HarnessConfig controls how the test harness provisions and runs scenarios
type HarnessConfig struct {
	Wallets   int      // funded wallets per launched network
	Balance   *big.Int // wei per wallet
	Artifact  string   // contract artifact path, empty for the embedded one
	Scenarios string   // scenario file path, empty for the built-in catalogue
}
