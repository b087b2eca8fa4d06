package domain

import (
	"errors"
	"fmt"
	"math/big"
)

// Sentinel errors for domain operations
var (
	// ErrNotFound is returned when a requested resource doesn't exist
	ErrNotFound = errors.New("not found")

	// ErrOverflow is returned when a counter step would leave the int256 range
	ErrOverflow = errors.New("arithmetic overflow")

	// ErrUnknownOperation is returned for an operation name the counter doesn't expose
	ErrUnknownOperation = errors.New("unknown operation")

	// ErrInvalidArtifact is returned when a contract artifact can't be used as a counter
	ErrInvalidArtifact = errors.New("invalid artifact")

	// ErrInvalidAddress is returned when an Ethereum address is invalid
	ErrInvalidAddress = errors.New("invalid address")

	// ErrNotConnected is returned when a network session is used after Close
	ErrNotConnected = errors.New("not connected to network")

	// ErrCallFailed is the generic failure surfaced by the network for deploys and calls
	ErrCallFailed = errors.New("operation failed")
)

// AssertionError reports a counter value that differs from what a scenario expected
type AssertionError struct {
	Scenario string
	Step     int
	Expected *big.Int
	Actual   *big.Int
	Source   string // "expect" or "model"
}

func (e *AssertionError) Error() string {
	if e.Source == "model" {
		return fmt.Sprintf("scenario %s step %d: chain reports %s, model holds %s",
			e.Scenario, e.Step, e.Actual, e.Expected)
	}
	return fmt.Sprintf("scenario %s step %d: expected count %s, got %s",
		e.Scenario, e.Step, e.Expected, e.Actual)
}
