package domain

import (
	"fmt"
	"math/big"
	"strings"
)

// Operation is one of the calls a counter accepts
type Operation string

const (
	OpIncrement Operation = "increment"
	OpDecrement Operation = "decrement"
	OpReset     Operation = "reset"
	OpCount     Operation = "count"
)

// Operations lists every counter operation in declaration order
var Operations = []Operation{OpIncrement, OpDecrement, OpReset, OpCount}

// ParseOperation resolves a case-insensitive operation name
func ParseOperation(name string) (Operation, error) {
	op := Operation(strings.ToLower(strings.TrimSpace(name)))
	switch op {
	case OpIncrement, OpDecrement, OpReset, OpCount:
		return op, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownOperation, name)
}

// Mutates reports whether the operation changes the counter value
func (o Operation) Mutates() bool {
	return o != OpCount
}

// Bounds of the int256 register the contract stores the value in.
var (
	MaxCount = new(big.Int).Sub(new(big.Int).Lsh(big.NewInt(1), 255), big.NewInt(1))
	MinCount = new(big.Int).Neg(new(big.Int).Lsh(big.NewInt(1), 255))
)

// Counter is a single signed int256 register with increment, decrement and reset.
// The zero value is not usable; use NewCounter.
//
// Arithmetic is checked: stepping past MaxCount or MinCount fails with ErrOverflow
// and leaves the value unchanged, mirroring the deployed contract.
type Counter struct {
	value *big.Int
}

// NewCounter returns a counter holding 0
func NewCounter() *Counter {
	return &Counter{value: new(big.Int)}
}

// Increment adds one and returns the new value
func (c *Counter) Increment() (*big.Int, error) {
	if c.value.Cmp(MaxCount) == 0 {
		return c.Count(), fmt.Errorf("increment: %w", ErrOverflow)
	}
	c.value.Add(c.value, big.NewInt(1))
	return c.Count(), nil
}

// Decrement subtracts one and returns the new value. Negative values are allowed.
func (c *Counter) Decrement() (*big.Int, error) {
	if c.value.Cmp(MinCount) == 0 {
		return c.Count(), fmt.Errorf("decrement: %w", ErrOverflow)
	}
	c.value.Sub(c.value, big.NewInt(1))
	return c.Count(), nil
}

// Reset sets the value back to 0
func (c *Counter) Reset() *big.Int {
	c.value.SetInt64(0)
	return c.Count()
}

// Count returns a copy of the current value
func (c *Counter) Count() *big.Int {
	return new(big.Int).Set(c.value)
}

// Apply dispatches op and returns the value after it
func (c *Counter) Apply(op Operation) (*big.Int, error) {
	switch op {
	case OpIncrement:
		return c.Increment()
	case OpDecrement:
		return c.Decrement()
	case OpReset:
		return c.Reset(), nil
	case OpCount:
		return c.Count(), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownOperation, op)
	}
}
