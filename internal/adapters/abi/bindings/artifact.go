package bindings

import (
	_ "embed"
	"fmt"

	"github.com/ethereum/go-ethereum/common"
)

//go:embed Counter.abi
var counterABI string

//go:embed Counter.bin
var counterBin string

// CounterABIJSON returns the Counter ABI as emitted by the compiler
func CounterABIJSON() string {
	return counterABI
}

// CounterBytecodeHex returns the creation bytecode as unprefixed hex
func CounterBytecodeHex() string {
	return counterBin
}

// CounterBytecode returns the Counter creation bytecode
func CounterBytecode() []byte {
	return common.FromHex(CounterMetaData.Bin)
}

// GetEventID returns the event signature hash for a given event name
// This is a helper method that works alongside the generated ABI bindings
func (counter *Counter) GetEventID(eventName string) (common.Hash, error) {
	event, exists := counter.abi.Events[eventName]
	if !exists {
		return common.Hash{}, fmt.Errorf("event %s not found", eventName)
	}
	return event.ID, nil
}
