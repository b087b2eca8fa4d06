package network

import (
	"bytes"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/rpc"
	"github.com/trebuchet-org/counter-harness/internal/domain"
)

// Solidity Panic(uint256) selector and the arithmetic overflow code
var panicSelector = []byte{0x4e, 0x48, 0x7b, 0x71}

const panicArithmetic = 0x11

// classifyError maps a node error onto the domain taxonomy. Every failure is an
// ErrCallFailed; checked-arithmetic reverts are additionally ErrOverflow.
func classifyError(action string, err error) error {
	if err == nil {
		return nil
	}
	if isOverflow(err) {
		return fmt.Errorf("%s reverted: %w: %w", action, domain.ErrCallFailed, domain.ErrOverflow)
	}
	return fmt.Errorf("%s: %w: %v", action, domain.ErrCallFailed, err)
}

func isOverflow(err error) bool {
	var dataErr rpc.DataError
	if errors.As(err, &dataErr) {
		if data, ok := dataErr.ErrorData().(string); ok {
			if raw, decErr := hexutil.Decode(data); decErr == nil && isArithmeticPanic(raw) {
				return true
			}
		}
	}
	// Nodes render the panic reason into the message, e.g.
	// "execution reverted: arithmetic underflow or overflow"
	return strings.Contains(strings.ToLower(err.Error()), "overflow")
}

// isArithmeticPanic reports whether revert data is Panic(0x11)
func isArithmeticPanic(data []byte) bool {
	if len(data) != 36 || !bytes.Equal(data[:4], panicSelector) {
		return false
	}
	code := new(big.Int).SetBytes(data[4:])
	return code.IsUint64() && code.Uint64() == panicArithmetic
}
