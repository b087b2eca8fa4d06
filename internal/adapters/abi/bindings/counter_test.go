package bindings

import (
	"math/big"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/common/hexutil"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCounter_MethodSelectors(t *testing.T) {
	c := NewCounter()

	tests := map[string][]byte{
		"0x06661abd": c.PackCount(),
		"0xd09de08a": c.PackIncrement(),
		"0x2baeceb7": c.PackDecrement(),
		"0xd826f88f": c.PackReset(),
	}
	for want, packed := range tests {
		assert.Equal(t, want, hexutil.Encode(packed))
	}
}

func TestCounter_BytecodeEmbedsSelectors(t *testing.T) {
	code := CounterBytecode()
	require.NotEmpty(t, code)

	hex := common.Bytes2Hex(code)
	for _, sel := range []string{"06661abd", "d09de08a", "2baeceb7", "d826f88f"} {
		assert.Contains(t, hex, sel)
	}

	topic := crypto.Keccak256Hash([]byte("CountChanged(int256)"))
	assert.Contains(t, hex, common.Bytes2Hex(topic.Bytes()))
}

func TestCounter_UnpackCountNegative(t *testing.T) {
	c := NewCounter()
	word := common.LeftPadBytes(nil, 32)
	for i := range word {
		word[i] = 0xff
	}

	v, err := c.UnpackCount(word)
	require.NoError(t, err)
	assert.Equal(t, int64(-1), v.Int64())
}

func TestCounter_UnpackCountChangedEvent(t *testing.T) {
	c := NewCounter()
	id, err := c.GetEventID("CountChanged")
	require.NoError(t, err)
	assert.Equal(t, crypto.Keccak256Hash([]byte("CountChanged(int256)")), id)

	log := &types.Log{
		Topics: []common.Hash{id},
		Data:   common.LeftPadBytes(big.NewInt(3).Bytes(), 32),
	}
	ev, err := c.UnpackCountChangedEvent(log)
	require.NoError(t, err)
	assert.Equal(t, int64(3), ev.Count.Int64())
	assert.Same(t, log, ev.Raw)

	_, err = c.UnpackCountChangedEvent(&types.Log{Topics: []common.Hash{{}}})
	assert.Error(t, err)

	_, err = c.GetEventID("Missing")
	assert.Error(t, err)
}
