package blockchain

import (
	"context"
	"encoding/json"
	"math/big"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	counterAddr = "0x5FbDB2315678afecb367f032d93F642f64180aa3"
	emptyAddr   = "0xe7f1725E7734CE288F8367e1Bb143E90bb3F0512"
	otherAddr   = "0x9fE46736679d2D9a65F0992F2272dE9f3c7fa6e0"

	// count() == 5, ABI encoded
	countFive = "0x0000000000000000000000000000000000000000000000000000000000000005"
)

// newRPCStub serves a chain (id 31337) holding a counter, an unrelated contract
// and an empty account
func newRPCStub(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var req struct {
			Method string            `json:"method"`
			Params []json.RawMessage `json:"params"`
			ID     json.RawMessage   `json:"id"`
		}
		if !assert.NoError(t, json.NewDecoder(r.Body).Decode(&req)) {
			return
		}

		resp := map[string]any{"jsonrpc": "2.0", "id": req.ID}
		switch req.Method {
		case "eth_chainId":
			resp["result"] = "0x7a69"
		case "eth_getCode":
			var addr string
			assert.NoError(t, json.Unmarshal(req.Params[0], &addr))
			if strings.EqualFold(addr, emptyAddr) {
				resp["result"] = "0x"
			} else {
				resp["result"] = "0x6080604052"
			}
		case "eth_call":
			var call struct {
				To string `json:"to"`
			}
			assert.NoError(t, json.Unmarshal(req.Params[0], &call))
			if strings.EqualFold(call.To, counterAddr) {
				resp["result"] = countFive
			} else {
				resp["error"] = map[string]any{"code": 3, "message": "execution reverted"}
			}
		default:
			resp["error"] = map[string]any{"code": -32601, "message": "method not found"}
		}
		w.Header().Set("Content-Type", "application/json")
		assert.NoError(t, json.NewEncoder(w).Encode(resp))
	}))
}

func TestCheckerAdapter(t *testing.T) {
	server := newRPCStub(t)
	defer server.Close()
	ctx := context.Background()

	t.Run("not connected", func(t *testing.T) {
		c := NewCheckerAdapter()
		_, _, err := c.CheckCounter(ctx, counterAddr)
		assert.Error(t, err)
		assert.Zero(t, c.ChainID())
	})

	t.Run("chain id adopted", func(t *testing.T) {
		c := NewCheckerAdapter()
		defer c.Close()
		require.NoError(t, c.Connect(ctx, server.URL, 0))
		assert.Equal(t, uint64(31337), c.ChainID())
	})

	t.Run("chain id mismatch", func(t *testing.T) {
		c := NewCheckerAdapter()
		err := c.Connect(ctx, server.URL, 1)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "chain ID mismatch: expected 1, got 31337")
	})

	t.Run("close resets chain id", func(t *testing.T) {
		c := NewCheckerAdapter()
		require.NoError(t, c.Connect(ctx, server.URL, 31337))
		c.Close()
		assert.Zero(t, c.ChainID())
		_, _, err := c.CheckCounter(ctx, counterAddr)
		assert.Error(t, err)
	})

	t.Run("counter checks", func(t *testing.T) {
		c := NewCheckerAdapter()
		defer c.Close()
		require.NoError(t, c.Connect(ctx, server.URL, 31337))

		value, reason, err := c.CheckCounter(ctx, counterAddr)
		require.NoError(t, err)
		assert.Empty(t, reason)
		assert.Equal(t, big.NewInt(5), value)

		value, reason, err = c.CheckCounter(ctx, emptyAddr)
		require.NoError(t, err)
		assert.Nil(t, value)
		assert.Equal(t, "no code at address", reason)

		value, reason, err = c.CheckCounter(ctx, otherAddr)
		require.NoError(t, err)
		assert.Nil(t, value)
		assert.Contains(t, reason, "not a counter")

		_, _, err = c.CheckCounter(ctx, "0x1234")
		assert.Error(t, err)
	})
}
