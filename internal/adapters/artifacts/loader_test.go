package artifacts

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/counter-harness/internal/adapters/abi/bindings"
	"github.com/trebuchet-org/counter-harness/internal/domain"
	"github.com/trebuchet-org/counter-harness/internal/domain/config"
)

func newTestLoader(root string) *Loader {
	return NewLoader(&config.RuntimeConfig{ProjectRoot: root}, slog.New(slog.DiscardHandler))
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
}

func TestLoad_Embedded(t *testing.T) {
	a, err := newTestLoader(t.TempDir()).Load(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, "Counter", a.Name)
	assert.Equal(t, EmbeddedSource, a.Source)
	assert.NotEmpty(t, a.Bytecode)
	assert.NoError(t, Validate(a))
}

func TestLoad_FoundryArtifact(t *testing.T) {
	root := t.TempDir()
	bin := "0x" + bindings.CounterBytecodeHex()

	t.Run("object bytecode", func(t *testing.T) {
		path := filepath.Join(root, "out", "Counter.sol", "Counter.json")
		writeFile(t, path, `{"abi":`+bindings.CounterABIJSON()+`,"bytecode":{"object":"`+bin+`"}}`)

		a, err := newTestLoader(root).Load(context.Background(), "out/Counter.sol/Counter.json")
		require.NoError(t, err)
		assert.Equal(t, "Counter", a.Name)
		assert.Equal(t, path, a.Source)
		assert.Equal(t, bindings.CounterBytecode(), a.Bytecode)
	})

	t.Run("string bytecode", func(t *testing.T) {
		path := filepath.Join(root, "Plain.json")
		writeFile(t, path, `{"abi":`+bindings.CounterABIJSON()+`,"bytecode":"`+bin+`"}`)

		a, err := newTestLoader(root).Load(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, "Plain", a.Name)
	})
}

func TestLoad_BinPair(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "Counter.bin"), bindings.CounterBytecodeHex()+"\n")
	writeFile(t, filepath.Join(root, "Counter-abi.json"), bindings.CounterABIJSON())

	a, err := newTestLoader(root).Load(context.Background(), "Counter.bin")
	require.NoError(t, err)
	assert.Equal(t, "Counter", a.Name)
	assert.Equal(t, bindings.CounterBytecode(), a.Bytecode)
}

func TestLoad_Invalid(t *testing.T) {
	root := t.TempDir()
	tokenABI := `[{"type":"function","name":"transfer","inputs":[{"name":"to","type":"address"}],"outputs":[],"stateMutability":"nonpayable"}]`

	tests := []struct {
		name    string
		file    string
		content string
	}{
		{name: "not json", file: "Bad.json", content: "{"},
		{name: "no abi", file: "NoABI.json", content: `{"bytecode":"0x6000"}`},
		{name: "empty bytecode", file: "Empty.json", content: `{"abi":` + bindings.CounterABIJSON() + `,"bytecode":{"object":"0x"}}`},
		{name: "unlinked", file: "Linked.json", content: `{"abi":` + bindings.CounterABIJSON() + `,"bytecode":{"object":"0x60__$abc$__"}}`},
		{name: "wrong interface", file: "Token.json", content: `{"abi":` + tokenABI + `,"bytecode":"0x6000"}`},
		{name: "unsupported", file: "Counter.sol", content: "contract Counter {}"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			writeFile(t, filepath.Join(root, tt.file), tt.content)
			_, err := newTestLoader(root).Load(context.Background(), tt.file)
			assert.ErrorIs(t, err, domain.ErrInvalidArtifact)
		})
	}

	t.Run("bin without abi", func(t *testing.T) {
		writeFile(t, filepath.Join(root, "Lonely.bin"), "6000")
		_, err := newTestLoader(root).Load(context.Background(), "Lonely.bin")
		assert.ErrorIs(t, err, domain.ErrInvalidArtifact)
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := newTestLoader(root).Load(context.Background(), "nope.json")
		assert.ErrorIs(t, err, os.ErrNotExist)
	})
}

func TestValidate_CountReturnType(t *testing.T) {
	a, err := Embedded()
	require.NoError(t, err)

	count := a.ABI.Methods["count"]
	count.Outputs = nil
	a.ABI.Methods["count"] = count
	assert.ErrorIs(t, Validate(a), domain.ErrInvalidArtifact)
}
