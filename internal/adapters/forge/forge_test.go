package forge

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/trebuchet-org/counter-harness/internal/domain/config"
	"github.com/trebuchet-org/counter-harness/internal/usecase"
)

// fakeForge writes a shell script standing in for the forge binary
func fakeForge(t *testing.T, script string) *ForgeAdapter {
	t.Helper()
	dir := t.TempDir()
	bin := filepath.Join(dir, "forge")
	require.NoError(t, os.WriteFile(bin, []byte("#!/bin/sh\n"+script), 0755))

	adapter := NewForgeAdapter(&config.RuntimeConfig{ProjectRoot: dir}, slog.New(slog.DiscardHandler))
	adapter.binary = bin
	return adapter
}

func TestBuildArgs(t *testing.T) {
	assert.Equal(t, []string{"build"}, buildArgs())
}

func TestBuild_Success(t *testing.T) {
	adapter := fakeForge(t, `[ "$1" = "build" ] || exit 2
echo "Compiler run successful!"
`)
	require.NoError(t, adapter.Build(context.Background(), usecase.BuildOptions{}))
}

func TestBuild_FailureIncludesOutput(t *testing.T) {
	adapter := fakeForge(t, `echo "Error: Compiler run failed"
exit 1
`)
	err := adapter.Build(context.Background(), usecase.BuildOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "forge build failed")
	assert.Contains(t, err.Error(), "Compiler run failed")
}

func TestBuild_Streams(t *testing.T) {
	adapter := fakeForge(t, `echo "Compiling 1 files with Solc 0.8.24"
`)
	var out bytes.Buffer
	require.NoError(t, adapter.Build(context.Background(), usecase.BuildOptions{Stream: &out}))
	assert.Contains(t, out.String(), "Compiling 1 files")
}

func TestBuild_MissingBinary(t *testing.T) {
	adapter := NewForgeAdapter(&config.RuntimeConfig{ProjectRoot: t.TempDir()}, slog.New(slog.DiscardHandler))
	adapter.binary = filepath.Join(t.TempDir(), "absent")
	assert.Error(t, adapter.Build(context.Background(), usecase.BuildOptions{}))
}
