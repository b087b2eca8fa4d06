package config

import (
	"math/big"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeProject(t *testing.T, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, ProjectFileName), []byte(content), 0644))
	return dir
}

func newTestViper(projectRoot string) *viper.Viper {
	v := viper.New()
	v.Set("project_root", projectRoot)
	return v
}

func TestProvider_Defaults(t *testing.T) {
	dir := t.TempDir()

	cfg, err := Provider(newTestViper(dir))
	require.NoError(t, err)

	assert.Equal(t, dir, cfg.ProjectRoot)
	assert.Equal(t, filepath.Join(dir, ".counter"), cfg.DataDir)
	assert.Nil(t, cfg.Network)
	assert.Empty(t, cfg.ConfigSource)
	assert.Equal(t, 5*time.Minute, cfg.Timeout)
	assert.Equal(t, 1, cfg.Harness.Wallets)
	assert.Equal(t, "100000000000000000000", cfg.Harness.Balance.String())
	assert.Equal(t, DefaultAnvilURL, cfg.Networks["anvil"])
}

func TestProvider_ProjectFile(t *testing.T) {
	t.Setenv("TEST_COUNTER_KEY", "0xabc")
	dir := writeProject(t, `
[networks]
anvil = "http://127.0.0.1:9545"
devnet = "http://devnet:8545"

[wallet]
private_key = "${TEST_COUNTER_KEY}"

[harness]
wallets = 3
balance = "2ether"
artifact = "out/Counter.sol/Counter.json"
scenarios = "scenarios.yaml"
timeout = "30s"
`)

	v := newTestViper(dir)
	v.Set("network", "devnet")

	cfg, err := Provider(v)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(dir, ProjectFileName), cfg.ConfigSource)
	assert.Equal(t, "0xabc", cfg.PrivateKey)
	assert.Equal(t, "http://127.0.0.1:9545", cfg.Networks["anvil"])
	require.NotNil(t, cfg.Network)
	assert.Equal(t, "devnet", cfg.Network.Name)
	assert.Equal(t, "http://devnet:8545", cfg.Network.RPCURL)
	assert.Equal(t, 30*time.Second, cfg.Timeout)
	assert.Equal(t, 3, cfg.Harness.Wallets)
	assert.Equal(t, "2000000000000000000", cfg.Harness.Balance.String())
	assert.Equal(t, "out/Counter.sol/Counter.json", cfg.Harness.Artifact)
	assert.Equal(t, "scenarios.yaml", cfg.Harness.Scenarios)
}

func TestProvider_FlagsOverrideFile(t *testing.T) {
	dir := writeProject(t, `
[harness]
wallets = 3
timeout = "30s"
`)
	v := newTestViper(dir)
	v.Set("wallets", 2)
	v.Set("timeout", "1m")
	v.Set("file", "custom.yaml")
	v.Set("network", SimulatedNetwork)

	cfg, err := Provider(v)
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Harness.Wallets)
	assert.Equal(t, time.Minute, cfg.Timeout)
	assert.Equal(t, "custom.yaml", cfg.Harness.Scenarios)
	assert.Nil(t, cfg.Network)
}

func TestProvider_Errors(t *testing.T) {
	t.Run("unknown network", func(t *testing.T) {
		v := newTestViper(t.TempDir())
		v.Set("network", "mainnet")
		_, err := Provider(v)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("unset env var", func(t *testing.T) {
		os.Unsetenv("UNSET_COUNTER_RPC_URL")
		dir := writeProject(t, `
[networks]
remote = "${UNSET_COUNTER_RPC_URL}"
`)
		v := newTestViper(dir)
		v.Set("network", "remote")
		_, err := Provider(v)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "UNSET_COUNTER_RPC_URL")
	})

	t.Run("bad timeout", func(t *testing.T) {
		v := newTestViper(t.TempDir())
		v.Set("timeout", "soon")
		_, err := Provider(v)
		assert.Error(t, err)
	})

	t.Run("malformed toml", func(t *testing.T) {
		dir := writeProject(t, "[harness\n")
		_, err := Provider(newTestViper(dir))
		assert.Error(t, err)
	})
}

func TestProvider_LoadsDotEnv(t *testing.T) {
	dir := writeProject(t, `
[networks]
staging = "${COUNTER_TEST_STAGING_URL}"
`)
	require.NoError(t, os.WriteFile(filepath.Join(dir, ".env"), []byte("COUNTER_TEST_STAGING_URL=http://staging:8545\n"), 0644))
	t.Cleanup(func() { os.Unsetenv("COUNTER_TEST_STAGING_URL") })

	v := newTestViper(dir)
	v.Set("network", "staging")
	cfg, err := Provider(v)
	require.NoError(t, err)
	assert.Equal(t, "http://staging:8545", cfg.Network.RPCURL)
}

func TestParseBalance(t *testing.T) {
	tests := []struct {
		in      string
		want    string
		wantErr bool
	}{
		{in: "1000", want: "1000"},
		{in: "7wei", want: "7"},
		{in: "5gwei", want: "5000000000"},
		{in: "100ether", want: "100000000000000000000"},
		{in: "1_000 gwei", want: "1000000000000"},
		{in: "", wantErr: true},
		{in: "-1", wantErr: true},
		{in: "1.5ether", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseBalance(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			want, _ := new(big.Int).SetString(tt.want, 10)
			assert.Equal(t, 0, want.Cmp(got))
		})
	}
}
