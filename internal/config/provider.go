package config

import (
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/params"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/trebuchet-org/counter-harness/internal/domain/config"
)

// SimulatedNetwork names the in-process chain used when no network is selected
const SimulatedNetwork = "simulated"

const defaultTimeout = 5 * time.Minute

// Provider creates RuntimeConfig for Wire dependency injection
func Provider(v *viper.Viper) (*config.RuntimeConfig, error) {
	projectRoot := v.GetString("project_root")
	if projectRoot == "" {
		var err error
		projectRoot, err = FindProjectRoot()
		if err != nil {
			if projectRoot, err = os.Getwd(); err != nil {
				return nil, fmt.Errorf("failed to resolve working directory: %w", err)
			}
		}
	}

	file, source, err := LoadProjectFile(projectRoot)
	if err != nil {
		return nil, err
	}

	cfg := &config.RuntimeConfig{
		ProjectRoot:    projectRoot,
		DataDir:        filepath.Join(projectRoot, ".counter"),
		Debug:          v.GetBool("debug"),
		NonInteractive: v.GetBool("non_interactive"),
		JSON:           v.GetBool("json"),
		Networks:       map[string]string{"anvil": DefaultAnvilURL},
		PrivateKey:     file.Wallet.PrivateKey,
		ConfigSource:   source,
	}
	for name, url := range file.Networks {
		cfg.Networks[name] = url
	}
	if key := v.GetString("private_key"); key != "" {
		cfg.PrivateKey = key
	}

	if cfg.Timeout, err = resolveTimeout(v, file); err != nil {
		return nil, err
	}
	if cfg.Harness, err = resolveHarness(v, file); err != nil {
		return nil, err
	}

	if networkName := v.GetString("network"); networkName != "" && networkName != SimulatedNetwork {
		network, err := ResolveNetwork(cfg, networkName)
		if err != nil {
			return nil, fmt.Errorf("failed to resolve network %s: %w", networkName, err)
		}
		cfg.Network = network
	}

	return cfg, nil
}

// ResolveNetwork looks a network name up in the configured [networks] table
func ResolveNetwork(cfg *config.RuntimeConfig, networkName string) (*config.Network, error) {
	url, ok := cfg.Networks[networkName]
	if !ok {
		return nil, fmt.Errorf("network '%s' not found in %s [networks]", networkName, ProjectFileName)
	}
	if strings.TrimSpace(url) == "" {
		return nil, unresolvedNetworkError(cfg.ProjectRoot, networkName)
	}
	return &config.Network{Name: networkName, RPCURL: url}, nil
}

func resolveTimeout(v *viper.Viper, file *config.ProjectFile) (time.Duration, error) {
	raw := v.GetString("timeout")
	if raw == "" {
		raw = file.Harness.Timeout
	}
	if raw == "" {
		return defaultTimeout, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid timeout %q: %w", raw, err)
	}
	return d, nil
}

func resolveHarness(v *viper.Viper, file *config.ProjectFile) (config.HarnessConfig, error) {
	h := config.HarnessConfig{
		Wallets:   file.Harness.Wallets,
		Artifact:  file.Harness.Artifact,
		Scenarios: file.Harness.Scenarios,
		Balance:   new(big.Int).Mul(big.NewInt(100), big.NewInt(params.Ether)),
	}
	if w := v.GetInt("wallets"); w > 0 {
		h.Wallets = w
	}
	if h.Wallets <= 0 {
		h.Wallets = 1
	}
	if a := v.GetString("artifact"); a != "" {
		h.Artifact = a
	}
	if s := v.GetString("file"); s != "" {
		h.Scenarios = s
	}

	balance := v.GetString("balance")
	if balance == "" {
		balance = file.Harness.Balance
	}
	if balance != "" {
		b, err := ParseBalance(balance)
		if err != nil {
			return h, err
		}
		h.Balance = b
	}
	return h, nil
}

// FindProjectRoot walks up from current directory to find counter.toml
func FindProjectRoot() (string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return "", err
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, ProjectFileName)); err == nil {
			return dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			return "", fmt.Errorf("%s not found", ProjectFileName)
		}
		dir = parent
	}
}

// SetupViper creates and configures a viper instance
func SetupViper(projectRoot string, cmd *cobra.Command) *viper.Viper {
	v := viper.New()

	// Set up environment variables
	v.SetEnvPrefix("COUNTER")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_", ".", "_"))
	v.AutomaticEnv()

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("non_interactive", false)
	v.SetDefault("project_root", projectRoot)

	if cmd != nil {
		cmd.Flags().VisitAll(func(f *pflag.Flag) {
			key := strings.ReplaceAll(f.Name, "-", "_")
			if err := v.BindPFlag(key, f); err != nil {
				panic(err)
			}
		})
	}

	return v
}
