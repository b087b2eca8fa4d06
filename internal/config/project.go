package config

import (
	"errors"
	"fmt"
	"math/big"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/ethereum/go-ethereum/params"
	"github.com/joho/godotenv"
	"github.com/trebuchet-org/counter-harness/internal/domain/config"
)

// ProjectFileName is the project configuration file looked up from the working directory
const ProjectFileName = "counter.toml"

// DefaultAnvilURL is used for the "anvil" network when counter.toml doesn't name it
const DefaultAnvilURL = "http://localhost:8545"

// loadEnvFiles loads .env files so ${VAR} references in counter.toml resolve
func loadEnvFiles(projectRoot string) {
	envFiles := []string{
		filepath.Join(projectRoot, ".env"),
		filepath.Join(projectRoot, ".env.local"),
	}

	for _, envFile := range envFiles {
		if _, err := os.Stat(envFile); err == nil {
			if err := godotenv.Load(envFile); err != nil {
				// Log warning but don't fail
				fmt.Fprintf(os.Stderr, "Warning: Failed to load %s: %v\n", envFile, err)
			}
		}
	}
}

// LoadProjectFile loads and parses counter.toml. A missing file is not an error:
// an empty ProjectFile and an empty source path are returned.
func LoadProjectFile(projectRoot string) (*config.ProjectFile, string, error) {
	loadEnvFiles(projectRoot)

	path := filepath.Join(projectRoot, ProjectFileName)
	var raw config.ProjectFile
	if _, err := toml.DecodeFile(path, &raw); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return &config.ProjectFile{}, "", nil
		}
		return nil, "", fmt.Errorf("failed to parse %s: %w", ProjectFileName, err)
	}

	networks := make(map[string]string, len(raw.Networks))
	for name, url := range raw.Networks {
		networks[name] = os.ExpandEnv(url)
	}
	raw.Networks = networks
	raw.Wallet.PrivateKey = os.ExpandEnv(raw.Wallet.PrivateKey)

	return &raw, path, nil
}

// ParseBalance parses a wei amount with an optional wei, gwei or ether suffix
func ParseBalance(s string) (*big.Int, error) {
	s = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(s), "_", ""))
	if s == "" {
		return nil, fmt.Errorf("empty balance")
	}

	unit := big.NewInt(1)
	switch {
	case strings.HasSuffix(s, "gwei"):
		unit = big.NewInt(params.GWei)
		s = strings.TrimSuffix(s, "gwei")
	case strings.HasSuffix(s, "ether"):
		unit = big.NewInt(params.Ether)
		s = strings.TrimSuffix(s, "ether")
	case strings.HasSuffix(s, "wei"):
		s = strings.TrimSuffix(s, "wei")
	}

	amount, ok := new(big.Int).SetString(strings.TrimSpace(s), 10)
	if !ok || amount.Sign() < 0 {
		return nil, fmt.Errorf("invalid balance %q", s)
	}
	return amount.Mul(amount, unit), nil
}
