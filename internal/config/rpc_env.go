package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/trebuchet-org/counter-harness/internal/domain/config"
)

// envRefPattern matches a value that is exactly one ${VAR} reference
var envRefPattern = regexp.MustCompile(`^\$\{([A-Za-z_][A-Za-z0-9_]*)\}$`)

// envRef returns the variable a raw [networks] value refers to, if it is a bare ${VAR}
func envRef(raw string) (string, bool) {
	if m := envRefPattern.FindStringSubmatch(raw); m != nil {
		return m[1], true
	}
	return "", false
}

// rpcEnvName is the conventional variable for a network's RPC URL: anvil-2 -> ANVIL_2_RPC_URL
func rpcEnvName(network string) string {
	return strings.NewReplacer("-", "_", ".", "_").Replace(strings.ToUpper(network)) + "_RPC_URL"
}

// rawNetworks reads [networks] from counter.toml before ${VAR} expansion
func rawNetworks(projectRoot string) (map[string]string, error) {
	var file config.ProjectFile
	_, err := toml.DecodeFile(filepath.Join(projectRoot, ProjectFileName), &file)
	switch {
	case errors.Is(err, os.ErrNotExist):
		return nil, nil
	case err != nil:
		return nil, fmt.Errorf("failed to parse %s: %w", ProjectFileName, err)
	}
	return file.Networks, nil
}

// unresolvedNetworkError explains why a configured network expanded to an empty URL
func unresolvedNetworkError(projectRoot, network string) error {
	raw, _ := rawNetworks(projectRoot)
	if name, ok := envRef(raw[network]); ok {
		return fmt.Errorf("network '%s' uses ${%s} which is not set (add it to .env)", network, name)
	}
	return fmt.Errorf("network '%s' has an empty RPC URL in %s (e.g. %s = \"${%s}\")",
		network, ProjectFileName, network, rpcEnvName(network))
}
