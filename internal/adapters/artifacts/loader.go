package artifacts

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/trebuchet-org/counter-harness/internal/adapters/abi/bindings"
	"github.com/trebuchet-org/counter-harness/internal/domain"
	"github.com/trebuchet-org/counter-harness/internal/domain/config"
)

// EmbeddedSource marks the artifact compiled into the binary
const EmbeddedSource = "embedded"

// foundryArtifact is the subset of a forge out/<File>.sol/<Name>.json we read.
// Bytecode is either {"object": "0x..."} or a bare hex string.
type foundryArtifact struct {
	ABI      json.RawMessage `json:"abi"`
	Bytecode json.RawMessage `json:"bytecode"`
}

// Loader resolves the counter artifact to deploy
type Loader struct {
	projectRoot string
	log         *slog.Logger
}

// NewLoader creates a new artifact loader
func NewLoader(cfg *config.RuntimeConfig, log *slog.Logger) *Loader {
	return &Loader{
		projectRoot: cfg.ProjectRoot,
		log:         log.With("component", "ArtifactLoader"),
	}
}

// Load reads the artifact at path, or returns the embedded counter when path is empty.
// Supported layouts are a forge JSON artifact, or a .bin file next to a .abi / -abi.json file.
func (l *Loader) Load(ctx context.Context, path string) (*domain.Artifact, error) {
	if path == "" {
		return Embedded()
	}

	if !filepath.IsAbs(path) {
		path = filepath.Join(l.projectRoot, path)
	}
	l.log.Debug("loading artifact", "path", path)

	var (
		artifact *domain.Artifact
		err      error
	)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		artifact, err = loadFoundry(path)
	case ".bin":
		artifact, err = loadBinPair(path)
	default:
		return nil, fmt.Errorf("%w: unsupported artifact file %s", domain.ErrInvalidArtifact, path)
	}
	if err != nil {
		return nil, err
	}

	if err := Validate(artifact); err != nil {
		return nil, err
	}
	return artifact, nil
}

// Embedded returns the counter artifact compiled into the binary
func Embedded() (*domain.Artifact, error) {
	parsed, err := abi.JSON(strings.NewReader(bindings.CounterABIJSON()))
	if err != nil {
		return nil, fmt.Errorf("%w: embedded ABI: %v", domain.ErrInvalidArtifact, err)
	}
	return &domain.Artifact{
		Name:     bindings.CounterMetaData.ID,
		ABI:      &parsed,
		Bytecode: bindings.CounterBytecode(),
		Source:   EmbeddedSource,
	}, nil
}

func loadFoundry(path string) (*domain.Artifact, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read artifact: %w", err)
	}

	var raw foundryArtifact
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidArtifact, path, err)
	}
	if len(raw.ABI) == 0 {
		return nil, fmt.Errorf("%w: %s has no abi", domain.ErrInvalidArtifact, path)
	}

	code, err := decodeBytecode(raw.Bytecode)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidArtifact, path, err)
	}

	parsed, err := abi.JSON(bytes.NewReader(raw.ABI))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidArtifact, path, err)
	}

	return &domain.Artifact{
		Name:     strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
		ABI:      &parsed,
		Bytecode: code,
		Source:   path,
	}, nil
}

func decodeBytecode(raw json.RawMessage) ([]byte, error) {
	var hex string
	if err := json.Unmarshal(raw, &hex); err != nil {
		var obj struct {
			Object string `json:"object"`
		}
		if err := json.Unmarshal(raw, &obj); err != nil {
			return nil, fmt.Errorf("unrecognised bytecode field")
		}
		hex = obj.Object
	}
	return parseHex(hex)
}

func parseHex(s string) ([]byte, error) {
	s = strings.TrimSpace(s)
	if strings.Contains(s, "__$") {
		return nil, fmt.Errorf("bytecode has unlinked library references")
	}
	code := common.FromHex(s)
	if len(code) == 0 {
		return nil, fmt.Errorf("bytecode is empty")
	}
	return code, nil
}

func loadBinPair(binPath string) (*domain.Artifact, error) {
	bin, err := os.ReadFile(binPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read bytecode: %w", err)
	}
	code, err := parseHex(string(bin))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidArtifact, binPath, err)
	}

	base := strings.TrimSuffix(binPath, filepath.Ext(binPath))
	var abiData []byte
	for _, candidate := range []string{base + ".abi", base + "-abi.json", base + ".abi.json"} {
		if abiData, err = os.ReadFile(candidate); err == nil {
			break
		}
	}
	if abiData == nil {
		return nil, fmt.Errorf("%w: no ABI file next to %s", domain.ErrInvalidArtifact, binPath)
	}

	parsed, err := abi.JSON(bytes.NewReader(abiData))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", domain.ErrInvalidArtifact, binPath, err)
	}

	return &domain.Artifact{
		Name:     filepath.Base(base),
		ABI:      &parsed,
		Bytecode: code,
		Source:   binPath,
	}, nil
}

// Validate checks that the artifact exposes the counter interface
func Validate(a *domain.Artifact) error {
	if a == nil || a.ABI == nil {
		return fmt.Errorf("%w: missing ABI", domain.ErrInvalidArtifact)
	}
	if len(a.Bytecode) == 0 {
		return fmt.Errorf("%w: %s has no bytecode", domain.ErrInvalidArtifact, a.Name)
	}
	if ctor := a.ABI.Constructor; len(ctor.Inputs) > 0 {
		return fmt.Errorf("%w: %s constructor takes arguments", domain.ErrInvalidArtifact, a.Name)
	}

	for _, op := range domain.Operations {
		method, ok := a.ABI.Methods[string(op)]
		if !ok {
			return fmt.Errorf("%w: %s does not expose %s()", domain.ErrInvalidArtifact, a.Name, op)
		}
		if len(method.Inputs) != 0 {
			return fmt.Errorf("%w: %s.%s takes arguments", domain.ErrInvalidArtifact, a.Name, op)
		}
	}

	count := a.ABI.Methods[string(domain.OpCount)]
	if len(count.Outputs) != 1 || count.Outputs[0].Type.String() != "int256" {
		return fmt.Errorf("%w: %s.count must return int256", domain.ErrInvalidArtifact, a.Name)
	}
	return nil
}
