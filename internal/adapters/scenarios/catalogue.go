package scenarios

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/trebuchet-org/counter-harness/internal/domain"
	"github.com/trebuchet-org/counter-harness/internal/domain/config"
	"github.com/trebuchet-org/counter-harness/internal/usecase"
	"gopkg.in/yaml.v3"
)

//go:embed scenarios.yaml
var builtin []byte

// File is the on-disk scenario file layout
type File struct {
	Scenarios []domain.Scenario `yaml:"scenarios"`
}

// Catalogue loads scenarios from YAML files
type Catalogue struct {
	projectRoot string
	log         *slog.Logger
}

// NewCatalogue creates a new scenario catalogue
func NewCatalogue(cfg *config.RuntimeConfig, log *slog.Logger) *Catalogue {
	return &Catalogue{
		projectRoot: cfg.ProjectRoot,
		log:         log.With("component", "ScenarioCatalogue"),
	}
}

// Load reads the scenario file at path, or the built-in scenarios when path is empty
func (c *Catalogue) Load(ctx context.Context, path string) ([]domain.Scenario, error) {
	if path == "" {
		return Parse(builtin)
	}

	if !filepath.IsAbs(path) {
		path = filepath.Join(c.projectRoot, path)
	}
	c.log.Debug("loading scenarios", "path", path)

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("scenario file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to read scenario file: %w", err)
	}

	scenarios, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return scenarios, nil
}

// Parse decodes and validates scenario YAML. Unknown keys are rejected.
func Parse(data []byte) ([]domain.Scenario, error) {
	var file File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&file); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse YAML: %w", err)
	}

	if len(file.Scenarios) == 0 {
		return nil, fmt.Errorf("no scenarios defined")
	}

	seen := make(map[string]bool, len(file.Scenarios))
	for i, s := range file.Scenarios {
		if err := s.Validate(); err != nil {
			return nil, err
		}
		if seen[s.Name] {
			return nil, fmt.Errorf("duplicate scenario name %q", s.Name)
		}
		seen[s.Name] = true

		// Operation names are case-insensitive in files
		for j, step := range s.Steps {
			if step.Call != "" {
				file.Scenarios[i].Steps[j].Call, _ = domain.ParseOperation(string(step.Call))
			}
		}
	}

	return file.Scenarios, nil
}

var _ usecase.ScenarioSource = (*Catalogue)(nil)
