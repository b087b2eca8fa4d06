package usecase

import (
	"context"
	"fmt"
	"io"

	"github.com/trebuchet-org/counter-harness/internal/domain"
	"github.com/trebuchet-org/counter-harness/internal/domain/config"
)

// BuildContractsParams contains parameters for a build
type BuildContractsParams struct {
	Stream io.Writer // compiler output destination, nil to capture it
}

// BuildContractsResult contains the result of a build
type BuildContractsResult struct {
	// Artifact is the configured counter artifact, checked after the build.
	// Nil when the harness runs on the embedded artifact.
	Artifact *domain.Artifact
}

// BuildContracts compiles the project and checks the configured artifact is a usable counter
type BuildContracts struct {
	config    *config.RuntimeConfig
	builder   ContractBuilder
	artifacts ArtifactLoader
	progress  ProgressSink
}

// NewBuildContracts creates a new BuildContracts use case
func NewBuildContracts(cfg *config.RuntimeConfig, builder ContractBuilder, artifacts ArtifactLoader, progress ProgressSink) *BuildContracts {
	return &BuildContracts{
		config:    cfg,
		builder:   builder,
		artifacts: artifacts,
		progress:  progress,
	}
}

// Run executes the build
func (uc *BuildContracts) Run(ctx context.Context, params BuildContractsParams) (*BuildContractsResult, error) {
	if params.Stream == nil {
		uc.progress.OnProgress(ctx, ProgressEvent{
			Stage:   "building",
			Message: "Building contracts",
			Spinner: true,
		})
	}

	if err := uc.builder.Build(ctx, BuildOptions{Stream: params.Stream}); err != nil {
		return nil, err
	}

	result := &BuildContractsResult{}
	if uc.config.Harness.Artifact != "" {
		artifact, err := uc.artifacts.Load(ctx, uc.config.Harness.Artifact)
		if err != nil {
			return nil, fmt.Errorf("build succeeded but the counter artifact is unusable: %w", err)
		}
		result.Artifact = artifact
	}

	uc.progress.OnProgress(ctx, ProgressEvent{Stage: "complete", Message: "Build complete"})
	return result, nil
}
