package usecase

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"slices"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/samber/lo"
	"github.com/trebuchet-org/counter-harness/internal/domain"
	"github.com/trebuchet-org/counter-harness/internal/domain/config"
)

// RunScenariosParams selects which scenarios to run
type RunScenariosParams struct {
	Names []string // empty runs every scenario in the catalogue
}

// RunScenarios is the harness: it deploys a fresh counter per scenario and
// checks every step against a local model of the counter
type RunScenarios struct {
	config    *config.RuntimeConfig
	launcher  NetworkLauncher
	artifacts ArtifactLoader
	scenarios ScenarioSource
	progress  ProgressSink
}

// NewRunScenarios creates a new RunScenarios use case
func NewRunScenarios(
	cfg *config.RuntimeConfig,
	launcher NetworkLauncher,
	artifacts ArtifactLoader,
	scenarios ScenarioSource,
	progress ProgressSink,
) *RunScenarios {
	return &RunScenarios{
		config:    cfg,
		launcher:  launcher,
		artifacts: artifacts,
		scenarios: scenarios,
		progress:  progress,
	}
}

// Catalogue returns the configured scenarios without running them
func (uc *RunScenarios) Catalogue(ctx context.Context) ([]domain.Scenario, error) {
	return uc.scenarios.Load(ctx, uc.config.Harness.Scenarios)
}

// Run executes the selected scenarios. Scenario failures are recorded in the
// report; the returned error is reserved for problems loading the inputs.
func (uc *RunScenarios) Run(ctx context.Context, params RunScenariosParams) (*domain.ScenarioReport, error) {
	start := time.Now()

	artifact, err := uc.artifacts.Load(ctx, uc.config.Harness.Artifact)
	if err != nil {
		return nil, fmt.Errorf("failed to load contract artifact: %w", err)
	}

	all, err := uc.Catalogue(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load scenarios: %w", err)
	}

	selected, err := selectScenarios(all, params.Names)
	if err != nil {
		return nil, err
	}

	opts := domain.LaunchOptions{
		Wallets: uc.config.Harness.Wallets,
		Balance: uc.config.Harness.Balance,
	}
	report := &domain.ScenarioReport{
		Network: domain.NetworkInfo{Name: "simulated", Kind: domain.NetworkKindSimulated},
		Results: make([]*domain.ScenarioResult, 0, len(selected)),
	}
	if uc.config.Network != nil {
		opts.Network = uc.config.Network.Name
		report.Network = domain.NetworkInfo{
			Name:    uc.config.Network.Name,
			Kind:    domain.NetworkKindRPC,
			ChainID: uc.config.Network.ChainID,
			RPCURL:  uc.config.Network.RPCURL,
		}
	}

	for i, scenario := range selected {
		uc.progress.OnProgress(ctx, ProgressEvent{
			Stage:   "scenario",
			Current: i + 1,
			Total:   len(selected),
			Message: scenario.Name,
			Spinner: true,
		})

		result, info := uc.runScenario(ctx, artifact, scenario, opts)
		if info != nil {
			report.Network = *info
		}
		report.Results = append(report.Results, result)

		if result.Passed {
			report.Passed++
			uc.progress.Info(fmt.Sprintf("✓ %s", scenario.Name))
		} else {
			report.Failed++
			uc.progress.Error(fmt.Sprintf("✗ %s: %s", scenario.Name, result.Error))
		}

		if ctx.Err() != nil {
			break
		}
	}

	report.Duration = time.Since(start)
	uc.progress.OnProgress(ctx, ProgressEvent{
		Stage:   "complete",
		Current: len(report.Results),
		Total:   len(selected),
		Message: fmt.Sprintf("%d passed, %d failed", report.Passed, report.Failed),
	})

	return report, nil
}

// runScenario launches a network of its own, deploys the artifact and plays
// the scenario's plan against it
func (uc *RunScenarios) runScenario(ctx context.Context, artifact *domain.Artifact, scenario domain.Scenario, opts domain.LaunchOptions) (*domain.ScenarioResult, *domain.NetworkInfo) {
	start := time.Now()
	result := &domain.ScenarioResult{Name: scenario.Name, Steps: []domain.StepResult{}}
	fail := func(err error) {
		result.Err = err
		result.Error = err.Error()
		result.Duration = time.Since(start)
	}

	if uc.config.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.config.Timeout)
		defer cancel()
	}

	session, err := uc.launcher.Launch(ctx, opts)
	if err != nil {
		fail(fmt.Errorf("failed to launch network: %w", err))
		return result, nil
	}
	defer session.Close()
	info := session.Info()

	handle, err := session.Deploy(ctx, artifact)
	if err != nil {
		fail(fmt.Errorf("failed to deploy %s: %w", artifact.Name, err))
		return result, &info
	}
	if handle.Address == (common.Address{}) {
		fail(fmt.Errorf("deploy of %s returned the zero address", artifact.Name))
		return result, &info
	}
	result.Contract = handle

	model := domain.NewCounter()
	for i, step := range scenario.Plan() {
		stepResult, err := runStep(ctx, session, handle, model, scenario.Name, i+1, step)
		result.Steps = append(result.Steps, stepResult)
		if err != nil {
			fail(err)
			return result, &info
		}
	}

	result.Passed = true
	result.Duration = time.Since(start)
	return result, &info
}

// runStep executes one step on chain and on the model, then checks they agree
func runStep(ctx context.Context, session NetworkSession, handle *domain.ContractHandle, model *domain.Counter, scenario string, index int, step domain.Step) (domain.StepResult, error) {
	sr := domain.StepResult{Index: index, Step: step}
	fail := func(err error) (domain.StepResult, error) {
		sr.Error = err.Error()
		return sr, err
	}

	op := step.Call
	if step.IsExpectation() {
		op = domain.OpCount
	}

	want, modelErr := model.Apply(op)
	call, err := session.Call(ctx, handle, op)
	sr.Model = want

	switch {
	case modelErr != nil && errors.Is(err, domain.ErrOverflow):
		// Both sides rejected the step; the value stays where it was.
		sr.Error = err.Error()
		return sr, nil
	case modelErr != nil:
		return fail(fmt.Errorf("step %d (%s): expected %w, call returned %v", index, step, domain.ErrOverflow, err))
	case err != nil:
		return fail(fmt.Errorf("step %d (%s): %w", index, step, err))
	}

	sr.Value = call.Value
	if call.TxHash != (common.Hash{}) {
		sr.TxHash = call.TxHash.Hex()
	}
	sr.GasUsed = call.GasUsed

	if call.Value == nil {
		return fail(fmt.Errorf("step %d (%s): no value observed", index, step))
	}
	if call.Value.Cmp(want) != 0 {
		return fail(&domain.AssertionError{
			Scenario: scenario,
			Step:     index,
			Expected: want,
			Actual:   call.Value,
			Source:   "model",
		})
	}
	if step.IsExpectation() {
		expected := big.NewInt(*step.Expect)
		if call.Value.Cmp(expected) != 0 {
			return fail(&domain.AssertionError{
				Scenario: scenario,
				Step:     index,
				Expected: expected,
				Actual:   call.Value,
				Source:   "expect",
			})
		}
	}

	return sr, nil
}

// selectScenarios keeps the named scenarios in the order given, or all of them
func selectScenarios(all []domain.Scenario, names []string) ([]domain.Scenario, error) {
	if len(names) == 0 {
		return all, nil
	}

	byName := lo.KeyBy(all, func(s domain.Scenario) string { return s.Name })
	selected := make([]domain.Scenario, 0, len(names))
	var missing []string
	for _, name := range lo.Uniq(names) {
		s, ok := byName[name]
		if !ok {
			missing = append(missing, name)
			continue
		}
		selected = append(selected, s)
	}
	if len(missing) > 0 {
		available := lo.Map(all, func(s domain.Scenario, _ int) string { return s.Name })
		slices.Sort(available)
		return nil, fmt.Errorf("%w: scenario %v (available: %v)", domain.ErrNotFound, missing, available)
	}
	return selected, nil
}
