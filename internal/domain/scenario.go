package domain

import (
	"fmt"
	"math/big"
	"math/rand/v2"
	"time"
)

// Step is a single scenario instruction: either call an operation or expect a count
type Step struct {
	Call   Operation `yaml:"call,omitempty" json:"call,omitempty"`
	Expect *int64    `yaml:"expect,omitempty" json:"expect,omitempty"`
}

// IsExpectation reports whether the step reads and asserts the count
func (s Step) IsExpectation() bool {
	return s.Expect != nil
}

func (s Step) String() string {
	if s.Expect != nil {
		return fmt.Sprintf("expect %d", *s.Expect)
	}
	return string(s.Call)
}

// Validate checks that the step is exactly one of call or expect
func (s Step) Validate() error {
	switch {
	case s.Call != "" && s.Expect != nil:
		return fmt.Errorf("step sets both call and expect")
	case s.Call == "" && s.Expect == nil:
		return fmt.Errorf("step sets neither call nor expect")
	case s.Call != "":
		_, err := ParseOperation(string(s.Call))
		return err
	}
	return nil
}

// CallStep builds a step that invokes op
func CallStep(op Operation) Step {
	return Step{Call: op}
}

// ExpectStep builds a step that asserts the count equals v
func ExpectStep(v int64) Step {
	return Step{Expect: &v}
}

// RandomWalk generates a seeded sequence of increments and decrements
type RandomWalk struct {
	Steps int    `yaml:"steps" json:"steps"`
	Seed  uint64 `yaml:"seed" json:"seed"`
}

// Scenario is a named sequence of steps run against a freshly deployed counter
type Scenario struct {
	Name        string      `yaml:"name" json:"name"`
	Description string      `yaml:"description,omitempty" json:"description,omitempty"`
	Steps       []Step      `yaml:"steps,omitempty" json:"steps,omitempty"`
	Random      *RandomWalk `yaml:"random,omitempty" json:"random,omitempty"`
}

// Validate checks the scenario's steps
func (s Scenario) Validate() error {
	if s.Name == "" {
		return fmt.Errorf("scenario has no name")
	}
	for i, step := range s.Steps {
		if err := step.Validate(); err != nil {
			return fmt.Errorf("scenario %s step %d: %w", s.Name, i+1, err)
		}
	}
	if s.Random != nil && s.Random.Steps < 0 {
		return fmt.Errorf("scenario %s: random steps must not be negative", s.Name)
	}
	return nil
}

// Plan expands the scenario into the concrete steps to execute. A random walk is
// appended after the explicit steps and closed with an expectation of its net sum.
func (s Scenario) Plan() []Step {
	plan := make([]Step, 0, len(s.Steps))
	plan = append(plan, s.Steps...)
	if s.Random == nil || s.Random.Steps == 0 {
		return plan
	}

	model := NewCounter()
	for _, step := range s.Steps {
		if step.Call != "" {
			_, _ = model.Apply(step.Call)
		}
	}

	rng := rand.New(rand.NewPCG(s.Random.Seed, s.Random.Seed^0x9e3779b97f4a7c15))
	for range s.Random.Steps {
		op := OpIncrement
		if rng.IntN(2) == 1 {
			op = OpDecrement
		}
		_, _ = model.Apply(op)
		plan = append(plan, CallStep(op))
	}
	return append(plan, ExpectStep(model.Count().Int64()))
}

// StepResult records what a single step observed
type StepResult struct {
	Index   int      `json:"index"`
	Step    Step     `json:"step"`
	Value   *big.Int `json:"value,omitempty"`
	Model   *big.Int `json:"model,omitempty"`
	TxHash  string   `json:"txHash,omitempty"`
	GasUsed uint64   `json:"gasUsed,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// ScenarioResult is the outcome of one scenario
type ScenarioResult struct {
	Name     string          `json:"name"`
	Passed   bool            `json:"passed"`
	Contract *ContractHandle `json:"contract,omitempty"`
	Steps    []StepResult    `json:"steps"`
	Error    string          `json:"error,omitempty"`
	Duration time.Duration   `json:"duration"`

	Err error `json:"-"`
}

// ScenarioReport is the outcome of a harness run
type ScenarioReport struct {
	Network  NetworkInfo       `json:"network"`
	Results  []*ScenarioResult `json:"results"`
	Passed   int               `json:"passed"`
	Failed   int               `json:"failed"`
	Duration time.Duration     `json:"duration"`
}

// OK reports whether every scenario passed
func (r *ScenarioReport) OK() bool {
	return r.Failed == 0
}
