package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStep_Validate(t *testing.T) {
	assert.NoError(t, CallStep(OpReset).Validate())
	assert.NoError(t, ExpectStep(3).Validate())

	both := ExpectStep(1)
	both.Call = OpIncrement
	assert.Error(t, both.Validate())

	assert.Error(t, Step{}.Validate())
	assert.ErrorIs(t, Step{Call: "square"}.Validate(), ErrUnknownOperation)
}

func TestScenario_Validate(t *testing.T) {
	s := Scenario{Name: "bad", Steps: []Step{CallStep(OpIncrement), {}}}
	err := s.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "step 2")

	assert.Error(t, Scenario{}.Validate())
	assert.Error(t, Scenario{Name: "neg", Random: &RandomWalk{Steps: -1}}.Validate())
}

func TestScenario_PlanWithoutRandom(t *testing.T) {
	s := Scenario{Name: "inc", Steps: []Step{CallStep(OpIncrement), ExpectStep(1)}}
	assert.Equal(t, s.Steps, s.Plan())
}

func TestScenario_PlanRandomWalk(t *testing.T) {
	s := Scenario{
		Name:   "walk",
		Steps:  []Step{CallStep(OpIncrement)},
		Random: &RandomWalk{Steps: 25, Seed: 7},
	}

	plan := s.Plan()
	require.Len(t, plan, 1+25+1)

	var net int64
	for _, step := range plan[:len(plan)-1] {
		switch step.Call {
		case OpIncrement:
			net++
		case OpDecrement:
			net--
		default:
			t.Fatalf("unexpected step %s", step)
		}
	}

	last := plan[len(plan)-1]
	require.True(t, last.IsExpectation())
	assert.Equal(t, net, *last.Expect)

	// same seed, same walk
	assert.Equal(t, plan, s.Plan())
}

func TestStep_String(t *testing.T) {
	assert.Equal(t, "increment", CallStep(OpIncrement).String())
	assert.Equal(t, "expect -2", ExpectStep(-2).String())
}
