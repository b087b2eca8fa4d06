package progress

import (
	"bytes"
	"context"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/trebuchet-org/counter-harness/internal/usecase"
)

func TestFormatEvent(t *testing.T) {
	assert.Equal(t, "[2/5] increment", formatEvent(usecase.ProgressEvent{Current: 2, Total: 5, Message: "increment"}))
	assert.Equal(t, "deploying", formatEvent(usecase.ProgressEvent{Message: "deploying"}))
}

func TestSpinnerProgress_Messages(t *testing.T) {
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = false })

	var buf bytes.Buffer
	p := NewSpinnerProgress(&buf)

	p.OnProgress(context.Background(), usecase.ProgressEvent{Stage: "scenario", Current: 1, Total: 2, Message: "increment", Spinner: true})
	p.Info("deployed Counter")
	p.Error("scenario failed")
	p.OnProgress(context.Background(), usecase.ProgressEvent{Stage: "done"})
	p.Stop()

	assert.Contains(t, buf.String(), "deployed Counter\n")
	assert.Contains(t, buf.String(), "scenario failed\n")
	assert.False(t, p.spinner.Active())
}
