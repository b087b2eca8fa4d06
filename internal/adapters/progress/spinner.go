package progress

import (
	"context"
	"fmt"
	"io"
	"sync"
	"time"

	"github.com/briandowns/spinner"
	"github.com/fatih/color"
	"github.com/trebuchet-org/counter-harness/internal/usecase"
)

// SpinnerProgress reports harness progress with a terminal spinner
type SpinnerProgress struct {
	mu      sync.Mutex
	out     io.Writer
	spinner *spinner.Spinner
	stage   string
	started time.Time
}

// NewSpinnerProgress creates a spinner-based progress sink writing to out
func NewSpinnerProgress(out io.Writer) *SpinnerProgress {
	s := spinner.New(spinner.CharSets[14], 100*time.Millisecond, spinner.WithWriter(out))
	s.HideCursor = false

	return &SpinnerProgress{
		out:     out,
		spinner: s,
	}
}

// OnProgress handles progress events
func (p *SpinnerProgress) OnProgress(ctx context.Context, event usecase.ProgressEvent) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if event.Stage != p.stage {
		p.stage = event.Stage
		p.started = time.Now()
	}

	if !event.Spinner {
		p.spinner.Stop()
		return
	}

	p.spinner.Suffix = " " + formatEvent(event)
	if !p.spinner.Active() {
		p.spinner.Start()
	}
}

// Info prints an info message
func (p *SpinnerProgress) Info(message string) {
	p.print(color.New(color.FgCyan), message)
}

// Error prints an error message
func (p *SpinnerProgress) Error(message string) {
	p.print(color.New(color.FgRed), message)
}

// Stop halts the spinner
func (p *SpinnerProgress) Stop() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.spinner.Stop()
}

func (p *SpinnerProgress) print(c *color.Color, message string) {
	p.mu.Lock()
	defer p.mu.Unlock()

	// Stop spinner temporarily
	wasActive := p.spinner.Active()
	if wasActive {
		p.spinner.Stop()
	}

	_, _ = c.Fprintln(p.out, message)

	if wasActive {
		p.spinner.Start()
	}
}

// formatEvent renders "[current/total] message" when a total is known
func formatEvent(event usecase.ProgressEvent) string {
	if event.Total > 0 {
		return fmt.Sprintf("[%d/%d] %s", event.Current, event.Total, event.Message)
	}
	return event.Message
}

// Ensure SpinnerProgress implements ProgressSink
var _ usecase.ProgressSink = (*SpinnerProgress)(nil)
