package render

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/trebuchet-org/counter-harness/internal/domain"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

var (
	passStyle     = color.New(color.FgGreen)
	failStyle     = color.New(color.FgRed)
	nameStyle     = color.New(color.Bold)
	faintStyle    = color.New(color.Faint)
	headerStyle   = color.New(color.FgCyan, color.Bold)
	sectionStyle  = color.New(color.Bold, color.FgHiWhite)
	addressStyle  = color.New(color.FgWhite)
	scenarioTitle = cases.Title(language.English)
)

// ScenarioRenderer renders harness reports
type ScenarioRenderer struct {
	out     io.Writer
	verbose bool
}

// NewScenarioRenderer creates a new scenario renderer; verbose lists every step
func NewScenarioRenderer(out io.Writer, verbose bool) *ScenarioRenderer {
	return &ScenarioRenderer{out: out, verbose: verbose}
}

// Render prints one row per scenario followed by the failures, if any
func (r *ScenarioRenderer) Render(report *domain.ScenarioReport) error {
	network := scenarioTitle.String(report.Network.Name)
	if report.Network.ChainID != 0 {
		network = fmt.Sprintf("%s (chain %d)", network, report.Network.ChainID)
	}
	headerStyle.Fprintf(r.out, "🧪 Counter scenarios on %s\n\n", network)

	if len(report.Results) == 0 {
		fmt.Fprintln(r.out, "No scenarios to run")
		return nil
	}

	rows := make(TableData, 0, len(report.Results))
	for _, result := range report.Results {
		rows = append(rows, scenarioRow(result))
	}
	fmt.Fprint(r.out, renderTable(rows, columnWidths(rows), "  "))
	fmt.Fprintln(r.out)

	if r.verbose {
		for _, result := range report.Results {
			r.renderSteps(result)
		}
	}

	failed := 0
	for _, result := range report.Results {
		if result.Passed {
			continue
		}
		if failed == 0 {
			fmt.Fprintln(r.out)
			sectionStyle.Fprintln(r.out, "FAILURES")
		}
		failed++
		failStyle.Fprintf(r.out, "  %s\n", result.Name)
		fmt.Fprintf(r.out, "    %s\n", result.Error)
	}

	fmt.Fprintln(r.out)
	summary := fmt.Sprintf("%d passed, %d failed in %s", report.Passed, report.Failed, report.Duration.Round(time.Millisecond))
	if report.OK() {
		passStyle.Fprintln(r.out, summary)
	} else {
		failStyle.Fprintln(r.out, summary)
	}
	return nil
}

func scenarioRow(result *domain.ScenarioResult) []string {
	status := passStyle.Sprint("✓")
	if !result.Passed {
		status = failStyle.Sprint("✗")
	}

	var gas uint64
	for _, step := range result.Steps {
		gas += step.GasUsed
	}

	contract := ""
	if result.Contract != nil {
		contract = addressStyle.Sprint(result.Contract.Address.Hex())
	}

	return []string{
		status + " " + nameStyle.Sprint(result.Name),
		fmt.Sprintf("%d steps", len(result.Steps)),
		faintStyle.Sprintf("%d gas", gas),
		contract,
		faintStyle.Sprint(result.Duration.Round(time.Millisecond)),
	}
}

func (r *ScenarioRenderer) renderSteps(result *domain.ScenarioResult) {
	fmt.Fprintln(r.out)
	nameStyle.Fprintf(r.out, "  %s\n", result.Name)
	if len(result.Steps) == 0 {
		faintStyle.Fprintln(r.out, "    (deploy only)")
		return
	}
	for _, step := range result.Steps {
		value := "-"
		if step.Value != nil {
			value = step.Value.String()
		}
		line := fmt.Sprintf("    %2d. %-12s → %s", step.Index, step.Step.String(), value)
		if step.TxHash != "" {
			line += faintStyle.Sprintf("  %s", step.TxHash)
		}
		if step.Error != "" {
			line += " " + failStyle.Sprint(step.Error)
		}
		fmt.Fprintln(r.out, line)
	}
}
