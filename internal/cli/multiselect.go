package cli

import (
	"fmt"
	"slices"
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fatih/color"
	"github.com/trebuchet-org/counter-harness/internal/domain"
)

// multiSelectModel is the bubbletea model for picking scenarios
type multiSelectModel struct {
	scenarios []domain.Scenario
	cursor    int
	selected  map[int]bool
	title     string
	done      bool
	cancelled bool
}

func initialMultiSelectModel(scenarios []domain.Scenario, title string) multiSelectModel {
	return multiSelectModel{
		scenarios: scenarios,
		selected:  make(map[int]bool),
		title:     title,
	}
}

// Init is the initial command for bubbletea
func (m multiSelectModel) Init() tea.Cmd {
	return nil
}

// Update handles messages and updates the model
func (m multiSelectModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}

	switch key.String() {
	case "ctrl+c", "q", "esc":
		m.done = true
		m.cancelled = true
		return m, tea.Quit
	case "up", "k":
		if m.cursor > 0 {
			m.cursor--
		}
	case "down", "j":
		if m.cursor < len(m.scenarios)-1 {
			m.cursor++
		}
	case " ":
		m.selected[m.cursor] = !m.selected[m.cursor]
	case "a":
		all := len(m.chosen()) < len(m.scenarios)
		for i := range m.scenarios {
			m.selected[i] = all
		}
	case "enter":
		if len(m.chosen()) > 0 {
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

// View renders the UI
func (m multiSelectModel) View() string {
	if m.done {
		return ""
	}

	var b strings.Builder
	b.WriteString(color.New(color.FgCyan, color.Bold).Sprintf("%s\n\n", m.title))

	for i, scenario := range m.scenarios {
		cursor := " "
		if m.cursor == i {
			cursor = color.New(color.FgCyan).Sprint("▸")
		}

		checkbox := color.New(color.FgWhite).Sprint("○")
		if m.selected[i] {
			checkbox = color.New(color.FgGreen).Sprint("✓")
		}

		line := fmt.Sprintf("%s %s %s", cursor, checkbox, scenario.Name)
		if scenario.Description != "" {
			line += " " + color.New(color.FgHiBlack).Sprintf("- %s", scenario.Description)
		}
		b.WriteString(line + "\n")
	}

	b.WriteString("\n")
	b.WriteString(color.New(color.FgYellow).Sprint("↑/↓: move  Space: toggle  a: all  Enter: confirm  q: quit\n"))

	return b.String()
}

// chosen returns the selected indices in catalogue order
func (m multiSelectModel) chosen() []int {
	var indices []int
	for i, ok := range m.selected {
		if ok {
			indices = append(indices, i)
		}
	}
	slices.Sort(indices)
	return indices
}

// SelectScenarios shows a multi-select interface and returns the chosen scenario names
func SelectScenarios(scenarios []domain.Scenario, title string) ([]string, error) {
	if len(scenarios) == 0 {
		return nil, fmt.Errorf("no scenarios to select")
	}

	p := tea.NewProgram(initialMultiSelectModel(scenarios, title))
	finalModel, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("multi-select failed: %w", err)
	}

	m := finalModel.(multiSelectModel)
	if !m.done || m.cancelled {
		return nil, fmt.Errorf("selection cancelled")
	}

	indices := m.chosen()
	if len(indices) == 0 {
		return nil, fmt.Errorf("no scenarios selected")
	}

	names := make([]string, len(indices))
	for i, idx := range indices {
		names[i] = scenarios[idx].Name
	}
	return names, nil
}
