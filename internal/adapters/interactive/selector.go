package interactive

import (
	"context"
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/manifoldco/promptui"
	"github.com/sahilm/fuzzy"
	"github.com/trebuchet-org/counter-harness/internal/domain"
	"github.com/trebuchet-org/counter-harness/internal/domain/config"
	"github.com/trebuchet-org/counter-harness/internal/usecase"
)

const pageSize = 10

// counterItem is one row of the picker. Label is what the search matches.
type counterItem struct {
	Label   string
	Network string
	ChainID uint64
}

// Selector picks one registered counter when an address was not given
type Selector struct {
	config *config.RuntimeConfig
	run    func(prompt *promptui.Select) (int, string, error)
}

func NewSelector(cfg *config.RuntimeConfig) *Selector {
	return &Selector{
		config: cfg,
		run:    func(p *promptui.Select) (int, string, error) { return p.Run() },
	}
}

// SelectDeployment returns the only candidate directly and prompts otherwise
func (s *Selector) SelectDeployment(ctx context.Context, deployments []*domain.Deployment, prompt string) (*domain.Deployment, error) {
	switch {
	case len(deployments) == 0:
		return nil, fmt.Errorf("no deployments provided for selection")
	case len(deployments) == 1:
		return deployments[0], nil
	case s.config.NonInteractive:
		return nil, fmt.Errorf("%d deployments match; pass an address or --network to choose one", len(deployments))
	}

	items := counterItems(deployments)
	index, _, err := s.run(&promptui.Select{
		Label:             prompt,
		Items:             items,
		Templates:         counterTemplates(),
		Size:              pageSize,
		StartInSearchMode: true,
		Searcher:          matcher(items),
	})
	if err != nil {
		return nil, fmt.Errorf("selection cancelled: %w", err)
	}
	return deployments[index], nil
}

func counterItems(deployments []*domain.Deployment) []counterItem {
	items := make([]counterItem, 0, len(deployments))
	for _, dep := range deployments {
		items = append(items, counterItem{
			Label:   fmt.Sprintf("%s %s (%s, chain %d)", dep.Contract, dep.Address, dep.Network, dep.ChainID),
			Network: dep.Network,
			ChainID: dep.ChainID,
		})
	}
	return items
}

func counterTemplates() *promptui.SelectTemplates {
	return &promptui.SelectTemplates{
		Label:    "{{ . }}",
		Active:   "▸ {{ .Label | cyan }}",
		Inactive: "  {{ .Label | faint }}",
		Selected: "✓ {{ .Label | green }}",
		Details:  "network: {{ .Network | bold }}  chain id: {{ .ChainID }}",
		Help:     color.YellowString("↑/↓ to move, type to filter, Enter to pick"),
	}
}

// matcher accepts substring hits first and falls back to fuzzy matching
func matcher(items []counterItem) func(input string, index int) bool {
	return func(input string, index int) bool {
		if input == "" {
			return true
		}
		needle := strings.ToLower(input)
		hay := strings.ToLower(items[index].Label)
		return strings.Contains(hay, needle) || len(fuzzy.Find(needle, []string{hay})) > 0
	}
}

var _ usecase.DeploymentSelector = (*Selector)(nil)
