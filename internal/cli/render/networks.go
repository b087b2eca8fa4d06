package render

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/trebuchet-org/counter-harness/internal/domain"
	"github.com/trebuchet-org/counter-harness/internal/usecase"
)

// NetworksRenderer renders network lists
type NetworksRenderer struct {
	out io.Writer
}

// NewNetworksRenderer creates a new networks renderer
func NewNetworksRenderer(out io.Writer) *NetworksRenderer {
	return &NetworksRenderer{out: out}
}

// RenderNetworksList renders one table row per network, the active one marked
func (r *NetworksRenderer) RenderNetworksList(result *usecase.ListNetworksResult) error {
	fmt.Fprintln(r.out, "🌐 Networks:")
	fmt.Fprintln(r.out)

	table := make(TableData, 0, len(result.Networks))
	for _, network := range result.Networks {
		marker := " "
		if network.Name == result.Active || (result.Active == "" && network.Kind == domain.NetworkKindSimulated) {
			marker = color.New(color.FgCyan).Sprint("▸")
		}

		switch {
		case network.Kind == domain.NetworkKindSimulated:
			table = append(table, []string{marker, network.Name, color.New(color.FgGreen).Sprint("✓ in-process"),
				faintStyle.Sprint("fresh chain per scenario"), ""})
		case network.Error != nil:
			table = append(table, []string{marker, network.Name, color.New(color.FgRed).Sprint("✗ unreachable"),
				faintStyle.Sprint(network.Error.Error()), ""})
		default:
			table = append(table, []string{marker, network.Name, color.New(color.FgGreen).Sprintf("✓ chain %d", network.ChainID),
				faintStyle.Sprint(network.RPCURL), counterCount(network.Counters)})
		}
	}

	fmt.Fprint(r.out, renderTable(table, columnWidths(table), "  "))
	fmt.Fprintln(r.out)
	if len(result.Networks) == 1 {
		faintStyle.Fprintln(r.out, "Add RPC endpoints to counter.toml [networks] to deploy persistent counters.")
	}
	return nil
}

func counterCount(n int) string {
	switch n {
	case 0:
		return ""
	case 1:
		return "1 counter"
	default:
		return fmt.Sprintf("%d counters", n)
	}
}
