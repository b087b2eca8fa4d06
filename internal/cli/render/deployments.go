package render

import (
	"fmt"
	"io"
	"math/big"
	"sort"
	"strings"

	"github.com/fatih/color"
	"github.com/samber/lo"
	"github.com/trebuchet-org/counter-harness/internal/domain"
	"github.com/trebuchet-org/counter-harness/internal/usecase"
)

// Color styles for table format
var (
	networkBg          = color.BgYellow
	chainBg            = color.BgCyan
	networkHeader      = color.New(networkBg, color.FgBlack)
	networkHeaderBold  = color.New(networkBg, color.FgBlack, color.Bold)
	chainHeader        = color.New(chainBg, color.FgBlack)
	chainHeaderBold    = color.New(chainBg, color.FgBlack, color.Bold)
	contractStyle      = color.New(color.FgGreen, color.Bold)
	timestampStyle     = color.New(color.Faint)
	liveStyle          = color.New(color.FgGreen)
	goneStyle          = color.New(color.FgRed)
	deploymentKeyStyle = color.New(color.Faint)
)

// DeploymentsRenderer renders deployment lists as formatted tables with tree-style layout
type DeploymentsRenderer struct {
	out io.Writer
}

// NewDeploymentsRenderer creates a new deployments renderer
func NewDeploymentsRenderer(out io.Writer) *DeploymentsRenderer {
	return &DeploymentsRenderer{out: out}
}

// RenderDeploymentList renders deployments grouped by network and chain
func (r *DeploymentsRenderer) RenderDeploymentList(result *usecase.DeploymentListResult) error {
	if len(result.Deployments) == 0 {
		fmt.Fprintln(r.out, "No deployments found")
		return nil
	}

	byNetwork := lo.GroupBy(result.Deployments, func(d *domain.Deployment) string { return d.Network })
	networks := lo.Keys(byNetwork)
	sort.Strings(networks)

	// Build all tables first for consistent column widths
	tables := make(map[string]TableData, len(networks))
	for _, network := range networks {
		tables[network] = r.buildDeploymentTable(byNetwork[network], result.Status, result.Counts)
	}
	widths := columnWidths(lo.Values(tables)...)

	for _, network := range networks {
		label := fmt.Sprintf("%-12s", "network:")
		value := fmt.Sprintf("%-30s", strings.ToUpper(network))
		fmt.Fprintln(r.out, networkHeader.Sprintf("   ◎ %s %s", label, networkHeaderBold.Sprint(value)))

		byChain := lo.GroupBy(byNetwork[network], func(d *domain.Deployment) uint64 { return d.ChainID })
		chainIDs := lo.Keys(byChain)
		sort.Slice(chainIDs, func(i, j int) bool { return chainIDs[i] < chainIDs[j] })

		for idx, chainID := range chainIDs {
			last := idx == len(chainIDs)-1
			treePrefix, continuation := "├─", "│ "
			if last {
				treePrefix, continuation = "└─", "  "
			}

			chainLabel := fmt.Sprintf("%-12s", "chain:")
			chainValue := fmt.Sprintf("%-30d", chainID)
			fmt.Fprintf(r.out, "%s%s%s\n", treePrefix, chainHeader.Sprintf(" ⛓ %s ", chainLabel), chainHeaderBold.Sprint(chainValue))
			fmt.Fprintln(r.out, continuation)

			rows := r.buildDeploymentTable(byChain[chainID], result.Status, result.Counts)
			fmt.Fprint(r.out, renderTable(rows, widths, continuation))
			fmt.Fprintln(r.out)
			if !last {
				fmt.Fprintln(r.out, continuation)
			} else {
				fmt.Fprintln(r.out)
			}
		}
	}

	fmt.Fprintf(r.out, "Total deployments: %d\n", result.Summary.Total)
	return nil
}

// buildDeploymentTable creates a row per deployment: contract, address, status, block, time
func (r *DeploymentsRenderer) buildDeploymentTable(deployments []*domain.Deployment, status map[string]string, counts map[string]*big.Int) TableData {
	rows := make(TableData, 0, len(deployments))
	for _, dep := range deployments {
		statusCell := ""
		if status != nil {
			if reason, ok := status[dep.ID]; ok && reason == "" {
				statusCell = liveStyle.Sprint("● live")
				if count, ok := counts[dep.ID]; ok {
					statusCell = liveStyle.Sprintf("● count %s", count)
				}
			} else {
				statusCell = goneStyle.Sprintf("✗ %s", reason)
			}
		}

		rows = append(rows, []string{
			contractStyle.Sprint(dep.Contract),
			addressStyle.Sprint(dep.Address),
			statusCell,
			deploymentKeyStyle.Sprintf("block %d", dep.BlockNumber),
			timestampStyle.Sprint(dep.CreatedAt.Local().Format("2006-01-02 15:04:05")),
		})
	}
	return rows
}
