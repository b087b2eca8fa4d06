package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/counter-harness/internal/cli/render"
	"github.com/trebuchet-org/counter-harness/internal/domain"
	"github.com/trebuchet-org/counter-harness/internal/usecase"
)

var counterShort = map[domain.Operation]string{
	domain.OpIncrement: "Add one to a deployed counter",
	domain.OpDecrement: "Subtract one from a deployed counter",
	domain.OpReset:     "Set a deployed counter back to zero",
	domain.OpCount:     "Read the value of a deployed counter",
}

// NewCounterCmds creates one command per counter operation
func NewCounterCmds() []*cobra.Command {
	cmds := make([]*cobra.Command, 0, len(domain.Operations))
	for _, op := range domain.Operations {
		cmds = append(cmds, newCounterCmd(op))
	}
	return cmds
}

func newCounterCmd(op domain.Operation) *cobra.Command {
	cmd := &cobra.Command{
		Use:   fmt.Sprintf("%s [address]", op),
		Short: counterShort[op],
		Long: fmt.Sprintf(`Call %s() on a counter deployed with 'counter deploy'.

Without an address the counter is picked from the deployments on the selected
network; any address holding a counter can be given directly.`, op),
		Example: fmt.Sprintf("  counter %s --network anvil\n  counter %s 0x5FbDB2315678afecb367f032d93F642f64180aa3 -n anvil", op, op),
		Args:    cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.InvokeCounterParams{Operation: op}
			if len(args) == 1 {
				params.Address = args[0]
			}

			result, err := app.InvokeCounter.Run(cmd.Context(), params)
			stopProgress(cmd)
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return render.RenderJSON(cmd.OutOrStdout(), map[string]any{
					"address":   result.Deployment.Address,
					"network":   result.Network,
					"operation": result.Result.Operation,
					"value":     result.Result.Value,
					"txHash":    result.Result.TxHash,
				})
			}
			return render.NewCounterRenderer(cmd.OutOrStdout()).RenderInvoke(result)
		},
	}

	cmd.Flags().Bool("json", false, "Output the result as JSON")
	return cmd
}
