package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/counter-harness/internal/cli/render"
	"github.com/trebuchet-org/counter-harness/internal/usecase"
)

// NewListCmd creates the list command
func NewListCmd() *cobra.Command {
	var check bool

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List recorded counter deployments",
		Long: `List counters recorded by 'counter deploy', grouped by network and chain.

With --check every deployment is looked up on its network; counters on an anvil
node that has since been restarted show as gone.`,
		Example: `  # List all deployments
  counter list

  # Only deployments on anvil, verified on chain
  counter list -n anvil --check`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			// Get app from context
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.ListDeploymentsParams{Check: check}
			if app.Config.Network != nil {
				params.Network = app.Config.Network.Name
			}

			result, err := app.ListDeployments.Run(cmd.Context(), params)
			stopProgress(cmd)
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return render.RenderJSON(cmd.OutOrStdout(), result.Deployments)
			}
			return render.NewDeploymentsRenderer(cmd.OutOrStdout()).RenderDeploymentList(result)
		},
	}

	cmd.Flags().BoolVar(&check, "check", false, "Read each counter's value on chain")
	cmd.Flags().Bool("json", false, "Output deployments as JSON")

	return cmd
}
