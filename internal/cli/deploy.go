package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/counter-harness/internal/cli/render"
	"github.com/trebuchet-org/counter-harness/internal/usecase"
)

// NewDeployCmd creates the deploy command
func NewDeployCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Deploy a counter to a persistent network",
		Long: `Deploy the Counter contract to a running node and record it in
.counter/deployments.json so later commands can drive it.`,
		Example: `  counter dev anvil start
  counter deploy --network anvil`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			result, err := app.DeployCounter.Run(cmd.Context(), usecase.DeployCounterParams{})
			stopProgress(cmd)
			if err != nil {
				return err
			}

			if app.Config.JSON {
				return render.RenderJSON(cmd.OutOrStdout(), result.Deployment)
			}
			return render.NewCounterRenderer(cmd.OutOrStdout()).RenderDeploy(result)
		},
	}

	cmd.Flags().String("artifact", "", "Counter artifact: Foundry JSON or .bin with its ABI (default: embedded)")
	cmd.Flags().Bool("json", false, "Output the deployment as JSON")

	return cmd
}
