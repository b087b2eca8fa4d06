package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/trebuchet-org/counter-harness/internal/cli/render"
	"github.com/trebuchet-org/counter-harness/internal/usecase"
)

// NewTestCmd creates the test command that runs the scenario harness
func NewTestCmd() *cobra.Command {
	var (
		selectScenarios bool
		verbose         bool
	)

	cmd := &cobra.Command{
		Use:   "test [scenario...]",
		Short: "Run counter scenarios against freshly deployed contracts",
		Long: `Run counter scenarios. Each scenario deploys a new Counter on its own network,
executes its steps and checks every value against a local model.

With no arguments every scenario in the catalogue runs. The built-in catalogue
covers deployment, increment, decrement, reset and their algebraic laws; use
--file to load your own YAML scenarios.`,
		Example: `  # Run all built-in scenarios on simulated chains
  counter test

  # Run two scenarios and show every step
  counter test increment reset -v

  # Pick scenarios interactively
  counter test --select

  # Run against a local anvil node, report as JSON
  counter test --network anvil --json`,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			names := args
			if selectScenarios {
				if app.Config.NonInteractive {
					return fmt.Errorf("--select needs an interactive terminal")
				}
				catalogue, err := app.RunScenarios.Catalogue(cmd.Context())
				if err != nil {
					return err
				}
				names, err = SelectScenarios(catalogue, "Select scenarios to run")
				if err != nil {
					return err
				}
			}

			report, err := app.RunScenarios.Run(cmd.Context(), usecase.RunScenariosParams{Names: names})
			stopProgress(cmd)
			if err != nil {
				return err
			}

			if app.Config.JSON {
				if err := render.RenderJSON(cmd.OutOrStdout(), report); err != nil {
					return err
				}
			} else if err := render.NewScenarioRenderer(cmd.OutOrStdout(), verbose).Render(report); err != nil {
				return err
			}

			if !report.OK() {
				return fmt.Errorf("%d of %d scenarios failed", report.Failed, len(report.Results))
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&selectScenarios, "select", false, "Choose scenarios interactively")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show every step of every scenario")
	cmd.Flags().Bool("json", false, "Output the report as JSON")
	cmd.Flags().StringP("file", "f", "", "Scenario YAML file (default: built-in catalogue)")
	cmd.Flags().String("artifact", "", "Counter artifact: Foundry JSON or .bin with its ABI (default: embedded)")
	cmd.Flags().Int("wallets", 0, "Funded wallets per network (default 1)")
	cmd.Flags().String("balance", "", "Balance per wallet, e.g. 100ether (default 100ether)")

	return cmd
}
