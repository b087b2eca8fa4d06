package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/counter-harness/internal/cli/render"
	"github.com/trebuchet-org/counter-harness/internal/usecase"
)

// NewBuildCmd creates the build command
func NewBuildCmd() *cobra.Command {
	var verbose bool

	cmd := &cobra.Command{
		Use:   "build",
		Short: "Compile the contracts with forge",
		Long: `Run 'forge build' in the project root. When [harness] artifact is set in
counter.toml, the built artifact is checked to be a usable counter.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := getApp(cmd)
			if err != nil {
				return err
			}

			params := usecase.BuildContractsParams{}
			if verbose {
				params.Stream = cmd.OutOrStdout()
			}

			result, err := app.BuildContracts.Run(cmd.Context(), params)
			stopProgress(cmd)
			if err != nil {
				return err
			}
			return render.NewCounterRenderer(cmd.OutOrStdout()).RenderBuild(result)
		},
	}

	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Stream forge output")
	return cmd
}
