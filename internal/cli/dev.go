package cli

import (
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/counter-harness/internal/cli/render"
	"github.com/trebuchet-org/counter-harness/internal/usecase"
)

// anvilCommands lists the dev anvil subcommands in help order
var anvilCommands = []struct {
	op          usecase.AnvilOperation
	short, long string
}{
	{usecase.AnvilStart, "Start local anvil node", "Start a local anvil node in the background. Fails if already running."},
	{usecase.AnvilStop, "Stop local anvil node", "Stop the local anvil node if running."},
	{usecase.AnvilRestart, "Restart local anvil node", "Restart the local anvil node. Counters deployed to it are lost."},
	{usecase.AnvilStatus, "Show anvil status", "Show pid, RPC url and health of the local anvil node."},
	{usecase.AnvilLogs, "Show anvil logs", "Follow the log of the local anvil node until interrupted."},
}

// NewDevCmd groups local node tooling under `counter dev`
func NewDevCmd() *cobra.Command {
	anvil := &cobra.Command{
		Use:   "anvil",
		Short: "Manage local anvil node",
		Long: `Manage a local anvil node. The default instance listens on port 8545, which
is where the built-in "anvil" network points.`,
	}
	for _, c := range anvilCommands {
		anvil.AddCommand(newAnvilOpCmd(c.op, c.short, c.long))
	}

	dev := &cobra.Command{
		Use:   "dev",
		Short: "Development utilities",
		Long:  `Development utilities for running counters against a local node.`,
	}
	dev.AddCommand(anvil)
	return dev
}

func newAnvilOpCmd(op usecase.AnvilOperation, short, long string) *cobra.Command {
	var params usecase.ManageAnvilParams

	cmd := &cobra.Command{
		Use:   string(op),
		Short: short,
		Long:  long,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			params.Operation = op
			if op == usecase.AnvilLogs {
				return followAnvilLogs(cmd, params)
			}
			return runAnvilOp(cmd, params)
		},
	}

	cmd.Flags().StringVar(&params.Name, "name", "anvil", "Instance name")
	cmd.Flags().StringVar(&params.Port, "port", "8545", "RPC port to bind")
	cmd.Flags().StringVar(&params.ChainID, "chain-id", "", "Chain ID to use for the instance (optional)")
	return cmd
}

func runAnvilOp(cmd *cobra.Command, params usecase.ManageAnvilParams) error {
	app, err := getApp(cmd)
	if err != nil {
		return err
	}

	result, err := app.ManageAnvil.Execute(cmd.Context(), params)
	stopProgress(cmd)
	if err != nil {
		return err
	}
	return render.NewAnvilRenderer(cmd.OutOrStdout()).Render(result)
}

// followAnvilLogs prints a header naming the log file, then streams it
func followAnvilLogs(cmd *cobra.Command, params usecase.ManageAnvilParams) error {
	app, err := getApp(cmd)
	if err != nil {
		return err
	}

	params.Operation = usecase.AnvilStatus
	current, err := app.ManageAnvil.Execute(cmd.Context(), params)
	if err != nil {
		return err
	}
	stopProgress(cmd)
	render.NewAnvilRenderer(cmd.OutOrStdout()).RenderLogsHeader(current.Instance.Name, current.Status.LogFile)

	params.Operation = usecase.AnvilLogs
	params.Logs = cmd.OutOrStdout()
	_, err = app.ManageAnvil.Execute(cmd.Context(), params)
	return err
}
