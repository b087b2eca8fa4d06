package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/trebuchet-org/counter-harness/internal/adapters/progress"
	"github.com/trebuchet-org/counter-harness/internal/app"
	"github.com/trebuchet-org/counter-harness/internal/config"
	"github.com/trebuchet-org/counter-harness/internal/usecase"
)

// contextKey is the type for context keys
type contextKey string

const (
	// appKey is the context key for the app instance
	appKey contextKey = "app"
)

// NewRootCmd creates the root command
func NewRootCmd() *cobra.Command {
	var cancel context.CancelFunc

	rootCmd := &cobra.Command{
		Use:   "counter",
		Short: "Integration test harness for the Counter contract",
		Long: `counter deploys the Counter contract to a fresh test network, drives its
increment, decrement, reset and count methods, and checks every result against
a local model of the counter.

Without --network each scenario runs on its own in-process simulated chain.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Skip for help/version commands
			if skipsApp(cmd) {
				return nil
			}

			// Find project root; the harness also runs outside a project
			projectRoot, err := config.FindProjectRoot()
			if err != nil {
				if projectRoot, err = os.Getwd(); err != nil {
					return err
				}
			}

			// Set up viper with every flag of the command bound
			v := config.SetupViper(projectRoot, cmd)

			var sink usecase.ProgressSink = progress.NewNopSink()
			if !v.GetBool("json") && !color.NoColor {
				sink = progress.NewSpinnerProgress(cmd.ErrOrStderr())
			}

			// Initialize app with DI
			appInstance, err := app.InitApp(v, sink)
			if err != nil {
				return fmt.Errorf("failed to initialize app: %w", err)
			}
			appInstance.Log.Debug("app initialized",
				"projectRoot", appInstance.Config.ProjectRoot,
				"config", appInstance.Config.ConfigSource)

			// Store app in context
			ctx := context.WithValue(cmd.Context(), appKey, appInstance)

			// Add timeout if configured; log streaming runs until interrupted
			if appInstance.Config.Timeout > 0 && cmd.Name() != "logs" && cmd.Name() != "test" {
				ctx, cancel = context.WithTimeout(ctx, appInstance.Config.Timeout)
			}

			cmd.SetContext(ctx)
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if cancel != nil {
				cancel()
			}
			stopProgress(cmd)
		},
	}

	// Global flags
	rootCmd.PersistentFlags().Bool("debug", false, "Enable debug output")
	rootCmd.PersistentFlags().Bool("non-interactive", false, "Disable interactive prompts")
	rootCmd.PersistentFlags().StringP("network", "n", "", "Network from counter.toml [networks] (default: in-process simulated chain)")
	rootCmd.PersistentFlags().String("timeout", "", "Timeout per scenario or command (e.g. 30s, 5m)")

	// Add command groups
	rootCmd.AddGroup(&cobra.Group{
		ID:    "main",
		Title: "Main Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "counter",
		Title: "Counter Commands",
	})
	rootCmd.AddGroup(&cobra.Group{
		ID:    "management",
		Title: "Management Commands",
	})

	// Main commands
	for _, cmd := range []*cobra.Command{NewTestCmd(), NewDeployCmd(), NewBuildCmd()} {
		cmd.GroupID = "main"
		rootCmd.AddCommand(cmd)
	}

	// Counter operations against registered deployments
	for _, cmd := range NewCounterCmds() {
		cmd.GroupID = "counter"
		rootCmd.AddCommand(cmd)
	}

	// Management commands
	for _, cmd := range []*cobra.Command{NewListCmd(), NewNetworksCmd(), NewDevCmd()} {
		cmd.GroupID = "management"
		rootCmd.AddCommand(cmd)
	}

	// Version command
	rootCmd.AddCommand(NewVersionCmd())

	return rootCmd
}

// skipsApp reports whether cmd runs without the application container
func skipsApp(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "version", "help", "completion", "__complete":
		return true
	}
	return !cmd.Runnable()
}

// stopProgress halts the spinner so it doesn't draw over the final output
func stopProgress(cmd *cobra.Command) {
	appInstance, err := getApp(cmd)
	if err != nil {
		return
	}
	if s, ok := appInstance.Progress.(*progress.SpinnerProgress); ok {
		s.Stop()
	}
}

// getApp retrieves the app instance from the command context
func getApp(cmd *cobra.Command) (*app.App, error) {
	if cmd.Context() == nil {
		return nil, fmt.Errorf("app not initialized")
	}
	appInstance := cmd.Context().Value(appKey)
	if appInstance == nil {
		return nil, fmt.Errorf("app not initialized")
	}

	app, ok := appInstance.(*app.App)
	if !ok {
		return nil, fmt.Errorf("invalid app instance")
	}

	return app, nil
}
