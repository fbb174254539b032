package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aretw0/wireframe/internal/cli"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "wireframe",
	Short: "Wireframe builds Flet user interfaces from widget trees",
	Long: `Wireframe stores widget-tree projects, edits them with undoable commands,
validates them against the widget registry and generates Flet Python code.`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

func init() {
	// Persistent flags (available to all commands)
	rootCmd.PersistentFlags().String("config", "", "Config file (default $WIREFRAME_CONFIG or wireframe.yaml)")
	rootCmd.PersistentFlags().String("log-level", "", "Log level: debug, info, warn or error")
}

// withApp wraps a command body with config loading, store setup and
// cancellation on SIGINT or SIGTERM.
func withApp(metrics bool, fn func(ctx context.Context, cmd *cobra.Command, app *cli.App, args []string) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		logLevel, _ := cmd.Flags().GetString("log-level")

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		app, err := cli.Open(ctx, cli.Options{
			ConfigPath: configPath,
			LogLevel:   logLevel,
			Metrics:    metrics,
			Out:        cmd.OutOrStdout(),
		})
		if err != nil {
			return err
		}
		defer app.Close()
		return fn(ctx, cmd, app, args)
	}
}
