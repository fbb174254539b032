package main

import (
	"fmt"
	"strings"

	"github.com/aretw0/wireframe"
	"github.com/aretw0/wireframe/internal/cli"
	"github.com/aretw0/wireframe/internal/presentation/tui"
	"github.com/spf13/cobra"
)

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number of wireframe",
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "wireframe version %s\n", strings.TrimSpace(wireframe.Version))
	},
}

func printBanner(app *cli.App) {
	if app.Interactive() {
		tui.PrintBanner(app.Out, strings.TrimSpace(wireframe.Version))
	}
}

func init() {
	rootCmd.AddCommand(versionCmd)
}
