package main

import (
	"context"

	"github.com/aretw0/wireframe/internal/cli"
	"github.com/spf13/cobra"
)

var newCmd = &cobra.Command{
	Use:   "new <project>",
	Short: "Create a project from the starter login screen",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(false, func(ctx context.Context, cmd *cobra.Command, app *cli.App, args []string) error {
		name, _ := cmd.Flags().GetString("name")
		blank, _ := cmd.Flags().GetBool("blank")
		if name == "" {
			name = args[0]
		}
		return app.NewProject(ctx, args[0], name, blank)
	}),
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored projects",
	Args:  cobra.NoArgs,
	RunE: withApp(false, func(ctx context.Context, cmd *cobra.Command, app *cli.App, args []string) error {
		return app.List(ctx)
	}),
}

var removeCmd = &cobra.Command{
	Use:   "rm <project>",
	Short: "Delete a stored project",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(false, func(ctx context.Context, cmd *cobra.Command, app *cli.App, args []string) error {
		return app.Remove(ctx, args[0])
	}),
}

var importCmd = &cobra.Command{
	Use:   "import <project> <file>",
	Short: "Store a project file under the given id",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(false, func(ctx context.Context, cmd *cobra.Command, app *cli.App, args []string) error {
		return app.Import(ctx, args[0], args[1])
	}),
}

var exportCmd = &cobra.Command{
	Use:   "export <project> <file>",
	Short: "Write a stored project to a file",
	Args:  cobra.ExactArgs(2),
	RunE: withApp(false, func(ctx context.Context, cmd *cobra.Command, app *cli.App, args []string) error {
		return app.Export(ctx, args[0], args[1])
	}),
}

func init() {
	rootCmd.AddCommand(newCmd, listCmd, removeCmd, importCmd, exportCmd)

	newCmd.Flags().String("name", "", "Project name (defaults to the id)")
	newCmd.Flags().Bool("blank", false, "Start from an empty Column instead of the login screen")
}
