package main

import (
	"context"

	"github.com/aretw0/wireframe/internal/cli"
	"github.com/spf13/cobra"
)

var validateCmd = &cobra.Command{
	Use:   "validate <project>",
	Short: "Check the project against the widget registry",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(false, func(ctx context.Context, cmd *cobra.Command, app *cli.App, args []string) error {
		strict, _ := cmd.Flags().GetBool("strict")
		return app.Validate(ctx, args[0], strict)
	}),
}

var generateCmd = &cobra.Command{
	Use:   "generate <project>",
	Short: "Generate Flet Python code",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(false, func(ctx context.Context, cmd *cobra.Command, app *cli.App, args []string) error {
		var opts cli.GenerateOptions
		opts.Title, _ = cmd.Flags().GetString("title")
		opts.Out, _ = cmd.Flags().GetString("out")
		opts.Pretty, _ = cmd.Flags().GetBool("pretty")
		return app.Generate(ctx, args[0], opts)
	}),
}

var inspectCmd = &cobra.Command{
	Use:   "inspect <project>",
	Short: "Print the project as json, yaml, a mermaid diagram or a tree",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(false, func(ctx context.Context, cmd *cobra.Command, app *cli.App, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		return app.Inspect(ctx, args[0], format)
	}),
}

var widgetsCmd = &cobra.Command{
	Use:   "widgets",
	Short: "List the widget catalog",
	Args:  cobra.NoArgs,
	RunE: withApp(false, func(ctx context.Context, cmd *cobra.Command, app *cli.App, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		return app.Widgets(format)
	}),
}

func init() {
	rootCmd.AddCommand(validateCmd, generateCmd, inspectCmd, widgetsCmd)

	validateCmd.Flags().Bool("strict", false, "Also check property value kinds")
	generateCmd.Flags().String("title", "", "Page title (defaults to the project name)")
	generateCmd.Flags().StringP("out", "o", "", "Write the code to a file instead of stdout")
	generateCmd.Flags().Bool("pretty", false, "Highlight the code when stdout is a terminal")
	inspectCmd.Flags().StringP("format", "f", cli.FormatJSON, "Output format: json, yaml, mermaid or tree")
	widgetsCmd.Flags().StringP("format", "f", cli.FormatMarkdown, "Output format: markdown, json or yaml")
}
