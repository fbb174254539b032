package main

import (
	"context"

	"github.com/aretw0/wireframe/internal/cli"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Long: `Serves the project API over HTTP with a websocket change stream per
project and prometheus metrics at /metrics.`,
	Args: cobra.NoArgs,
	RunE: withApp(true, func(ctx context.Context, cmd *cobra.Command, app *cli.App, args []string) error {
		addr, _ := cmd.Flags().GetString("addr")
		banner, _ := cmd.Flags().GetBool("banner")
		if banner {
			printBanner(app)
		}
		return app.Serve(ctx, addr)
	}),
}

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Run the Model Context Protocol (MCP) server",
	Long: `Starts the wireframe tools as an MCP Server.
This allows AI agents to list widgets, validate projects, apply commands
and generate code.

Supported Transports:
- stdio (default): Uses Standard Input/Output. Ideal for local process integration.
- sse: Uses Server-Sent Events over HTTP. Ideal for remote agents or debuggers.`,
	Args: cobra.NoArgs,
	RunE: withApp(false, func(ctx context.Context, cmd *cobra.Command, app *cli.App, args []string) error {
		transport, _ := cmd.Flags().GetString("transport")
		addr, _ := cmd.Flags().GetString("addr")
		return app.ServeMCP(ctx, transport, addr)
	}),
}

var runCmd = &cobra.Command{
	Use:   "run <project>",
	Short: "Generate the project and start it with the preview command",
	Args:  cobra.ExactArgs(1),
	RunE: withApp(false, func(ctx context.Context, cmd *cobra.Command, app *cli.App, args []string) error {
		dir, _ := cmd.Flags().GetString("dir")
		return app.Run(ctx, args[0], dir)
	}),
}

func init() {
	rootCmd.AddCommand(serveCmd, mcpCmd, runCmd)

	serveCmd.Flags().String("addr", "", "Address to listen on (defaults to server.addr)")
	serveCmd.Flags().Bool("banner", true, "Print the banner on start")
	mcpCmd.Flags().String("transport", cli.TransportStdio, "Transport protocol to use: 'stdio' or 'sse'")
	mcpCmd.Flags().String("addr", "", "Address to listen on (only for SSE)")
	runCmd.Flags().String("dir", "", "Keep main.py in this directory instead of a temporary one")
}
