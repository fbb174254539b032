// Package mcp exposes the widget registry, validator and code generator as
// Model Context Protocol tools. Tools are stateless: every call carries the
// project document it works on.
package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/aretw0/wireframe"
	"github.com/aretw0/wireframe/internal/logging"
	"github.com/aretw0/wireframe/pkg/codegen"
	"github.com/aretw0/wireframe/pkg/document"
	"github.com/aretw0/wireframe/pkg/schema"
	"github.com/aretw0/wireframe/pkg/validator"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// RegistryURI names the registry resource.
const RegistryURI = "wireframe://registry"

// ValidateArgs are the arguments of validate_project.
type ValidateArgs struct {
	Document string `json:"document"`
	Strict   bool   `json:"strict"`
}

// ApplyArgs are the arguments of apply_command.
type ApplyArgs struct {
	Document string `json:"document"`
	Command  string `json:"command"`
}

// ApplyResponse is the outcome of apply_command.
type ApplyResponse struct {
	Result   wireframe.Result  `json:"result" jsonschema_description:"What the command produced"`
	Document document.Document `json:"document" jsonschema_description:"The project document after the command"`
}

// Server wraps an MCP server bound to the wireframe tools.
type Server struct {
	mcpServer *server.MCPServer
	logger    *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the logger used by tool handlers.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// NewServer creates a new MCP Server instance.
func NewServer(opts ...Option) *Server {
	s := &Server{logger: logging.NewNop()}
	for _, opt := range opts {
		opt(s)
	}
	s.mcpServer = server.NewMCPServer("wireframe-mcp", strings.TrimSpace(wireframe.Version),
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
	)
	s.registerTools()
	s.registerResources()
	return s
}

// MCPServer returns the underlying server, e.g. for in-process clients.
func (s *Server) MCPServer() *server.MCPServer { return s.mcpServer }

// ServeStdio starts the server on Stdin/Stdout.
func (s *Server) ServeStdio() error {
	return server.ServeStdio(s.mcpServer)
}

// ServeSSE serves the SSE transport on addr until ctx is done.
func (s *Server) ServeSSE(ctx context.Context, addr, baseURL string) error {
	sseServer := server.NewSSEServer(s.mcpServer, server.WithBaseURL(baseURL))

	mux := http.NewServeMux()
	mux.Handle("/sse", sseServer.SSEHandler())
	mux.Handle("/message", sseServer.MessageHandler())
	httpServer := &http.Server{Addr: addr, Handler: mux}

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("MCP Server listening (SSE)", "address", addr)
		serverErrors <- httpServer.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := httpServer.Shutdown(shutdownCtx); err != nil {
			return fmt.Errorf("could not stop server gracefully: %w", err)
		}
		return nil
	}
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.NewTool("list_widgets",
		mcp.WithDescription("List the widget catalog: types, properties, defaults and child slots."),
	), s.handleListWidgets)

	s.mcpServer.AddTool(mcp.NewTool("validate_project",
		mcp.WithDescription("Check a project document against the widget registry."),
		mcp.WithString("document", mcp.Required(), mcp.Description("Project document as JSON")),
		mcp.WithBoolean("strict", mcp.Description("Also check property value kinds")),
		mcp.WithOutputSchema[validator.Report](),
	), mcp.NewStructuredToolHandler(s.handleValidate))

	s.mcpServer.AddTool(mcp.NewTool("generate_code",
		mcp.WithDescription("Render a project document as Flet Python source."),
		mcp.WithString("document", mcp.Required(), mcp.Description("Project document as JSON")),
		mcp.WithString("title", mcp.Description("Page title (defaults to the project name)")),
	), s.handleGenerate)

	s.mcpServer.AddTool(mcp.NewTool("apply_command",
		mcp.WithDescription("Apply one editor command to a project document and return the result."),
		mcp.WithString("document", mcp.Required(), mcp.Description("Project document as JSON")),
		mcp.WithString("command", mcp.Required(),
			mcp.Description(`Command as JSON, e.g. {"op":"add","type":"Text","id":"root"}`)),
		mcp.WithOutputSchema[ApplyResponse](),
	), mcp.NewStructuredToolHandler(s.handleApply))
}

func (s *Server) handleListWidgets(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	jsonBytes, err := registryJSON()
	if err != nil {
		return nil, err
	}
	return mcp.NewToolResultText(string(jsonBytes)), nil
}

func (s *Server) handleValidate(ctx context.Context, request mcp.CallToolRequest, args ValidateArgs) (validator.Report, error) {
	project, err := document.Decode([]byte(args.Document))
	if err != nil {
		return validator.Report{}, err
	}
	var opts []validator.Option
	if args.Strict {
		opts = append(opts, validator.Strict())
	}
	report := validator.NewReport(validator.Errors(validator.ValidateAll(project.Tree, opts...)))
	s.logger.Debug("MCP validate", "valid", report.Valid, "errors", len(report.Errors))
	return report, nil
}

func (s *Server) handleGenerate(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	project, err := document.Decode([]byte(request.GetString("document", "")))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid document: %v", err)), nil
	}
	var opts []codegen.Option
	if title := request.GetString("title", ""); title != "" {
		opts = append(opts, codegen.WithTitle(title))
	}
	code, err := codegen.GenerateProject(project, opts...)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("generate failed: %v", err)), nil
	}
	return mcp.NewToolResultText(code), nil
}

func (s *Server) handleApply(ctx context.Context, request mcp.CallToolRequest, args ApplyArgs) (ApplyResponse, error) {
	project, err := document.Decode([]byte(args.Document))
	if err != nil {
		return ApplyResponse{}, err
	}
	var cmd wireframe.Command
	if err := json.Unmarshal([]byte(args.Command), &cmd); err != nil {
		return ApplyResponse{}, fmt.Errorf("invalid command: %w", err)
	}

	editor := wireframe.New(project, wireframe.WithLogger(s.logger))
	result, err := editor.Apply(cmd)
	if err != nil {
		s.logger.Warn("MCP apply_command rejected", "op", cmd.Op, "err", err)
		return ApplyResponse{}, fmt.Errorf("%s failed: %w", cmd.Op, err)
	}
	return ApplyResponse{Result: result, Document: document.FromProject(editor.Project())}, nil
}

func (s *Server) registerResources() {
	s.mcpServer.AddResource(mcp.NewResource(RegistryURI, "Widget Registry",
		mcp.WithResourceDescription("Widget types in palette order with enum aliases"),
		mcp.WithMIMEType("application/json"),
	), func(ctx context.Context, request mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
		jsonBytes, err := registryJSON()
		if err != nil {
			return nil, fmt.Errorf("failed to encode registry: %w", err)
		}
		return []mcp.ResourceContents{
			mcp.TextResourceContents{
				URI:      RegistryURI,
				MIMEType: "application/json",
				Text:     string(jsonBytes),
			},
		}, nil
	})
}

func registryJSON() ([]byte, error) {
	return json.Marshal(map[string]any{
		"widgets": schema.Registry(),
		"enums":   schema.EnumAliases,
	})
}
