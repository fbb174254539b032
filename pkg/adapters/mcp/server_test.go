package mcp

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/aretw0/wireframe/pkg/document"
	"github.com/aretw0/wireframe/pkg/domain"
	"github.com/aretw0/wireframe/pkg/validator"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func starterJSON(t *testing.T) string {
	t.Helper()
	data, err := document.Encode(domain.NewStarterProject("Login"))
	require.NoError(t, err)
	return string(data)
}

func call(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{Params: mcp.CallToolParams{Arguments: args}}
}

func textOf(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	text, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok)
	return text.Text
}

// rpc sends a raw JSON-RPC request and returns the decoded response.
func rpc(t *testing.T, s *Server, method string, params any) map[string]any {
	t.Helper()
	req, err := json.Marshal(map[string]any{"jsonrpc": "2.0", "id": 1, "method": method, "params": params})
	require.NoError(t, err)
	resp := s.MCPServer().HandleMessage(context.Background(), req)
	data, err := json.Marshal(resp)
	require.NoError(t, err)
	var out map[string]any
	require.NoError(t, json.Unmarshal(data, &out))
	require.Nil(t, out["error"], string(data))
	return out["result"].(map[string]any)
}

func TestListWidgets(t *testing.T) {
	s := NewServer()
	res, err := s.handleListWidgets(context.Background(), call(nil))
	require.NoError(t, err)

	var catalog struct {
		Widgets []map[string]any `json:"widgets"`
	}
	require.NoError(t, json.Unmarshal([]byte(textOf(t, res)), &catalog))
	require.Len(t, catalog.Widgets, 6)
	assert.Equal(t, "Text", catalog.Widgets[0]["type"])
}

func TestValidateProject(t *testing.T) {
	s := NewServer()
	report, err := s.handleValidate(context.Background(), call(nil), ValidateArgs{Document: starterJSON(t)})
	require.NoError(t, err)
	assert.True(t, report.Valid)

	bad := domain.NewProject("Bad", domain.NewNode(domain.RootNodeID, "Nope", nil))
	data, err := document.Encode(bad)
	require.NoError(t, err)
	report, err = s.handleValidate(context.Background(), call(nil), ValidateArgs{Document: string(data), Strict: true})
	require.NoError(t, err)
	assert.False(t, report.Valid)
	assert.Equal(t, []validator.Issue{{NodeID: domain.RootNodeID, Reason: report.Errors[0].Reason}}, report.Errors)

	_, err = s.handleValidate(context.Background(), call(nil), ValidateArgs{Document: "{"})
	assert.ErrorIs(t, err, document.ErrMalformed)
}

func TestGenerateCode(t *testing.T) {
	s := NewServer()
	res, err := s.handleGenerate(context.Background(), call(map[string]any{
		"document": starterJSON(t),
		"title":    "Demo",
	}))
	require.NoError(t, err)
	assert.False(t, res.IsError)
	code := textOf(t, res)
	assert.Contains(t, code, "import flet as ft")
	assert.Contains(t, code, `page.title = "Demo"`)
	assert.Contains(t, code, "def on_login(e: ft.ControlEvent):")

	res, err = s.handleGenerate(context.Background(), call(map[string]any{"document": "not json"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
}

func TestApplyCommand(t *testing.T) {
	s := NewServer()
	resp, err := s.handleApply(context.Background(), call(nil), ApplyArgs{
		Document: starterJSON(t),
		Command:  `{"op":"add","type":"Row","id":"root"}`,
	})
	require.NoError(t, err)
	assert.True(t, resp.Result.Changed)
	require.NotEmpty(t, resp.Result.NodeID)

	p, err := document.ToProject(resp.Document)
	require.NoError(t, err)
	require.Len(t, p.Tree.Children, 5)
	assert.Equal(t, resp.Result.NodeID, p.Tree.Children[4].ID)
	assert.Equal(t, resp.Result.NodeID, p.SelectedNodeID)

	_, err = s.handleApply(context.Background(), call(nil), ApplyArgs{
		Document: starterJSON(t),
		Command:  `{"op":"delete","id":"root"}`,
	})
	assert.Error(t, err)

	_, err = s.handleApply(context.Background(), call(nil), ApplyArgs{Document: starterJSON(t), Command: "?"})
	assert.ErrorContains(t, err, "invalid command")
}

func TestProtocolSurface(t *testing.T) {
	s := NewServer()

	tools := rpc(t, s, "tools/list", map[string]any{})["tools"].([]any)
	var names []string
	for _, tool := range tools {
		names = append(names, tool.(map[string]any)["name"].(string))
	}
	assert.ElementsMatch(t, []string{"list_widgets", "validate_project", "generate_code", "apply_command"}, names)

	result := rpc(t, s, "tools/call", map[string]any{
		"name":      "validate_project",
		"arguments": map[string]any{"document": starterJSON(t)},
	})
	assert.Equal(t, map[string]any{"valid": true, "errors": []any{}}, result["structuredContent"])

	contents := rpc(t, s, "resources/read", map[string]any{"uri": RegistryURI})["contents"].([]any)
	require.Len(t, contents, 1)
	assert.Contains(t, contents[0].(map[string]any)["text"], `"ElevatedButton"`)
}
