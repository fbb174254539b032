package http

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/aretw0/wireframe/pkg/adapters/memory"
	"github.com/aretw0/wireframe/pkg/document"
	"github.com/aretw0/wireframe/pkg/domain"
	"github.com/aretw0/wireframe/pkg/observability"
	"github.com/aretw0/wireframe/pkg/session"
	"github.com/aretw0/wireframe/pkg/validator"
	"github.com/coder/websocket"
	"github.com/coder/websocket/wsjson"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestHandler(t *testing.T, opts ...Option) http.Handler {
	t.Helper()
	handler, err := NewHandler(session.NewManager(memory.NewStore()), opts...)
	require.NoError(t, err)
	return handler
}

func do(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decode[T any](t *testing.T, rr *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &v), rr.Body.String())
	return v
}

func createProject(t *testing.T, h http.Handler, id string) document.Document {
	t.Helper()
	rr := do(t, h, "POST", "/projects", map[string]any{"id": id, "name": "Login"})
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())
	return decode[document.Document](t, rr)
}

func firstChildID(t *testing.T, doc document.Document) string {
	t.Helper()
	tree := doc["tree"].(map[string]any)
	children := tree["children"].([]any)
	return children[0].(map[string]any)["id"].(string)
}

func TestGetHealth(t *testing.T) {
	rr := do(t, newTestHandler(t), "GET", "/health", nil)
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, map[string]string{"status": "ok"}, decode[map[string]string](t, rr))
}

func TestGetRegistry(t *testing.T) {
	rr := do(t, newTestHandler(t), "GET", "/registry", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	resp := decode[map[string]any](t, rr)
	widgets := resp["widgets"].([]any)
	require.Len(t, widgets, 6)
	assert.Equal(t, "Text", widgets[0].(map[string]any)["type"])
}

func TestProjectLifecycle(t *testing.T) {
	h := newTestHandler(t)

	doc := createProject(t, h, "login")
	assert.Equal(t, "Login", doc["name"])

	rr := do(t, h, "POST", "/projects", map[string]any{"id": "login"})
	assert.Equal(t, http.StatusConflict, rr.Code)

	rr = do(t, h, "GET", "/projects", nil)
	assert.Equal(t, []any{"login"}, decode[map[string]any](t, rr)["projects"])

	rr = do(t, h, "GET", "/projects/login", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, document.SchemaVersion, decode[document.Document](t, rr)["schemaVersion"])

	rr = do(t, h, "DELETE", "/projects/login", nil)
	assert.Equal(t, http.StatusNoContent, rr.Code)

	rr = do(t, h, "GET", "/projects/login", nil)
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestCreateProject_Blank(t *testing.T) {
	h := newTestHandler(t)
	rr := do(t, h, "POST", "/projects", map[string]any{"id": "empty", "blank": true})
	require.Equal(t, http.StatusCreated, rr.Code)

	tree := decode[document.Document](t, rr)["tree"].(map[string]any)
	assert.Equal(t, "Column", tree["type"])
	assert.Empty(t, tree["children"])
}

func TestRequestValidation(t *testing.T) {
	h := newTestHandler(t)

	rr := do(t, h, "POST", "/projects", map[string]any{"name": "no id"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	rr = do(t, h, "POST", "/projects", map[string]any{"id": "bad/id"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)

	createProject(t, h, "app")
	rr = do(t, h, "POST", "/projects/app/commands", map[string]any{"op": "explode"})
	assert.Equal(t, http.StatusBadRequest, rr.Code)
}

func TestCommandsUndoRedo(t *testing.T) {
	h := newTestHandler(t)
	doc := createProject(t, h, "app")
	text := firstChildID(t, doc)

	rr := do(t, h, "POST", "/projects/app/commands", map[string]any{
		"op": "set", "id": text, "name": "value", "value": "Hello",
	})
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	resp := decode[map[string]any](t, rr)
	assert.Equal(t, true, resp["result"].(map[string]any)["changed"])

	rr = do(t, h, "POST", "/projects/app/commands", map[string]any{"op": "add", "type": "Slider"})
	assert.Equal(t, http.StatusUnprocessableEntity, rr.Code)

	rr = do(t, h, "POST", "/projects/app/undo", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, true, decode[map[string]any](t, rr)["result"].(map[string]any)["changed"])

	rr = do(t, h, "GET", "/projects/app/code", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `value="Welcome"`)

	rr = do(t, h, "POST", "/projects/app/redo", nil)
	require.Equal(t, http.StatusOK, rr.Code)

	rr = do(t, h, "GET", "/projects/app/code?title=Demo", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `value="Hello"`)
	assert.Contains(t, rr.Body.String(), `page.title = "Demo"`)
}

func TestReplaceProject(t *testing.T) {
	h := newTestHandler(t)
	createProject(t, h, "app")

	replacement := document.FromProject(domain.NewProject("Other", domain.NewNode(domain.RootNodeID, "Row", nil)))
	rr := do(t, h, "PUT", "/projects/app", replacement)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = do(t, h, "GET", "/projects/app", nil)
	assert.Equal(t, "Other", decode[document.Document](t, rr)["name"])
}

func TestValidateProject(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := observability.NewMetrics(reg)
	h := newTestHandler(t, WithMetrics(m, reg))
	doc := createProject(t, h, "app")

	rr := do(t, h, "GET", "/projects/app/validation", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, true, decode[map[string]any](t, rr)["valid"])

	do(t, h, "POST", "/projects/app/commands", map[string]any{
		"op": "set", "id": firstChildID(t, doc), "name": "weight", "value": "heavy",
	})
	rr = do(t, h, "GET", "/projects/app/validation?strict=true", nil)
	resp := decode[validator.Report](t, rr)
	assert.False(t, resp.Valid)
	require.Len(t, resp.Errors, 1)
	assert.Equal(t, firstChildID(t, doc), resp.Errors[0].NodeID)

	rr = do(t, h, "GET", "/metrics", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "wireframe_validation_failures_total 1")
}

func TestOpenAPISpec(t *testing.T) {
	rr := do(t, newTestHandler(t), "GET", "/openapi.yaml", nil)
	require.Equal(t, http.StatusOK, rr.Code)
	assert.True(t, strings.HasPrefix(rr.Body.String(), "openapi: 3.0.3"))
}

func TestSubscribeEvents(t *testing.T) {
	handler, err := NewHandler(session.NewManager(memory.NewStore()))
	require.NoError(t, err)
	srv := httptest.NewServer(handler)
	defer srv.Close()

	doc := createProject(t, handler, "app")
	text := firstChildID(t, doc)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	url := "ws" + strings.TrimPrefix(srv.URL, "http") + "/projects/app/events"
	conn, _, err := websocket.Dial(ctx, url, nil)
	require.NoError(t, err)
	defer conn.CloseNow()

	rr := do(t, handler, "POST", "/projects/app/commands", map[string]any{
		"op": "set", "id": text, "name": "value", "value": "final",
	})
	require.Equal(t, http.StatusOK, rr.Code)

	var event ChangeEvent
	require.NoError(t, wsjson.Read(ctx, conn, &event))
	assert.Equal(t, "app", event.Project)
	require.NotNil(t, event.Changes)
	assert.Equal(t, []string{text}, event.Changes.Modified)
}

func TestStreamManager(t *testing.T) {
	sm := NewStreamManager(nil)
	events, cancel := sm.Subscribe("p")
	assert.Equal(t, 1, sm.Subscribers("p"))

	sm.Broadcast("p", nil)
	sm.Broadcast("other", &domain.ChangeSet{Added: []string{"x"}})
	sm.Broadcast("p", &domain.ChangeSet{Added: []string{"a"}})

	event := <-events
	assert.Equal(t, []string{"a"}, event.Changes.Added)

	cancel()
	cancel()
	assert.Zero(t, sm.Subscribers("p"))
	_, open := <-events
	assert.False(t, open)
}
