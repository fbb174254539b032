// Package http exposes projects over a JSON API with a websocket change stream.
package http

import (
	_ "embed"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/aretw0/wireframe"
	"github.com/aretw0/wireframe/internal/logging"
	"github.com/aretw0/wireframe/pkg/codegen"
	"github.com/aretw0/wireframe/pkg/document"
	"github.com/aretw0/wireframe/pkg/domain"
	"github.com/aretw0/wireframe/pkg/observability"
	"github.com/aretw0/wireframe/pkg/schema"
	"github.com/aretw0/wireframe/pkg/session"
	"github.com/aretw0/wireframe/pkg/validator"
	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

//go:embed openapi.yaml
var openAPISpec []byte

// Server serves the project API over a session manager.
type Server struct {
	sessions *session.Manager
	streams  *StreamManager
	metrics  *observability.Metrics
	gatherer prometheus.Gatherer
	logger   *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.logger = logger
	}
}

// WithMetrics counts validation failures on m and serves g at /metrics.
func WithMetrics(m *observability.Metrics, g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.metrics = m
		s.gatherer = g
	}
}

// NewHandler creates the HTTP handler. Requests to documented routes are
// validated against the embedded OpenAPI document.
func NewHandler(sessions *session.Manager, opts ...Option) (http.Handler, error) {
	s := &Server{
		sessions: sessions,
		logger:   logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	s.streams = NewStreamManager(s.logger)

	validate, err := requestValidator(openAPISpec, s.logger)
	if err != nil {
		return nil, err
	}

	r := chi.NewRouter()
	r.Get("/openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/yaml")
		w.Write(openAPISpec)
	})
	if s.gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.gatherer, promhttp.HandlerOpts{}))
	}

	r.Group(func(r chi.Router) {
		r.Use(validate)
		r.Get("/health", s.getHealth)
		r.Get("/registry", s.getRegistry)
		r.Route("/projects", func(r chi.Router) {
			r.Get("/", s.listProjects)
			r.Post("/", s.createProject)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", s.getProject)
				r.Put("/", s.replaceProject)
				r.Delete("/", s.deleteProject)
				r.Post("/commands", s.applyCommand)
				r.Post("/undo", s.undo)
				r.Post("/redo", s.redo)
				r.Get("/code", s.generateCode)
				r.Get("/validation", s.validateProject)
				r.Get("/events", s.subscribeEvents)
			})
		})
	})

	return enableCORS(r), nil
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, PUT, DELETE, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

type createRequest struct {
	ID       string            `json:"id"`
	Name     string            `json:"name"`
	Blank    bool              `json:"blank"`
	Document document.Document `json:"document"`
}

type mutationResponse struct {
	Result   wireframe.Result  `json:"result"`
	Document document.Document `json:"document"`
}

func (s *Server) getHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) getRegistry(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]any{
		"widgets": schema.Registry(),
		"enums":   schema.EnumAliases,
	})
}

func (s *Server) listProjects(w http.ResponseWriter, r *http.Request) {
	ids, err := s.sessions.List(r.Context())
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{"projects": ids})
}

func (s *Server) createProject(w http.ResponseWriter, r *http.Request) {
	var body createRequest
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	var project *domain.Project
	switch {
	case body.Document != nil:
		p, err := document.ToProject(body.Document)
		if err != nil {
			s.writeError(w, err)
			return
		}
		project = p
	case body.Blank:
		project = domain.NewProject(body.Name, domain.NewNode(domain.RootNodeID, "Column", nil))
	default:
		project = domain.NewStarterProject(body.Name)
	}

	if err := s.sessions.Create(r.Context(), body.ID, project); err != nil {
		s.writeError(w, err)
		return
	}
	s.logger.Info("project created", "project_id", body.ID)
	s.writeJSON(w, http.StatusCreated, document.FromProject(project))
}

func (s *Server) getProject(w http.ResponseWriter, r *http.Request) {
	var doc document.Document
	err := s.sessions.Open(r.Context(), chi.URLParam(r, "id"), func(e *wireframe.Editor) error {
		doc = document.FromProject(e.Project())
		return nil
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.writeJSON(w, http.StatusOK, doc)
}

func (s *Server) replaceProject(w http.ResponseWriter, r *http.Request) {
	var doc document.Document
	if err := json.NewDecoder(r.Body).Decode(&doc); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	project, err := document.ToProject(doc)
	if err != nil {
		s.writeError(w, err)
		return
	}
	s.mutate(w, r, func(e *wireframe.Editor) (wireframe.Result, error) {
		e.Replace(project)
		return wireframe.Result{Changed: true}, nil
	})
}

func (s *Server) deleteProject(w http.ResponseWriter, r *http.Request) {
	if err := s.sessions.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		s.writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) applyCommand(w http.ResponseWriter, r *http.Request) {
	var cmd wireframe.Command
	if err := json.NewDecoder(r.Body).Decode(&cmd); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}
	s.mutate(w, r, func(e *wireframe.Editor) (wireframe.Result, error) {
		return e.Apply(cmd)
	})
}

func (s *Server) undo(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(e *wireframe.Editor) (wireframe.Result, error) {
		return wireframe.Result{Changed: e.Undo()}, nil
	})
}

func (s *Server) redo(w http.ResponseWriter, r *http.Request) {
	s.mutate(w, r, func(e *wireframe.Editor) (wireframe.Result, error) {
		return wireframe.Result{Changed: e.Redo()}, nil
	})
}

func (s *Server) generateCode(w http.ResponseWriter, r *http.Request) {
	var opts []codegen.Option
	if title := r.URL.Query().Get("title"); title != "" {
		opts = append(opts, codegen.WithTitle(title))
	}
	var code string
	err := s.sessions.Open(r.Context(), chi.URLParam(r, "id"), func(e *wireframe.Editor) error {
		var err error
		code, err = e.GenerateCode(opts...)
		return err
	})
	if err != nil {
		s.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/x-python; charset=utf-8")
	w.Write([]byte(code))
}

func (s *Server) validateProject(w http.ResponseWriter, r *http.Request) {
	var opts []validator.Option
	if r.URL.Query().Get("strict") == "true" {
		opts = append(opts, validator.Strict())
	}
	var errs []error
	err := s.sessions.Open(r.Context(), chi.URLParam(r, "id"), func(e *wireframe.Editor) error {
		errs = e.Validate(opts...)
		return nil
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	resp := validator.NewReport(errs)
	if !resp.Valid && s.metrics != nil {
		s.metrics.ValidationFailures.Inc()
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// mutate commits fn against the project and broadcasts what changed.
func (s *Server) mutate(w http.ResponseWriter, r *http.Request, fn func(*wireframe.Editor) (wireframe.Result, error)) {
	id := chi.URLParam(r, "id")
	var (
		before, after *domain.Project
		result        wireframe.Result
	)
	err := s.sessions.Commit(r.Context(), id, func(e *wireframe.Editor) error {
		before = e.Project().Clone()
		var err error
		if result, err = fn(e); err != nil {
			return err
		}
		after = e.Project().Clone()
		return nil
	})
	if err != nil {
		s.writeError(w, err)
		return
	}

	changes := domain.Diff(before, after)
	if changes != nil {
		s.logger.Debug("project changed", "project_id", id, "added", len(changes.Added),
			"removed", len(changes.Removed), "modified", len(changes.Modified))
	}
	s.streams.Broadcast(id, changes)
	s.writeJSON(w, http.StatusOK, mutationResponse{Result: result, Document: document.FromProject(after)})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("response encode failed", "err", err)
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", "err", err)
	}
	s.writeJSON(w, status, map[string]string{"error": err.Error()})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrProjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, session.ErrProjectExists):
		return http.StatusConflict
	case errors.Is(err, document.ErrMalformed):
		return http.StatusBadRequest
	case errors.Is(err, wireframe.ErrNoSelection),
		errors.Is(err, wireframe.ErrNodeNotFound),
		errors.Is(err, wireframe.ErrRootImmutable),
		errors.Is(err, wireframe.ErrOperationFailed),
		errors.Is(err, wireframe.ErrUnknownCommand),
		errors.Is(err, schema.ErrUnknownWidgetType),
		errors.Is(err, validator.ErrInvalidTree):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
