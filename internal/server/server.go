package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/ppiankov/claimguard/internal/agent"
	"github.com/ppiankov/claimguard/internal/model"
	"github.com/ppiankov/claimguard/internal/pipeline"
	"github.com/ppiankov/claimguard/internal/tool"
	"github.com/ppiankov/claimguard/internal/verdict"
)

// Server exposes verification over HTTP: a health probe, the verify
// endpoint, and the tool surface backed by the registry.
type Server struct {
	cfg        *model.Config
	version    string
	pipeline   *pipeline.Pipeline
	controller *agent.Controller
	singlePass *agent.Controller
	registry   *tool.Registry
}

// New wires a server from configuration. The tool registry is owned by
// the server instance, not shared process state.
func New(cfg *model.Config, version string) *Server {
	p := pipeline.New(cfg)

	s := &Server{
		cfg:        cfg,
		version:    version,
		pipeline:   p,
		controller: agent.NewController(p.Searcher(), cfg.Reflection),
		// Zero attempts means the check state always finishes: one pass,
		// same report shape.
		singlePass: agent.NewController(p.Searcher(), model.ReflectionConfig{
			MaxAttempts:      0,
			ConfidenceTarget: cfg.Reflection.ConfidenceTarget,
		}),
		registry: tool.NewRegistry(),
	}
	s.registerTools()
	return s
}

// Registry exposes the tool registry for additional registrations
func (s *Server) Registry() *tool.Registry {
	return s.registry
}

// registerTools installs the built-in tools over the verification core
func (s *Server) registerTools() {
	s.registry.Register("search", "Search the web for evidence about a query",
		func(ctx context.Context, args []any, kwargs map[string]any) (any, error) {
			q, err := stringArg("query", args, kwargs)
			if err != nil {
				return nil, err
			}
			results, source := s.pipeline.Searcher().SearchWithSource(ctx, q)
			return map[string]any{"results": results, "source": source}, nil
		})

	s.registry.Register("verify_claim", "Run single-pass verification on a raw text",
		func(ctx context.Context, args []any, kwargs map[string]any) (any, error) {
			text, err := stringArg("text", args, kwargs)
			if err != nil {
				return nil, err
			}
			return s.pipeline.Run(ctx, text), nil
		})

	s.registry.Register("validate", "Report per-component health of the verification core",
		func(ctx context.Context, args []any, kwargs map[string]any) (any, error) {
			return s.pipeline.Validate(ctx), nil
		})
}

// stringArg reads a required string from kwargs by name, falling back to
// the first positional argument.
func stringArg(name string, args []any, kwargs map[string]any) (string, error) {
	if v, ok := kwargs[name]; ok {
		if str, ok := v.(string); ok && str != "" {
			return str, nil
		}
	}
	if len(args) > 0 {
		if str, ok := args[0].(string); ok && str != "" {
			return str, nil
		}
	}
	return "", fmt.Errorf("missing required argument %q", name)
}

// Handler builds the chi router
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(corsMiddleware)

	r.Get("/api/health", s.handleHealth)
	r.Post("/api/verify", s.handleVerify)

	r.Route("/tools", func(r chi.Router) {
		r.Use(s.requireAPIKey)
		r.Get("/", s.handleToolList)
		r.Post("/{tool}/call", s.handleToolCall)
	})

	return r
}

// Start serves until the context is cancelled, then shuts down gracefully
func (s *Server) Start(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Server.Addr,
		Handler:           s.Handler(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("serve: %w", err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":  "ok",
		"service": "claimguard",
		"version": s.version,
	})
}

type verifyRequest struct {
	ID      string `json:"id"`
	Text    string `json:"text"`
	Reflect *bool  `json:"reflect"` // Defaults to true
}

type verifyResponse struct {
	ID string `json:"id,omitempty"`
	*model.VerificationReport
}

// handleVerify runs a verification and always answers with a well-formed
// report: bad input gets a 400, but an unexpected fault inside the core
// resolves to the safe fallback envelope rather than an opaque 500.
func (s *Server) handleVerify(w http.ResponseWriter, r *http.Request) {
	var req verifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if strings.TrimSpace(req.Text) == "" {
		writeDetail(w, http.StatusBadRequest, "text is required")
		return
	}

	defer func() {
		if rec := recover(); rec != nil {
			fmt.Fprintf(os.Stderr, "verify panic for request %q: %v\n", req.ID, rec)
			writeJSON(w, http.StatusOK, verifyResponse{ID: req.ID, VerificationReport: fallbackReport()})
		}
	}()

	ctrl := s.controller
	if req.Reflect != nil && !*req.Reflect {
		ctrl = s.singlePass
	}

	report := ctrl.Run(r.Context(), req.Text)
	writeJSON(w, http.StatusOK, verifyResponse{ID: req.ID, VerificationReport: report})
}

// fallbackReport is the answer of last resort for internal faults
func fallbackReport() *model.VerificationReport {
	return &model.VerificationReport{
		Verdict:    verdict.VerdictUnverified,
		Confidence: 0.10,
		Queries:    []string{},
		TopSources: []model.ScoredSource{},
		Reasoning:  []string{"Internal error during verification; returning safe fallback."},
	}
}

func (s *Server) handleToolList(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{"tools": s.registry.List()})
}

type toolCallRequest struct {
	Args   []any          `json:"args"`
	Kwargs map[string]any `json:"kwargs"`
}

func (s *Server) handleToolCall(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "tool")

	var req toolCallRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "invalid request body")
		return
	}

	result, err := s.registry.Call(r.Context(), name, req.Args, req.Kwargs)
	if err != nil {
		if errors.Is(err, tool.ErrNotFound) {
			writeDetail(w, http.StatusNotFound, err.Error())
			return
		}
		writeDetail(w, http.StatusInternalServerError, err.Error())
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{"tool": name, "result": result})
}

// requireAPIKey gates a route subtree on the configured key. No key
// configured means the surface is open.
func (s *Server) requireAPIKey(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.cfg.Server.APIKey != "" && r.Header.Get("X-API-KEY") != s.cfg.Server.APIKey {
			writeDetail(w, http.StatusUnauthorized, "invalid or missing API key")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// corsMiddleware answers preflight and marks all responses permissive
func corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-API-KEY")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		fmt.Fprintf(os.Stderr, "write response: %v\n", err)
	}
}

func writeDetail(w http.ResponseWriter, status int, detail string) {
	writeJSON(w, status, map[string]string{"detail": detail})
}
