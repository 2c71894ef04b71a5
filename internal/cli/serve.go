package cli

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"mime"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/matzehuels/importlint/pkg/buildinfo"
	"github.com/matzehuels/importlint/pkg/config"
	"github.com/matzehuels/importlint/pkg/errors"
	pkgio "github.com/matzehuels/importlint/pkg/io"
	"github.com/matzehuels/importlint/pkg/observability"
	"github.com/matzehuels/importlint/pkg/pipeline"
)

const (
	serverReadTimeout     = 30 * time.Second
	serverWriteTimeout    = 2 * time.Minute
	serverIdleTimeout     = 2 * time.Minute
	serverShutdownTimeout = 10 * time.Second

	// maxDocumentSize bounds the request body of /v1/check.
	maxDocumentSize = 32 << 20
)

// server answers check requests over HTTP.
type server struct {
	runner *pipeline.Runner
	cfg    config.Config
	logger *log.Logger
}

// newServer creates a server analyzing with cfg. Graph outputs are dropped:
// the server never writes files.
func newServer(runner *pipeline.Runner, cfg config.Config, logger *log.Logger) *server {
	cfg.ImportGraph, cfg.ExtImportGraph, cfg.IntImportGraph = "", "", ""
	return &server{runner: runner, cfg: cfg, logger: logger}
}

// routes registers the server endpoints.
func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(s.observe)

	r.Get("/healthz", s.health)
	r.Post("/v1/check", s.check)
	return r
}

// observe tags every request with an id and reports it to the server hooks.
func (s *server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		id := r.Header.Get("X-Request-ID")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-ID", id)
		observability.Server().OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		observability.Server().OnResponse(r.Context(), r.Method, r.URL.Path, status, elapsed)
		s.logger.Debug("request", "id", id, "method", r.Method, "path", r.URL.Path, "status", status, "elapsed", elapsed)
	})
}

// health handles GET /healthz.
func (s *server) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status": "ok",
		"build":  buildinfo.Current(),
	})
}

// check handles POST /v1/check. The body is a project document, YAML when
// the content type says so and JSON otherwise.
func (s *server) check(w http.ResponseWriter, r *http.Request) {
	format := pkgio.FormatJSON
	if ct, _, err := mime.ParseMediaType(r.Header.Get("Content-Type")); err == nil {
		switch ct {
		case "application/yaml", "application/x-yaml", "text/yaml":
			format = pkgio.FormatYAML
		}
	}

	project, err := pkgio.ReadProject(http.MaxBytesReader(w, r.Body, maxDocumentSize), format)
	if err != nil {
		var tooLarge *http.MaxBytesError
		if stderrors.As(err, &tooLarge) {
			writeJSON(w, http.StatusRequestEntityTooLarge, errorBody{Error: "document too large", Code: string(errors.ErrCodeInvalidInput)})
			return
		}
		s.writeError(w, err)
		return
	}

	result, err := s.runner.Execute(r.Context(), project, s.cfg)
	if err != nil && !errors.Is(err, errors.ErrCodeNothingToReport) {
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, result)
}

type errorBody struct {
	Error string `json:"error"`
	Code  string `json:"code,omitempty"`
}

func (s *server) writeError(w http.ResponseWriter, err error) {
	status := errors.HTTPStatus(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("check failed", "err", err)
	}
	writeJSON(w, status, errorBody{Error: err.Error(), Code: string(errors.GetCode(err))})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var opts analysisOpts
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve import checks over HTTP",
		Long: `Run an HTTP server that analyzes project documents.

Endpoints:
  POST /v1/check   body: project document (JSON, or YAML with a YAML content type)
                   response: findings, cycles, dependencies and stats
  GET  /healthz    build information`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.config(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("addr") || cfg.Server.Addr == "" {
				cfg.Server.Addr = addr
			}
			return c.runServe(cmd.Context(), cfg)
		},
	}

	opts.register(cmd)
	cmd.Flags().StringVar(&addr, "addr", config.DefaultAddr, "listen address")
	return cmd
}

func (c *CLI) runServe(ctx context.Context, cfg config.Config) error {
	runner, err := c.newRunner(ctx, cfg)
	if err != nil {
		return fmt.Errorf("open cache: %w", err)
	}
	defer runner.Close()

	srv := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      newServer(runner, cfg, c.Logger).routes(),
		ReadTimeout:  serverReadTimeout,
		WriteTimeout: serverWriteTimeout,
		IdleTimeout:  serverIdleTimeout,
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	c.Logger.Info("listening", "addr", cfg.Server.Addr)

	select {
	case err := <-errCh:
		return fmt.Errorf("serve: %w", err)
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), serverShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	return nil
}
