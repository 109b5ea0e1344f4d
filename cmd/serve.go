package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/molbal/cozyui-docs/internal/config"
	"github.com/molbal/cozyui-docs/internal/lint"
	xlog "github.com/molbal/cozyui-docs/internal/log"
	"github.com/molbal/cozyui-docs/internal/watch"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Rebuilds on change and serves the output directory",
	Long: `The serve command performs an initial build, then watches the site
configuration file and the content directory, rebuilding on every change. The
output directory is served over HTTP together with /healthz and /lint, which
returns the findings of the last build as JSON.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return runServe(ctx, appConfig, xlog.WithComponent("serve"))
	},
}

// devServer rebuilds the output and remembers the outcome of the last build.
type devServer struct {
	cfg    config.Config
	logger zerolog.Logger

	mu      sync.Mutex
	report  *lint.Report
	lastErr error
	builtAt time.Time
}

func (s *devServer) rebuild() {
	s.mu.Lock()
	defer s.mu.Unlock()

	res, err := runBuild(s.cfg, s.logger)
	s.lastErr = err
	s.builtAt = time.Now()
	if res != nil {
		s.report = res.Report
	}
	if err != nil {
		s.logger.Error().Err(err).Msg("build failed")
	}
}

type lintResponse struct {
	OK       bool           `json:"ok"`
	Error    string         `json:"error,omitempty"`
	BuiltAt  time.Time      `json:"builtAt"`
	Findings []lint.Finding `json:"findings"`
}

func (s *devServer) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.NoCache)
	r.Use(s.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok\n"))
	})

	r.Get("/lint", func(w http.ResponseWriter, _ *http.Request) {
		s.mu.Lock()
		resp := lintResponse{OK: s.lastErr == nil, BuiltAt: s.builtAt, Findings: []lint.Finding{}}
		if s.lastErr != nil {
			resp.Error = s.lastErr.Error()
		}
		if s.report != nil {
			resp.Findings = s.report.Findings()
		}
		s.mu.Unlock()

		w.Header().Set("Content-Type", "application/json")
		if !resp.OK {
			w.WriteHeader(http.StatusUnprocessableEntity)
		}
		_ = json.NewEncoder(w).Encode(resp)
	})

	files := http.FileServer(http.Dir(s.cfg.OutputDir))
	r.Get("/*", func(w http.ResponseWriter, req *http.Request) {
		// Prevent directory listing
		if strings.HasSuffix(req.URL.Path, "/") && req.URL.Path != "/" {
			if _, err := os.Stat(filepath.Join(s.cfg.OutputDir, filepath.FromSlash(req.URL.Path), "index.html")); os.IsNotExist(err) {
				http.NotFound(w, req)
				return
			}
		}
		files.ServeHTTP(w, req)
	})
	return r
}

func (s *devServer) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("duration", time.Since(start)).
			Msg("request")
	})
}

func runServe(ctx context.Context, cfg config.Config, logger zerolog.Logger) error {
	s := &devServer{cfg: cfg, logger: logger}

	logger.Info().Msg("performing initial build")
	s.rebuild()
	if s.lastErr != nil {
		return fmt.Errorf("initial build failed: %w", s.lastErr)
	}

	paths := []string{cfg.ContentDir}
	if cfg.Site != "" {
		paths = append(paths, cfg.Site)
	}
	w := &watch.Watcher{
		Paths: paths,
		OnChange: func() {
			logger.Info().Msg("rebuilding site configuration due to changes")
			s.rebuild()
		},
		Logger: logger,
	}

	watchErr := make(chan error, 1)
	go func() { watchErr <- w.Run(ctx) }()

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Port),
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}
	serveErr := make(chan error, 1)
	go func() {
		logger.Info().Str("dir", cfg.OutputDir).Str("addr", "http://localhost"+srv.Addr).Msg("serving")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
		}
		close(serveErr)
	}()

	select {
	case <-ctx.Done():
	case err := <-watchErr:
		if err != nil {
			logger.Warn().Err(err).Msg("file watching disabled")
		}
		<-ctx.Done()
	case err, ok := <-serveErr:
		if ok {
			return fmt.Errorf("failed to start HTTP server: %w", err)
		}
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown: %w", err)
	}
	logger.Info().Msg("server stopped")
	return nil
}

func init() {
	serveCmd.Flags().IntP("port", "p", 0, "port to serve on (default 5173)")
	serveCmd.Flags().StringP("output", "o", "", "output directory (default \"dist\")")
	serveCmd.Flags().String("content", "", "Markdown content directory (default \"docs\")")
	rootCmd.AddCommand(serveCmd)
}
