package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	apperrors "github.com/genotile/genotile/pkg/errors"
	"github.com/genotile/genotile/pkg/pipeline"
)

// serveCommand creates the serve command, a small HTTP frontend that
// renders FASTA files from a directory on demand.
func (c *CLI) serveCommand() *cobra.Command {
	var (
		addr  string
		dir   string
		cOpts cacheOpts
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve rendered images over HTTP",
		Long: `Serve rendered images over HTTP.

Exposes the FASTA files in a directory as rendered PNGs:

  GET /healthz                   liveness probe
  GET /render/{file}             render a file from the directory
  GET /render/{file}?contig=X    render a single contig

Renders are cached, so repeated requests for the same file are served
from the artifact cache. Point --redis at a shared instance to share
the cache between replicas.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			runner, err := c.newRunner(cmd.Context(), cOpts)
			if err != nil {
				return fmt.Errorf("initialize runner: %w", err)
			}
			defer runner.Cache.Close()
			return c.runServe(cmd.Context(), runner, addr, dir)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")
	cmd.Flags().StringVar(&dir, "dir", ".", "directory of FASTA files to serve")
	cmd.Flags().BoolVar(&cOpts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().StringVar(&cOpts.redisAddr, "redis", "", "use a shared Redis artifact cache at this address")

	return cmd
}

// runServe blocks until the context is cancelled, then shuts the server
// down gracefully.
func (c *CLI) runServe(ctx context.Context, runner *pipeline.Runner, addr, dir string) error {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			reqCtx := req.Context()
			logger := c.Logger.With("request", middleware.GetReqID(reqCtx))
			next.ServeHTTP(w, req.WithContext(withLogger(reqCtx, logger)))
		})
	})

	r.Get("/healthz", func(w http.ResponseWriter, req *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})
	r.Get("/render/{file}", c.handleRender(runner, dir))

	srv := &http.Server{
		Addr:              addr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", addr, "dir", dir)
		errc <- srv.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
		return nil
	case err := <-errc:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// handleRender renders one file from the served directory.
func (c *CLI) handleRender(runner *pipeline.Runner, dir string) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		file := chi.URLParam(req, "file")
		path, ok := safeJoin(dir, file)
		if !ok {
			http.Error(w, "invalid file name", http.StatusBadRequest)
			return
		}

		logger := loggerFromContext(req.Context())
		opts := pipeline.Options{
			Input:   path,
			Contig:  req.URL.Query().Get("contig"),
			Refresh: req.URL.Query().Get("refresh") == "true",
			Logger:  logger,
		}
		result, err := runner.Execute(req.Context(), opts)
		if err != nil {
			status := http.StatusInternalServerError
			switch apperrors.GetCode(err) {
			case apperrors.ErrCodeFileNotFound, apperrors.ErrCodeContigNotFound:
				status = http.StatusNotFound
			case apperrors.ErrCodeInvalidInput, apperrors.ErrCodeInvalidFormat:
				status = http.StatusBadRequest
			}
			logger.Error("render failed", "file", file, "err", err)
			http.Error(w, apperrors.UserMessage(err), status)
			return
		}

		w.Header().Set("Content-Type", "image/png")
		w.Header().Set("X-Genotile-Cache", cacheStatus(result.CacheHit))
		_, _ = w.Write(result.Artifact)
	}
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

// safeJoin joins name onto dir and rejects path traversal.
func safeJoin(dir, name string) (string, bool) {
	if name == "" || strings.Contains(name, "..") || strings.ContainsAny(name, `/\`) {
		return "", false
	}
	return filepath.Join(dir, name), true
}
