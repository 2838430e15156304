package cli

import (
	"context"
	"encoding/json"
	stderrors "errors"
	"net"
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"github.com/matzehuels/netscore/pkg/buildinfo"
	"github.com/matzehuels/netscore/pkg/errors"
	"github.com/matzehuels/netscore/pkg/integrations/github"
	"github.com/matzehuels/netscore/pkg/resolve"
)

const shutdownTimeout = 10 * time.Second

// serveCommand creates the serve command.
func (c *CLI) serveCommand() *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve package scores over HTTP",
		Long: `Start an HTTP server that scores packages on request.

Endpoints:
  GET /healthz            liveness probe
  GET /score?url=<url>    score one package and return its report as JSON
  GET /score/github/{owner}/{repo}
                          score a GitHub repository by name`,
		Example: `  netscore serve --addr :8080
  curl 'localhost:8080/score?url=https://www.npmjs.com/package/express'`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = c.Config.Addr
			}
			ctx := cmd.Context()
			s, err := c.newScorer(ctx)
			if err != nil {
				return err
			}
			return serve(ctx, addr, newRouter(s, loggerFromContext(ctx)), loggerFromContext(ctx))
		},
	}

	cmd.Flags().StringVar(&addr, "addr", ":8080", "listen address")

	return cmd
}

// serve runs handler on addr until ctx is cancelled, then shuts down
// gracefully.
func serve(ctx context.Context, addr string, handler http.Handler, logger *log.Logger) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
		BaseContext:       func(net.Listener) context.Context { return ctx },
	}

	errCh := make(chan error, 1)
	go func() { errCh <- srv.ListenAndServe() }()
	logger.Info("listening", "addr", addr)

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	if err := <-errCh; !stderrors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// newRouter mounts the scoring API on a chi router.
func newRouter(s scorer, logger *log.Logger) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger(logger))

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, logger, http.StatusOK, map[string]string{"status": "ok", "version": buildinfo.Version})
	})

	r.Get("/score", func(w http.ResponseWriter, r *http.Request) {
		raw := r.URL.Query().Get("url")
		if raw == "" {
			writeJSON(w, logger, http.StatusBadRequest, map[string]string{"error": "missing url parameter"})
			return
		}
		id, err := resolve.ParseURL(raw)
		if err != nil {
			writeJSON(w, logger, http.StatusBadRequest, map[string]string{"error": errors.UserMessage(err)})
			return
		}
		writeJSON(w, logger, http.StatusOK, s.Score(r.Context(), id))
	})

	r.Get("/score/github/{owner}/{repo}", func(w http.ResponseWriter, r *http.Request) {
		owner, repo, err := github.ParseRepoRef(chi.URLParam(r, "owner") + "/" + chi.URLParam(r, "repo"))
		if err != nil {
			writeJSON(w, logger, http.StatusBadRequest, map[string]string{"error": errors.UserMessage(err)})
			return
		}
		writeJSON(w, logger, http.StatusOK, s.Score(r.Context(), resolve.GitHub(owner, repo)))
	})

	return r
}

// requestLogger logs each request at info level once it completes.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()
			next.ServeHTTP(ww, r)
			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"elapsed", time.Since(start).Round(time.Millisecond),
				"request_id", middleware.GetReqID(r.Context()))
		})
	}
}

// writeJSON writes v with the given status. The status line is already sent
// when encoding fails, so the failure can only be logged.
func writeJSON(w http.ResponseWriter, logger *log.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encode response", "status", status, "err", err)
	}
}
