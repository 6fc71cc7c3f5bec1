package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/spf13/cobra"

	"sccmap/pkg/config"
	"sccmap/pkg/pipeline"
	"sccmap/pkg/watch"
)

// shutdownTimeout bounds how long in-flight requests may run after SIGINT.
const shutdownTimeout = 5 * time.Second

// serveCommand creates the serve command: an HTTP view of the decomposition.
func (c *CLI) serveCommand() *cobra.Command {
	var noCache, noArchive, refresh bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the decomposition over HTTP",
		Long: `Serve the decomposition over HTTP.

Builds the graph once and exposes it on the configured address:

  GET /healthz         liveness probe
  GET /api/graph       tagged graph as JSON
  GET /api/components  component table as JSON
  GET /graph.gexf      tagged graph as GEXF
  GET /chart.svg       rendered component chart

With --watch the input files are monitored and the served snapshot is
rebuilt after changes settle. Rebuild failures keep the previous snapshot.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(cmd.Flags())
			if err != nil {
				return err
			}
			defaultInputs(cfg)
			return c.runServe(cmd.Context(), cfg, noCache, noArchive, refresh)
		},
	}

	addInputFlags(cmd)
	addDecomposeFlags(cmd)
	cmd.Flags().StringP("layout", "l", pipeline.DefaultLayout, "layout method for the chart: auto, dot, eades, isomap")
	cmd.Flags().String("addr", config.DefaultAddr, "listen address")
	cmd.Flags().Bool("watch", false, "rebuild when input files change")
	cmd.Flags().Duration("debounce", config.DefaultDebounce, "quiet window before a watched change triggers a rebuild")
	cmd.Flags().Duration("max-wait", config.DefaultMaxWait, "rebuild at the latest this long after the first change of a burst")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable result caching")
	cmd.Flags().BoolVar(&noArchive, "no-archive", false, "disable the run archive")
	cmd.Flags().BoolVar(&refresh, "refresh", false, "recompute instead of reading cached results")

	return cmd
}

// runServe builds the initial snapshot, starts the watcher when requested,
// and serves until the context is cancelled.
func (c *CLI) runServe(ctx context.Context, cfg *config.Config, noCache, noArchive, refresh bool) error {
	runner, err := c.newRunner(ctx, cfg, noCache, noArchive)
	if err != nil {
		return fmt.Errorf("initialize runner: %w", err)
	}
	defer runner.Close()

	opts := c.buildOptions(cfg, refresh)
	opts.Formats = []string{pipeline.FormatJSON, pipeline.FormatGEXF, pipeline.FormatSVG}

	s := &server{cli: c, runner: runner, opts: opts}
	if err := s.rebuild(ctx); err != nil {
		return fmt.Errorf("initial build: %w", err)
	}

	if cfg.Watch {
		paths := watchPaths(cfg)
		w, err := watch.New(paths, cfg.Debounce, cfg.MaxWait, c.Logger)
		if err != nil {
			return fmt.Errorf("start watcher: %w", err)
		}
		go s.watchLoop(ctx, w.Start(ctx))
		c.Logger.Info("watching inputs", "paths", paths)
	}

	httpSrv := &http.Server{
		Addr:              cfg.Addr,
		Handler:           s.routes(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errc := make(chan error, 1)
	go func() {
		c.Logger.Info("listening", "addr", cfg.Addr)
		if err := httpSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errc <- err
		}
	}()

	select {
	case err := <-errc:
		return err
	case <-ctx.Done():
	}

	c.Logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	return httpSrv.Shutdown(shutdownCtx)
}

// watchPaths returns the input files to monitor: the manifest when one is
// configured, the CSV pair otherwise.
func watchPaths(cfg *config.Config) []string {
	if cfg.Manifest != "" {
		return []string{cfg.Manifest}
	}
	var paths []string
	if cfg.Nodes != "" {
		paths = append(paths, cfg.Nodes)
	}
	if cfg.Links != "" {
		paths = append(paths, cfg.Links)
	}
	return paths
}

// =============================================================================
// Server
// =============================================================================

// server holds the served pipeline snapshot. Rebuilds serialize on buildMu;
// handlers read the snapshot through mu, so a slow rebuild never blocks
// requests against the previous result.
type server struct {
	cli    *CLI
	runner *pipeline.Runner
	opts   pipeline.Options

	buildMu sync.Mutex   // serializes rebuilds
	mu      sync.RWMutex // guards res
	res     *pipeline.Result
}

// rebuild runs the pipeline and swaps the served snapshot on success.
func (s *server) rebuild(ctx context.Context) error {
	s.buildMu.Lock()
	defer s.buildMu.Unlock()

	prog := newProgress(s.cli.Logger)
	res, err := s.runner.Execute(ctx, s.opts)
	if err != nil {
		return err
	}

	s.mu.Lock()
	s.res = res
	s.mu.Unlock()

	prog.done(fmt.Sprintf("Snapshot ready: %d nodes, %d components", res.Stats.NodeCount, res.Stats.ComponentCount))
	return nil
}

// snapshot returns the currently served result. Never nil once the initial
// build has succeeded.
func (s *server) snapshot() *pipeline.Result {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.res
}

// watchLoop rebuilds the snapshot for every debounced change event.
func (s *server) watchLoop(ctx context.Context, events <-chan watch.Event) {
	for {
		select {
		case <-ctx.Done():
			return
		case ev, ok := <-events:
			if !ok {
				return
			}
			s.cli.Logger.Info("inputs changed, rebuilding", "paths", ev.Paths)
			if err := s.rebuild(ctx); err != nil {
				s.cli.Logger.Error("rebuild failed, keeping previous snapshot", "err", err)
			}
		}
	}
}

// routes assembles the chi router with the standard middleware stack.
func (s *server) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(chimiddleware.Recoverer)
	r.Use(requestLogger(s.cli.Logger))

	r.Get("/healthz", s.handleHealthz)
	r.Get("/api/graph", s.handleGraph)
	r.Get("/api/components", s.handleComponents)
	r.Get("/graph.gexf", s.handleGEXF)
	r.Get("/chart.svg", s.handleChart)

	return r
}

// =============================================================================
// Handlers
// =============================================================================

func (s *server) handleHealthz(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *server) handleGraph(w http.ResponseWriter, r *http.Request) {
	res := s.snapshot()
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write(res.Artifacts[pipeline.FormatJSON])
}

// componentView is the /api/components row shape.
type componentView struct {
	Name    string   `json:"name"`
	Size    int      `json:"size"`
	Members []string `json:"members"`
}

func (s *server) handleComponents(w http.ResponseWriter, r *http.Request) {
	res := s.snapshot()
	comps := res.Registry.Components()

	views := make([]componentView, len(comps))
	for i, comp := range comps {
		views[i] = componentView{Name: comp.Name, Size: len(comp.Members), Members: comp.Members}
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"run_id":     res.RunID,
		"count":      len(views),
		"components": views,
	})
}

func (s *server) handleGEXF(w http.ResponseWriter, r *http.Request) {
	res := s.snapshot()
	w.Header().Set("Content-Type", "application/xml; charset=utf-8")
	_, _ = w.Write(res.Artifacts[pipeline.FormatGEXF])
}

func (s *server) handleChart(w http.ResponseWriter, r *http.Request) {
	res := s.snapshot()
	w.Header().Set("Content-Type", "image/svg+xml")
	_, _ = w.Write(res.Artifacts[pipeline.FormatSVG])
}

// writeJSON encodes v as the JSON response body.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// requestLogger logs one line per request on the application logger.
func requestLogger(logger *log.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)

			next.ServeHTTP(ww, r)

			logger.Info("request",
				"method", r.Method,
				"path", r.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start).Round(time.Microsecond),
				"id", chimiddleware.GetReqID(r.Context()),
			)
		})
	}
}
