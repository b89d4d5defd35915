package application

import (
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"github.com/PeterLuschny/FigurativePartitions/internal/api"
	"github.com/PeterLuschny/FigurativePartitions/internal/config"
	"github.com/PeterLuschny/FigurativePartitions/internal/metrics"
	"github.com/PeterLuschny/FigurativePartitions/internal/storage"
)

// App encapsulates the application dependencies and HTTP server.
type App struct {
	store   *storage.MemoryStore
	metrics *metrics.Recorder
	handler *api.Handler
	router  http.Handler
	logger  *zap.Logger
	server  *http.Server
}

// New initializes the application with all dependencies from the provided configuration.
func New(cfg config.Config, logger *zap.Logger) (*App, error) {
	store := storage.NewMemoryStore(storage.WithMaxSessions(cfg.MaxSessions))

	var recorder *metrics.Recorder
	if cfg.EnableMetrics {
		recorder = metrics.New()
	}

	handler := api.NewHandler(store,
		api.WithLogger(logger),
		api.WithMetrics(recorder),
		api.WithPreviewLength(cfg.PreviewLength),
		api.WithDefaultTarget(cfg.DefaultTarget),
	)
	apiRouter := api.NewRouter(handler, logger,
		api.WithLogging(cfg.EnableRequestLogging),
		api.WithRateLimit(cfg.RateLimitRPS, cfg.RateLimitBurst),
	)

	var metricsHandler http.Handler
	if recorder != nil {
		metricsHandler = recorder.Handler()
	}

	return &App{
		store:   store,
		metrics: recorder,
		handler: handler,
		router:  apiRouter,
		logger:  logger,
		server:  NewServer(cfg, BuildRootHandler(apiRouter, metricsHandler)),
	}, nil
}

// BuildRootHandler routes API requests and, when metricsHandler is non-nil,
// serves Prometheus metrics on /metrics.
func BuildRootHandler(apiHandler, metricsHandler http.Handler) http.Handler {
	mux := http.NewServeMux()
	mux.Handle("/api/", apiHandler)
	if metricsHandler != nil {
		mux.Handle("GET /metrics", metricsHandler)
	}
	mux.Handle("/", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}
		http.Redirect(w, r, "/api/shapes", http.StatusFound)
	}))

	return mux
}

// NewServer creates and configures an HTTP server from the provided configuration.
func NewServer(cfg config.Config, handler http.Handler) *http.Server {
	addr := cfg.Port
	if !strings.Contains(addr, ":") {
		addr = ":" + addr
	}

	return &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: cfg.ReadHeaderTimeout,
		WriteTimeout:      cfg.WriteTimeout,
		IdleTimeout:       cfg.IdleTimeout,
	}
}

// Start starts the HTTP server in a goroutine and logs the listening address.
func (a *App) Start() error {
	go func() {
		a.logger.Info("server listening", zap.String("addr", a.server.Addr))
		if err := a.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			a.logger.Fatal("server error", zap.Error(err))
		}
	}()
	return nil
}

// Server returns the HTTP server instance for shutdown handling.
func (a *App) Server() *http.Server {
	return a.server
}
