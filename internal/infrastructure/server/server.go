package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	apihttp "github.com/GriffinCanCode/webdesk/internal/api/http"
	"github.com/GriffinCanCode/webdesk/internal/api/middleware"
	"github.com/GriffinCanCode/webdesk/internal/api/ws"
	"github.com/GriffinCanCode/webdesk/internal/domain/layout"
	"github.com/GriffinCanCode/webdesk/internal/domain/registry"
	"github.com/GriffinCanCode/webdesk/internal/domain/window"
	"github.com/GriffinCanCode/webdesk/internal/infrastructure/config"
	"github.com/GriffinCanCode/webdesk/internal/infrastructure/logging"
	"github.com/GriffinCanCode/webdesk/internal/infrastructure/monitoring"
	"github.com/GriffinCanCode/webdesk/internal/infrastructure/script"
	"github.com/GriffinCanCode/webdesk/internal/infrastructure/tracing"
	"github.com/GriffinCanCode/webdesk/internal/presentation"
)

// StreamPath serves desktop views over WebSocket
const StreamPath = "/stream"

// Server wraps the HTTP server and dependencies
type Server struct {
	router   *gin.Engine
	http     *http.Server
	registry *registry.Registry
	store    *window.Store
	hub      *ws.Hub
	hooks    *script.Hooks
	tracer   *tracing.Tracer
	logger   *logging.Logger
	config   *config.Config
	metrics  *monitoring.Metrics
}

// NewServer creates a new server instance
func NewServer(cfg *config.Config) (*Server, error) {
	// Initialize logger
	var logger *logging.Logger
	if cfg.Logging.Development {
		logger = logging.NewDevelopment()
	} else {
		l, err := logging.New(logging.ProductionConfig(cfg.Logging.Level))
		if err != nil {
			return nil, fmt.Errorf("failed to create logger: %w", err)
		}
		logger = l
	}

	logger.Info("Initializing webdesk server",
		zap.String("port", cfg.Server.Port),
		zap.String("apps_dir", cfg.Desktop.AppsDir),
	)

	// Initialize metrics first (needed by other components)
	metrics := monitoring.NewMetrics()

	tracer := tracing.New("webdesk", logger.Component("trace"))

	options, err := config.LoadOptions(cfg.Desktop.OptionsFile)
	if err != nil {
		tracer.Close()
		return nil, fmt.Errorf("failed to load desktop options: %w", err)
	}

	hooks, err := script.NewHooks(script.Config{
		Timeout:       cfg.Hooks.Timeout,
		EnableConsole: cfg.Hooks.Console,
		PoolSize:      script.DefaultConfig().PoolSize,
	}, logger.Component("hooks"))
	if err != nil {
		tracer.Close()
		return nil, fmt.Errorf("failed to start hook runtime: %w", err)
	}
	hooks.WithMetrics(metrics)

	// The newest desktop view measures layout through the binding
	binding := presentation.NewBinding()
	oracle := layout.NewOracle(cfg.Desktop.FallbackWidth, cfg.Desktop.FallbackHeight)
	oracle.Bind(binding)

	hub := ws.NewHub(binding, options).
		WithLogger(logger.Component("stream")).
		WithMetrics(metrics).
		WithTracer(tracer)

	appRegistry := registry.NewRegistry().
		WithLogger(logger.Component("registry")).
		WithMetrics(metrics).
		WithHooks(hooks).
		WithPublisher(hub)

	store := window.NewStore(appRegistry, oracle, binding).
		WithLogger(logger.Component("store")).
		WithMetrics(metrics).
		WithCascadeStep(cfg.Desktop.CascadeStep).
		WithPublisher(hub)

	hub.WithState(appRegistry, store)

	// Seed apps shipped as manifests
	seeder := registry.NewSeeder(appRegistry, cfg.Desktop.AppsDir).WithLogger(logger.Component("seeder"))
	if _, err := seeder.SeedApps(); err != nil {
		logger.Warn("Failed to seed apps", zap.Error(err))
	}

	// Create router
	if !cfg.Logging.Development {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()

	// Add middleware
	router.Use(gin.Recovery())
	router.Use(tracing.HTTPMiddleware(tracer))
	router.Use(monitoring.Middleware(metrics))
	router.Use(middleware.CORS(middleware.DefaultCORSConfig(cfg.Server.AllowOrigins...)))
	if cfg.RateLimit.Enabled {
		logger.Info("Rate limiting enabled",
			zap.Int("rps", cfg.RateLimit.RequestsPerSecond),
			zap.Int("burst", cfg.RateLimit.Burst),
		)
		rateCfg := middleware.DefaultRateLimitConfig()
		rateCfg.RequestsPerSecond = cfg.RateLimit.RequestsPerSecond
		rateCfg.Burst = cfg.RateLimit.Burst
		rateCfg.Skip = []string{StreamPath, "/health", "/metrics"}
		router.Use(middleware.RateLimit(rateCfg))
	}

	handlers := apihttp.NewHandlers(appRegistry, store, options, logger.Component("api"))
	apihttp.RegisterRoutes(router, handlers)

	router.GET(StreamPath, hub.HandleConnection)

	// Metrics endpoints
	aggregator := apihttp.NewMetricsAggregator(metrics, appRegistry, store)
	router.GET("/metrics", gin.WrapH(metrics.Handler()))
	router.GET("/metrics/json", aggregator.GetAggregatedMetrics)

	handler, err := middleware.Compress(router, StreamPath)
	if err != nil {
		hooks.Close()
		tracer.Close()
		return nil, fmt.Errorf("failed to create compression handler: %w", err)
	}

	logger.Info("Server initialized successfully",
		zap.Int("apps", appRegistry.Stats().TotalApps),
		zap.Int("options", len(options)),
	)

	return &Server{
		router: router,
		http: &http.Server{
			Addr:              net.JoinHostPort(cfg.Server.Host, cfg.Server.Port),
			Handler:           handler,
			ReadHeaderTimeout: 10 * time.Second,
		},
		registry: appRegistry,
		store:    store,
		hub:      hub,
		hooks:    hooks,
		tracer:   tracer,
		logger:   logger,
		config:   cfg,
		metrics:  metrics,
	}, nil
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.http.Handler
}

// Registry returns the app registry
func (s *Server) Registry() *registry.Registry {
	return s.registry
}

// Store returns the window store
func (s *Server) Store() *window.Store {
	return s.store
}

// Run starts the HTTP server and blocks until it stops
func (s *Server) Run() error {
	s.logger.Info("Starting HTTP server", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown disconnects desktop views and stops the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")

	err := s.http.Shutdown(ctx)
	if err != nil {
		s.logger.Error("Failed to shut down HTTP server", zap.Error(err))
	}
	if herr := s.hub.Close(ctx); herr != nil {
		s.logger.Error("Failed to disconnect desktop views", zap.Error(herr))
		if err == nil {
			err = herr
		}
	}

	if cerr := s.hooks.Close(); cerr != nil {
		s.logger.Error("Failed to close hook runtime", zap.Error(cerr))
	}
	s.tracer.Close()

	// Sync logger before exit
	_ = s.logger.Sync()

	return err
}
