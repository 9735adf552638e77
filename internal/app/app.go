package app

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/relaydesk/relaydesk/config"
	"github.com/relaydesk/relaydesk/internal/database"
	"github.com/relaydesk/relaydesk/internal/domain"
	httpHandler "github.com/relaydesk/relaydesk/internal/http"
	"github.com/relaydesk/relaydesk/internal/http/middleware"
	"github.com/relaydesk/relaydesk/internal/repository"
	"github.com/relaydesk/relaydesk/internal/service"
	"github.com/relaydesk/relaydesk/pkg/logger"
	"github.com/relaydesk/relaydesk/pkg/ratelimiter"
	"github.com/relaydesk/relaydesk/pkg/tracing"
)

// AppInterface defines the interface for the App
type AppInterface interface {
	Initialize() error
	Run(ctx context.Context) error
	Shutdown(ctx context.Context) error

	GetConfig() *config.Config
	GetLogger() logger.Logger
	GetMux() *http.ServeMux
	GetDB() *sql.DB
	Handler() http.Handler
	GetActiveRequestCount() int64
}

// SessionStore is a builder session store owning resources to release at
// shutdown.
type SessionStore interface {
	domain.BuilderSessionStore
	Close() error
}

// App encapsulates the application dependencies and configuration
type App struct {
	config *config.Config
	logger logger.Logger
	db     *sql.DB

	sessionStore SessionStore
	healthChecks map[string]httpHandler.HealthCheck

	// Repositories
	templateRepo domain.SignatureTemplateRepository

	// Services
	templateService *service.SignatureTemplateService
	builderService  *service.BuilderService

	// HTTP
	mux            *http.ServeMux
	metricsHandler http.Handler
	rateLimiter    *ratelimiter.Limiter

	serverMu sync.Mutex
	server   *http.Server

	stopTracing func()
	stopMetrics func()

	shuttingDown   atomic.Bool
	activeRequests int64
	requestWg      sync.WaitGroup
}

// AppOption defines a functional option for configuring the App
type AppOption func(*App)

// WithMockDB configures the app to use a given database handle
func WithMockDB(db *sql.DB) AppOption {
	return func(a *App) {
		a.db = db
	}
}

// WithLogger sets a custom logger
func WithLogger(logger logger.Logger) AppOption {
	return func(a *App) {
		a.logger = logger
	}
}

// WithSessionStore skips building the configured session store
func WithSessionStore(store SessionStore) AppOption {
	return func(a *App) {
		a.sessionStore = store
	}
}

// NewApp creates a new application instance
func NewApp(cfg *config.Config, opts ...AppOption) *App {
	app := &App{
		config:       cfg,
		logger:       logger.NewLoggerWithLevel(cfg.LogLevel),
		mux:          http.NewServeMux(),
		healthChecks: make(map[string]httpHandler.HealthCheck),
		stopTracing:  func() {},
		stopMetrics:  func() {},
	}

	for _, opt := range opts {
		opt(app)
	}

	return app
}

// InitTracing installs span export and, when enabled, Prometheus metrics
func (a *App) InitTracing() error {
	stop, err := tracing.InitTracing(&a.config.Tracing, a.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize tracing: %w", err)
	}
	a.stopTracing = stop

	handler, stopMetrics, err := tracing.InitMetrics(&a.config.Tracing, a.logger)
	if err != nil {
		return fmt.Errorf("failed to initialize metrics: %w", err)
	}
	a.metricsHandler = handler
	a.stopMetrics = stopMetrics
	return nil
}

// InitDB connects to PostgreSQL and creates the tables. A handle injected
// with WithMockDB is used as is.
func (a *App) InitDB() error {
	if a.db == nil {
		a.logger.WithFields(map[string]interface{}{
			"host":    a.config.Database.Host,
			"port":    a.config.Database.Port,
			"dbname":  a.config.Database.DBName,
			"sslmode": a.config.Database.SSLMode,
		}).Info("Connecting to database")

		driverName, err := tracing.SQLDriver(&a.config.Tracing, "postgres")
		if err != nil {
			return err
		}

		db, err := database.Connect(&a.config.Database, driverName)
		if err != nil {
			return err
		}
		a.db = db
	}

	db := a.db
	a.healthChecks["database"] = db.PingContext
	return nil
}

// InitSessionStore opens the builder session store selected by SESSION_STORE
func (a *App) InitSessionStore() error {
	if a.sessionStore != nil {
		return nil
	}

	switch a.config.Session.Store {
	case config.SessionStoreRedis:
		store, err := repository.NewRedisBuilderSessionStore(a.config.Session.RedisURL, a.config.Session.TTL)
		if err != nil {
			return err
		}
		a.sessionStore = store
		a.healthChecks["sessions"] = store.Ping
	default:
		a.sessionStore = repository.NewMemoryBuilderSessionStore(a.config.Session.TTL)
	}

	a.logger.WithField("store", a.config.Session.Store).
		WithField("ttl", a.config.Session.TTL.String()).
		Info("Builder session store ready")
	return nil
}

func (a *App) InitRepositories() error {
	a.templateRepo = repository.NewSignatureTemplateRepository(a.db)
	return nil
}

func (a *App) InitServices() error {
	a.templateService = service.NewSignatureTemplateService(a.templateRepo, a.logger)
	a.builderService = service.NewBuilderService(a.sessionStore, a.templateService, a.logger)
	return nil
}

// InitRateLimiter sets the per-user budgets from config. A zero budget
// leaves that namespace unthrottled.
func (a *App) InitRateLimiter() {
	a.rateLimiter = ratelimiter.New(time.Minute)
	if n := a.config.RateLimit.RenderPerMinute; n > 0 {
		a.rateLimiter.SetPolicy(httpHandler.RateLimitRender, ratelimiter.Policy{Limit: n, Window: time.Minute})
	}
	if n := a.config.RateLimit.BuilderPerMinute; n > 0 {
		a.rateLimiter.SetPolicy(httpHandler.RateLimitBuilder, ratelimiter.Policy{Limit: n, Window: time.Minute})
	}
}

func (a *App) InitHandlers() error {
	secret := a.config.Security.JWTSecret
	a.InitRateLimiter()

	templateHandler := httpHandler.NewSignatureTemplateHandler(a.templateService, secret, a.logger)
	builderHandler := httpHandler.NewBuilderHandler(a.builderService, secret, a.logger)
	if a.config.RateLimit.RenderPerMinute > 0 {
		templateHandler.SetRateLimiter(a.rateLimiter)
	}
	if a.config.RateLimit.BuilderPerMinute > 0 {
		builderHandler.SetRateLimiter(a.rateLimiter)
	}
	templateHandler.RegisterRoutes(a.mux)
	builderHandler.RegisterRoutes(a.mux)
	httpHandler.NewRootHandler(a.logger, a.config.Version, a.healthChecks).RegisterRoutes(a.mux)

	if a.metricsHandler != nil {
		a.mux.Handle("/metrics", a.metricsHandler)
	}
	return nil
}

// Initialize runs every initialization step in dependency order
func (a *App) Initialize() error {
	a.logger.WithField("version", a.config.Version).Info("Starting signature builder application")

	steps := []func() error{
		a.InitTracing,
		a.InitDB,
		a.InitSessionStore,
		a.InitRepositories,
		a.InitServices,
		a.InitHandlers,
	}
	for _, step := range steps {
		if err := step(); err != nil {
			return err
		}
	}

	a.logger.Info("Application successfully initialized")
	return nil
}

// Handler returns the mux wrapped with the request middlewares, outermost
// first: CORS, tracing, shutdown tracking.
func (a *App) Handler() http.Handler {
	var handler http.Handler = a.mux
	handler = a.gracefulShutdownMiddleware(handler)
	if a.config.Tracing.Enabled {
		handler = middleware.TracingMiddleware(handler)
	}
	return middleware.CORSMiddleware(handler)
}

// Run serves HTTP until ctx is cancelled or the listener fails, then shuts
// down gracefully.
func (a *App) Run(ctx context.Context) error {
	listener, err := net.Listen("tcp", a.config.Addr())
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", a.config.Addr(), err)
	}
	return a.serve(ctx, listener)
}

func (a *App) serve(ctx context.Context, listener net.Listener) error {
	server := &http.Server{
		Handler:           a.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	a.serverMu.Lock()
	a.server = server
	a.serverMu.Unlock()

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		a.logger.WithField("address", listener.Addr().String()).Info("Server listening")
		if err := server.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), a.config.Server.ShutdownTimeout)
		defer cancel()
		return a.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// Shutdown stops accepting requests, waits for the active ones within ctx
// and releases the database and the session store.
func (a *App) Shutdown(ctx context.Context) error {
	if !a.shuttingDown.CompareAndSwap(false, true) {
		return nil
	}
	a.logger.WithField("active_requests", a.GetActiveRequestCount()).Info("Starting graceful shutdown...")

	var shutdownErr error

	a.serverMu.Lock()
	server := a.server
	a.serverMu.Unlock()
	if server != nil {
		if err := server.Shutdown(ctx); err != nil {
			a.logger.WithField("error", err.Error()).Warn("HTTP server shutdown did not complete")
			shutdownErr = err
		}
	}

	done := make(chan struct{})
	go func() {
		a.requestWg.Wait()
		close(done)
	}()
	select {
	case <-done:
	case <-ctx.Done():
		a.logger.WithField("active_requests", a.GetActiveRequestCount()).Warn("Shutdown timeout reached, forcing shutdown")
	}

	if err := a.cleanupResources(); err != nil && shutdownErr == nil {
		shutdownErr = err
	}

	if shutdownErr != nil {
		a.logger.WithField("error", shutdownErr.Error()).Error("Graceful shutdown completed with errors")
		return shutdownErr
	}
	a.logger.Info("Graceful shutdown completed successfully")
	return nil
}

func (a *App) cleanupResources() error {
	var errs []error

	if a.sessionStore != nil {
		if err := a.sessionStore.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close session store: %w", err))
		}
	}
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}
	if a.rateLimiter != nil {
		a.rateLimiter.Stop()
	}
	a.stopMetrics()
	a.stopTracing()

	return errors.Join(errs...)
}

// gracefulShutdownMiddleware refuses new requests once shutdown has started
// and tracks the ones in flight.
func (a *App) gracefulShutdownMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if a.shuttingDown.Load() {
			httpHandler.WriteJSONError(w, "Server is shutting down", http.StatusServiceUnavailable)
			return
		}

		a.requestWg.Add(1)
		atomic.AddInt64(&a.activeRequests, 1)
		defer func() {
			atomic.AddInt64(&a.activeRequests, -1)
			a.requestWg.Done()
		}()

		next.ServeHTTP(w, r)
	})
}

func (a *App) GetConfig() *config.Config {
	return a.config
}

func (a *App) GetLogger() logger.Logger {
	return a.logger
}

func (a *App) GetMux() *http.ServeMux {
	return a.mux
}

func (a *App) GetDB() *sql.DB {
	return a.db
}

func (a *App) GetActiveRequestCount() int64 {
	return atomic.LoadInt64(&a.activeRequests)
}

// Ensure App implements AppInterface
var _ AppInterface = (*App)(nil)
