package app

import (
	"context"
	"errors"
	"fmt"
	"net"
	nethttp "net/http"

	redisClient "github.com/redis/go-redis/v9"

	"github.com/sm8ta/carsharing_microservice/internal/adapter/handler/http"
	"github.com/sm8ta/carsharing_microservice/internal/adapter/jsonfile"
	"github.com/sm8ta/carsharing_microservice/internal/adapter/logger"
	"github.com/sm8ta/carsharing_microservice/internal/adapter/prometheus"
	"github.com/sm8ta/carsharing_microservice/internal/adapter/redis"
	"github.com/sm8ta/carsharing_microservice/internal/adapter/sqlstore"
	"github.com/sm8ta/carsharing_microservice/internal/config"
	"github.com/sm8ta/carsharing_microservice/internal/core/ports"
	"github.com/sm8ta/carsharing_microservice/internal/core/services"
)

type App struct {
	Config     *config.Container
	Logger     ports.LoggerPort
	CarRepo    ports.CarRepository
	HTTPRouter *http.Router
	server     *nethttp.Server
}

func New(ctx context.Context, cfg *config.Container) (*App, error) {
	// Set logger
	loggerAdapter := logger.NewLoggerAdapter(cfg.App.Env, cfg.Log.Level)
	return newApp(ctx, cfg, loggerAdapter)
}

func newApp(ctx context.Context, cfg *config.Container, loggerAdapter ports.LoggerPort) (*App, error) {
	loggerAdapter.Info("Starting the application", map[string]interface{}{
		"app":     cfg.App.Name,
		"env":     cfg.App.Env,
		"backend": cfg.Store.Backend,
	})

	// Storage
	carRepo, err := newCarRepository(ctx, cfg)
	if err != nil {
		return nil, err
	}

	// Validate
	validate := services.NewValidator()

	// Observability
	metrics := prometheus.NewPrometheusAdapter()

	// Services
	carService := services.NewCarService(carRepo, loggerAdapter, validate)

	// HTTP Handlers
	carHandler := http.NewCarHandler(carService, loggerAdapter, metrics)
	webHandler := http.NewWebHandler(carService, loggerAdapter, metrics)

	// Init HTTP router
	router, err := http.NewRouter(
		cfg.HTTP,
		loggerAdapter,
		metrics,
		carHandler,
		webHandler,
	)
	if err != nil {
		carRepo.Close()
		return nil, fmt.Errorf("failed to initialize router: %w", err)
	}

	return &App{
		Config:     cfg,
		Logger:     loggerAdapter,
		CarRepo:    carRepo,
		HTTPRouter: router,
		server: &nethttp.Server{
			Addr:         cfg.HTTP.Addr(),
			Handler:      router.Engine(),
			ReadTimeout:  cfg.HTTP.ReadTimeout,
			WriteTimeout: cfg.HTTP.WriteTimeout,
			IdleTimeout:  cfg.HTTP.IdleTimeout,
		},
	}, nil
}

// newCarRepository opens the backend named by STORE_BACKEND.
func newCarRepository(ctx context.Context, cfg *config.Container) (ports.CarRepository, error) {
	switch cfg.Store.Backend {
	case config.BackendJSON:
		repo, err := jsonfile.NewCarRepository(cfg.Store.DataFile)
		if err != nil {
			return nil, fmt.Errorf("failed to open data file: %w", err)
		}
		return repo, nil
	case config.BackendMemory:
		return jsonfile.NewMemoryRepository(), nil
	case config.BackendSQLite:
		repo, err := sqlstore.OpenSQLite(cfg.SQLite.Path, cfg.DB.MigrationsDir)
		if err != nil {
			return nil, fmt.Errorf("failed to open sqlite database: %w", err)
		}
		return repo, nil
	case config.BackendPostgres:
		repo, err := sqlstore.OpenPostgres(ctx, cfg.DB.DSN(), cfg.DB.MigrationsDir)
		if err != nil {
			return nil, fmt.Errorf("failed to connect to database: %w", err)
		}
		return repo, nil
	case config.BackendRedis:
		redisConn := redisClient.NewClient(&redisClient.Options{
			Addr:     cfg.Redis.Address,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
		if _, err := redisConn.Ping(ctx).Result(); err != nil {
			redisConn.Close()
			return nil, fmt.Errorf("failed to connect to Redis: %w", err)
		}
		return redis.NewCarRepository(redisConn, cfg.Redis.Prefix), nil
	default:
		return nil, fmt.Errorf("unknown store backend %q", cfg.Store.Backend)
	}
}

// Run binds the listener and serves in the background. Bind errors are
// returned; later serve errors are logged.
func (a *App) Run() error {
	ln, err := net.Listen("tcp", a.server.Addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", a.server.Addr, err)
	}
	a.Logger.Info("Starting HTTP server", map[string]interface{}{
		"addr": ln.Addr().String(),
	})

	go func() {
		if err := a.server.Serve(ln); err != nil && !errors.Is(err, nethttp.ErrServerClosed) {
			a.Logger.Error("HTTP server error", map[string]interface{}{
				"error": err.Error(),
			})
		}
	}()
	return nil
}

// Stop drains in-flight requests, then closes the store.
func (a *App) Stop(ctx context.Context) error {
	a.Logger.Info("Shutting down gracefully...", nil)

	var errs []error
	if err := a.server.Shutdown(ctx); err != nil {
		a.Logger.Error("HTTP server shutdown error", map[string]interface{}{
			"error": err.Error(),
		})
		errs = append(errs, err)
	}

	if err := a.CarRepo.Close(); err != nil {
		a.Logger.Error("Store close error", map[string]interface{}{
			"error": err.Error(),
		})
		errs = append(errs, err)
	}

	a.Logger.Info("Application stopped", nil)
	return errors.Join(errs...)
}
