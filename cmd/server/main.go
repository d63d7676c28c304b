// Package main is the entry point for the portfolio projects API. It wires
// all dependencies using samber/do v2, starts the HTTP server, and handles
// graceful shutdown on SIGINT/SIGTERM.
package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	nethttp "net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/samber/do/v2"

	"github.com/jsamuelsen11/portfolio-service/internal/adapters/clients/postgrest"
	adapthttp "github.com/jsamuelsen11/portfolio-service/internal/adapters/http"
	"github.com/jsamuelsen11/portfolio-service/internal/adapters/http/guard"
	"github.com/jsamuelsen11/portfolio-service/internal/adapters/http/handlers"
	"github.com/jsamuelsen11/portfolio-service/internal/adapters/storage/memory"
	"github.com/jsamuelsen11/portfolio-service/internal/adapters/storage/postgres"
	"github.com/jsamuelsen11/portfolio-service/internal/app"
	"github.com/jsamuelsen11/portfolio-service/internal/platform/config"
	"github.com/jsamuelsen11/portfolio-service/internal/platform/health"
	"github.com/jsamuelsen11/portfolio-service/internal/platform/httpclient"
	"github.com/jsamuelsen11/portfolio-service/internal/platform/logging"
	"github.com/jsamuelsen11/portfolio-service/internal/platform/telemetry"
	"github.com/jsamuelsen11/portfolio-service/internal/ports"
)

const (
	serverShutdownTimeout = 15 * time.Second
	otelShutdownTimeout   = 5 * time.Second
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	profile := os.Getenv("APP_PROFILE")
	if profile == "" {
		return errors.New("APP_PROFILE environment variable is required (local, dev or prod)")
	}

	// Bootstrap: config, logger, telemetry.
	cfg, err := config.Load(profile)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logger := logging.New(os.Stderr,
		logging.WithLevel(cfg.Log.Level),
		logging.WithFormat(cfg.Log.Format),
		logging.WithAttrs(
			slog.String("service", cfg.Telemetry.ServiceName),
			slog.String("profile", profile),
		),
	)

	ctx := context.Background()
	otel, err := initTelemetry(ctx, cfg, profile)
	if err != nil {
		return fmt.Errorf("initializing telemetry: %w", err)
	}

	// DI container.
	injector := do.New()

	do.ProvideValue(injector, cfg)
	do.ProvideValue(injector, logger)
	do.ProvideValue(injector, otel.Metrics)

	registerDependencies(injector, cfg, logger)

	// Resolve the server (eagerly wires the full graph).
	server, err := do.Invoke[*adapthttp.Server](injector)
	if err != nil {
		return fmt.Errorf("resolving server: %w", err)
	}

	// Register health checkers after the graph is wired.
	registry := do.MustInvoke[ports.HealthRegistry](injector)
	store := do.MustInvoke[ports.ProjectStore](injector)
	if checker, ok := store.(ports.HealthChecker); ok {
		registry.Register(checker)
	}

	var pool *pgxpool.Pool
	if cfg.Store.Driver == config.DriverPostgres {
		pool = do.MustInvoke[*pgxpool.Pool](injector)
	}

	if cfg.Guard.AdminToken == "" {
		logger.Warn("guard.admin_token is not set; mutating project routes will fail closed")
	}

	// Start server in background.
	serverErr := make(chan error, 1)
	go func() {
		serverErr <- server.Start()
	}()

	// Wait for shutdown signal or server error.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-quit:
		logger.Info("received shutdown signal", slog.String("signal", sig.String()))
	case err := <-serverErr:
		if pool != nil {
			pool.Close()
		}
		return fmt.Errorf("server failed: %w", err)
	}

	var poolCloser closer
	if pool != nil {
		poolCloser = pool
	}
	shutdown(logger, stopSequence(server, serverErr, poolCloser, otel)...)

	logger.Info("shutdown complete")
	return nil
}

type shutdowner interface {
	Shutdown(ctx context.Context) error
}

type closer interface {
	Close()
}

// stopper is one stage of the stop sequence. A zero timeout means no
// deadline.
type stopper struct {
	name    string
	timeout time.Duration
	stop    func(ctx context.Context) error
}

// stopSequence drains HTTP first, then closes the database pool (nil when
// the store is not postgres), then flushes telemetry so spans from the
// drained requests are exported.
func stopSequence(server shutdowner, served <-chan error, pool closer, otel shutdowner) []stopper {
	steps := []stopper{{
		name:    "server",
		timeout: serverShutdownTimeout,
		stop: func(ctx context.Context) error {
			err := server.Shutdown(ctx)
			<-served
			return err
		},
	}}
	if pool != nil {
		steps = append(steps, stopper{
			name: "database pool",
			stop: func(context.Context) error {
				pool.Close()
				return nil
			},
		})
	}
	return append(steps, stopper{name: "telemetry", timeout: otelShutdownTimeout, stop: otel.Shutdown})
}

// shutdown runs every step in order. A failing step is logged and does not
// stop the ones after it.
func shutdown(logger *slog.Logger, steps ...stopper) {
	for _, step := range steps {
		ctx := context.Background()
		cancel := func() {}
		if step.timeout > 0 {
			ctx, cancel = context.WithTimeout(ctx, step.timeout)
		}
		err := step.stop(ctx)
		cancel()
		if err != nil {
			logger.Error("shutdown step failed", slog.String("step", step.name), slog.Any("error", err))
		}
	}
}

// initTelemetry returns zero-value providers with nil metrics when telemetry
// is disabled.
func initTelemetry(ctx context.Context, cfg *config.Config, profile string) (*telemetry.Providers, error) {
	if !cfg.Telemetry.Enabled {
		return &telemetry.Providers{}, nil
	}

	return telemetry.Setup(ctx, telemetry.Settings{
		ServiceName: cfg.Telemetry.ServiceName,
		Environment: profile,
		Exporter:    cfg.Telemetry.Exporter,
		Endpoint:    cfg.Telemetry.Endpoint,
	})
}

func registerDependencies(injector *do.RootScope, cfg *config.Config, logger *slog.Logger) {
	registerStore(injector, cfg, logger)

	do.Provide(injector, func(i do.Injector) (ports.ProjectService, error) {
		store := do.MustInvoke[ports.ProjectStore](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)
		return app.NewProjectService(store, metrics, logger), nil
	})

	do.Provide(injector, func(_ do.Injector) (ports.HealthRegistry, error) {
		return health.New(), nil
	})

	do.Provide(injector, func(_ do.Injector) (ports.Authorizer, error) {
		return guard.NewSharedSecret(cfg.Guard.Header, cfg.Guard.AdminToken), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.ProjectHandler, error) {
		svc := do.MustInvoke[ports.ProjectService](i)
		return handlers.NewProjectHandler(svc, cfg.Server.MaxBodyBytes), nil
	})

	do.Provide(injector, func(i do.Injector) (*handlers.HealthHandler, error) {
		registry := do.MustInvoke[ports.HealthRegistry](i)
		return handlers.NewHealthHandler(registry), nil
	})

	do.Provide(injector, func(i do.Injector) (nethttp.Handler, error) {
		projH := do.MustInvoke[*handlers.ProjectHandler](i)
		healthH := do.MustInvoke[*handlers.HealthHandler](i)
		authz := do.MustInvoke[ports.Authorizer](i)
		metrics := do.MustInvoke[*telemetry.Metrics](i)

		return adapthttp.NewRouter(projH, healthH,
			guard.Require(authz, logger),
			adapthttp.StandardMiddleware(cfg, logger, metrics)...,
		), nil
	})

	do.Provide(injector, func(i do.Injector) (*adapthttp.Server, error) {
		handler := do.MustInvoke[nethttp.Handler](i)
		return adapthttp.NewServer(cfg.Server, handler, logger), nil
	})
}

// registerStore provides the ports.ProjectStore selected by store.driver.
func registerStore(injector *do.RootScope, cfg *config.Config, logger *slog.Logger) {
	switch cfg.Store.Driver {
	case config.DriverPostgres:
		do.Provide(injector, func(_ do.Injector) (*pgxpool.Pool, error) {
			ctx := context.Background()
			pool, err := postgres.Open(ctx, cfg.Store.Postgres)
			if err != nil {
				return nil, err
			}
			if cfg.Store.Postgres.Migrate {
				if err := postgres.Migrate(ctx, pool); err != nil {
					pool.Close()
					return nil, err
				}
				logger.Info("applied postgres schema")
			}
			return pool, nil
		})
		do.Provide(injector, func(i do.Injector) (ports.ProjectStore, error) {
			pool, err := do.Invoke[*pgxpool.Pool](i)
			if err != nil {
				return nil, err
			}
			return postgres.NewProjectStore(pool), nil
		})

	case config.DriverMemory:
		do.Provide(injector, func(_ do.Injector) (ports.ProjectStore, error) {
			store, err := memory.New()
			if err != nil {
				return nil, err
			}
			if path := cfg.Store.Memory.SeedFile; path != "" {
				inputs, err := memory.LoadSeedFile(path)
				if err != nil {
					return nil, err
				}
				if err := store.Seed(context.Background(), inputs); err != nil {
					return nil, err
				}
				logger.Info("seeded memory store", slog.String("file", path), slog.Int("projects", len(inputs)))
			}
			return store, nil
		})

	default:
		pg := cfg.Store.PostgREST
		do.Provide(injector, func(i do.Injector) (*httpclient.Client, error) {
			metrics := do.MustInvoke[*telemetry.Metrics](i)
			return httpclient.New(pg.BaseURL, &pg.Client, "postgrest", metrics, logger), nil
		})
		do.Provide(injector, func(i do.Injector) (ports.ProjectStore, error) {
			client := do.MustInvoke[*httpclient.Client](i)
			creds := postgrest.Credentials{APIKey: pg.APIKey, Schema: pg.Schema}
			return postgrest.NewProjectStore(client, pg.Table, creds, logger), nil
		})
	}
}
