// Package simple assembles a ready-to-run HTTP application: environment
// configuration, structured logging, a router with the recommended global
// middleware stack, and a graceful server.
package simple

import (
	"context"
	"errors"
	"log/slog"

	"github.com/relaykit/relay/core/config"
	"github.com/relaykit/relay/core/logger"
	"github.com/relaykit/relay/core/router"
	"github.com/relaykit/relay/core/server"
	"github.com/relaykit/relay/middleware"
)

type App struct {
	config Config
	router router.Router
	server *server.Server
	logger *slog.Logger
}

type AppOption func(*App) error

// NewApp loads configuration from the environment and wires up the
// application. Options override individual components.
func NewApp(opts ...AppOption) (*App, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return nil, err
	}

	app := &App{config: cfg}

	for _, opt := range opts {
		if err := opt(app); err != nil {
			return nil, err
		}
	}

	if app.logger == nil {
		app.logger = logger.New(
			logger.WithConfig(cfg.Log),
			logger.WithAttrs(slog.String("app", cfg.AppName)),
		)
	}

	if app.router == nil {
		app.router = router.New(router.WithLogger(app.logger))
		app.router.Use(middleware.ErrorBoundaryWithConfig(middleware.ErrorBoundaryConfig{
			Logger:         app.logger,
			ExposeInternal: cfg.Env == "development",
		}))
		app.router.Use(middleware.RequestID())
		app.router.Use(middleware.LoggingWithConfig(middleware.LoggingConfig{
			Logger: app.logger,
		}))
		app.router.Use(middleware.SecurityHeaders())
	}

	if app.server == nil {
		s, err := server.NewFromConfig(cfg.Server, server.WithLogger(app.logger))
		if err != nil {
			return nil, err
		}
		app.server = s
	}

	return app, nil
}

func WithLogger(logger *slog.Logger) AppOption {
	return func(app *App) error {
		if logger == nil {
			return errors.New("logger cannot be nil")
		}
		app.logger = logger
		return nil
	}
}

func WithRouter(r router.Router) AppOption {
	return func(app *App) error {
		if r == nil {
			return errors.New("router cannot be nil")
		}
		app.router = r
		return nil
	}
}

func WithServer(srv *server.Server) AppOption {
	return func(app *App) error {
		if srv == nil {
			return errors.New("server cannot be nil")
		}
		app.server = srv
		return nil
	}
}

// Router exposes the underlying router for route registration.
func (a *App) Router() router.Router {
	return a.router
}

// Logger exposes the application logger.
func (a *App) Logger() *slog.Logger {
	return a.logger
}

// Run serves the application until the context is canceled.
func (a *App) Run(ctx context.Context) error {
	return a.server.Start(ctx, a.router)
}
