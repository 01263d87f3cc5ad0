package app

import (
	"errors"
	"net/http"

	"go.uber.org/zap"

	"github.com/km-arc/go-container/framework/config"
	"github.com/km-arc/go-container/framework/container"
	"github.com/km-arc/go-container/framework/providers"
	"github.com/km-arc/go-container/framework/routing"
)

// Application is the top-level application. It embeds the built Container
// so user code can call app.Load(), app.Call() and app.Get() directly.
type Application struct {
	*container.Container
	Config *config.Config

	logger *zap.Logger
}

// New loads configuration from envFiles, registers the framework providers
// (config, logging, routing, diagnostics) followed by the given providers,
// and builds the container.
func New(envFiles []string, extra ...container.ServiceProvider) (*Application, error) {
	cfg, err := config.Load(envFiles...)
	if err != nil {
		return nil, err
	}

	logger, err := providers.NewLogger(cfg.App.Debug)
	if err != nil {
		return nil, err
	}
	logger = logger.With(zap.String("app", cfg.App.Name), zap.String("env", cfg.App.Env))

	c, err := container.NewBuilder(cfg.Container.Container(), container.WithLogger(logger.Named("container"))).
		Register(
			&providers.ConfigServiceProvider{Config: cfg},
			&providers.LoggingServiceProvider{Logger: logger},
			&providers.RoutingServiceProvider{},
			&providers.DiagnosticsServiceProvider{},
		).
		Register(extra...).
		Build()
	if err != nil {
		_ = logger.Sync()
		return nil, err
	}

	return &Application{Container: c, Config: cfg, logger: logger}, nil
}

// Logger returns the application logger.
func (a *Application) Logger() *zap.Logger { return a.logger }

// Router resolves *routing.Router from the container.
func (a *Application) Router() *routing.Router {
	return container.MustResolve[*routing.Router](a.Container, "router")
}

// Run starts the HTTP server on APP_PORT and blocks until it fails.
func (a *Application) Run() error {
	defer func() { _ = a.logger.Sync() }()

	addr := ":" + a.Config.App.Port
	a.logger.Info("listening", zap.String("addr", addr))

	err := http.ListenAndServe(addr, a.Router())
	if errors.Is(err, http.ErrServerClosed) {
		return nil
	}
	return err
}

// Environment returns APP_ENV value.
func (a *Application) Environment() string { return a.Config.App.Env }
func (a *Application) IsLocal() bool       { return a.Environment() == "local" }
func (a *Application) IsProduction() bool  { return a.Environment() == "production" }
func (a *Application) IsTesting() bool     { return a.Environment() == "testing" }
func (a *Application) IsDebug() bool       { return a.Config.App.Debug }
