package providers

import (
	"go.uber.org/zap"

	"github.com/km-arc/go-container/framework/config"
	"github.com/km-arc/go-container/framework/container"
	"github.com/km-arc/go-container/framework/diagnostics"
	"github.com/km-arc/go-container/framework/routing"
)

// ── ConfigServiceProvider ─────────────────────────────────────────────────────

// ConfigServiceProvider binds the loaded application configuration.
//
// Bound identifiers:
//   - "config"  → *config.Config
type ConfigServiceProvider struct {
	container.BaseProvider
	Config *config.Config
}

func (p *ConfigServiceProvider) Register(b *container.Builder) {
	b.Bind("config", container.BindInstance(p.Config))
}

// ── LoggingServiceProvider ────────────────────────────────────────────────────

// LoggingServiceProvider binds the application logger.
//
// Bound identifiers:
//   - "logger"              → *zap.Logger
//   - "go.uber.org/zap.Logger" → the same *zap.Logger, so descriptors built
//     with container.FromFunc can take a *zap.Logger parameter
type LoggingServiceProvider struct {
	container.BaseProvider
	Logger *zap.Logger
}

func (p *LoggingServiceProvider) Register(b *container.Builder) {
	logger := p.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	b.Bind("logger", container.BindInstance(logger))
	b.Bind(container.TypeKey(logger), container.BindInstance(logger))
}

// NewLogger builds the application logger: development output when debug is
// set, JSON production output otherwise.
func NewLogger(debug bool) (*zap.Logger, error) {
	if debug {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// ── RoutingServiceProvider ────────────────────────────────────────────────────

// RoutingServiceProvider registers the HTTP router.
//
// Bound identifiers:
//   - "router"  → *routing.Router, built with the bound *zap.Logger
type RoutingServiceProvider struct {
	container.BaseProvider
}

func (p *RoutingServiceProvider) Register(b *container.Builder) {
	b.Define(container.MustFromFunc("router", routing.New, container.ParamNames("logger")))
}

// ── DiagnosticsServiceProvider ────────────────────────────────────────────────

// DiagnosticsServiceProvider mounts the container inspection endpoints on
// the router under Prefix (default diagnostics.Prefix).
type DiagnosticsServiceProvider struct {
	Prefix string
}

func (p *DiagnosticsServiceProvider) Register(*container.Builder) {}

func (p *DiagnosticsServiceProvider) Boot(c *container.Container) error {
	router, err := container.Resolve[*routing.Router](c, "router")
	if err != nil {
		return err
	}
	logger, err := container.Resolve[*zap.Logger](c, "logger")
	if err != nil {
		return err
	}
	prefix := p.Prefix
	if prefix == "" {
		prefix = diagnostics.Prefix
	}
	diagnostics.New(c, logger).Mount(router, prefix)
	return nil
}
