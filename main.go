package main

import (
	"fmt"
	"os"
	"reflect"

	"go.uber.org/zap"

	"github.com/km-arc/go-container/framework/app"
	"github.com/km-arc/go-container/framework/container"
)

// Logger is the abstraction services depend on.
type Logger interface {
	Log(msg string)
}

// ZapLogger adapts the application logger.
type ZapLogger struct {
	z *zap.Logger
}

func (l *ZapLogger) Log(msg string) { l.z.Info(msg) }

// Service takes a Logger from the container, a required name and an
// optional retry count.
type Service struct {
	Logger  Logger
	Name    string
	Retries int
}

func (s *Service) onConstruct() {
	s.Logger.Log(fmt.Sprintf("service %s ready (retries=%d)", s.Name, s.Retries))
}

// Report is built from a plain constructor function.
type Report struct {
	Service *Service
	Title   string
}

func NewReport(s *Service, title string) *Report {
	return &Report{Service: s, Title: title}
}

// ── Providers ─────────────────────────────────────────────────────────────────

type demoProvider struct{}

func (demoProvider) Register(b *container.Builder) {
	b.Bind("Logger", container.BindFactory(func() (any, error) {
		z, err := zap.NewDevelopment()
		if err != nil {
			return nil, err
		}
		return &ZapLogger{z: z.Named("demo")}, nil
	}))

	b.Define(
		(&container.Class{
			Name: container.TypeKey((*Service)(nil)),
			Type: reflect.TypeOf(&Service{}),
			Params: []container.Param{
				container.Dep("logger", "Logger"),
				container.Arg("name"),
				container.Opt("retries", 3),
			},
			New: func(args []any) (any, error) {
				return &Service{Logger: args[0].(Logger), Name: args[1].(string), Retries: args[2].(int)}, nil
			},
		}).WithMethod(container.DefaultSetter, &container.Method{
			Fn: func(target any, _ []any) (any, error) {
				target.(*Service).onConstruct()
				return nil, nil
			},
		}),
		container.MustFromFunc("Report", NewReport, container.ParamNames("service", "title")),
	)
	b.Alias("Service", container.TypeKey((*Service)(nil)))
}

// Boot builds Service with an explicit name so Report can depend on it.
func (demoProvider) Boot(c *container.Container) error {
	if _, err := c.Load("Service", container.Positional(nil, "svc1")); err != nil {
		return err
	}
	_, err := c.Load("Report", container.Named(map[string]any{"title": "daily"}))
	return err
}

func main() {
	application, err := app.New(nil, demoProvider{})
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	report := container.MustResolve[*Report](application.Container, "Report")
	application.Logger().Info("report ready",
		zap.String("title", report.Title),
		zap.String("service", report.Service.Name),
	)

	if err := application.Run(); err != nil {
		application.Logger().Fatal("server error", zap.Error(err))
	}
}
