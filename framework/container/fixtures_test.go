package container_test

import (
	"reflect"

	"github.com/km-arc/go-container/framework/container"
)

// ── fixtures ──────────────────────────────────────────────────────────────────

type Logger interface {
	Log(msg string)
}

type ConsoleLogger struct {
	lines []string
}

func (l *ConsoleLogger) Log(msg string) { l.lines = append(l.lines, msg) }

type Service struct {
	Logger  Logger
	Name    string
	Retries int
	hooked  int
}

func (s *Service) onConstruct() { s.hooked++ }

func (s *Service) rename(name string) string {
	old := s.Name
	s.Name = name
	return old
}

type MemoryCache struct {
	items map[string]string
}

// serviceClass describes Service(Logger logger, string name, int retries = 3).
// rename is reachable only through the descriptor.
func serviceClass() *container.Class {
	return (&container.Class{
		Name: "Service",
		Type: reflect.TypeOf(&Service{}),
		Params: []container.Param{
			container.Dep("logger", "Logger"),
			container.Arg("name"),
			container.Opt("retries", 3),
		},
		New: func(args []any) (any, error) {
			return &Service{
				Logger:  args[0].(Logger),
				Name:    args[1].(string),
				Retries: args[2].(int),
			}, nil
		},
	}).
		WithMethod(container.DefaultSetter, &container.Method{
			Fn: func(target any, _ []any) (any, error) {
				target.(*Service).onConstruct()
				return nil, nil
			},
		}).
		WithMethod("rename", &container.Method{
			Params: []container.Param{container.Arg("name")},
			Fn: func(target any, args []any) (any, error) {
				return target.(*Service).rename(args[0].(string)), nil
			},
		})
}

func loggerFactory(calls *int) container.Binding {
	return container.BindFactory(func() (any, error) {
		*calls++
		return &ConsoleLogger{}, nil
	})
}

func newServiceContainer(calls *int) *container.Container {
	c := container.New(container.Config{
		Aliases: map[string]string{},
		Bindings: map[string]container.Binding{
			"Logger": loggerFactory(calls),
		},
	})
	c.Define(serviceClass())
	return c
}
