package container_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/km-arc/go-container/framework/container"
)

type Mailer struct {
	Logger Logger
	Host   string
	Port   int
}

func NewMailer(l Logger, host string, port int) (*Mailer, error) {
	if host == "" {
		return nil, errors.New("mailer: empty host")
	}
	return &Mailer{Logger: l, Host: host, Port: port}, nil
}

type Newsletter struct {
	Mailer *Mailer
}

func NewNewsletter(m *Mailer) *Newsletter { return &Newsletter{Mailer: m} }

func TestTypeKey(t *testing.T) {
	assert.Equal(t, "github.com/km-arc/go-container/framework/container_test.Mailer", container.TypeKey(&Mailer{}))
	assert.Equal(t, "github.com/km-arc/go-container/framework/container_test.Mailer", container.TypeKey(Mailer{}))
	assert.Equal(t, "github.com/km-arc/go-container/framework/container_test.Logger", container.TypeKey((*Logger)(nil)))
	assert.Equal(t, "string", container.TypeKey(""))
}

func TestFromFunc_DerivesParams(t *testing.T) {
	cl, err := container.FromFunc("Mailer", NewMailer,
		container.ParamNames("logger", "host"),
		container.Default("arg2", 25),
	)
	require.NoError(t, err)

	require.Len(t, cl.Params, 3)
	assert.Equal(t, container.Dep("logger", container.TypeKey((*Logger)(nil))), cl.Params[0])
	assert.Equal(t, container.Arg("host"), cl.Params[1])
	assert.Equal(t, container.Opt("arg2", 25), cl.Params[2])
}

func TestFromFunc_ResolvesGraph(t *testing.T) {
	logger := &ConsoleLogger{}
	c := container.New(container.Config{
		Bindings: map[string]container.Binding{
			container.TypeKey((*Logger)(nil)): container.BindInstance(logger),
		},
	})
	c.Define(
		container.MustFromFunc(container.TypeKey((*Mailer)(nil)), NewMailer, container.ParamNames("logger", "host", "port")),
		container.MustFromFunc("Newsletter", NewNewsletter),
	)

	// Newsletter's Mailer needs a host, which nested resolution cannot supply.
	_, err := c.Load("Newsletter")
	require.ErrorIs(t, err, container.ErrEmptyArgs)

	m, err := c.Load(container.TypeKey((*Mailer)(nil)), container.Named(map[string]any{"host": "smtp.local", "port": 587.0}))
	require.NoError(t, err)
	assert.Equal(t, 587, m.(*Mailer).Port)
	assert.Same(t, logger, m.(*Mailer).Logger)

	n, err := c.Load("Newsletter")
	require.NoError(t, err)
	assert.Same(t, m, n.(*Newsletter).Mailer)
}

func TestFromFunc_ConstructorError(t *testing.T) {
	c := container.New(container.Config{
		Bindings: map[string]container.Binding{
			container.TypeKey((*Logger)(nil)): container.BindInstance(&ConsoleLogger{}),
		},
	})
	c.Define(container.MustFromFunc("Mailer", NewMailer))

	_, err := c.Load("Mailer", container.Positional(nil, "", 25))
	// "" is a supplied value, so the constructor runs and rejects it
	assert.EqualError(t, err, "mailer: empty host")
	assert.False(t, c.Has("Mailer"))
}

func TestFromFunc_RejectsBadConstructors(t *testing.T) {
	tests := []struct {
		name string
		fn   any
	}{
		{"not a function", 42},
		{"no results", func() {}},
		{"second result not error", func() (int, int) { return 0, 0 }},
		{"too many results", func() (int, int, error) { return 0, 0, nil }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := container.FromFunc("Bad", tt.fn)
			assert.Error(t, err)
		})
	}

	assert.Panics(t, func() { container.MustFromFunc("Bad", 42) })
}

func TestFromFunc_InterfaceResultIndexedAfterBuild(t *testing.T) {
	c := container.New(container.Config{})
	c.Define(container.MustFromFunc("Logger", func() Logger { return &ConsoleLogger{} }).
		WithMethod("lines", &container.Method{
			Fn: func(target any, _ []any) (any, error) {
				return len(target.(*ConsoleLogger).lines), nil
			},
		}))

	l, err := c.Load("Logger")
	require.NoError(t, err)
	l.(Logger).Log("one")

	n, err := c.Call(l, "lines")
	require.NoError(t, err)
	assert.Equal(t, 1, n)
}
