package app_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/km-arc/go-container/framework/app"
	"github.com/km-arc/go-container/framework/config"
	"github.com/km-arc/go-container/framework/container"
)

type Mailer struct {
	Logger *zap.Logger
	From   string
	booted bool
}

func (m *Mailer) Boot() { m.booted = true }

type mailProvider struct {
	container.BaseProvider
}

func (mailProvider) Register(b *container.Builder) {
	b.Define(container.MustFromFunc("Mailer", func(l *zap.Logger, from string) *Mailer {
		return &Mailer{Logger: l, From: from}
	}, container.ParamNames("logger", "from")))
	b.Alias("Mail", "Mailer")
}

func newApp(t *testing.T, extra ...container.ServiceProvider) *app.Application {
	t.Helper()
	for _, k := range []string{"APP_NAME", "APP_PORT", "CONTAINER_ALIASES", "CONTAINER_FILE"} {
		t.Setenv(k, "")
	}
	t.Setenv("APP_ENV", "testing")
	t.Setenv("APP_DEBUG", "false")
	t.Setenv("CONTAINER_SETTER", "Boot")

	a, err := app.New([]string{filepath.Join(t.TempDir(), "missing.env")}, extra...)
	require.NoError(t, err)
	return a
}

func TestNew_BindsFrameworkServices(t *testing.T) {
	a := newApp(t)

	assert.True(t, a.IsTesting())
	assert.False(t, a.IsDebug())
	assert.Equal(t, "Boot", a.Setter())

	cfg, err := container.Resolve[*config.Config](a.Container, "config")
	require.NoError(t, err)
	assert.Same(t, a.Config, cfg)

	logger, err := container.Resolve[*zap.Logger](a.Container, "logger")
	require.NoError(t, err)
	assert.Same(t, a.Logger(), logger)

	assert.NotNil(t, a.Router())
	assert.True(t, a.Has("router"))
}

func TestNew_UserProviderWithHook(t *testing.T) {
	a := newApp(t, mailProvider{})

	m, err := container.Resolve[*Mailer](a.Container, "Mail", container.Named(map[string]any{"from": "ops@example.com"}))
	require.NoError(t, err)
	assert.Equal(t, "ops@example.com", m.From)
	assert.Same(t, a.Logger(), m.Logger)
	assert.True(t, m.booted)
}

func TestNew_InvalidConfiguration(t *testing.T) {
	t.Setenv("CONTAINER_FILE", "")
	t.Setenv("CONTAINER_ALIASES", "")
	t.Setenv("APP_DEBUG", "false")
	t.Setenv("CONTAINER_SETTER", "not valid")

	_, err := app.New([]string{filepath.Join(t.TempDir(), "missing.env")})
	assert.ErrorContains(t, err, "The setter must be a valid identifier.")
}

func TestRouter_ServesDiagnostics(t *testing.T) {
	a := newApp(t, mailProvider{})

	req := httptest.NewRequest(http.MethodPost, "/_container/Mailer", strings.NewReader(`{"from":"x@example.com"}`))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	a.Router().ServeHTTP(rr, req)
	require.Equal(t, http.StatusCreated, rr.Code, rr.Body.String())

	rr = httptest.NewRecorder()
	a.Router().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/_container", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	var out struct {
		Data []struct {
			ID   string `json:"id"`
			Type string `json:"type"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))

	types := map[string]string{}
	for _, e := range out.Data {
		types[e.ID] = e.Type
	}
	assert.Equal(t, "*app_test.Mailer", types["Mailer"])
	assert.Equal(t, "*routing.Router", types["router"])
	assert.Equal(t, "*zap.Logger", types[container.TypeKey((*zap.Logger)(nil))])
}
