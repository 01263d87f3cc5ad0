package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/km-arc/go-container/framework/container"
)

// Config is the central typed configuration struct.
type Config struct {
	App       AppConfig
	Container ContainerConfig
}

type AppConfig struct {
	Name  string
	Env   string // local | production | testing
	Debug bool
	Port  string
}

// ContainerConfig is the container's configuration record as read from the
// environment and an optional YAML file. Only class bindings can be
// expressed here; factories and instances are bound in code.
type ContainerConfig struct {
	Setter   string            `yaml:"setter"`
	Aliases  map[string]string `yaml:"aliases"`
	Bindings map[string]string `yaml:"bindings"`
	File     string            `yaml:"-"`

	// every other top-level key is a binding
	Flat map[string]string `yaml:",inline"`
}

// Load reads .env (if present) and populates a Config from environment
// variables. When CONTAINER_FILE is set, that YAML file is read first and
// the environment overrides it.
func Load(envFiles ...string) (*Config, error) {
	files := envFiles
	if len(files) == 0 {
		files = []string{".env"}
	}
	// Non-fatal: .env may not exist in production
	_ = godotenv.Load(files...)

	cfg := &Config{
		App: AppConfig{
			Name:  env("APP_NAME", "GoContainer"),
			Env:   env("APP_ENV", "local"),
			Debug: envBool("APP_DEBUG", true),
			Port:  env("APP_PORT", "8000"),
		},
	}

	cc := ContainerConfig{File: os.Getenv("CONTAINER_FILE")}
	if cc.File != "" {
		fromFile, err := LoadFile(cc.File)
		if err != nil {
			return nil, err
		}
		fromFile.File = cc.File
		cc = fromFile
	}

	cc.Setter = env("CONTAINER_SETTER", cc.Setter)
	if cc.Setter == "" {
		cc.Setter = container.DefaultSetter
	}

	aliases, err := parsePairs(os.Getenv("CONTAINER_ALIASES"))
	if err != nil {
		return nil, fmt.Errorf("config: CONTAINER_ALIASES: %w", err)
	}
	for alias, concrete := range aliases {
		if cc.Aliases == nil {
			cc.Aliases = make(map[string]string)
		}
		cc.Aliases[alias] = concrete
	}

	cfg.Container = cc
	return cfg, nil
}

// LoadFile reads a container configuration record from YAML:
//
//	setter: __onConstruct
//	aliases:
//	  LoggerInterface: ConsoleLogger
//	bindings:
//	  Cache: MemoryCache
//	Store: MemoryCache   # top-level keys are bindings too
func LoadFile(path string) (ContainerConfig, error) {
	var cc ContainerConfig
	data, err := os.ReadFile(path)
	if err != nil {
		return cc, fmt.Errorf("config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cc); err != nil {
		return cc, fmt.Errorf("config: parsing %s: %w", path, err)
	}
	for id, concrete := range cc.Flat {
		if cc.Bindings == nil {
			cc.Bindings = make(map[string]string)
		}
		if _, ok := cc.Bindings[id]; !ok {
			cc.Bindings[id] = concrete
		}
	}
	cc.Flat = nil
	return cc, nil
}

// Container converts the record for container.NewBuilder.
func (cc ContainerConfig) Container() container.Config {
	out := container.Config{
		Setter:  cc.Setter,
		Aliases: make(map[string]string, len(cc.Aliases)),
	}
	for alias, concrete := range cc.Aliases {
		out.Aliases[alias] = concrete
	}
	if len(cc.Bindings) > 0 {
		out.Bindings = make(map[string]container.Binding, len(cc.Bindings))
		for id, concrete := range cc.Bindings {
			out.Bindings[id] = container.BindClass(concrete)
		}
	}
	return out
}

// Get returns a raw env value, falling back to defaultVal.
func Get(key, defaultVal string) string {
	return env(key, defaultVal)
}

// GetInt returns an int env value.
func GetInt(key string, defaultVal int) int {
	v := os.Getenv(key)
	if v == "" {
		return defaultVal
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return defaultVal
	}
	return i
}

// GetBool returns a bool env value.
func GetBool(key string, defaultVal bool) bool {
	return envBool(key, defaultVal)
}

// ── helpers ─────────────────────────────────────────────────────────────────

func env(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

// parsePairs reads "A=B,C=D".
func parsePairs(s string) (map[string]string, error) {
	out := make(map[string]string)
	for _, pair := range strings.Split(s, ",") {
		pair = strings.TrimSpace(pair)
		if pair == "" {
			continue
		}
		k, v, ok := strings.Cut(pair, "=")
		k, v = strings.TrimSpace(k), strings.TrimSpace(v)
		if !ok || k == "" || v == "" {
			return nil, fmt.Errorf("malformed pair %q", pair)
		}
		out[k] = v
	}
	return out, nil
}
