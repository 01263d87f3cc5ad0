// Package diagnostics exposes a container over HTTP for inspection.
//
//	GET  /_container        every cached identifier and its Go type;
//	                        ?prefix= keeps identifiers starting with it
//	GET  /_container/{id}   one cached entry; 404 when absent
//	POST /_container/{id}   Load(id) with the JSON body as named arguments;
//	                        201 when the load built something, 200 otherwise
//
// Identifiers may contain slashes (package-qualified type keys), so {id} is
// the remainder of the path.
package diagnostics

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"sort"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/km-arc/go-container/framework/container"
	gohttp "github.com/km-arc/go-container/framework/http"
	"github.com/km-arc/go-container/framework/routing"
	"github.com/km-arc/go-container/framework/validation"
)

// Prefix is the default mount point.
const Prefix = "/_container"

// Entry describes one cached identifier.
type Entry struct {
	ID     string `json:"id"`
	Type   string `json:"type"`
	Truthy bool   `json:"truthy"`
}

// Handler serves the inspection endpoints for one container.
type Handler struct {
	c      *container.Container
	logger *zap.Logger

	// Load and Call are not safe for concurrent use
	mu sync.Mutex
}

// New creates a Handler. A nil logger discards output.
func New(c *container.Container, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{c: c, logger: logger.Named("diagnostics")}
}

// Mount registers the endpoints on r under prefix.
func (h *Handler) Mount(r *routing.Router, prefix string) {
	r.Group(func(g *routing.Router) {
		g.Middleware(NoStore)
		g.Prefix(prefix, func(sub *routing.Router) {
			sub.Get("/", h.List)
			sub.Get("/*", h.Show)
			sub.Post("/*", h.Load)
		})
	})
}

// NoStore marks responses as uncacheable; the cache they describe changes
// with every load.
func NoStore(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		next.ServeHTTP(w, r)
	})
}

// List responds with {"data": [Entry...]} sorted by identifier.
func (h *Handler) List(w http.ResponseWriter, r *http.Request) {
	prefix := gohttp.NewRequest(r).Query("prefix")
	dump := h.c.Dump()

	entries := make([]Entry, 0, len(dump))
	for id, v := range dump {
		if !strings.HasPrefix(id, prefix) {
			continue
		}
		entries = append(entries, entry(h.c, id, v))
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].ID < entries[j].ID })

	gohttp.NewResponse(w).Success(entries)
}

// Show responds with the Entry for one identifier.
func (h *Handler) Show(w http.ResponseWriter, r *http.Request) {
	res := gohttp.NewResponse(w)

	id, err := identifier(r)
	if err != nil {
		res.Error(http.StatusBadRequest, err.Error())
		return
	}
	v, err := h.c.Get(id)
	if err != nil {
		res.NotFound(err.Error())
		return
	}
	res.Success(entry(h.c, id, v))
}

// Load resolves the identifier, passing the JSON object body as named
// arguments. EmptyArgs maps to 422, NotFound to 404.
func (h *Handler) Load(w http.ResponseWriter, r *http.Request) {
	req := gohttp.NewRequest(r)
	res := gohttp.NewResponse(w)

	id, err := identifier(r)
	if err != nil {
		res.Error(http.StatusBadRequest, err.Error())
		return
	}

	var named map[string]any
	if err := req.Bind(&named); err != nil && !errors.Is(err, gohttp.ErrEmptyBody) {
		res.Error(http.StatusBadRequest, err.Error())
		return
	}

	v, built, err := h.load(id, container.Named(named))

	var emptyArgs *container.EmptyArgsError
	switch {
	case errors.As(err, &emptyArgs):
		errs := &validation.Errors{}
		errs.Add(emptyArgs.Param, err.Error())
		res.ValidationError(errs)
	case errors.Is(err, container.ErrNotFound):
		res.NotFound(err.Error())
	case err != nil:
		h.logger.Error("load failed", zap.String("id", id), zap.Error(err))
		res.ServerError(err.Error())
	default:
		h.logger.Debug("loaded",
			zap.String("method", req.Method()),
			zap.String("path", req.Path()),
			zap.String("type", typeName(v)),
			zap.Bool("built", built),
		)
		if built {
			res.Created(entry(h.c, id, v))
			return
		}
		res.Success(entry(h.c, id, v))
	}
}

// load serializes Load and turns a constructor panic into an error. built
// reports whether the cache grew.
func (h *Handler) load(id string, args container.Args) (v any, built bool, err error) {
	h.mu.Lock()
	defer h.mu.Unlock()
	defer func() {
		if p := recover(); p != nil {
			v, built, err = nil, false, fmt.Errorf("diagnostics: loading [%s] panicked: %v", id, p)
		}
	}()
	before := len(h.c.Dump())
	v, err = h.c.Load(id, args)
	return v, len(h.c.Dump()) > before, err
}

func identifier(r *http.Request) (string, error) {
	raw := routing.Param(r, "*")
	id, err := url.PathUnescape(raw)
	if err != nil {
		return "", fmt.Errorf("malformed identifier %q", raw)
	}
	return id, nil
}

func entry(c *container.Container, id string, v any) Entry {
	return Entry{ID: id, Type: typeName(v), Truthy: c.Has(id)}
}

func typeName(v any) string { return fmt.Sprintf("%T", v) }
