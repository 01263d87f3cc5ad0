package container

import (
	"reflect"
	"sync"
)

// registry is the singleton cache: identifier → resolved value.
type registry struct {
	mu      sync.RWMutex
	entries map[string]any
}

func newRegistry() *registry {
	return &registry{entries: make(map[string]any)}
}

func (r *registry) set(id string, value any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.entries[id] = value
}

// lookup reports a cached value. A value cached as nil counts as absent.
func (r *registry) lookup(id string) (any, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.entries[id]
	if !ok || isNil(v) {
		return nil, false
	}
	return v, true
}

func (r *registry) snapshot() map[string]any {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make(map[string]any, len(r.entries))
	for k, v := range r.entries {
		out[k] = v
	}
	return out
}

func isNil(v any) bool {
	if v == nil {
		return true
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Ptr, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return rv.IsNil()
	}
	return false
}

// truthy follows the loose truthiness Has reports: nil, false, numeric zero,
// "", "0" and empty collections are all falsy.
func truthy(v any) bool {
	if isNil(v) {
		return false
	}
	switch x := v.(type) {
	case bool:
		return x
	case string:
		return x != "" && x != "0"
	}
	rv := reflect.ValueOf(v)
	switch rv.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64,
		reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr,
		reflect.Float32, reflect.Float64:
		return !rv.IsZero()
	case reflect.Slice, reflect.Map, reflect.Array:
		return rv.Len() > 0
	}
	return true
}
