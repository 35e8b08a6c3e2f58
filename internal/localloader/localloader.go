// Package localloader implements LocalLoader (spec.md §3, §4.2): the
// aggregate view over one or more resource.Loader backends that backs a
// module's own content.
package localloader

import (
	"io"

	"github.com/aloubyansky/jboss-modules/internal/resource"
)

// LocalLoader wraps one or more resource.Loader backends and presents
// their union as a single symbol/resource source.
type LocalLoader struct {
	backends []resource.Loader
	paths    map[string]struct{}
}

// New builds a LocalLoader over the given backends, in the order given —
// that order is preserved for LoadResources' traversal, though
// LoadSymbol/LoadResource only need the first backend that has an answer.
func New(backends ...resource.Loader) *LocalLoader {
	paths := make(map[string]struct{})
	for _, b := range backends {
		for p := range b.Paths() {
			paths[p] = struct{}{}
		}
	}
	return &LocalLoader{backends: backends, paths: paths}
}

// Paths returns the union of all backing loaders' path sets.
func (l *LocalLoader) Paths() map[string]struct{} {
	return l.paths
}

// LoadSymbolLocal returns the first backend's answer for name, in backend
// order.
func (l *LocalLoader) LoadSymbolLocal(name string) (io.ReadCloser, bool) {
	for _, b := range l.backends {
		if r, ok := b.LoadSymbol(name); ok {
			return r, true
		}
	}
	return nil, false
}

// LoadResourceLocal returns the first backend's answer for path, in
// backend order.
func (l *LocalLoader) LoadResourceLocal(path string) (io.ReadCloser, bool) {
	for _, b := range l.backends {
		if r, ok := b.LoadResource(path); ok {
			return r, true
		}
	}
	return nil, false
}

// LoadResourcesLocal enumerates every backend's hits for path, in backend
// order, rather than stopping at the first.
func (l *LocalLoader) LoadResourcesLocal(path string) []io.ReadCloser {
	var out []io.ReadCloser
	for _, b := range l.backends {
		out = append(out, b.LoadResources(path)...)
	}
	return out
}
