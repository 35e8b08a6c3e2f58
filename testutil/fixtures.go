// Package testutil provides fixtures shared by the runtime's test
// suites: an in-memory resource.Loader and small builders for assembling
// modspec.Spec values without a descriptor file on disk.
package testutil

import (
	"bytes"
	"io"
	"strings"

	"github.com/aloubyansky/jboss-modules/internal/localloader"
	"github.com/aloubyansky/jboss-modules/internal/modident"
	"github.com/aloubyansky/jboss-modules/internal/modspec"
	"github.com/aloubyansky/jboss-modules/internal/pathfilter"
	"github.com/aloubyansky/jboss-modules/internal/resource"
)

// MemLoader is an in-memory resource.Loader keyed by resource path.
// Symbols are looked up by converting dots to slashes, same convention
// as the directory-backed loader.
type MemLoader struct {
	files map[string][]byte
	paths map[string]struct{}
}

// NewMemLoader builds a MemLoader from a path -> content map. Every
// ancestor directory of every file path is added to Paths(), mirroring
// how DirLoader derives its path set from a walked tree.
func NewMemLoader(files map[string]string) *MemLoader {
	l := &MemLoader{
		files: make(map[string][]byte, len(files)),
		paths: make(map[string]struct{}),
	}
	l.paths[""] = struct{}{}
	for p, content := range files {
		l.files[p] = []byte(content)
		l.addAncestors(p)
	}
	return l
}

func (l *MemLoader) addAncestors(p string) {
	for {
		idx := strings.LastIndex(p, "/")
		if idx < 0 {
			return
		}
		p = p[:idx]
		if _, ok := l.paths[p]; ok {
			return
		}
		l.paths[p] = struct{}{}
	}
}

func (l *MemLoader) Paths() map[string]struct{} { return l.paths }

func (l *MemLoader) LoadSymbol(name string) (io.ReadCloser, bool) {
	return l.LoadResource(strings.ReplaceAll(name, ".", "/"))
}

func (l *MemLoader) LoadResource(path string) (io.ReadCloser, bool) {
	content, ok := l.files[path]
	if !ok {
		return nil, false
	}
	return io.NopCloser(bytes.NewReader(content)), true
}

func (l *MemLoader) LoadResources(path string) []io.ReadCloser {
	if r, ok := l.LoadResource(path); ok {
		return []io.ReadCloser{r}
	}
	return nil
}

var _ resource.Loader = (*MemLoader)(nil)

// LocalOf wraps a plain path->content map in a LocalLoader backed by a
// single MemLoader, for tests that don't care about multi-backend
// aggregation.
func LocalOf(files map[string]string) *localloader.LocalLoader {
	return localloader.New(NewMemLoader(files))
}

// SpecBuilder assembles a modspec.Spec fluently for tests.
type SpecBuilder struct {
	id    modident.ID
	main  string
	roots *localloader.LocalLoader
	deps  []modspec.DependencySpec
}

// NewSpec starts a SpecBuilder for the given identifier over roots
// (which may be nil for a module with no local content of its own).
func NewSpec(id modident.ID, roots *localloader.LocalLoader) *SpecBuilder {
	return &SpecBuilder{id: id, roots: roots}
}

// WithMain sets the module's main symbol.
func (b *SpecBuilder) WithMain(symbol string) *SpecBuilder {
	b.main = symbol
	return b
}

// DependsOnModule appends a module dependency with the given filters
// (nil filters take modspec.WithDefaults' defaults).
func (b *SpecBuilder) DependsOnModule(target modident.ID, optional bool, importFilter, exportFilter pathfilter.Filter) *SpecBuilder {
	b.deps = append(b.deps, modspec.NewModule(target, optional, importFilter, exportFilter))
	return b
}

// DependsOnLocal appends a local dependency (nil loader means "the
// owning module's own roots").
func (b *SpecBuilder) DependsOnLocal(loader *localloader.LocalLoader, importFilter, exportFilter pathfilter.Filter) *SpecBuilder {
	b.deps = append(b.deps, modspec.NewLocal(loader, importFilter, exportFilter))
	return b
}

// Build returns the assembled Spec.
func (b *SpecBuilder) Build() *modspec.Spec {
	return modspec.New(b.id, b.main, b.roots, b.deps)
}

// StaticFinder builds a registry.FindFunc-shaped lookup (modident.ID ->
// *modspec.Spec, bool, error) backed by a fixed set of specs, for
// registry tests that don't need a real descriptor source.
func StaticFinder(specs ...*modspec.Spec) func(modident.ID) (*modspec.Spec, bool, error) {
	byID := make(map[modident.ID]*modspec.Spec, len(specs))
	for _, s := range specs {
		byID[s.Identifier] = s
	}
	return func(id modident.ID) (*modspec.Spec, bool, error) {
		s, ok := byID[id]
		return s, ok, nil
	}
}
