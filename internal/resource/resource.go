// Package resource implements the ResourceLoader contract (spec.md §4.2)
// and the two standard backends spec.md §6 describes at the interface
// level: a directory-tree loader and a zip-archive loader. Both backends
// expose ResourceLoader only — nothing upstream of this package knows or
// cares which one is behind a given dependency.
package resource

import "io"

// Loader is an opaque source of content. Implementations must be pure
// with respect to their construction arguments (spec.md §4.2): the same
// backend, asked for the same path twice, returns equivalent bytes absent
// an explicit refresh.
type Loader interface {
	// Paths returns the set of directory-like keys this loader answers
	// for — used at link time to precompute which paths a module "owns."
	Paths() map[string]struct{}

	// LoadSymbol returns the reader for a symbol by canonical name, or
	// nil+false if this loader does not provide it.
	LoadSymbol(name string) (io.ReadCloser, bool)

	// LoadResource opens the single resource at a full path, or nil+false
	// if this loader does not provide it.
	LoadResource(path string) (io.ReadCloser, bool)

	// LoadResources enumerates every resource this loader offers at path
	// (a backend may hold more than one entry under the same path).
	LoadResources(path string) []io.ReadCloser
}
