package modgraph

import (
	"io"

	"github.com/aloubyansky/jboss-modules/internal/pathutil"
)

// Namespace answers a module's symbol and resource queries, walking its
// dependency graph (spec.md §4.5). Every exported method starts a fresh
// visited set; the set exists only to stop recursion within one logical
// query, never across independent queries or goroutines (spec.md §5: "a
// per-call visited set ... never a shared structure").
type Namespace struct {
	module *Module
}

// visitSet is the per-call set of modules already visited in the current
// resolution, used to break cycles (spec.md §4.4, §4.5, §5).
type visitSet map[*Module]bool

// LoadSymbol resolves name by walking this module's dependencies in
// order (spec.md §4.5 loadSymbol); the module's own local content is
// consulted at the position of its local dependency in that list.
func (n *Namespace) LoadSymbol(name string) (io.ReadCloser, bool, error) {
	return n.loadSymbol(name, make(visitSet))
}

func (n *Namespace) loadSymbol(name string, vs visitSet) (io.ReadCloser, bool, error) {
	if vs[n.module] {
		return nil, false, nil
	}
	vs[n.module] = true

	p := pathutil.SymbolPath(name)

	deps, err := n.module.Dependencies()
	if err != nil {
		return nil, false, err
	}

	for _, dep := range deps {
		if dep.Silent || !dep.ImportFilter.Match(p) {
			continue
		}
		if dep.IsLocal() {
			if dep.Local == nil {
				continue
			}
			if r, ok := dep.Local.LoadSymbolLocal(name); ok {
				return r, true, nil
			}
			continue
		}
		if vs[dep.Target] {
			continue
		}
		r, ok, err := dep.Target.Namespace().loadExportedSymbol(name, vs)
		if err != nil {
			return nil, false, err
		}
		if ok {
			return r, true, nil
		}
	}
	return nil, false, nil
}

// LoadExportedSymbol resolves name through this module's exportedPaths
// only — "what would a consumer of this module see" (spec.md §4.5).
func (n *Namespace) LoadExportedSymbol(name string) (io.ReadCloser, bool, error) {
	return n.loadExportedSymbol(name, make(visitSet))
}

func (n *Namespace) loadExportedSymbol(name string, vs visitSet) (io.ReadCloser, bool, error) {
	if vs[n.module] {
		return nil, false, nil
	}
	vs[n.module] = true

	if err := n.module.LinkExportsIfNeeded(nil); err != nil {
		return nil, false, err
	}

	p := pathutil.SymbolPath(name)
	candidates := n.module.ExportedPaths()[p]

	for _, dep := range candidates {
		if !dep.ExportFilter.Match(p) {
			continue
		}
		if dep.IsLocal() {
			if dep.Local == nil {
				continue
			}
			if r, ok := dep.Local.LoadSymbolLocal(name); ok {
				return r, true, nil
			}
			continue
		}
		if vs[dep.Target] {
			continue
		}
		r, ok, err := dep.Target.Namespace().loadExportedSymbol(name, vs)
		if err != nil {
			return nil, false, err
		}
		if ok {
			return r, true, nil
		}
	}
	return nil, false, nil
}

// GetResource resolves path by walking this module's dependencies in
// order, local ones included — the resource-query mirror of LoadSymbol.
func (n *Namespace) GetResource(path string) (io.ReadCloser, bool, error) {
	return n.getResource(path, make(visitSet))
}

func (n *Namespace) getResource(path string, vs visitSet) (io.ReadCloser, bool, error) {
	if vs[n.module] {
		return nil, false, nil
	}
	vs[n.module] = true

	dir := pathutil.ResourceDir(path)

	deps, err := n.module.Dependencies()
	if err != nil {
		return nil, false, err
	}

	for _, dep := range deps {
		if dep.Silent || !dep.ImportFilter.Match(dir) {
			continue
		}
		if dep.IsLocal() {
			if dep.Local == nil {
				continue
			}
			if r, ok := dep.Local.LoadResourceLocal(path); ok {
				return r, true, nil
			}
			continue
		}
		if vs[dep.Target] {
			continue
		}
		r, ok, err := dep.Target.Namespace().getExportedResource(path, vs)
		if err != nil {
			return nil, false, err
		}
		if ok {
			return r, true, nil
		}
	}
	return nil, false, nil
}

// GetExportedResource resolves path through this module's exportedPaths
// only.
func (n *Namespace) GetExportedResource(path string) (io.ReadCloser, bool, error) {
	return n.getExportedResource(path, make(visitSet))
}

func (n *Namespace) getExportedResource(path string, vs visitSet) (io.ReadCloser, bool, error) {
	if vs[n.module] {
		return nil, false, nil
	}
	vs[n.module] = true

	if err := n.module.LinkExportsIfNeeded(nil); err != nil {
		return nil, false, err
	}

	dir := pathutil.ResourceDir(path)
	candidates := n.module.ExportedPaths()[dir]
	for _, dep := range candidates {
		if !dep.ExportFilter.Match(dir) {
			continue
		}
		if dep.IsLocal() {
			if dep.Local == nil {
				continue
			}
			if r, ok := dep.Local.LoadResourceLocal(path); ok {
				return r, true, nil
			}
			continue
		}
		if vs[dep.Target] {
			continue
		}
		r, ok, err := dep.Target.Namespace().getExportedResource(path, vs)
		if err != nil {
			return nil, false, err
		}
		if ok {
			return r, true, nil
		}
	}
	return nil, false, nil
}

// GetResources enumerates every candidate dependency's hits for path
// (local content plus imports), preserving traversal order, rather than
// stopping at the first hit (spec.md §4.5).
func (n *Namespace) GetResources(path string) ([]io.ReadCloser, error) {
	return n.getResources(path, make(visitSet))
}

func (n *Namespace) getResources(path string, vs visitSet) ([]io.ReadCloser, error) {
	if vs[n.module] {
		return nil, nil
	}
	vs[n.module] = true

	dir := pathutil.ResourceDir(path)

	deps, err := n.module.Dependencies()
	if err != nil {
		return nil, err
	}

	var out []io.ReadCloser
	for _, dep := range deps {
		if dep.Silent || !dep.ImportFilter.Match(dir) {
			continue
		}
		if dep.IsLocal() {
			if dep.Local == nil {
				continue
			}
			out = append(out, dep.Local.LoadResourcesLocal(path)...)
			continue
		}
		if vs[dep.Target] {
			continue
		}
		rs, err := dep.Target.Namespace().getExportedResources(path, vs)
		if err != nil {
			return nil, err
		}
		out = append(out, rs...)
	}
	return out, nil
}

// GetExportedResources enumerates every exported candidate's hits for
// path.
func (n *Namespace) GetExportedResources(path string) ([]io.ReadCloser, error) {
	return n.getExportedResources(path, make(visitSet))
}

func (n *Namespace) getExportedResources(path string, vs visitSet) ([]io.ReadCloser, error) {
	if vs[n.module] {
		return nil, nil
	}
	vs[n.module] = true

	if err := n.module.LinkExportsIfNeeded(nil); err != nil {
		return nil, err
	}

	dir := pathutil.ResourceDir(path)
	var out []io.ReadCloser
	for _, dep := range n.module.ExportedPaths()[dir] {
		if !dep.ExportFilter.Match(dir) {
			continue
		}
		if dep.IsLocal() {
			if dep.Local == nil {
				continue
			}
			out = append(out, dep.Local.LoadResourcesLocal(path)...)
			continue
		}
		if vs[dep.Target] {
			continue
		}
		rs, err := dep.Target.Namespace().getExportedResources(path, vs)
		if err != nil {
			return nil, err
		}
		out = append(out, rs...)
	}
	return out, nil
}
