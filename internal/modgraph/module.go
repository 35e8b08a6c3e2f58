// Package modgraph implements Module, Dependency, export linking
// (spec.md §4.4), and the per-module Namespace that resolves symbol and
// resource queries across the dependency graph (spec.md §4.5).
//
// Module and Namespace live in one package because resolution is
// mutually recursive: a Namespace query walks this module's dependencies
// and, for a module dependency, asks the target's Namespace in turn;
// export linking does the analogous walk at link time. Splitting them
// across packages would just add an import cycle without adding
// encapsulation.
package modgraph

import (
	"sync"

	"github.com/aloubyansky/jboss-modules/internal/errlist"
	"github.com/aloubyansky/jboss-modules/internal/localloader"
	"github.com/aloubyansky/jboss-modules/internal/modident"
	"github.com/aloubyansky/jboss-modules/internal/modspec"
	"github.com/aloubyansky/jboss-modules/internal/pathfilter"
)

// Registry is the narrow view of the owning ModuleLoader that Module
// needs during dependency materialization and export linking: "get me
// the (possibly not-yet-linked) module for this identifier." Defined
// here rather than imported from package registry so modgraph never
// imports registry — registry imports modgraph instead, and its
// concrete Registry type satisfies this interface structurally.
type Registry interface {
	// Preload returns the module for id, preloading it if necessary.
	// found is false iff no error occurred but no module exists for id.
	Preload(id modident.ID) (mod *Module, found bool, err error)
}

// Dependency is a materialized DependencySpec (spec.md §3): a resolved
// target (either a LocalLoader or a linked Module) plus the edge's two
// filters. A Dependency with Silent set to true is the materialization
// of an optional ModuleDependencySpec whose target failed to load — it
// carries no target and never satisfies any query (spec.md §3, §7).
type Dependency struct {
	Local        *localloader.LocalLoader
	Target       *Module
	ImportFilter pathfilter.Filter
	ExportFilter pathfilter.Filter
	Silent       bool
}

// IsLocal reports whether this dependency resolves to local content
// rather than another module.
func (d *Dependency) IsLocal() bool {
	return d.Local != nil
}

// Module is the mutable state machine described in spec.md §3/§4.4: one
// ModuleSpec, linked lazily and exactly once, plus the derived path set
// and exportedPaths map that back Namespace resolution.
type Module struct {
	Spec     *modspec.Spec
	registry Registry

	depsOnce sync.Once
	depsErr  error
	deps     []*Dependency

	linkMu        sync.Mutex
	linked        bool
	exportedPaths map[string][]*Dependency
}

// New constructs a Module for spec, owned by registry (used to resolve
// module dependencies during materialization and linking).
func New(spec *modspec.Spec, registry Registry) *Module {
	return &Module{Spec: spec, registry: registry}
}

// Identifier returns the module's identity.
func (m *Module) Identifier() modident.ID {
	return m.Spec.Identifier
}

// MainSymbol returns the module's declared entry symbol, or "" if none.
func (m *Module) MainSymbol() string {
	return m.Spec.MainSymbol
}

// LocalLoader returns the module's own resource-root loader — the target
// a LocalDependencySpec with a nil Loader field falls back to (spec.md §9
// open question 1).
func (m *Module) LocalLoader() *localloader.LocalLoader {
	return m.Spec.ResourceRoots
}

// Dependencies materializes m.Spec.Dependencies into a []*Dependency
// exactly once (spec.md §3 invariant 2), in author order (invariant 5).
// Materializing a ModuleDependencySpec may recursively call
// m.registry.Preload for its target.
func (m *Module) Dependencies() ([]*Dependency, error) {
	m.depsOnce.Do(func() {
		m.deps, m.depsErr = m.materializeDependencies()
	})
	return m.deps, m.depsErr
}

func (m *Module) materializeDependencies() ([]*Dependency, error) {
	deps := make([]*Dependency, 0, len(m.Spec.Dependencies))
	for _, spec := range m.Spec.Dependencies {
		dep, err := m.materializeOne(spec)
		if err != nil {
			return nil, err
		}
		deps = append(deps, dep)
	}
	return deps, nil
}

func (m *Module) materializeOne(spec modspec.DependencySpec) (*Dependency, error) {
	base := &Dependency{ImportFilter: spec.ImportFilter, ExportFilter: spec.ExportFilter}

	if spec.Local != nil {
		loader := spec.Local.Loader
		if loader == nil {
			loader = m.LocalLoader()
		}
		base.Local = loader
		return base, nil
	}

	target, found, err := m.registry.Preload(spec.Module.Identifier)
	if err != nil {
		return nil, err
	}
	if !found {
		if spec.Module.Optional {
			base.Silent = true
			return base, nil
		}
		return nil, errlist.MissingDependency(m.Identifier().String(), spec.Module.Identifier.String(), nil)
	}
	base.Target = target
	return base, nil
}

// Paths returns the union of the module's own local resource-loader path
// sets.
func (m *Module) Paths() map[string]struct{} {
	if m.LocalLoader() == nil {
		return nil
	}
	return m.LocalLoader().Paths()
}

// LinkExportsIfNeeded runs export linking (spec.md §4.4) if it has not
// already run, using visited to guard against cycles. Idempotent
// (spec.md §3 invariant 6, §8 round-trip property): a second call is a
// no-op that observes the same exportedPaths.
func (m *Module) LinkExportsIfNeeded(visited map[*Module]bool) error {
	m.linkMu.Lock()
	if m.linked {
		m.linkMu.Unlock()
		return nil
	}
	if visited == nil {
		visited = make(map[*Module]bool)
	}
	if visited[m] {
		// Already being linked further up this call stack: any path
		// reachable through this cycle is reachable via some acyclic
		// prefix already being computed there, so stop here.
		m.linkMu.Unlock()
		return nil
	}
	visited[m] = true
	m.linkMu.Unlock()

	deps, err := m.Dependencies()
	if err != nil {
		return err
	}

	result := make(map[string][]*Dependency)
	for _, dep := range deps {
		if dep.Silent {
			continue
		}
		if dep.IsLocal() {
			if dep.Local == nil {
				continue
			}
			for path := range dep.Local.Paths() {
				if dep.ExportFilter.Match(path) {
					result[path] = append(result[path], dep)
				}
			}
			continue
		}

		target := dep.Target
		if err := target.LinkExportsIfNeeded(visited); err != nil {
			return err
		}
		for path, depList := range target.exportedPathsSnapshot() {
			if !dep.ImportFilter.Match(path) || !dep.ExportFilter.Match(path) {
				continue
			}
			result[path] = append(result[path], depList...)
		}
	}

	m.linkMu.Lock()
	m.exportedPaths = result
	m.linked = true
	m.linkMu.Unlock()
	return nil
}

// exportedPathsSnapshot returns the module's exportedPaths map. Callers
// must have already ensured linking completed (directly or via
// LinkExportsIfNeeded higher up the same call).
func (m *Module) exportedPathsSnapshot() map[string][]*Dependency {
	m.linkMu.Lock()
	defer m.linkMu.Unlock()
	return m.exportedPaths
}

// IsLinked reports whether export linking has completed.
func (m *Module) IsLinked() bool {
	m.linkMu.Lock()
	defer m.linkMu.Unlock()
	return m.linked
}

// Relink resets the module to UNLINKED and immediately relinks it,
// per spec.md §4.5's administrative state-machine transition.
func (m *Module) Relink() error {
	m.linkMu.Lock()
	m.linked = false
	m.exportedPaths = nil
	m.linkMu.Unlock()
	return m.LinkExportsIfNeeded(nil)
}

// ExportedPaths exposes the linked exportedPaths map for inspection
// (diagnostics, tests, the CLI's graph subcommand). It does not trigger
// linking; call LinkExportsIfNeeded first.
func (m *Module) ExportedPaths() map[string][]*Dependency {
	return m.exportedPathsSnapshot()
}

// Namespace returns the per-module query handle (spec.md component 8).
func (m *Module) Namespace() *Namespace {
	return &Namespace{module: m}
}

// RefreshResourceLoaders replaces the module's resource-root loader and
// clears the materialized dependencies and cached link state, so the new
// roots are visible to subsequent queries once relinked: the next
// Dependencies or LinkExportsIfNeeded call (Relink, for instance)
// re-materializes every edge, and a local dependency with a nil Loader
// then captures the new roots. A local dependency with an explicit Loader
// keeps that loader.
//
// Administrative — the registry gates this behind the redefine
// capability (spec.md §4.3) before calling it. The same concurrency
// caveat as SetDependencies applies.
func (m *Module) RefreshResourceLoaders(roots *localloader.LocalLoader) {
	m.linkMu.Lock()
	m.Spec.ResourceRoots = roots
	m.depsOnce = sync.Once{}
	m.deps = nil
	m.depsErr = nil
	m.linked = false
	m.exportedPaths = nil
	m.linkMu.Unlock()
}

// SetDependencies replaces the module's dependency specs and clears
// every downstream cached state derived from the old ones (materialized
// dependencies, link state). The next call to Dependencies or
// LinkExportsIfNeeded recomputes from scratch.
//
// Administrative — the registry gates this behind the redefine
// capability before calling it. Not safe to call concurrently with an
// in-flight Dependencies()/LinkExportsIfNeeded() call on the same
// Module; the host is expected to serialize administrative mutations
// against query traffic for a given module.
func (m *Module) SetDependencies(deps []modspec.DependencySpec) {
	m.linkMu.Lock()
	m.Spec.Dependencies = deps
	m.depsOnce = sync.Once{}
	m.deps = nil
	m.depsErr = nil
	m.linked = false
	m.exportedPaths = nil
	m.linkMu.Unlock()
}
