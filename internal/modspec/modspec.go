// Package modspec implements ModuleSpec and DependencySpec (spec.md §3):
// the immutable, builder-side description of a module and its declared
// dependencies, before they are materialized into a live module graph.
//
// Mirrors AILANG's ast.ImportDecl / LoadedModule.Imports (declared
// dependency list, author order preserved) and iface.Iface (typed export
// surface), generalized from "imports by path" to "dependency specs with
// import/export filters."
package modspec

import (
	"github.com/aloubyansky/jboss-modules/internal/localloader"
	"github.com/aloubyansky/jboss-modules/internal/modident"
	"github.com/aloubyansky/jboss-modules/internal/pathfilter"
)

// DependencySpec is a builder-side description of one dependency edge.
// Exactly one of Local or Module is non-nil.
type DependencySpec struct {
	Local  *LocalDependencySpec
	Module *ModuleDependencySpec

	// ImportFilter and ExportFilter are never nil once WithDefaults
	// normalizes a spec (spec.md §3 invariant 4): ImportFilter defaults to AcceptAll,
	// ExportFilter defaults to RejectAll.
	ImportFilter pathfilter.Filter
	ExportFilter pathfilter.Filter
}

// LocalDependencySpec depends on "this module's own resources" — either
// an externally supplied LocalLoader, or (when Loader is nil) the owning
// module's own local path set as computed at link time (spec.md §9 open
// question 1).
type LocalDependencySpec struct {
	Loader *localloader.LocalLoader // nil means "use the owning module's own loader"
}

// ModuleDependencySpec depends on another module. It carries no loader
// field: the target is always resolved through the owning module's own
// registry.
type ModuleDependencySpec struct {
	Identifier modident.ID
	Optional   bool
}

// NewLocal builds a LocalDependencySpec-backed DependencySpec with the
// given filters (non-nil filters are required by the caller; use
// WithDefaults to normalize nil filters to spec.md's defaults).
func NewLocal(loader *localloader.LocalLoader, importFilter, exportFilter pathfilter.Filter) DependencySpec {
	return DependencySpec{
		Local:        &LocalDependencySpec{Loader: loader},
		ImportFilter: importFilter,
		ExportFilter: exportFilter,
	}
}

// NewModule builds a ModuleDependencySpec-backed DependencySpec.
func NewModule(id modident.ID, optional bool, importFilter, exportFilter pathfilter.Filter) DependencySpec {
	return DependencySpec{
		Module:       &ModuleDependencySpec{Identifier: id, Optional: optional},
		ImportFilter: importFilter,
		ExportFilter: exportFilter,
	}
}

// WithDefaults returns a copy of d with nil filters replaced by spec.md
// §3's defaults: AcceptAll for import, RejectAll for export. NewLocal and
// NewModule keep the filters they are given (nil included); every
// DependencySpec stored in a Spec built by New has gone through
// WithDefaults, preserving invariant 4 ("every DependencySpec carries non-null import
// and export filters").
func (d DependencySpec) WithDefaults() DependencySpec {
	if d.ImportFilter == nil {
		d.ImportFilter = pathfilter.AcceptAll()
	}
	if d.ExportFilter == nil {
		d.ExportFilter = pathfilter.RejectAll()
	}
	return d
}

// Spec is the immutable description of a module: identifier, optional
// main symbol, resource roots (as LocalLoader backends — built by
// whatever resource.Loader construction the caller used), and dependency
// specs in author order (order is semantically significant per spec.md
// §3 invariant 5).
type Spec struct {
	Identifier    modident.ID
	MainSymbol    string // empty means "no main symbol"
	ResourceRoots *localloader.LocalLoader
	Dependencies  []DependencySpec
}

// New builds a Spec, normalizing every dependency's filters via
// WithDefaults.
func New(id modident.ID, mainSymbol string, roots *localloader.LocalLoader, deps []DependencySpec) *Spec {
	normalized := make([]DependencySpec, len(deps))
	for i, d := range deps {
		normalized[i] = d.WithDefaults()
	}
	return &Spec{
		Identifier:    id,
		MainSymbol:    mainSymbol,
		ResourceRoots: roots,
		Dependencies:  normalized,
	}
}
