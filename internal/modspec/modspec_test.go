package modspec_test

import (
	"testing"

	"github.com/aloubyansky/jboss-modules/internal/modident"
	"github.com/aloubyansky/jboss-modules/internal/modspec"
	"github.com/aloubyansky/jboss-modules/internal/pathfilter"
)

func TestWithDefaultsFillsNilFilters(t *testing.T) {
	spec := modspec.NewModule(modident.New("g", "a"), false, nil, nil).WithDefaults()
	if spec.ImportFilter == nil || !spec.ImportFilter.Match("anything") {
		t.Fatalf("ImportFilter default must accept everything")
	}
	if spec.ExportFilter == nil || spec.ExportFilter.Match("anything") {
		t.Fatalf("ExportFilter default must reject everything")
	}
}

func TestWithDefaultsPreservesExplicitFilters(t *testing.T) {
	explicit := pathfilter.Glob("a/**")
	spec := modspec.NewLocal(nil, explicit, explicit).WithDefaults()
	if spec.ImportFilter != explicit {
		t.Fatalf("an explicit filter must not be replaced")
	}
}

func TestNewNormalizesEveryDependency(t *testing.T) {
	deps := []modspec.DependencySpec{
		modspec.NewModule(modident.New("g", "b"), true, nil, nil),
		modspec.NewLocal(nil, nil, nil),
	}
	spec := modspec.New(modident.New("g", "a"), "", nil, deps)
	for i, d := range spec.Dependencies {
		if d.ImportFilter == nil || d.ExportFilter == nil {
			t.Fatalf("dependency %d was not normalized", i)
		}
	}
}

func TestExactlyOneOfLocalOrModule(t *testing.T) {
	local := modspec.NewLocal(nil, nil, nil)
	if local.Local == nil || local.Module != nil {
		t.Fatalf("NewLocal must set Local and leave Module nil")
	}
	module := modspec.NewModule(modident.New("g", "a"), false, nil, nil)
	if module.Module == nil || module.Local != nil {
		t.Fatalf("NewModule must set Module and leave Local nil")
	}
}
