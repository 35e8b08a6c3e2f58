package modgraph_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/aloubyansky/jboss-modules/internal/modident"
	"github.com/aloubyansky/jboss-modules/internal/pathfilter"
	"github.com/aloubyansky/jboss-modules/internal/registry"
	"github.com/aloubyansky/jboss-modules/testutil"
)

func id(name string) modident.ID { return modident.New("org.example", name) }

func TestDependenciesMaterializeOnce(t *testing.T) {
	specA := testutil.NewSpec(id("a"), nil).
		DependsOnModule(id("b"), false, nil, nil).
		Build()
	specB := testutil.NewSpec(id("b"), nil).Build()

	r := registry.New(testutil.StaticFinder(specA, specB), true, nil)
	modA, found, err := r.Preload(id("a"))
	require.NoError(t, err)
	require.True(t, found)

	deps1, err := modA.Dependencies()
	require.NoError(t, err)
	deps2, err := modA.Dependencies()
	require.NoError(t, err)
	require.Same(t, deps1[0], deps2[0], "Dependencies must not re-materialize on a second call")
}

func TestOptionalMissingDependencyIsSilent(t *testing.T) {
	specA := testutil.NewSpec(id("a"), nil).
		DependsOnModule(id("missing"), true, nil, nil).
		Build()
	r := registry.New(testutil.StaticFinder(specA), true, nil)

	modA, _, err := r.Preload(id("a"))
	require.NoError(t, err)

	deps, err := modA.Dependencies()
	require.NoError(t, err)
	require.Len(t, deps, 1)
	require.True(t, deps[0].Silent)
	require.Nil(t, deps[0].Target)
}

func TestRequiredMissingDependencyErrors(t *testing.T) {
	specA := testutil.NewSpec(id("a"), nil).
		DependsOnModule(id("missing"), false, nil, nil).
		Build()
	r := registry.New(testutil.StaticFinder(specA), true, nil)

	modA, _, err := r.Preload(id("a"))
	require.NoError(t, err)

	_, err = modA.Dependencies()
	require.Error(t, err)
}

func TestLinkExportsIdempotent(t *testing.T) {
	rootsB := testutil.LocalOf(map[string]string{"b/Thing": "from-b"})
	specB := testutil.NewSpec(id("b"), rootsB).
		DependsOnLocal(nil, pathfilter.AcceptAll(), pathfilter.AcceptAll()).
		Build()
	specA := testutil.NewSpec(id("a"), nil).
		DependsOnModule(id("b"), false, pathfilter.AcceptAll(), pathfilter.AcceptAll()).
		Build()
	r := registry.New(testutil.StaticFinder(specA, specB), true, nil)

	modA, _, err := r.Preload(id("a"))
	require.NoError(t, err)

	require.NoError(t, modA.LinkExportsIfNeeded(nil))
	first := modA.ExportedPaths()
	require.NoError(t, modA.LinkExportsIfNeeded(nil))
	second := modA.ExportedPaths()

	require.Equal(t, len(first), len(second))
	require.Contains(t, first, "b")
}

func TestExportLinkingTerminatesOnCycle(t *testing.T) {
	// A -> B -> C -> A, plus C -> D -> A (spec.md §8 cycle scenario).
	specA := testutil.NewSpec(id("a"), testutil.LocalOf(map[string]string{"a/Foo": "a"})).
		DependsOnLocal(nil, pathfilter.AcceptAll(), pathfilter.AcceptAll()).
		DependsOnModule(id("b"), false, pathfilter.AcceptAll(), pathfilter.AcceptAll()).
		Build()
	specB := testutil.NewSpec(id("b"), nil).
		DependsOnModule(id("c"), false, pathfilter.AcceptAll(), pathfilter.AcceptAll()).
		Build()
	specC := testutil.NewSpec(id("c"), nil).
		DependsOnModule(id("a"), false, pathfilter.AcceptAll(), pathfilter.AcceptAll()).
		DependsOnModule(id("d"), false, pathfilter.AcceptAll(), pathfilter.AcceptAll()).
		Build()
	specD := testutil.NewSpec(id("d"), nil).
		DependsOnModule(id("a"), false, pathfilter.AcceptAll(), pathfilter.AcceptAll()).
		Build()

	r := registry.New(testutil.StaticFinder(specA, specB, specC, specD), true, nil)
	modA, _, err := r.Preload(id("a"))
	require.NoError(t, err)

	done := make(chan error, 1)
	go func() { done <- modA.LinkExportsIfNeeded(nil) }()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("export linking did not terminate on a dependency cycle")
	}

	require.Contains(t, modA.ExportedPaths(), "a")
}
