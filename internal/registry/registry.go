// Package registry implements the ModuleLoader registry (spec.md §4.3):
// one-shot, lazy, concurrency-safe definition of modules keyed by
// modident.ID, backed by a caller-supplied findModule hook.
//
// Mirrors AILANG's internal/runtime.ModuleInstance.initOnce, a
// sync.Once-guarded one-shot evaluation. sync.Once alone is not enough
// here: the registry needs a third terminal state — "not found: wake the
// waiters with a miss, cache no module, and let a later request call find
// again" — that Once.Do cannot express (it only distinguishes "ran" from
// "hasn't run"). This package
// generalizes the pattern to an explicit pending/ready/notFound state
// machine behind a mutex and condition variable, so concurrent callers
// racing to load the same identifier block on the first resolution
// rather than each doing redundant work or observing a torn/partial
// entry.
package registry

import (
	"sync"

	"github.com/aloubyansky/jboss-modules/internal/errlist"
	"github.com/aloubyansky/jboss-modules/internal/localloader"
	"github.com/aloubyansky/jboss-modules/internal/modgraph"
	"github.com/aloubyansky/jboss-modules/internal/modident"
	"github.com/aloubyansky/jboss-modules/internal/modlog"
	"github.com/aloubyansky/jboss-modules/internal/modspec"
)

// FindFunc looks up the ModuleSpec for id from whatever backing store
// the host wires in (a descriptor directory, an in-memory map, a
// network fetch). found is false iff no error occurred but id has no
// corresponding spec. FindFunc is called with no Registry lock held, so
// it may itself call back into the Registry (e.g. to preload a sibling
// module) without deadlocking.
type FindFunc func(id modident.ID) (spec *modspec.Spec, found bool, err error)

type state int

const (
	statePending state = iota
	stateReady
	stateNotFound
)

type entry struct {
	state  state
	module *modgraph.Module
}

// Registry is the concurrency-safe module registry. The zero value is
// not usable; construct with New.
type Registry struct {
	mu      sync.Mutex
	cond    *sync.Cond
	entries map[modident.ID]*entry

	find        FindFunc
	canRedefine bool
	log         modlog.Logger
}

// New builds a Registry backed by find. canRedefine gates the
// administrative mutation methods (spec.md §4.3): when false, they all
// return a REG003 permission-denied error. A nil logger is replaced
// with modlog.NoOp().
func New(find FindFunc, canRedefine bool, logger modlog.Logger) *Registry {
	if logger == nil {
		logger = modlog.NoOp()
	}
	r := &Registry{
		entries:     make(map[modident.ID]*entry),
		find:        find,
		canRedefine: canRedefine,
		log:         logger,
	}
	r.cond = sync.NewCond(&r.mu)
	return r
}

// Preload satisfies modgraph.Registry: it resolves id to a Module,
// defining it via find on first request and publishing the result to
// every concurrent waiter. Preload does not itself trigger export
// linking — linking happens lazily the first time a Namespace query
// needs it, or eagerly via Load.
func (r *Registry) Preload(id modident.ID) (mod *modgraph.Module, found bool, err error) {
	r.mu.Lock()
	e, exists := r.entries[id]
	if !exists {
		e = &entry{state: statePending}
		r.entries[id] = e
		r.mu.Unlock()
		return r.define(id, e)
	}
	for e.state == statePending {
		r.cond.Wait()
	}
	defer r.mu.Unlock()
	switch e.state {
	case stateReady:
		return e.module, true, nil
	default:
		return nil, false, nil
	}
}

// define runs find for a freshly-registered pending entry and publishes
// the terminal result. Called with the Registry lock not held. When find
// fails or returns a mismatched identifier, waiters see a not-found result
// and only the defining caller receives the error.
func (r *Registry) define(id modident.ID, e *entry) (*modgraph.Module, bool, error) {
	spec, found, err := r.find(id)

	r.mu.Lock()
	defer func() {
		r.cond.Broadcast()
		r.mu.Unlock()
	}()

	if err != nil {
		e.state = stateNotFound
		delete(r.entries, id)
		r.log.Log(modlog.LevelWarn, "find %s: %v", id, err)
		return nil, false, err
	}
	if !found {
		e.state = stateNotFound
		// Remove the entry rather than caching the miss (spec.md §4.3
		// step 3): a later Preload for the same id gets a fresh attempt
		// at find, in case the backing store now has it. Waiters already
		// hold a reference to e, not a fresh map lookup, so the broadcast
		// below still wakes them with the terminal state they're after.
		delete(r.entries, id)
		r.log.Log(modlog.LevelDebug, "not found: %s", id)
		return nil, false, nil
	}
	if !spec.Identifier.Equal(id) {
		e.state = stateNotFound
		delete(r.entries, id)
		mismatchErr := errlist.NameMismatch(id.String(), spec.Identifier.String())
		r.log.Log(modlog.LevelWarn, "%v", mismatchErr)
		return nil, false, mismatchErr
	}

	e.state = stateReady
	e.module = modgraph.New(spec, r)
	r.log.Log(modlog.LevelDebug, "defined: %s", id)
	return e.module, true, nil
}

// Load resolves id like Preload, and additionally ensures the module's
// exports are linked before returning it.
func (r *Registry) Load(id modident.ID) (*modgraph.Module, bool, error) {
	mod, found, err := r.Preload(id)
	if err != nil || !found {
		return nil, found, err
	}
	if err := mod.LinkExportsIfNeeded(nil); err != nil {
		return nil, false, err
	}
	return mod, true, nil
}

// LoadLocal returns the already-defined module for id without ever
// calling find — it answers "is id currently defined in this registry,"
// not "can id be defined." found is false both when nothing is defined
// for id and when a definition attempt is still in flight or previously
// failed.
func (r *Registry) LoadLocal(id modident.ID) (mod *modgraph.Module, found bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	e, exists := r.entries[id]
	if !exists || e.state != stateReady {
		return nil, false
	}
	return e.module, true
}

// UnloadLocal removes module's entry from the registry, provided the
// registry's current entry for that identifier is still exactly this
// module (a concurrent redefinition wins over a stale unload). Returns
// true if an entry was removed.
func (r *Registry) UnloadLocal(module *modgraph.Module) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	id := module.Identifier()
	e, exists := r.entries[id]
	if !exists || e.module != module {
		return false
	}
	delete(r.entries, id)
	r.cond.Broadcast()
	r.log.Log(modlog.LevelDebug, "unloaded: %s", id)
	return true
}

// Relink forces id's module (if defined) back through export linking,
// observing any resource-loader or dependency changes made since it was
// last linked.
func (r *Registry) Relink(id modident.ID) error {
	if !r.canRedefine {
		return errlist.PermissionDenied("relink")
	}
	mod, found := r.LoadLocal(id)
	if !found {
		return nil
	}
	return mod.Relink()
}

// SetAndRefreshResourceLoaders replaces id's module's resource roots and
// relinks it. Returns nil without effect if id is not currently defined.
func (r *Registry) SetAndRefreshResourceLoaders(id modident.ID, roots *localloader.LocalLoader) error {
	if !r.canRedefine {
		return errlist.PermissionDenied("setAndRefreshResourceLoaders")
	}
	mod, found := r.LoadLocal(id)
	if !found {
		return nil
	}
	mod.RefreshResourceLoaders(roots)
	return mod.Relink()
}

// SetAndRelinkDependencies replaces id's module's dependency specs and
// relinks it. Returns nil without effect if id is not currently defined.
func (r *Registry) SetAndRelinkDependencies(id modident.ID, deps []modspec.DependencySpec) error {
	if !r.canRedefine {
		return errlist.PermissionDenied("setAndRelinkDependencies")
	}
	mod, found := r.LoadLocal(id)
	if !found {
		return nil
	}
	normalized := make([]modspec.DependencySpec, len(deps))
	for i, d := range deps {
		normalized[i] = d.WithDefaults()
	}
	mod.SetDependencies(normalized)
	return mod.Relink()
}
