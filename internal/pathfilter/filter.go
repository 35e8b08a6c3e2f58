// Package pathfilter implements the path-filter algebra described in
// spec.md §4.1: a pure predicate over forward-slash path strings,
// composable as ordered decision lists of include/exclude rules.
//
// Filters are evaluated on every resolution step (spec.md §4.1
// rationale). Every constructor returns a non-nil Filter, so callers
// never need a nil check on the hot path. Glob matching splits the path
// into segments on each call and, for a '**' segment, tries each split
// point in turn.
package pathfilter

import (
	"strings"

	"github.com/aloubyansky/jboss-modules/internal/pathutil"
)

// Filter is a pure function over a normalized path string. Implementations
// must be safe for concurrent use: a Filter is shared across every
// resolution that walks the edge it was attached to.
type Filter interface {
	Match(path string) bool
}

// FilterFunc adapts a plain function to the Filter interface.
type FilterFunc func(path string) bool

// Match implements Filter.
func (f FilterFunc) Match(path string) bool { return f(path) }

// acceptAllFilter and rejectAllFilter are named types (rather than
// FilterFunc closures) so AcceptAll()/RejectAll() values compare equal
// with ==.
type acceptAllFilter struct{}

func (acceptAllFilter) Match(string) bool { return true }

type rejectAllFilter struct{}

func (rejectAllFilter) Match(string) bool { return false }

// AcceptAll returns a Filter that matches every path.
func AcceptAll() Filter { return acceptAllFilter{} }

// RejectAll returns a Filter that matches no path.
func RejectAll() Filter { return rejectAllFilter{} }

// literalFilter matches a single exact path.
type literalFilter struct{ path string }

func (f literalFilter) Match(path string) bool {
	return pathutil.Normalize(path) == f.path
}

// Literal returns a Filter that matches iff path == p exactly.
func Literal(p string) Filter {
	return literalFilter{path: pathutil.Normalize(p)}
}

// globFilter matches a glob pattern where '*' stands for exactly one path
// segment and '**' stands for zero or more full segments. Anchors are
// implicit at both ends: the whole path must match the whole pattern.
type globFilter struct {
	segments []string
}

// Glob returns a Filter matching the glob pattern p. '*' matches exactly
// one segment (no embedded '/'); '**' matches zero or more segments
// (including zero, i.e. it can vanish entirely).
func Glob(p string) Filter {
	return &globFilter{segments: pathutil.Segments(p)}
}

func (f globFilter) Match(path string) bool {
	return matchSegments(f.segments, pathutil.Segments(pathutil.Normalize(path)))
}

func matchSegments(pattern, path []string) bool {
	if len(pattern) == 0 {
		return len(path) == 0
	}
	head := pattern[0]
	if head == "**" {
		// '**' may consume zero or more segments; try every split point.
		for i := 0; i <= len(path); i++ {
			if matchSegments(pattern[1:], path[i:]) {
				return true
			}
		}
		return false
	}
	if len(path) == 0 {
		return false
	}
	if head != "*" && head != path[0] {
		return false
	}
	return matchSegments(pattern[1:], path[1:])
}

// allFilter is a conjunction: every constituent filter must match.
type allFilter struct{ filters []Filter }

// All returns a Filter that matches iff every one of fs matches. All()
// with no arguments matches everything (the empty conjunction is true).
func All(fs ...Filter) Filter {
	return allFilter{filters: fs}
}

func (f allFilter) Match(path string) bool {
	for _, sub := range f.filters {
		if !sub.Match(path) {
			return false
		}
	}
	return true
}

// Rule is one entry of a Multiple decision list: if Filter matches, the
// list's verdict is Include (returned immediately, without consulting
// later rules).
type Rule struct {
	Filter  Filter
	Include bool
}

// multipleFilter is the ordered decision list described in spec.md §4.1:
// rules are scanned in order, the first match decides, and if nothing
// matches the builder's DefaultAccept is returned.
type multipleFilter struct {
	rules         []Rule
	defaultAccept bool
}

// Multiple returns a Filter that scans rules in order and returns the
// include_flag of the first rule whose Filter matches; if none match, it
// returns defaultAccept.
func Multiple(rules []Rule, defaultAccept bool) Filter {
	return multipleFilter{rules: rules, defaultAccept: defaultAccept}
}

func (f multipleFilter) Match(path string) bool {
	for _, r := range f.rules {
		if r.Filter.Match(path) {
			return r.Include
		}
	}
	return f.defaultAccept
}

// Builder accumulates Rules for a Multiple filter in append order,
// mirroring the descriptor grammar's <include>/<exclude> sequence.
type Builder struct {
	rules         []Rule
	defaultAccept bool
}

// NewBuilder creates a Builder. defaultAccept determines the verdict when
// no appended rule matches: true defaults the whole filter to include,
// false defaults it to exclude.
func NewBuilder(defaultAccept bool) *Builder {
	return &Builder{defaultAccept: defaultAccept}
}

// Include appends a rule that, on match, decides the path is included.
func (b *Builder) Include(f Filter) *Builder {
	b.rules = append(b.rules, Rule{Filter: f, Include: true})
	return b
}

// Exclude appends a rule that, on match, decides the path is excluded.
func (b *Builder) Exclude(f Filter) *Builder {
	b.rules = append(b.rules, Rule{Filter: f, Include: false})
	return b
}

// Build returns the accumulated Multiple filter.
func (b *Builder) Build() Filter {
	return Multiple(append([]Rule(nil), b.rules...), b.defaultAccept)
}

// IsGlob reports whether a raw pattern string contains glob metacharacters,
// used by the descriptor parser to decide whether an <include path="..."/>
// value should become a Literal or a Glob filter.
func IsGlob(pattern string) bool {
	return strings.Contains(pattern, "*")
}
