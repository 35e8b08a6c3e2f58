// Package pathutil holds the small set of path-token operations shared by
// the PathFilter algebra and the namespace resolver: normalization,
// segment splitting, and the name-to-path conversion used to turn a
// symbol like "a.b.c.Foo" into the path token "a/b/c" that filters match
// against.
package pathutil

import (
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Normalize applies Unicode NFC normalization to a path so that two
// byte-distinct encodings of the same visible path (e.g. "café" composed
// vs. decomposed) compare equal. The Literal and Glob filters apply it to
// every path they match; namespace map lookups and resource loaders use
// paths as given.
func Normalize(path string) string {
	if norm.NFC.IsNormalString(path) {
		return path
	}
	return norm.NFC.String(path)
}

// Segments splits a forward-slash path into its segments. An empty path
// yields an empty slice, not a slice containing one empty string.
func Segments(path string) []string {
	if path == "" {
		return nil
	}
	return strings.Split(path, "/")
}

// Join re-joins segments into a forward-slash path.
func Join(segments []string) string {
	return strings.Join(segments, "/")
}

// SymbolPath converts a dotted symbol name (e.g. "a.b.c.Foo") into the
// path token its containing package occupies (e.g. "a/b/c"), per spec.md
// §4.5. A name with no dots (a top-level symbol) maps to the empty path.
func SymbolPath(name string) string {
	idx := strings.LastIndex(name, ".")
	if idx < 0 {
		return ""
	}
	return strings.ReplaceAll(name[:idx], ".", "/")
}

// ResourceDir converts a full resource path (e.g. "META-INF/services/Foo")
// into the path token its containing directory occupies (e.g.
// "META-INF/services") — the resource-query mirror of SymbolPath. A path
// with no "/" (a root-level resource) maps to the empty path.
func ResourceDir(path string) string {
	idx := strings.LastIndex(path, "/")
	if idx < 0 {
		return ""
	}
	return path[:idx]
}
