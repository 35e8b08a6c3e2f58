package pathutil_test

import (
	"testing"

	"github.com/aloubyansky/jboss-modules/internal/pathutil"
)

func TestSegments(t *testing.T) {
	cases := map[string][]string{
		"":          nil,
		"a":         {"a"},
		"a/b/c":     {"a", "b", "c"},
		"org/jboss": {"org", "jboss"},
	}
	for in, want := range cases {
		got := pathutil.Segments(in)
		if len(got) != len(want) {
			t.Fatalf("Segments(%q) = %v, want %v", in, got, want)
		}
		for i := range got {
			if got[i] != want[i] {
				t.Fatalf("Segments(%q) = %v, want %v", in, got, want)
			}
		}
	}
}

func TestSymbolPath(t *testing.T) {
	cases := map[string]string{
		"Foo":       "",
		"a.Foo":     "a",
		"a.b.c.Foo": "a/b/c",
	}
	for in, want := range cases {
		if got := pathutil.SymbolPath(in); got != want {
			t.Errorf("SymbolPath(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestResourceDir(t *testing.T) {
	cases := map[string]string{
		"Foo":                   "",
		"a/Foo":                 "a",
		"META-INF/services/Foo": "META-INF/services",
	}
	for in, want := range cases {
		if got := pathutil.ResourceDir(in); got != want {
			t.Errorf("ResourceDir(%q) = %q, want %q", in, got, want)
		}
	}
}

// TestNormalizeFoldsDecomposedForm builds an NFD string from its raw
// codepoints (ASCII "e" + U+0301 combining acute) and an NFC string from
// its single precomposed codepoint (U+00E9), so the two forms being
// compared are unambiguous regardless of how this source file itself is
// encoded. Normalize must fold both to the same string.
func TestNormalizeFoldsDecomposedForm(t *testing.T) {
	nfd := "caf" + string(rune(0x0065)) + string(rune(0x0301)) + "/menu"
	nfc := "caf" + string(rune(0x00e9)) + "/menu"

	if pathutil.Normalize(nfd) != pathutil.Normalize(nfc) {
		t.Fatalf("Normalize did not fold NFD and NFC forms of the same path to the same string")
	}
	if pathutil.Normalize(nfc) != nfc {
		t.Fatalf("Normalize changed an already-normalized (NFC) path")
	}
}
