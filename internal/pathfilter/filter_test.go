package pathfilter

import "testing"

func TestAcceptRejectAll(t *testing.T) {
	if !AcceptAll().Match("anything/at/all") {
		t.Error("AcceptAll should match every path")
	}
	if RejectAll().Match("anything/at/all") {
		t.Error("RejectAll should match nothing")
	}
}

func TestLiteral(t *testing.T) {
	f := Literal("p/q/Foo")
	if !f.Match("p/q/Foo") {
		t.Error("literal should match exact path")
	}
	if f.Match("p/q/Bar") {
		t.Error("literal should not match a different path")
	}
	if f.Match("p/q/Foo/") {
		t.Error("literal should not match with trailing segment")
	}
}

func TestGlobSingleSegment(t *testing.T) {
	f := Glob("p/*/Foo")
	cases := map[string]bool{
		"p/q/Foo":   true,
		"p/x/Foo":   true,
		"p/q/r/Foo": false, // '*' matches exactly one segment
		"p/Foo":     false,
		"q/q/Foo":   false,
	}
	for path, want := range cases {
		if got := f.Match(path); got != want {
			t.Errorf("Glob(p/*/Foo).Match(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestGlobDoubleStar(t *testing.T) {
	f := Glob("org/jboss/**")
	cases := map[string]bool{
		"org/jboss/Foo":        true,
		"org/jboss/nested/Foo": true,
		"org/jboss":            true, // ** may consume zero segments
		"com/acme/Bar":         false,
	}
	for path, want := range cases {
		if got := f.Match(path); got != want {
			t.Errorf("Glob(org/jboss/**).Match(%q) = %v, want %v", path, got, want)
		}
	}
}

func TestGlobDoubleStarCanVanish(t *testing.T) {
	f := Glob("a/**/b")
	if !f.Match("a/b") {
		t.Error("** should be allowed to match zero segments")
	}
	if !f.Match("a/x/y/b") {
		t.Error("** should match multiple segments")
	}
}

func TestAll(t *testing.T) {
	f := All(Glob("org/**"), Literal("org/jboss/Foo"))
	if !f.Match("org/jboss/Foo") {
		t.Error("conjunction of matching filters should match")
	}
	if f.Match("org/jboss/Bar") {
		t.Error("conjunction should fail when one constituent fails")
	}
	// Empty conjunction is vacuously true.
	if !All().Match("anything") {
		t.Error("empty All() should match everything")
	}
}

func TestMultipleFirstMatchWins(t *testing.T) {
	f := NewBuilder(true).
		Exclude(Glob("org/jboss/**")).
		Include(Literal("org/jboss/Public")).
		Build()

	// Literal rule is second, so even though it matches, the earlier
	// Exclude rule for the glob already decided this path.
	if f.Match("org/jboss/Public") {
		t.Error("first matching rule should win, not the most specific one")
	}
	if !f.Match("com/acme/Bar") {
		t.Error("unmatched path should fall through to defaultAccept")
	}
	if !NewBuilder(true).Build().Match("anything") {
		t.Error("no rules at all should return defaultAccept")
	}
}

func TestMultipleDefaultAccept(t *testing.T) {
	include := Multiple(nil, true)
	if !include.Match("x/y") {
		t.Error("defaultAccept=true with no rules should include")
	}
	exclude := Multiple(nil, false)
	if exclude.Match("x/y") {
		t.Error("defaultAccept=false with no rules should exclude")
	}
}

func TestIsGlob(t *testing.T) {
	if IsGlob("p/q/Foo") {
		t.Error("literal path should not be detected as glob")
	}
	if !IsGlob("p/*/Foo") || !IsGlob("p/**") {
		t.Error("patterns containing '*' should be detected as glob")
	}
}
