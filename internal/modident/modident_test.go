package modident

import "testing"

func TestParseTwoPart(t *testing.T) {
	id, err := Parse("org.jboss:core")
	if err != nil {
		t.Fatal(err)
	}
	want := ID{Group: "org.jboss", Artifact: "core"}
	if id != want {
		t.Errorf("got %+v, want %+v", id, want)
	}
	if id.String() != "org.jboss:core" {
		t.Errorf("String() = %q", id.String())
	}
}

func TestParseWithSlot(t *testing.T) {
	id, err := Parse("org.jboss:core:main")
	if err != nil {
		t.Fatal(err)
	}
	if id.Slot != "main" {
		t.Errorf("slot = %q", id.Slot)
	}
	if id.String() != "org.jboss:core:main" {
		t.Errorf("String() = %q", id.String())
	}
}

func TestParseMalformed(t *testing.T) {
	for _, bad := range []string{"", "onlygroup", "a:b:c:d", "a:", ":b", "a::c"} {
		if _, err := Parse(bad); err == nil {
			t.Errorf("Parse(%q) should have failed", bad)
		}
	}
}

func TestEqualityIsStructural(t *testing.T) {
	a := New("g", "a")
	b := New("g", "a")
	if !a.Equal(b) {
		t.Error("identifiers with equal components should be equal")
	}
	if a != b {
		t.Error("ID should be directly comparable with ==")
	}

	withSlot := NewWithSlot("g", "a", "main")
	if a.Equal(withSlot) {
		t.Error("identifiers differing only in slot should not be equal")
	}
}

func TestUsableAsMapKey(t *testing.T) {
	m := map[ID]int{New("g", "a"): 1}
	if m[New("g", "a")] != 1 {
		t.Error("ID should work as a map key with value equality")
	}
}
