// Package modident implements ModuleIdentifier (spec.md §3): a structural
// triple (group, artifact, slot?) with purely structural equality and
// hashing, rendered textually as "group:artifact[:slot]".
//
// Mirrors AILANG's core.GlobalRef{Module, Name} — a small immutable
// value used as a map key across the codebase — generalized from a
// two-part (module, name) pair to the three-part identity spec.md
// requires, with an optional slot (see spec.md §9's open question on
// "slot").
package modident

import (
	"fmt"
	"strings"
)

// ID is a module identifier. The zero value is not a valid identifier;
// always construct one via New or Parse.
type ID struct {
	Group    string
	Artifact string
	Slot     string // empty means "no slot"
}

// New constructs an identifier directly, with no slot.
func New(group, artifact string) ID {
	return ID{Group: group, Artifact: artifact}
}

// NewWithSlot constructs an identifier carrying an explicit slot.
func NewWithSlot(group, artifact, slot string) ID {
	return ID{Group: group, Artifact: artifact, Slot: slot}
}

// Parse reads the textual form "group:artifact[:slot]".
func Parse(text string) (ID, error) {
	parts := strings.Split(text, ":")
	switch len(parts) {
	case 2:
		if parts[0] == "" || parts[1] == "" {
			return ID{}, fmt.Errorf("modident: empty group or artifact in %q", text)
		}
		return ID{Group: parts[0], Artifact: parts[1]}, nil
	case 3:
		if parts[0] == "" || parts[1] == "" || parts[2] == "" {
			return ID{}, fmt.Errorf("modident: empty component in %q", text)
		}
		return ID{Group: parts[0], Artifact: parts[1], Slot: parts[2]}, nil
	default:
		return ID{}, fmt.Errorf("modident: malformed identifier %q, want group:artifact[:slot]", text)
	}
}

// String renders the identifier in its textual form.
func (id ID) String() string {
	if id.Slot == "" {
		return id.Group + ":" + id.Artifact
	}
	return id.Group + ":" + id.Artifact + ":" + id.Slot
}

// Equal reports structural equality. ID is a plain comparable struct, so
// this is equivalent to ==, but spelled out for callers that prefer
// method form and to make the structural-equality contract explicit.
func (id ID) Equal(other ID) bool {
	return id == other
}
