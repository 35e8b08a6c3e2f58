// Package errlist provides centralized error code definitions for the
// module-loading runtime. Error codes follow a consistent per-phase
// taxonomy so host integrations can match on code rather than message text.
package errlist

// Error code constants, grouped by the phase that raises them.
const (
	// ============================================================================
	// PathFilter errors (FLT###)
	// ============================================================================

	// FLT001 indicates a glob pattern segment mixed '**' with other characters.
	FLT001 = "FLT001"

	// ============================================================================
	// Resource errors (RES###)
	// ============================================================================

	// RES001 indicates a resource path was not found in any backing loader.
	RES001 = "RES001"

	// RES002 indicates a backend failed to open a resource it claimed to offer.
	RES002 = "RES002"

	// ============================================================================
	// Registry errors (REG###)
	// ============================================================================

	// REG001 indicates findModule returned a spec whose identifier differs
	// from the one requested.
	REG001 = "REG001"

	// REG002 indicates a second definer tried to publish into a pending
	// entry that already has a terminal value.
	REG002 = "REG002"

	// REG003 indicates an administrative operation was attempted without
	// the redefine capability.
	REG003 = "REG003"

	// ============================================================================
	// Linking errors (LNK###)
	// ============================================================================

	// LNK001 indicates a non-optional module dependency could not be loaded.
	LNK001 = "LNK001"

	// ============================================================================
	// Descriptor errors (DSC###)
	// ============================================================================

	// DSC001 indicates the descriptor's module name did not match the
	// identifier the caller expected to find.
	DSC001 = "DSC001"

	// DSC002 indicates a required attribute was missing from an element.
	DSC002 = "DSC002"

	// DSC003 indicates a <dependencies> element listed the same module
	// identifier more than once. Other repeated elements are not reported
	// under this code.
	DSC003 = "DSC003"

	// DSC004 indicates a malformed or unparseable XML document.
	DSC004 = "DSC004"
)
