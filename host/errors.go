package host

import "errors"

// Error kinds surfaced by the Host (§7). Nested executive failures of any
// kind are collapsed to CreateFailed/CallFailed from the interpreter's
// viewpoint; the underlying error is logged at Debug level for
// diagnosis, not discarded, per the Open Question in §9.
var (
	// ErrOutOfGas is raised only by Ret on a failed code deposit under
	// the strict (Homestead+) schedule.
	ErrOutOfGas = errors.New("host: out of gas")

	// ErrCreateFailed collapses any CREATE-frame failure — insufficient
	// gas, depth limit exceeded, address collision, or a failed nested
	// executive — into one opaque result.
	ErrCreateFailed = errors.New("host: create failed")

	// ErrCallFailed collapses any CALL-frame failure into one opaque result.
	ErrCallFailed = errors.New("host: call failed")
)
