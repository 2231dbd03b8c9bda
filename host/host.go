package host

import (
	"math/big"

	"github.com/evmhost/evmhost/gas"
	hostlog "github.com/evmhost/evmhost/log"
	"github.com/evmhost/evmhost/state"
	"github.com/evmhost/evmhost/substate"
	"github.com/evmhost/evmhost/types"
)

// Executive is the collaborator a Host re-enters for nested CALL/CREATE
// frames. The concrete implementation (package exec) owns the
// checkpoint/rollback discipline and drives the interpreter for the
// child frame; Host only ever calls through this interface, never
// constructs a child frame's state transition itself.
type Executive interface {
	// Call runs a child message-call frame described by params, folding
	// its effects into sub, copying RETURN data into output (a Fixed
	// sink per §4.8). Returns remaining gas on success.
	Call(params *ActionParams, sub *substate.Substate, output []byte) (gasRemaining uint64, err error)

	// Create runs a child contract-creation frame described by params,
	// folding its effects into sub. Returns remaining gas on success.
	Create(params *ActionParams, sub *substate.Substate) (gasRemaining uint64, err error)
}

// ExecutiveFactory produces the Executive for a child frame at the given
// depth, sharing the same state/env/engine borrows as the parent. This is
// the Go rendering of the original's from_parent collaborator.
type ExecutiveFactory interface {
	FromParent(st state.State, env EnvInfo, engine gas.Engine, depth uint64) Executive
}

// Host is the frame-scoped externalities façade: every environmental
// query and side effect the interpreter issues while running one frame's
// code passes through here. One Host exists per frame, created by the
// executive just before invoking the interpreter and discarded when the
// frame returns.
type Host struct {
	state    state.State
	env      EnvInfo
	engine   gas.Engine
	sub      *substate.Substate
	schedule gas.Schedule
	origin   OriginInfo
	output   OutputPolicy
	depth    uint64
	factory  ExecutiveFactory
	log      *hostlog.Logger
}

// New constructs a Host for one frame. The gas schedule is derived once,
// here, from engine+env, and frozen for the frame's lifetime — per §4
// Host "owns: a frozen copy of the gas schedule ... derived once from
// engine + env at construction".
func New(
	st state.State,
	env EnvInfo,
	engine gas.Engine,
	sub *substate.Substate,
	params *ActionParams,
	output OutputPolicy,
	depth uint64,
	factory ExecutiveFactory,
) *Host {
	return &Host{
		state:    st,
		env:      env,
		engine:   engine,
		sub:      sub,
		schedule: engine.Schedule(gas.EnvInfo{BlockNumber: env.Number, IsHomestead: env.IsHomestead}),
		origin:   NewOriginInfo(params),
		output:   output,
		depth:    depth,
		factory:  factory,
		log:      hostlog.Default().Module("host").Frame(depth),
	}
}

// --- Read-only queries (§4.4) ---

// StorageAt returns the Word at (origin_info.address, key); zero if unset.
func (h *Host) StorageAt(key types.Hash) types.Hash {
	return h.state.StorageAt(h.origin.Address, key)
}

// Exists reports whether addr is present in state.
func (h *Host) Exists(addr types.Address) bool {
	return h.state.Exists(addr)
}

// Balance returns addr's balance, or zero if the account does not exist.
func (h *Host) Balance(addr types.Address) *big.Int {
	return h.state.Balance(addr)
}

// ExtCode returns addr's code; an empty (possibly nil) slice if none.
func (h *Host) ExtCode(addr types.Address) []byte {
	return h.state.Code(addr)
}

// Schedule returns the gas schedule frozen at construction.
func (h *Host) Schedule() gas.Schedule {
	return h.schedule
}

// EnvInfo returns the borrowed block/environment metadata.
func (h *Host) EnvInfo() EnvInfo {
	return h.env
}

// Depth returns the current call depth; 0 for the top-level frame.
func (h *Host) Depth() uint64 {
	return h.depth
}

// Origin returns the frame's OriginInfo.
func (h *Host) Origin() OriginInfo {
	return h.origin
}

// BlockHash implements §4.7: returns the last-hashes entry at index
// H-n-1 iff n < H and n >= max(256, H) - 256; zero otherwise. n above the
// 64-bit range is always out of window — the overflow check is performed
// before any 64-bit arithmetic, per the Open Question in §9.
func (h *Host) BlockHash(n *big.Int) types.Hash {
	if n == nil || n.Sign() < 0 || !n.IsUint64() {
		return types.Hash{}
	}
	nn := n.Uint64()
	H := h.env.Number

	if nn >= H {
		return types.Hash{}
	}

	var lowerBound uint64
	if H > 256 {
		lowerBound = H - 256
	}
	if nn < lowerBound {
		return types.Hash{}
	}

	idx := H - nn - 1
	if idx >= uint64(len(h.env.LastHashes)) {
		return types.Hash{}
	}
	result := h.env.LastHashes[idx]
	h.log.Debug("blockhash", "n", nn, "result", result)
	return result
}
