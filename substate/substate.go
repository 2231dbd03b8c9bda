// Package substate holds the per-transaction accumulator a Host records
// into as it runs: logs, newly created contracts, self-destructed
// accounts, and the SSTORE clear-refund counter. It is an external
// collaborator of the Host, not owned or interpreted by it: the Host only
// ever appends to it.
package substate

import "github.com/evmhost/evmhost/types"

// Substate accumulates the externally-visible side effects of a
// transaction's execution, folded depth-first across nested CALL/CREATE
// frames in opcode-issuance order.
type Substate struct {
	// ContractsCreated lists the addresses of contracts successfully
	// deployed via CREATE/CREATE2, in creation order.
	ContractsCreated []types.Address

	// Logs lists LOG0-LOG4 events emitted by any frame, in emission order.
	Logs []*types.Log

	// Suicides is the set of addresses that have self-destructed. Set
	// semantics: recording the same address twice has no additional effect.
	Suicides map[types.Address]struct{}

	// SstoreClearsCount counts SSTORE operations that cleared a
	// previously non-zero slot to zero, for refund accounting by the
	// caller of the Host.
	SstoreClearsCount uint64
}

// New returns an empty Substate ready to accumulate a transaction's effects.
func New() *Substate {
	return &Substate{
		Suicides: make(map[types.Address]struct{}),
	}
}

// AddLog appends a log entry in emission order.
func (s *Substate) AddLog(log *types.Log) {
	s.Logs = append(s.Logs, log)
}

// AddCreatedContract records a successfully created contract address.
func (s *Substate) AddCreatedContract(addr types.Address) {
	s.ContractsCreated = append(s.ContractsCreated, addr)
}

// AddSuicide records addr as self-destructed. Idempotent: calling it twice
// with the same address leaves the set unchanged after the first call.
func (s *Substate) AddSuicide(addr types.Address) {
	s.Suicides[addr] = struct{}{}
}

// HasSuicided reports whether addr has already self-destructed in this substate.
func (s *Substate) HasSuicided(addr types.Address) bool {
	_, ok := s.Suicides[addr]
	return ok
}

// IncSstoreClears increments the clear-refund counter by one.
func (s *Substate) IncSstoreClears() {
	s.SstoreClearsCount++
}
