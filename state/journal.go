package state

import (
	"math/big"

	"github.com/evmhost/evmhost/types"
)

// journalEntry is a revertible state change.
type journalEntry interface {
	revert(s *MemoryState)
}

// journal tracks state modifications for snapshot/revert, adapted from
// the teacher's core/state journal. Trimmed of the access-list,
// transient-storage, log, and refund entry kinds: substate.Substate owns
// logs/suicides/refund-counting for the Host, and MemoryState carries no
// access-list or transient-storage surface (see DESIGN.md).
type journal struct {
	entries   []journalEntry
	snapshots map[int]int // snapshot ID -> entry index
	nextID    int
}

func newJournal() *journal {
	return &journal{
		snapshots: make(map[int]int),
	}
}

func (j *journal) append(entry journalEntry) {
	j.entries = append(j.entries, entry)
}

func (j *journal) snapshot() int {
	id := j.nextID
	j.nextID++
	j.snapshots[id] = len(j.entries)
	return id
}

func (j *journal) revertToSnapshot(id int, s *MemoryState) {
	idx, ok := j.snapshots[id]
	if !ok {
		return
	}
	for i := len(j.entries) - 1; i >= idx; i-- {
		j.entries[i].revert(s)
	}
	j.entries = j.entries[:idx]

	for sid := range j.snapshots {
		if sid >= id {
			delete(j.snapshots, sid)
		}
	}
}

type createAccountChange struct {
	addr types.Address
}

func (ch createAccountChange) revert(s *MemoryState) {
	delete(s.objects, ch.addr)
}

type balanceChange struct {
	addr types.Address
	prev *big.Int
}

func (ch balanceChange) revert(s *MemoryState) {
	if obj := s.get(ch.addr); obj != nil {
		obj.account.Balance = ch.prev
	}
}

type nonceChange struct {
	addr types.Address
	prev uint64
}

func (ch nonceChange) revert(s *MemoryState) {
	if obj := s.get(ch.addr); obj != nil {
		obj.account.Nonce = ch.prev
	}
}

type codeChange struct {
	addr     types.Address
	prevCode []byte
	prevHash []byte
}

func (ch codeChange) revert(s *MemoryState) {
	if obj := s.get(ch.addr); obj != nil {
		obj.code = ch.prevCode
		obj.account.CodeHash = ch.prevHash
	}
}

type storageChange struct {
	addr    types.Address
	key     types.Hash
	prev    types.Hash
	existed bool
}

func (ch storageChange) revert(s *MemoryState) {
	obj := s.get(ch.addr)
	if obj == nil {
		return
	}
	if ch.existed {
		obj.storage[ch.key] = ch.prev
	} else {
		delete(obj.storage, ch.key)
	}
}
