// Package state implements the world-state collaborator the Host reads
// and writes through: per-account balance, nonce, code, and storage, with
// snapshot/revert so a failed CALL or CREATE frame can be undone without
// disturbing its caller's already-committed changes.
package state

import (
	"math/big"

	"github.com/evmhost/evmhost/crypto"
	"github.com/evmhost/evmhost/types"
)

// State is the world-state interface the Host is built against. Method
// names mirror spec.md's external-collaborator operation set
// (storage_at, set_storage, nonce, inc_nonce, balance, code, sub_balance,
// transfer_balance, init_code, exists) plus the snapshot/revert pair and
// a handful of accessors (AddBalance, CodeHash, GetCodeSize) the Host's
// CREATE/CALL/RET paths need beyond that minimal set.
type State interface {
	// StorageAt returns the Word stored at (addr, key); zero if unset.
	StorageAt(addr types.Address, key types.Hash) types.Hash

	// SetStorage writes value at (addr, key).
	SetStorage(addr types.Address, key types.Hash, value types.Hash)

	// Nonce returns the account's current nonce; zero if the account does not exist.
	Nonce(addr types.Address) uint64

	// IncNonce increments the account's nonce by one, creating the account if needed.
	IncNonce(addr types.Address)

	// Balance returns the account's current balance; zero if the account does not exist.
	Balance(addr types.Address) *big.Int

	// Code returns the account's code, or nil if the account has none.
	Code(addr types.Address) []byte

	// CodeHash returns the keccak256 hash of the account's code.
	CodeHash(addr types.Address) types.Hash

	// GetCodeSize returns the length of the account's code.
	GetCodeSize(addr types.Address) int

	// SubBalance deducts amount from addr's balance.
	SubBalance(addr types.Address, amount *big.Int)

	// AddBalance credits amount to addr's balance.
	AddBalance(addr types.Address, amount *big.Int)

	// TransferBalance moves amount from src to dst via an unconditional
	// debit/credit pair. Self-transfer (src == dst) therefore nets to an
	// unchanged balance — this is the generic rule; Host.Suicide's
	// same-address refund special-cases away from it deliberately (see
	// host_mutate.go), it does not call TransferBalance for that case.
	TransferBalance(src, dst types.Address, amount *big.Int)

	// InitCode installs code as the contract code of addr, e.g. following
	// a successful CREATE. Unlike SetStorage this does not imply the
	// account already existed.
	InitCode(addr types.Address, code []byte)

	// Exists reports whether addr has a state object.
	Exists(addr types.Address) bool

	// CreateAccount brings addr into existence with zero balance, zero
	// nonce, and no code, if it does not already exist.
	CreateAccount(addr types.Address)

	// Snapshot records the current journal position and returns an
	// opaque handle usable with RevertToSnapshot.
	Snapshot() int

	// RevertToSnapshot undoes every change made since the matching Snapshot call.
	RevertToSnapshot(id int)
}

// stateObject is the in-memory representation of a single account.
type stateObject struct {
	account      types.Account
	code         []byte
	storage      map[types.Hash]types.Hash
	exists       bool
}

func newStateObject() *stateObject {
	return &stateObject{
		account: types.NewAccount(),
		storage: make(map[types.Hash]types.Hash),
		exists:  true,
	}
}

// MemoryState is an in-memory State implementation, journal-backed so
// every mutation can be undone by RevertToSnapshot. Grounded on the
// teacher's MemoryStateDB, trimmed of trie/commit/merge/prefetch,
// access-list, and transient-storage machinery that no SPEC_FULL.md
// component exercises (see DESIGN.md).
type MemoryState struct {
	objects map[types.Address]*stateObject
	journal *journal
}

// New returns an empty MemoryState.
func New() *MemoryState {
	return &MemoryState{
		objects: make(map[types.Address]*stateObject),
		journal: newJournal(),
	}
}

func (s *MemoryState) get(addr types.Address) *stateObject {
	return s.objects[addr]
}

func (s *MemoryState) getOrCreate(addr types.Address) *stateObject {
	if obj := s.objects[addr]; obj != nil {
		return obj
	}
	s.journal.append(createAccountChange{addr: addr})
	obj := newStateObject()
	s.objects[addr] = obj
	return obj
}

func (s *MemoryState) StorageAt(addr types.Address, key types.Hash) types.Hash {
	if obj := s.get(addr); obj != nil {
		return obj.storage[key]
	}
	return types.Hash{}
}

func (s *MemoryState) SetStorage(addr types.Address, key types.Hash, value types.Hash) {
	obj := s.getOrCreate(addr)
	prev, existed := obj.storage[key]
	s.journal.append(storageChange{addr: addr, key: key, prev: prev, existed: existed})
	obj.storage[key] = value
}

func (s *MemoryState) Nonce(addr types.Address) uint64 {
	if obj := s.get(addr); obj != nil {
		return obj.account.Nonce
	}
	return 0
}

func (s *MemoryState) IncNonce(addr types.Address) {
	obj := s.getOrCreate(addr)
	s.journal.append(nonceChange{addr: addr, prev: obj.account.Nonce})
	obj.account.Nonce++
}

func (s *MemoryState) Balance(addr types.Address) *big.Int {
	if obj := s.get(addr); obj != nil {
		return new(big.Int).Set(obj.account.Balance)
	}
	return new(big.Int)
}

func (s *MemoryState) Code(addr types.Address) []byte {
	if obj := s.get(addr); obj != nil {
		return obj.code
	}
	return nil
}

func (s *MemoryState) CodeHash(addr types.Address) types.Hash {
	if obj := s.get(addr); obj != nil {
		return types.BytesToHash(obj.account.CodeHash)
	}
	return types.Hash{}
}

func (s *MemoryState) GetCodeSize(addr types.Address) int {
	if obj := s.get(addr); obj != nil {
		return len(obj.code)
	}
	return 0
}

func (s *MemoryState) SubBalance(addr types.Address, amount *big.Int) {
	obj := s.getOrCreate(addr)
	s.journal.append(balanceChange{addr: addr, prev: new(big.Int).Set(obj.account.Balance)})
	obj.account.Balance = new(big.Int).Sub(obj.account.Balance, amount)
}

func (s *MemoryState) AddBalance(addr types.Address, amount *big.Int) {
	obj := s.getOrCreate(addr)
	s.journal.append(balanceChange{addr: addr, prev: new(big.Int).Set(obj.account.Balance)})
	obj.account.Balance = new(big.Int).Add(obj.account.Balance, amount)
}

// TransferBalance moves amount from src to dst via SubBalance/AddBalance.
// When src == dst both legs run against the same account and net to an
// unchanged balance; Host.Suicide deliberately avoids calling this for
// its same-address refund case, which must zero the balance instead.
func (s *MemoryState) TransferBalance(src, dst types.Address, amount *big.Int) {
	s.SubBalance(src, amount)
	s.AddBalance(dst, amount)
}

func (s *MemoryState) InitCode(addr types.Address, code []byte) {
	obj := s.getOrCreate(addr)
	prevCode := obj.code
	prevHash := append([]byte(nil), obj.account.CodeHash...)
	s.journal.append(codeChange{addr: addr, prevCode: prevCode, prevHash: prevHash})
	obj.code = code
	obj.account.CodeHash = crypto.Keccak256(code)
}

func (s *MemoryState) Exists(addr types.Address) bool {
	return s.objects[addr] != nil
}

func (s *MemoryState) CreateAccount(addr types.Address) {
	if s.objects[addr] != nil {
		return
	}
	s.journal.append(createAccountChange{addr: addr})
	s.objects[addr] = newStateObject()
}

func (s *MemoryState) Snapshot() int {
	return s.journal.snapshot()
}

func (s *MemoryState) RevertToSnapshot(id int) {
	s.journal.revertToSnapshot(id, s)
}

var _ State = (*MemoryState)(nil)
