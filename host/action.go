// Package host implements the Host façade: the environmental interface a
// bytecode interpreter consults while running a single call/create frame
// (storage, balance, block-history, nested CALL/CREATE, logs,
// self-destruction, and RETURN disposition), mediating between the
// interpreter and the surrounding world state.
package host

import (
	"math/big"

	"github.com/evmhost/evmhost/types"
)

// ActionValueKind distinguishes the two arms of ActionValue.
type ActionValueKind uint8

const (
	// Transferred means the balance transfer of Word MUST occur before
	// interpretation begins.
	Transferred ActionValueKind = iota
	// Apparent means Word is only the value observable by CALLVALUE within
	// the frame; no balance movement accompanies it.
	Apparent
)

// ActionValue is the tagged sum distinguishing a value actually
// transferred at frame entry from one merely visible to CALLVALUE
// (the CALLCODE/DELEGATECALL case). The distinction exists solely at
// frame construction: no code path downstream of OriginInfo branches on
// the tag again.
type ActionValue struct {
	Kind ActionValueKind
	Word *big.Int
}

// Transfer constructs a Transferred ActionValue.
func Transfer(w *big.Int) ActionValue {
	return ActionValue{Kind: Transferred, Word: w}
}

// ApparentValue constructs an Apparent ActionValue.
func ApparentValue(w *big.Int) ActionValue {
	return ActionValue{Kind: Apparent, Word: w}
}

// ActionParams crystallizes a call/create frame's inputs. Construction
// order matters for CREATE (address == code_address, both equal to the
// derived contract address) and is otherwise a plain data record, treated
// as immutable by convention once built.
type ActionParams struct {
	// CodeAddress is where the code being executed was loaded from.
	CodeAddress types.Address
	// Address is the account whose storage and balance this frame reads
	// and writes; differs from CodeAddress under CALLCODE/DELEGATECALL.
	Address types.Address
	// Sender is the immediate caller.
	Sender types.Address
	// Origin is the outermost transaction initiator, invariant across the
	// whole call tree.
	Origin types.Address
	// Gas is the gas allotted to this frame.
	Gas uint64
	// GasPrice is the originating transaction's gas price, invariant
	// across the tree.
	GasPrice *big.Int
	// Value is this frame's ActionValue.
	Value ActionValue
	// Code is the bytecode to execute; nil means "look up from state".
	Code []byte
	// Data is calldata; nil means empty.
	Data []byte
}
