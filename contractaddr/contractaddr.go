// Package contractaddr derives the address a new contract will be deployed
// at, for both CREATE and CREATE2. These are pure functions of inputs
// already known before the Host opens a child frame: they do not read or
// write State.
package contractaddr

import (
	"math/big"

	"github.com/evmhost/evmhost/crypto"
	"github.com/evmhost/evmhost/rlp"
	"github.com/evmhost/evmhost/types"
)

// Create computes the address of a contract created via CREATE.
// Per the Yellow Paper: addr = keccak256(rlp([sender, nonce]))[12:]
func Create(creator types.Address, nonce uint64) types.Address {
	payload := rlp.EncodeBytes(creator.Bytes())
	payload = append(payload, rlp.EncodeUint64(nonce)...)
	data := rlp.WrapList(payload)
	hash := crypto.Keccak256(data)
	return types.BytesToAddress(hash[12:])
}

// Create2 computes the address of a contract created via CREATE2.
// addr = keccak256(0xff ++ sender ++ salt ++ keccak256(initCode))[12:]
func Create2(creator types.Address, salt *big.Int, initCodeHash types.Hash) types.Address {
	saltBytes := make([]byte, 32)
	if salt != nil {
		b := salt.Bytes()
		copy(saltBytes[32-len(b):], b)
	}
	data := make([]byte, 0, 1+types.AddressLength+32+types.HashLength)
	data = append(data, 0xff)
	data = append(data, creator.Bytes()...)
	data = append(data, saltBytes...)
	data = append(data, initCodeHash.Bytes()...)
	hash := crypto.Keccak256(data)
	return types.BytesToAddress(hash[12:])
}
