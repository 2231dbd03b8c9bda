// Package crypto provides the hash primitive the Host's CREATE/CREATE2
// address derivation needs. Hashing and integer primitives are named as
// external collaborators in the specification; this package is the minimal
// concrete instance used to make contract-address derivation runnable.
package crypto

import (
	"github.com/evmhost/evmhost/types"
	"golang.org/x/crypto/sha3"
)

// Keccak256 calculates the Keccak-256 hash of the given data.
func Keccak256(data ...[]byte) []byte {
	d := sha3.NewLegacyKeccak256()
	for _, b := range data {
		d.Write(b)
	}
	return d.Sum(nil)
}

// Keccak256Hash calculates Keccak-256 and returns it as a types.Hash.
func Keccak256Hash(data ...[]byte) types.Hash {
	return types.BytesToHash(Keccak256(data...))
}
