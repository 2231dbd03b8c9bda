package host

import "github.com/evmhost/evmhost/types"

// EnvInfo is the enclosing block/environment metadata a Host borrows
// read-only for the lifetime of a frame.
type EnvInfo struct {
	// Number is the current block number (H in §4.7's blockhash notation).
	Number uint64
	// LastHashes is the rolling window of the most recent block hashes
	// preceding Number, indexed newest-first: LastHashes[0] is the hash
	// of block Number-1, LastHashes[255] is the hash of block Number-256.
	LastHashes []types.Hash
	// IsHomestead reports whether the active fork is Homestead or later,
	// the only fork-selection bit the Host's gas.Engine consults.
	IsHomestead bool
}
