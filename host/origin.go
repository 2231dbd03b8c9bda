package host

import (
	"math/big"

	"github.com/evmhost/evmhost/types"
)

// OriginInfo is the subset of ActionParams the Host retains once the
// interpreter no longer needs the full record: Code and Data are dropped,
// and ActionValue's two arms are collapsed into a single Word (ValueWord)
// so nothing downstream branches on the transfer/apparent distinction
// again.
type OriginInfo struct {
	Address  types.Address
	Origin   types.Address
	GasPrice *big.Int
	ValueWord *big.Int
}

// NewOriginInfo projects an ActionParams into an OriginInfo.
func NewOriginInfo(p *ActionParams) OriginInfo {
	return OriginInfo{
		Address:   p.Address,
		Origin:    p.Origin,
		GasPrice:  p.GasPrice,
		ValueWord: p.Value.Word,
	}
}
