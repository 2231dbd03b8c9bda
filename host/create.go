package host

import (
	"math/big"

	"github.com/evmhost/evmhost/contractaddr"
	"github.com/evmhost/evmhost/types"
)

// Create implements §4.6. The creator's nonce is incremented before the
// child frame runs, regardless of the eventual outcome — a failed CREATE
// still consumes a nonce. On success the derived address is recorded in
// the substate's contracts_created list; on any failure (insufficient gas
// to begin, depth limit, address collision, or a failed nested executive)
// the Host returns ErrCreateFailed and performs no further bookkeeping —
// the child's partial state effects are the executive's rollback
// responsibility, not the Host's.
func (h *Host) Create(gas uint64, value *big.Int, code []byte) (types.Address, uint64, error) {
	creator := h.origin.Address
	nonce := h.state.Nonce(creator)
	derived := contractaddr.Create(creator, nonce)

	h.state.IncNonce(creator)

	if h.depth+1 > h.schedule.CallDepthLimit {
		return types.Address{}, 0, ErrCreateFailed
	}
	if h.state.GetCodeSize(derived) > 0 {
		return types.Address{}, 0, ErrCreateFailed
	}

	params := &ActionParams{
		CodeAddress: derived,
		Address:     derived,
		Sender:      creator,
		Origin:      h.origin.Origin,
		Gas:         gas,
		GasPrice:    h.origin.GasPrice,
		Value:       Transfer(value),
		Code:        code,
		Data:        nil,
	}

	executive := h.factory.FromParent(h.state, h.env, h.engine, h.depth+1)
	gasRemaining, err := executive.Create(params, h.sub)
	if err != nil {
		h.log.Debug("nested create failed", "derived", derived, "error", err)
		return types.Address{}, 0, ErrCreateFailed
	}

	h.sub.AddCreatedContract(derived)
	return derived, gasRemaining, nil
}
