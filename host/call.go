package host

import (
	"math/big"

	"github.com/evmhost/evmhost/types"
)

// Call implements §4.8. value == nil means the caller passed no explicit
// value override (the DELEGATECALL/CALLCODE-style case): the child frame
// sees Apparent(origin_info.value_word) with no balance movement. A
// non-nil value means a genuine Transfer, whose actual movement is
// performed by the executive, not by the Host — see the Design Note in §9.
func (h *Host) Call(
	gas uint64,
	sender types.Address,
	receive types.Address,
	value *big.Int,
	data []byte,
	codeAddress types.Address,
	output []byte,
) (uint64, error) {
	var actionValue ActionValue
	if value == nil {
		actionValue = ApparentValue(h.origin.ValueWord)
	} else {
		actionValue = Transfer(value)
	}

	code := h.state.Code(codeAddress)

	params := &ActionParams{
		CodeAddress: codeAddress,
		Address:     receive,
		Sender:      sender,
		Origin:      h.origin.Origin,
		Gas:         gas,
		GasPrice:    h.origin.GasPrice,
		Value:       actionValue,
		Code:        code,
		Data:        data,
	}

	if h.depth+1 > h.schedule.CallDepthLimit {
		return 0, ErrCallFailed
	}

	executive := h.factory.FromParent(h.state, h.env, h.engine, h.depth+1)
	gasRemaining, err := executive.Call(params, h.sub, output)
	if err != nil {
		h.log.Debug("nested call failed", "receive", receive, "error", err)
		return 0, ErrCallFailed
	}
	return gasRemaining, nil
}
