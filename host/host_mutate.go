package host

import "github.com/evmhost/evmhost/types"

// SetStorage writes value under origin_info.address. Clear-bonus
// accounting is not automatic: the interpreter calls IncSstoreClears
// separately when it observes a non-zero-to-zero transition.
func (h *Host) SetStorage(key, value types.Hash) {
	h.state.SetStorage(h.origin.Address, key, value)
}

// Log appends a log entry attributed to origin_info.address to the
// transaction substate, in opcode-issuance order.
func (h *Host) Log(topics []types.Hash, data []byte) {
	h.sub.AddLog(&types.Log{
		Address: h.origin.Address,
		Topics:  topics,
		Data:    data,
	})
}

// Suicide transfers the current account's entire balance to refundAddr
// and records origin_info.address in the substate's suicide set.
// Self-refund (refundAddr == origin_info.address) zeroes the balance
// rather than netting to itself: a deliberate compatibility point with
// the canonical client's observable side effect, not a general rule
// about self-transfer.
func (h *Host) Suicide(refundAddr types.Address) {
	addr := h.origin.Address
	balance := h.state.Balance(addr)
	if addr == refundAddr {
		h.state.SubBalance(addr, balance)
	} else {
		h.state.TransferBalance(addr, refundAddr, balance)
	}
	h.sub.AddSuicide(addr)
}

// IncSstoreClears increments the substate's SSTORE clear-refund counter by one.
func (h *Host) IncSstoreClears() {
	h.sub.IncSstoreClears()
}
