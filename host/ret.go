package host

// Ret implements §4.9, the RETURN opcode's dispatch on OutputPolicy.
//
//   - Fixed sink of length L: copy min(L, len(data)) bytes into the sink;
//     return gas unchanged. Truncation is silent.
//   - Flexible buffer: replace its contents with data in full; return gas
//     unchanged.
//   - InitContract: compute deposit_cost = len(data) * schedule.CreateDataGas.
//     If it exceeds gas, fail with ErrOutOfGas under the strict schedule, or
//     succeed with gas unchanged and no deposit under the lenient
//     (pre-Homestead) one. Otherwise deposit data as the account's code and
//     return gas - deposit_cost.
//
// This is the point at which interpreter gas becomes state cost, pivoting
// on a single schedule flag.
func (h *Host) Ret(gas uint64, data []byte) (uint64, error) {
	switch h.output.Kind {
	case OutputReturnFixed:
		n := len(h.output.Fixed)
		if len(data) < n {
			n = len(data)
		}
		copy(h.output.Fixed[:n], data[:n])
		return gas, nil

	case OutputReturnFlexible:
		buf := make([]byte, len(data))
		copy(buf, data)
		*h.output.Flexible = buf
		return gas, nil

	case OutputInitContract:
		depositCost := uint64(len(data)) * h.schedule.CreateDataGas
		if depositCost > gas {
			if h.schedule.ExceptionalFailedCodeDeposit {
				return 0, ErrOutOfGas
			}
			return gas, nil
		}
		h.state.InitCode(h.origin.Address, data)
		return gas - depositCost, nil

	default:
		panic("host: Ret called with unrecognized OutputPolicy kind")
	}
}
