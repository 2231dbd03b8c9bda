package host

// OutputKind distinguishes the three RETURN dispositions. A closed set of
// three variants, dispatched by tag rather than any form of late binding.
type OutputKind uint8

const (
	// OutputReturnFixed is a message call: the sink is a fixed-length,
	// caller-owned byte slice; RETURN data is truncated to its length.
	OutputReturnFixed OutputKind = iota
	// OutputReturnFlexible is a top-level call whose output size is
	// unbounded: the sink buffer is replaced in full.
	OutputReturnFlexible
	// OutputInitContract means RETURN deposits its data as the new code
	// of the frame's account, subject to the deposit-cost gas rule.
	OutputInitContract
)

// OutputPolicy selects how Host.Ret consumes RETURN data for a frame. It
// is selected by the executive constructing the frame, never by the
// interpreter.
type OutputPolicy struct {
	Kind OutputKind
	// Fixed is the sink for OutputReturnFixed: RETURN data is truncated
	// to len(Fixed) and copied in.
	Fixed []byte
	// Flexible is the sink for OutputReturnFlexible: its contents are
	// replaced by RETURN data in full.
	Flexible *[]byte
}

// ReturnFixed builds an OutputPolicy for a message call with a fixed
// caller-provided output buffer.
func ReturnFixed(sink []byte) OutputPolicy {
	return OutputPolicy{Kind: OutputReturnFixed, Fixed: sink}
}

// ReturnFlexible builds an OutputPolicy for a top-level call whose output
// is unbounded; sink is replaced wholesale on RETURN.
func ReturnFlexible(sink *[]byte) OutputPolicy {
	return OutputPolicy{Kind: OutputReturnFlexible, Flexible: sink}
}

// InitContractPolicy builds an OutputPolicy for a contract-creation frame.
func InitContractPolicy() OutputPolicy {
	return OutputPolicy{Kind: OutputInitContract}
}
