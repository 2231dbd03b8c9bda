// Package exec implements the Executive collaborator §6 names: the
// driver that, given an ActionParams and a Substate, performs the
// pre-execution bookkeeping (value transfer, account creation, balance
// checks), constructs a frame-scoped Host, and runs the frame's code
// against it — rolling back on any failure via a state.Snapshot
// checkpoint, matching the teacher's core/vm.EVM.Call
// snapshot/revert-on-error discipline.
package exec

import (
	"errors"

	"github.com/evmhost/evmhost/gas"
	evmhostlog "github.com/evmhost/evmhost/log"
	"github.com/evmhost/evmhost/host"
	"github.com/evmhost/evmhost/state"
	"github.com/evmhost/evmhost/substate"
)

// ErrInsufficientBalance is returned when a value-bearing frame's sender
// cannot cover the transfer.
var ErrInsufficientBalance = errors.New("exec: insufficient balance for transfer")

// CodeRunner executes a frame's code against its Host, returning the gas
// remaining on success. It is the pluggable stand-in for a full bytecode
// interpreter (out of scope per the Host's own specification): in tests
// it is a small scripted function that issues SSTORE/LOG/CALL/CREATE/
// SUICIDE/RETURN against h directly. A CodeRunner's last action on
// success MUST be h.Ret(...), whose result becomes the CodeRunner's own
// return value.
type CodeRunner func(h *host.Host, gasBudget uint64, code []byte, input []byte) (gasRemaining uint64, err error)

// Factory builds Executives sharing a single CodeRunner, the Go rendering
// of the Host/Executive collaborator's from_parent operation (§6).
type Factory struct {
	runner CodeRunner
}

// NewFactory returns a Factory that drives frames with runner.
func NewFactory(runner CodeRunner) *Factory {
	return &Factory{runner: runner}
}

// FromParent implements host.ExecutiveFactory.
func (f *Factory) FromParent(st state.State, env host.EnvInfo, engine gas.Engine, depth uint64) host.Executive {
	return &Executive{
		state:   st,
		env:     env,
		engine:  engine,
		depth:   depth,
		factory: f,
		log:     evmhostlog.Default().Module("exec").Frame(depth),
	}
}

// Executive is the reference host.Executive implementation for one frame.
type Executive struct {
	state   state.State
	env     host.EnvInfo
	engine  gas.Engine
	depth   uint64
	factory *Factory
	log     *evmhostlog.Logger
}

// Run drives a top-level frame (depth 0) described by params, the entry
// point cmd/evmhost uses to kick off a scripted scenario. outputPolicy
// selects how the frame's RETURN data is consumed: host.ReturnFixed for a
// bounded sink, host.ReturnFlexible for unbounded top-level output, or
// host.InitContractPolicy for a top-level creation.
func Run(st state.State, env host.EnvInfo, engine gas.Engine, runner CodeRunner, params *host.ActionParams, sub *substate.Substate, outputPolicy host.OutputPolicy) (uint64, error) {
	factory := NewFactory(runner)
	e := factory.FromParent(st, env, engine, 0).(*Executive)
	return e.run(params, sub, outputPolicy)
}

// Call implements host.Executive.
func (e *Executive) Call(params *host.ActionParams, sub *substate.Substate, output []byte) (uint64, error) {
	return e.run(params, sub, host.ReturnFixed(output))
}

// Create implements host.Executive. A creation frame without init code
// (params.Code == nil) is a programming defect of the caller and panics.
func (e *Executive) Create(params *host.ActionParams, sub *substate.Substate) (uint64, error) {
	if params.Code == nil {
		panic("exec: Create called without init code")
	}
	return e.run(params, sub, host.InitContractPolicy())
}

// run performs the pre-execution bookkeeping common to Call and Create:
// checkpoint, value transfer, account materialization, then hands off to
// the CodeRunner via a freshly constructed Host. Any error reverts the
// checkpoint and consumes all gas, matching the teacher's
// "revert on error, gasLeft = 0" rule; ErrExecutionReverted-equivalents
// are not modeled here since the Host's RETURN path has no REVERT
// opcode counterpart.
func (e *Executive) run(params *host.ActionParams, sub *substate.Substate, outputPolicy host.OutputPolicy) (uint64, error) {
	snapshot := e.state.Snapshot()

	if err := e.applyValue(params); err != nil {
		e.state.RevertToSnapshot(snapshot)
		return 0, err
	}

	if !e.state.Exists(params.Address) {
		e.state.CreateAccount(params.Address)
	}

	if len(params.Code) == 0 {
		// No code to run: the frame succeeds trivially with all its gas
		// unspent and no RETURN disposition to apply.
		return params.Gas, nil
	}

	h := host.New(e.state, e.env, e.engine, sub, params, outputPolicy, e.depth, e.factory)

	gasRemaining, err := e.runner(params, h)
	if err != nil {
		e.log.Debug("frame failed", "address", params.Address, "error", err)
		e.state.RevertToSnapshot(snapshot)
		return 0, err
	}
	return gasRemaining, nil
}

func (e *Executive) applyValue(params *host.ActionParams) error {
	if params.Value.Kind != host.Transferred {
		return nil
	}
	amount := params.Value.Word
	if amount == nil || amount.Sign() == 0 {
		return nil
	}
	if e.state.Balance(params.Sender).Cmp(amount) < 0 {
		return ErrInsufficientBalance
	}
	e.state.SubBalance(params.Sender, amount)
	e.state.AddBalance(params.Address, amount)
	return nil
}

func (e *Executive) runner(params *host.ActionParams, h *host.Host) (uint64, error) {
	return e.factory.runner(h, params.Gas, params.Code, params.Data)
}

var _ host.Executive = (*Executive)(nil)
var _ host.ExecutiveFactory = (*Factory)(nil)
