package fsm

import "github.com/enetx/g"

// Machine is the immutable-once-built graph of states, transitions, guards,
// and actions described by spec.md §3/§4.1. It owns a set of states keyed by
// id and at most one any-state. A Machine may be shared across many
// concurrently-executing objects provided each carries its own Cursor (§5);
// construction itself is not safe for concurrent use.
type Machine struct {
	states   g.Map[StateID, *stateNode]
	anyState *stateNode

	createErr  bool
	diagnostic g.Slice[error]
}

// NewMachine returns a fresh, empty machine definition with the sticky
// construction-error flag clear.
func NewMachine() *Machine {
	return &Machine{
		states:     g.NewMap[StateID, *stateNode](),
		diagnostic: g.NewSlice[error](),
	}
}

// HasCreateError reports the sticky construction-error flag. Clients should
// consult this after finishing construction; Execute on a machine with
// construction errors is undefined-but-safe — missing or malformed pieces
// are simply treated as non-matches.
func (m *Machine) HasCreateError() bool {
	return m.createErr
}

// CreateErrors returns the individual construction diagnostics accumulated
// so far, in the order they were recorded. This is additive to
// HasCreateError (spec.md's sticky boolean): it does not change what sets
// the flag, it just lets a caller see what was malformed and where.
func (m *Machine) CreateErrors() []error {
	return m.diagnostic.Clone()
}

func (m *Machine) fail(err error) {
	m.createErr = true
	m.diagnostic.Push(err)
}

// state resolves a state by id, nil if it does not exist. Sentinel ids
// never resolve.
func (m *Machine) state(id StateID) *stateNode {
	if id < 0 {
		return nil
	}

	return m.states.Get(id).UnwrapOrDefault()
}

// States returns the ids of every concrete (non-sentinel) state defined on
// the machine, in unspecified order. Intended for diagnostics and the
// graphviz exporter, which sort it for determinism.
func (m *Machine) States() g.Slice[StateID] {
	return m.states.Keys()
}
