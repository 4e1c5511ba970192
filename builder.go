package fsm

import "github.com/enetx/g"

// StateHandle is returned by the state-creation builder calls and is the
// receiver for attaching transitions. It is a thin view over the owning
// Machine's internal state record.
type StateHandle struct {
	m    *Machine
	node *stateNode // nil if the creation call itself failed
}

// ID returns the id this handle refers to, or Same if creation failed.
func (h *StateHandle) ID() StateID {
	if h.node == nil {
		return Same
	}

	return h.node.id
}

// valid reports whether this handle wraps a real state node.
func (h *StateHandle) valid() bool {
	return h != nil && h.node != nil
}

// State creates a new simple state. Fails (sets the construction-error
// flag and returns an invalid handle) if id is negative, if a state with
// this id already exists, or if id is a reserved sentinel.
func (m *Machine) State(id StateID, entry, exit Hook) *StateHandle {
	return m.createState(id, Same, false, entry, exit)
}

// ComplexState creates a new state that may host substates. initialSubstate
// is entered automatically whenever this state is entered via a normal
// (non-PARENT) transition; it may be Same to disable automatic descent. The
// substate id is not validated against the machine at build time —
// resolution is deferred to Execute.
func (m *Machine) ComplexState(id StateID, initialSubstate StateID, entry, exit Hook) *StateHandle {
	return m.createState(id, initialSubstate, true, entry, exit)
}

func (m *Machine) createState(id, initialSubstate StateID, complex bool, entry, exit Hook) *StateHandle {
	if id < 0 {
		m.fail(&ErrInvalidStateID{StateID: id})
		return &StateHandle{m: m}
	}

	if m.states.Contains(id) {
		m.fail(&ErrDuplicateState{StateID: id})
		return &StateHandle{m: m}
	}

	node := newStateNode(id, entry, exit)
	node.complex = complex
	node.initialSubtate = initialSubstate

	m.states.Entry(id).OrInsert(node)

	return &StateHandle{m: m, node: node}
}

// AnyStateHandle is the builder handle for the synthetic any-state. It
// deliberately does not expose OnSub: per spec.md §9, a sub-transition on
// the any-state is not meaningfully defined and is forbidden at build time
// by simply never offering the method.
type AnyStateHandle struct {
	m    *Machine
	node *stateNode
}

// AnyState returns the machine's any-state handle, creating it on first
// call. A machine has at most one any-state; subsequent calls return the
// existing handle.
func (m *Machine) AnyState() *AnyStateHandle {
	if m.anyState == nil {
		m.anyState = newStateNode(Any, nil, nil)
	}

	return &AnyStateHandle{m: m, node: m.anyState}
}

// On attaches a normal transition to the any-state: considered only if no
// transition in the active nest matched the event (spec.md §4.4.1).
func (h *AnyStateHandle) On(event EventID, guard Guard, target StateID, actions ...Action) *AnyStateHandle {
	h.m.addTransition(h.node, event, guardSlice(guard), target, false, actions)
	return h
}

// OnMulti is On with more than one guard, all of which must pass.
func (h *AnyStateHandle) OnMulti(event EventID, guards []Guard, target StateID, actions ...Action) *AnyStateHandle {
	h.m.addTransition(h.node, event, g.SliceOf(guards...), target, false, actions)
	return h
}

// Catch creates the any-state's single catch transition, adopted when an
// any-state match's actions fail. Fails silently if one already exists,
// the same as StateHandle.Catch.
func (h *AnyStateHandle) Catch(target StateID, actions ...Action) *AnyStateHandle {
	if h.node.catch != nil {
		return h
	}

	h.node.catch = &transition{
		event:   Catch,
		target:  target,
		actions: g.SliceOf(actions...),
	}

	return h
}

// On attaches a normal transition: fires when event matches and every guard
// (0 or 1 here; see OnMulti for more) returns true. Rejected — the
// construction-error flag is set and the call is a no-op — if event is
// Catch or target is Any.
func (h *StateHandle) On(event EventID, guard Guard, target StateID, actions ...Action) *StateHandle {
	if !h.valid() {
		return h
	}

	h.m.addTransition(h.node, event, guardSlice(guard), target, false, actions)

	return h
}

// OnMulti is On but accepts any number of guards, all of which must
// evaluate true for the transition to proceed.
func (h *StateHandle) OnMulti(event EventID, guards []Guard, target StateID, actions ...Action) *StateHandle {
	if !h.valid() {
		return h
	}

	h.m.addTransition(h.node, event, g.SliceOf(guards...), target, false, actions)

	return h
}

// OnSub is identical to On except the resulting transition is flagged as a
// sub-transition: firing it nests target inside the owning state instead of
// replacing it. target must be a concrete state id (spec.md §9); Same and
// Parent are rejected at build time.
func (h *StateHandle) OnSub(event EventID, guard Guard, target StateID, actions ...Action) *StateHandle {
	if !h.valid() {
		return h
	}

	if target < 0 {
		h.m.fail(&ErrInvalidTarget{StateID: h.node.id, Target: target, Reason: "sub-transitions must target a concrete state"})
		return h
	}

	h.m.addTransition(h.node, event, guardSlice(guard), target, true, actions)

	return h
}

// Catch creates the state's single catch transition, fired when a normal
// transition's actions fail. Fails silently (without setting the
// construction-error flag, matching the source's observed behavior — see
// DESIGN.md) if this state already has one.
func (h *StateHandle) Catch(target StateID, actions ...Action) *StateHandle {
	if !h.valid() {
		return h
	}

	if h.node.catch != nil {
		return h
	}

	h.node.catch = &transition{
		event:   Catch,
		target:  target,
		actions: g.SliceOf(actions...),
	}

	return h
}

// addTransition validates and appends a normal transition to owner's list,
// or the any-state's list. Insertion order is preserved (g.Slice.Push
// appends).
func (m *Machine) addTransition(owner *stateNode, event EventID, guards g.Slice[Guard], target StateID, isSub bool, actions []Action) {
	if event == Catch {
		m.fail(&ErrReservedEvent{StateID: owner.id})
		return
	}

	if target == Any {
		m.fail(&ErrInvalidTarget{StateID: owner.id, Target: target, Reason: "Any cannot be a transition target"})
		return
	}

	t := &transition{
		event:   event,
		guards:  guards,
		target:  target,
		isSub:   isSub,
		actions: g.SliceOf(actions...),
	}

	owner.transitions.Push(t)
}

func guardSlice(guard Guard) g.Slice[Guard] {
	if guard == nil {
		return g.NewSlice[Guard]()
	}

	return g.SliceOf(guard)
}
