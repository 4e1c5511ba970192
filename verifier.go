package fsm

import (
	"github.com/enetx/g"
	"github.com/enetx/g/cmp"
)

// sortedStateIDs returns every concrete state id, sorted, for deterministic
// iteration. Map iteration order is otherwise unspecified; g.Slice.SortBy
// with g/cmp.Cmp is the teacher's own pattern for making ToDOT deterministic
// (graphviz.go), reused here for the same reason.
func (m *Machine) sortedStateIDs() g.Slice[StateID] {
	ids := m.states.Keys()
	ids.SortBy(cmp.Cmp)

	return ids
}

// allTransitions visits every transition on every concrete state, then the
// any-state's, in deterministic order — including each state's catch
// transition. The reference verifier walks one unified transition list per
// state and never special-cases the catch entry, so a catch target counts
// toward both the entered- and exited-state checks exactly like a normal
// transition's target does.
func (m *Machine) allTransitions(visit func(t *transition)) {
	for id := range m.sortedStateIDs().Iter() {
		node := m.state(id)
		if node == nil {
			continue
		}

		for t := range node.transitions.Iter() {
			visit(t)
		}

		if node.catch != nil {
			visit(node.catch)
		}
	}

	if m.anyState != nil {
		for t := range m.anyState.transitions.Iter() {
			visit(t)
		}

		if m.anyState.catch != nil {
			visit(m.anyState.catch)
		}
	}
}

// isEntered reports whether some transition anywhere targets stateID.
func (m *Machine) isEntered(stateID StateID) bool {
	entered := false

	m.allTransitions(func(t *transition) {
		if t.target == stateID {
			entered = true
		}
	})

	return entered
}

// isExited reports whether stateID has at least one transition — including
// its catch transition, if any — targeting a different id (neither itself
// nor Same; a Parent target counts as an exit).
func (m *Machine) isExited(stateID StateID) bool {
	node := m.state(stateID)
	if node == nil {
		return false
	}

	for t := range node.transitions.Iter() {
		if t.target != stateID && t.target != Same {
			return true
		}
	}

	if node.catch != nil && node.catch.target != stateID && node.catch.target != Same {
		return true
	}

	return false
}

// Verify performs two static passes (spec.md §4.2) and returns whether both
// passed:
//
//  1. Unentered states: every concrete state (Any excluded) must be the
//     target of at least one transition somewhere in the machine.
//  2. Unexited targets: every transition whose target is a concrete state
//     id requires that target state to have at least one transition to a
//     different id (anything but itself or Same). A state targeted by
//     several transitions is checked — and, if it fails, reported — once
//     per targeting transition,
//     matching the reference implementation's behavior.
//
// report is called once per finding with the offending state id and the
// kind of problem; sentinel ids are never reported on. Verify does not
// detect unreachable-due-to-guards states, cycles, or nesting misuse — it
// is a best-effort static check only, and is deterministic and
// side-effect-free.
func (m *Machine) Verify(report ReportFunc) bool {
	ok := true

	for id := range m.sortedStateIDs().Iter() {
		if id == Any {
			continue
		}

		if !m.isEntered(id) {
			ok = false

			if report != nil {
				report(id, NoEntry)
			}
		}
	}

	m.allTransitions(func(t *transition) {
		if t.target < 0 {
			return
		}

		if !m.isExited(t.target) {
			ok = false

			if report != nil {
				report(t.target, NoExit)
			}
		}
	})

	return ok
}
