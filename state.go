package fsm

import "github.com/enetx/g"

// transition is attached to exactly one owning state. Insertion order into
// the owner's transition list is the evaluation order and is semantically
// significant: the first transition whose event id matches and whose
// guards all pass wins.
type transition struct {
	event   EventID
	guards  g.Slice[Guard]
	target  StateID
	isSub   bool
	actions g.Slice[Action]
}

// matches reports whether this transition fires for the given event: the
// event ids agree and every guard, evaluated in order, returns true.
func (t *transition) matches(event EventID, ctx Context, msg Message) bool {
	if t.event != event {
		return false
	}

	for guard := range t.guards.Iter() {
		if guard == nil {
			continue
		}

		if !safeGuard(guard, ctx, msg) {
			return false
		}
	}

	return true
}

// stateNode is the definition-side record for one state: its hooks, its
// complex/initial-substate bookkeeping, and its ordered transition list.
type stateNode struct {
	id    StateID
	entry Hook
	exit  Hook

	complex        bool
	initialSubtate StateID

	transitions g.Slice[*transition]
	catch       *transition // at most one, reserved event id Catch
}

func newStateNode(id StateID, entry, exit Hook) *stateNode {
	return &stateNode{
		id:             id,
		entry:          entry,
		exit:           exit,
		initialSubtate: Same,
		transitions:    g.NewSlice[*transition](),
	}
}
