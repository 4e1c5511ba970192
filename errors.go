package fsm

import "fmt"

// ErrInvalidStateID is recorded when a builder call is given a negative
// state id.
type ErrInvalidStateID struct {
	StateID StateID
}

func (e *ErrInvalidStateID) Error() string {
	return fmt.Sprintf("fsm: invalid state id %d: state ids must be non-negative", e.StateID)
}

// ErrDuplicateState is recorded when State/ComplexState is called with an
// id that already exists on the machine.
type ErrDuplicateState struct {
	StateID StateID
}

func (e *ErrDuplicateState) Error() string {
	return fmt.Sprintf("fsm: state %d already exists", e.StateID)
}

// ErrReservedEvent is recorded when a builder call attempts to use Catch as
// an application-level transition event.
type ErrReservedEvent struct {
	StateID StateID
}

func (e *ErrReservedEvent) Error() string {
	return fmt.Sprintf("fsm: state %d: Catch is reserved and cannot be used as a transition event", e.StateID)
}

// ErrInvalidTarget is recorded when a builder call attempts to target Any,
// or when OnSub is given a target other than a concrete state id.
type ErrInvalidTarget struct {
	StateID StateID
	Target  StateID
	Reason  string
}

func (e *ErrInvalidTarget) Error() string {
	return fmt.Sprintf("fsm: state %d: invalid transition target %d: %s", e.StateID, e.Target, e.Reason)
}

// safeGuard evaluates a Guard, converting a panic into a false result. Per
// spec.md §6 callbacks must not panic across the engine; this recovers
// defensively rather than trusting every caller-supplied guard to honor
// that, the same way the teacher's executeCallback recovers from a
// panicking Callback.
func safeGuard(g Guard, ctx Context, msg Message) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()

	return g(ctx, msg)
}

// safeAction evaluates an Action, converting a panic into a false result.
func safeAction(a Action, ctx Context, msg Message) (ok bool) {
	defer func() {
		if recover() != nil {
			ok = false
		}
	}()

	return a(ctx, msg)
}

// safeHook runs an entry/exit Hook, silently recovering from a panic. Hooks
// have no return value to signal failure with, so a panicking hook is
// simply swallowed after running.
func safeHook(h Hook, ctx Context) {
	defer func() {
		recover()
	}()

	h(ctx)
}
