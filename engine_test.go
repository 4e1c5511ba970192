package fsm_test

import (
	"testing"

	. "github.com/noru-labs/hfsm"
)

const (
	eIdle    StateID = 1
	eRinging StateID = 2
	eErr     StateID = 5
	eOrig    StateID = 6
	eDialA   StateID = 7
	eDialB   StateID = 8
	eTalk    StateID = 9
)

const (
	evStart   EventID = 10
	evAlt     EventID = 11
	evErrTone EventID = 12
	evMore    EventID = 13
	evDone    EventID = 14
)

func TestExecute_SimpleTransition(t *testing.T) {
	m := NewMachine()
	m.State(eIdle, nil, nil).On(evStart, nil, eRinging)
	m.State(eRinging, nil, nil)

	var c Cursor
	c.SetStart(eIdle, Same)

	result := Execute(m, &c, evStart, nil, nil)

	assertEqual(t, result, NewState)
	assertEqual(t, c.Current(), eRinging)
	assertEqual(t, c.Previous(), eIdle)
}

func TestExecute_GuardFiltersToAlternative(t *testing.T) {
	allow := false
	guardTrue := func(ctx Context, msg Message) bool { return allow }

	m := NewMachine()
	m.State(eIdle, nil, nil).
		On(evStart, guardTrue, eRinging).
		On(evStart, nil, eErr)
	m.State(eRinging, nil, nil)
	m.State(eErr, nil, nil)

	var c Cursor
	c.SetStart(eIdle, Same)

	result := Execute(m, &c, evStart, nil, nil)

	assertEqual(t, result, NewState)
	assertEqual(t, c.Current(), eErr)

	allow = true
	c.SetStart(eIdle, Same)
	result = Execute(m, &c, evStart, nil, nil)

	assertEqual(t, result, NewState)
	assertEqual(t, c.Current(), eRinging)
}

func TestExecute_ActionFailureAdoptsCatch(t *testing.T) {
	var failCalled, hangupCalled int

	fail := func(ctx Context, msg Message) bool {
		failCalled++
		return false
	}
	hangup := func(ctx Context, msg Message) bool {
		hangupCalled++
		return true
	}

	m := NewMachine()
	m.State(eIdle, nil, nil).
		On(evStart, nil, eRinging, fail).
		Catch(eErr, hangup)
	m.State(eRinging, nil, nil)
	m.State(eErr, nil, nil)

	var c Cursor
	c.SetStart(eIdle, Same)

	result := Execute(m, &c, evStart, nil, nil)

	assertEqual(t, result, NewState)
	assertEqual(t, c.Current(), eErr)
	assertEqual(t, failCalled, 1)
	assertEqual(t, hangupCalled, 1)
}

func TestExecute_ActionFailureNoCatchReturnsActionFailure(t *testing.T) {
	fail := func(ctx Context, msg Message) bool { return false }

	m := NewMachine()
	m.State(eIdle, nil, nil).On(evStart, nil, eRinging, fail)
	m.State(eRinging, nil, nil)

	var c Cursor
	c.SetStart(eIdle, Same)

	result := Execute(m, &c, evStart, nil, nil)

	assertEqual(t, result, ActionFailure)
	assertEqual(t, c.Current(), eIdle)
}

func TestExecute_AnyStateFallback(t *testing.T) {
	var idleCalled int
	idleAction := func(ctx Context, msg Message) bool {
		idleCalled++
		return true
	}

	m := NewMachine()
	m.State(eIdle, nil, nil)
	m.State(eErr, nil, nil)
	m.AnyState().On(evErrTone, nil, eErr, idleAction)

	var c Cursor
	c.SetStart(eIdle, Same)

	result := Execute(m, &c, evErrTone, nil, nil)

	assertEqual(t, result, NewState)
	assertEqual(t, c.Current(), eErr)
	assertEqual(t, idleCalled, 1)
}

func TestExecute_NoMatchIsNoTransition(t *testing.T) {
	m := NewMachine()
	m.State(eIdle, nil, nil)

	var c Cursor
	c.SetStart(eIdle, Same)

	result := Execute(m, &c, evStart, nil, nil)

	assertEqual(t, result, NoTransition)
	assertEqual(t, c.Current(), eIdle)
}

func TestExecute_CatchEventIsAlwaysNoTransition(t *testing.T) {
	m := NewMachine()
	m.State(eIdle, nil, nil).Catch(eErr)

	var c Cursor
	c.SetStart(eIdle, Same)

	result := Execute(m, &c, Catch, nil, nil)

	assertEqual(t, result, NoTransition)
}

func TestExecute_ComplexStateDescendsToInitialSubstate(t *testing.T) {
	var order []string

	entryHook := func(name string) Hook {
		return func(ctx Context) { order = append(order, "enter:"+name) }
	}
	exitHook := func(name string) Hook {
		return func(ctx Context) { order = append(order, "exit:"+name) }
	}

	m := NewMachine()
	m.State(eIdle, nil, exitHook("idle")).On(evStart, nil, eOrig)
	m.ComplexState(eOrig, eDialA, entryHook("orig"), nil)
	m.State(eDialA, entryHook("dialA"), nil)

	var c Cursor
	c.SetStart(eIdle, Same)

	result := Execute(m, &c, evStart, nil, nil)

	assertEqual(t, result, NewState)
	assertEqual(t, c.TopLevel(), eOrig)
	assertEqual(t, c.Current(), eDialA)
	assertEqual(t, c.Depth(), 1)
	assertEqual(t, len(order), 3)
	assertEqual(t, order[0], "exit:idle")
	assertEqual(t, order[1], "enter:orig")
	assertEqual(t, order[2], "enter:dialA")
}

const evEnterSub EventID = 15

func TestExecute_ParentTransitionBubblesAndExitsBothLevels(t *testing.T) {
	var exited []StateID
	exitRecorder := func(id StateID) Hook {
		return func(ctx Context) { exited = append(exited, id) }
	}

	m := NewMachine()
	m.ComplexState(eOrig, Same, nil, exitRecorder(eOrig)).
		OnSub(evEnterSub, nil, eDialA).
		On(evErrTone, nil, eIdle)
	m.State(eDialA, nil, exitRecorder(eDialA)).On(evMore, nil, eDialB)
	m.State(eDialB, nil, nil)
	m.State(eIdle, nil, nil)

	var c Cursor
	c.SetStart(eOrig, Same)
	Execute(m, &c, evEnterSub, nil, nil)
	assertEqual(t, c.Depth(), 1)
	assertEqual(t, c.Current(), eDialA)

	result := Execute(m, &c, evErrTone, nil, nil)

	assertEqual(t, result, NewState)
	assertEqual(t, c.Current(), eIdle)
	assertEqual(t, c.Depth(), 0)
	assertEqual(t, len(exited), 2)
	assertEqual(t, exited[0], eDialA)
	assertEqual(t, exited[1], eOrig)
}

func TestExecute_ExplicitParentReturn(t *testing.T) {
	var exited []StateID

	m := NewMachine()
	m.ComplexState(eOrig, Same, nil, nil).OnSub(evEnterSub, nil, eDialA)
	m.State(eDialA, nil, func(ctx Context) { exited = append(exited, eDialA) }).
		On(evDone, nil, Parent)

	var c Cursor
	c.SetStart(eOrig, Same)
	Execute(m, &c, evEnterSub, nil, nil)
	assertEqual(t, c.Depth(), 1)

	result := Execute(m, &c, evDone, nil, nil)

	assertEqual(t, result, NewState)
	assertEqual(t, c.Current(), eOrig)
	assertEqual(t, c.Depth(), 0)
	assertEqual(t, len(exited), 1)
	assertEqual(t, exited[0], eDialA)
}
