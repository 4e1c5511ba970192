package fsm

// matchResult records what the match phase (spec.md §4.4.1) found: the
// transition itself, the state that owns it (for catch lookup), and the
// nest depth the match is treated as having occurred at (0 for an
// any-state match, per spec.md §4.4.1).
type matchResult struct {
	t     *transition
	owner *stateNode
	depth int
}

// findMatch walks the active nest outermost to innermost, stopping at the
// first depth that has a matching transition — so the match actually
// reported is the one found at the innermost depth reached, since deeper
// depths are only examined once every shallower depth has failed to match.
// If no depth in the nest matches, the any-state's transitions (if any) are
// tried as a fallback, treated as depth 0.
func (m *Machine) findMatch(c *Cursor, event EventID, ctx Context, msg Message) (matchResult, bool) {
	for d := 0; d <= c.nestDepth; d++ {
		node := m.state(c.stateAt(d))
		if node == nil {
			return matchResult{}, false
		}

		for t := range node.transitions.Iter() {
			if t.matches(event, ctx, msg) {
				return matchResult{t: t, owner: node, depth: d}, true
			}
		}
	}

	if m.anyState != nil {
		for t := range m.anyState.transitions.Iter() {
			if t.matches(event, ctx, msg) {
				return matchResult{t: t, owner: m.anyState, depth: 0}, true
			}
		}
	}

	return matchResult{}, false
}

// runActions runs a normal transition's actions in order until one returns
// false or the list is exhausted.
func runActions(t *transition, ctx Context, msg Message) bool {
	for a := range t.actions.Iter() {
		if a == nil {
			continue
		}

		if !safeAction(a, ctx, msg) {
			return false
		}
	}

	return true
}

// runCatchActions runs every action of a catch transition, ignoring their
// return values (spec.md §4.1: "their return values are ignored").
func runCatchActions(t *transition, ctx Context, msg Message) {
	for a := range t.actions.Iter() {
		if a == nil {
			continue
		}

		safeAction(a, ctx, msg)
	}
}

// Execute drives cursor c through machine m in response to event, per
// spec.md §4.4. ctx and msg are opaque and passed through unchanged to every
// guard, action, and hook invoked during this call. Execute never
// allocates: the nest it walks is the cursor's fixed-size array.
func Execute(m *Machine, c *Cursor, event EventID, ctx Context, msg Message) ExecutionResult {
	if event == Catch {
		return NoTransition
	}

	match, found := m.findMatch(c, event, ctx, msg)
	if !found {
		return NoTransition
	}

	target := match.t.target
	isSub := match.t.isSub
	matchDepth := match.depth

	if runActions(match.t, ctx, msg) {
		if target == Same {
			return NoChange
		}
	} else {
		catch := match.owner.catch
		if catch == nil {
			return ActionFailure
		}

		runCatchActions(catch, ctx, msg)

		target = catch.target
		isSub = false
	}

	return m.applyStateChange(c, ctx, target, matchDepth, isSub)
}

// applyStateChange performs the exit protocol, then the entry protocol
// (spec.md §4.4.3), mutating c in place.
func (m *Machine) applyStateChange(c *Cursor, ctx Context, target StateID, matchDepth int, isSub bool) ExecutionResult {
	c.previous = c.stateAt(c.nestDepth)

	if isSub {
		if c.nestDepth+1 >= MaxNestDepth {
			return InternalFailure
		}

		c.nestDepth++
	} else {
		for d := c.nestDepth; d >= matchDepth; d-- {
			if node := m.state(c.stateAt(d)); node != nil && node.exit != nil {
				safeHook(node.exit, ctx)
			}
		}

		if target == Parent {
			if c.nestDepth > 0 {
				c.nestDepth--
			}
		} else {
			c.nestDepth = matchDepth
		}
	}

	if target == Parent {
		return NewState
	}

	for {
		c.nest[c.nestDepth] = target

		node := m.state(target)
		if node != nil && node.entry != nil {
			safeHook(node.entry, ctx)
		}

		if node != nil && node.complex && node.initialSubtate != Same {
			if c.nestDepth+1 >= MaxNestDepth {
				return InternalFailure
			}

			c.nestDepth++
			target = node.initialSubtate

			continue
		}

		break
	}

	return NewState
}
