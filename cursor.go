package fsm

// Cursor is a per-object mutable state nest plus previous-state memory
// (spec.md §3). It is the only mutable artifact Execute writes to besides
// whatever the caller's callbacks mutate through Context. A Cursor must not
// be driven by more than one thread at a time; the fixed-size nest array
// means Execute never allocates.
type Cursor struct {
	nest      [MaxNestDepth]StateID
	nestDepth int
	previous  StateID
}

// SetStart initializes the cursor: nest depth 0, nest[0] = startStateID,
// previous state set to previousStateID.
func (c *Cursor) SetStart(startStateID, previousStateID StateID) {
	c.nest[0] = startStateID
	c.nestDepth = 0
	c.previous = previousStateID

	for i := 1; i < MaxNestDepth; i++ {
		c.nest[i] = Same
	}
}

// Current returns the innermost active state (nest[nestDepth]).
func (c *Cursor) Current() StateID {
	return c.nest[c.nestDepth]
}

// TopLevel returns the outermost active state (nest[0]).
func (c *Cursor) TopLevel() StateID {
	return c.nest[0]
}

// Previous returns the id of the most recently exited state.
func (c *Cursor) Previous() StateID {
	return c.previous
}

// Depth returns the current nest depth (0 if not nested).
func (c *Cursor) Depth() int {
	return c.nestDepth
}

// stateAt returns the active state id at nest depth d. Callers must ensure
// 0 <= d <= nestDepth.
func (c *Cursor) stateAt(d int) StateID {
	return c.nest[d]
}
