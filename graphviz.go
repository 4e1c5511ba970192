package fsm

import (
	"github.com/enetx/g"
	"github.com/enetx/g/cmp"
)

// ToDOT renders the machine's static structure (not any cursor's live
// position — the definition is immutable and has no "current state" of its
// own) as a DOT language string, generalizing the teacher's flat-FSM
// exporter to hierarchical machines: complex states are drawn with a double
// border and a dotted edge to their initial substate, the any-state is a
// diamond, guarded edges are dashed with an open-diamond head, and catch
// edges are dashed gray and labelled CATCH.
func (m *Machine) ToDOT() g.String {
	b := g.NewBuilder()

	b.WriteString("digraph FSM {\n")
	b.WriteString("  rankdir=LR;\n")
	b.WriteString("  node [shape=circle, style=filled, fillcolor=\"#f8f8f8\", color=\"#444444\", fontname=\"Helvetica\"];\n")
	b.WriteString("  edge [fontname=\"Helvetica\", fontsize=10];\n\n")

	ids := m.sortedStateIDs()

	for id := range ids.Iter() {
		node := m.state(id)
		if node == nil {
			continue
		}

		writeStateNode(b, node)
	}

	for id := range ids.Iter() {
		node := m.state(id)
		if node == nil {
			continue
		}

		writeTransitions(b, node.id, node.transitions)

		if node.catch != nil {
			writeCatchEdge(b, node.id, node.catch)
		}
	}

	if m.anyState != nil {
		b.WriteString(g.Format("  \"ANY\" [shape=diamond, label=\"ANY\"];\n"))
		writeTransitions(b, Any, m.anyState.transitions)
	}

	b.WriteString("}\n")

	return b.String()
}

func writeStateNode(b *g.Builder, node *stateNode) {
	var attrs g.Slice[g.String]
	attrs.Push(g.Format("label=\"{}\"", node.id))

	if node.complex {
		attrs.Push("peripheries=2")
	}

	var tooltips g.Slice[g.String]

	if node.entry != nil {
		tooltips.Push("entry")
	}

	if node.exit != nil {
		tooltips.Push("exit")
	}

	if tooltips.NotEmpty() {
		attrs.Push(g.Format("tooltip=\"{}\"", tooltips.Join("\\n")))
	}

	b.WriteString(g.Format("  \"{}\" [{}];\n", node.id, attrs.Join(", ")))

	if node.complex && node.initialSubtate != Same {
		b.WriteString(g.Format(
			"  \"{}\" -> \"{}\" [style=dotted, label=\" initial\", arrowhead=empty];\n",
			node.id, node.initialSubtate,
		))
	}
}

func writeTransitions(b *g.Builder, from StateID, transitions g.Slice[*transition]) {
	grouped := g.NewMap[StateID, g.Slice[g.String]]()

	for t := range transitions.Iter() {
		label := g.Format("{}", t.event)
		if !t.guards.Empty() {
			label += " [guarded]"
		}

		if t.isSub {
			label += " (sub)"
		}

		grouped.Entry(t.target).
			AndModify(func(s *g.Slice[g.String]) { s.Push(label) }).
			OrInsert(g.SliceOf(label))
	}

	targets := grouped.Keys()
	targets.SortBy(cmp.Cmp)

	for target := range targets.Iter() {
		labels := grouped.Get(target).Some()

		var edge g.Slice[g.String]
		edge.Push(g.Format("label=\" {} \"", labels.Join("\\n")))

		if labels.Join("").Contains("[guarded]") {
			edge.Push("style=dashed", "arrowhead=odiamond")
		}

		b.WriteString(g.Format("  \"{}\" -> \"{}\" [{}];\n", from, target, edge.Join(", ")))
	}
}

func writeCatchEdge(b *g.Builder, from StateID, catch *transition) {
	b.WriteString(g.Format(
		"  \"{}\" -> \"{}\" [label=\" CATCH \", style=dashed, color=gray, arrowhead=diamond];\n",
		from, catch.target,
	))
}
