package scene

// Delta classifies the nodes and edges of a new scene against the previous
// one, keyed by node ID. A renderer uses it to animate only what changed: an
// entered node fades in at its new position, a persisted node slides from its
// old position to its new one, an exited node fades out where it was. A node
// that persists keeps its visual identity even though its PlacedNode value is
// rebuilt from scratch on every pass.
type Delta struct {
	Entered   []PlacedNode
	Persisted []Move
	Exited    []PlacedNode

	EnteredEdges []Edge
	ExitedEdges  []Edge
}

// Move records a persisted node's previous and current placement.
type Move struct {
	ID       string
	From, To PlacedNode
}

// Changed reports whether the delta contains any enter, move, or exit.
// A Move with identical From and To placement still counts as unchanged.
func (d Delta) Changed() bool {
	if len(d.Entered) > 0 || len(d.Exited) > 0 ||
		len(d.EnteredEdges) > 0 || len(d.ExitedEdges) > 0 {
		return true
	}
	for _, m := range d.Persisted {
		if m.From != m.To {
			return true
		}
	}
	return false
}

// Diff computes the keyed delta from old to new. Entered and Persisted follow
// the new scene's pre-order; Exited follows the old scene's pre-order.
func Diff(old, new Scene) Delta {
	var d Delta

	prev := make(map[string]PlacedNode, len(old.Nodes))
	for _, n := range old.Nodes {
		prev[n.ID] = n
	}
	next := make(map[string]struct{}, len(new.Nodes))
	for _, n := range new.Nodes {
		next[n.ID] = struct{}{}
	}

	for _, n := range new.Nodes {
		if before, ok := prev[n.ID]; ok {
			d.Persisted = append(d.Persisted, Move{ID: n.ID, From: before, To: n})
		} else {
			d.Entered = append(d.Entered, n)
		}
	}
	for _, n := range old.Nodes {
		if _, ok := next[n.ID]; !ok {
			d.Exited = append(d.Exited, n)
		}
	}

	prevEdges := make(map[Edge]struct{}, len(old.Edges))
	for _, e := range old.Edges {
		prevEdges[e] = struct{}{}
	}
	nextEdges := make(map[Edge]struct{}, len(new.Edges))
	for _, e := range new.Edges {
		nextEdges[e] = struct{}{}
		if _, ok := prevEdges[e]; !ok {
			d.EnteredEdges = append(d.EnteredEdges, e)
		}
	}
	for _, e := range old.Edges {
		if _, ok := nextEdges[e]; !ok {
			d.ExitedEdges = append(d.ExitedEdges, e)
		}
	}

	return d
}
