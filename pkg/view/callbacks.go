package view

// Callbacks maps resolved hits to logical requests on the tree. The engine
// never performs these operations itself; the owning collaborator decides
// what an edit, delete, add or expand means.
type Callbacks struct {
	// OnExpandRequested fires when the expand control of a non-busy node is
	// clicked.
	OnExpandRequested func(nodeID string)

	// OnAddChildRequested fires when the add-child control is clicked.
	OnAddChildRequested func(nodeID string)

	// OnEditRequested fires when a node body is clicked with the primary
	// gesture.
	OnEditRequested func(nodeID string)

	// OnDeleteRequested fires when a node body is clicked with the secondary
	// modifier or gesture.
	OnDeleteRequested func(nodeID string)
}

// Dispatch invokes the callback matching the hit. secondary selects the
// delete gesture for body hits. Background hits and nil callbacks are
// no-ops.
func (c Callbacks) Dispatch(h Hit, secondary bool) {
	switch h.Kind {
	case HitExpand:
		if c.OnExpandRequested != nil {
			c.OnExpandRequested(h.NodeID)
		}
	case HitAddChild:
		if c.OnAddChildRequested != nil {
			c.OnAddChildRequested(h.NodeID)
		}
	case HitBody:
		if secondary {
			if c.OnDeleteRequested != nil {
				c.OnDeleteRequested(h.NodeID)
			}
			return
		}
		if c.OnEditRequested != nil {
			c.OnEditRequested(h.NodeID)
		}
	}
}
