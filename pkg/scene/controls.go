package scene

// ControlRadius is the hit radius of a card's circular controls, in scene
// units. The renderer draws controls at the same radius so hit geometry and
// drawn geometry cannot drift apart.
const ControlRadius = 10.0

// Control center offsets from the card corner they anchor to.
const (
	controlInsetX = 4.0
	controlInsetY = 4.0
)

// ExpandCenter returns the center of the expand control, anchored at the
// card's top-right corner.
func (s Scene) ExpandCenter(n PlacedNode) (x, y float64) {
	return n.X + s.Card.CardWidth - controlInsetX, n.Y + controlInsetY
}

// AddChildCenter returns the center of the add-child control, anchored at
// the card's bottom-right corner.
func (s Scene) AddChildCenter(n PlacedNode) (x, y float64) {
	return n.X + s.Card.CardWidth - controlInsetX, n.Y + s.Card.CardHeight - controlInsetY
}
