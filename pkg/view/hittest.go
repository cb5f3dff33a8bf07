package view

import "github.com/mindgrove/mindgrove/pkg/scene"

// HitKind identifies what a pointer event resolved to.
type HitKind int

// Hit target kinds, from least to most specific.
const (
	HitBackground HitKind = iota
	HitBody
	HitAddChild
	HitExpand
)

// String returns the kind's wire name, used by the HTTP hit endpoint.
func (k HitKind) String() string {
	switch k {
	case HitBody:
		return "body"
	case HitAddChild:
		return "add-child"
	case HitExpand:
		return "expand"
	default:
		return "background"
	}
}

// Hit is the result of resolving a pointer event. NodeID is empty for
// HitBackground.
type Hit struct {
	Kind   HitKind `json:"kind"`
	NodeID string  `json:"node_id,omitempty"`
}

// HitTest resolves a screen-space pointer position against the scene under
// the given transform.
//
// The point is converted to scene space through the inverse transform, then
// tested against nodes in reverse scene order, topmost-drawn node first,
// so where cards overlap, input goes to whatever the user actually sees on
// top. For each node the two circular controls are tested before the card
// body, so a control click near the card edge wins over the body. The first
// match is returned; no match resolves to the background.
//
// A busy node's expand control is not interactive: a click inside it falls
// through to the background rather than resolving to HitExpand or HitBody.
func HitTest(s scene.Scene, t Transform, screenX, screenY float64) Hit {
	x, y := t.ToScene(screenX, screenY)

	for i := len(s.Nodes) - 1; i >= 0; i-- {
		n := s.Nodes[i]

		if ax, ay := s.AddChildCenter(n); inCircle(x, y, ax, ay, scene.ControlRadius) {
			return Hit{Kind: HitAddChild, NodeID: n.ID}
		}
		if ex, ey := s.ExpandCenter(n); inCircle(x, y, ex, ey, scene.ControlRadius) {
			if n.Busy {
				return Hit{Kind: HitBackground}
			}
			return Hit{Kind: HitExpand, NodeID: n.ID}
		}
		if x >= n.X && x <= n.X+s.Card.CardWidth &&
			y >= n.Y && y <= n.Y+s.Card.CardHeight {
			return Hit{Kind: HitBody, NodeID: n.ID}
		}
	}
	return Hit{Kind: HitBackground}
}

func inCircle(x, y, cx, cy, r float64) bool {
	dx, dy := x-cx, y-cy
	return dx*dx+dy*dy <= r*r
}
