// Package render turns a scene and a viewport transform into a picture
// through a pluggable drawing sink.
//
// The drawing order is fixed: the sink opens a frame under the viewport's
// affine transform, every edge is drawn before any node so connectors appear
// to originate behind the cards, then each node in scene order draws its card
// body, its label, and its interactive controls on top. Two sink
// implementations ship in the sink subpackage, an SVG vector backend and a
// gg raster backend, plus a terminal-cell backend in the interactive viewer.
// The layout, scene, and hit-test packages are untouched by the choice of
// sink.
package render

import (
	"github.com/mindgrove/mindgrove/pkg/scene"
	"github.com/mindgrove/mindgrove/pkg/view"
)

// DefaultLabelBudget is the fixed rune budget for card labels. Labels never
// wrap or reflow; past the budget they are cut with an ellipsis.
const DefaultLabelBudget = 22

// EdgeKind selects how a connector is drawn.
type EdgeKind int

const (
	// EdgeCurve is a smooth cubic from the bottom-center of the source card
	// to the top-center of the target, bulging vertically. Used for
	// root→level-1 edges: it reads as branching outward.
	EdgeCurve EdgeKind = iota

	// EdgeElbow is an orthogonal connector: straight down from near the
	// source's bottom-left, then straight across to the vertical center of
	// the target's left edge. Used below level 1: it reads as nested under.
	EdgeElbow
)

// EdgePath is fully resolved edge geometry in scene space.
type EdgePath struct {
	Kind      EdgeKind
	FromDepth int

	// Endpoints.
	X1, Y1, X2, Y2 float64

	// Cubic control points, EdgeCurve only. Offsets from the endpoints are
	// purely vertical.
	C1X, C1Y, C2X, C2Y float64

	// Corner of the elbow, EdgeElbow only.
	BendX, BendY float64
}

// Card is the geometry of one node body.
type Card struct {
	ID         string
	X, Y, W, H float64
	Depth      int
	Busy       bool
}

// Label is a card's display text, pre-truncated, anchored at its center.
type Label struct {
	NodeID string
	Text   string
	CX, CY float64
	Depth  int
}

// ControlKind identifies one of the two per-card controls.
type ControlKind int

const (
	ControlAddChild ControlKind = iota
	ControlExpand
)

// Control is one circular interactive region on a card. Spinning is true for
// the expand control of a busy node; the sink draws it as a non-interactive
// spinner glyph instead of the normal clickable glyph.
type Control struct {
	NodeID   string
	Kind     ControlKind
	CX, CY   float64
	R        float64
	Depth    int
	Spinning bool
}

// Sink is the abstract drawing backend. Calls arrive in a fixed order:
// BeginFrame once, every DrawEdge, then per node (in scene order) DrawCard,
// DrawLabel, and its DrawControl calls, then EndFrame once. Coordinates are
// scene-space; the sink applies the transform given to BeginFrame.
type Sink interface {
	BeginFrame(width, height int, t view.Transform, p Palette)
	DrawEdge(e EdgePath, st EdgeStyle)
	DrawCard(c Card, st NodeStyle)
	DrawLabel(l Label, st NodeStyle)
	DrawControl(c Control, st NodeStyle)
	EndFrame() ([]byte, error)
}

// Frame renders the scene through the sink and returns the sink's output.
func Frame(s scene.Scene, t view.Transform, width, height int, p Palette, sink Sink) ([]byte, error) {
	sink.BeginFrame(width, height, t, p)

	byID := make(map[string]scene.PlacedNode, len(s.Nodes))
	for _, n := range s.Nodes {
		byID[n.ID] = n
	}

	for _, e := range s.Edges {
		from, okF := byID[e.FromID]
		to, okT := byID[e.ToID]
		if !okF || !okT {
			continue
		}
		sink.DrawEdge(edgePath(s, e, from, to), p.Edge(e.FromDepth))
	}

	for _, n := range s.Nodes {
		st := p.Node(n.Depth)
		sink.DrawCard(Card{
			ID: n.ID,
			X:  n.X, Y: n.Y,
			W: s.Card.CardWidth, H: s.Card.CardHeight,
			Depth: n.Depth,
			Busy:  n.Busy,
		}, st)
		sink.DrawLabel(Label{
			NodeID: n.ID,
			Text:   TruncateLabel(n.Label, DefaultLabelBudget),
			CX:     n.X + s.Card.CardWidth/2,
			CY:     n.Y + s.Card.CardHeight/2,
			Depth:  n.Depth,
		}, st)

		ax, ay := s.AddChildCenter(n)
		sink.DrawControl(Control{
			NodeID: n.ID, Kind: ControlAddChild,
			CX: ax, CY: ay, R: scene.ControlRadius,
			Depth: n.Depth,
		}, st)
		ex, ey := s.ExpandCenter(n)
		sink.DrawControl(Control{
			NodeID: n.ID, Kind: ControlExpand,
			CX: ex, CY: ey, R: scene.ControlRadius,
			Depth: n.Depth, Spinning: n.Busy,
		}, st)
	}

	return sink.EndFrame()
}

// edgePath resolves an edge's drawing geometry from the two cards it
// connects.
func edgePath(s scene.Scene, e scene.Edge, from, to scene.PlacedNode) EdgePath {
	w, h := s.Card.CardWidth, s.Card.CardHeight

	if e.FromDepth == 0 {
		x1, y1 := from.X+w/2, from.Y+h
		x2, y2 := to.X+w/2, to.Y
		bulge := (y2 - y1) / 2
		return EdgePath{
			Kind:      EdgeCurve,
			FromDepth: e.FromDepth,
			X1:        x1, Y1: y1, X2: x2, Y2: y2,
			C1X: x1, C1Y: y1 + bulge,
			C2X: x2, C2Y: y2 - bulge,
		}
	}

	// Elbow: drop from near the source's bottom-left, then across to the
	// middle of the target's left edge.
	x1 := from.X + s.Card.IndentStep/2
	y1 := from.Y + h
	x2 := to.X
	y2 := to.Y + h/2
	return EdgePath{
		Kind:      EdgeElbow,
		FromDepth: e.FromDepth,
		X1:        x1, Y1: y1, X2: x2, Y2: y2,
		BendX: x1, BendY: y2,
	}
}

// TruncateLabel cuts s to at most budget runes, marking the cut with an
// ellipsis. An empty label stays empty; the card still renders.
func TruncateLabel(s string, budget int) string {
	if budget <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= budget {
		return s
	}
	if budget == 1 {
		return "…"
	}
	return string(runes[:budget-1]) + "…"
}
