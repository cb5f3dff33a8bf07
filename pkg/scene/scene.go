// Package scene flattens a positioned tree into the renderable snapshot of
// one layout pass: a depth-first pre-order list of placed nodes plus the
// parent→child edges between them.
//
// Pre-order is the draw order (parents are drawn before their children so a
// child's card is never hidden under a parent's) and its reverse is the
// hit-test order. The same node order also provides stable keys for the
// reconciler in diff.go.
package scene

import (
	"encoding/json"

	"github.com/mindgrove/mindgrove/pkg/layout"
)

// PlacedNode is one node of a flattened scene. X and Y are the card's
// top-left corner in scene space.
type PlacedNode struct {
	ID    string  `json:"id" bson:"id"`
	Label string  `json:"label,omitempty" bson:"label,omitempty"`
	Busy  bool    `json:"busy,omitempty" bson:"busy,omitempty"`
	X     float64 `json:"x" bson:"x"`
	Y     float64 `json:"y" bson:"y"`
	Depth int     `json:"depth" bson:"depth"`
}

// Edge connects a parent card to a child card. FromDepth selects the edge's
// drawing style: 0 draws a curve, anything deeper draws an elbow.
type Edge struct {
	FromID    string `json:"from" bson:"from"`
	ToID      string `json:"to" bson:"to"`
	FromDepth int    `json:"from_depth" bson:"from_depth"`
}

// Scene is the flattened, positioned snapshot of the tree for one layout
// pass. Nodes are in depth-first pre-order. Card carries the layout constants
// the positions were computed with, so renderers and hit-testing agree on
// card footprints without re-deriving them.
type Scene struct {
	Nodes []PlacedNode  `json:"nodes" bson:"nodes"`
	Edges []Edge        `json:"edges" bson:"edges"`
	Card  layout.Config `json:"card" bson:"card"`
}

// Build flattens the positioned tree into a Scene.
//
// Children are visited in child order; that order is semantically meaningful
// and preserved for determinism and stable animation keys. A duplicate node
// ID is a caller contract violation: Build keeps the first occurrence in
// pre-order and silently drops later ones together with their subtrees and
// edges. This is documented as undefined-but-safe behavior, not a feature.
func Build(root *layout.PositionedNode, cfg layout.Config) Scene {
	s := Scene{Card: cfg}
	if root == nil {
		return s
	}
	seen := make(map[string]struct{})
	flatten(root, &s, seen)
	return s
}

func flatten(n *layout.PositionedNode, s *Scene, seen map[string]struct{}) {
	if _, dup := seen[n.ID]; dup {
		return
	}
	seen[n.ID] = struct{}{}
	s.Nodes = append(s.Nodes, PlacedNode{
		ID:    n.ID,
		Label: n.Label,
		Busy:  n.Busy,
		X:     n.X,
		Y:     n.Y,
		Depth: n.Depth,
	})
	for _, c := range n.Children {
		if _, dup := seen[c.ID]; dup {
			continue
		}
		s.Edges = append(s.Edges, Edge{FromID: n.ID, ToID: c.ID, FromDepth: n.Depth})
		flatten(c, s, seen)
	}
}

// Node returns the placed node with the given ID and whether it exists.
func (s Scene) Node(id string) (PlacedNode, bool) {
	for _, n := range s.Nodes {
		if n.ID == id {
			return n, true
		}
	}
	return PlacedNode{}, false
}

// Root returns the root node of the scene (the first node in pre-order) and
// whether the scene is non-empty.
func (s Scene) Root() (PlacedNode, bool) {
	if len(s.Nodes) == 0 {
		return PlacedNode{}, false
	}
	return s.Nodes[0], true
}

// Bounds returns the scene-space bounding box covering every card.
// An empty scene has a zero bounding box.
func (s Scene) Bounds() (minX, minY, maxX, maxY float64) {
	if len(s.Nodes) == 0 {
		return 0, 0, 0, 0
	}
	minX, minY = s.Nodes[0].X, s.Nodes[0].Y
	maxX, maxY = minX, minY
	for _, n := range s.Nodes {
		minX = min(minX, n.X)
		minY = min(minY, n.Y)
		maxX = max(maxX, n.X+s.Card.CardWidth)
		maxY = max(maxY, n.Y+s.Card.CardHeight)
	}
	return minX, minY, maxX, maxY
}

// MarshalJSON-friendly snapshot helpers.

// Marshal serializes the scene to indented JSON.
func Marshal(s Scene) ([]byte, error) {
	return json.MarshalIndent(s, "", "  ")
}

// Unmarshal deserializes a scene from JSON bytes.
func Unmarshal(data []byte) (Scene, error) {
	var s Scene
	if err := json.Unmarshal(data, &s); err != nil {
		return Scene{}, err
	}
	return s, nil
}
