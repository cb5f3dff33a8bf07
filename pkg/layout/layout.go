// Package layout assigns deterministic scene-space coordinates to every node
// of a mind-map tree.
//
// The placement policy is hybrid. Children of the root form a horizontal band
// read left to right, like top-level categories. Every deeper generation is
// stacked vertically with a fixed staircase indent, like a nested outline.
// This avoids both an unreadably wide horizontal tree and an unreadably tall
// pure-outline tree.
//
// Layout is a pure function of tree shape and the constants in [Config]: no
// state is held between passes, the input tree is only read, and the same
// tree always produces the same coordinates. Cards have a fixed footprint
// regardless of label length; label truncation is a rendering concern.
package layout

import "github.com/mindgrove/mindgrove/pkg/tree"

// Config holds the layout constants. All values are in scene units.
type Config struct {
	CardWidth  float64 `json:"card_width" toml:"card_width"`
	CardHeight float64 `json:"card_height" toml:"card_height"`

	// HGap separates level-1 siblings in the horizontal band.
	HGap float64 `json:"h_gap" toml:"h_gap"`

	// VGap separates vertically stacked sibling subtrees.
	VGap float64 `json:"v_gap" toml:"v_gap"`

	// LevelDrop is the vertical distance from the root row to level 1.
	LevelDrop float64 `json:"level_drop" toml:"level_drop"`

	// IndentStep is the fixed horizontal staircase offset per generation
	// below level 1. It does not grow with subtree size.
	IndentStep float64 `json:"indent_step" toml:"indent_step"`
}

// DefaultConfig returns the standard card and spacing constants.
func DefaultConfig() Config {
	return Config{
		CardWidth:  160,
		CardHeight: 44,
		HGap:       48,
		VGap:       24,
		LevelDrop:  120,
		IndentStep: 28,
	}
}

// sanitize fills zero-valued fields from the defaults so a partially
// populated Config (e.g. from a config file) still lays out sensibly.
func (c Config) sanitize() Config {
	def := DefaultConfig()
	if c.CardWidth <= 0 {
		c.CardWidth = def.CardWidth
	}
	if c.CardHeight <= 0 {
		c.CardHeight = def.CardHeight
	}
	if c.HGap <= 0 {
		c.HGap = def.HGap
	}
	if c.VGap <= 0 {
		c.VGap = def.VGap
	}
	if c.LevelDrop <= 0 {
		c.LevelDrop = def.LevelDrop
	}
	if c.IndentStep <= 0 {
		c.IndentStep = def.IndentStep
	}
	return c
}

// PositionedNode is one laid-out node. X and Y are the top-left corner of the
// node's card in scene space; the card footprint is Config.CardWidth by
// Config.CardHeight. PositionedNodes are created fresh on every layout pass
// and never mutated afterwards.
type PositionedNode struct {
	ID       string
	Label    string
	Busy     bool
	X, Y     float64
	Depth    int
	Children []*PositionedNode
}

// Extent returns the total vertical space the subtree rooted at n occupies
// under the staircase rule: a leaf occupies exactly the card height, a parent
// occupies its own card plus every child's extent plus one inter-sibling gap
// per child.
//
// A parent needs this bottom-up aggregate before it can place its second
// child, because each sibling's offset depends on the full height of the
// previous sibling's subtree, not just that sibling's own card.
func Extent(n *tree.Node, cfg Config) float64 {
	cfg = cfg.sanitize()
	return extent(n, cfg)
}

func extent(n *tree.Node, cfg Config) float64 {
	h := cfg.CardHeight
	for _, c := range n.Children {
		h += extent(c, cfg) + cfg.VGap
	}
	return h
}

// Layout computes coordinates for the whole tree with the root's card at
// (originX, originY). It is total over any finite tree; a nil root yields a
// nil result and a childless root yields a single positioned card.
func Layout(root *tree.Node, cfg Config, originX, originY float64) *PositionedNode {
	if root == nil {
		return nil
	}
	return place(root, 0, originX, originY, cfg.sanitize())
}

func place(n *tree.Node, depth int, x, y float64, cfg Config) *PositionedNode {
	p := &PositionedNode{
		ID:    n.ID,
		Label: n.Label,
		Busy:  n.Busy,
		X:     x,
		Y:     y,
		Depth: depth,
	}
	if len(n.Children) == 0 {
		return p
	}
	p.Children = make([]*PositionedNode, 0, len(n.Children))

	if depth == 0 {
		// Horizontal band: level-1 children side by side, each subtree laid
		// out below its child with the vertical rule.
		childX := x
		childY := y + cfg.LevelDrop
		for _, c := range n.Children {
			p.Children = append(p.Children, place(c, 1, childX, childY, cfg))
			childX += cfg.CardWidth + cfg.HGap
		}
		// Center the root over its band. This must run after the children
		// are placed. The midpoint uses the first and last child only, so it
		// differs from the mean of all children when the band is uneven.
		first := p.Children[0]
		last := p.Children[len(p.Children)-1]
		p.X = (first.X + last.X) / 2
		return p
	}

	// Staircase: children indented a fixed step and stacked by the previous
	// sibling's full extent.
	childX := x + cfg.IndentStep
	childY := y + cfg.CardHeight + cfg.VGap
	for _, c := range n.Children {
		p.Children = append(p.Children, place(c, depth+1, childX, childY, cfg))
		childY += extent(c, cfg) + cfg.VGap
	}
	return p
}

// Count returns the number of positioned nodes in the subtree rooted at p.
func Count(p *PositionedNode) int {
	if p == nil {
		return 0
	}
	total := 1
	for _, c := range p.Children {
		total += Count(c)
	}
	return total
}
