package render

import (
	"fmt"
	"image/color"
)

// NodeStyle is the visual style of one depth band.
type NodeStyle struct {
	Fill   color.RGBA
	Stroke color.RGBA
	Text   color.RGBA
}

// EdgeStyle is the stroke used for a connector.
type EdgeStyle struct {
	Stroke color.RGBA
	Width  float64
}

// Palette maps depth to style. Depths beyond the last level reuse the last
// entry; the lookup key is min(depth, len(Levels)-1). The palette is a
// cosmetic table, not an algorithm; any palette works as long as depth 0 and
// depth 1 read differently from depth 2 and beyond.
type Palette struct {
	Background color.RGBA
	Levels     []NodeStyle
	Edges      []EdgeStyle
}

// DefaultPalette is a dark theme with a distinct root, warm level-1 bands,
// and muted deeper levels.
func DefaultPalette() Palette {
	return Palette{
		Background: color.RGBA{0x1e, 0x1e, 0x2e, 0xff},
		Levels: []NodeStyle{
			{ // depth 0: root
				Fill:   color.RGBA{0xbd, 0x93, 0xf9, 0xff},
				Stroke: color.RGBA{0xf8, 0xf8, 0xf2, 0xff},
				Text:   color.RGBA{0x1e, 0x1e, 0x2e, 0xff},
			},
			{ // depth 1: branch heads
				Fill:   color.RGBA{0x8b, 0xe9, 0xfd, 0xff},
				Stroke: color.RGBA{0x6b, 0x80, 0xbf, 0xff},
				Text:   color.RGBA{0x1e, 0x1e, 0x2e, 0xff},
			},
			{ // depth 2+: outline entries
				Fill:   color.RGBA{0x2a, 0x2a, 0x3e, 0xff},
				Stroke: color.RGBA{0x62, 0x72, 0xa4, 0xff},
				Text:   color.RGBA{0xf8, 0xf8, 0xf2, 0xff},
			},
		},
		Edges: []EdgeStyle{
			{Stroke: color.RGBA{0xbd, 0x93, 0xf9, 0xa0}, Width: 2.5},
			{Stroke: color.RGBA{0x6b, 0x80, 0xbf, 0x80}, Width: 1.5},
		},
	}
}

// Node returns the style for a depth, clamped to the last level.
func (p Palette) Node(depth int) NodeStyle {
	if len(p.Levels) == 0 {
		return NodeStyle{}
	}
	if depth >= len(p.Levels) {
		depth = len(p.Levels) - 1
	}
	if depth < 0 {
		depth = 0
	}
	return p.Levels[depth]
}

// Edge returns the stroke for a source depth, clamped to the last entry.
func (p Palette) Edge(fromDepth int) EdgeStyle {
	if len(p.Edges) == 0 {
		return EdgeStyle{Width: 1}
	}
	if fromDepth >= len(p.Edges) {
		fromDepth = len(p.Edges) - 1
	}
	if fromDepth < 0 {
		fromDepth = 0
	}
	return p.Edges[fromDepth]
}

// CSS formats a color as a CSS rgba() value for the SVG sink.
func CSS(c color.RGBA) string {
	return fmt.Sprintf("rgba(%d,%d,%d,%.3f)", c.R, c.G, c.B, float64(c.A)/255)
}
