// Package sink provides the built-in drawing backends for the renderer: a
// retained-mode SVG vector backend, an immediate-mode raster backend built on
// gg, and a JSON backend that captures the resolved draw calls for external
// frontends.
package sink

import (
	"bytes"
	"fmt"

	svg "github.com/ajstarks/svgo"

	"github.com/mindgrove/mindgrove/pkg/render"
	"github.com/mindgrove/mindgrove/pkg/view"
)

// Glyphs drawn inside the circular controls.
const (
	glyphAdd     = "+"
	glyphExpand  = "✦"
	glyphSpinner = "⟳"
)

// SVG is a render.Sink writing an SVG document. The viewport transform is
// applied as a single group transform around the scene content, so the
// document's coordinates stay in scene space and pan/zoom is one attribute.
type SVG struct {
	buf    bytes.Buffer
	canvas *svg.SVG
	open   bool
}

// NewSVG returns an empty SVG sink. A sink is single-use: one frame, one
// document.
func NewSVG() *SVG {
	return &SVG{}
}

// BeginFrame opens the document and the transformed scene group.
func (s *SVG) BeginFrame(width, height int, t view.Transform, p render.Palette) {
	s.buf.Reset()
	s.canvas = svg.New(&s.buf)
	s.canvas.Start(width, height)
	s.canvas.Rect(0, 0, width, height, "fill:"+render.CSS(p.Background))
	scale := t.Scale
	if scale == 0 {
		scale = view.DefaultScale
	}
	s.canvas.Gtransform(fmt.Sprintf("translate(%.2f,%.2f) scale(%.4f)", t.PanX, t.PanY, scale))
	s.open = true
}

// DrawEdge writes one connector path.
func (s *SVG) DrawEdge(e render.EdgePath, st render.EdgeStyle) {
	style := fmt.Sprintf("fill:none;stroke:%s;stroke-width:%.2f", render.CSS(st.Stroke), st.Width)
	switch e.Kind {
	case render.EdgeCurve:
		d := fmt.Sprintf("M %.2f %.2f C %.2f %.2f %.2f %.2f %.2f %.2f",
			e.X1, e.Y1, e.C1X, e.C1Y, e.C2X, e.C2Y, e.X2, e.Y2)
		s.canvas.Path(d, style)
	case render.EdgeElbow:
		d := fmt.Sprintf("M %.2f %.2f L %.2f %.2f L %.2f %.2f",
			e.X1, e.Y1, e.BendX, e.BendY, e.X2, e.Y2)
		s.canvas.Path(d, style)
	}
}

// DrawCard writes one rounded card body.
func (s *SVG) DrawCard(c render.Card, st render.NodeStyle) {
	style := fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1.5",
		render.CSS(st.Fill), render.CSS(st.Stroke))
	s.canvas.Roundrect(int(c.X), int(c.Y), int(c.W), int(c.H), 8, 8, style)
}

// DrawLabel writes the card's centered text.
func (s *SVG) DrawLabel(l render.Label, st render.NodeStyle) {
	if l.Text == "" {
		return
	}
	style := fmt.Sprintf(
		"fill:%s;font-family:sans-serif;font-size:13px;text-anchor:middle;dominant-baseline:central",
		render.CSS(st.Text))
	s.canvas.Text(int(l.CX), int(l.CY), l.Text, style)
}

// DrawControl writes one circular control and its glyph.
func (s *SVG) DrawControl(c render.Control, st render.NodeStyle) {
	circle := fmt.Sprintf("fill:%s;stroke:%s;stroke-width:1",
		render.CSS(st.Stroke), render.CSS(st.Fill))
	s.canvas.Circle(int(c.CX), int(c.CY), int(c.R), circle)

	glyph := glyphAdd
	if c.Kind == render.ControlExpand {
		glyph = glyphExpand
		if c.Spinning {
			glyph = glyphSpinner
		}
	}
	text := fmt.Sprintf(
		"fill:%s;font-family:sans-serif;font-size:11px;text-anchor:middle;dominant-baseline:central",
		render.CSS(st.Fill))
	s.canvas.Text(int(c.CX), int(c.CY), glyph, text)
}

// EndFrame closes the group and the document and returns the SVG bytes.
func (s *SVG) EndFrame() ([]byte, error) {
	if !s.open {
		return nil, fmt.Errorf("svg sink: EndFrame without BeginFrame")
	}
	s.canvas.Gend()
	s.canvas.End()
	s.open = false
	return s.buf.Bytes(), nil
}

var _ render.Sink = (*SVG)(nil)
