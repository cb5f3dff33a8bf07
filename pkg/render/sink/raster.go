package sink

import (
	"bytes"
	"fmt"

	"git.sr.ht/~sbinet/gg"

	"github.com/mindgrove/mindgrove/pkg/render"
	"github.com/mindgrove/mindgrove/pkg/view"
)

// Raster is a render.Sink painting into a pixel buffer and encoding it as
// PNG. The viewport transform becomes the context's translate+scale, so all
// draw calls stay in scene coordinates.
type Raster struct {
	dc *gg.Context
}

// NewRaster returns an empty raster sink.
func NewRaster() *Raster {
	return &Raster{}
}

// BeginFrame allocates the pixel buffer and applies the viewport transform.
// On a surface resize only this buffer changes; the transform handed in is
// whatever the caller preserved.
func (r *Raster) BeginFrame(width, height int, t view.Transform, p render.Palette) {
	r.dc = gg.NewContext(width, height)
	r.dc.SetColor(p.Background)
	r.dc.Clear()

	scale := t.Scale
	if scale == 0 {
		scale = view.DefaultScale
	}
	r.dc.Translate(t.PanX, t.PanY)
	r.dc.Scale(scale, scale)
}

// DrawEdge strokes one connector.
func (r *Raster) DrawEdge(e render.EdgePath, st render.EdgeStyle) {
	r.dc.SetColor(st.Stroke)
	r.dc.SetLineWidth(st.Width)
	switch e.Kind {
	case render.EdgeCurve:
		r.dc.MoveTo(e.X1, e.Y1)
		r.dc.CubicTo(e.C1X, e.C1Y, e.C2X, e.C2Y, e.X2, e.Y2)
	case render.EdgeElbow:
		r.dc.MoveTo(e.X1, e.Y1)
		r.dc.LineTo(e.BendX, e.BendY)
		r.dc.LineTo(e.X2, e.Y2)
	}
	r.dc.Stroke()
}

// DrawCard fills and strokes one rounded card body.
func (r *Raster) DrawCard(c render.Card, st render.NodeStyle) {
	r.dc.DrawRoundedRectangle(c.X, c.Y, c.W, c.H, 8)
	r.dc.SetColor(st.Fill)
	r.dc.FillPreserve()
	r.dc.SetColor(st.Stroke)
	r.dc.SetLineWidth(1.5)
	r.dc.Stroke()
}

// DrawLabel draws the centered label text.
func (r *Raster) DrawLabel(l render.Label, st render.NodeStyle) {
	if l.Text == "" {
		return
	}
	r.dc.SetColor(st.Text)
	r.dc.DrawStringAnchored(l.Text, l.CX, l.CY, 0.5, 0.5)
}

// DrawControl draws one circular control and its glyph.
func (r *Raster) DrawControl(c render.Control, st render.NodeStyle) {
	r.dc.DrawCircle(c.CX, c.CY, c.R)
	r.dc.SetColor(st.Stroke)
	r.dc.Fill()

	glyph := glyphAdd
	if c.Kind == render.ControlExpand {
		glyph = glyphExpand
		if c.Spinning {
			glyph = glyphSpinner
		}
	}
	r.dc.SetColor(st.Fill)
	r.dc.DrawStringAnchored(glyph, c.CX, c.CY, 0.5, 0.5)
}

// EndFrame encodes the buffer as PNG.
func (r *Raster) EndFrame() ([]byte, error) {
	if r.dc == nil {
		return nil, fmt.Errorf("raster sink: EndFrame without BeginFrame")
	}
	var buf bytes.Buffer
	if err := r.dc.EncodePNG(&buf); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	r.dc = nil
	return buf.Bytes(), nil
}

var _ render.Sink = (*Raster)(nil)
