package cli

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mindgrove/mindgrove/pkg/render"
	"github.com/mindgrove/mindgrove/pkg/view"
)

// termCell is one character cell of the viewer canvas.
type termCell struct {
	ch    rune
	style lipgloss.Style
}

// termSink renders a frame into a grid of terminal cells. It implements
// render.Sink with one scene unit mapped to one cell via the viewport
// transform, so the interactive viewer reuses the exact same frame
// orchestration and draw order as the SVG and PNG backends.
type termSink struct {
	w, h     int
	t        view.Transform
	cells    [][]termCell
	selected string // node ID to highlight, empty for none
}

func newTermSink(selected string) *termSink {
	return &termSink{selected: selected}
}

var (
	termEdgeStyle    = lipgloss.NewStyle().Foreground(colorDim)
	termCardStyle    = lipgloss.NewStyle().Foreground(colorCyan)
	termCardSelStyle = lipgloss.NewStyle().Foreground(colorYellow).Bold(true)
	termLabelStyle   = lipgloss.NewStyle().Foreground(colorWhite)
	termControlStyle = lipgloss.NewStyle().Foreground(colorGreen)
	termBusyStyle    = lipgloss.NewStyle().Foreground(colorYellow)
)

// BeginFrame allocates the cell grid.
func (s *termSink) BeginFrame(width, height int, t view.Transform, p render.Palette) {
	s.w, s.h, s.t = width, height, t
	s.cells = make([][]termCell, height)
	for y := range s.cells {
		s.cells[y] = make([]termCell, width)
		for x := range s.cells[y] {
			s.cells[y][x] = termCell{ch: ' '}
		}
	}
}

// set writes one cell if it is inside the grid.
func (s *termSink) set(x, y int, ch rune, style lipgloss.Style) {
	if x < 0 || y < 0 || x >= s.w || y >= s.h {
		return
	}
	s.cells[y][x] = termCell{ch: ch, style: style}
}

// toCell maps a scene point to grid coordinates.
func (s *termSink) toCell(x, y float64) (int, int) {
	sx, sy := s.t.ToScreen(x, y)
	return int(sx), int(sy)
}

// DrawEdge draws connectors with box-drawing characters. The cubic curve is
// flattened to its elbow hull; at cell resolution the difference is invisible.
func (s *termSink) DrawEdge(e render.EdgePath, st render.EdgeStyle) {
	x1, y1 := s.toCell(e.X1, e.Y1)
	x2, y2 := s.toCell(e.X2, e.Y2)

	var bx, by int
	if e.Kind == render.EdgeElbow {
		bx, by = s.toCell(e.BendX, e.BendY)
	} else {
		bx, by = x1, y2
	}

	for y := minInt(y1, by) + 1; y < maxInt(y1, by); y++ {
		s.set(x1, y, '│', termEdgeStyle)
	}
	for x := minInt(bx, x2) + 1; x < maxInt(bx, x2); x++ {
		s.set(x, by, '─', termEdgeStyle)
	}
	if by != y1 {
		s.set(bx, by, '└', termEdgeStyle)
	}
}

// DrawCard draws the card border.
func (s *termSink) DrawCard(c render.Card, st render.NodeStyle) {
	x1, y1 := s.toCell(c.X, c.Y)
	x2, y2 := s.toCell(c.X+c.W, c.Y+c.H)
	if x2 <= x1 {
		x2 = x1 + 1
	}
	if y2 <= y1 {
		y2 = y1 + 1
	}

	style := termCardStyle
	if c.ID == s.selected {
		style = termCardSelStyle
	}

	for x := x1 + 1; x < x2; x++ {
		s.set(x, y1, '─', style)
		s.set(x, y2, '─', style)
	}
	for y := y1 + 1; y < y2; y++ {
		s.set(x1, y, '│', style)
		s.set(x2, y, '│', style)
	}
	s.set(x1, y1, '┌', style)
	s.set(x2, y1, '┐', style)
	s.set(x1, y2, '└', style)
	s.set(x2, y2, '┘', style)

	// Blank the interior so edges never show through a card.
	for y := y1 + 1; y < y2; y++ {
		for x := x1 + 1; x < x2; x++ {
			s.set(x, y, ' ', style)
		}
	}
}

// DrawLabel writes the label centered in the card row.
func (s *termSink) DrawLabel(l render.Label, st render.NodeStyle) {
	cx, cy := s.toCell(l.CX, l.CY)
	runes := []rune(l.Text)
	start := cx - len(runes)/2
	for i, r := range runes {
		s.set(start+i, cy, r, termLabelStyle)
	}
}

// DrawControl writes the control glyph.
func (s *termSink) DrawControl(c render.Control, st render.NodeStyle) {
	cx, cy := s.toCell(c.CX, c.CY)
	switch {
	case c.Spinning:
		s.set(cx, cy, '⟳', termBusyStyle)
	case c.Kind == render.ControlAddChild:
		s.set(cx, cy, '+', termControlStyle)
	default:
		s.set(cx, cy, '✦', termControlStyle)
	}
}

// EndFrame joins the grid into screen lines.
func (s *termSink) EndFrame() ([]byte, error) {
	var b strings.Builder
	for y, row := range s.cells {
		for _, c := range row {
			if c.ch == ' ' {
				b.WriteRune(' ')
				continue
			}
			b.WriteString(c.style.Render(string(c.ch)))
		}
		if y < len(s.cells)-1 {
			b.WriteByte('\n')
		}
	}
	return []byte(b.String()), nil
}

var _ render.Sink = (*termSink)(nil)

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}
