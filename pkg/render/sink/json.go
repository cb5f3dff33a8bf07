package sink

import (
	"encoding/json"
	"fmt"

	"github.com/mindgrove/mindgrove/pkg/render"
	"github.com/mindgrove/mindgrove/pkg/view"
)

// JSON is a render.Sink that captures the resolved draw calls instead of
// drawing. The output is the complete render plan (frame, transform, edges,
// cards, labels, controls, in draw order) for frontends that do their own
// painting.
type JSON struct {
	frame jsonFrame
	open  bool
}

type jsonFrame struct {
	Width     int              `json:"width"`
	Height    int              `json:"height"`
	Transform view.Transform   `json:"transform"`
	Edges     []jsonEdge       `json:"edges"`
	Cards     []render.Card    `json:"cards"`
	Labels    []render.Label   `json:"labels"`
	Controls  []jsonControl    `json:"controls"`
}

type jsonEdge struct {
	render.EdgePath
	Style string `json:"kind_name"`
}

type jsonControl struct {
	render.Control
	Glyph string `json:"glyph"`
}

// NewJSON returns an empty JSON sink.
func NewJSON() *JSON {
	return &JSON{}
}

func (j *JSON) BeginFrame(width, height int, t view.Transform, p render.Palette) {
	j.frame = jsonFrame{Width: width, Height: height, Transform: t}
	j.open = true
}

func (j *JSON) DrawEdge(e render.EdgePath, st render.EdgeStyle) {
	name := "curve"
	if e.Kind == render.EdgeElbow {
		name = "elbow"
	}
	j.frame.Edges = append(j.frame.Edges, jsonEdge{EdgePath: e, Style: name})
}

func (j *JSON) DrawCard(c render.Card, st render.NodeStyle) {
	j.frame.Cards = append(j.frame.Cards, c)
}

func (j *JSON) DrawLabel(l render.Label, st render.NodeStyle) {
	j.frame.Labels = append(j.frame.Labels, l)
}

func (j *JSON) DrawControl(c render.Control, st render.NodeStyle) {
	glyph := glyphAdd
	if c.Kind == render.ControlExpand {
		glyph = glyphExpand
		if c.Spinning {
			glyph = glyphSpinner
		}
	}
	j.frame.Controls = append(j.frame.Controls, jsonControl{Control: c, Glyph: glyph})
}

func (j *JSON) EndFrame() ([]byte, error) {
	if !j.open {
		return nil, fmt.Errorf("json sink: EndFrame without BeginFrame")
	}
	j.open = false
	return json.MarshalIndent(j.frame, "", "  ")
}

var _ render.Sink = (*JSON)(nil)
