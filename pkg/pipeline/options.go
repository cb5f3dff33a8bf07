package pipeline

import (
	"github.com/mindgrove/mindgrove/pkg/errors"
	"github.com/mindgrove/mindgrove/pkg/layout"
	"github.com/mindgrove/mindgrove/pkg/view"
)

// VizType selects the visualization family.
type VizType string

const (
	// VizMap is the interactive mind-map rendering.
	VizMap VizType = "map"

	// VizDot is the graphviz node-link export.
	VizDot VizType = "dot"
)

// Format is an output artifact format.
type Format string

const (
	FormatSVG  Format = "svg"
	FormatPNG  Format = "png"
	FormatJSON Format = "json"
	FormatDOT  Format = "dot"
)

// SupportedFormats lists the valid formats per visualization type.
var SupportedFormats = map[VizType][]Format{
	VizMap: {FormatSVG, FormatPNG, FormatJSON},
	VizDot: {FormatDOT, FormatSVG, FormatPNG},
}

// Options configures one pipeline run.
type Options struct {
	// Viz selects the visualization family. Defaults to VizMap.
	Viz VizType

	// Formats are the artifacts to produce. Defaults to SVG.
	Formats []Format

	// Width and Height are the viewport size in pixels.
	Width  int
	Height int

	// Layout holds the card and spacing constants. Zero fields take defaults.
	Layout layout.Config

	// Transform is the viewport transform for map renders. A zero transform
	// means recenter on the root at the default scale.
	Transform view.Transform

	// Recenter forces recomputing the transform from the scene bounds even if
	// Transform is set.
	Recenter bool
}

// DefaultOptions returns a standard configuration.
func DefaultOptions() Options {
	return Options{
		Viz:     VizMap,
		Formats: []Format{FormatSVG},
		Width:   1280,
		Height:  800,
		Layout:  layout.DefaultConfig(),
	}
}

// Validate checks the options and fills defaults in place.
func (o *Options) Validate() error {
	if o.Viz == "" {
		o.Viz = VizMap
	}
	valid, ok := SupportedFormats[o.Viz]
	if !ok {
		return errors.New(errors.ErrCodeInvalidVizType, "unknown visualization type %q", o.Viz)
	}

	if len(o.Formats) == 0 {
		o.Formats = []Format{valid[0]}
	}
	for _, f := range o.Formats {
		if !formatValid(valid, f) {
			return errors.New(errors.ErrCodeInvalidFormat,
				"format %q is not supported for %q visualizations", f, o.Viz)
		}
	}

	if o.Width <= 0 {
		o.Width = 1280
	}
	if o.Height <= 0 {
		o.Height = 800
	}
	return nil
}

func formatValid(valid []Format, f Format) bool {
	for _, v := range valid {
		if v == f {
			return true
		}
	}
	return false
}
