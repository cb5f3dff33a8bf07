// Package view owns the interaction side of the engine: the affine viewport
// transform between screen and scene space, hit-testing of pointer events
// against a scene, and the callback dispatch that turns a hit into a logical
// request on a node.
//
// A Transform is a plain value owned by the caller and passed into render and
// hit-test calls, so multiple independent views of the same tree cannot
// cross-talk through shared module state.
package view

import "github.com/mindgrove/mindgrove/pkg/scene"

// Zoom limits and defaults.
const (
	ScaleMin     = 0.1
	ScaleMax     = 4.0
	DefaultScale = 1.0

	// recenterTopMargin is the screen-space distance from the viewport top
	// to the root card after a recenter.
	recenterTopMargin = 40.0
)

// Transform is the affine viewport mapping between scene space and screen
// space: screen = scene*Scale + Pan. The zero value is usable (identity pan
// at zero scale is nonsensical, so use DefaultScale or Recenter).
type Transform struct {
	PanX  float64 `json:"pan_x" bson:"pan_x"`
	PanY  float64 `json:"pan_y" bson:"pan_y"`
	Scale float64 `json:"scale" bson:"scale"`
}

// Identity returns the default transform: no pan, default scale.
func Identity() Transform {
	return Transform{Scale: DefaultScale}
}

// ToScene converts a screen point to scene coordinates via the inverse
// transform.
func (t Transform) ToScene(screenX, screenY float64) (x, y float64) {
	s := t.effectiveScale()
	return (screenX - t.PanX) / s, (screenY - t.PanY) / s
}

// ToScreen converts a scene point to screen coordinates.
func (t Transform) ToScreen(x, y float64) (screenX, screenY float64) {
	s := t.effectiveScale()
	return x*s + t.PanX, y*s + t.PanY
}

// Pan returns a transform shifted by the given pointer delta, in screen
// pixels. This is the drag gesture.
func (t Transform) Pan(dx, dy float64) Transform {
	t.PanX += dx
	t.PanY += dy
	return t
}

// ZoomAt returns a transform whose scale is multiplied by factor, clamped to
// [ScaleMin, ScaleMax], anchored at the given screen point: the scene point
// under the pointer before the zoom is still under the pointer after it.
// Anchoring is why the pan must be recomputed alongside the scale.
func (t Transform) ZoomAt(screenX, screenY, factor float64) Transform {
	old := t.effectiveScale()
	next := clampScale(old * factor)
	if next == old {
		return t
	}
	// Keep the scene point (screen-pan)/old fixed under the pointer.
	t.PanX = screenX - (screenX-t.PanX)/old*next
	t.PanY = screenY - (screenY-t.PanY)/old*next
	t.Scale = next
	return t
}

// Recenter returns the transform that places the scene's root card
// horizontally centered and near the top of a viewport of the given pixel
// size, at scale. This is both the initial transform and the explicit
// "recenter" action. A surface resize does not touch the transform; only the
// pixel buffer is reallocated, so pan/zoom state survives resizes.
func Recenter(s scene.Scene, viewportW, viewportH, scale float64) Transform {
	t := Transform{Scale: clampScale(scale)}
	root, ok := s.Root()
	if !ok {
		return t
	}
	sc := t.Scale
	t.PanX = viewportW/2 - (root.X+s.Card.CardWidth/2)*sc
	t.PanY = recenterTopMargin - root.Y*sc
	return t
}

func (t Transform) effectiveScale() float64 {
	if t.Scale == 0 {
		return DefaultScale
	}
	return t.Scale
}

func clampScale(s float64) float64 {
	if s < ScaleMin {
		return ScaleMin
	}
	if s > ScaleMax {
		return ScaleMax
	}
	return s
}
