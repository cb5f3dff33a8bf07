package view

import (
	"testing"

	"github.com/mindgrove/mindgrove/pkg/layout"
	"github.com/mindgrove/mindgrove/pkg/scene"
	"github.com/mindgrove/mindgrove/pkg/tree"
)

func testScene(root *tree.Node) scene.Scene {
	cfg := layout.DefaultConfig()
	return scene.Build(layout.Layout(root, cfg, 0, 0), cfg)
}

func TestHitTestBody(t *testing.T) {
	s := testScene(&tree.Node{ID: "r", Label: "r"})
	n := s.Nodes[0]

	// Center of the card, well away from the controls.
	hit := HitTest(s, Identity(), n.X+s.Card.CardWidth/2, n.Y+s.Card.CardHeight/2)
	if hit.Kind != HitBody || hit.NodeID != "r" {
		t.Errorf("hit = %+v, want body r", hit)
	}
}

func TestHitTestBackground(t *testing.T) {
	s := testScene(&tree.Node{ID: "r", Label: "r"})
	hit := HitTest(s, Identity(), -500, -500)
	if hit.Kind != HitBackground || hit.NodeID != "" {
		t.Errorf("hit = %+v, want background", hit)
	}
}

func TestHitTestControlsBeforeBody(t *testing.T) {
	s := testScene(&tree.Node{ID: "r", Label: "r"})
	n := s.Nodes[0]

	ex, ey := s.ExpandCenter(n)
	if hit := HitTest(s, Identity(), ex, ey); hit.Kind != HitExpand {
		t.Errorf("expand center hit = %+v, want expand", hit)
	}
	ax, ay := s.AddChildCenter(n)
	if hit := HitTest(s, Identity(), ax, ay); hit.Kind != HitAddChild {
		t.Errorf("add-child center hit = %+v, want add-child", hit)
	}

	// Just inside the control radius still wins over the body.
	if hit := HitTest(s, Identity(), ex-scene.ControlRadius+0.5, ey); hit.Kind != HitExpand {
		t.Errorf("edge of expand control hit = %+v, want expand", hit)
	}
	// Just outside the radius but inside the card falls to the body.
	if hit := HitTest(s, Identity(), ex-scene.ControlRadius-1, ey+scene.ControlRadius+1); hit.Kind != HitBody {
		t.Errorf("outside control hit kind = %v, want body", HitTest(s, Identity(), ex-scene.ControlRadius-1, ey+scene.ControlRadius+1).Kind)
	}
}

func TestHitTestBusyExpandFallsThrough(t *testing.T) {
	s := testScene(&tree.Node{ID: "r", Label: "r", Busy: true})
	n := s.Nodes[0]

	ex, ey := s.ExpandCenter(n)
	hit := HitTest(s, Identity(), ex, ey)
	if hit.Kind != HitBackground || hit.NodeID != "" {
		t.Errorf("busy expand hit = %+v, want background", hit)
	}

	// The add-child control of a busy node stays interactive.
	ax, ay := s.AddChildCenter(n)
	if hit := HitTest(s, Identity(), ax, ay); hit.Kind != HitAddChild {
		t.Errorf("busy add-child hit = %+v, want add-child", hit)
	}
}

func TestHitTestTransformInvariance(t *testing.T) {
	s := testScene(&tree.Node{ID: "r", Label: "r", Children: []*tree.Node{
		{ID: "a", Label: "a", Children: []*tree.Node{{ID: "a1", Label: "a1"}}},
	}})
	n, _ := s.Node("a1")
	sceneX := n.X + s.Card.CardWidth/2
	sceneY := n.Y + s.Card.CardHeight/2

	transforms := []Transform{
		Identity(),
		{PanX: 250, PanY: -80, Scale: 1},
		{PanX: -40, PanY: 12, Scale: 0.3},
		{PanX: 500, PanY: 500, Scale: 3.5},
	}
	for _, tr := range transforms {
		sx, sy := tr.ToScreen(sceneX, sceneY)
		hit := HitTest(s, tr, sx, sy)
		if hit.Kind != HitBody || hit.NodeID != "a1" {
			t.Errorf("%+v: hit = %+v, want body a1", tr, hit)
		}
	}
}

func TestHitTestReverseOrderPrefersTopmost(t *testing.T) {
	// Two nodes forced onto the same spot by duplicate coordinates: build a
	// scene by hand where "under" is drawn first and "over" second.
	cfg := layout.DefaultConfig()
	s := scene.Scene{
		Nodes: []scene.PlacedNode{
			{ID: "under", X: 0, Y: 0},
			{ID: "over", X: 20, Y: 10},
		},
		Card: cfg,
	}

	// A point inside both cards resolves to the later-drawn node.
	hit := HitTest(s, Identity(), 60, 30)
	if hit.NodeID != "over" {
		t.Errorf("overlap hit = %+v, want over", hit)
	}
}

func TestHitKindString(t *testing.T) {
	tests := []struct {
		kind HitKind
		want string
	}{
		{HitBackground, "background"},
		{HitBody, "body"},
		{HitAddChild, "add-child"},
		{HitExpand, "expand"},
	}
	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.want {
			t.Errorf("String(%d) = %q, want %q", tt.kind, got, tt.want)
		}
	}
}
