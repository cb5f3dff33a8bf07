package scene

import (
	"strings"
	"testing"

	"github.com/mindgrove/mindgrove/pkg/layout"
	"github.com/mindgrove/mindgrove/pkg/tree"
)

func buildScene(root *tree.Node) Scene {
	cfg := layout.DefaultConfig()
	return Build(layout.Layout(root, cfg, 0, 0), cfg)
}

func node(id string, children ...*tree.Node) *tree.Node {
	return &tree.Node{ID: id, Label: id, Children: children}
}

func TestBuildPreOrder(t *testing.T) {
	s := buildScene(node("r", node("a", node("a1")), node("b")))

	var ids []string
	for _, n := range s.Nodes {
		ids = append(ids, n.ID)
	}
	if got := strings.Join(ids, ","); got != "r,a,a1,b" {
		t.Errorf("node order = %s, want r,a,a1,b", got)
	}
}

func TestBuildEdges(t *testing.T) {
	s := buildScene(node("r", node("a", node("a1")), node("b")))

	want := []Edge{
		{FromID: "r", ToID: "a", FromDepth: 0},
		{FromID: "a", ToID: "a1", FromDepth: 1},
		{FromID: "r", ToID: "b", FromDepth: 0},
	}
	if len(s.Edges) != len(want) {
		t.Fatalf("edges = %d, want %d", len(s.Edges), len(want))
	}
	for i, e := range want {
		if s.Edges[i] != e {
			t.Errorf("edge %d = %+v, want %+v", i, s.Edges[i], e)
		}
	}
}

func TestBuildEmpty(t *testing.T) {
	s := Build(nil, layout.DefaultConfig())
	if len(s.Nodes) != 0 || len(s.Edges) != 0 {
		t.Errorf("empty scene has %d nodes, %d edges", len(s.Nodes), len(s.Edges))
	}
	if _, ok := s.Root(); ok {
		t.Error("empty scene should have no root")
	}
}

func TestBuildDuplicateIDKeepsFirst(t *testing.T) {
	// "dup" appears as a child of both a and b; the second occurrence and its
	// subtree are dropped.
	root := node("r",
		node("a", node("dup", node("under-first"))),
		node("b", &tree.Node{ID: "dup", Label: "dup", Children: []*tree.Node{node("under-second")}}),
	)
	s := buildScene(root)

	count := 0
	for _, n := range s.Nodes {
		if n.ID == "dup" {
			count++
		}
	}
	if count != 1 {
		t.Fatalf("dup appears %d times, want 1", count)
	}

	if _, ok := s.Node("under-first"); !ok {
		t.Error("first occurrence's subtree missing")
	}
	if _, ok := s.Node("under-second"); ok {
		t.Error("second occurrence's subtree should be dropped")
	}
	for _, e := range s.Edges {
		if e.FromID == "b" && e.ToID == "dup" {
			t.Error("edge to dropped duplicate still present")
		}
	}
}

func TestRootAndNode(t *testing.T) {
	s := buildScene(node("r", node("a")))
	root, ok := s.Root()
	if !ok || root.ID != "r" {
		t.Errorf("Root = %+v ok=%v", root, ok)
	}
	if _, ok := s.Node("a"); !ok {
		t.Error("Node(a) not found")
	}
	if _, ok := s.Node("zzz"); ok {
		t.Error("Node(zzz) should not be found")
	}
}

func TestBounds(t *testing.T) {
	cfg := layout.DefaultConfig()
	s := buildScene(node("r", node("a"), node("b")))

	minX, minY, maxX, maxY := s.Bounds()
	if minY != 0 {
		t.Errorf("minY = %v, want 0", minY)
	}
	// Two level-1 children: band width is one step plus the final card.
	wantMaxX := cfg.CardWidth + cfg.HGap + cfg.CardWidth
	if maxX != wantMaxX {
		t.Errorf("maxX = %v, want %v", maxX, wantMaxX)
	}
	if maxY != cfg.LevelDrop+cfg.CardHeight {
		t.Errorf("maxY = %v, want %v", maxY, cfg.LevelDrop+cfg.CardHeight)
	}
	if minX != 0 {
		t.Errorf("minX = %v, want 0", minX)
	}
}

func TestMarshalRoundTrip(t *testing.T) {
	s := buildScene(node("r", node("a")))
	data, err := Marshal(s)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}
	got, err := Unmarshal(data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}
	if len(got.Nodes) != len(s.Nodes) || len(got.Edges) != len(s.Edges) {
		t.Errorf("round trip lost data: %d/%d nodes, %d/%d edges",
			len(got.Nodes), len(s.Nodes), len(got.Edges), len(s.Edges))
	}
	if got.Card.CardWidth != s.Card.CardWidth {
		t.Error("layout constants lost in round trip")
	}
}

func TestControlCenters(t *testing.T) {
	s := buildScene(node("r"))
	n := s.Nodes[0]

	ex, ey := s.ExpandCenter(n)
	if ex != n.X+s.Card.CardWidth-4 || ey != n.Y+4 {
		t.Errorf("ExpandCenter = (%v,%v)", ex, ey)
	}
	ax, ay := s.AddChildCenter(n)
	if ax != n.X+s.Card.CardWidth-4 || ay != n.Y+s.Card.CardHeight-4 {
		t.Errorf("AddChildCenter = (%v,%v)", ax, ay)
	}
}
