package layout

import (
	"math"
	"reflect"
	"testing"

	"github.com/mindgrove/mindgrove/pkg/tree"
)

func node(id string, children ...*tree.Node) *tree.Node {
	return &tree.Node{ID: id, Label: id, Children: children}
}

func approx(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestExtentLeaf(t *testing.T) {
	cfg := DefaultConfig()
	if got := Extent(node("x"), cfg); !approx(got, cfg.CardHeight) {
		t.Errorf("Extent(leaf) = %v, want %v", got, cfg.CardHeight)
	}
}

func TestExtentAggregates(t *testing.T) {
	cfg := DefaultConfig()
	n := node("p", node("a"), node("b", node("b1")))

	// p's card, plus a's extent and gap, plus b's extent and gap.
	wantB := cfg.CardHeight + cfg.CardHeight + cfg.VGap
	want := cfg.CardHeight + (cfg.CardHeight + cfg.VGap) + (wantB + cfg.VGap)
	if got := Extent(n, cfg); !approx(got, want) {
		t.Errorf("Extent = %v, want %v", got, want)
	}
}

func TestLayoutNilRoot(t *testing.T) {
	if Layout(nil, DefaultConfig(), 0, 0) != nil {
		t.Error("Layout(nil) should be nil")
	}
}

func TestLayoutChildlessRoot(t *testing.T) {
	p := Layout(node("r"), DefaultConfig(), 10, 20)
	if p.X != 10 || p.Y != 20 {
		t.Errorf("root at (%v,%v), want (10,20)", p.X, p.Y)
	}
	if Count(p) != 1 {
		t.Errorf("Count = %d, want 1", Count(p))
	}
}

func TestLayoutHorizontalBand(t *testing.T) {
	cfg := DefaultConfig()
	root := node("r", node("a"), node("b"), node("c"))
	p := Layout(root, cfg, 0, 0)

	if len(p.Children) != 3 {
		t.Fatalf("children = %d, want 3", len(p.Children))
	}
	step := cfg.CardWidth + cfg.HGap
	for i, c := range p.Children {
		if !approx(c.X, float64(i)*step) {
			t.Errorf("child %d X = %v, want %v", i, c.X, float64(i)*step)
		}
		if !approx(c.Y, cfg.LevelDrop) {
			t.Errorf("child %d Y = %v, want %v", i, c.Y, cfg.LevelDrop)
		}
		if c.Depth != 1 {
			t.Errorf("child %d depth = %d, want 1", i, c.Depth)
		}
	}

	// Root is centered on the midpoint of the first and last child.
	first, last := p.Children[0], p.Children[2]
	if want := (first.X + last.X) / 2; !approx(p.X, want) {
		t.Errorf("root X = %v, want midpoint %v", p.X, want)
	}
}

func TestLayoutStaircase(t *testing.T) {
	cfg := DefaultConfig()
	root := node("r", node("a", node("a1", node("a1x")), node("a2")))
	p := Layout(root, cfg, 0, 0)

	a := p.Children[0]
	a1 := a.Children[0]
	a2 := a.Children[1]
	a1x := a1.Children[0]

	if !approx(a1.X, a.X+cfg.IndentStep) {
		t.Errorf("a1 X = %v, want %v", a1.X, a.X+cfg.IndentStep)
	}
	if !approx(a1.Y, a.Y+cfg.CardHeight+cfg.VGap) {
		t.Errorf("a1 Y = %v, want %v", a1.Y, a.Y+cfg.CardHeight+cfg.VGap)
	}
	if !approx(a1x.X, a1.X+cfg.IndentStep) {
		t.Errorf("a1x X = %v, want nested indent %v", a1x.X, a1.X+cfg.IndentStep)
	}

	// a2 is pushed down by a1's full subtree extent, not just its card.
	ext := Extent(&tree.Node{ID: "a1", Children: []*tree.Node{{ID: "a1x"}}}, cfg)
	if want := a1.Y + ext + cfg.VGap; !approx(a2.Y, want) {
		t.Errorf("a2 Y = %v, want %v", a2.Y, want)
	}
	if a1x.Depth != 3 {
		t.Errorf("a1x depth = %d, want 3", a1x.Depth)
	}
}

func TestLayoutNoVerticalOverlap(t *testing.T) {
	cfg := DefaultConfig()
	root := node("r",
		node("a", node("a1"), node("a2", node("a2x"), node("a2y"))),
		node("b", node("b1")),
	)
	p := Layout(root, cfg, 0, 0)

	// Within each staircase column, every sibling pair must be separated by
	// the full extent of the earlier sibling.
	var check func(n *PositionedNode)
	check = func(n *PositionedNode) {
		if n.Depth >= 1 {
			for i := 1; i < len(n.Children); i++ {
				prev, cur := n.Children[i-1], n.Children[i]
				if cur.Y < prev.Y+cfg.CardHeight+cfg.VGap {
					t.Errorf("%s overlaps %s: %v < %v", cur.ID, prev.ID, cur.Y, prev.Y+cfg.CardHeight+cfg.VGap)
				}
			}
		}
		for _, c := range n.Children {
			check(c)
		}
	}
	check(p)
}

func TestLayoutDeterministic(t *testing.T) {
	cfg := DefaultConfig()
	root := node("r", node("a", node("a1")), node("b"))

	p1 := Layout(root, cfg, 0, 0)
	p2 := Layout(root, cfg, 0, 0)

	var flat func(p *PositionedNode, out *[]PositionedNode)
	flat = func(p *PositionedNode, out *[]PositionedNode) {
		cp := *p
		cp.Children = nil
		*out = append(*out, cp)
		for _, c := range p.Children {
			flat(c, out)
		}
	}
	var f1, f2 []PositionedNode
	flat(p1, &f1)
	flat(p2, &f2)
	for i := range f1 {
		if !reflect.DeepEqual(f1[i], f2[i]) {
			t.Errorf("node %d differs between passes: %+v vs %+v", i, f1[i], f2[i])
		}
	}
}

func TestLayoutDoesNotMutateInput(t *testing.T) {
	root := node("r", node("a"))
	_ = Layout(root, DefaultConfig(), 0, 0)
	if root.ID != "r" || len(root.Children) != 1 || root.Children[0].ID != "a" {
		t.Error("input tree changed")
	}
}

func TestSanitizeFillsZeroFields(t *testing.T) {
	p := Layout(node("r", node("a")), Config{}, 0, 0)
	def := DefaultConfig()
	if !approx(p.Children[0].Y, def.LevelDrop) {
		t.Errorf("zero config not defaulted: child Y = %v, want %v", p.Children[0].Y, def.LevelDrop)
	}
}

func TestCount(t *testing.T) {
	p := Layout(node("r", node("a", node("a1")), node("b")), DefaultConfig(), 0, 0)
	if got := Count(p); got != 4 {
		t.Errorf("Count = %d, want 4", got)
	}
	if Count(nil) != 0 {
		t.Error("Count(nil) should be 0")
	}
}
