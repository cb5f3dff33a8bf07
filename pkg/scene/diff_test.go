package scene

import (
	"testing"

	"github.com/mindgrove/mindgrove/pkg/layout"
	"github.com/mindgrove/mindgrove/pkg/tree"
)

func TestDiffEnterPersistExit(t *testing.T) {
	old := buildScene(node("r", node("a"), node("b")))
	new := buildScene(node("r", node("a", node("a1")), node("c")))

	d := Diff(old, new)

	if len(d.Entered) != 2 {
		t.Fatalf("entered = %d, want 2", len(d.Entered))
	}
	// Entered follows the new scene's pre-order.
	if d.Entered[0].ID != "a1" || d.Entered[1].ID != "c" {
		t.Errorf("entered order = %s,%s, want a1,c", d.Entered[0].ID, d.Entered[1].ID)
	}

	if len(d.Exited) != 1 || d.Exited[0].ID != "b" {
		t.Errorf("exited = %+v, want [b]", d.Exited)
	}

	if len(d.Persisted) != 2 {
		t.Fatalf("persisted = %d, want 2", len(d.Persisted))
	}
	if d.Persisted[0].ID != "r" || d.Persisted[1].ID != "a" {
		t.Errorf("persisted order = %s,%s, want r,a", d.Persisted[0].ID, d.Persisted[1].ID)
	}
}

func TestDiffRecordsMoves(t *testing.T) {
	old := buildScene(node("r", node("a")))
	// Adding a sibling shifts the root's centering, so r moves.
	new := buildScene(node("r", node("a"), node("b")))

	d := Diff(old, new)
	var rootMove *Move
	for i := range d.Persisted {
		if d.Persisted[i].ID == "r" {
			rootMove = &d.Persisted[i]
		}
	}
	if rootMove == nil {
		t.Fatal("root not persisted")
	}
	if rootMove.From.X == rootMove.To.X {
		t.Error("root should have moved horizontally")
	}
}

func TestDiffUnchanged(t *testing.T) {
	s := buildScene(node("r", node("a")))
	d := Diff(s, s)
	if d.Changed() {
		t.Error("identical scenes should report no change")
	}
}

func TestDiffEdges(t *testing.T) {
	old := buildScene(node("r", node("a")))
	new := buildScene(node("r", node("b")))

	d := Diff(old, new)
	if len(d.EnteredEdges) != 1 || d.EnteredEdges[0].ToID != "b" {
		t.Errorf("entered edges = %+v", d.EnteredEdges)
	}
	if len(d.ExitedEdges) != 1 || d.ExitedEdges[0].ToID != "a" {
		t.Errorf("exited edges = %+v", d.ExitedEdges)
	}
}

func TestDiffFromEmpty(t *testing.T) {
	var empty Scene
	s := Build(layout.Layout(&tree.Node{ID: "r"}, layout.DefaultConfig(), 0, 0), layout.DefaultConfig())

	d := Diff(empty, s)
	if len(d.Entered) != 1 || len(d.Persisted) != 0 || len(d.Exited) != 0 {
		t.Errorf("delta from empty = %d entered, %d persisted, %d exited",
			len(d.Entered), len(d.Persisted), len(d.Exited))
	}
}
