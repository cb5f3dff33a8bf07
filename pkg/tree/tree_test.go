package tree

import (
	"bytes"
	"strings"
	"testing"
)

// fixed builds a small tree with deterministic IDs for assertions.
func fixed() *Node {
	return &Node{
		ID: "root", Label: "Root",
		Children: []*Node{
			{ID: "a", Label: "A", Children: []*Node{
				{ID: "a1", Label: "A1"},
				{ID: "a2", Label: "A2"},
			}},
			{ID: "b", Label: "B"},
		},
	}
}

func TestNewAssignsUniqueIDs(t *testing.T) {
	a, b := New("x"), New("x")
	if a.ID == "" || a.ID == b.ID {
		t.Errorf("IDs not unique: %q vs %q", a.ID, b.ID)
	}
}

func TestWalkPreOrder(t *testing.T) {
	var order []string
	fixed().Walk(func(n *Node) bool {
		order = append(order, n.ID)
		return true
	})
	want := "root,a,a1,a2,b"
	if got := strings.Join(order, ","); got != want {
		t.Errorf("pre-order = %s, want %s", got, want)
	}
}

func TestWalkEarlyStop(t *testing.T) {
	visits := 0
	fixed().Walk(func(n *Node) bool {
		visits++
		return n.ID != "a"
	})
	if visits != 2 {
		t.Errorf("visits = %d, want 2", visits)
	}
}

func TestFindAndCount(t *testing.T) {
	root := fixed()
	if n := Find(root, "a2"); n == nil || n.Label != "A2" {
		t.Errorf("Find(a2) = %+v", n)
	}
	if n := Find(root, "nope"); n != nil {
		t.Errorf("Find(nope) = %+v, want nil", n)
	}
	if got := Count(root); got != 5 {
		t.Errorf("Count = %d, want 5", got)
	}
}

func TestValidateReportsDuplicates(t *testing.T) {
	root := fixed()
	if dups := Validate(root); len(dups) != 0 {
		t.Errorf("Validate(clean) = %v", dups)
	}

	root.Children[1].ID = "a1"
	dups := Validate(root)
	if len(dups) != 1 || dups[0] != "a1" {
		t.Errorf("Validate = %v, want [a1]", dups)
	}
}

func TestInsertIsCopyOnWrite(t *testing.T) {
	root := fixed()
	child := &Node{ID: "b1", Label: "B1"}

	updated, err := Insert(root, "b", child)
	if err != nil {
		t.Fatalf("Insert: %v", err)
	}

	if len(Find(root, "b").Children) != 0 {
		t.Error("input tree was mutated")
	}
	got := Find(updated, "b")
	if len(got.Children) != 1 || got.Children[0].ID != "b1" {
		t.Errorf("updated b children = %+v", got.Children)
	}
	// Subtrees off the rewrite path are shared, not copied.
	if Find(updated, "a") != Find(root, "a") {
		t.Error("untouched subtree was copied instead of shared")
	}
}

func TestInsertMissingParent(t *testing.T) {
	if _, err := Insert(fixed(), "nope", New("x")); err == nil {
		t.Error("Insert into missing parent should fail")
	}
}

func TestRename(t *testing.T) {
	root := fixed()
	updated, err := Rename(root, "a1", "Renamed")
	if err != nil {
		t.Fatalf("Rename: %v", err)
	}
	if Find(root, "a1").Label != "A1" {
		t.Error("input tree was mutated")
	}
	if Find(updated, "a1").Label != "Renamed" {
		t.Error("rename not applied")
	}
}

func TestSetBusy(t *testing.T) {
	root := fixed()
	updated, err := SetBusy(root, "a", true)
	if err != nil {
		t.Fatalf("SetBusy: %v", err)
	}
	if Find(root, "a").Busy {
		t.Error("input tree was mutated")
	}
	if !Find(updated, "a").Busy {
		t.Error("busy flag not set")
	}

	cleared, err := SetBusy(updated, "a", false)
	if err != nil {
		t.Fatalf("SetBusy clear: %v", err)
	}
	if Find(cleared, "a").Busy {
		t.Error("busy flag not cleared")
	}
}

func TestReplaceSubtree(t *testing.T) {
	root := fixed()
	sub := &Node{ID: "c", Label: "C"}

	updated, err := Replace(root, "a", sub)
	if err != nil {
		t.Fatalf("Replace: %v", err)
	}
	if Find(updated, "a") != nil {
		t.Error("old subtree still present")
	}
	if Find(updated, "c") == nil {
		t.Error("new subtree missing")
	}

	// Replacing the root returns the substitute itself.
	swapped, err := Replace(root, "root", sub)
	if err != nil {
		t.Fatalf("Replace root: %v", err)
	}
	if swapped != sub {
		t.Error("replacing the root should return the substitute")
	}
}

func TestRemove(t *testing.T) {
	root := fixed()
	updated, err := Remove(root, "a")
	if err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if Count(updated) != 2 {
		t.Errorf("Count after remove = %d, want 2", Count(updated))
	}
	if Find(root, "a") == nil {
		t.Error("input tree was mutated")
	}

	if _, err := Remove(root, "root"); err == nil {
		t.Error("removing the root should fail")
	}
	if _, err := Remove(root, "nope"); err == nil {
		t.Error("removing a missing node should fail")
	}
}

func TestCloneIsDeep(t *testing.T) {
	root := fixed()
	cp := root.Clone()
	cp.Children[0].Label = "changed"
	if root.Children[0].Label == "changed" {
		t.Error("Clone shares nodes with the original")
	}
}

func TestJSONRoundTrip(t *testing.T) {
	var buf bytes.Buffer
	if err := WriteJSON(fixed(), &buf); err != nil {
		t.Fatalf("WriteJSON: %v", err)
	}

	got, err := ReadJSON(&buf)
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if Count(got) != 5 {
		t.Errorf("Count after round trip = %d, want 5", Count(got))
	}
	if got.Children[0].Children[1].Label != "A2" {
		t.Error("child order not preserved")
	}
}

func TestReadJSONAbsentChildren(t *testing.T) {
	got, err := ReadJSON(strings.NewReader(`{"id":"r","label":"R"}`))
	if err != nil {
		t.Fatalf("ReadJSON: %v", err)
	}
	if len(got.Children) != 0 {
		t.Errorf("children = %v, want empty", got.Children)
	}
}

func TestReadJSONRejectsMissingID(t *testing.T) {
	if _, err := ReadJSON(strings.NewReader(`{"label":"R"}`)); err == nil {
		t.Error("ReadJSON should reject a root without id")
	}
}
