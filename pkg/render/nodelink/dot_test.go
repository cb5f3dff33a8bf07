package nodelink

import (
	"strings"
	"testing"

	"github.com/mindgrove/mindgrove/pkg/tree"
)

func TestToDOT(t *testing.T) {
	root := &tree.Node{ID: "r", Label: "Root Topic", Children: []*tree.Node{
		{ID: "a", Label: "Branch", Busy: true},
		{ID: "b", Label: ""},
	}}

	dot := ToDOT(root)

	for _, want := range []string{
		"digraph mindmap {",
		"rankdir=TB;",
		`"r" [label="Root Topic"`,
		`"a" [label="Branch"`,
		`"r" -> "a";`,
		`"r" -> "b";`,
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q", want)
		}
	}

	// Busy nodes get a dashed outline, idle ones do not.
	if !strings.Contains(dot, `"a" [label="Branch", fillcolor="lightblue", style="rounded,filled,dashed"];`) {
		t.Error("busy node not rendered dashed")
	}
	if strings.Contains(dot, `"r" [label="Root Topic", fillcolor="mediumpurple1", style="rounded,filled,dashed"];`) {
		t.Error("idle node rendered dashed")
	}

	// Empty labels stay as empty label attributes rather than vanishing.
	if !strings.Contains(dot, `"b" [label=""`) {
		t.Error("empty label dropped from DOT output")
	}
}

func TestToDOTDepthFills(t *testing.T) {
	root := &tree.Node{ID: "r", Label: "r", Children: []*tree.Node{
		{ID: "a", Label: "a", Children: []*tree.Node{
			{ID: "a1", Label: "a1", Children: []*tree.Node{
				{ID: "a1x", Label: "deep"},
			}},
		}},
	}}

	dot := ToDOT(root)

	if !strings.Contains(dot, `"r" [label="r", fillcolor="mediumpurple1"`) {
		t.Error("root fill wrong")
	}
	if !strings.Contains(dot, `"a" [label="a", fillcolor="lightblue"`) {
		t.Error("depth-1 fill wrong")
	}
	// Depths past the palette reuse the last fill.
	if !strings.Contains(dot, `"a1" [label="a1", fillcolor="gray92"`) {
		t.Error("depth-2 fill wrong")
	}
	if !strings.Contains(dot, `"a1x" [label="deep", fillcolor="gray92"`) {
		t.Error("deep fill should clamp to the last palette entry")
	}
}

func TestNormalizeViewBox(t *testing.T) {
	in := []byte(`<?xml version="1.0"?>
<svg width="100pt" height="50pt" viewBox="0.00 0.00 120.75 60.25" xmlns="http://www.w3.org/2000/svg">
<g></g>
</svg>`)

	out := string(normalizeViewBox(in))

	if !strings.Contains(out, `viewBox="0 0 120.75 60.25"`) {
		t.Errorf("viewBox not rewritten: %s", out)
	}
	if !strings.Contains(out, `width="121" height="60"`) {
		t.Errorf("pixel size not derived from viewBox: %s", out)
	}
	if strings.Contains(out, "pt\"") {
		t.Error("point-based sizing survived normalization")
	}
}

func TestNormalizeViewBoxPassThrough(t *testing.T) {
	in := []byte("<svg><g></g></svg>")
	if got := string(normalizeViewBox(in)); got != string(in) {
		t.Errorf("document without viewBox changed: %s", got)
	}
}
