// Package nodelink exports a mind map as a classic node-link diagram through
// Graphviz. It bypasses the hybrid layout entirely, since Graphviz computes
// its own positions, and exists for interchange with dot-based tooling, not for
// the interactive view.
package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"

	"github.com/goccy/go-graphviz"

	"github.com/mindgrove/mindgrove/pkg/tree"
)

// Depth-banded fill colors for DOT output. Depths past the last entry reuse
// the last one, matching the map renderer's palette clamping.
var levelFills = []string{"mediumpurple1", "lightblue", "gray92"}

// ToDOT converts a tree to Graphviz DOT format. Node IDs become DOT node
// names; labels are carried as label attributes, so empty labels render as
// empty boxes rather than failing. A busy node is marked with a dashed
// outline.
func ToDOT(root *tree.Node) string {
	var buf bytes.Buffer
	buf.WriteString("digraph mindmap {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	writeNodes(&buf, root, 0)
	buf.WriteString("\n")
	writeEdges(&buf, root)

	buf.WriteString("}\n")
	return buf.String()
}

func writeNodes(buf *bytes.Buffer, n *tree.Node, depth int) {
	if n == nil {
		return
	}
	fill := levelFills[min(depth, len(levelFills)-1)]
	style := "rounded,filled"
	if n.Busy {
		style = "rounded,filled,dashed"
	}
	fmt.Fprintf(buf, "  %q [label=%q, fillcolor=%q, style=%q];\n", n.ID, n.Label, fill, style)
	for _, c := range n.Children {
		writeNodes(buf, c, depth+1)
	}
}

func writeEdges(buf *bytes.Buffer, n *tree.Node) {
	if n == nil {
		return
	}
	for _, c := range n.Children {
		fmt.Fprintf(buf, "  %q -> %q;\n", n.ID, c.ID)
		writeEdges(buf, c)
	}
}

// RenderSVG renders a DOT string to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.SVG)
}

// RenderPNG renders a DOT string to PNG using Graphviz.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return renderFormat(ctx, dot, graphviz.PNG)
}

func renderFormat(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	out := buf.Bytes()
	if format == graphviz.SVG {
		out = normalizeViewBox(out)
	}
	return out, nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites Graphviz's opening svg tag so the document sizes
// itself from its own viewBox.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	newSvg := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)

	return svgTagRe.ReplaceAll(svg, []byte(newSvg))
}
