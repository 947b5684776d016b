package nodelink

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/pauliflow/pkg/dag"
)

// Options configures node-link diagram rendering.
type Options struct {
	// Detailed adds the node index and support size to each label.
	Detailed bool
	// Transitive keeps edges implied by longer paths. By default only the
	// transitive reduction is drawn.
	Transitive bool
}

// ToDOT converts a commutation DAG to Graphviz DOT. labels[i] is the text
// for node i; missing labels fall back to the index.
func ToDOT(d *dag.DAG, labels []string, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph G {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"monospace\", fontsize=18, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	front := make(map[int]bool)
	for _, i := range d.FrontLayer() {
		front[i] = true
	}

	for _, i := range d.Nodes() {
		attrs := []string{fmt.Sprintf("label=%q", fmtLabel(i, labels, opts.Detailed))}
		if front[i] {
			attrs = append(attrs, "fillcolor=lightblue")
		}
		fmt.Fprintf(&buf, "  n%d [%s];\n", i, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")
	edges := d.Edges()
	if !opts.Transitive {
		edges = reduce(d, edges)
	}
	for _, e := range edges {
		fmt.Fprintf(&buf, "  n%d -> n%d;\n", e.To, e.From)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func fmtLabel(i int, labels []string, detailed bool) string {
	label := strconv.Itoa(i)
	if i < len(labels) {
		label = labels[i]
	}
	if !detailed {
		return label
	}
	weight := 0
	for _, r := range strings.TrimLeft(label, "+-") {
		if r != 'I' {
			weight++
		}
	}
	return fmt.Sprintf("%s\n#%d  support: %d", label, i, weight)
}

// reduce drops every edge (from, to) for which another path from → … → to
// exists.
func reduce(d *dag.DAG, edges []dag.Edge) []dag.Edge {
	var out []dag.Edge
	for _, e := range edges {
		if !reachableAvoiding(d, e.From, e.To) {
			out = append(out, e)
		}
	}
	return out
}

// reachableAvoiding reports whether to is reachable from from without using
// the direct edge between them.
func reachableAvoiding(d *dag.DAG, from, to int) bool {
	seen := map[int]bool{from: true}
	var stack []int
	for _, p := range d.Predecessors(from) {
		if p != to {
			stack = append(stack, p)
		}
	}
	for len(stack) > 0 {
		n := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if n == to {
			return true
		}
		if seen[n] || n < to {
			continue
		}
		seen[n] = true
		stack = append(stack, d.Predecessors(n)...)
	}
	return false
}

// RenderSVG renders DOT source to SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	out, err := render(ctx, dot, graphviz.SVG)
	if err != nil {
		return nil, err
	}
	return normalizeViewBox(out), nil
}

// RenderPNG renders DOT source to PNG.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
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
		return nil, fmt.Errorf("render %s: %w", format, err)
	}
	return buf.Bytes(), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces the Graphviz <svg> tag with one whose viewBox
// starts at the origin and whose size matches it, so the image scales
// cleanly when embedded.
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

	tag := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`,
		w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(tag))
}
