// Package nodelink draws commutation dependency graphs as node-link
// diagrams.
//
// Nodes are operators labelled with their signed Pauli string; an arrow
// j → i means operator j must be implemented before operator i because the
// two anticommute. Front-layer nodes (no live predecessors) are filled.
//
//	dot := nodelink.ToDOT(d, labels, nodelink.Options{})
//	svg, err := nodelink.RenderSVG(ctx, dot)
//
// SVG and PNG rendering runs Graphviz in-process through
// [github.com/goccy/go-graphviz]; the DOT text can also be piped to the
// external dot tool.
package nodelink
