package tree

import (
	"bytes"
	"context"
	"fmt"
	"maps"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/siderail/pkg/plan"
	"github.com/matzehuels/siderail/pkg/rail"
)

// Options configures tree diagram generation.
type Options struct {
	// Detailed adds geometry and dataset entries to labels.
	Detailed bool
}

// ToDOT converts a plan to Graphviz DOT.
func ToDOT(p *plan.Plan, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph plan {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.6;\n")
	buf.WriteString("  nodesep=0.2;\n")

	for i, r := range p.Rails {
		railID := "rail:" + r.Name
		fmt.Fprintf(&buf, "\n  subgraph \"cluster_%d\" {\n", i)
		fmt.Fprintf(&buf, "    label=%q;\n", r.Name)
		fmt.Fprintf(&buf, "    %q [label=%q, shape=folder, fillcolor=\"#eceff1\"];\n", railID, railLabel(r))

		for _, reg := range r.Regions {
			fmt.Fprintf(&buf, "    %q [%s];\n", reg.ID, strings.Join(regionAttrs(reg, opts.Detailed), ", "))
			for _, c := range reg.Children {
				fmt.Fprintf(&buf, "    %q [%s];\n", c.ID, strings.Join(childAttrs(c, opts.Detailed), ", "))
			}
		}
		buf.WriteString("  }\n")

		for _, reg := range r.Regions {
			fmt.Fprintf(&buf, "  %q -> %q;\n", railID, reg.ID)
			for _, c := range reg.Children {
				fmt.Fprintf(&buf, "  %q -> %q;\n", reg.ID, c.ID)
			}
		}
	}

	if len(p.Leftover) > 0 {
		buf.WriteString("\n  \"leftover\" [shape=note, fillcolor=\"#ffebee\"];\n")
		for _, id := range p.Leftover {
			fmt.Fprintf(&buf, "  %q [fillcolor=\"#fff3e0\", style=\"rounded,filled,dashed\"];\n", id)
			fmt.Fprintf(&buf, "  \"leftover\" -> %q;\n", id)
		}
	}

	buf.WriteString("}\n")
	return buf.String()
}

func railLabel(r plan.Rail) string {
	if r.Intersected {
		return r.Name + "\n(intersected)"
	}
	return r.Name
}

func regionAttrs(reg plan.Region, detailed bool) []string {
	label := reg.ID
	if detailed {
		label = fmt.Sprintf("%s\ntop: %.0f\nheight: %.0f\nfree: %.0f", reg.ID, reg.Top, reg.Height, reg.FreeSpace)
	}
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if reg.HasClass(rail.ClassRegionSufficient) {
		attrs = append(attrs, "fillcolor=\"#e8f5e9\"")
	} else {
		attrs = append(attrs, "fillcolor=\"#e3f2fd\"")
	}
	return attrs
}

func childAttrs(c plan.Child, detailed bool) []string {
	label := c.ID
	if detailed {
		parts := []string{c.ID, "kind: " + c.Kind}
		for _, k := range slices.Sorted(maps.Keys(c.Dataset)) {
			parts = append(parts, fmt.Sprintf("%s: %s", k, c.Dataset[k]))
		}
		label = strings.Join(parts, "\n")
	}
	attrs := []string{fmt.Sprintf("label=%q", label)}
	if c.Kind == plan.KindSlot {
		attrs = append(attrs, "fillcolor=\"#fff3e0\"")
	} else {
		attrs = append(attrs, "fillcolor=\"#f3e5f5\"")
	}
	return attrs
}

// RenderSVG renders DOT source to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
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
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox replaces Graphviz's point-based svg header with a pixel
// one so the diagram scales like the other renderers' output.
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

	header := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(header))
}
