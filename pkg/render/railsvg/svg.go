// Package railsvg draws a plan as a page diagram: content blocks where they
// sit on the page and each rail's regions beside them, with the slots and
// items placed in every region.
//
// Regions carry their class names as SVG classes so the diagram can be styled
// with the same selectors as the live page:
//
//	svg := railsvg.RenderSVG(p, railsvg.Options{Scale: 0.5})
package railsvg

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/siderail/pkg/plan"
	"github.com/matzehuels/siderail/pkg/rail"
)

// Options configures rendering.
type Options struct {
	// Scale multiplies the output width and height. Defaults to 1.
	Scale float64

	// Margin is the blank border in page pixels. Defaults to 20.
	Margin float64
}

const (
	defaultMargin    = 20.0
	defaultRailWidth = 300.0
	childInset       = 8.0
)

const styleCSS = `
    .block { fill: #eceff1; stroke: #b0bec5; }
    .block.fullbleed { fill: #cfd8dc; }
    .rhr-region { fill: #e3f2fd; stroke: #64b5f6; stroke-dasharray: 6 4; }
    .rhr-region--sufficient { fill: #e8f5e9; stroke: #81c784; }
    .child.slot { fill: #fff3e0; stroke: #ffb74d; }
    .child.item { fill: #f3e5f5; stroke: #ba68c8; }
    text { font-family: -apple-system, "Segoe UI", sans-serif; fill: #37474f; }`

// RenderSVG returns an SVG document for p.
func RenderSVG(p *plan.Plan, opts Options) []byte {
	if opts.Scale <= 0 {
		opts.Scale = 1
	}
	if opts.Margin <= 0 {
		opts.Margin = defaultMargin
	}

	w, h := extent(p)
	w += 2 * opts.Margin
	h += 2 * opts.Margin

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		w, h, w*opts.Scale, h*opts.Scale)
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", styleCSS)
	fmt.Fprintf(&buf, `  <g transform="translate(%.1f %.1f)">`+"\n", opts.Margin, opts.Margin)

	for _, r := range p.Rails {
		renderRail(&buf, r)
	}

	buf.WriteString("  </g>\n</svg>\n")
	return buf.Bytes()
}

func renderRail(buf *bytes.Buffer, r plan.Rail) {
	fmt.Fprintf(buf, `  <g class="rail" id="rail-%s">`+"\n", escapeXML(r.Name))

	for _, b := range r.Blocks {
		class := "block"
		if b.Fullbleed {
			class += " fullbleed"
		}
		box(buf, class, b.ID, b.Box.Left, b.Box.Top, b.Box.Width, b.Box.Height)
	}

	x, width := railColumn(r)
	for _, reg := range r.Regions {
		top := r.Box.Top + reg.Top
		box(buf, strings.Join(reg.Classes, " "), reg.ID, x, top, width, reg.Height)

		y := top + childInset
		for _, c := range reg.Children {
			ch := childHeight(c)
			box(buf, "child "+c.Kind, c.ID, x+childInset, y, width-2*childInset, ch)
			y += ch + childInset
		}
	}

	buf.WriteString("  </g>\n")
}

func box(buf *bytes.Buffer, class, id string, x, y, w, h float64) {
	fmt.Fprintf(buf, `    <rect class="%s" data-id="%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f"/>`+"\n",
		escapeXML(class), escapeXML(id), x, y, w, h)
	if w <= 0 || h <= 0 {
		return
	}
	size := fontSize(w, min(h, 40), len(id))
	fmt.Fprintf(buf, `    <text x="%.1f" y="%.1f" font-size="%.1f">%s</text>`+"\n",
		x+4, y+size+2, size, escapeXML(truncate(id, w, size)))
}

// railColumn returns the x and width of the rail column. Rails without a box
// are drawn to the right of their content.
func railColumn(r plan.Rail) (x, width float64) {
	width = r.Box.Width
	if width <= 0 {
		width = defaultRailWidth
	}
	if r.Box.Left > 0 || r.Box.Width > 0 {
		return r.Box.Left, width
	}
	return r.Content.Left + r.Content.Width + defaultMargin, width
}

// childHeight is the drawn height of a region child. Slots have no intrinsic
// height and are drawn at the smallest slot format.
func childHeight(c plan.Child) float64 {
	if c.Height > 0 {
		return c.Height
	}
	return rail.SlotMinHeight
}

func extent(p *plan.Plan) (w, h float64) {
	for _, r := range p.Rails {
		for _, b := range r.Blocks {
			w = max(w, b.Box.Right())
			h = max(h, b.Box.Bottom())
		}
		x, width := railColumn(r)
		w = max(w, x+width)
		for _, reg := range r.Regions {
			h = max(h, r.Box.Top+reg.Top+reg.Height)
		}
	}
	return w, h
}
