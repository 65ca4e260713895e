// Package render holds the plan renderers and output format conversion.
//
// # Overview
//
// A laid-out [plan.Plan] can be drawn two ways:
//
//   - Page diagrams (in [railsvg] subpackage): content blocks and rail regions
//     drawn where they sit on the page
//   - Tree diagrams (in [tree] subpackage): rails, regions and their
//     children as a Graphviz graph
//
// # Format Conversion
//
// The [ToPDF] and [ToPNG] functions convert any SVG to other formats using
// the external rsvg-convert tool (from librsvg):
//
//	svg := railsvg.RenderSVG(p, railsvg.Options{})
//	pdf, err := render.ToPDF(ctx, svg)
//	png, err := render.ToPNG(ctx, svg, 2.0)  // 2x scale
//
// [plan.Plan]: github.com/matzehuels/siderail/pkg/plan
// [railsvg]: github.com/matzehuels/siderail/pkg/render/railsvg
// [tree]: github.com/matzehuels/siderail/pkg/render/tree
package render
