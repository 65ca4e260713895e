package pipeline

import (
	"context"

	"github.com/matzehuels/siderail/pkg/errors"
	"github.com/matzehuels/siderail/pkg/plan"
	"github.com/matzehuels/siderail/pkg/render"
	"github.com/matzehuels/siderail/pkg/render/railsvg"
	"github.com/matzehuels/siderail/pkg/render/tree"
)

// Render generates output artifacts in the requested formats.
func Render(ctx context.Context, p *plan.Plan, opts Options) (map[string][]byte, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	// The page diagram backs svg, png and pdf; draw it once.
	var pageSVG []byte
	diagram := func() []byte {
		if pageSVG == nil {
			pageSVG = railsvg.RenderSVG(p, railsvg.Options{Scale: opts.Scale})
		}
		return pageSVG
	}

	artifacts := make(map[string][]byte, len(opts.Formats))
	for _, format := range opts.Formats {
		var data []byte
		var err error

		switch format {
		case FormatJSON:
			data, err = plan.Marshal(p)
		case FormatSVG:
			data = diagram()
		case FormatDOT:
			data = []byte(tree.ToDOT(p, tree.Options{Detailed: opts.Detailed}))
		case FormatTree:
			data, err = tree.RenderSVG(ctx, tree.ToDOT(p, tree.Options{Detailed: opts.Detailed}))
		case FormatPNG:
			data, err = render.ToPNG(ctx, diagram(), opts.Scale)
		case FormatPDF:
			data, err = render.ToPDF(ctx, diagram())
		default:
			return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format: %s", format)
		}

		if err != nil {
			if errors.GetCode(err) != "" {
				return nil, err
			}
			return nil, errors.Wrap(errors.ErrCodeRenderFailed, err, "render %s", format)
		}
		artifacts[format] = data
	}

	return artifacts, nil
}
