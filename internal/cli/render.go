package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/matzehuels/siderail/pkg/pipeline"
	"github.com/matzehuels/siderail/pkg/plan"
)

// renderOpts holds the command-line flags for the render command.
type renderOpts struct {
	output   string   // output file (single format) or base path
	formats  []string // svg, dot, tree, png, pdf, json
	fromPlan bool     // input is a plan file instead of a document
	scale    float64  // svg/png scale factor
	detailed bool     // geometry labels in dot and tree output
	noCache  bool
	refresh  bool
}

// renderCommand creates the render command for generating diagrams.
func (c *CLI) renderCommand() *cobra.Command {
	var formatsStr string
	opts := renderOpts{scale: pipeline.DefaultScale}

	cmd := &cobra.Command{
		Use:   "render [document|plan]",
		Short: "Render a page layout to SVG, DOT, PNG or PDF",
		Long: `Render a page layout. The input is a page document, or with --plan a plan
file written by "siderail plan".

Formats:
  svg   page diagram: content blocks with each rail's regions beside them
  tree  rail → region → child hierarchy drawn by graphviz (SVG)
  dot   the same hierarchy as graphviz source
  png   page diagram as PNG (requires rsvg-convert)
  pdf   page diagram as PDF (requires rsvg-convert)
  json  the plan`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts.formats = parseFormats(formatsStr)
			if err := pipeline.ValidateFormats(opts.formats); err != nil {
				return err
			}
			return c.runRender(cmd.Context(), args[0], &opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (single format) or base path (multiple)")
	cmd.Flags().StringVarP(&formatsStr, "format", "f", "", "output format(s): svg (default), tree, dot, png, pdf, json (comma-separated)")
	cmd.Flags().BoolVar(&opts.fromPlan, "plan", false, "input is a plan file")
	cmd.Flags().Float64Var(&opts.scale, "scale", opts.scale, "scale factor for svg and png output")
	cmd.Flags().BoolVar(&opts.detailed, "detailed", false, "show geometry and datasets in dot and tree output")
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results")

	return cmd
}

// runRender lays out (or loads) the plan, renders every requested format
// and writes one file per format.
func (c *CLI) runRender(ctx context.Context, input string, opts *renderOpts) error {
	logger := loggerFromContext(ctx)
	logger.Infof("Rendering %s", input)

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	popts := pipeline.Options{
		Formats:  opts.formats,
		Scale:    opts.scale,
		Detailed: opts.detailed,
		Refresh:  opts.refresh,
	}

	spin := newSpinnerWithContext(ctx, "Rendering "+input)
	spin.Start()

	p, artifacts, hit, err := c.produce(ctx, runner, input, opts.fromPlan, popts)
	if err != nil {
		spin.StopWithError("Render failed")
		return err
	}
	spin.Stop()

	base := basePath(opts.output, input)
	var written []string
	for _, format := range opts.formats {
		path := outputPath(base, format)
		if len(opts.formats) == 1 && opts.output != "" {
			path = opts.output
		}
		if err := writeOutput(path, artifacts[format]); err != nil {
			return err
		}
		logger.Debugf("Generated %s: %d bytes", format, len(artifacts[format]))
		written = append(written, path)
	}

	printSuccess("Rendered %s", input)
	printStats(p, hit)
	for _, path := range written {
		printFile(path)
	}
	return nil
}

// produce returns the plan and rendered artifacts for input, and whether
// everything came from the cache.
func (c *CLI) produce(ctx context.Context, runner *pipeline.Runner, input string, fromPlan bool, opts pipeline.Options) (*plan.Plan, map[string][]byte, bool, error) {
	if fromPlan {
		p, err := plan.ReadFile(input)
		if err != nil {
			return nil, nil, false, err
		}
		artifacts, hit, err := runner.RenderWithCacheInfo(ctx, p, opts)
		if err != nil {
			return nil, nil, false, fmt.Errorf("render %s: %w", input, err)
		}
		return p, artifacts, hit, nil
	}

	doc, err := c.loadDocument(ctx, input, runner.Cache, opts.Refresh)
	if err != nil {
		return nil, nil, false, err
	}
	res, err := runner.Execute(ctx, doc, opts)
	if err != nil {
		return nil, nil, false, err
	}
	return res.Plan, res.Artifacts, res.CacheInfo.PlanHit && res.CacheInfo.RenderHit, nil
}
