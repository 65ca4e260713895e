package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/matzehuels/siderail/pkg/pipeline"
	"github.com/matzehuels/siderail/pkg/plan"
)

// planOpts holds the flags of the plan command.
type planOpts struct {
	output  string // plan file, "-" for stdout
	noCache bool   // bypass the cache entirely
	refresh bool   // recompute, then update the cache
	table   bool   // print the region table
}

// planCommand creates the plan command, which lays out a document and writes
// the plan as JSON.
func (c *CLI) planCommand() *cobra.Command {
	var opts planOpts

	cmd := &cobra.Command{
		Use:   "plan [document]",
		Short: "Lay out a page document and write the plan as JSON",
		Long: `Lay out a page document (TOML, YAML or JSON file, or an http(s) URL) and
write the resulting plan. The plan lists every rail's regions and the slots
and items placed in them, and is the input of "siderail render --plan".`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runPlan(cmd.Context(), args[0], opts)
		},
	}

	cmd.Flags().StringVarP(&opts.output, "output", "o", "", `plan file (default <document>.plan.json, "-" for stdout)`)
	cmd.Flags().BoolVar(&opts.noCache, "no-cache", false, "disable caching")
	cmd.Flags().BoolVar(&opts.refresh, "refresh", false, "ignore cached results")
	cmd.Flags().BoolVar(&opts.table, "table", true, "print the region table")

	return cmd
}

func (c *CLI) runPlan(ctx context.Context, input string, opts planOpts) error {
	logger := loggerFromContext(ctx)
	prog := newProgress(logger)

	runner, err := c.newRunner(ctx, opts.noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	doc, err := c.loadDocument(ctx, input, runner.Cache, opts.refresh)
	if err != nil {
		return err
	}

	p, hit, err := runner.PlanWithCacheInfo(ctx, doc, pipeline.Options{Refresh: opts.refresh})
	if err != nil {
		return err
	}
	prog.done(fmt.Sprintf("Laid out %d rails", len(p.Rails)))

	data, err := plan.Marshal(p)
	if err != nil {
		return err
	}

	if opts.output == "-" {
		_, err = os.Stdout.Write(append(data, '\n'))
		return err
	}

	path := opts.output
	if path == "" {
		path = basePath("", input) + ".plan.json"
	}
	if err := writeOutput(path, data); err != nil {
		return err
	}

	printSuccess("Planned %s", input)
	printStats(p, hit)
	if opts.table {
		printRegions(os.Stdout, p)
	}
	printFile(path)
	printNextStep("Render it", fmt.Sprintf("siderail render --plan %s -f svg,tree", path))
	return nil
}
