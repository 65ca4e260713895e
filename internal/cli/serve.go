package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/matzehuels/siderail/internal/api"
)

// serveCommand creates the serve command, which runs the HTTP API until
// interrupted.
func (c *CLI) serveCommand() *cobra.Command {
	var addr, pagesDir string
	var noCache bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the layout API over HTTP",
		Long: `Serve the layout API.

  GET  /healthz            liveness and version
  POST /v1/plans           lay out the posted document (JSON, YAML or TOML body)
  GET  /v1/plans/{id}      render a plan computed earlier
  GET  /v1/pages/{path}    lay out a document from the pages directory

Plan routes take ?format=json|svg|dot|tree|png|pdf, ?scale, ?detailed
and ?refresh.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = c.Config.Server.Addr
			}
			if !cmd.Flags().Changed("pages") {
				pagesDir = c.Config.Server.PagesDir
			}
			return c.runServe(cmd.Context(), addr, pagesDir, noCache)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", api.DefaultAddr, "listen address")
	cmd.Flags().StringVar(&pagesDir, "pages", "", "directory of page documents served under /v1/pages/")
	cmd.Flags().BoolVar(&noCache, "no-cache", false, "disable caching")

	return cmd
}

func (c *CLI) runServe(ctx context.Context, addr, pagesDir string, noCache bool) error {
	runner, err := c.newRunner(ctx, noCache)
	if err != nil {
		return err
	}
	defer runner.Close()

	srv := api.New(api.Config{
		Runner:   runner,
		PagesDir: pagesDir,
		Logger:   c.Logger,
	})

	printSuccess("Listening on %s", addr)
	if pagesDir != "" {
		printDetail("Pages: %s", pagesDir)
	}
	return srv.ListenAndServe(ctx, addr)
}
