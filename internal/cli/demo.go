package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/fieldq/internal/plan"
)

// DemoOptions holds flags for the demo command.
type DemoOptions struct {
	*RootOptions
	Source SourceOptions
}

// NewDemoCommand creates the demo command.
func NewDemoCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &DemoOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "demo",
		Short: "Run the walkthrough queries",
		Long: `Run a fixed walkthrough over the sample records:

  - project Person.Name and Document.IssuedBy
  - people born after 1980-12-31 and before 1995-01-01
  - documents issued after 1980-12-31 and before 2005-01-01
  - people whose Name starts with "Jo", documents whose Title starts with "Ma"
  - recipes whose Ingredients contain "eggs"

Example:
  fieldq demo
  fieldq demo --db ./records.db --format json`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runDemo(opts, cmd)
		},
	}

	opts.Source.addFlags(cmd)
	return cmd
}

func runDemo(opts *DemoOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	logger := opts.logger(cmd)

	cat, closeCatalog, err := opts.Source.openCatalog(f, logger)
	if err != nil {
		return err
	}
	defer closeCatalog()

	results, err := plan.NewRunner(cat, logger).Run(cmd.Context(), plan.Demo())
	if err != nil {
		return fail(f, "demo failed", err, map[string]any{"completed": len(results)})
	}

	return f.Success(resultsData(results), func(w io.Writer) error {
		return writeResults(w, results)
	})
}
