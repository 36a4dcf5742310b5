package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/fieldq/internal/plan"
)

// RunOptions holds flags for the run command.
type RunOptions struct {
	*RootOptions
	Source SourceOptions
	Only   []string
}

// NewRunCommand creates the run command.
func NewRunCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &RunOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "run <plan-dir>",
		Short: "Run the queries declared in a CUE plan directory",
		Long: `Load every query declared under "query" in the CUE package in
<plan-dir> and run them in name order. The run stops at the first failing
query.

Example:
  fieldq run ./plans
  fieldq run ./plans --db ./records.db --only eggs,adults`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlans(opts, args[0], cmd)
		},
	}

	opts.Source.addFlags(cmd)
	cmd.Flags().StringSliceVar(&opts.Only, "only", nil, "run only the named queries")
	return cmd
}

func runPlans(opts *RunOptions, dir string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	logger := opts.logger(cmd)

	logger.Debug("loading plans", "dir", dir)
	plans, err := plan.Load(dir)
	if err != nil {
		return fail(f, "failed to load plans", err, nil)
	}

	if len(opts.Only) > 0 {
		plans, err = selectPlans(plans, opts.Only)
		if err != nil {
			return failWith(f, ErrCodeUsage, ExitCommandError, "invalid --only", err)
		}
	}
	logger.Debug("plans loaded", "count", len(plans))

	cat, closeCatalog, err := opts.Source.openCatalog(f, logger)
	if err != nil {
		return err
	}
	defer closeCatalog()

	results, err := plan.NewRunner(cat, logger).Run(cmd.Context(), plans)
	if err != nil {
		return fail(f, "run failed", err, map[string]any{"completed": len(results)})
	}

	return f.Success(resultsData(results), func(w io.Writer) error {
		return writeResults(w, results)
	})
}

// selectPlans keeps the named plans in their loaded order.
func selectPlans(plans []plan.Plan, names []string) ([]plan.Plan, error) {
	byName := make(map[string]bool, len(plans))
	for _, p := range plans {
		byName[p.Name] = true
	}
	want := make(map[string]bool, len(names))
	for _, n := range names {
		if !byName[n] {
			return nil, fmt.Errorf("no query named %q", n)
		}
		want[n] = true
	}

	var out []plan.Plan
	for _, p := range plans {
		if want[p.Name] {
			out = append(out, p)
		}
	}
	return out, nil
}
