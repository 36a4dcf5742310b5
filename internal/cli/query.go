package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/roach88/fieldq/internal/plan"
)

// QueryOptions holds flags for the query command.
type QueryOptions struct {
	*RootOptions
	Source   SourceOptions
	Field    string
	Range    string
	Prefix   string
	Contains string
	Project  bool
}

// NewQueryCommand creates the query command.
func NewQueryCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &QueryOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "query <record>",
		Short: "Run one filter or projection",
		Long: `Run one operation over a record type. Exactly one of --range,
--prefix, --contains or --project is required.

Literals are parsed by the field's declared type: times accept a date
(2006-01-02) or RFC 3339, numbers are decimal.

Example:
  fieldq query person --field Dob --range 1980-12-31,1995-01-01
  fieldq query person --field Name --prefix Jo
  fieldq query recipe --field Ingredients --contains eggs
  fieldq query document --field IssuedBy --project`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runQuery(opts, args[0], cmd)
		},
	}

	opts.Source.addFlags(cmd)
	cmd.Flags().StringVar(&opts.Field, "field", "", "field name (case-sensitive, required)")
	cmd.Flags().StringVar(&opts.Range, "range", "", "exclusive bounds LOWER,UPPER")
	cmd.Flags().StringVar(&opts.Prefix, "prefix", "", "text prefix (case-sensitive)")
	cmd.Flags().StringVar(&opts.Contains, "contains", "", "element a collection field must contain")
	cmd.Flags().BoolVar(&opts.Project, "project", false, "select the field from every record")
	_ = cmd.MarkFlagRequired("field")

	return cmd
}

func runQuery(opts *QueryOptions, record string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	logger := opts.logger(cmd)

	p, err := opts.plan(cmd, record)
	if err != nil {
		return failWith(f, ErrCodeUsage, ExitCommandError, "invalid query flags", err)
	}

	cat, closeCatalog, err := opts.Source.openCatalog(f, logger)
	if err != nil {
		return err
	}
	defer closeCatalog()

	res, err := plan.NewRunner(cat, logger).Execute(cmd.Context(), p)
	if err != nil {
		return fail(f, "query failed", err, nil)
	}

	return f.Success(resultData(res), func(w io.Writer) error {
		return writeResult(w, res)
	})
}

// plan turns the operation flags into a plan. Flags are checked with
// Changed so that an empty --prefix still selects the prefix operation.
func (o *QueryOptions) plan(cmd *cobra.Command, record string) (plan.Plan, error) {
	p := plan.Plan{Name: "query", Record: record, Field: o.Field}

	var kinds []string
	flags := cmd.Flags()
	if flags.Changed("range") {
		lower, upper, ok := strings.Cut(o.Range, ",")
		if !ok {
			return p, fmt.Errorf("--range wants LOWER,UPPER, got %q", o.Range)
		}
		p.Kind, p.Lower, p.Upper = plan.KindRange, lower, upper
		kinds = append(kinds, "--range")
	}
	if flags.Changed("prefix") {
		p.Kind, p.Value = plan.KindPrefix, o.Prefix
		kinds = append(kinds, "--prefix")
	}
	if flags.Changed("contains") {
		p.Kind, p.Value = plan.KindContains, o.Contains
		kinds = append(kinds, "--contains")
	}
	if o.Project {
		p.Kind = plan.KindProject
		kinds = append(kinds, "--project")
	}

	if len(kinds) != 1 {
		return p, fmt.Errorf("exactly one of --range, --prefix, --contains, --project is required (got %d)", len(kinds))
	}
	return p, nil
}
