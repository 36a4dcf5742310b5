package cli

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/roach88/fieldq/internal/catalog"
	"github.com/roach88/fieldq/internal/sample"
)

// NewFieldsCommand creates the fields command.
func NewFieldsCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fields <record>",
		Short: "List the queryable fields of a record type",
		Long: `List the declared fields of a record type with their kind and Go type.

Record types: person, document, recipe.

Example:
  fieldq fields person`,
		Args:          cobra.ExactArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runFields(rootOpts, args[0], cmd)
		},
	}
	return cmd
}

func runFields(opts *RootOptions, name string, cmd *cobra.Command) error {
	f := opts.formatter(cmd)

	// Field metadata does not depend on the record source
	t, err := catalog.FromDataset(&sample.Dataset{}).Table(name)
	if err != nil {
		return fail(f, "unknown record type", err, nil)
	}

	fields := t.Fields()
	data := make([]any, len(fields))
	for i, fi := range fields {
		data[i] = map[string]any{
			"name":     fi.Name,
			"kind":     fi.Kind.String(),
			"type":     fi.TypeName(),
			"ordered":  fi.Ordered,
			"nullable": fi.Nullable,
		}
	}

	return f.Success(map[string]any{"record": t.Name(), "fields": data}, func(w io.Writer) error {
		tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "FIELD\tKIND\tTYPE\tORDERED\tNULLABLE")
		for _, fi := range fields {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%t\t%t\n", fi.Name, fi.Kind, fi.TypeName(), fi.Ordered, fi.Nullable)
		}
		return tw.Flush()
	})
}
