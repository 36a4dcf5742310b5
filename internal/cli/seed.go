package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/roach88/fieldq/internal/store"
)

// SeedOptions holds flags for the seed command.
type SeedOptions struct {
	*RootOptions
	Data string
	DB   string
}

// NewSeedCommand creates the seed command.
func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &SeedOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Write a dataset into a SQLite store",
		Long: `Create or open a SQLite store and replace its records with a dataset:
the built-in sample records, or a YAML file given with --data.

Example:
  fieldq seed --db ./records.db
  fieldq seed --db ./records.db --data ./people.yaml`,
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runSeed(opts, cmd)
		},
	}

	cmd.Flags().StringVar(&opts.Data, "data", "", "YAML dataset to write (default: built-in records)")
	cmd.Flags().StringVar(&opts.DB, "db", "", "path to SQLite database (required)")
	_ = cmd.MarkFlagRequired("db")

	return cmd
}

func runSeed(opts *SeedOptions, cmd *cobra.Command) error {
	f := opts.formatter(cmd)
	logger := opts.logger(cmd)

	src := SourceOptions{Data: opts.Data}
	ds, err := src.dataset(f, logger)
	if err != nil {
		return err
	}

	logger.Debug("opening store", "path", opts.DB)
	s, err := store.Open(opts.DB)
	if err != nil {
		return failWith(f, ErrCodeWriteFailed, ExitCommandError, "failed to open database", err)
	}
	defer s.Close()

	ctx := cmd.Context()
	if err := s.Seed(ctx, ds); err != nil {
		return failWith(f, ErrCodeWriteFailed, ExitCommandError, "failed to seed database", err)
	}

	counts, err := s.Count(ctx)
	if err != nil {
		return failWith(f, ErrCodeWriteFailed, ExitCommandError, "failed to count records", err)
	}
	logger.Debug("store seeded", "people", counts.People, "documents", counts.Documents, "recipes", counts.Recipes)

	data := map[string]any{
		"db":        opts.DB,
		"people":    counts.People,
		"documents": counts.Documents,
		"recipes":   counts.Recipes,
	}
	return f.Success(data, func(w io.Writer) error {
		_, err := fmt.Fprintf(w, "Seeded %s: %d people, %d documents, %d recipes\n",
			opts.DB, counts.People, counts.Documents, counts.Recipes)
		return err
	})
}
