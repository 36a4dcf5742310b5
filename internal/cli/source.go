package cli

import (
	"errors"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/roach88/fieldq/internal/catalog"
	"github.com/roach88/fieldq/internal/sample"
	"github.com/roach88/fieldq/internal/store"
)

// SourceOptions selects where records are read from.
// With neither flag set the built-in dataset is used.
type SourceOptions struct {
	Data string // YAML dataset path
	DB   string // SQLite store path
}

func (o *SourceOptions) addFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&o.Data, "data", "", "read records from a YAML dataset")
	cmd.Flags().StringVar(&o.DB, "db", "", "read records from a SQLite store (see 'fieldq seed')")
}

// openCatalog resolves the record source. The returned close function must
// be called once the catalog is no longer used.
func (o *SourceOptions) openCatalog(f *OutputFormatter, logger *slog.Logger) (*catalog.Catalog, func(), error) {
	noop := func() {}

	if o.Data != "" && o.DB != "" {
		return nil, noop, failWith(f, ErrCodeUsage, ExitCommandError, "--data and --db cannot be combined", nil)
	}

	if o.DB != "" {
		if _, err := os.Stat(o.DB); err != nil {
			return nil, noop, failWith(f, ErrCodeNotFound, ExitCommandError, "database not found", err)
		}
		logger.Debug("opening store", "path", o.DB)
		s, err := store.Open(o.DB)
		if err != nil {
			return nil, noop, failWith(f, ErrCodeLoadFailed, ExitCommandError, "failed to open database", err)
		}
		return catalog.FromStore(s), func() { s.Close() }, nil
	}

	ds, err := o.dataset(f, logger)
	if err != nil {
		return nil, noop, err
	}
	return catalog.FromDataset(ds), noop, nil
}

// dataset loads --data, or returns the built-in dataset.
func (o *SourceOptions) dataset(f *OutputFormatter, logger *slog.Logger) (*sample.Dataset, error) {
	if o.Data == "" {
		logger.Debug("using built-in dataset")
		return sample.Builtin(), nil
	}

	logger.Debug("loading dataset", "path", o.Data)
	ds, err := sample.LoadDataset(o.Data)
	if errors.Is(err, os.ErrNotExist) {
		return nil, failWith(f, ErrCodeNotFound, ExitCommandError, "dataset not found", err)
	}
	if err != nil {
		return nil, failWith(f, ErrCodeLoadFailed, ExitCommandError, "failed to load dataset", err)
	}
	return ds, nil
}
