package catalog

import (
	"context"
	"fmt"

	"github.com/roach88/fieldq/internal/query"
	"github.com/roach88/fieldq/internal/sample"
	"github.com/roach88/fieldq/internal/store"
)

// Catalog holds tables by name, in registration order.
type Catalog struct {
	tables map[string]Table
	order  []string
}

// New builds a catalog. Table names must be unique.
func New(tables ...Table) (*Catalog, error) {
	c := &Catalog{tables: make(map[string]Table, len(tables))}
	for _, t := range tables {
		if _, dup := c.tables[t.Name()]; dup {
			return nil, fmt.Errorf("duplicate table %q", t.Name())
		}
		c.tables[t.Name()] = t
		c.order = append(c.order, t.Name())
	}
	return c, nil
}

// Table returns the table called name.
func (c *Catalog) Table(name string) (Table, error) {
	t, ok := c.tables[name]
	if !ok {
		return nil, &UnknownRecordError{Name: name, Known: c.Names()}
	}
	return t, nil
}

// Names returns the table names in registration order.
func (c *Catalog) Names() []string {
	out := make([]string, len(c.order))
	copy(out, c.order)
	return out
}

// FromDataset serves the sample tables from ds.
// Records are read from the slices as each pass runs.
func FromDataset(ds *sample.Dataset) *Catalog {
	return mustSample(
		NewTable(sample.PersonSchema, func(context.Context) query.Seq[sample.Person] {
			return query.From(ds.People)
		}),
		NewTable(sample.DocumentSchema, func(context.Context) query.Seq[sample.Document] {
			return query.From(ds.Documents)
		}),
		NewTable(sample.RecipeSchema, func(context.Context) query.Seq[sample.Recipe] {
			return query.From(ds.Recipes)
		}),
	)
}

// FromStore serves the sample tables from a SQLite store.
// Every pass re-runs the table's SELECT.
func FromStore(s *store.Store) *Catalog {
	return mustSample(
		NewTable(sample.PersonSchema, s.People),
		NewTable(sample.DocumentSchema, s.Documents),
		NewTable(sample.RecipeSchema, s.Recipes),
	)
}

func mustSample(tables ...Table) *Catalog {
	c, err := New(tables...)
	if err != nil {
		panic(err)
	}
	return c
}
