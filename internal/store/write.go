package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/fieldq/internal/sample"
)

// Seed replaces the contents of the store with ds in a single transaction.
// Records keep the order they have in ds.
func (s *Store) Seed(ctx context.Context, ds *sample.Dataset) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("seed: begin tx: %w", err)
	}
	defer tx.Rollback()

	// recipe_ingredients is cleared by ON DELETE CASCADE
	for _, table := range []string{"people", "documents", "recipes"} {
		if _, err := tx.ExecContext(ctx, "DELETE FROM "+table); err != nil {
			return fmt.Errorf("seed: clear %s: %w", table, err)
		}
	}

	for _, p := range ds.People {
		if err := insertPerson(ctx, tx, p); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}
	for _, d := range ds.Documents {
		if err := insertDocument(ctx, tx, d); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}
	for _, r := range ds.Recipes {
		if err := insertRecipe(ctx, tx, r); err != nil {
			return fmt.Errorf("seed: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("seed: commit: %w", err)
	}
	return nil
}

// AddPerson appends a person after the existing rows.
func (s *Store) AddPerson(ctx context.Context, p sample.Person) error {
	return insertPerson(ctx, s.db, p)
}

// AddDocument appends a document after the existing rows.
func (s *Store) AddDocument(ctx context.Context, d sample.Document) error {
	return insertDocument(ctx, s.db, d)
}

// AddRecipe appends a recipe and its ingredients atomically.
func (s *Store) AddRecipe(ctx context.Context, r sample.Recipe) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("add recipe: begin tx: %w", err)
	}
	defer tx.Rollback()

	if err := insertRecipe(ctx, tx, r); err != nil {
		return err
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("add recipe: commit: %w", err)
	}
	return nil
}

// execer is satisfied by both *sql.DB and *sql.Tx.
type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertPerson(ctx context.Context, db execer, p sample.Person) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO people (name, age, dob)
		VALUES (?, ?, ?)
	`, p.Name, p.Age, marshalTime(p.Dob))
	if err != nil {
		return fmt.Errorf("write person %q: %w", p.Name, err)
	}
	return nil
}

func insertDocument(ctx context.Context, db execer, d sample.Document) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO documents (title, issued_by, expires)
		VALUES (?, ?, ?)
	`, d.Title, marshalTime(d.IssuedBy), marshalNullTime(d.Expires))
	if err != nil {
		return fmt.Errorf("write document %q: %w", d.Title, err)
	}
	return nil
}

func insertRecipe(ctx context.Context, db execer, r sample.Recipe) error {
	result, err := db.ExecContext(ctx, `INSERT INTO recipes (name) VALUES (?)`, r.Name)
	if err != nil {
		return fmt.Errorf("write recipe %q: %w", r.Name, err)
	}
	id, err := result.LastInsertId()
	if err != nil {
		return fmt.Errorf("write recipe %q: last insert id: %w", r.Name, err)
	}

	for i, ingredient := range r.Ingredients {
		_, err := db.ExecContext(ctx, `
			INSERT INTO recipe_ingredients (recipe_id, position, ingredient)
			VALUES (?, ?, ?)
		`, id, i, ingredient)
		if err != nil {
			return fmt.Errorf("write recipe %q ingredient %d: %w", r.Name, i, err)
		}
	}
	return nil
}
