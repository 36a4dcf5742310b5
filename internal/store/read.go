package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/roach88/fieldq/internal/query"
	"github.com/roach88/fieldq/internal/sample"
)

// People returns a restartable source over the people table in seed order.
//
// The store allows one open connection, so writes from the same goroutine
// must not happen while a pass is in progress.
func (s *Store) People(ctx context.Context) query.Seq[sample.Person] {
	return rowSeq(ctx, s.db, "people", `
		SELECT name, age, dob
		FROM people
		ORDER BY id ASC
	`, scanPerson)
}

// Documents returns a restartable source over the documents table.
// A NULL expires column becomes a nil Expires.
func (s *Store) Documents(ctx context.Context) query.Seq[sample.Document] {
	return rowSeq(ctx, s.db, "documents", `
		SELECT title, issued_by, expires
		FROM documents
		ORDER BY id ASC
	`, scanDocument)
}

// Recipes returns a restartable source over recipes with their ingredients.
//
// Ingredients are read through one joined query and grouped as rows
// arrive, so a recipe is yielded once its last ingredient row is read.
// A recipe without ingredients has a nil Ingredients list.
func (s *Store) Recipes(ctx context.Context) query.Seq[sample.Recipe] {
	return func(yield func(sample.Recipe, error) bool) {
		rows, err := s.db.QueryContext(ctx, `
			SELECT r.id, r.name, i.ingredient
			FROM recipes r
			LEFT JOIN recipe_ingredients i ON i.recipe_id = r.id
			ORDER BY r.id ASC, i.position ASC
		`)
		if err != nil {
			yield(sample.Recipe{}, fmt.Errorf("query recipes: %w", err))
			return
		}
		defer rows.Close()

		var (
			current   sample.Recipe
			currentID int64
			pending   bool
		)
		for rows.Next() {
			var (
				id         int64
				name       string
				ingredient sql.NullString
			)
			if err := rows.Scan(&id, &name, &ingredient); err != nil {
				yield(sample.Recipe{}, fmt.Errorf("scan recipe: %w", err))
				return
			}

			if !pending || id != currentID {
				if pending && !yield(current, nil) {
					return
				}
				current = sample.Recipe{Name: name}
				currentID = id
				pending = true
			}
			if ingredient.Valid {
				current.Ingredients = append(current.Ingredients, ingredient.String)
			}
		}

		if err := rows.Err(); err != nil {
			yield(sample.Recipe{}, fmt.Errorf("iterate recipes: %w", err))
			return
		}
		if pending {
			yield(current, nil)
		}
	}
}

// rowSeq runs stmt on every pass and yields one scanned value per row.
// The cursor is closed when the pass ends for any reason.
func rowSeq[T any](ctx context.Context, db *sql.DB, table, stmt string, scan func(*sql.Rows) (T, error)) query.Seq[T] {
	return func(yield func(T, error) bool) {
		var zero T

		rows, err := db.QueryContext(ctx, stmt)
		if err != nil {
			yield(zero, fmt.Errorf("query %s: %w", table, err))
			return
		}
		defer rows.Close()

		for rows.Next() {
			v, err := scan(rows)
			if err != nil {
				yield(zero, err)
				return
			}
			if !yield(v, nil) {
				return
			}
		}

		if err := rows.Err(); err != nil {
			yield(zero, fmt.Errorf("iterate %s: %w", table, err))
		}
	}
}

func scanPerson(rows *sql.Rows) (sample.Person, error) {
	var (
		p   sample.Person
		dob string
	)
	if err := rows.Scan(&p.Name, &p.Age, &dob); err != nil {
		return sample.Person{}, fmt.Errorf("scan person: %w", err)
	}

	var err error
	p.Dob, err = unmarshalTime("people.dob", dob)
	if err != nil {
		return sample.Person{}, err
	}
	return p, nil
}

func scanDocument(rows *sql.Rows) (sample.Document, error) {
	var (
		d        sample.Document
		issuedBy string
		expires  sql.NullString
	)
	if err := rows.Scan(&d.Title, &issuedBy, &expires); err != nil {
		return sample.Document{}, fmt.Errorf("scan document: %w", err)
	}

	var err error
	if d.IssuedBy, err = unmarshalTime("documents.issued_by", issuedBy); err != nil {
		return sample.Document{}, err
	}
	if d.Expires, err = unmarshalNullTime("documents.expires", expires); err != nil {
		return sample.Document{}, err
	}
	return d, nil
}
