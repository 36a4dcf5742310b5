// Package store provides a SQLite-backed record source for the sample
// record types.
//
// The store holds people, documents and recipes. Seed replaces its contents
// with a dataset; People, Documents and Recipes return query sequences.
//
// # Sources
//
// Each source is restartable: every pass over the sequence runs its SELECT
// again, so a query built once observes rows written between passes. Rows
// are read one at a time as the consumer pulls, and the cursor is closed
// when the pass ends, including when the consumer stops early.
//
// Scan and driver errors are yielded as the sequence error and end the pass.
//
// # Ordering
//
// All reads are ordered by row id, which is the order records were seeded.
// Recipe ingredients keep their list position.
//
// # Database Configuration
//
//   - WAL mode: Concurrent reads during writes
//   - synchronous=NORMAL: Balance durability/performance
//   - busy_timeout=5000: Wait up to 5 seconds on lock contention
//   - foreign_keys=ON: Enforce referential integrity
//
// # Usage
//
//	s, err := store.Open("records.db")
//	if err != nil {
//	    return err
//	}
//	defer s.Close()
//
//	if err := s.Seed(ctx, sample.Builtin()); err != nil {
//	    return err
//	}
//	adults, err := query.FilterRange(s.People(ctx), sample.PersonSchema, "Age", 18, 200)
package store
