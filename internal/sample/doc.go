// Package sample provides the demo record types (Person, Document, Recipe),
// their field tables, and the dataset used by the CLI and tests.
package sample
