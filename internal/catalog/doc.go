// Package catalog addresses record types by name.
//
// The query package is generic over the record type, which is fixed at
// compile time. Commands and plan files name record types at run time, so
// a Table erases the record type behind a small interface: it compiles a
// query.Op against its schema and yields rendered Rows or projected values.
//
// A Catalog is built over one record source, either an in-memory dataset
// (FromDataset) or a SQLite store (FromStore).
package catalog
