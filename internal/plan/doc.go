// Package plan compiles named query plans from CUE and runs them.
//
// A plan directory holds one CUE package whose files declare queries under
// the top-level "query" struct:
//
//	package plans
//
//	query: adults: {
//	    record: "person"
//	    field:  "Dob"
//	    range: {lower: "1980-12-31", upper: "1995-01-01"}
//	}
//	query: eggs: {record: "recipe", field: "Ingredients", contains: "eggs"}
//	query: names: {record: "person", field: "Name", project: true}
//
// Each query names a record type and a field, and sets exactly one of
// range, prefix, contains or project. Literals stay untyped until the plan
// is bound to a catalog table, where they are converted to the field's
// declared type.
//
// Compilation is fail-fast: the first problem is returned as a
// *CompileError carrying the CUE source position.
package plan
