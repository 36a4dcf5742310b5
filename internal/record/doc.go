// Package record declares the field tables that let generic query code read
// fields of concrete record types by name.
//
// A record type never exposes its fields to the query layer through
// reflection. Instead each type registers a Schema: an explicit table from
// field name to a typed Accessor. Resolving a field is a map lookup followed
// by a type assertion back to the accessor's concrete type.
//
// Example:
//
//	var People = record.MustSchema[Person]("person",
//	    record.Text("Name", func(p Person) string { return p.Name }),
//	    record.Number("Age", func(p Person) int { return p.Age }),
//	    record.Time("Dob", func(p Person) time.Time { return p.Dob }),
//	)
//
//	dob, err := record.Resolve[time.Time](People, "Dob")
//
// ERRORS:
//
// Resolution errors (UnknownFieldError, TypeMismatchError) are returned when
// a query is built. NullFieldError is returned when a nullable field is read
// from a record that has no value for it.
//
// This package imports nothing internal.
package record
