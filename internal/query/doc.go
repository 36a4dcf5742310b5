// Package query compiles field-name based operations into predicates and
// projections, and applies them lazily to record sequences.
//
// ARCHITECTURE:
//
//	[record.Schema] → Range / Prefix / Contains / Project → Filter / Map
//	                          ↑
//	             CompileFilter / CompileProjection (Op, runtime-selected)
//
// The compilers are generic over the record type R and the field type V. A
// field is resolved once, when the callable is built; the callable then
// captures the accessor and never looks the field up again.
//
// FAIL-FAST CONSTRUCTION:
//
// Every resolution and type problem (unknown field, unordered field in a
// range, non-text field in a prefix match, non-collection field or wrong
// element type in a membership test, literal of the wrong type) is returned
// by the compiler. No callable is returned alongside an error, and no such
// error can surface during iteration.
//
// EVALUATION ERRORS:
//
// A nullable field that is absent on a record yields *record.NullFieldError
// when that record is evaluated. Filter and Map stop the pass at the first
// such error and yield it with a zero value. Consumers that prefer to skip
// bad records can filter them with their own predicate before querying.
//
// LAZINESS:
//
// Seq is iter.Seq2[T, error]. Filter and Map pull one element at a time from
// their source and evaluate it once. Ranging over a Seq twice runs the
// pipeline twice; nothing is memoized. Breaking out of a range loop stops
// all upstream work.
package query
