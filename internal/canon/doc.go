// Package canon provides the canonical JSON encoding used for query output.
//
// Canonical output is byte-stable across runs and platforms, which lets CLI
// results be compared against golden files.
package canon
