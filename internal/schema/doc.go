// Package schema compiles textual shape descriptions into enumerable
// shapes.
//
// A description is a tree of nodes, each naming a kind: the combinators
// (product, sum) and the leaves (bool, unit, empty, range, values, rune,
// option, result). Descriptions are written in CUE or YAML; both front
// ends decode into the same Node tree and share one compilation path.
//
// Compilation is a pure translation: it validates the description and
// wires the corresponding atom/shape tree, but never enumerates anything.
// Errors carry the path to the offending node so a misplaced field deep in
// a nested description is reported precisely.
package schema
