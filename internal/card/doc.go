// Package card provides cardinality arithmetic for enumerable shapes.
//
// A cardinality is either an exact non-negative integer or Unknown, meaning
// the true value exceeds what a uint64 can represent. Unknown is a precision
// loss signal, never an error: enumeration of a shape proceeds identically
// whether or not its count is representable.
//
// The two folds, Product and Sum, mirror shape composition:
//   - Product combines field counts with overflow-checked multiplication.
//     An exact zero factor dominates everything, including Unknown: a shape
//     with an uninhabited field has no values no matter how large its
//     siblings are.
//   - Sum combines variant counts with overflow-checked addition. Addition
//     has no absorbing element, so Unknown plus anything is Unknown.
//
// Both folds are pure and independent of iteration; counting a shape never
// constructs an enumerator.
package card
