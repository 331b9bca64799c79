// Package shape implements the lazy composite-enumeration engine.
//
// A shape is anything whose distinct values can be visited exactly once, in
// a stable order: an atomic leaf domain, a product of field shapes (every
// field present simultaneously), or a sum of variant shapes (exactly one
// variant active, tagged by index). All three satisfy one capability,
// Enumerable: a cardinality and a factory for fresh forward sequences. The
// Product and Sum combinators consume and produce that same capability,
// which is what allows unlimited structural nesting with no special-casing
// at any depth.
//
// ARCHITECTURE:
//
// Produce-and-step enumerators:
// Each combinator enumerator is an explicit state object primed at
// construction: it eagerly computes its first value, and every Next call
// returns the previously computed value while advancing state toward the
// next one. This collapses "not started" and "in progress" into a single
// representable state and keeps iteration strictly pull-based - no
// recursion, no materialization, correct under very large or unknown-size
// component sequences.
//
// Product ("odometer"):
// Fields enumerate in lexicographic order, last field fastest-varying, like
// a mixed-radix counter with the last field as the least-significant digit.
// Carrying into an exhausted field resets it to a fresh child sequence and
// takes the first value unchecked: a field proven non-empty at priming stays
// non-empty when restarted (counts do not change between factory calls).
//
// Sum ("concatenator"):
// Variants enumerate in declaration order; each variant's sequence is
// constructed lazily when reached, and uninhabited variants are skipped
// without gaps in the output.
//
// Counting and iterating are independent facilities: Count never constructs
// an enumerator, and enumeration is unaffected by an unknown count.
//
// A single Enumerator mutates private state in place and must be driven by
// one caller at a time. Independently constructed enumerators share nothing
// and may be iterated concurrently without synchronization.
package shape
