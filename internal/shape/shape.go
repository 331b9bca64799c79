package shape

import (
	"iter"

	"exhaust/internal/card"
)

// Enumerator is a forward, pull-based sequence over a shape's values.
//
// Next returns the next value and true, or a zero value and false once the
// sequence is exhausted. Exhaustion is absorbing: every call after the first
// false keeps returning false. Running past the end is not an error, it is
// the normal termination signal.
type Enumerator interface {
	Next() (any, bool)
}

// Enumerable is the capability every shape node satisfies: atomic leaves,
// products and sums alike.
//
// Count reports the number of distinct values, or card.Unknown when it
// exceeds uint64 range. Enumerator returns a fresh, independent sequence
// over all values; calling it again restarts enumeration from the top and
// must reproduce the identical order (counts and orders do not change
// between calls - the combinators rely on this).
type Enumerable interface {
	Count() card.Count
	Enumerator() Enumerator
}

// Tuple is the value produced by a product shape: one value per field, in
// field order. A zero-field product produces the empty tuple.
type Tuple []any

// Tagged is the value produced by a sum shape: the index of the active
// variant plus that variant's payload (a Tuple when the variant is itself a
// product).
type Tagged struct {
	Variant int
	Value   any
}

// All adapts an Enumerable to a range-over-func sequence. Each range
// statement obtains its own fresh enumerator, so a shape can be ranged over
// any number of times.
func All(e Enumerable) iter.Seq[any] {
	return func(yield func(any) bool) {
		en := e.Enumerator()
		for v, ok := en.Next(); ok; v, ok = en.Next() {
			if !yield(v) {
				return
			}
		}
	}
}

// Collect drains a fresh enumerator into a slice. Intended for small shapes
// and tests; it materializes every value.
func Collect(e Enumerable) []any {
	var out []any
	en := e.Enumerator()
	for v, ok := en.Next(); ok; v, ok = en.Next() {
		out = append(out, v)
	}
	return out
}
