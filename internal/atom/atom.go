package atom

import (
	"math"

	"exhaust/internal/card"
	"exhaust/internal/shape"
)

// Integer covers the integer kinds Range can span.
type Integer interface {
	~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64 | ~uintptr
}

// Of returns the domain of the given values, enumerated in the order
// listed. The caller guarantees the values are distinct; the engine does
// not deduplicate.
func Of[T any](values ...T) shape.Enumerable {
	return list[T](values)
}

// Bool returns the boolean domain: false, then true.
func Bool() shape.Enumerable {
	return Of(false, true)
}

// Unit returns the single-value domain holding v. A unit leaf is how a
// payload carrying exactly one possible value enters a composite shape.
func Unit(v any) shape.Enumerable {
	return Of(v)
}

// Empty returns the uninhabited domain: zero values, exact count 0.
func Empty() shape.Enumerable {
	return Of[any]()
}

type list[T any] []T

func (l list[T]) Count() card.Count {
	return card.Exact(uint64(len(l)))
}

func (l list[T]) Enumerator() shape.Enumerator {
	return &listEnumerator[T]{values: l}
}

type listEnumerator[T any] struct {
	values []T
	pos    int
}

func (e *listEnumerator[T]) Next() (any, bool) {
	if e.pos >= len(e.values) {
		return nil, false
	}
	v := e.values[e.pos]
	e.pos++
	return v, true
}

// Range returns the inclusive integer domain min..max, ascending. A range
// with min > max is uninhabited. The full-width uint64 range has 2^64
// values, one past what a count can hold, so its count is unknown while
// its enumeration is still well-defined.
func Range[T Integer](min, max T) shape.Enumerable {
	if min > max {
		return rng[T]{empty: true}
	}
	return rng[T]{min: min, max: max}
}

type rng[T Integer] struct {
	min, max T
	empty    bool
}

// span is the number of values minus one. Converting through uint64 is
// exact for signed types too: two's complement subtraction modulo 2^64
// yields the correct distance whenever min <= max.
func (r rng[T]) span() uint64 {
	return uint64(r.max) - uint64(r.min)
}

func (r rng[T]) Count() card.Count {
	if r.empty {
		return card.Exact(0)
	}
	s := r.span()
	if s == math.MaxUint64 {
		return card.Unknown()
	}
	return card.Exact(s + 1)
}

func (r rng[T]) Enumerator() shape.Enumerator {
	if r.empty {
		return &rangeEnumerator[T]{done: true}
	}
	return &rangeEnumerator[T]{next: r.min, left: r.span()}
}

// rangeEnumerator counts emitted values instead of comparing next against
// max, so the T-typed increment can never wrap past the end unnoticed.
type rangeEnumerator[T Integer] struct {
	next T
	left uint64
	done bool
}

func (e *rangeEnumerator[T]) Next() (any, bool) {
	if e.done {
		return nil, false
	}
	v := e.next
	if e.left == 0 {
		e.done = true
	} else {
		e.next++
		e.left--
	}
	return v, true
}

// RuneCount is the number of Unicode scalar values: code points U+0000
// through U+10FFFF minus the surrogate block.
const RuneCount = 0xD800 + (0x110000 - 0xE000)

// Rune returns the domain of all Unicode scalar values in code point
// order, skipping the surrogate range U+D800..U+DFFF.
func Rune() shape.Enumerable {
	return runes{}
}

type runes struct{}

func (runes) Count() card.Count {
	return card.Exact(RuneCount)
}

func (runes) Enumerator() shape.Enumerator {
	return &runeEnumerator{}
}

type runeEnumerator struct {
	next rune
}

func (e *runeEnumerator) Next() (any, bool) {
	if e.next > 0x10FFFF {
		return nil, false
	}
	v := e.next
	e.next++
	if e.next == 0xD800 {
		e.next = 0xE000
	}
	return v, true
}
