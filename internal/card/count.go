package card

import "math/bits"

// Count is an optional exact cardinality.
//
// The zero value is Unknown. Counts are immutable values; compare them
// with ==.
type Count struct {
	n     uint64
	known bool
}

// Exact returns a known count of n values.
func Exact(n uint64) Count {
	return Count{n: n, known: true}
}

// Unknown returns the count of a domain too large to measure exactly.
func Unknown() Count {
	return Count{}
}

// Value returns the exact count and true, or 0 and false if the count is
// unknown.
func (c Count) Value() (uint64, bool) {
	if !c.known {
		return 0, false
	}
	return c.n, true
}

// Known reports whether the count is exact.
func (c Count) Known() bool {
	return c.known
}

// IsZero reports whether the count is exactly zero. An unknown count is
// never zero: overflow only occurs on domains with many values.
func (c Count) IsZero() bool {
	return c.known && c.n == 0
}

// String renders the count for diagnostics: the decimal value, or "unknown".
func (c Count) String() string {
	if !c.known {
		return "unknown"
	}
	return itoa(c.n)
}

// itoa avoids strconv for the one formatting need this package has.
func itoa(n uint64) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

// Product folds field counts into the count of their cartesian product.
//
// The fold starts at Exact(1), so an empty field list (the unit shape) has
// exactly one value. An exact zero factor short-circuits the whole product
// to Exact(0) even when another factor is Unknown. Otherwise any Unknown
// factor, or an overflowing multiplication, makes the result Unknown.
func Product(counts ...Count) Count {
	// First pass: zero-dominance. A logically empty factor empties the
	// product regardless of what the other factors would contribute.
	for _, c := range counts {
		if c.IsZero() {
			return Exact(0)
		}
	}

	acc := uint64(1)
	for _, c := range counts {
		if !c.known {
			return Unknown()
		}
		hi, lo := bits.Mul64(acc, c.n)
		if hi != 0 {
			return Unknown()
		}
		acc = lo
	}
	return Exact(acc)
}

// Sum folds variant counts into the count of their disjoint union.
//
// The fold starts at Exact(0), so an empty variant list (the uninhabited
// sum) has no values. Any Unknown term, or an overflowing addition, makes
// the result Unknown; there is no absorbing element for addition.
func Sum(counts ...Count) Count {
	acc := uint64(0)
	for _, c := range counts {
		if !c.known {
			return Unknown()
		}
		sum, carry := bits.Add64(acc, c.n, 0)
		if carry != 0 {
			return Unknown()
		}
		acc = sum
	}
	return Exact(acc)
}
