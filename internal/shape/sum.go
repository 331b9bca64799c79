package shape

import "exhaust/internal/card"

// Sum combines variant shapes into the shape of their disjoint union.
//
// Values are Tagged pairs: the variant's declaration index plus one of its
// payload values. Variants enumerate in declaration order; a payload-less
// variant is modeled as a zero-field Product and contributes exactly one
// tagged value. Uninhabited variants contribute nothing and are skipped. A
// sum with no variants is uninhabited.
//
// The variant list is captured as-is and must not be mutated afterwards.
func Sum(variants ...Enumerable) Enumerable {
	return sum(variants)
}

type sum []Enumerable

func (s sum) Count() card.Count {
	counts := make([]card.Count, len(s))
	for i, v := range s {
		counts[i] = v.Count()
	}
	return card.Sum(counts...)
}

func (s sum) Enumerator() Enumerator {
	return newConcatenator(s)
}

// concatenator runs the variant sequences back to back.
//
// The state is a position in the machine Before(idx) / Active(idx) /
// Finished: inner == nil && !done is Before(idx), inner != nil is
// Active(idx), done is Finished. Variant enumerators are constructed lazily
// on first entry, never ahead of need.
type concatenator struct {
	variants sum
	idx      int
	inner    Enumerator
	current  Tagged
	done     bool
}

func newConcatenator(variants sum) *concatenator {
	c := &concatenator{variants: variants}
	// Priming: find the first inhabited variant, or finish immediately.
	c.advance()
	return c
}

// Next returns the tagged value implied by the current state, then
// transitions toward the next one. Finished is absorbing.
func (c *concatenator) Next() (any, bool) {
	if c.done {
		return nil, false
	}
	out := c.current
	c.advance()
	return out, true
}

// advance moves the machine until it either holds a value or finishes.
//
// From Active(idx): pull the variant's enumerator; on exhaustion fall
// through to Before(idx+1). From Before(idx): construct variant idx's
// enumerator lazily and try it; an uninhabited variant yields nothing on
// the first pull and the loop chains straight to the next one. Past the
// last variant the machine finishes.
func (c *concatenator) advance() {
	for {
		if c.inner != nil {
			if v, ok := c.inner.Next(); ok {
				c.current = Tagged{Variant: c.idx, Value: v}
				return
			}
			c.inner = nil
			c.idx++
		}
		if c.idx >= len(c.variants) {
			c.done = true
			return
		}
		c.inner = c.variants[c.idx].Enumerator()
	}
}
