package shape

import "exhaust/internal/card"

// Product combines field shapes into the shape of their cartesian product.
//
// Values are Tuples in lexicographic order with the last field varying
// fastest. A product with no fields has exactly one value, the empty Tuple;
// a product with any uninhabited field has none.
//
// The field list is captured as-is and must not be mutated afterwards; the
// shape tree is built once and immutable.
func Product(fields ...Enumerable) Enumerable {
	return product(fields)
}

type product []Enumerable

func (p product) Count() card.Count {
	counts := make([]card.Count, len(p))
	for i, f := range p {
		counts[i] = f.Count()
	}
	return card.Product(counts...)
}

func (p product) Enumerator() Enumerator {
	return newOdometer(p)
}

// odometer enumerates a product by treating the fields as digits of a
// mixed-radix counter, last field least significant.
//
// Every field's child enumerator is retained, not just the last one's: carry
// can propagate into any position, and the position carried into needs its
// exhausted enumerator replaced with a fresh one.
type odometer struct {
	fields  product
	cursors []Enumerator
	current Tuple
	done    bool
}

// newOdometer primes the counter by pulling one value from every field, in
// field order. If any pull fails the product is uninhabited and the
// enumerator is born exhausted. With zero fields the loop body never runs
// and the single empty tuple is the first (and only) value.
func newOdometer(fields product) *odometer {
	o := &odometer{
		fields:  fields,
		cursors: make([]Enumerator, len(fields)),
		current: make(Tuple, len(fields)),
	}
	for i, f := range fields {
		o.cursors[i] = f.Enumerator()
		v, ok := o.cursors[i].Next()
		if !ok {
			o.done = true
			return o
		}
		o.current[i] = v
	}
	return o
}

// Next returns the tuple prepared by the previous call (or by priming) and
// then steps the counter to prepare the next one. Returning before stepping
// is what lets priming double as the first production.
func (o *odometer) Next() (any, bool) {
	if o.done {
		return nil, false
	}
	out := make(Tuple, len(o.current))
	copy(out, o.current)
	o.step()
	return out, true
}

// step advances the least-significant field, carrying left on exhaustion.
// A field carried into is reset to a fresh enumerator and its first value
// taken unchecked: priming proved the field non-empty, and restarting a
// factory cannot change that. Carry past field 0 exhausts the whole
// product.
func (o *odometer) step() {
	for i := len(o.fields) - 1; i >= 0; i-- {
		if v, ok := o.cursors[i].Next(); ok {
			o.current[i] = v
			return
		}
		o.cursors[i] = o.fields[i].Enumerator()
		v, _ := o.cursors[i].Next()
		o.current[i] = v
	}
	o.done = true
}
