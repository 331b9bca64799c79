package atom

import (
	"exhaust/internal/card"
	"exhaust/internal/shape"
)

// Option lifts a domain into its optional form: the absent value (nil)
// first, then every inner value in the inner order. The count is the inner
// count plus one.
func Option(inner shape.Enumerable) shape.Enumerable {
	return option{inner: inner}
}

type option struct {
	inner shape.Enumerable
}

func (o option) Count() card.Count {
	return card.Sum(card.Exact(1), o.inner.Count())
}

func (o option) Enumerator() shape.Enumerator {
	return &optionEnumerator{inner: o.inner.Enumerator()}
}

// optionEnumerator yields nil before touching the inner sequence, so an
// option over an uninhabited domain still has its one absent value.
type optionEnumerator struct {
	inner   shape.Enumerator
	started bool
}

func (e *optionEnumerator) Next() (any, bool) {
	if !e.started {
		e.started = true
		return nil, true
	}
	return e.inner.Next()
}

// Ok tags a Result value drawn from the success domain.
type Ok struct {
	Value any
}

// Err tags a Result value drawn from the error domain.
type Err struct {
	Value any
}

// Result combines a success and an error domain: every Ok value first,
// then every Err value. The count is the checked sum of both.
func Result(ok, err shape.Enumerable) shape.Enumerable {
	return result{ok: ok, err: err}
}

type result struct {
	ok, err shape.Enumerable
}

func (r result) Count() card.Count {
	return card.Sum(r.ok.Count(), r.err.Count())
}

func (r result) Enumerator() shape.Enumerator {
	return &resultEnumerator{r: r, cursor: r.ok.Enumerator()}
}

// resultEnumerator drains the success domain, then lazily switches to the
// error domain.
type resultEnumerator struct {
	r      result
	cursor shape.Enumerator
	inErr  bool
}

func (e *resultEnumerator) Next() (any, bool) {
	for {
		if v, ok := e.cursor.Next(); ok {
			if e.inErr {
				return Err{Value: v}, true
			}
			return Ok{Value: v}, true
		}
		if e.inErr {
			return nil, false
		}
		e.inErr = true
		e.cursor = e.r.err.Enumerator()
	}
}
