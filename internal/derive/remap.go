package derive

import (
	"reflect"

	"exhaust/internal/card"
	"exhaust/internal/shape"
)

// remap wraps an enumerable with a per-value transformation. The
// transformation is a bijection on the shapes built here (tuple to struct,
// option to pointer, tagged to concrete), so count, order and distinctness
// pass through untouched.
func remap(inner shape.Enumerable, fn func(any) any) shape.Enumerable {
	return remapped{inner: inner, fn: fn}
}

type remapped struct {
	inner shape.Enumerable
	fn    func(any) any
}

func (r remapped) Count() card.Count {
	return r.inner.Count()
}

func (r remapped) Enumerator() shape.Enumerator {
	return &remapEnumerator{inner: r.inner.Enumerator(), fn: r.fn}
}

type remapEnumerator struct {
	inner shape.Enumerator
	fn    func(any) any
}

func (e *remapEnumerator) Next() (any, bool) {
	v, ok := e.inner.Next()
	if !ok {
		return nil, false
	}
	return e.fn(v), true
}

// convert remaps a leaf's values to a defined type when the derived type
// is not the predeclared one the leaf yields. Predeclared types have an
// empty package path; for those the leaf is already exact.
func convert(inner shape.Enumerable, t reflect.Type) shape.Enumerable {
	if t.PkgPath() == "" {
		return inner
	}
	return remap(inner, func(v any) any {
		return reflect.ValueOf(v).Convert(t).Interface()
	})
}
