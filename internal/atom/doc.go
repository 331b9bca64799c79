// Package atom provides the leaf domains the enumeration engine composes:
// booleans, inclusive integer ranges, explicit value lists, Unicode scalar
// values, and the optional-value and result-value containers.
//
// Every constructor returns a shape.Enumerable, so leaves plug into
// shape.Product and shape.Sum like any other node. Leaves own their
// enumeration order; the engine only relies on it being stable across
// Enumerator calls.
package atom
