// Package derive translates Go type declarations into enumerable shapes.
//
// It is the declaration-to-shape layer in front of the engine: it inspects
// a type with reflection once, wires the matching tree of atom leaves and
// shape combinators, and hands back a shape.Enumerable whose values are
// real values of the inspected type.
//
// Supported kinds:
//   - bool and all fixed-size and platform-size integer kinds (full ranges)
//   - structs: products of their fields in declaration order
//   - pointers: the optional form of their element type (nil first)
//   - arrays: N-fold products of their element type
//   - interfaces with registered implementations: sums in registration
//     order (the stand-in for closed variant sets)
//
// A Deriver carries the registrations. Derivation is structural and total
// over the supported kinds; anything else (maps, slices, strings, floats,
// channels, functions, unregistered interfaces) fails with a structured
// *Error rather than producing a partial shape.
package derive
