package derive

import (
	"fmt"
	"math"
	"reflect"

	"exhaust/internal/atom"
	"exhaust/internal/shape"
)

// Deriver turns Go types into enumerable shapes. It carries atom overrides
// and interface variant registrations; the zero Deriver (via NewDeriver)
// handles the structural kinds with built-in leaves.
//
// Registration happens up front; Derive calls after that are read-only and
// may share a Deriver.
type Deriver struct {
	atoms    map[reflect.Type]shape.Enumerable
	variants map[reflect.Type][]reflect.Type
	cache    map[reflect.Type]shape.Enumerable
}

// NewDeriver returns an empty Deriver.
func NewDeriver() *Deriver {
	return &Deriver{
		atoms:    make(map[reflect.Type]shape.Enumerable),
		variants: make(map[reflect.Type][]reflect.Type),
		cache:    make(map[reflect.Type]shape.Enumerable),
	}
}

// RegisterAtom overrides derivation for prototype's type with a custom
// leaf. The leaf must yield values assignable to that type.
func (d *Deriver) RegisterAtom(prototype any, e shape.Enumerable) {
	d.atoms[reflect.TypeOf(prototype)] = e
}

// RegisterVariants declares the closed set of implementations for an
// interface type, in enumeration order. The iface argument is a nil
// pointer to the interface, e.g. (*Command)(nil); each impl is a zero
// value of a concrete implementing type.
func (d *Deriver) RegisterVariants(iface any, impls ...any) error {
	t := reflect.TypeOf(iface)
	if t == nil || t.Kind() != reflect.Ptr || t.Elem().Kind() != reflect.Interface {
		return &Error{
			Code:    ErrCodeBadRegistration,
			Message: "iface must be a nil pointer to an interface type, like (*Command)(nil)",
		}
	}
	ifaceType := t.Elem()

	types := make([]reflect.Type, 0, len(impls))
	for _, impl := range impls {
		it := reflect.TypeOf(impl)
		if it == nil || !it.Implements(ifaceType) {
			return &Error{
				Code:    ErrCodeBadRegistration,
				Type:    ifaceType,
				Message: fmt.Sprintf("%T does not implement %s", impl, ifaceType),
			}
		}
		types = append(types, it)
	}
	d.variants[ifaceType] = types
	return nil
}

// For derives the shape of T.
func For[T any](d *Deriver) (shape.Enumerable, error) {
	return d.derive(reflect.TypeOf((*T)(nil)).Elem(), nil)
}

// Derive derives the shape of prototype's type.
func (d *Deriver) Derive(prototype any) (shape.Enumerable, error) {
	t := reflect.TypeOf(prototype)
	if t == nil {
		return nil, &Error{Code: ErrCodeUnsupportedKind, Message: "cannot derive from untyped nil"}
	}
	return d.derive(t, nil)
}

// derive dispatches on type, threading the in-progress stack for cycle
// detection. Results are cached per type; a type's shape does not depend
// on where it appears.
func (d *Deriver) derive(t reflect.Type, inProgress []reflect.Type) (shape.Enumerable, error) {
	if e, ok := d.atoms[t]; ok {
		return e, nil
	}
	if e, ok := d.cache[t]; ok {
		return e, nil
	}
	for _, p := range inProgress {
		if p == t {
			return nil, &Error{Code: ErrCodeCyclicType, Type: t, Message: "type contains itself"}
		}
	}
	inProgress = append(inProgress, t)

	e, err := d.deriveUncached(t, inProgress)
	if err != nil {
		return nil, err
	}
	d.cache[t] = e
	return e, nil
}

func (d *Deriver) deriveUncached(t reflect.Type, inProgress []reflect.Type) (shape.Enumerable, error) {
	switch t.Kind() {
	case reflect.Bool:
		return convert(atom.Bool(), t), nil

	case reflect.Int8:
		return convert(atom.Range(int8(math.MinInt8), int8(math.MaxInt8)), t), nil
	case reflect.Int16:
		return convert(atom.Range(int16(math.MinInt16), int16(math.MaxInt16)), t), nil
	case reflect.Int32:
		return convert(atom.Range(int32(math.MinInt32), int32(math.MaxInt32)), t), nil
	case reflect.Int64:
		return convert(atom.Range(int64(math.MinInt64), int64(math.MaxInt64)), t), nil
	case reflect.Int:
		return convert(atom.Range(math.MinInt, math.MaxInt), t), nil

	case reflect.Uint8:
		return convert(atom.Range(uint8(0), uint8(math.MaxUint8)), t), nil
	case reflect.Uint16:
		return convert(atom.Range(uint16(0), uint16(math.MaxUint16)), t), nil
	case reflect.Uint32:
		return convert(atom.Range(uint32(0), uint32(math.MaxUint32)), t), nil
	case reflect.Uint64:
		return convert(atom.Range(uint64(0), uint64(math.MaxUint64)), t), nil
	case reflect.Uint:
		return convert(atom.Range(uint(0), ^uint(0)), t), nil
	case reflect.Uintptr:
		return convert(atom.Range(uintptr(0), ^uintptr(0)), t), nil

	case reflect.Struct:
		return d.deriveStruct(t, inProgress)

	case reflect.Ptr:
		return d.derivePointer(t, inProgress)

	case reflect.Array:
		return d.deriveArray(t, inProgress)

	case reflect.Interface:
		return d.deriveInterface(t, inProgress)

	default:
		return nil, &Error{
			Code:    ErrCodeUnsupportedKind,
			Type:    t,
			Message: fmt.Sprintf("kind %s is not enumerable", t.Kind()),
		}
	}
}

// deriveStruct builds a product over the fields in declaration order and
// reassembles each tuple into a struct value. A zero-field struct is the
// unit shape holding its zero value.
func (d *Deriver) deriveStruct(t reflect.Type, inProgress []reflect.Type) (shape.Enumerable, error) {
	if t.NumField() == 0 {
		return atom.Unit(reflect.Zero(t).Interface()), nil
	}

	fields := make([]shape.Enumerable, t.NumField())
	for i := range t.NumField() {
		f := t.Field(i)
		if !f.IsExported() {
			return nil, &Error{
				Code:    ErrCodeUnexportedField,
				Type:    t,
				Field:   f.Name,
				Message: "unexported fields cannot be populated",
			}
		}
		fe, err := d.derive(f.Type, inProgress)
		if err != nil {
			return nil, err
		}
		fields[i] = fe
	}

	return remap(shape.Product(fields...), func(v any) any {
		tuple := v.(shape.Tuple)
		out := reflect.New(t).Elem()
		for i, fv := range tuple {
			out.Field(i).Set(reflect.ValueOf(fv).Convert(t.Field(i).Type))
		}
		return out.Interface()
	}), nil
}

// derivePointer lifts the element shape into its optional form: the typed
// nil pointer first, then a pointer to each element value.
func (d *Deriver) derivePointer(t reflect.Type, inProgress []reflect.Type) (shape.Enumerable, error) {
	elem, err := d.derive(t.Elem(), inProgress)
	if err != nil {
		return nil, err
	}
	return remap(atom.Option(elem), func(v any) any {
		if v == nil {
			return reflect.Zero(t).Interface()
		}
		p := reflect.New(t.Elem())
		p.Elem().Set(reflect.ValueOf(v).Convert(t.Elem()))
		return p.Interface()
	}), nil
}

// deriveArray builds an N-fold product of the element shape and packs each
// tuple into an array value. A zero-length array is the unit shape.
func (d *Deriver) deriveArray(t reflect.Type, inProgress []reflect.Type) (shape.Enumerable, error) {
	elem, err := d.derive(t.Elem(), inProgress)
	if err != nil {
		return nil, err
	}
	fields := make([]shape.Enumerable, t.Len())
	for i := range fields {
		fields[i] = elem
	}
	return remap(shape.Product(fields...), func(v any) any {
		tuple := v.(shape.Tuple)
		out := reflect.New(t).Elem()
		for i, ev := range tuple {
			out.Index(i).Set(reflect.ValueOf(ev).Convert(t.Elem()))
		}
		return out.Interface()
	}), nil
}

// deriveInterface builds a sum over the registered implementations and
// unwraps each tagged value to the bare concrete value; the tag is
// recoverable from the value's dynamic type.
func (d *Deriver) deriveInterface(t reflect.Type, inProgress []reflect.Type) (shape.Enumerable, error) {
	impls, ok := d.variants[t]
	if !ok {
		return nil, &Error{
			Code:    ErrCodeUnregisteredInterface,
			Type:    t,
			Message: "no variants registered; call RegisterVariants first",
		}
	}
	variants := make([]shape.Enumerable, len(impls))
	for i, impl := range impls {
		ve, err := d.derive(impl, inProgress)
		if err != nil {
			return nil, err
		}
		variants[i] = ve
	}
	return remap(shape.Sum(variants...), func(v any) any {
		return v.(shape.Tagged).Value
	}), nil
}
