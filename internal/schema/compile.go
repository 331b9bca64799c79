package schema

import (
	"fmt"

	"exhaust/internal/atom"
	"exhaust/internal/shape"
)

// Compile error codes.
const (
	ErrCodeUnknownKind   = "UNKNOWN_KIND"
	ErrCodeMissingBounds = "MISSING_BOUNDS"
	ErrCodeBadBounds     = "BAD_BOUNDS"
	ErrCodeBadValue      = "BAD_VALUE"
	ErrCodeMissingChild  = "MISSING_CHILD"
)

// CompileError reports an invalid node, with the path from the root so
// nested mistakes are locatable.
type CompileError struct {
	Code    string
	Path    string
	Message string
}

func (e *CompileError) Error() string {
	return fmt.Sprintf("%s: %s: %s", e.Code, e.Path, e.Message)
}

// Compile translates a document into an enumerable shape.
func Compile(doc *Document) (shape.Enumerable, error) {
	return compileNode(&doc.Shape, "shape")
}

func compileNode(n *Node, path string) (shape.Enumerable, error) {
	switch n.Kind {
	case "product":
		fields := make([]shape.Enumerable, len(n.Fields))
		for i := range n.Fields {
			f, err := compileNode(&n.Fields[i], fmt.Sprintf("%s.fields[%d]", path, i))
			if err != nil {
				return nil, err
			}
			fields[i] = f
		}
		return shape.Product(fields...), nil

	case "sum":
		variants := make([]shape.Enumerable, len(n.Variants))
		for i := range n.Variants {
			v, err := compileNode(&n.Variants[i], fmt.Sprintf("%s.variants[%d]", path, i))
			if err != nil {
				return nil, err
			}
			variants[i] = v
		}
		return shape.Sum(variants...), nil

	case "bool":
		return atom.Bool(), nil

	case "unit":
		return atom.Unit(n.Value), nil

	case "empty":
		return atom.Empty(), nil

	case "range":
		if n.Min == nil || n.Max == nil {
			return nil, &CompileError{Code: ErrCodeMissingBounds, Path: path, Message: "range needs both min and max"}
		}
		if *n.Min > *n.Max {
			return nil, &CompileError{
				Code:    ErrCodeBadBounds,
				Path:    path,
				Message: fmt.Sprintf("min %d exceeds max %d", *n.Min, *n.Max),
			}
		}
		return atom.Range(*n.Min, *n.Max), nil

	case "values":
		vals := make([]any, len(n.Values))
		for i, v := range n.Values {
			sv, err := scalar(v)
			if err != nil {
				return nil, &CompileError{
					Code:    ErrCodeBadValue,
					Path:    fmt.Sprintf("%s.values[%d]", path, i),
					Message: err.Error(),
				}
			}
			vals[i] = sv
		}
		return atom.Of(vals...), nil

	case "rune":
		return atom.Rune(), nil

	case "option":
		if n.Of == nil {
			return nil, &CompileError{Code: ErrCodeMissingChild, Path: path, Message: "option needs an inner node under of"}
		}
		inner, err := compileNode(n.Of, path+".of")
		if err != nil {
			return nil, err
		}
		return atom.Option(inner), nil

	case "result":
		if n.Ok == nil || n.Err == nil {
			return nil, &CompileError{Code: ErrCodeMissingChild, Path: path, Message: "result needs both ok and err nodes"}
		}
		okShape, err := compileNode(n.Ok, path+".ok")
		if err != nil {
			return nil, err
		}
		errShape, err := compileNode(n.Err, path+".err")
		if err != nil {
			return nil, err
		}
		return atom.Result(okShape, errShape), nil

	case "":
		return nil, &CompileError{Code: ErrCodeUnknownKind, Path: path, Message: "node has no kind"}

	default:
		return nil, &CompileError{
			Code:    ErrCodeUnknownKind,
			Path:    path,
			Message: fmt.Sprintf("unknown kind %q", n.Kind),
		}
	}
}

// scalar normalizes a decoded value to one of the stable scalar forms:
// string, bool, or int64. Integer widths vary by front end, so all of them
// collapse to int64. Floats are rejected - they have no place in an exact
// enumeration.
func scalar(v any) (any, error) {
	switch x := v.(type) {
	case string:
		return x, nil
	case bool:
		return x, nil
	case int:
		return int64(x), nil
	case int64:
		return x, nil
	case uint64:
		if x > 1<<63-1 {
			return nil, fmt.Errorf("integer %d out of int64 range", x)
		}
		return int64(x), nil
	case nil:
		return nil, nil
	default:
		return nil, fmt.Errorf("unsupported scalar %T (want string, bool or integer)", v)
	}
}
