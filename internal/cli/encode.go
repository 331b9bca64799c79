package cli

import (
	"encoding/json"

	"exhaust/internal/atom"
	"exhaust/internal/shape"
)

// taggedJSON fixes the field order of a sum value's encoding; a map would
// marshal with sorted keys and put value before variant.
type taggedJSON struct {
	Variant int `json:"variant"`
	Value   any `json:"value"`
}

type okJSON struct {
	Ok any `json:"ok"`
}

type errJSON struct {
	Err any `json:"err"`
}

// encodeValue renders an enumerated value as deterministic JSON: tuples as
// arrays, tagged values as {variant, value} objects, result values as
// single-key {ok}/{err} objects, scalars as themselves.
func encodeValue(v any) ([]byte, error) {
	return json.Marshal(jsonable(v))
}

func jsonable(v any) any {
	switch x := v.(type) {
	case shape.Tuple:
		arr := make([]any, len(x))
		for i, e := range x {
			arr[i] = jsonable(e)
		}
		return arr
	case shape.Tagged:
		return taggedJSON{Variant: x.Variant, Value: jsonable(x.Value)}
	case atom.Ok:
		return okJSON{Ok: jsonable(x.Value)}
	case atom.Err:
		return errJSON{Err: jsonable(x.Value)}
	default:
		return v
	}
}
