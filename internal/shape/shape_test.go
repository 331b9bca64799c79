package shape

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"exhaust/internal/card"
)

// keyOf is an equality key for composite values in tests.
func keyOf(v any) string {
	return fmt.Sprintf("%#v", v)
}

func TestNesting_SumInsideProduct(t *testing.T) {
	// A field of a product may itself be a sum; the combinators only see
	// the Enumerable capability.
	inner := Sum(Product(), leaf{true, false})
	p := Product(leaf{1, 2}, inner)

	assert.Equal(t, card.Exact(6), p.Count())

	got := Collect(p)
	want := []any{
		Tuple{1, Tagged{Variant: 0, Value: Tuple{}}},
		Tuple{1, Tagged{Variant: 1, Value: true}},
		Tuple{1, Tagged{Variant: 1, Value: false}},
		Tuple{2, Tagged{Variant: 0, Value: Tuple{}}},
		Tuple{2, Tagged{Variant: 1, Value: true}},
		Tuple{2, Tagged{Variant: 1, Value: false}},
	}
	assert.Equal(t, want, got)
}

func TestNesting_ProductInsideSumInsideProduct(t *testing.T) {
	payload := Product(leaf{"p", "q"}, leaf{0, 1})
	variant := Sum(payload, Product())
	root := Product(leaf{"L", "R"}, variant)

	assert.Equal(t, card.Exact(10), root.Count(), "2 * (2*2 + 1)")

	vals := Collect(root)
	require.Len(t, vals, 10)

	seen := make(map[string]bool, len(vals))
	for _, v := range vals {
		key := keyOf(v)
		assert.False(t, seen[key], "duplicate value %v", v)
		seen[key] = true
	}
}

func TestNesting_DeepRestartability(t *testing.T) {
	deep := Product(
		Sum(leaf{}, Product(leaf{1, 2})),
		Sum(Product(), leaf{"a"}),
	)
	assert.Equal(t, Collect(deep), Collect(deep))
}

func TestNesting_UninhabitedLeafPropagates(t *testing.T) {
	// An empty leaf buried three levels down empties everything above it
	// that requires it.
	dead := Product(leaf{1}, Sum(leaf{}))
	assert.Equal(t, card.Exact(0), dead.Count())
	assert.Empty(t, Collect(dead))

	// But as a sum variant it is merely skipped.
	alive := Sum(dead, leaf{"survivor"})
	assert.Equal(t, card.Exact(1), alive.Count())
	assert.Equal(t, []any{Tagged{Variant: 1, Value: "survivor"}}, Collect(alive))
}

func TestAll_RangeOverFunc(t *testing.T) {
	p := Product(leaf{1, 2}, leaf{"x"})

	var got []any
	for v := range All(p) {
		got = append(got, v)
	}
	assert.Equal(t, []any{Tuple{1, "x"}, Tuple{2, "x"}}, got)
}

func TestAll_EarlyBreak(t *testing.T) {
	p := Product(leaf{1, 2, 3}, leaf{1, 2, 3})

	n := 0
	for range All(p) {
		n++
		if n == 4 {
			break
		}
	}
	assert.Equal(t, 4, n)

	// Ranging again restarts from the top.
	first := 0
	for v := range All(p) {
		assert.Equal(t, Tuple{1, 1}, v)
		first++
		break
	}
	assert.Equal(t, 1, first)
}

func TestCollect_LengthMatchesCountAcrossShapes(t *testing.T) {
	shapes := []struct {
		name string
		s    Enumerable
	}{
		{"unit", Product()},
		{"empty sum", Sum()},
		{"flat product", Product(leaf{1, 2, 3}, leaf{1, 2})},
		{"flat sum", Sum(leaf{1}, leaf{2, 3})},
		{"mixed", Product(Sum(Product(), Product()), leaf{1, 2, 3})},
	}
	for _, tt := range shapes {
		t.Run(tt.name, func(t *testing.T) {
			n, ok := tt.s.Count().Value()
			require.True(t, ok)
			assert.Len(t, Collect(tt.s), int(n))
		})
	}
}
