package seq

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestFilter(t *testing.T) {
	source := From(
		item{key: "A", weight: 1},
		item{key: "B", weight: 2},
		item{key: "a", weight: 3},
		item{key: "A", weight: 4},
	)

	got := Filter(source, "A")

	assert.Equal(t, []int{1, 4}, weights(got))
	// source untouched
	assert.Equal(t, []int{1, 2, 3, 4}, weights(source))
	assert.Equal(t, 4, source.Len())
}

func TestFilter_EmptyKeyAndEmptySource(t *testing.T) {
	source := From(item{key: "", weight: 1})

	assert.True(t, Filter(source, "").IsEmpty())
	assert.True(t, Filter(New[item](), "A").IsEmpty())
}

func TestSum(t *testing.T) {
	l := From(
		item{weight: 3, price: "0.1"},
		item{weight: 10, price: "1.25"},
		item{weight: 0, price: "99"},
	)

	want := decimal.Zero
	for it := range l.All() {
		want = want.Add(decimal.RequireFromString(it.price).Mul(decimal.NewFromInt(int64(it.weight))))
	}

	got := Sum(l)
	assert.True(t, want.Equal(got))
	assert.Equal(t, "12.8", got.String())
}

func TestSum_Empty(t *testing.T) {
	assert.True(t, Sum(New[item]()).IsZero())
}
