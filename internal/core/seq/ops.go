package seq

import "github.com/shopspring/decimal"

// KeyMatcher is implemented by elements that can be selected by a key of
// another type.
type KeyMatcher[K any] interface {
	MatchesKey(key K) bool
}

// Valuer is implemented by elements that carry a monetary value.
type Valuer interface {
	StockValue() decimal.Decimal
}

// Filter returns a new list with the elements of source that match key, in
// source order. source is not modified.
func Filter[T KeyMatcher[K], K any](source *List[T], key K) *List[T] {
	out := New[T]()
	c := source.Cursor()
	for c.Reset(); c.Valid(); c.Advance() {
		if v := c.Value(); v.MatchesKey(key) {
			out.Append(v)
		}
	}
	return out
}

// Sum adds up StockValue over the list using exact decimal arithmetic.
// An empty list sums to zero.
func Sum[T Valuer](list *List[T]) decimal.Decimal {
	total := decimal.Zero
	c := list.Cursor()
	for c.Reset(); c.Valid(); c.Advance() {
		total = total.Add(c.Value().StockValue())
	}
	return total
}
