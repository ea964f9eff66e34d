// Package stock provides the perishable stock record read from a store inventory.
package stock

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"perishables/internal/core/apperror"
	"perishables/internal/core/seq"
	"perishables/internal/core/types"
)

// Compile-time checks that *Record satisfies the list capabilities.
var (
	_ seq.Prunable[*Record]  = (*Record)(nil)
	_ seq.KeyMatcher[string] = (*Record)(nil)
	_ seq.Valuer             = (*Record)(nil)
)

const day = 24 * time.Hour

// Record is one inventory line: a product delivered to a store, how much of
// it was sold and how much is left before it expires. Records are immutable.
type Record struct {
	store     string
	product   string
	delivered time.Time
	sold      int
	remaining int
	expires   time.Time
	unitPrice types.Money
}

// NewRecord validates the fields and creates a Record.
// Dates are truncated to calendar days.
func NewRecord(
	store, product string,
	delivered time.Time,
	sold, remaining int,
	expires time.Time,
	unitPrice types.Money,
) (*Record, error) {
	delivered = truncateDay(delivered)
	expires = truncateDay(expires)

	if strings.TrimSpace(store) == "" {
		return nil, apperror.NewValidation("store name is required").
			WithDetail("field", "store")
	}
	if sold < 0 {
		return nil, apperror.NewValidation("sold quantity cannot be negative").
			WithDetail("field", "sold").
			WithDetail("value", sold)
	}
	if remaining < 0 {
		return nil, apperror.NewValidation("remaining quantity cannot be negative").
			WithDetail("field", "remaining").
			WithDetail("value", remaining)
	}
	if expires.Before(delivered) {
		return nil, apperror.NewValidation("expiry date is before delivery date").
			WithDetail("field", "expires").
			WithDetail("delivered", delivered.Format(time.DateOnly)).
			WithDetail("expires", expires.Format(time.DateOnly))
	}
	if unitPrice.IsNegative() {
		return nil, apperror.NewValidation("unit price cannot be negative").
			WithDetail("field", "unitPrice").
			WithDetail("value", unitPrice.String())
	}

	return &Record{
		store:     store,
		product:   product,
		delivered: delivered,
		sold:      sold,
		remaining: remaining,
		expires:   expires,
		unitPrice: unitPrice,
	}, nil
}

// NewCriterion creates the synthetic record used as a removal criterion.
// Only the period and the remaining quantity take part in PrunedBy.
func NewCriterion(begin, end time.Time, remaining int) (*Record, error) {
	begin = truncateDay(begin)
	end = truncateDay(end)

	if remaining < 0 {
		return nil, apperror.NewValidation("criterion remaining quantity cannot be negative").
			WithDetail("field", "remaining")
	}
	if end.Before(begin) {
		return nil, apperror.NewValidation("criterion period ends before it begins").
			WithDetail("field", "end")
	}

	return &Record{
		delivered: begin,
		remaining: remaining,
		expires:   end,
		unitPrice: decimal.Zero,
	}, nil
}

func (r *Record) Store() string { return r.store }
func (r *Record) Product() string { return r.product }
func (r *Record) Delivered() time.Time { return r.delivered }
func (r *Record) Sold() int { return r.sold }
func (r *Record) Remaining() int { return r.remaining }
func (r *Record) Expires() time.Time { return r.expires }
func (r *Record) UnitPrice() types.Money { return r.unitPrice }

// PeriodDays returns the whole days between delivery and expiry.
func (r *Record) PeriodDays() int {
	return int(r.expires.Sub(r.delivered) / day)
}

// PrunedBy reports whether r should be removed for criterion c: r keeps
// for fewer days than c and has more left over than c. The relation is
// deliberately one-sided; do not use it to sort. A nil criterion prunes
// nothing.
func (r *Record) PrunedBy(c *Record) bool {
	if c == nil {
		return false
	}
	return r.PeriodDays() < c.PeriodDays() && r.remaining > c.remaining
}

// MatchesKey reports whether r belongs to the given store. The comparison is
// exact and case-sensitive; an empty store name never matches.
func (r *Record) MatchesKey(store string) bool {
	return store != "" && r.store == store
}

// StockValue is the value of what is left: remaining * unit price.
func (r *Record) StockValue() decimal.Decimal {
	return types.MulInt(r.unitPrice, r.remaining)
}

func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
