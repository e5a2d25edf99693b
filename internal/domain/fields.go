package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// LineFields is the mutable working set for one table row while it moves
// through reconciliation. A nil pointer means the field is absent; the
// reconciler treats absent and zero differently for discounts.
type LineFields struct {
	InvoiceNumber   *string
	InvoiceDate     *time.Time
	DeliveryDate    *time.Time
	DueDate         *time.Time
	ProductCode     *string
	ProductName     *string
	ProductCategory *string
	UnitType        *string
	UnitSubtype     *string
	DocumentType    *string
	Currency        *string

	Quantity               *decimal.Decimal
	SubQuantity            *decimal.Decimal
	UnitPrice              *decimal.Decimal
	UnitPriceAfterDiscount *decimal.Decimal
	DiscountAmount         *decimal.Decimal
	DiscountPercentage     *decimal.Decimal
	TotalPrice             *decimal.Decimal
	TotalPriceAfterDisc    *decimal.Decimal
	TotalTax               *decimal.Decimal
}

// Dec wraps a decimal in a pointer, for literals in construction and tests.
func Dec(d decimal.Decimal) *decimal.Decimal { return &d }

// DecFloat is shorthand for Dec(decimal.NewFromFloat(f)).
func DecFloat(f float64) *decimal.Decimal {
	d := decimal.NewFromFloat(f)
	return &d
}

// NonZero reports whether d is set and not zero.
func NonZero(d *decimal.Decimal) bool { return d != nil && !d.IsZero() }

// QuantityOrOne returns the line quantity, defaulting to 1 when absent.
func (f *LineFields) QuantityOrOne() decimal.Decimal {
	if f.Quantity == nil || f.Quantity.IsZero() {
		return decimal.NewFromInt(1)
	}
	return *f.Quantity
}

// NullDec converts an optional decimal to its persistence representation.
func NullDec(d *decimal.Decimal) decimal.NullDecimal {
	if d == nil {
		return decimal.NullDecimal{}
	}
	return decimal.NullDecimal{Decimal: *d, Valid: true}
}
