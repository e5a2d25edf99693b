package discount

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/nordbooks/lineflow/internal/domain"
)

// Reconcile fills in whichever of the line's price and discount fields are
// missing, using a fixed priority of derivation scenarios. The first scenario
// whose inputs are present wins. On return, at most one of DiscountAmount and
// DiscountPercentage is non-zero.
func (e *Engine) Reconcile(f *domain.LineFields, pattern domain.DiscountPattern) {
	// OCR sometimes extracts both a percentage and an amount for the same
	// line. Percentage is the canonical representation; the amount is
	// zeroed before any derivation runs. Logged as a warning so conflicting
	// source data stays visible.
	if domain.NonZero(f.DiscountAmount) && domain.NonZero(f.DiscountPercentage) {
		e.log.Warn("both discount amount and percentage present, percentage wins",
			zap.String("amount", f.DiscountAmount.String()),
			zap.String("percentage", f.DiscountPercentage.String()))
		f.DiscountAmount = domain.Dec(decimal.Zero)
	}

	switch {
	case e.fromPercentage(f):
	case e.fromAmount(f, pattern):
	case e.fromUnitPrices(f):
	case e.fromTotalPrices(f):
	case e.fromAfterDiscountOnly(f):
	case e.fromConsistentOriginals(f):
	default:
		e.backfillPartial(f)
	}
}

// fromPercentage handles the percentage-only line: derive both after-discount
// prices and force the amount to zero. A negative percentage is a
// credit-note-style uplift.
func (e *Engine) fromPercentage(f *domain.LineFields) bool {
	if !domain.NonZero(f.DiscountPercentage) || domain.NonZero(f.DiscountAmount) {
		return false
	}
	pct := *f.DiscountPercentage

	if domain.NonZero(f.UnitPrice) {
		var after decimal.Decimal
		if pct.IsNegative() {
			after = f.UnitPrice.Mul(one.Add(pct.Abs().Div(hundred)))
		} else {
			after = f.UnitPrice.Mul(one.Sub(pct.Div(hundred)))
		}
		f.UnitPriceAfterDiscount = domain.Dec(round2(after))
	}
	if f.UnitPriceAfterDiscount != nil && domain.NonZero(f.Quantity) {
		f.TotalPriceAfterDisc = domain.Dec(round2(f.UnitPriceAfterDiscount.Mul(*f.Quantity)))
	}
	f.DiscountAmount = domain.Dec(decimal.Zero)
	return true
}

// fromAmount handles a present discount amount. The document pattern decides
// whether the amount applies per unit or to the whole line; the mixed pattern
// falls back to per-line cross-validation against the OCR-reported
// after-discount price, and past that to a size heuristic.
func (e *Engine) fromAmount(f *domain.LineFields, pattern domain.DiscountPattern) bool {
	if !domain.NonZero(f.DiscountAmount) {
		return false
	}

	if domain.NonZero(f.UnitPrice) {
		perUnit := e.perUnitDiscount(f, pattern)
		var after decimal.Decimal
		if perUnit.IsNegative() {
			after = f.UnitPrice.Add(perUnit.Abs())
		} else {
			after = f.UnitPrice.Sub(perUnit)
		}
		if f.UnitPriceAfterDiscount == nil {
			f.UnitPriceAfterDiscount = domain.Dec(round2(after))
		}
	}
	if domain.NonZero(f.TotalPrice) && f.TotalPriceAfterDisc == nil &&
		f.UnitPriceAfterDiscount != nil && domain.NonZero(f.Quantity) {
		f.TotalPriceAfterDisc = domain.Dec(round2(f.UnitPriceAfterDiscount.Mul(*f.Quantity)))
	}
	return true
}

// perUnitDiscount converts the raw discount amount into a per-unit figure.
func (e *Engine) perUnitDiscount(f *domain.LineFields, pattern domain.DiscountPattern) decimal.Decimal {
	amount := *f.DiscountAmount
	qty := f.QuantityOrOne()

	switch pattern {
	case domain.PatternPerUnit:
		return amount
	case domain.PatternTotalLine:
		return amount.Div(qty)
	}

	// Mixed pattern: cross-validate this line on its own.
	if qty.GreaterThan(one) && f.UnitPriceAfterDiscount != nil {
		perUnitErr := f.UnitPrice.Sub(amount).Sub(*f.UnitPriceAfterDiscount).Abs()
		totalLine := amount.Div(qty)
		totalLineErr := f.UnitPrice.Sub(totalLine).Sub(*f.UnitPriceAfterDiscount).Abs()
		if perUnitErr.LessThan(totalLineErr) {
			return amount
		}
		return totalLine
	}
	// No OCR value to validate against: an amount exceeding half the line
	// total cannot plausibly be per-unit.
	if qty.GreaterThan(one) {
		lineTotal := f.UnitPrice.Mul(qty)
		if amount.Abs().GreaterThan(lineTotal.Mul(half)) {
			return amount.Div(qty)
		}
	}
	return amount
}

// fromUnitPrices derives the discount from the gap between the original and
// after-discount unit prices.
func (e *Engine) fromUnitPrices(f *domain.LineFields) bool {
	if f.UnitPrice == nil || f.UnitPriceAfterDiscount == nil {
		return false
	}
	amount := round2(f.UnitPrice.Sub(*f.UnitPriceAfterDiscount))
	if !amount.IsPositive() {
		return false
	}
	f.DiscountAmount = domain.Dec(amount)

	if domain.NonZero(f.TotalPrice) && f.Quantity != nil && f.TotalPriceAfterDisc == nil {
		f.TotalPriceAfterDisc = domain.Dec(round2(f.TotalPrice.Sub(amount.Mul(*f.Quantity))))
	}
	return true
}

// fromTotalPrices derives the per-unit discount from the gap between the
// original and after-discount line totals.
func (e *Engine) fromTotalPrices(f *domain.LineFields) bool {
	if f.TotalPrice == nil || f.TotalPriceAfterDisc == nil || !domain.NonZero(f.Quantity) {
		return false
	}
	totalDiscount := round2(f.TotalPrice.Sub(*f.TotalPriceAfterDisc))
	if !totalDiscount.IsPositive() {
		return false
	}
	perUnit := round2(totalDiscount.Div(*f.Quantity))
	f.DiscountAmount = domain.Dec(perUnit)

	if f.UnitPrice != nil && f.UnitPriceAfterDiscount == nil {
		f.UnitPriceAfterDiscount = domain.Dec(round2(f.UnitPrice.Sub(perUnit)))
	}
	return true
}

// fromAfterDiscountOnly recognizes the case where only after-discount prices
// survived OCR. When they are mutually consistent there is no discount
// information to recover; the line is taken at face value.
func (e *Engine) fromAfterDiscountOnly(f *domain.LineFields) bool {
	if f.UnitPriceAfterDiscount == nil || f.TotalPriceAfterDisc == nil || !domain.NonZero(f.Quantity) {
		return false
	}
	implied := round2(f.TotalPriceAfterDisc.Div(*f.Quantity))
	if implied.Sub(*f.UnitPriceAfterDiscount).Abs().GreaterThan(tolerance) {
		return false
	}
	f.DiscountAmount = domain.Dec(decimal.Zero)
	return true
}

// fromConsistentOriginals recognizes the no-discount line: original prices
// that already multiply out correctly.
func (e *Engine) fromConsistentOriginals(f *domain.LineFields) bool {
	if f.UnitPrice == nil || f.TotalPrice == nil || !domain.NonZero(f.Quantity) {
		return false
	}
	if f.UnitPrice.Mul(*f.Quantity).Sub(*f.TotalPrice).Abs().GreaterThan(tolerance) {
		return false
	}
	f.DiscountAmount = domain.Dec(decimal.Zero)
	f.UnitPriceAfterDiscount = domain.Dec(*f.UnitPrice)
	f.TotalPriceAfterDisc = domain.Dec(*f.TotalPrice)
	return true
}

// backfillPartial reconstructs whichever originals are still missing from
// their after-discount counterparts, then settles the amount at zero if
// nothing ever set it.
func (e *Engine) backfillPartial(f *domain.LineFields) {
	if f.UnitPriceAfterDiscount != nil && f.DiscountAmount != nil && f.UnitPrice == nil {
		f.UnitPrice = domain.Dec(round2(f.UnitPriceAfterDiscount.Add(*f.DiscountAmount)))
	}
	if f.TotalPriceAfterDisc != nil && f.DiscountAmount != nil && f.Quantity != nil && f.TotalPrice == nil {
		f.TotalPrice = domain.Dec(round2(f.TotalPriceAfterDisc.Add(f.DiscountAmount.Mul(*f.Quantity))))
	}
	if f.DiscountAmount == nil {
		f.DiscountAmount = domain.Dec(decimal.Zero)
	}
}
