package discount

import (
	"go.uber.org/zap"

	"github.com/nordbooks/lineflow/internal/domain"
)

// AnalyzePattern inspects all line rows of one document and classifies
// whether discount amounts are expressed per unit or per line total.
// Suppliers keep one format throughout an invoice, so each eligible line
// votes for the hypothesis that better reproduces the OCR-reported
// after-discount unit price; the majority wins. A tie, fewer than two lines,
// or no eligible lines yields PatternMixed, which sends the reconciler back
// to per-line heuristics.
func (e *Engine) AnalyzePattern(lines []*domain.LineFields) domain.DiscountPattern {
	if len(lines) < 2 {
		return domain.PatternMixed
	}

	var perUnitVotes, totalLineVotes int
	for _, f := range lines {
		if f.UnitPrice == nil || f.DiscountAmount == nil || f.UnitPriceAfterDiscount == nil {
			continue
		}
		qty := f.QuantityOrOne()
		if qty.LessThanOrEqual(one) {
			continue
		}

		perUnitErr := f.UnitPrice.Sub(*f.DiscountAmount).Sub(*f.UnitPriceAfterDiscount).Abs()
		totalLineErr := f.UnitPrice.Sub(f.DiscountAmount.Div(qty)).Sub(*f.UnitPriceAfterDiscount).Abs()

		if perUnitErr.LessThan(totalLineErr) {
			perUnitVotes++
		} else {
			totalLineVotes++
		}
	}

	pattern := domain.PatternMixed
	switch {
	case perUnitVotes > totalLineVotes:
		pattern = domain.PatternPerUnit
	case totalLineVotes > perUnitVotes:
		pattern = domain.PatternTotalLine
	}
	e.log.Debug("discount pattern classified",
		zap.Int("lines", len(lines)),
		zap.Int("per_unit_votes", perUnitVotes),
		zap.Int("total_line_votes", totalLineVotes),
		zap.String("pattern", string(pattern)))
	return pattern
}
