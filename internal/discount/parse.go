package discount

import (
	"strings"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/nordbooks/lineflow/internal/normalize"
)

// Parsed is the result of classifying one raw discount token. At most one of
// Amount and Percent is set.
type Parsed struct {
	Amount  *decimal.Decimal
	Percent *decimal.Decimal
}

// Discount percentages suppliers actually print. A bare number hitting one of
// these is almost certainly a percentage, not an amount.
var commonPercents = map[string]struct{}{
	"2": {}, "3": {}, "4": {}, "5": {}, "10": {}, "15": {}, "20": {},
	"25": {}, "30": {}, "35": {}, "40": {}, "45": {}, "50": {},
}

// ParseValue classifies a raw discount token as an absolute amount or a
// percentage. A trailing % decides immediately; otherwise the unit-price
// context is consulted, and failing that the bare-number heuristic.
func (e *Engine) ParseValue(token string, unitPrice, totalPrice *decimal.Decimal, loc normalize.Locale) Parsed {
	token = strings.TrimSpace(token)
	if token == "" {
		return Parsed{}
	}

	if strings.HasSuffix(token, "%") {
		pct := normalize.Number(strings.TrimSuffix(token, "%"), loc)
		return Parsed{Percent: pct}
	}

	val := normalize.Number(token, loc)
	if val == nil {
		return Parsed{}
	}

	if unitPrice != nil && unitPrice.IsPositive() {
		if p, ok := e.classifyWithContext(*val, *unitPrice); ok {
			return p
		}
	}
	return e.classifyHeuristic(*val, token)
}

// classifyWithContext computes the unit price implied by each interpretation
// and keeps whichever yields a plausible positive result. The amount reading
// is rejected when it would wipe out the price or leave less than the
// configured remainder ratio of it.
func (e *Engine) classifyWithContext(val, unitPrice decimal.Decimal) (Parsed, bool) {
	asPercent := unitPrice.Mul(one.Sub(val.Div(hundred)))
	asAmount := unitPrice.Sub(val)

	if asPercent.IsPositive() && asPercent.LessThan(unitPrice) {
		floor := unitPrice.Mul(e.pol.MinRemainderRatio)
		if !asAmount.IsPositive() || asAmount.LessThan(floor) {
			e.log.Debug("discount token read as percentage from price context",
				zap.String("value", val.String()),
				zap.String("implied_unit_price", asPercent.StringFixed(2)))
			return Parsed{Percent: &val}, true
		}
	}
	if asAmount.IsPositive() && asAmount.LessThan(unitPrice) {
		e.log.Debug("discount token read as amount from price context",
			zap.String("value", val.String()),
			zap.String("implied_unit_price", asAmount.StringFixed(2)))
		return Parsed{Amount: &val}, true
	}
	return Parsed{}, false
}

// classifyHeuristic is the context-free fallback: common percentages and any
// value up to the policy ceiling read as percentages, larger values as
// amounts.
func (e *Engine) classifyHeuristic(val decimal.Decimal, token string) Parsed {
	if !val.IsNegative() && val.LessThanOrEqual(hundred) {
		_, common := commonPercents[val.String()]
		if common || val.LessThanOrEqual(e.pol.MaxPercentHeuristic) {
			e.log.Debug("discount token read as percentage by heuristic",
				zap.String("token", token), zap.String("percent", val.String()))
			return Parsed{Percent: &val}
		}
	}
	e.log.Debug("discount token read as amount by heuristic",
		zap.String("token", token), zap.String("amount", val.String()))
	return Parsed{Amount: &val}
}
