package discount_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"

	"github.com/nordbooks/lineflow/internal/discount"
	"github.com/nordbooks/lineflow/internal/domain"
	"github.com/nordbooks/lineflow/internal/normalize"
)

func newEngine() *discount.Engine {
	return discount.NewEngine(discount.DefaultPolicy(), zap.NewNop())
}

var da = normalize.LocaleFor("da")

func TestParseValue_PercentSuffix(t *testing.T) {
	e := newEngine()

	p := e.ParseValue("10%", nil, nil, da)
	assert.NotNil(t, p.Percent)
	assert.Nil(t, p.Amount)
	assert.Equal(t, "10", p.Percent.String())
}

func TestParseValue_ContextRejectsImplausibleAmount(t *testing.T) {
	e := newEngine()

	// 95 off a unit price of 100 would leave 5, under the 10% remainder
	// floor, so the percentage reading wins.
	p := e.ParseValue("95", domain.DecFloat(100), nil, da)
	assert.NotNil(t, p.Percent)
	assert.Nil(t, p.Amount)
}

func TestParseValue_ContextAcceptsPlausibleAmount(t *testing.T) {
	e := newEngine()

	// 60 off a unit price of 100 leaves 40: plausible as an amount, and 60%
	// is above the bare-percentage ceiling.
	p := e.ParseValue("60", domain.DecFloat(100), nil, da)
	assert.NotNil(t, p.Amount)
	assert.Nil(t, p.Percent)
	assert.Equal(t, "60", p.Amount.String())
}

func TestParseValue_HeuristicCommonPercent(t *testing.T) {
	e := newEngine()

	p := e.ParseValue("25", nil, nil, da)
	assert.NotNil(t, p.Percent)
	assert.Equal(t, "25", p.Percent.String())
}

func TestParseValue_HeuristicLargeValueIsAmount(t *testing.T) {
	e := newEngine()

	p := e.ParseValue("250", nil, nil, da)
	assert.NotNil(t, p.Amount)
	assert.Equal(t, "250", p.Amount.String())
}

func TestParseValue_EmptyAndGarbage(t *testing.T) {
	e := newEngine()

	assert.Equal(t, discount.Parsed{}, e.ParseValue("", nil, nil, da))
	assert.Equal(t, discount.Parsed{}, e.ParseValue("n/a", nil, nil, da))
}

func TestAnalyzePattern_PerUnitMajority(t *testing.T) {
	e := newEngine()

	// Unit price 100, discount 10, OCR after-price 90 at quantity 5: only
	// the per-unit reading reproduces 90.
	lines := []*domain.LineFields{
		{UnitPrice: domain.DecFloat(100), DiscountAmount: domain.DecFloat(10), UnitPriceAfterDiscount: domain.DecFloat(90), Quantity: domain.DecFloat(5)},
		{UnitPrice: domain.DecFloat(200), DiscountAmount: domain.DecFloat(20), UnitPriceAfterDiscount: domain.DecFloat(180), Quantity: domain.DecFloat(4)},
	}
	assert.Equal(t, domain.PatternPerUnit, e.AnalyzePattern(lines))
}

func TestAnalyzePattern_TotalLineMajority(t *testing.T) {
	e := newEngine()

	// Discount 50 over 5 units with after-price 90: 100-50/5 = 90, so the
	// total-line reading wins.
	lines := []*domain.LineFields{
		{UnitPrice: domain.DecFloat(100), DiscountAmount: domain.DecFloat(50), UnitPriceAfterDiscount: domain.DecFloat(90), Quantity: domain.DecFloat(5)},
		{UnitPrice: domain.DecFloat(200), DiscountAmount: domain.DecFloat(80), UnitPriceAfterDiscount: domain.DecFloat(180), Quantity: domain.DecFloat(4)},
	}
	assert.Equal(t, domain.PatternTotalLine, e.AnalyzePattern(lines))
}

func TestAnalyzePattern_SingleLineIsMixed(t *testing.T) {
	e := newEngine()

	lines := []*domain.LineFields{
		{UnitPrice: domain.DecFloat(100), DiscountAmount: domain.DecFloat(10), UnitPriceAfterDiscount: domain.DecFloat(90), Quantity: domain.DecFloat(5)},
	}
	assert.Equal(t, domain.PatternMixed, e.AnalyzePattern(lines))
}

func TestAnalyzePattern_NoEligibleLinesIsMixed(t *testing.T) {
	e := newEngine()

	// Quantity 1 lines cannot distinguish the two hypotheses.
	lines := []*domain.LineFields{
		{UnitPrice: domain.DecFloat(100), DiscountAmount: domain.DecFloat(10), UnitPriceAfterDiscount: domain.DecFloat(90), Quantity: domain.DecFloat(1)},
		{UnitPrice: domain.DecFloat(50), Quantity: domain.DecFloat(3)},
	}
	assert.Equal(t, domain.PatternMixed, e.AnalyzePattern(lines))
}

func TestReconcile_PerUnitAmount(t *testing.T) {
	e := newEngine()

	f := &domain.LineFields{
		UnitPrice:      domain.DecFloat(100),
		DiscountAmount: domain.DecFloat(10),
		Quantity:       domain.DecFloat(5),
		TotalPrice:     domain.DecFloat(500),
	}
	e.Reconcile(f, domain.PatternPerUnit)

	assert.Equal(t, "90", f.UnitPriceAfterDiscount.String())
	assert.Equal(t, "450", f.TotalPriceAfterDisc.String())
	assert.Equal(t, "10", f.DiscountAmount.String())
}

func TestReconcile_TotalLineAmount(t *testing.T) {
	e := newEngine()

	f := &domain.LineFields{
		UnitPrice:      domain.DecFloat(100),
		DiscountAmount: domain.DecFloat(50),
		Quantity:       domain.DecFloat(5),
		TotalPrice:     domain.DecFloat(500),
	}
	e.Reconcile(f, domain.PatternTotalLine)

	assert.Equal(t, "90", f.UnitPriceAfterDiscount.String())
	assert.Equal(t, "450", f.TotalPriceAfterDisc.String())
}

func TestReconcile_PercentageOnly(t *testing.T) {
	e := newEngine()

	f := &domain.LineFields{
		UnitPrice:          domain.DecFloat(200),
		DiscountPercentage: domain.DecFloat(10),
		Quantity:           domain.DecFloat(2),
	}
	e.Reconcile(f, domain.PatternMixed)

	assert.Equal(t, "180", f.UnitPriceAfterDiscount.String())
	assert.Equal(t, "360", f.TotalPriceAfterDisc.String())
	assert.True(t, f.DiscountAmount.IsZero())
}

func TestReconcile_NegativePercentageIsUplift(t *testing.T) {
	e := newEngine()

	f := &domain.LineFields{
		UnitPrice:          domain.DecFloat(100),
		DiscountPercentage: domain.DecFloat(-10),
	}
	e.Reconcile(f, domain.PatternMixed)

	assert.Equal(t, "110", f.UnitPriceAfterDiscount.String())
}

func TestReconcile_ConflictPercentageWins(t *testing.T) {
	e := newEngine()

	f := &domain.LineFields{
		UnitPrice:          domain.DecFloat(100),
		DiscountAmount:     domain.DecFloat(15),
		DiscountPercentage: domain.DecFloat(10),
	}
	e.Reconcile(f, domain.PatternMixed)

	assert.True(t, f.DiscountAmount.IsZero())
	assert.Equal(t, "90", f.UnitPriceAfterDiscount.String())
}

func TestReconcile_FromUnitPrices(t *testing.T) {
	e := newEngine()

	f := &domain.LineFields{
		UnitPrice:              domain.DecFloat(100),
		UnitPriceAfterDiscount: domain.DecFloat(85),
		Quantity:               domain.DecFloat(2),
		TotalPrice:             domain.DecFloat(200),
	}
	e.Reconcile(f, domain.PatternMixed)

	assert.Equal(t, "15", f.DiscountAmount.String())
	assert.Equal(t, "170", f.TotalPriceAfterDisc.String())
}

func TestReconcile_FromTotalPrices(t *testing.T) {
	e := newEngine()

	f := &domain.LineFields{
		UnitPrice:           domain.DecFloat(100),
		TotalPrice:          domain.DecFloat(500),
		TotalPriceAfterDisc: domain.DecFloat(450),
		Quantity:            domain.DecFloat(5),
	}
	e.Reconcile(f, domain.PatternMixed)

	assert.Equal(t, "10", f.DiscountAmount.String())
	assert.Equal(t, "90", f.UnitPriceAfterDiscount.String())
}

func TestReconcile_AfterDiscountOnlyConsistent(t *testing.T) {
	e := newEngine()

	f := &domain.LineFields{
		UnitPriceAfterDiscount: domain.DecFloat(90),
		TotalPriceAfterDisc:    domain.DecFloat(450),
		Quantity:               domain.DecFloat(5),
	}
	e.Reconcile(f, domain.PatternMixed)

	assert.True(t, f.DiscountAmount.IsZero())
}

func TestReconcile_ConsistentOriginalsNoDiscount(t *testing.T) {
	e := newEngine()

	f := &domain.LineFields{
		UnitPrice:  domain.DecFloat(25),
		TotalPrice: domain.DecFloat(100),
		Quantity:   domain.DecFloat(4),
	}
	e.Reconcile(f, domain.PatternMixed)

	assert.True(t, f.DiscountAmount.IsZero())
	assert.Equal(t, "25", f.UnitPriceAfterDiscount.String())
	assert.Equal(t, "100", f.TotalPriceAfterDisc.String())
}

func TestReconcile_BackfillFromAfterDiscount(t *testing.T) {
	e := newEngine()

	f := &domain.LineFields{
		UnitPriceAfterDiscount: domain.DecFloat(90),
		DiscountAmount:         domain.Dec(decimal.Zero),
	}
	e.Reconcile(f, domain.PatternMixed)

	assert.Equal(t, "90", f.UnitPrice.String())
}

func TestReconcile_MixedPatternCrossValidates(t *testing.T) {
	e := newEngine()

	// OCR after-price 90 with amount 50 at qty 5 only fits the total-line
	// reading even though the document pattern is mixed.
	f := &domain.LineFields{
		UnitPrice:              domain.DecFloat(100),
		DiscountAmount:         domain.DecFloat(50),
		UnitPriceAfterDiscount: domain.DecFloat(90),
		Quantity:               domain.DecFloat(5),
	}
	e.Reconcile(f, domain.PatternMixed)

	// The OCR value was present, so it is kept, not recomputed.
	assert.Equal(t, "90", f.UnitPriceAfterDiscount.String())
}

func TestReconcile_MixedPatternHalfLineHeuristic(t *testing.T) {
	e := newEngine()

	// 300 off a 5 x 100 line exceeds half the line total: read per line.
	f := &domain.LineFields{
		UnitPrice:      domain.DecFloat(100),
		DiscountAmount: domain.DecFloat(300),
		Quantity:       domain.DecFloat(5),
	}
	e.Reconcile(f, domain.PatternMixed)

	assert.Equal(t, "40", f.UnitPriceAfterDiscount.String())
}
