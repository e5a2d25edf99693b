// Package discount reconstructs price and discount fields from partial,
// inconsistent OCR output. It parses raw discount tokens, classifies the
// document-wide discount pattern, and fills in missing price fields through
// a fixed priority of derivation scenarios.
package discount

import (
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/nordbooks/lineflow/internal/config"
)

var (
	hundred = decimal.NewFromInt(100)
	one     = decimal.NewFromInt(1)
	// Tolerance for price cross-checks, one cent.
	tolerance = decimal.RequireFromString("0.01")
	half      = decimal.RequireFromString("0.5")
)

// Policy holds the tunable interpretation heuristics. The percentage-vs-amount
// guesswork is policy, not ground truth; see config.DiscountConfig.
type Policy struct {
	// Bare values at or below this are read as percentages when no price
	// context disambiguates them.
	MaxPercentHeuristic decimal.Decimal
	// Reject the amount interpretation when it would leave less than this
	// share of the original unit price.
	MinRemainderRatio decimal.Decimal
	// Take explicitly labeled discount columns at their declared kind
	// instead of classifying them like the generic token. OCR column labels
	// are wrong often enough that the default is to classify everything.
	TrustLabeledColumns bool
}

// DefaultPolicy returns the policy the original deployment ran with.
func DefaultPolicy() Policy {
	return Policy{
		MaxPercentHeuristic: decimal.NewFromInt(50),
		MinRemainderRatio:   decimal.RequireFromString("0.1"),
	}
}

// PolicyFromConfig builds a Policy from configuration.
func PolicyFromConfig(cfg config.DiscountConfig) Policy {
	return Policy{
		MaxPercentHeuristic: decimal.NewFromFloat(cfg.MaxPercentHeuristic),
		MinRemainderRatio:   decimal.NewFromFloat(cfg.MinRemainderRatio),
		TrustLabeledColumns: cfg.TrustLabeledColumns,
	}
}

// Engine applies the policy across parsing, pattern analysis and
// reconciliation for the lines of one document.
type Engine struct {
	pol Policy
	log *zap.Logger
}

// NewEngine creates a discount engine with the given policy.
func NewEngine(pol Policy, log *zap.Logger) *Engine {
	return &Engine{pol: pol, log: log}
}

// TrustsLabeledColumns reports whether explicitly labeled discount columns
// bypass context classification.
func (e *Engine) TrustsLabeledColumns() bool {
	return e.pol.TrustLabeledColumns
}

// round2 rounds to two decimal places, half away from zero. Derived values
// are rounded at the point of assignment so compounding matches invoices
// produced by hand.
func round2(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
