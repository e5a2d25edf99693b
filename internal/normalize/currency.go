package normalize

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Static rates against DKK. Stands in for a rate feed; invoice lines keep
// their source currency either way, conversion is reporting-only.
var dkkRates = map[string]decimal.Decimal{
	"USD": decimal.RequireFromString("6.80"),
	"EUR": decimal.RequireFromString("7.45"),
	"NOK": decimal.RequireFromString("0.64"),
	"SEK": decimal.RequireFromString("0.66"),
	"GBP": decimal.RequireFromString("8.75"),
	"DKK": decimal.RequireFromString("1.00"),
}

// ToDKK converts an amount to Danish kroner. Returns nil for unknown currencies.
func ToDKK(amount decimal.Decimal, currency string) *decimal.Decimal {
	rate, ok := dkkRates[strings.ToUpper(strings.TrimSpace(currency))]
	if !ok {
		return nil
	}
	converted := amount.Mul(rate)
	return &converted
}
