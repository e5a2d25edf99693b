package normalize

import (
	"regexp"
	"strings"

	"github.com/shopspring/decimal"
)

var nonNumericRe = regexp.MustCompile(`[^\d.,-]`)

// Number parses an OCR numeric token under the given locale's separator
// conventions. Currency symbols and other noise are stripped first. Returns
// nil when the token carries no parseable number.
func Number(val string, loc Locale) *decimal.Decimal {
	val = nonNumericRe.ReplaceAllString(val, "")
	if val == "" {
		return nil
	}

	switch loc.DecimalSeparator {
	case ",":
		// Danish style: 1.000,25
		if strings.Contains(val, ",") && strings.Contains(val, ".") {
			val = strings.ReplaceAll(val, ".", "")
			val = strings.ReplaceAll(val, ",", ".")
		} else if strings.Contains(val, ",") {
			val = strings.ReplaceAll(val, ",", ".")
		}
	default:
		// English style: 1,000.25
		val = strings.ReplaceAll(val, ",", "")
	}

	d, err := decimal.NewFromString(val)
	if err != nil {
		return nil
	}
	return &d
}
