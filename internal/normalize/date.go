package normalize

import (
	"regexp"
	"strings"
	"time"
)

var danishMonths = map[string]string{
	"januar": "01", "februar": "02", "marts": "03",
	"april": "04", "maj": "05", "juni": "06",
	"juli": "07", "august": "08", "september": "09",
	"oktober": "10", "november": "11", "december": "12",
}

var nonDigitRe = regexp.MustCompile(`[^\d]+`)

// Date parses an OCR date token. Danish month names are rewritten to their
// numeric form, all separators normalized to "-", then day-first and ISO
// orderings are tried in that order. Returns nil on failure.
func Date(val string) *time.Time {
	val = strings.ToLower(strings.TrimSpace(val))
	if val == "" {
		return nil
	}
	for name, num := range danishMonths {
		if strings.Contains(val, name) {
			val = strings.ReplaceAll(val, name, num)
			break
		}
	}
	val = strings.Trim(nonDigitRe.ReplaceAllString(val, "-"), "-")

	for _, layout := range []string{"02-01-2006", "2006-01-02"} {
		if t, err := time.Parse(layout, val); err == nil {
			return &t
		}
	}
	return nil
}
