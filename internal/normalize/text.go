package normalize

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

var (
	whitespaceRe = regexp.MustCompile(`\s+`)
	// Everything but word characters, whitespace and commas. Commas stay
	// because they separate street and city in addresses.
	punctuationRe = regexp.MustCompile(`[^\w\s,]`)
	diacriticsRm  = transform.Chain(norm.NFKD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
)

// CleanText lowercases, strips diacritics and punctuation (except commas) and
// collapses whitespace. Both variant text and registry candidates pass through
// this before fuzzy comparison so OCR accents and casing never affect scores.
func CleanText(text string) string {
	if text == "" {
		return ""
	}
	text = strings.ToLower(strings.TrimSpace(text))
	if stripped, _, err := transform.String(diacriticsRm, text); err == nil {
		text = stripped
	}
	text = punctuationRe.ReplaceAllString(text, "")
	text = strings.TrimSpace(whitespaceRe.ReplaceAllString(text, " "))
	return text
}

// Address tidies an OCR'd address: line breaks become comma separators and
// runs of whitespace collapse. Empty input stays empty.
func Address(address string) string {
	address = strings.TrimSpace(address)
	if address == "" {
		return ""
	}
	address = strings.ReplaceAll(address, "\n", ", ")
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(address, " "))
}
