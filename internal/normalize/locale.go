// Package normalize converts raw OCR tokens into canonical values: numbers,
// dates, units, addresses and comparison-ready text.
package normalize

// Locale holds the number and currency conventions of one source locale.
type Locale struct {
	Code               string
	DecimalSeparator   string
	ThousandsSeparator string
	Currency           string
}

var locales = map[string]Locale{
	"da": {Code: "da", DecimalSeparator: ",", ThousandsSeparator: ".", Currency: "DKK"},
	"en": {Code: "en", DecimalSeparator: ".", ThousandsSeparator: ",", Currency: "USD"},
	"no": {Code: "no", DecimalSeparator: ",", ThousandsSeparator: ".", Currency: "NOK"},
	"sv": {Code: "sv", DecimalSeparator: ",", ThousandsSeparator: " ", Currency: "SEK"},
	"gb": {Code: "gb", DecimalSeparator: ".", ThousandsSeparator: ",", Currency: "GBP"},
	"eu": {Code: "eu", DecimalSeparator: ",", ThousandsSeparator: ".", Currency: "EUR"},
}

// LocaleFor returns the locale settings for code, defaulting to Danish.
func LocaleFor(code string) Locale {
	if l, ok := locales[code]; ok {
		return l
	}
	return locales["da"]
}
