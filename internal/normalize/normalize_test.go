package normalize_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/nordbooks/lineflow/internal/normalize"
)

func TestNumber_DanishLocale(t *testing.T) {
	da := normalize.LocaleFor("da")

	d := normalize.Number("1.234,56", da)
	assert.NotNil(t, d)
	assert.Equal(t, "1234.56", d.String())

	d = normalize.Number("123,45", da)
	assert.NotNil(t, d)
	assert.Equal(t, "123.45", d.String())

	d = normalize.Number("500", da)
	assert.NotNil(t, d)
	assert.Equal(t, "500", d.String())
}

func TestNumber_EnglishLocale(t *testing.T) {
	en := normalize.LocaleFor("en")

	d := normalize.Number("1,234.56", en)
	assert.NotNil(t, d)
	assert.Equal(t, "1234.56", d.String())
}

func TestNumber_StripsCurrencyNoise(t *testing.T) {
	da := normalize.LocaleFor("da")

	d := normalize.Number("kr 1.250,00", da)
	assert.NotNil(t, d)
	assert.Equal(t, "1250", d.String())

	d = normalize.Number("-45,50 DKK", da)
	assert.NotNil(t, d)
	assert.Equal(t, "-45.5", d.String())
}

func TestNumber_Unparseable(t *testing.T) {
	da := normalize.LocaleFor("da")

	assert.Nil(t, normalize.Number("", da))
	assert.Nil(t, normalize.Number("n/a", da))
	assert.Nil(t, normalize.Number("--", da))
}

func TestLocaleFor_DefaultsToDanish(t *testing.T) {
	assert.Equal(t, "da", normalize.LocaleFor("xx").Code)
	assert.Equal(t, "en", normalize.LocaleFor("en").Code)
}

func TestDate_DayFirst(t *testing.T) {
	d := normalize.Date("24-12-2023")
	assert.NotNil(t, d)
	assert.Equal(t, time.Date(2023, 12, 24, 0, 0, 0, 0, time.UTC), *d)

	d = normalize.Date("24/12/2023")
	assert.NotNil(t, d)
	assert.Equal(t, time.Date(2023, 12, 24, 0, 0, 0, 0, time.UTC), *d)
}

func TestDate_ISO(t *testing.T) {
	d := normalize.Date("2023-12-24")
	assert.NotNil(t, d)
	assert.Equal(t, time.Date(2023, 12, 24, 0, 0, 0, 0, time.UTC), *d)
}

func TestDate_DanishMonthName(t *testing.T) {
	d := normalize.Date("24. december 2023")
	assert.NotNil(t, d)
	assert.Equal(t, time.Date(2023, 12, 24, 0, 0, 0, 0, time.UTC), *d)
}

func TestDate_Unparseable(t *testing.T) {
	assert.Nil(t, normalize.Date(""))
	assert.Nil(t, normalize.Date("sometime soon"))
}

func TestUnit_Canonicalizes(t *testing.T) {
	assert.Equal(t, "pcs", normalize.Unit("stk"))
	assert.Equal(t, "pcs", normalize.Unit("Stk."))
	assert.Equal(t, "kg", normalize.Unit("KG"))
	assert.Equal(t, "l", normalize.Unit("ltr"))
	assert.Equal(t, "btl", normalize.Unit("bottles"))
}

func TestUnit_UnknownPassesThroughCleaned(t *testing.T) {
	assert.Equal(t, "kasser", normalize.Unit(" Kasser "))
}

func TestCleanText(t *testing.T) {
	assert.Equal(t, "cafe norden aps", normalize.CleanText("Café Nordén ApS"))
	assert.Equal(t, "ab catering", normalize.CleanText("  AB   Catering!  "))
	assert.Equal(t, "", normalize.CleanText(""))
}

func TestCleanText_KeepsCommas(t *testing.T) {
	assert.Equal(t, "vestergade 12, 8000 aarhus", normalize.CleanText("Vestergade 12, 8000 Aarhus"))
}

func TestAddress(t *testing.T) {
	assert.Equal(t, "Vestergade 12, 8000 Aarhus", normalize.Address("Vestergade 12\n8000 Aarhus"))
	assert.Equal(t, "", normalize.Address("   "))
}
