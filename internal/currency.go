package internal

import (
	"math"
	"strings"

	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// FallbackCurrency is used when neither config nor the system locale names a currency.
const FallbackCurrency = "USD"

// Currency formats amounts for display. The ledger itself is single-currency;
// this only decides how numbers look.
type Currency struct {
	Code    string // "SEK", "USD", "EUR"
	symbol  string
	prefix  bool
	printer *message.Printer
}

// symbolOverrides provides custom symbols where x/text defaults aren't ideal
var symbolOverrides = map[string]string{
	"SEK": "kr",
	"NOK": "kr",
	"DKK": "kr",
	"ISK": "kr",
}

// homeLocale is the locale used to format a currency when the system locale
// is unknown or names another currency.
var homeLocale = map[string]language.Tag{
	"SEK": language.Swedish,
	"USD": language.AmericanEnglish,
	"EUR": language.German,
	"GBP": language.BritishEnglish,
	"NOK": language.Norwegian,
	"DKK": language.Danish,
	"CHF": language.German,
	"JPY": language.Japanese,
	"CAD": language.CanadianFrench,
	"AUD": language.MustParse("en-AU"),
	"BRL": language.BrazilianPortuguese,
	"INR": language.MustParse("en-IN"),
	"PLN": language.Polish,
	"CZK": language.Czech,
}

// prefixCurrencies put their symbol before the amount. x/text does not expose
// CLDR symbol placement, so the list is kept by hand.
var prefixCurrencies = map[string]bool{
	"USD": true, "GBP": true, "JPY": true, "CAD": true, "AUD": true,
	"HKD": true, "SGD": true, "NZD": true, "INR": true,
}

// GetCurrency returns the Currency for a code, formatted with that currency's home locale.
func GetCurrency(code string) Currency {
	code = strings.ToUpper(strings.TrimSpace(code))
	tag, ok := homeLocale[code]
	if !ok {
		tag = language.English
	}
	return GetCurrencyWithLocale(code, tag)
}

// GetCurrencyWithLocale returns a Currency using tag for digit grouping and decimal marks.
func GetCurrencyWithLocale(code string, tag language.Tag) Currency {
	code = strings.ToUpper(strings.TrimSpace(code))
	c := Currency{
		Code:    code,
		prefix:  prefixCurrencies[code],
		printer: message.NewPrinter(tag),
	}

	switch unit, err := currency.ParseISO(code); {
	case symbolOverrides[code] != "":
		c.symbol = symbolOverrides[code]
	case err != nil:
		// Unknown code: show the code itself
		c.symbol = code
	default:
		c.symbol = c.printer.Sprint(currency.NarrowSymbol(unit))
	}
	return c
}

// ResolveCurrency picks the display currency: an explicit code wins, then the
// system locale, then FallbackCurrency.
func ResolveCurrency(code string) Currency {
	if code != "" {
		return GetCurrency(code)
	}
	if detected, tag := DetectSystemCurrency(); detected != "" {
		return GetCurrencyWithLocale(detected, tag)
	}
	return GetCurrency(FallbackCurrency)
}

// DetectSystemCurrency derives a currency and locale from the LC_MONETARY,
// LC_ALL and LANG environment variables. Returns "" when nothing usable is set.
func DetectSystemCurrency() (string, language.Tag) {
	locale := detectSystemLocale()
	if locale == "" {
		return "", language.Und
	}
	return parseCurrencyFromLocale(locale)
}

// parseCurrencyFromLocale extracts currency code and language tag from a locale string.
// Examples: "sv_SE.UTF-8" -> ("SEK", sv-SE), "pt_BR.UTF-8" -> ("BRL", pt-BR)
func parseCurrencyFromLocale(locale string) (string, language.Tag) {
	base := locale
	if idx := strings.IndexAny(base, ".@"); idx != -1 {
		base = base[:idx]
	}

	tag, err := language.Parse(strings.Replace(base, "_", "-", 1))
	if err != nil {
		return "", language.Und
	}

	_, _, region := tag.Raw()
	if region.String() == "" || region.String() == "ZZ" {
		return "", language.Und
	}

	unit, ok := currency.FromRegion(region)
	if !ok {
		return "", language.Und
	}
	return unit.String(), tag
}

// Format renders amount with two decimals and the currency symbol.
func (c Currency) Format(amount float64) string {
	sign := ""
	if amount < 0 {
		sign = "-"
	}
	digits := c.printer.Sprint(number.Decimal(math.Abs(amount),
		number.MinFractionDigits(2), number.MaxFractionDigits(2)))

	if c.prefix {
		return sign + c.symbol + digits
	}
	return sign + digits + " " + c.symbol
}

// FormatPercent renders a share in [0,1] as a percentage with at most one decimal.
func (c Currency) FormatPercent(share float64) string {
	return c.printer.Sprint(number.Percent(share, number.MaxFractionDigits(1)))
}
