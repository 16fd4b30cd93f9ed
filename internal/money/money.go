package money

import (
	"strings"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"golang.org/x/text/number"
)

// Rates maps ISO 4217 currency codes to USD conversion multipliers.
type Rates map[string]float64

// DefaultRates returns the built-in conversion table.
func DefaultRates() Rates {
	return Rates{
		"USD": 1.0,
		"EUR": 1.08,
		"GBP": 1.26,
		"INR": 0.012,
	}
}

// Converter converts quotation amounts to USD using a fixed rate table.
type Converter struct {
	rates Rates
}

// NewConverter creates a Converter with the given rates. Nil or empty
// rates fall back to the defaults.
func NewConverter(rates Rates) *Converter {
	if len(rates) == 0 {
		rates = DefaultRates()
	}
	norm := make(Rates, len(rates))
	for code, rate := range rates {
		norm[strings.ToUpper(code)] = rate
	}
	return &Converter{rates: norm}
}

// Rate returns the USD multiplier for a currency code. Unknown codes
// convert at 1.0, same as USD.
func (c *Converter) Rate(code string) float64 {
	if rate, ok := c.rates[strings.ToUpper(strings.TrimSpace(code))]; ok && rate > 0 {
		return rate
	}
	return 1.0
}

// ToUSD converts an amount in the given currency to USD and reports the
// rate applied.
func (c *Converter) ToUSD(amount float64, code string) (usd, rate float64) {
	rate = c.Rate(code)
	return amount * rate, rate
}

var usdPrinter = message.NewPrinter(language.English)

// FormatUSD renders a dollar amount with thousands separators and two
// decimal places, e.g. "$12,345.68".
func FormatUSD(v float64) string {
	return usdPrinter.Sprintf("$%v", number.Decimal(v,
		number.MinFractionDigits(2),
		number.MaxFractionDigits(2),
	))
}
