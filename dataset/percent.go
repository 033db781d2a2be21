package dataset

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// ParsePercent parses scraped return text ("1.23", "10.45%", "+0.98",
// "1,23") into a decimal. Morningstar renders missing figures as an
// em-dash, which does not parse; callers keep the raw text either way and
// use this only to flag suspicious values.
func ParsePercent(text string) (decimal.Decimal, error) {
	s := strings.TrimSpace(text)
	s = strings.TrimSuffix(s, "%")
	s = strings.TrimSpace(s)
	s = strings.TrimPrefix(s, "+")
	// Locale-formatted decimal comma
	s = strings.ReplaceAll(s, ",", ".")

	if s == "" {
		return decimal.Zero, fmt.Errorf("empty percentage")
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, fmt.Errorf("not a percentage: %q", text)
	}
	return d, nil
}

// IsNumeric reports whether scraped return text carries an actual figure
func IsNumeric(text string) bool {
	_, err := ParsePercent(text)
	return err == nil
}
