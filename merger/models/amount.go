package models

import (
	"fmt"
	"strconv"
	"strings"
)

var amountNoise = strings.NewReplacer("$", "", ",", "")

// ParseAmount coerces a currency string to a number, tolerating a dollar
// sign and thousands separators. Un-coercible values are zero, never an
// error; charge totals must stay non-negative under noisy input.
func ParseAmount(s string) float64 {
	clean := strings.TrimSpace(amountNoise.Replace(s))
	if clean == "" {
		return 0
	}
	f, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0
	}
	return f
}

// FormatAmount renders a number as a two-decimal currency string.
func FormatAmount(f float64) string {
	return fmt.Sprintf("$%.2f", f)
}
