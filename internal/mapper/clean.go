package mapper

import (
	"strconv"
	"strings"
)

// CleanValue normalizes a cell value for output: trims whitespace and turns
// the NaN-ish artifacts spreadsheet round-trips leave behind ("nan", "NaN",
// "None") into the empty string. No literal NaN may reach the generated CSV.
func CleanValue(v string) string {
	v = strings.TrimSpace(v)
	switch strings.ToLower(v) {
	case "nan", "none", "null":
		return ""
	}
	return v
}

// CleanNumeric converts a cell value to a float, falling back to def on
// blank or unparseable input. Coercion failures are soft: the documented
// default comes back, never an error.
func CleanNumeric(v string, def float64) float64 {
	v = CleanValue(v)
	if v == "" {
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return def
	}
	return f
}

// ParsePrice parses a price-ish cell, tolerating currency symbols and
// thousand separators. Reports false when nothing numeric remains.
func ParsePrice(v string) (float64, bool) {
	clean := currencyRe.ReplaceAllString(CleanValue(v), "")
	if clean == "" {
		return 0, false
	}
	f, err := strconv.ParseFloat(clean, 64)
	if err != nil {
		return 0, false
	}
	return f, true
}
