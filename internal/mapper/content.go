package mapper

import (
	"regexp"
	"strconv"
	"strings"
)

// Content-based detectors for columns neither the exact nor the fuzzy pass
// could place. Each detector returns the fraction of sampled values that
// look like its type; detectColumnType converts the first confident hit into
// a canonical field with a fixed confidence score.

var (
	currencyRe = regexp.MustCompile(`[₹$€£,\s]`)
	hexColorRe = regexp.MustCompile(`#[0-9a-f]{6}`)

	sizePatterns = []*regexp.Regexp{
		regexp.MustCompile(`\b(xs|s|m|l|xl|xxl|xxxl)\b`),
		regexp.MustCompile(`\b\d{1,2}\b`),
		regexp.MustCompile(`\b(small|medium|large)\b`),
		regexp.MustCompile(`\b\d{1,2}-\d+\b`),
	}

	skuShapeRe = regexp.MustCompile(`^[A-Za-z0-9_-]+$`)
)

var statusWords = map[string]bool{
	"active": true, "inactive": true, "draft": true, "published": true,
	"unpublished": true, "true": true, "false": true, "yes": true, "no": true,
}

var colorWords = []string{
	"red", "blue", "green", "yellow", "black", "white", "pink", "purple",
	"orange", "brown", "gray", "grey", "navy", "maroon", "teal", "cyan",
	"magenta", "lime", "olive", "silver", "gold", "beige", "cream", "tan",
}

var categoryWords = []string{
	"shirt", "dress", "pants", "jeans", "jacket", "coat", "shoes", "boots",
	"bag", "purse", "jewelry", "ring", "necklace", "bracelet", "watch",
	"hat", "cap", "scarf", "belt", "top", "blouse", "skirt", "shorts",
	"clothing", "apparel", "accessories", "footwear", "electronics",
	"home", "kitchen", "beauty", "health", "sports", "toys", "books",
}

var skuNameHints = []string{"sku", "code", "id", "number", "ref"}

// detectColumnType guesses the canonical field for a column from sampled
// values, returning "" when nothing scores confidently enough.
func detectColumnType(samples []string, columnName string) (string, float64) {
	values := make([]string, 0, len(samples))
	for _, s := range samples {
		v := strings.ToLower(strings.TrimSpace(s))
		if v != "" {
			values = append(values, v)
		}
	}
	if len(values) == 0 {
		return "", 0
	}
	columnLower := strings.ToLower(columnName)

	if detectPrices(values) > 0.7 {
		return FieldPrice, 0.8
	}
	if detectStatusValues(values) > 0.6 {
		return FieldPublished, 0.7
	}
	if detectSizes(values) > 0.6 {
		return FieldSize, 0.7
	}
	if detectColors(values) > 0.6 {
		return FieldColour, 0.7
	}
	if detectCategories(values) > 0.5 {
		return FieldProductCategory, 0.6
	}
	if detectCodes(values, columnLower) > 0.7 {
		return FieldProductCode, 0.8
	}

	return "", 0
}

// detectPrices scores values that parse as numbers in a plausible price
// range after currency symbols are stripped.
func detectPrices(values []string) float64 {
	hits := 0
	for _, v := range values {
		clean := currencyRe.ReplaceAllString(v, "")
		num, err := strconv.ParseFloat(clean, 64)
		if err == nil && num > 0 && num < 100000 {
			hits++
		}
	}
	return float64(hits) / float64(len(values))
}

func detectStatusValues(values []string) float64 {
	hits := 0
	for _, v := range values {
		if statusWords[v] {
			hits++
		}
	}
	return float64(hits) / float64(len(values))
}

func detectSizes(values []string) float64 {
	hits := 0
	for _, v := range values {
		for _, re := range sizePatterns {
			if re.MatchString(v) {
				hits++
				break
			}
		}
	}
	return float64(hits) / float64(len(values))
}

func detectColors(values []string) float64 {
	hits := 0
	for _, v := range values {
		if hexColorRe.MatchString(v) {
			hits++
			continue
		}
		for _, word := range colorWords {
			if strings.Contains(v, word) {
				hits++
				break
			}
		}
	}
	return float64(hits) / float64(len(values))
}

func detectCategories(values []string) float64 {
	hits := 0
	for _, v := range values {
		for _, word := range categoryWords {
			if strings.Contains(v, word) {
				hits++
				break
			}
		}
	}
	return float64(hits) / float64(len(values))
}

// detectCodes scores SKU-shaped alphanumeric values, with a bonus when the
// column name itself hints at a code field.
func detectCodes(values []string, columnName string) float64 {
	nameBonus := 0.0
	for _, hint := range skuNameHints {
		if strings.Contains(columnName, hint) {
			nameBonus = 0.3
			break
		}
	}

	hits := 0
	for _, v := range values {
		if skuShapeRe.MatchString(v) && len(v) > 2 {
			hits++
		}
	}

	score := float64(hits)/float64(len(values)) + nameBonus
	if score > 1.0 {
		score = 1.0
	}
	return score
}
