// Package sizes parses apparel size tokens of the form "SIZE-QTY" and
// orders size lists the way a storefront expects: standard letter sizes
// first, then numeric sizes ascending, then free-text sizes alphabetically.
package sizes

import (
	"regexp"
	"sort"
	"strconv"
	"strings"
)

// standardOrder is the fixed ordering for recognized letter sizes
var standardOrder = []string{"XXS", "XS", "S", "M", "L", "XL", "XXL", "XXXL", "2XL", "3XL", "4XL", "5XL"}

var (
	numericRe  = regexp.MustCompile(`^\d+$`)
	xNumericRe = regexp.MustCompile(`^X\d+`)
	digitsRe   = regexp.MustCompile(`\d+`)
)

// ParseSizeQuantity splits one size token into its label and embedded
// quantity. "M-8" yields ("M", 8); "custom" in any casing yields
// ("Custom", 0); anything ambiguous degrades to the full token with
// quantity 0. Never fails.
func ParseSizeQuantity(token string) (string, int) {
	token = strings.TrimSpace(token)

	if strings.EqualFold(token, "custom") {
		return "Custom", 0
	}

	if strings.Count(token, "-") == 1 {
		parts := strings.SplitN(token, "-", 2)
		qty, err := strconv.Atoi(strings.TrimSpace(parts[1]))
		if err == nil {
			return strings.TrimSpace(parts[0]), qty
		}
		return token, 0
	}

	return token, 0
}

// SortSizesWithQuantities parses a comma-separated size list and returns
// the deduplicated labels in display order plus a label-to-quantity map.
// Duplicate labels keep their first-seen position; a repeated label's
// quantity overwrites the earlier one.
func SortSizesWithQuantities(list string) ([]string, map[string]int) {
	quantities := make(map[string]int)

	var unique []string
	seen := make(map[string]bool)
	for _, token := range strings.Split(list, ",") {
		token = strings.TrimSpace(token)
		if token == "" {
			continue
		}
		label, qty := ParseSizeQuantity(token)
		quantities[label] = qty
		if !seen[label] {
			unique = append(unique, label)
			seen[label] = true
		}
	}

	type ranked struct {
		rank  int
		label string
	}
	var standard, numeric []ranked
	var custom []string

	for _, label := range unique {
		if idx := standardIndex(label); idx >= 0 {
			standard = append(standard, ranked{idx, label})
			continue
		}
		if numericRe.MatchString(label) {
			n, _ := strconv.Atoi(label)
			numeric = append(numeric, ranked{n, label})
			continue
		}
		if xNumericRe.MatchString(strings.ToUpper(label)) {
			if m := digitsRe.FindString(label); m != "" {
				n, _ := strconv.Atoi(m)
				numeric = append(numeric, ranked{n, label})
				continue
			}
		}
		custom = append(custom, label)
	}

	sort.SliceStable(standard, func(i, j int) bool { return standard[i].rank < standard[j].rank })
	sort.SliceStable(numeric, func(i, j int) bool { return numeric[i].rank < numeric[j].rank })
	sort.Strings(custom)

	ordered := make([]string, 0, len(unique))
	for _, r := range standard {
		ordered = append(ordered, r.label)
	}
	for _, r := range numeric {
		ordered = append(ordered, r.label)
	}
	ordered = append(ordered, custom...)

	return ordered, quantities
}

// SortSizes is the label-only convenience form of SortSizesWithQuantities
func SortSizes(list string) []string {
	ordered, _ := SortSizesWithQuantities(list)
	return ordered
}

func standardIndex(label string) int {
	for i, std := range standardOrder {
		if strings.EqualFold(label, std) {
			return i
		}
	}
	return -1
}
