package variants

import (
	"regexp"
	"strings"

	"github.com/loomworks/shopforge/internal/mapper"
	"github.com/loomworks/shopforge/pkg/models"
)

var (
	nonWordRe    = regexp.MustCompile(`[^\w\s-]`)
	whitespaceRe = regexp.MustCompile(`\s+`)
	dashRunRe    = regexp.MustCompile(`-+`)
)

// GenerateHandle derives the URL-safe Shopify handle for a product row:
// slugified title joined to slugified SKU. The same (title, sku) pair
// always yields the same handle; distinct pairs collide only if their
// slugified forms coincide.
func GenerateHandle(row models.Row, m mapper.Mapping) string {
	title := strings.TrimSpace(mapper.CleanValue(mapper.Value(row, m, mapper.FieldTitle, "")))
	code := strings.TrimSpace(mapper.CleanValue(mapper.Value(row, m, mapper.FieldProductCode, "")))

	return Slugify(title + "-" + code)
}

// Slugify lowercases and strips a raw handle down to word characters and
// single hyphens.
func Slugify(raw string) string {
	s := nonWordRe.ReplaceAllString(raw, "")
	s = whitespaceRe.ReplaceAllString(s, "-")
	s = strings.ToLower(s)
	s = dashRunRe.ReplaceAllString(s, "-")
	return strings.Trim(s, "-")
}
