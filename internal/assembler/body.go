package assembler

import (
	"fmt"
	"strings"

	"github.com/loomworks/shopforge/internal/mapper"
	"github.com/loomworks/shopforge/pkg/models"
)

// product attributes rendered as <li> bullets, in display order
var bodySpecs = []struct {
	Field string
	Label string
}{
	{mapper.FieldFabric, "Fabric"},
	{mapper.FieldCelebsName, "Celebs Name"},
	{mapper.FieldComponents, "No of components (set)"},
	{mapper.FieldColour, "Color"},
	{mapper.FieldProductCode, "SKU"},
	{mapper.FieldFit, "Fit"},
	{mapper.FieldSizesInfo, "Sizes (surcharges if any)"},
	{mapper.FieldDeliveryTime, "Delivery Time"},
	{mapper.FieldWashCare, "Wash Care"},
	{mapper.FieldTechnique, "Technique Used"},
	{mapper.FieldEmbroidery, "Embroidery Details"},
}

// BuildBodyHTML renders the product description plus a bullet list of
// fashion attributes as the Body (HTML) column. When the pipeline has
// produced a rewritten description it replaces the source one.
func BuildBodyHTML(row models.Row, m mapper.Mapping, description string) string {
	if description == "" {
		description = mapper.CleanValue(mapper.Value(row, m, mapper.FieldDescription, ""))
	}

	var parts []string
	if description != "" {
		parts = append(parts, fmt.Sprintf("<p>%s</p>", description))
	}

	var specs []string
	for _, s := range bodySpecs {
		value := mapper.CleanValue(mapper.Value(row, m, s.Field, ""))
		if value == "" {
			continue
		}
		specs = append(specs, fmt.Sprintf("<li><strong>%s</strong>: %s</li>", s.Label, value))
	}

	if len(specs) > 0 {
		parts = append(parts, "<ul>"+strings.Join(specs, "")+"</ul>")
	}

	return strings.Join(parts, "")
}
