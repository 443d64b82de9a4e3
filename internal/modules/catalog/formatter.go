package catalog

import (
	"fmt"
	"strings"
)

// FormattedProduct pairs a product uid with its rendered text block.
type FormattedProduct struct {
	UID  string
	Text string
}

// FormatProduct renders a product into its flat text block. Sections
// without content are omitted entirely, never rendered as an empty
// header. The same stored product always renders to byte-identical
// text.
func FormatProduct(product Product) string {
	lines := []string{fmt.Sprintf("Product: %s", product.DisplayTitle)}

	if product.Tagline != "" {
		lines = append(lines, fmt.Sprintf("Tagline: %s", product.Tagline))
	}

	lines = append(lines, fmt.Sprintf("URL: %s", product.URL))
	lines = append(lines, fmt.Sprintf("UID: %s", product.UID))

	if product.Description != "" {
		lines = append(lines, fmt.Sprintf("Description: %s", product.Description))
	}

	if specs := formatSpecs(product.Specs); specs != "" {
		lines = append(lines, fmt.Sprintf("Specifications: %s", specs))
	}

	if prices := formatPrices(product.Prices); prices != "" {
		lines = append(lines, fmt.Sprintf("Prices: %s", prices))
	}

	if technologies := formatTechnologies(product.Technologies); technologies != "" {
		lines = append(lines, fmt.Sprintf("Technology: %s", technologies))
	}

	if features := formatFeatures(product.Features); features != "" {
		lines = append(lines, fmt.Sprintf("Features: %s", features))
	}

	return strings.Join(lines, "\n")
}

// formatSpecs renders "title: value" pairs joined by "; ". A title
// repeated across rows collapses into one pair holding the last seen
// value, at the position the title first appeared. Pairs with an empty
// value are dropped.
func formatSpecs(specs []ProductSpec) string {
	if len(specs) == 0 {
		return ""
	}

	var titles []string
	values := make(map[string]string, len(specs))

	for _, spec := range specs {
		if _, seen := values[spec.Title]; !seen {
			titles = append(titles, spec.Title)
		}
		values[spec.Title] = spec.Value
	}

	parts := make([]string, 0, len(titles))
	for _, title := range titles {
		if values[title] == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", title, values[title]))
	}

	return strings.Join(parts, "; ")
}

func formatPrices(prices []ProductPrice) string {
	parts := make([]string, 0, len(prices))
	for _, price := range prices {
		if price.Price == "" {
			continue
		}
		parts = append(parts, fmt.Sprintf("%s: %s", strings.ToUpper(price.Region), price.Price))
	}

	return strings.Join(parts, "; ")
}

// formatTechnologies renders "title: content" entries joined by " | ".
// A technology without content renders as its bare title.
func formatTechnologies(technologies []ProductTechnology) string {
	parts := make([]string, 0, len(technologies))
	for _, technology := range technologies {
		if technology.Content != "" {
			parts = append(parts, fmt.Sprintf("%s: %s", technology.Title, technology.Content))
		} else {
			parts = append(parts, technology.Title)
		}
	}

	return strings.Join(parts, " | ")
}

// formatFeatures groups rows by group title, keeping first-seen group
// order, and renders "group: content, content" entries joined by
// " | ". Rows without a group title fall into the "General" group.
func formatFeatures(features []ProductFeature) string {
	if len(features) == 0 {
		return ""
	}

	var groups []string
	contents := make(map[string][]string)

	for _, feature := range features {
		groupTitle := feature.GroupTitle
		if groupTitle == "" {
			groupTitle = "General"
		}

		if _, seen := contents[groupTitle]; !seen {
			groups = append(groups, groupTitle)
		}
		contents[groupTitle] = append(contents[groupTitle], feature.Content)
	}

	parts := make([]string, 0, len(groups))
	for _, group := range groups {
		parts = append(parts, fmt.Sprintf("%s: %s", group, strings.Join(contents[group], ", ")))
	}

	return strings.Join(parts, " | ")
}
