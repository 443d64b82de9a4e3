package madshus

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/eskrenkovic/madshus-catalog-go/internal/modules/catalog"
)

var (
	htmlTagPattern    = regexp.MustCompile(`<.*?>`)
	whitespacePattern = regexp.MustCompile(`\s+`)
)

// CleanHTML strips markup tags and collapses whitespace runs into a
// single space. The API returns rich-text HTML for descriptions and
// technology content, the catalog stores plain text.
func CleanHTML(html string) string {
	if html == "" {
		return ""
	}

	text := htmlTagPattern.ReplaceAllString(html, "")
	text = whitespacePattern.ReplaceAllString(text, " ")

	return strings.TrimSpace(text)
}

// MapProduct converts an API product payload into a catalog product.
// Spec rows missing an id or title are dropped, as are empty prices
// and technologies without a title. Multi-value specs collapse into a
// single ", " separated value.
func MapProduct(detail ProductDetail) (catalog.Product, error) {
	if detail.UID == "" {
		return catalog.Product{}, fmt.Errorf("%w: product has no uid", ErrMapping)
	}

	product := catalog.Product{
		UID:          detail.UID,
		Title:        detail.Title,
		DisplayTitle: detail.DisplayTitle,
		URL:          detail.URL,
		Description:  CleanHTML(detail.Description),
		Tagline:      detail.Tagline,
	}

	for _, spec := range detail.Specs {
		if spec.ID == "" || spec.Title == "" {
			continue
		}

		product.Specs = append(product.Specs, catalog.ProductSpec{
			SpecID: spec.ID,
			Title:  spec.Title,
			Value:  spec.Value.String(),
		})
	}

	for _, region := range priceRegions {
		price := detail.Prices[region]
		if price == nil || *price == "" {
			continue
		}

		product.Prices = append(product.Prices, catalog.ProductPrice{
			Region: region,
			Price:  *price,
		})
	}

	for _, technology := range detail.Details.Technology {
		if technology.Title == "" {
			continue
		}

		product.Technologies = append(product.Technologies, catalog.ProductTechnology{
			Title:   technology.Title,
			Content: CleanHTML(technology.Content),
		})
	}

	for _, group := range detail.Details.FeatureDetails {
		for _, feature := range group.Group {
			if feature.Content == "" {
				continue
			}

			product.Features = append(product.Features, catalog.ProductFeature{
				GroupTitle: group.GroupTitle,
				Content:    feature.Content,
			})
		}
	}

	return product, nil
}
