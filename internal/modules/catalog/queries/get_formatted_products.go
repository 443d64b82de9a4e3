package queries

import (
	"context"
	"fmt"

	"github.com/eskrenkovic/madshus-catalog-go/internal/modules/catalog"
	"github.com/eskrenkovic/madshus-catalog-go/internal/modules/core"
)

type GetFormattedProductsQuery struct {
	UIDs []string
}

type GetFormattedProductsQueryHandler struct {
	repository *catalog.ProductRepository
}

func NewGetFormattedProductsQueryHandler(repository *catalog.ProductRepository) *GetFormattedProductsQueryHandler {
	return &GetFormattedProductsQueryHandler{repository}
}

// Handle renders stored products to their text blocks in insertion
// order. An empty uid list selects every product. Unknown uids are
// silently ignored.
func (h *GetFormattedProductsQueryHandler) Handle(
	ctx context.Context,
	request GetFormattedProductsQuery,
) ([]catalog.FormattedProduct, error) {
	products, err := h.repository.LoadAllProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}

	if len(request.UIDs) > 0 {
		requested := make(map[string]struct{}, len(request.UIDs))
		for _, uid := range request.UIDs {
			requested[uid] = struct{}{}
		}

		filtered := make([]catalog.Product, 0, len(request.UIDs))
		for _, product := range products {
			if _, found := requested[product.UID]; found {
				filtered = append(filtered, product)
			}
		}

		products = filtered
	}

	return core.Map(products, func(product catalog.Product) catalog.FormattedProduct {
		return catalog.FormattedProduct{UID: product.UID, Text: catalog.FormatProduct(product)}
	}), nil
}
