package commands

import (
	"context"
	"fmt"

	"github.com/eskrenkovic/madshus-catalog-go/internal/modules/catalog"
	"github.com/eskrenkovic/madshus-catalog-go/internal/modules/madshus"

	"go.uber.org/zap"
)

// ProductAPI is the part of the vendor API client a collection run uses.
type ProductAPI interface {
	ListProducts(ctx context.Context, region string, locale string) ([]madshus.ProductSummary, error)
	GetProduct(ctx context.Context, url string, locale string) (*madshus.ProductDetail, error)
}

type CollectProductsCommand struct {
	Region string
	Locale string
	Limit  int
}

func (c CollectProductsCommand) Validate() error {
	if c.Region == "" {
		return fmt.Errorf("invalid Region - '%s'", c.Region)
	}

	if c.Locale == "" {
		return fmt.Errorf("invalid Locale - '%s'", c.Locale)
	}

	if c.Limit < 0 {
		return fmt.Errorf("invalid Limit - '%d'", c.Limit)
	}

	return nil
}

// CollectionFailure records one product that could not be collected.
type CollectionFailure struct {
	UID    string
	URL    string
	Reason string
}

type CollectProductsResponse struct {
	Collected int
	Failures  []CollectionFailure
}

type CollectProductsCommandHandler struct {
	api        ProductAPI
	repository *catalog.ProductRepository
	logger     *zap.Logger
}

func NewCollectProductsCommandHandler(
	api ProductAPI,
	repository *catalog.ProductRepository,
	logger *zap.Logger,
) *CollectProductsCommandHandler {
	return &CollectProductsCommandHandler{api, repository, logger}
}

// Handle runs one full collection pass. A failing product listing
// aborts the run before anything is written. Failures of individual
// products are logged, recorded in the response, and do not stop the
// remaining products.
func (h *CollectProductsCommandHandler) Handle(
	ctx context.Context,
	request CollectProductsCommand,
) (CollectProductsResponse, error) {
	summaries, err := h.api.ListProducts(ctx, request.Region, request.Locale)
	if err != nil {
		return CollectProductsResponse{}, fmt.Errorf("list products: %w", err)
	}

	if request.Limit > 0 && len(summaries) > request.Limit {
		summaries = summaries[:request.Limit]
	}

	var response CollectProductsResponse

	for _, summary := range summaries {
		if err := h.collectProduct(ctx, summary, request.Locale); err != nil {
			h.logger.Warn(
				"failed to collect product",
				zap.String("uid", summary.UID),
				zap.String("url", summary.URL),
				zap.Error(err),
			)

			response.Failures = append(response.Failures, CollectionFailure{
				UID:    summary.UID,
				URL:    summary.URL,
				Reason: err.Error(),
			})
			continue
		}

		response.Collected++
	}

	return response, nil
}

func (h *CollectProductsCommandHandler) collectProduct(
	ctx context.Context,
	summary madshus.ProductSummary,
	locale string,
) error {
	detail, err := h.api.GetProduct(ctx, summary.URL, locale)
	if err != nil {
		return err
	}

	if detail == nil {
		return fmt.Errorf("no product data for %s", summary.URL)
	}

	product, err := madshus.MapProduct(*detail)
	if err != nil {
		return err
	}

	return h.repository.SaveProduct(ctx, product)
}
