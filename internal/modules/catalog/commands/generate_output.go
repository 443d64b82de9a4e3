package commands

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/eskrenkovic/madshus-catalog-go/internal/modules/catalog"
	"github.com/eskrenkovic/madshus-catalog-go/internal/modules/core"
)

// OutputDelimiter separates formatted product blocks in the generated
// document. Every block is followed by the delimiter, including the
// last one.
const OutputDelimiter = "\n\n---\n\n"

type GenerateOutputCommand struct {
	OutputPath string
}

func (c GenerateOutputCommand) Validate() error {
	if c.OutputPath == "" {
		return fmt.Errorf("invalid OutputPath - '%s'", c.OutputPath)
	}

	return nil
}

type GenerateOutputResponse struct {
	Path     string
	Products int
}

type GenerateOutputCommandHandler struct {
	repository *catalog.ProductRepository
}

func NewGenerateOutputCommandHandler(repository *catalog.ProductRepository) *GenerateOutputCommandHandler {
	return &GenerateOutputCommandHandler{repository}
}

// Handle renders every stored product in insertion order and writes
// the combined document to disk. Any failure aborts the run, there is
// no per-product skip semantics for output.
func (h *GenerateOutputCommandHandler) Handle(
	ctx context.Context,
	request GenerateOutputCommand,
) (GenerateOutputResponse, error) {
	products, err := h.repository.LoadAllProducts(ctx)
	if err != nil {
		return GenerateOutputResponse{}, fmt.Errorf("load products: %w", err)
	}

	blocks := core.Map(products, catalog.FormatProduct)

	if dir := filepath.Dir(request.OutputPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return GenerateOutputResponse{}, fmt.Errorf("create output directory: %w", err)
		}
	}

	var document strings.Builder
	for _, block := range blocks {
		document.WriteString(block)
		document.WriteString(OutputDelimiter)
	}

	if err := os.WriteFile(request.OutputPath, []byte(document.String()), 0o644); err != nil {
		return GenerateOutputResponse{}, fmt.Errorf("write output file: %w", err)
	}

	return GenerateOutputResponse{Path: request.OutputPath, Products: len(blocks)}, nil
}
