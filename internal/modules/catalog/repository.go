package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/eskrenkovic/madshus-catalog-go/internal/modules/core"

	"github.com/eskrenkovic/tql"
)

// ErrProductNotFound is returned when the store holds no product under
// the requested uid.
var ErrProductNotFound = errors.New("catalog: product not found")

const (
	upsertProductStmt = `
		INSERT INTO products (uid, title, display_title, url, description, tagline, created_at, updated_at)
		VALUES (:uid, :title, :display_title, :url, :description, :tagline, :created_at, :updated_at)
		ON CONFLICT (uid) DO UPDATE
		SET title         = excluded.title,
		    display_title = excluded.display_title,
		    url           = excluded.url,
		    description   = excluded.description,
		    tagline       = excluded.tagline,
		    updated_at    = excluded.updated_at;`

	deleteSpecsStmt        = `DELETE FROM product_specs WHERE product_uid = $1;`
	deletePricesStmt       = `DELETE FROM product_prices WHERE product_uid = $1;`
	deleteTechnologiesStmt = `DELETE FROM product_technologies WHERE product_uid = $1;`
	deleteFeaturesStmt     = `DELETE FROM product_features WHERE product_uid = $1;`

	insertSpecStmt = `
		INSERT INTO product_specs (product_uid, position, spec_id, title, value)
		VALUES (:product_uid, :position, :spec_id, :title, :value);`

	insertPriceStmt = `
		INSERT INTO product_prices (product_uid, position, region, price)
		VALUES (:product_uid, :position, :region, :price);`

	insertTechnologyStmt = `
		INSERT INTO product_technologies (product_uid, position, title, content)
		VALUES (:product_uid, :position, :title, :content);`

	insertFeatureStmt = `
		INSERT INTO product_features (product_uid, position, group_title, content)
		VALUES (:product_uid, :position, :group_title, :content);`

	selectProductQuery = `
		SELECT uid, title, display_title, url, description, tagline, created_at, updated_at
		FROM products
		WHERE uid = $1;`

	selectAllProductsQuery = `
		SELECT uid, title, display_title, url, description, tagline, created_at, updated_at
		FROM products
		ORDER BY created_at, uid;`

	selectSpecsQuery = `
		SELECT product_uid, position, spec_id, title, value
		FROM product_specs
		WHERE product_uid = $1
		ORDER BY position;`

	selectAllSpecsQuery = `
		SELECT product_uid, position, spec_id, title, value
		FROM product_specs
		ORDER BY product_uid, position;`

	selectPricesQuery = `
		SELECT product_uid, position, region, price
		FROM product_prices
		WHERE product_uid = $1
		ORDER BY position;`

	selectAllPricesQuery = `
		SELECT product_uid, position, region, price
		FROM product_prices
		ORDER BY product_uid, position;`

	selectTechnologiesQuery = `
		SELECT product_uid, position, title, content
		FROM product_technologies
		WHERE product_uid = $1
		ORDER BY position;`

	selectAllTechnologiesQuery = `
		SELECT product_uid, position, title, content
		FROM product_technologies
		ORDER BY product_uid, position;`

	selectFeaturesQuery = `
		SELECT product_uid, position, group_title, content
		FROM product_features
		WHERE product_uid = $1
		ORDER BY position;`

	selectAllFeaturesQuery = `
		SELECT product_uid, position, group_title, content
		FROM product_features
		ORDER BY product_uid, position;`
)

// ProductRepository stores catalog products with their child rows.
type ProductRepository struct {
	db *sql.DB
}

func NewProductRepository(db *sql.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// SaveProduct upserts the product's scalar fields and replaces all of
// its child rows. The whole write runs in one transaction so readers
// never observe a partial child set. The stored created_at survives
// re-saving, updated_at is refreshed on every save.
func (r *ProductRepository) SaveProduct(ctx context.Context, product Product) error {
	now := time.Now().UTC()
	product.CreatedAt = now
	product.UpdatedAt = now

	for i := range product.Specs {
		product.Specs[i].ProductUID = product.UID
		product.Specs[i].Position = i
	}

	for i := range product.Prices {
		product.Prices[i].ProductUID = product.UID
		product.Prices[i].Position = i
	}

	for i := range product.Technologies {
		product.Technologies[i].ProductUID = product.UID
		product.Technologies[i].Position = i
	}

	for i := range product.Features {
		product.Features[i].ProductUID = product.UID
		product.Features[i].Position = i
	}

	return core.Tx(ctx, r.db, func(ctx context.Context, tx *sql.Tx) error {
		if _, err := tql.Exec(ctx, tx, upsertProductStmt, product); err != nil {
			return fmt.Errorf("upsert product %s: %w", product.UID, err)
		}

		deletes := []string{deleteSpecsStmt, deletePricesStmt, deleteTechnologiesStmt, deleteFeaturesStmt}
		for _, stmt := range deletes {
			if _, err := tql.Exec(ctx, tx, stmt, product.UID); err != nil {
				return fmt.Errorf("delete child rows of %s: %w", product.UID, err)
			}
		}

		for _, spec := range product.Specs {
			if _, err := tql.Exec(ctx, tx, insertSpecStmt, spec); err != nil {
				return fmt.Errorf("insert spec of %s: %w", product.UID, err)
			}
		}

		for _, price := range product.Prices {
			if _, err := tql.Exec(ctx, tx, insertPriceStmt, price); err != nil {
				return fmt.Errorf("insert price of %s: %w", product.UID, err)
			}
		}

		for _, technology := range product.Technologies {
			if _, err := tql.Exec(ctx, tx, insertTechnologyStmt, technology); err != nil {
				return fmt.Errorf("insert technology of %s: %w", product.UID, err)
			}
		}

		for _, feature := range product.Features {
			if _, err := tql.Exec(ctx, tx, insertFeatureStmt, feature); err != nil {
				return fmt.Errorf("insert feature of %s: %w", product.UID, err)
			}
		}

		return nil
	})
}

// LoadProduct returns a single product with all child rows loaded in
// stored order.
func (r *ProductRepository) LoadProduct(ctx context.Context, uid string) (Product, error) {
	products, err := tql.Query[Product](ctx, r.db, selectProductQuery, uid)
	if err != nil {
		return Product{}, fmt.Errorf("load product %s: %w", uid, err)
	}

	if len(products) == 0 {
		return Product{}, fmt.Errorf("%w: %s", ErrProductNotFound, uid)
	}

	product := products[0]

	product.Specs, err = tql.Query[ProductSpec](ctx, r.db, selectSpecsQuery, uid)
	if err != nil {
		return Product{}, fmt.Errorf("load specs of %s: %w", uid, err)
	}

	product.Prices, err = tql.Query[ProductPrice](ctx, r.db, selectPricesQuery, uid)
	if err != nil {
		return Product{}, fmt.Errorf("load prices of %s: %w", uid, err)
	}

	product.Technologies, err = tql.Query[ProductTechnology](ctx, r.db, selectTechnologiesQuery, uid)
	if err != nil {
		return Product{}, fmt.Errorf("load technologies of %s: %w", uid, err)
	}

	product.Features, err = tql.Query[ProductFeature](ctx, r.db, selectFeaturesQuery, uid)
	if err != nil {
		return Product{}, fmt.Errorf("load features of %s: %w", uid, err)
	}

	return product, nil
}

// LoadAllProducts returns every stored product in insertion order, with
// all child rows loaded. Children are fetched in one query per child
// table and grouped in memory.
func (r *ProductRepository) LoadAllProducts(ctx context.Context) ([]Product, error) {
	products, err := tql.Query[Product](ctx, r.db, selectAllProductsQuery)
	if err != nil {
		return nil, fmt.Errorf("load products: %w", err)
	}

	specs, err := tql.Query[ProductSpec](ctx, r.db, selectAllSpecsQuery)
	if err != nil {
		return nil, fmt.Errorf("load specs: %w", err)
	}

	prices, err := tql.Query[ProductPrice](ctx, r.db, selectAllPricesQuery)
	if err != nil {
		return nil, fmt.Errorf("load prices: %w", err)
	}

	technologies, err := tql.Query[ProductTechnology](ctx, r.db, selectAllTechnologiesQuery)
	if err != nil {
		return nil, fmt.Errorf("load technologies: %w", err)
	}

	features, err := tql.Query[ProductFeature](ctx, r.db, selectAllFeaturesQuery)
	if err != nil {
		return nil, fmt.Errorf("load features: %w", err)
	}

	specsByProduct := make(map[string][]ProductSpec, len(products))
	for _, spec := range specs {
		specsByProduct[spec.ProductUID] = append(specsByProduct[spec.ProductUID], spec)
	}

	pricesByProduct := make(map[string][]ProductPrice, len(products))
	for _, price := range prices {
		pricesByProduct[price.ProductUID] = append(pricesByProduct[price.ProductUID], price)
	}

	technologiesByProduct := make(map[string][]ProductTechnology, len(products))
	for _, technology := range technologies {
		technologiesByProduct[technology.ProductUID] = append(technologiesByProduct[technology.ProductUID], technology)
	}

	featuresByProduct := make(map[string][]ProductFeature, len(products))
	for _, feature := range features {
		featuresByProduct[feature.ProductUID] = append(featuresByProduct[feature.ProductUID], feature)
	}

	for i := range products {
		uid := products[i].UID
		products[i].Specs = specsByProduct[uid]
		products[i].Prices = pricesByProduct[uid]
		products[i].Technologies = technologiesByProduct[uid]
		products[i].Features = featuresByProduct[uid]
	}

	return products, nil
}
