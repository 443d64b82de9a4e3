package madshus

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/eskrenkovic/madshus-catalog-go/internal/modules/core"
)

const defaultRequestTimeout = 30 * time.Second

// categoryCount is the number of category ids ListProducts walks. The
// grid API has no "all products" query, so the listing probes category
// ids 1 through categoryCount the same way the storefront does.
const categoryCount = 300

type ClientOption func(*Client)

func WithHTTPClient(httpClient *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = httpClient
	}
}

func WithHeader(key string, value string) ClientOption {
	return func(c *Client) {
		c.headers[key] = value
	}
}

// WithCategories overrides the category ids ListProducts walks.
func WithCategories(categories []int) ClientOption {
	return func(c *Client) {
		c.categories = categories
	}
}

// Client talks to the Madshus GraphQL product API.
type Client struct {
	endpoint   string
	httpClient *http.Client
	headers    map[string]string
	categories []int
}

func NewClient(endpoint string, opts ...ClientOption) *Client {
	client := &Client{
		endpoint:   endpoint,
		httpClient: &http.Client{Timeout: defaultRequestTimeout},
		headers: map[string]string{
			"accept":       "application/json",
			"content-type": "application/json",
		},
	}

	for _, opt := range opts {
		opt(client)
	}

	if len(client.categories) == 0 {
		client.categories = make([]int, 0, categoryCount)
		for category := 1; category <= categoryCount; category++ {
			client.categories = append(client.categories, category)
		}
	}

	return client
}

// ListProducts walks the product grid category by category and returns
// the summaries deduplicated by URL, in the order they were first seen.
// A failing category query fails the whole listing.
//
// TODO: paginate categories with more than 30 products. The query
// always sends limit=30&skip=0 like the storefront does.
func (c *Client) ListProducts(ctx context.Context, region string, locale string) ([]ProductSummary, error) {
	var summaries []ProductSummary
	seenURLs := make(map[string]struct{})

	for _, category := range c.categories {
		queryString := fmt.Sprintf(
			`{"bc_products.%s.categories":{"$in":[%d]},"regions":{"$in":["%s"]}}`+
				`&limit=30&skip=0&include_count=true&asc=bc_products.%s.sort_order&locale=%s&include_fallback=true`,
			region, category, region, region, locale,
		)

		var data productGridData
		err := c.execute(ctx, getPaginatedProductGridQuery, "GetPaginatedProductGrid", map[string]any{"queryString": queryString}, &data)
		if err != nil {
			return nil, fmt.Errorf("list products in category %d: %w", category, err)
		}

		for _, summary := range data.PaginatedProductGrid.Products {
			if summary.URL == "" {
				continue
			}

			if _, seen := seenURLs[summary.URL]; seen {
				continue
			}

			seenURLs[summary.URL] = struct{}{}
			summaries = append(summaries, summary)
		}
	}

	return summaries, nil
}

// GetProduct fetches the full payload of a single product by its URL.
// A nil detail with a nil error means the API holds no product under
// the URL.
func (c *Client) GetProduct(ctx context.Context, url string, locale string) (*ProductDetail, error) {
	var data productData
	err := c.execute(ctx, getProductQuery, "GetProduct", map[string]any{"url": url, "locale": locale}, &data)
	if err != nil {
		return nil, fmt.Errorf("get product %q: %w", url, err)
	}

	return data.Product, nil
}

func (c *Client) execute(
	ctx context.Context,
	query string,
	operationName string,
	variables map[string]any,
	out any,
) error {
	payload := graphqlRequest{
		Query:         query,
		Variables:     variables,
		OperationName: operationName,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrHTTPRequest, err)
	}

	request, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("%w: %s", ErrHTTPRequest, err)
	}

	for key, value := range c.headers {
		request.Header.Set(key, value)
	}

	response, err := c.httpClient.Do(request)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrHTTPRequest, err)
	}
	defer func() {
		_ = response.Body.Close()
	}()

	if response.StatusCode < 200 || response.StatusCode > 299 {
		return fmt.Errorf("%w: status %d", ErrHTTPResponse, response.StatusCode)
	}

	responseBody, err := io.ReadAll(response.Body)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrHTTPResponse, err)
	}

	var envelope struct {
		Data   json.RawMessage `json:"data"`
		Errors []graphqlError  `json:"errors"`
	}
	if err := json.Unmarshal(responseBody, &envelope); err != nil {
		return fmt.Errorf("%w: %s", ErrDecode, err)
	}

	if len(envelope.Errors) > 0 {
		messages := core.Map(envelope.Errors, func(e graphqlError) string { return e.Message })
		return fmt.Errorf("%w: %s", ErrGraphQLResponse, strings.Join(messages, "; "))
	}

	if len(envelope.Data) == 0 {
		return fmt.Errorf("%w: response contains no data", ErrDecode)
	}

	if err := json.Unmarshal(envelope.Data, out); err != nil {
		return fmt.Errorf("%w: %s", ErrDecode, err)
	}

	return nil
}
