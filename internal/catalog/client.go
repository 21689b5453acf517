package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/shopspring/decimal"

	"github.com/nikolayk812/carrito/internal/domain"
)

// ErrUnavailable covers every way the catalog can fail to produce
// products: network errors, non-2xx statuses and malformed bodies.
// Callers recover by rendering the page-level error state.
var ErrUnavailable = errors.New("catalog unavailable")

const defaultTimeout = 10 * time.Second

// Client fetches product summaries from a dummyjson-style products
// endpoint: GET {base}/products?limit={n} returning {"products": [...]}.
type Client struct {
	baseURL string
	limit   int
	hc      *http.Client
}

func NewClient(baseURL string, limit int, timeout time.Duration) (*Client, error) {
	if baseURL == "" {
		return nil, fmt.Errorf("baseURL is empty")
	}
	if limit < 1 {
		return nil, fmt.Errorf("limit[%d] is not positive", limit)
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}

	return &Client{
		baseURL: baseURL,
		limit:   limit,
		hc:      &http.Client{Timeout: timeout},
	}, nil
}

type productsResponse struct {
	Products []productRecord `json:"products"`
}

type productRecord struct {
	ID        int64           `json:"id"`
	Title     string          `json:"title"`
	Price     decimal.Decimal `json:"price"`
	Thumbnail string          `json:"thumbnail"`
}

// Products lists the catalog. An empty catalog returns a nil slice and
// no error; callers distinguish it from the unavailable case.
func (c *Client) Products(ctx context.Context) ([]domain.ProductSummary, error) {
	url := fmt.Sprintf("%s/products?limit=%d", c.baseURL, c.limit)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("http.NewRequestWithContext: %w", err)
	}

	resp, err := c.hc.Do(req)
	if err != nil {
		return nil, errors.Join(ErrUnavailable, fmt.Errorf("hc.Do: %w", err))
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, errors.Join(ErrUnavailable, fmt.Errorf("unexpected status %d", resp.StatusCode))
	}

	var body productsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, errors.Join(ErrUnavailable, fmt.Errorf("json.Decode: %w", err))
	}

	return mapProductsToDomain(body.Products)
}

func mapProductToDomain(r productRecord) (domain.ProductSummary, error) {
	if r.ID < 1 {
		return domain.ProductSummary{}, fmt.Errorf("product ID[%d] is not positive", r.ID)
	}
	if r.Price.IsNegative() {
		return domain.ProductSummary{}, fmt.Errorf("product ID[%d] has negative price %s", r.ID, r.Price)
	}

	return domain.ProductSummary{
		ID:           r.ID,
		Title:        r.Title,
		Price:        domain.USD(r.Price),
		ThumbnailURL: r.Thumbnail,
	}, nil
}

func mapProductsToDomain(records []productRecord) ([]domain.ProductSummary, error) {
	var products []domain.ProductSummary

	for _, r := range records {
		p, err := mapProductToDomain(r)
		if err != nil {
			return nil, errors.Join(ErrUnavailable, fmt.Errorf("mapProductToDomain: %w", err))
		}
		products = append(products, p)
	}

	return products, nil
}
