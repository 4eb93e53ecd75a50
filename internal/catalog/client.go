// Package catalog reads the public product catalog and keeps an owned,
// refreshable copy of its category tree.
package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/Kerhoff/familycart/internal/metrics"
	"github.com/Kerhoff/familycart/internal/models"
)

// ErrNotFound is returned when the catalog has no resource with the given id.
var ErrNotFound = errors.New("catalog resource not found")

// StatusError is returned for any other non-2xx response.
type StatusError struct {
	Endpoint string
	Code     int
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("catalog %s returned status %d", e.Endpoint, e.Code)
}

// Client talks to the catalog REST API.
type Client struct {
	baseURL *url.URL
	http    *http.Client
	metrics *metrics.Metrics
}

// NewClient creates a client for the API rooted at baseURL.
func NewClient(baseURL string, timeout time.Duration, m *metrics.Metrics) (*Client, error) {
	if !strings.HasSuffix(baseURL, "/") {
		baseURL += "/"
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return nil, fmt.Errorf("invalid catalog base URL: %w", err)
	}
	return &Client{
		baseURL: u,
		http:    &http.Client{Timeout: timeout},
		metrics: m,
	}, nil
}

// Categories fetches the top-level category tree.
func (c *Client) Categories(ctx context.Context) (*models.CategoriesResponse, error) {
	var resp models.CategoriesResponse
	if err := c.get(ctx, "categories", "categories/", &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// CategoryWithProducts fetches one category with the products of each of
// its subcategories.
func (c *Client) CategoryWithProducts(ctx context.Context, id int) (*models.CategoryDetail, error) {
	var detail models.CategoryDetail
	if err := c.get(ctx, "category", "categories/"+strconv.Itoa(id)+"/", &detail); err != nil {
		return nil, err
	}
	return &detail, nil
}

// productIDPattern matches catalog product ids such as "4241" or "10381.1".
var productIDPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9._-]*$`)

// ProductByID fetches a single product. Ids that cannot name a product, and
// answers without an id, are reported as ErrNotFound.
func (c *Client) ProductByID(ctx context.Context, id string) (*models.Product, error) {
	if !productIDPattern.MatchString(id) {
		return nil, ErrNotFound
	}
	var product models.Product
	if err := c.get(ctx, "product", "products/"+url.PathEscape(id)+"/", &product); err != nil {
		return nil, err
	}
	if product.ID.String() == "" {
		return nil, ErrNotFound
	}
	return &product, nil
}

func (c *Client) get(ctx context.Context, endpoint, path string, out interface{}) (err error) {
	start := time.Now()
	defer func() { c.metrics.ObserveCatalogRequest(endpoint, err, time.Since(start)) }()

	ref, err := url.Parse(path)
	if err != nil {
		return fmt.Errorf("invalid catalog path %q: %w", path, err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL.ResolveReference(ref).String(), nil)
	if err != nil {
		return fmt.Errorf("failed to build catalog request: %w", err)
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("failed to call catalog %s: %w", endpoint, err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode < 200 || resp.StatusCode > 299:
		return &StatusError{Endpoint: endpoint, Code: resp.StatusCode}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode catalog %s: %w", endpoint, err)
	}
	return nil
}
