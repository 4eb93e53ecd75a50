package catalog

import (
	"context"

	"golang.org/x/sync/errgroup"

	"github.com/Kerhoff/familycart/internal/models"
)

// ProductGetter looks up one product, returning nil when it is unavailable.
type ProductGetter interface {
	GetProductByID(ctx context.Context, id string) *models.Product
}

// ProductGetterFunc adapts a function to ProductGetter.
type ProductGetterFunc func(ctx context.Context, id string) *models.Product

// GetProductByID calls f.
func (f ProductGetterFunc) GetProductByID(ctx context.Context, id string) *models.Product {
	return f(ctx, id)
}

// Resolution pairs a requested product id with its lookup result.
type Resolution struct {
	ProductID string
	Product   *models.Product
	Found     bool
}

// ResolveProducts looks up every id with at most limit lookups in flight and
// returns one Resolution per id, in input order.
func ResolveProducts(ctx context.Context, getter ProductGetter, ids []string, limit int) []Resolution {
	results := make([]Resolution, len(ids))
	if limit < 1 {
		limit = 1
	}

	var g errgroup.Group
	g.SetLimit(limit)
	for i, id := range ids {
		i, id := i, id
		g.Go(func() error {
			product := getter.GetProductByID(ctx, id)
			results[i] = Resolution{ProductID: id, Product: product, Found: product != nil}
			return nil
		})
	}
	_ = g.Wait()

	return results
}

// Found returns the products of the successful resolutions, in order.
func Found(resolutions []Resolution) []*models.Product {
	products := make([]*models.Product, 0, len(resolutions))
	for _, r := range resolutions {
		if r.Found {
			products = append(products, r.Product)
		}
	}
	return products
}
