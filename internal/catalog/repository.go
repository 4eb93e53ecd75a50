package catalog

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/familycart/internal/models"
)

// Repository serves catalog reads on top of Client and the owned Cache.
type Repository struct {
	client *Client
	cache  *Cache
	ttl    time.Duration
	logger *logrus.Logger
}

// NewRepository creates a repository. Category reads reload the cache when
// it is older than ttl.
func NewRepository(client *Client, ttl time.Duration, logger *logrus.Logger) *Repository {
	r := &Repository{client: client, ttl: ttl, logger: logger}
	r.cache = NewCache(r.fetchCategories)
	return r
}

// Cache exposes the owned category cache.
func (r *Repository) Cache() *Cache {
	return r.cache
}

func (r *Repository) fetchCategories(ctx context.Context) (Snapshot, error) {
	resp, err := r.client.Categories(ctx)
	if err != nil {
		return Snapshot{}, err
	}

	var subs []models.SubCategory
	for _, cat := range resp.Results {
		subs = append(subs, cat.Categories...)
	}
	return Snapshot{Categories: resp.Results, SubCategories: subs}, nil
}

// LoadCategories replaces both the category and the subcategory collections
// with a fresh copy from the API.
func (r *Repository) LoadCategories(ctx context.Context) error {
	snap, err := r.cache.Refresh(ctx)
	if err != nil {
		r.logger.WithError(err).Error("Failed to load catalog categories")
		return fmt.Errorf("failed to load categories: %w", err)
	}
	r.logger.WithFields(logrus.Fields{
		"categories":    len(snap.Categories),
		"subcategories": len(snap.SubCategories),
	}).Debug("Catalog categories loaded")
	return nil
}

// Categories returns the cached top-level categories, loading them first
// when the cache is stale. A failed reload serves the previous snapshot if
// there is one.
func (r *Repository) Categories(ctx context.Context) ([]models.Category, error) {
	snap, err := r.current(ctx)
	if err != nil {
		return nil, err
	}
	return snap.Categories, nil
}

// SubCategories returns the cached subcategories of every category.
func (r *Repository) SubCategories(ctx context.Context) ([]models.SubCategory, error) {
	snap, err := r.current(ctx)
	if err != nil {
		return nil, err
	}
	return snap.SubCategories, nil
}

func (r *Repository) current(ctx context.Context) (Snapshot, error) {
	if !r.cache.Stale(r.ttl) {
		return r.cache.Snapshot(), nil
	}
	if err := r.LoadCategories(ctx); err != nil {
		if snap := r.cache.Snapshot(); snap.Loaded() {
			return snap, nil
		}
		return Snapshot{}, err
	}
	return r.cache.Snapshot(), nil
}

// CategoryWithProducts returns one category with its products.
func (r *Repository) CategoryWithProducts(ctx context.Context, id int) (*models.CategoryDetail, error) {
	detail, err := r.client.CategoryWithProducts(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get category %d: %w", id, err)
	}
	return detail, nil
}

// GetProductByID returns the product, or nil when it cannot be fetched for
// any reason. Failures are logged, never returned.
func (r *Repository) GetProductByID(ctx context.Context, id string) *models.Product {
	product, err := r.client.ProductByID(ctx, id)
	if err != nil {
		r.logger.WithFields(logrus.Fields{
			"product_id": id,
		}).WithError(err).Warn("Failed to get catalog product")
		return nil
	}
	return product
}
