package service

import (
	"context"
	"fmt"

	"github.com/Kerhoff/familycart/internal/catalog"
	"github.com/Kerhoff/familycart/internal/models"
)

// IsFavorite reports whether the family has favorited the product.
func (s *Service) IsFavorite(ctx context.Context, familyID, productID string) (bool, error) {
	ok, err := s.Favorites.Exists(ctx, familyID, productID)
	if err != nil {
		return false, fmt.Errorf("failed to check favorite %s: %w", productID, err)
	}
	return ok, nil
}

// AddFavorite marks the product as a family favorite. Repeating it is a no-op.
func (s *Service) AddFavorite(ctx context.Context, familyID, productID string) error {
	if err := s.Favorites.Put(ctx, familyID, productID); err != nil {
		return fmt.Errorf("failed to add favorite %s: %w", productID, err)
	}
	return nil
}

// RemoveFavorite unmarks the product. Removing a missing favorite is a no-op.
func (s *Service) RemoveFavorite(ctx context.Context, familyID, productID string) error {
	if err := s.Favorites.Delete(ctx, familyID, productID); err != nil {
		return fmt.Errorf("failed to remove favorite %s: %w", productID, err)
	}
	return nil
}

// FavoriteProducts returns the family's favorite products resolved against the
// catalog. Products the catalog cannot return are skipped.
func (s *Service) FavoriteProducts(ctx context.Context, familyID string) ([]*models.Product, error) {
	favs, err := s.Favorites.List(ctx, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get favorites: %w", err)
	}

	ids := make([]string, len(favs))
	for i, f := range favs {
		ids[i] = f.ProductID
	}

	resolutions := s.resolve(ctx, ids)
	for _, r := range resolutions {
		if r.Found {
			r.Product.ID = models.Scalar(r.ProductID)
		}
	}
	return catalog.Found(resolutions), nil
}
