package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"

	"github.com/Kerhoff/familycart/internal/models"
	"github.com/Kerhoff/familycart/internal/repository"
)

type favoriteRepository struct {
	client *firestore.Client
}

// NewFavoriteRepository creates a new Firestore favorite repository
func NewFavoriteRepository(client *firestore.Client) repository.FavoriteRepository {
	return &favoriteRepository{client: client}
}

func (r *favoriteRepository) favorites(familyID string) *firestore.CollectionRef {
	return group(r.client, familyID).Collection(favoritesCollection)
}

func (r *favoriteRepository) Exists(ctx context.Context, familyID, productID string) (bool, error) {
	snap, err := r.favorites(familyID).Doc(productID).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return snap.Exists(), nil
}

func (r *favoriteRepository) Put(ctx context.Context, familyID, productID string) error {
	_, err := r.favorites(familyID).Doc(productID).Set(ctx, models.Favorite{ProductID: productID})
	if err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

func (r *favoriteRepository) Delete(ctx context.Context, familyID, productID string) error {
	if _, err := r.favorites(familyID).Doc(productID).Delete(ctx); err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}

func (r *favoriteRepository) List(ctx context.Context, familyID string) ([]*models.Favorite, error) {
	iter := r.favorites(familyID).Documents(ctx)
	favorites, err := decodeAll(iter, func(f *models.Favorite, id string) { f.ProductID = id })
	if err != nil {
		return nil, fmt.Errorf("failed to query favorites: %w", err)
	}
	return favorites, nil
}
