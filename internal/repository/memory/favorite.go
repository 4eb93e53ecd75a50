package memory

import (
	"context"
	"sort"

	"github.com/Kerhoff/familycart/internal/models"
	"github.com/Kerhoff/familycart/internal/repository"
)

type favoriteRepository struct {
	db *Database
}

// NewFavoriteRepository creates a new in-memory favorite repository
func NewFavoriteRepository(db *Database) repository.FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Exists(ctx context.Context, familyID, productID string) (bool, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	_, ok := r.db.favorites[familyID][productID]
	return ok, nil
}

func (r *favoriteRepository) Put(ctx context.Context, familyID, productID string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	favs, ok := r.db.favorites[familyID]
	if !ok {
		favs = make(map[string]struct{})
		r.db.favorites[familyID] = favs
	}
	favs[productID] = struct{}{}
	return nil
}

func (r *favoriteRepository) Delete(ctx context.Context, familyID, productID string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	delete(r.db.favorites[familyID], productID)
	return nil
}

func (r *favoriteRepository) List(ctx context.Context, familyID string) ([]*models.Favorite, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	favs := make([]*models.Favorite, 0, len(r.db.favorites[familyID]))
	for id := range r.db.favorites[familyID] {
		favs = append(favs, &models.Favorite{ProductID: id})
	}
	sort.Slice(favs, func(i, j int) bool { return favs[i].ProductID < favs[j].ProductID })
	return favs, nil
}
