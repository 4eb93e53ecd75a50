package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Kerhoff/familycart/internal/models"
	"github.com/Kerhoff/familycart/internal/repository"
)

type favoriteRepository struct {
	db *sql.DB
}

// NewFavoriteRepository creates a new favorite repository
func NewFavoriteRepository(db *sql.DB) repository.FavoriteRepository {
	return &favoriteRepository{db: db}
}

func (r *favoriteRepository) Exists(ctx context.Context, familyID, productID string) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM favorites WHERE family_id = $1 AND product_id = $2)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, familyID, productID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}
	return exists, nil
}

func (r *favoriteRepository) Put(ctx context.Context, familyID, productID string) error {
	query := `
		INSERT INTO favorites (family_id, product_id)
		VALUES ($1, $2)
		ON CONFLICT (family_id, product_id) DO NOTHING`

	if _, err := r.db.ExecContext(ctx, query, familyID, productID); err != nil {
		return fmt.Errorf("failed to add favorite: %w", err)
	}
	return nil
}

func (r *favoriteRepository) Delete(ctx context.Context, familyID, productID string) error {
	query := `DELETE FROM favorites WHERE family_id = $1 AND product_id = $2`

	if _, err := r.db.ExecContext(ctx, query, familyID, productID); err != nil {
		return fmt.Errorf("failed to remove favorite: %w", err)
	}
	return nil
}

func (r *favoriteRepository) List(ctx context.Context, familyID string) ([]*models.Favorite, error) {
	query := `SELECT product_id FROM favorites WHERE family_id = $1 ORDER BY product_id ASC`

	rows, err := r.db.QueryContext(ctx, query, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query favorites: %w", err)
	}
	defer rows.Close()

	var favorites []*models.Favorite
	for rows.Next() {
		fav := &models.Favorite{}
		if err := rows.Scan(&fav.ProductID); err != nil {
			return nil, fmt.Errorf("failed to scan favorite: %w", err)
		}
		favorites = append(favorites, fav)
	}

	return favorites, rows.Err()
}
