package postgres

import (
	"database/sql"

	"github.com/google/uuid"

	"github.com/Kerhoff/familycart/internal/repository"
)

// NewStore returns every repository backed by db.
func NewStore(db *sql.DB) repository.Store {
	return repository.Store{
		Users:     NewUserRepository(db),
		Families:  NewFamilyRepository(db),
		Lists:     NewListRepository(db),
		Favorites: NewFavoriteRepository(db),
		Purchases: NewPurchaseRepository(db),
	}
}

func newID() string {
	return uuid.New().String()
}

// nullString maps an optional id onto a nullable column.
func nullString(s *string) sql.NullString {
	if s == nil {
		return sql.NullString{}
	}
	return sql.NullString{String: *s, Valid: true}
}
