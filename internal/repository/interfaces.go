package repository

import (
	"context"
	"errors"

	"github.com/Kerhoff/familycart/internal/models"
)

// ErrNotFound is returned when the requested document or row does not exist.
var ErrNotFound = errors.New("not found")

// UserRepository defines the interface for profile data operations
type UserRepository interface {
	Create(ctx context.Context, profile *models.UserProfile) error
	GetByID(ctx context.Context, uid string) (*models.UserProfile, error)
	UpdateProfile(ctx context.Context, uid, nombre, apellidos, foto string) error
	// SetFamily sets the profile's family; nil clears it.
	SetFamily(ctx context.Context, uid string, familyID *string) error
	ListByFamily(ctx context.Context, familyID string) ([]*models.UserProfile, error)
	Delete(ctx context.Context, uid string) error
}

// FamilyRepository defines the interface for family data operations
type FamilyRepository interface {
	CodeExists(ctx context.Context, code string) (bool, error)
	GetByCode(ctx context.Context, code string) (*models.Family, error)
	GetByID(ctx context.Context, id string) (*models.Family, error)
	// CreateWithOwner stores the family and points the owner's profile at it
	// in a single atomic write. family.ID is populated on success.
	CreateWithOwner(ctx context.Context, family *models.Family) error
}

// ListRepository defines the interface for shopping list and list item operations
type ListRepository interface {
	Create(ctx context.Context, familyID string, list *models.ShoppingList) error
	// ListByFamily returns the family's lists, newest first.
	ListByFamily(ctx context.Context, familyID string) ([]*models.ShoppingList, error)
	GetByID(ctx context.Context, familyID, listID string) (*models.ShoppingList, error)
	Delete(ctx context.Context, familyID, listID string) error

	Items(ctx context.Context, familyID, listID string) ([]*models.ListItem, error)
	HasProduct(ctx context.Context, familyID, listID, productID string) (bool, error)
	AddItem(ctx context.Context, familyID, listID string, item *models.ListItem) error
	// DeleteItemsByProduct removes every item referencing productID and
	// returns how many were removed.
	DeleteItemsByProduct(ctx context.Context, familyID, listID, productID string) (int, error)
}

// FavoriteRepository defines the interface for family favorites
type FavoriteRepository interface {
	Exists(ctx context.Context, familyID, productID string) (bool, error)
	Put(ctx context.Context, familyID, productID string) error
	Delete(ctx context.Context, familyID, productID string) error
	List(ctx context.Context, familyID string) ([]*models.Favorite, error)
}

// PurchaseRepository defines the interface for purchase history operations
type PurchaseRepository interface {
	Add(ctx context.Context, familyID string, record *models.PurchaseRecord) error
	// List returns the family's purchases, newest first.
	List(ctx context.Context, familyID string) ([]*models.PurchaseRecord, error)
	GetByID(ctx context.Context, familyID, purchaseID string) (*models.PurchaseRecord, error)
	// Complete stores the record and removes every item of the list whose
	// product appears in productIDs, atomically.
	Complete(ctx context.Context, familyID, listID string, record *models.PurchaseRecord, productIDs []string) error
}

// Store bundles every repository of one backend.
type Store struct {
	Users     UserRepository
	Families  FamilyRepository
	Lists     ListRepository
	Favorites FavoriteRepository
	Purchases PurchaseRepository
}
