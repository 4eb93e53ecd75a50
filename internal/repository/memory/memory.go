// Package memory provides an in-memory implementation of the repository
// interfaces, used by tests and local runs without a backing store.
package memory

import (
	"sync"

	"github.com/google/uuid"

	"github.com/Kerhoff/familycart/internal/models"
	"github.com/Kerhoff/familycart/internal/repository"
)

type listKey struct {
	familyID string
	listID   string
}

// Database holds every collection behind one lock so multi-collection
// writes are atomic.
type Database struct {
	mu        sync.RWMutex
	users     map[string]models.UserProfile
	families  map[string]models.Family
	lists     map[string]map[string]models.ShoppingList
	items     map[listKey]map[string]models.ListItem
	favorites map[string]map[string]struct{}
	purchases map[string]map[string]models.PurchaseRecord
}

// NewDatabase creates an empty in-memory database.
func NewDatabase() *Database {
	return &Database{
		users:     make(map[string]models.UserProfile),
		families:  make(map[string]models.Family),
		lists:     make(map[string]map[string]models.ShoppingList),
		items:     make(map[listKey]map[string]models.ListItem),
		favorites: make(map[string]map[string]struct{}),
		purchases: make(map[string]map[string]models.PurchaseRecord),
	}
}

// NewStore returns every repository backed by db.
func NewStore(db *Database) repository.Store {
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

// deleteItemsLocked removes the list's items referencing productID. The
// caller must hold the write lock.
func (db *Database) deleteItemsLocked(familyID, listID, productID string) int {
	items := db.items[listKey{familyID, listID}]
	removed := 0
	for id, item := range items {
		if item.ProductID == productID {
			delete(items, id)
			removed++
		}
	}
	return removed
}
