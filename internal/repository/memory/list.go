package memory

import (
	"context"
	"sort"
	"time"

	"github.com/Kerhoff/familycart/internal/models"
	"github.com/Kerhoff/familycart/internal/repository"
)

type listRepository struct {
	db *Database
}

// NewListRepository creates a new in-memory list repository
func NewListRepository(db *Database) repository.ListRepository {
	return &listRepository{db: db}
}

func (r *listRepository) Create(ctx context.Context, familyID string, list *models.ShoppingList) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if list.ID == "" {
		list.ID = newID()
	}
	if list.Timestamp.IsZero() {
		list.Timestamp = time.Now()
	}
	lists, ok := r.db.lists[familyID]
	if !ok {
		lists = make(map[string]models.ShoppingList)
		r.db.lists[familyID] = lists
	}
	lists[list.ID] = *list
	return nil
}

func (r *listRepository) ListByFamily(ctx context.Context, familyID string) ([]*models.ShoppingList, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	lists := make([]*models.ShoppingList, 0, len(r.db.lists[familyID]))
	for _, l := range r.db.lists[familyID] {
		list := l
		lists = append(lists, &list)
	}
	sort.SliceStable(lists, func(i, j int) bool {
		return lists[i].Timestamp.After(lists[j].Timestamp)
	})
	return lists, nil
}

func (r *listRepository) GetByID(ctx context.Context, familyID, listID string) (*models.ShoppingList, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	l, ok := r.db.lists[familyID][listID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &l, nil
}

// Delete removes the list document only; like the document store, its
// items are left behind.
func (r *listRepository) Delete(ctx context.Context, familyID, listID string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	delete(r.db.lists[familyID], listID)
	return nil
}

func (r *listRepository) Items(ctx context.Context, familyID, listID string) ([]*models.ListItem, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	src := r.db.items[listKey{familyID, listID}]
	items := make([]*models.ListItem, 0, len(src))
	for _, it := range src {
		item := it
		items = append(items, &item)
	}
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Timestamp.Equal(items[j].Timestamp) {
			return items[i].ID < items[j].ID
		}
		return items[i].Timestamp.Before(items[j].Timestamp)
	})
	return items, nil
}

func (r *listRepository) HasProduct(ctx context.Context, familyID, listID, productID string) (bool, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, it := range r.db.items[listKey{familyID, listID}] {
		if it.ProductID == productID {
			return true, nil
		}
	}
	return false, nil
}

func (r *listRepository) AddItem(ctx context.Context, familyID, listID string, item *models.ListItem) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	if item.ID == "" {
		item.ID = newID()
	}
	if item.Timestamp.IsZero() {
		item.Timestamp = time.Now()
	}
	key := listKey{familyID, listID}
	items, ok := r.db.items[key]
	if !ok {
		items = make(map[string]models.ListItem)
		r.db.items[key] = items
	}
	items[item.ID] = *item
	return nil
}

func (r *listRepository) DeleteItemsByProduct(ctx context.Context, familyID, listID, productID string) (int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	return r.db.deleteItemsLocked(familyID, listID, productID), nil
}
