package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/Kerhoff/familycart/internal/models"
	"github.com/Kerhoff/familycart/internal/repository"
)

type listRepository struct {
	client *firestore.Client
}

// NewListRepository creates a new Firestore shopping list repository
func NewListRepository(client *firestore.Client) repository.ListRepository {
	return &listRepository{client: client}
}

func (r *listRepository) lists(familyID string) *firestore.CollectionRef {
	return group(r.client, familyID).Collection(listsCollection)
}

func (r *listRepository) Create(ctx context.Context, familyID string, list *models.ShoppingList) error {
	ref := r.lists(familyID).NewDoc()
	if list.Timestamp.IsZero() {
		list.Timestamp = time.Now()
	}
	if _, err := ref.Create(ctx, list); err != nil {
		return fmt.Errorf("failed to create shopping list: %w", err)
	}
	list.ID = ref.ID
	return nil
}

func (r *listRepository) ListByFamily(ctx context.Context, familyID string) ([]*models.ShoppingList, error) {
	iter := r.lists(familyID).OrderBy("timestamp", firestore.Desc).Documents(ctx)
	lists, err := decodeAll(iter, func(l *models.ShoppingList, id string) { l.ID = id })
	if err != nil {
		return nil, fmt.Errorf("failed to query shopping lists: %w", err)
	}
	return lists, nil
}

func (r *listRepository) GetByID(ctx context.Context, familyID, listID string) (*models.ShoppingList, error) {
	snap, err := r.lists(familyID).Doc(listID).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get shopping list: %w", err)
	}

	var list models.ShoppingList
	if err := snap.DataTo(&list); err != nil {
		return nil, fmt.Errorf("failed to decode shopping list: %w", err)
	}
	list.ID = snap.Ref.ID
	return &list, nil
}

// Delete removes the list document. Firestore does not cascade, so the
// items subcollection stays behind as in the mobile clients.
func (r *listRepository) Delete(ctx context.Context, familyID, listID string) error {
	if _, err := r.lists(familyID).Doc(listID).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete shopping list: %w", err)
	}
	return nil
}

func (r *listRepository) Items(ctx context.Context, familyID, listID string) ([]*models.ListItem, error) {
	iter := items(r.client, familyID, listID).Documents(ctx)
	result, err := decodeAll(iter, func(it *models.ListItem, id string) { it.ID = id })
	if err != nil {
		return nil, fmt.Errorf("failed to query list items: %w", err)
	}
	return result, nil
}

func (r *listRepository) HasProduct(ctx context.Context, familyID, listID, productID string) (bool, error) {
	docs, err := items(r.client, familyID, listID).
		Where("productId", "==", productID).
		Limit(1).
		Documents(ctx).
		GetAll()
	if err != nil {
		return false, fmt.Errorf("failed to check list item: %w", err)
	}
	return len(docs) > 0, nil
}

func (r *listRepository) AddItem(ctx context.Context, familyID, listID string, item *models.ListItem) error {
	ref := items(r.client, familyID, listID).NewDoc()
	if item.Timestamp.IsZero() {
		item.Timestamp = time.Now()
	}
	if _, err := ref.Create(ctx, item); err != nil {
		return fmt.Errorf("failed to add list item: %w", err)
	}
	item.ID = ref.ID
	return nil
}

func (r *listRepository) DeleteItemsByProduct(ctx context.Context, familyID, listID, productID string) (int, error) {
	query := items(r.client, familyID, listID).Where("productId", "==", productID)

	removed := 0
	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		removed = 0
		docs, err := tx.Documents(query).GetAll()
		if err != nil {
			return err
		}
		for _, doc := range docs {
			if err := tx.Delete(doc.Ref); err != nil {
				return err
			}
			removed++
		}
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("failed to delete list items: %w", err)
	}
	return removed, nil
}
