package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/familycart/internal/models"
	"github.com/Kerhoff/familycart/internal/repository"
)

const (
	// UnnamedList is shown for lists stored without a name.
	UnnamedList = "Sin nombre"
	// FallbackListName is recorded in history when the list name is unknown.
	FallbackListName = "Lista sin nombre"
)

// ListDetails is a list's items joined with their catalog products. Items
// whose product could not be resolved are left out of Entries and their
// product ids reported in Unresolved.
type ListDetails struct {
	Entries    []models.ListedProduct `json:"entries"`
	Unresolved []string               `json:"unresolved"`
}

// CreateList creates a list in the user's family.
func (s *Service) CreateList(ctx context.Context, uid, name string) (*models.ShoppingList, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrEmptyListName
	}

	familyID, err := s.CurrentFamilyID(ctx, uid)
	if err != nil {
		return nil, err
	}

	list := &models.ShoppingList{Name: name, CreatedBy: uid, Timestamp: time.Now()}
	if err := s.Lists.Create(ctx, familyID, list); err != nil {
		return nil, fmt.Errorf("failed to create list: %w", err)
	}

	s.logger.WithFields(logrus.Fields{
		"family_id": familyID,
		"list_id":   list.ID,
	}).Info("Created shopping list")
	return list, nil
}

// GetUserLists returns the lists of the user's family, newest first.
func (s *Service) GetUserLists(ctx context.Context, uid string) ([]*models.ShoppingList, error) {
	familyID, err := s.CurrentFamilyID(ctx, uid)
	if err != nil {
		return nil, err
	}

	lists, err := s.Lists.ListByFamily(ctx, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get lists: %w", err)
	}
	for _, l := range lists {
		if l.Name == "" {
			l.Name = UnnamedList
		}
	}
	return lists, nil
}

// DeleteList removes a list of the user's family. Any member may delete.
func (s *Service) DeleteList(ctx context.Context, uid, listID string) error {
	familyID, err := s.CurrentFamilyID(ctx, uid)
	if err != nil {
		return err
	}
	if err := s.Lists.Delete(ctx, familyID, listID); err != nil {
		return fmt.Errorf("failed to delete list %s: %w", listID, err)
	}
	return nil
}

// GetList returns one list of the family.
func (s *Service) GetList(ctx context.Context, familyID, listID string) (*models.ShoppingList, error) {
	list, err := s.Lists.GetByID(ctx, familyID, listID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrListNotFound
		}
		return nil, fmt.Errorf("failed to get list %s: %w", listID, err)
	}
	return list, nil
}

// GetListName returns the list's name, or FallbackListName when the list is
// missing, unnamed or unreadable.
func (s *Service) GetListName(ctx context.Context, familyID, listID string) string {
	list, err := s.Lists.GetByID(ctx, familyID, listID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			s.logger.WithField("list_id", listID).WithError(err).Warn("Failed to get list name")
		}
		return FallbackListName
	}
	if list.Name == "" {
		return FallbackListName
	}
	return list.Name
}

// AddProductToList adds a product to a list of the user's family, refusing
// products already on the list. The check and the insert are separate
// reads and writes, so two concurrent adds of one product can both succeed.
func (s *Service) AddProductToList(ctx context.Context, uid, listID, productID, nota string, cantidad int) (*models.ListItem, error) {
	familyID, err := s.CurrentFamilyID(ctx, uid)
	if err != nil {
		return nil, err
	}

	exists, err := s.Lists.HasProduct(ctx, familyID, listID, productID)
	if err != nil {
		return nil, fmt.Errorf("failed to check list %s: %w", listID, err)
	}
	if exists {
		return nil, ErrProductAlreadyInList
	}

	if cantidad < 1 {
		cantidad = models.DefaultQuantity
	}
	item := &models.ListItem{
		ProductID: productID,
		Cantidad:  cantidad,
		Nota:      nota,
		AddedBy:   uid,
		Timestamp: time.Now(),
	}
	if err := s.Lists.AddItem(ctx, familyID, listID, item); err != nil {
		return nil, fmt.Errorf("failed to add product to list %s: %w", listID, err)
	}
	return item, nil
}

// RemoveProductFromList deletes every item of the list holding productID.
func (s *Service) RemoveProductFromList(ctx context.Context, uid, listID, productID string) (int, error) {
	familyID, err := s.CurrentFamilyID(ctx, uid)
	if err != nil {
		return 0, err
	}

	removed, err := s.Lists.DeleteItemsByProduct(ctx, familyID, listID, productID)
	if err != nil {
		return 0, fmt.Errorf("failed to remove product from list %s: %w", listID, err)
	}
	return removed, nil
}

// GetProductsForList returns the raw items of a list.
func (s *Service) GetProductsForList(ctx context.Context, familyID, listID string) ([]*models.ListItem, error) {
	items, err := s.Lists.Items(ctx, familyID, listID)
	if err != nil {
		return nil, fmt.Errorf("failed to get items of list %s: %w", listID, err)
	}
	for _, it := range items {
		it.Cantidad = it.Quantity()
	}
	return items, nil
}

// GetListWithDetails resolves every item of the list against the catalog,
// concurrently and in item order.
func (s *Service) GetListWithDetails(ctx context.Context, familyID, listID string) (*ListDetails, error) {
	items, err := s.GetProductsForList(ctx, familyID, listID)
	if err != nil {
		return nil, err
	}

	ids := make([]string, len(items))
	for i, it := range items {
		ids[i] = it.ProductID
	}

	details := &ListDetails{Entries: []models.ListedProduct{}}
	for i, res := range s.resolve(ctx, ids) {
		if !res.Found {
			details.Unresolved = append(details.Unresolved, res.ProductID)
			continue
		}
		details.Entries = append(details.Entries, models.ListedProduct{Product: res.Product, Item: items[i]})
	}

	if len(details.Unresolved) > 0 {
		s.logger.WithFields(logrus.Fields{
			"list_id":    listID,
			"unresolved": len(details.Unresolved),
		}).Debug("Dropped list items without catalog product")
	}
	return details, nil
}
