package viewmodel

import (
	"context"

	"github.com/Kerhoff/familycart/internal/models"
	"github.com/Kerhoff/familycart/internal/service"
)

// ListDetail shows one list with its products resolved.
type ListDetail struct {
	svc      *service.Service
	uid      string
	familyID string
	listID   string

	name       *Signal[string]
	entries    *Signal[[]models.ListedProduct]
	unresolved *Signal[[]string]
}

// NewListDetail creates the detail view of a list for uid.
func NewListDetail(svc *service.Service, uid, familyID, listID string) *ListDetail {
	return &ListDetail{
		svc:        svc,
		uid:        uid,
		familyID:   familyID,
		listID:     listID,
		name:       NewSignal(""),
		entries:    NewSignal[[]models.ListedProduct](nil),
		unresolved: NewSignal[[]string](nil),
	}
}

func (l *ListDetail) Name() Observable[string] {
	return l.name
}

func (l *ListDetail) Entries() Observable[[]models.ListedProduct] {
	return l.entries
}

func (l *ListDetail) Unresolved() Observable[[]string] {
	return l.unresolved
}

// Load reads the list name and its resolved entries.
func (l *ListDetail) Load(ctx context.Context) error {
	details, err := l.svc.GetListWithDetails(ctx, l.familyID, l.listID)
	if err != nil {
		return err
	}
	l.name.Set(l.svc.GetListName(ctx, l.familyID, l.listID))
	l.entries.Set(details.Entries)
	l.unresolved.Set(details.Unresolved)
	return nil
}

// Remove deletes the product from the list and reloads it.
func (l *ListDetail) Remove(ctx context.Context, productID string) error {
	if _, err := l.svc.RemoveProductFromList(ctx, l.uid, l.listID, productID); err != nil {
		return err
	}
	return l.Load(ctx)
}
