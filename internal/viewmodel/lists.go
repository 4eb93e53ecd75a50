package viewmodel

import (
	"context"

	"github.com/Kerhoff/familycart/internal/models"
	"github.com/Kerhoff/familycart/internal/service"
)

// Lists shows the shopping lists of the user's family.
type Lists struct {
	svc *service.Service
	uid string

	lists *Signal[[]*models.ShoppingList]
}

func NewLists(svc *service.Service, uid string) *Lists {
	return &Lists{
		svc:   svc,
		uid:   uid,
		lists: NewSignal[[]*models.ShoppingList](nil),
	}
}

func (l *Lists) Lists() Observable[[]*models.ShoppingList] {
	return l.lists
}

func (l *Lists) Load(ctx context.Context) error {
	lists, err := l.svc.GetUserLists(ctx, l.uid)
	if err != nil {
		return err
	}
	l.lists.Set(lists)
	return nil
}

// Create adds a list and reloads.
func (l *Lists) Create(ctx context.Context, name string) (*models.ShoppingList, error) {
	list, err := l.svc.CreateList(ctx, l.uid, name)
	if err != nil {
		return nil, err
	}
	return list, l.Load(ctx)
}

// Delete removes a list and reloads.
func (l *Lists) Delete(ctx context.Context, listID string) error {
	if err := l.svc.DeleteList(ctx, l.uid, listID); err != nil {
		return err
	}
	return l.Load(ctx)
}
