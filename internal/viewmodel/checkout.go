package viewmodel

import (
	"context"

	"github.com/Kerhoff/familycart/internal/models"
	"github.com/Kerhoff/familycart/internal/service"
)

// ItemState is the checkout state of one list item.
type ItemState int

const (
	Pending ItemState = iota
	Added
	Purchased
)

func (s ItemState) String() string {
	switch s {
	case Pending:
		return "pending"
	case Added:
		return "added"
	case Purchased:
		return "purchased"
	default:
		return "unknown"
	}
}

// MarshalText implements encoding.TextMarshaler.
func (s ItemState) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

// CheckoutItem is a list entry during checkout.
type CheckoutItem struct {
	Product *models.Product `json:"producto"`
	Item    *models.ListItem `json:"productoLista"`
	State   ItemState        `json:"state"`
}

// Checkout walks a list's items through Pending, Added and Purchased.
type Checkout struct {
	svc      *service.Service
	familyID string
	listID   string

	items *Signal[[]CheckoutItem]
}

// NewCheckout creates the checkout of one list.
func NewCheckout(svc *service.Service, familyID, listID string) *Checkout {
	return &Checkout{
		svc:      svc,
		familyID: familyID,
		listID:   listID,
		items:    NewSignal[[]CheckoutItem](nil),
	}
}

// Items is the current checkout state.
func (c *Checkout) Items() Observable[[]CheckoutItem] {
	return c.items
}

// Load resets every resolved item of the list to Pending.
func (c *Checkout) Load(ctx context.Context) error {
	details, err := c.svc.GetListWithDetails(ctx, c.familyID, c.listID)
	if err != nil {
		return err
	}

	items := make([]CheckoutItem, 0, len(details.Entries))
	for _, e := range details.Entries {
		items = append(items, CheckoutItem{Product: e.Product, Item: e.Item, State: Pending})
	}
	c.items.Set(items)
	return nil
}

// MarkAdded moves the items of productID from Pending to Added.
func (c *Checkout) MarkAdded(productID string) {
	c.items.Update(func(items []CheckoutItem) []CheckoutItem {
		next := make([]CheckoutItem, len(items))
		for i, it := range items {
			if it.State == Pending && it.Item.ProductID == productID {
				it.State = Added
			}
			next[i] = it
		}
		return next
	})
}

// Added returns the items marked as added.
func (c *Checkout) Added() []CheckoutItem {
	var added []CheckoutItem
	for _, it := range c.items.Get() {
		if it.State == Added {
			added = append(added, it)
		}
	}
	return added
}

// Finish records the Added items as one purchase, removes them from the list
// and reloads the remaining Pending items. With nothing added it does
// nothing and returns a nil record.
func (c *Checkout) Finish(ctx context.Context) (*models.PurchaseRecord, error) {
	added := c.Added()
	if len(added) == 0 {
		return nil, nil
	}

	purchased := make([]models.ListedProduct, len(added))
	for i, it := range added {
		purchased[i] = models.ListedProduct{Product: it.Product, Item: it.Item}
	}

	record, err := c.svc.FinishPurchase(ctx, c.familyID, c.listID, purchased)
	if err != nil {
		return nil, err
	}

	c.items.Update(func(items []CheckoutItem) []CheckoutItem {
		next := make([]CheckoutItem, len(items))
		for i, it := range items {
			if it.State == Added {
				it.State = Purchased
			}
			next[i] = it
		}
		return next
	})

	if err := c.Load(ctx); err != nil {
		return record, err
	}
	return record, nil
}
