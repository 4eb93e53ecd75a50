package models

import "time"

// DefaultQuantity is used for list items stored without a quantity.
const DefaultQuantity = 1

// ShoppingList represents a family's shared shopping list
type ShoppingList struct {
	ID        string    `json:"id" firestore:"-" db:"id"`
	Name      string    `json:"name" firestore:"name" db:"name"`
	CreatedBy string    `json:"createdBy" firestore:"createdBy" db:"created_by"`
	Timestamp time.Time `json:"timestamp" firestore:"timestamp" db:"created_at"`
}

// ListItem references one catalog product inside a shopping list.
type ListItem struct {
	ID        string    `json:"id" firestore:"-" db:"id"`
	ProductID string    `json:"productId" firestore:"productId" db:"product_id"`
	Cantidad  int       `json:"cantidad" firestore:"cantidad" db:"cantidad"`
	Nota      string    `json:"nota,omitempty" firestore:"nota" db:"nota"`
	AddedBy   string    `json:"addedBy" firestore:"addedBy" db:"added_by"`
	Timestamp time.Time `json:"timestamp" firestore:"timestamp" db:"created_at"`
}

// Quantity returns the item quantity, falling back to DefaultQuantity.
func (i *ListItem) Quantity() int {
	if i.Cantidad <= 0 {
		return DefaultQuantity
	}
	return i.Cantidad
}

// ListedProduct pairs a list item with the catalog product it references.
type ListedProduct struct {
	Product *Product  `json:"producto"`
	Item    *ListItem `json:"productoLista"`
}
