package models

import "time"

// PurchaseRecord is a frozen snapshot of a finished checkout.
type PurchaseRecord struct {
	ID          string             `json:"id" firestore:"-" db:"id"`
	Fecha       time.Time          `json:"fecha" firestore:"fecha" db:"fecha"`
	PrecioTotal float64            `json:"precio_total" firestore:"precio_total" db:"precio_total"`
	NombreLista string             `json:"nombre_lista" firestore:"nombre_lista" db:"nombre_lista"`
	Productos   []PurchasedProduct `json:"productos" firestore:"productos" db:"productos"`
}

// PurchasedProduct is one line of a purchase snapshot. NombreProducto is
// filled in for display only and never persisted.
type PurchasedProduct struct {
	ProductID      string  `json:"productId" firestore:"productId"`
	Precio         float64 `json:"precio" firestore:"precio"`
	Cantidad       int     `json:"cantidad" firestore:"cantidad"`
	NombreProducto string  `json:"nombreProducto,omitempty" firestore:"-"`
}

// ProductIDs returns the product ids of the snapshot in order.
func (p *PurchaseRecord) ProductIDs() []string {
	ids := make([]string, 0, len(p.Productos))
	for _, prod := range p.Productos {
		ids = append(ids, prod.ProductID)
	}
	return ids
}
