// Package notify announces recorded purchases to external channels.
package notify

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"

	"github.com/Kerhoff/familycart/internal/models"
)

// Notifier is told about every purchase stored in a family's history.
type Notifier interface {
	PurchaseRecorded(ctx context.Context, familyID string, record *models.PurchaseRecord) error
}

// Nop discards every notification.
type Nop struct{}

func (Nop) PurchaseRecorded(context.Context, string, *models.PurchaseRecord) error { return nil }

// Multi fans a notification out to every notifier, collecting failures.
type Multi []Notifier

func (m Multi) PurchaseRecorded(ctx context.Context, familyID string, record *models.PurchaseRecord) error {
	var result *multierror.Error
	for _, n := range m {
		if err := n.PurchaseRecorded(ctx, familyID, record); err != nil {
			result = multierror.Append(result, err)
		}
	}
	return result.ErrorOrNil()
}

// PurchaseEvent is the payload published for a recorded purchase.
type PurchaseEvent struct {
	FamilyID    string                    `json:"familyId"`
	PurchaseID  string                    `json:"purchaseId"`
	NombreLista string                    `json:"nombreLista"`
	PrecioTotal float64                   `json:"precioTotal"`
	Fecha       string                    `json:"fecha"`
	Productos   []models.PurchasedProduct `json:"productos"`
}

// NewPurchaseEvent builds the event for record.
func NewPurchaseEvent(familyID string, record *models.PurchaseRecord) PurchaseEvent {
	return PurchaseEvent{
		FamilyID:    familyID,
		PurchaseID:  record.ID,
		NombreLista: record.NombreLista,
		PrecioTotal: record.PrecioTotal,
		Fecha:       record.Fecha.Format("2006-01-02T15:04:05Z07:00"),
		Productos:   record.Productos,
	}
}

func formatTotal(total float64) string {
	return fmt.Sprintf("%.2f €", total)
}
