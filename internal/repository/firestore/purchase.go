package firestore

import (
	"context"
	"fmt"
	"time"

	"cloud.google.com/go/firestore"

	"github.com/Kerhoff/familycart/internal/models"
	"github.com/Kerhoff/familycart/internal/repository"
)

type purchaseRepository struct {
	client *firestore.Client
}

// NewPurchaseRepository creates a new Firestore purchase history repository
func NewPurchaseRepository(client *firestore.Client) repository.PurchaseRepository {
	return &purchaseRepository{client: client}
}

func (r *purchaseRepository) history(familyID string) *firestore.CollectionRef {
	return group(r.client, familyID).Collection(historyCollection)
}

func (r *purchaseRepository) Add(ctx context.Context, familyID string, record *models.PurchaseRecord) error {
	ref := r.history(familyID).NewDoc()
	if record.Fecha.IsZero() {
		record.Fecha = time.Now()
	}
	if _, err := ref.Create(ctx, record); err != nil {
		return fmt.Errorf("failed to record purchase: %w", err)
	}
	record.ID = ref.ID
	return nil
}

func (r *purchaseRepository) List(ctx context.Context, familyID string) ([]*models.PurchaseRecord, error) {
	iter := r.history(familyID).OrderBy("fecha", firestore.Desc).Documents(ctx)
	records, err := decodeAll(iter, func(p *models.PurchaseRecord, id string) { p.ID = id })
	if err != nil {
		return nil, fmt.Errorf("failed to query purchases: %w", err)
	}
	return records, nil
}

func (r *purchaseRepository) GetByID(ctx context.Context, familyID, purchaseID string) (*models.PurchaseRecord, error) {
	snap, err := r.history(familyID).Doc(purchaseID).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get purchase: %w", err)
	}

	var record models.PurchaseRecord
	if err := snap.DataTo(&record); err != nil {
		return nil, fmt.Errorf("failed to decode purchase: %w", err)
	}
	record.ID = snap.Ref.ID
	return &record, nil
}

func (r *purchaseRepository) Complete(ctx context.Context, familyID, listID string, record *models.PurchaseRecord, productIDs []string) error {
	ref := r.history(familyID).NewDoc()
	if record.Fecha.IsZero() {
		record.Fecha = time.Now()
	}

	purchased := make(map[string]bool, len(productIDs))
	for _, id := range productIDs {
		purchased[id] = true
	}
	listItems := items(r.client, familyID, listID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		// Transactions require every read before the first write.
		docs, err := tx.Documents(listItems).GetAll()
		if err != nil {
			return err
		}
		if err := tx.Create(ref, record); err != nil {
			return err
		}
		for _, doc := range docs {
			productID, _ := doc.Data()["productId"].(string)
			if !purchased[productID] {
				continue
			}
			if err := tx.Delete(doc.Ref); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to complete purchase: %w", err)
	}

	record.ID = ref.ID
	return nil
}
