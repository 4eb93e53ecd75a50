package memory

import (
	"context"
	"sort"
	"time"

	"github.com/Kerhoff/familycart/internal/models"
	"github.com/Kerhoff/familycart/internal/repository"
)

type purchaseRepository struct {
	db *Database
}

// NewPurchaseRepository creates a new in-memory purchase repository
func NewPurchaseRepository(db *Database) repository.PurchaseRepository {
	return &purchaseRepository{db: db}
}

func (r *purchaseRepository) Add(ctx context.Context, familyID string, record *models.PurchaseRecord) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.addLocked(familyID, record)
	return nil
}

func (r *purchaseRepository) addLocked(familyID string, record *models.PurchaseRecord) {
	if record.ID == "" {
		record.ID = newID()
	}
	if record.Fecha.IsZero() {
		record.Fecha = time.Now()
	}
	entries, ok := r.db.purchases[familyID]
	if !ok {
		entries = make(map[string]models.PurchaseRecord)
		r.db.purchases[familyID] = entries
	}
	stored := *record
	stored.Productos = append([]models.PurchasedProduct(nil), record.Productos...)
	entries[record.ID] = stored
}

func (r *purchaseRepository) List(ctx context.Context, familyID string) ([]*models.PurchaseRecord, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	records := make([]*models.PurchaseRecord, 0, len(r.db.purchases[familyID]))
	for _, p := range r.db.purchases[familyID] {
		records = append(records, clonePurchase(p))
	}
	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Fecha.After(records[j].Fecha)
	})
	return records, nil
}

func (r *purchaseRepository) GetByID(ctx context.Context, familyID, purchaseID string) (*models.PurchaseRecord, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	p, ok := r.db.purchases[familyID][purchaseID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return clonePurchase(p), nil
}

func (r *purchaseRepository) Complete(ctx context.Context, familyID, listID string, record *models.PurchaseRecord, productIDs []string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	r.addLocked(familyID, record)
	for _, productID := range productIDs {
		r.db.deleteItemsLocked(familyID, listID, productID)
	}
	return nil
}

func clonePurchase(p models.PurchaseRecord) *models.PurchaseRecord {
	p.Productos = append([]models.PurchasedProduct(nil), p.Productos...)
	return &p
}
