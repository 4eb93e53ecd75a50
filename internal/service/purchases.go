package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hashicorp/go-multierror"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/familycart/internal/models"
	"github.com/Kerhoff/familycart/internal/repository"
)

// NewPurchaseRecord snapshots items into a history entry. Each product is
// priced at its current unit price; prices that do not parse count as zero.
func NewPurchaseRecord(items []models.ListedProduct, listName string, now time.Time) *models.PurchaseRecord {
	total := decimal.Zero
	productos := make([]models.PurchasedProduct, 0, len(items))
	for _, it := range items {
		if it.Product == nil || it.Item == nil {
			continue
		}
		price := it.Product.PriceInstructions.UnitPriceDecimal()
		qty := it.Item.Quantity()
		total = total.Add(price.Mul(decimal.NewFromInt(int64(qty))))

		productos = append(productos, models.PurchasedProduct{
			ProductID: it.Item.ProductID,
			Precio:    price.InexactFloat64(),
			Cantidad:  qty,
		})
	}

	return &models.PurchaseRecord{
		Fecha:       now,
		PrecioTotal: total.InexactFloat64(),
		NombreLista: listName,
		Productos:   productos,
	}
}

// RecordPurchase stores a history entry for items.
func (s *Service) RecordPurchase(ctx context.Context, familyID string, items []models.ListedProduct, listName string) (*models.PurchaseRecord, error) {
	record := NewPurchaseRecord(items, listName, time.Now())
	if err := s.Purchases.Add(ctx, familyID, record); err != nil {
		return nil, fmt.Errorf("failed to record purchase: %w", err)
	}
	s.purchaseStored(ctx, familyID, record)
	return record, nil
}

// DeletePurchasedItems removes the items' products from the list. A failure
// for one product does not stop the others; failures are logged only.
func (s *Service) DeletePurchasedItems(ctx context.Context, familyID, listID string, items []models.ListedProduct) {
	var result *multierror.Error
	for _, it := range items {
		if it.Item == nil {
			continue
		}
		if _, err := s.Lists.DeleteItemsByProduct(ctx, familyID, listID, it.Item.ProductID); err != nil {
			result = multierror.Append(result, fmt.Errorf("product %s: %w", it.Item.ProductID, err))
		}
	}
	if err := result.ErrorOrNil(); err != nil {
		s.logger.WithFields(logrus.Fields{
			"family_id": familyID,
			"list_id":   listID,
			"failed":    result.Len(),
		}).WithError(err).Error("Failed to delete purchased items")
	}
}

// FinishPurchase records the purchased items and removes them from the list
// in one atomic write. Nothing happens when items is empty.
func (s *Service) FinishPurchase(ctx context.Context, familyID, listID string, items []models.ListedProduct) (*models.PurchaseRecord, error) {
	if len(items) == 0 {
		return nil, nil
	}

	record := NewPurchaseRecord(items, s.GetListName(ctx, familyID, listID), time.Now())
	if err := s.Purchases.Complete(ctx, familyID, listID, record, record.ProductIDs()); err != nil {
		return nil, fmt.Errorf("failed to finish purchase on list %s: %w", listID, err)
	}

	s.purchaseStored(ctx, familyID, record)
	return record, nil
}

func (s *Service) purchaseStored(ctx context.Context, familyID string, record *models.PurchaseRecord) {
	s.metrics.PurchaseRecorded()
	s.logger.WithFields(logrus.Fields{
		"family_id":   familyID,
		"purchase_id": record.ID,
		"total":       record.PrecioTotal,
	}).Info("Purchase recorded")

	// Detached from the request, bounded by notifyTimeout.
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), s.notifyTimeout)
	defer cancel()

	if err := s.notifier.PurchaseRecorded(ctx, familyID, record); err != nil {
		s.logger.WithField("purchase_id", record.ID).WithError(err).Warn("Failed to announce purchase")
	}
}

// PurchaseHistory returns the family's purchases, newest first.
func (s *Service) PurchaseHistory(ctx context.Context, familyID string) ([]*models.PurchaseRecord, error) {
	records, err := s.Purchases.List(ctx, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to get purchase history: %w", err)
	}
	for _, r := range records {
		if r.NombreLista == "" {
			r.NombreLista = UnnamedList
		}
	}
	return records, nil
}

// PurchaseDetail returns one purchase with each product's current display
// name. Products the catalog no longer knows keep an empty name.
func (s *Service) PurchaseDetail(ctx context.Context, familyID, purchaseID string) (*models.PurchaseRecord, error) {
	record, err := s.Purchases.GetByID(ctx, familyID, purchaseID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrPurchaseNotFound
		}
		return nil, fmt.Errorf("failed to get purchase %s: %w", purchaseID, err)
	}

	for i, res := range s.resolve(ctx, record.ProductIDs()) {
		if res.Found {
			record.Productos[i].NombreProducto = res.Product.DisplayName
		}
	}
	return record, nil
}
