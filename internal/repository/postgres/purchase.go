package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/Kerhoff/familycart/internal/models"
	"github.com/Kerhoff/familycart/internal/repository"
)

type purchaseRepository struct {
	db *sql.DB
}

// NewPurchaseRepository creates a new purchase history repository
func NewPurchaseRepository(db *sql.DB) repository.PurchaseRepository {
	return &purchaseRepository{db: db}
}

type execer interface {
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}

func insertPurchase(ctx context.Context, db execer, familyID string, record *models.PurchaseRecord) error {
	query := `
		INSERT INTO purchases (id, family_id, fecha, precio_total, nombre_lista, productos)
		VALUES ($1, $2, $3, $4, $5, $6)`

	if record.ID == "" {
		record.ID = newID()
	}
	if record.Fecha.IsZero() {
		record.Fecha = time.Now()
	}

	productos, err := json.Marshal(record.Productos)
	if err != nil {
		return fmt.Errorf("failed to encode purchased products: %w", err)
	}

	_, err = db.ExecContext(ctx, query,
		record.ID,
		familyID,
		record.Fecha,
		record.PrecioTotal,
		record.NombreLista,
		productos,
	)
	if err != nil {
		return fmt.Errorf("failed to record purchase: %w", err)
	}
	return nil
}

func (r *purchaseRepository) Add(ctx context.Context, familyID string, record *models.PurchaseRecord) error {
	return insertPurchase(ctx, r.db, familyID, record)
}

func (r *purchaseRepository) List(ctx context.Context, familyID string) ([]*models.PurchaseRecord, error) {
	query := `
		SELECT id, fecha, precio_total, nombre_lista, productos
		FROM purchases
		WHERE family_id = $1
		ORDER BY fecha DESC`

	rows, err := r.db.QueryContext(ctx, query, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query purchases: %w", err)
	}
	defer rows.Close()

	var records []*models.PurchaseRecord
	for rows.Next() {
		record, err := scanPurchase(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan purchase: %w", err)
		}
		records = append(records, record)
	}

	return records, rows.Err()
}

func (r *purchaseRepository) GetByID(ctx context.Context, familyID, purchaseID string) (*models.PurchaseRecord, error) {
	query := `
		SELECT id, fecha, precio_total, nombre_lista, productos
		FROM purchases
		WHERE family_id = $1 AND id = $2`

	record, err := scanPurchase(r.db.QueryRowContext(ctx, query, familyID, purchaseID))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get purchase: %w", err)
	}

	return record, nil
}

func (r *purchaseRepository) Complete(ctx context.Context, familyID, listID string, record *models.PurchaseRecord, productIDs []string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := insertPurchase(ctx, tx, familyID, record); err != nil {
		return err
	}

	if len(productIDs) > 0 {
		_, err = tx.ExecContext(ctx,
			`DELETE FROM list_items WHERE family_id = $1 AND list_id = $2 AND product_id = ANY($3)`,
			familyID, listID, pq.Array(productIDs),
		)
		if err != nil {
			return fmt.Errorf("failed to delete purchased items: %w", err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit purchase: %w", err)
	}
	return nil
}

func scanPurchase(row rowScanner) (*models.PurchaseRecord, error) {
	record := &models.PurchaseRecord{}
	var productos []byte
	if err := row.Scan(
		&record.ID,
		&record.Fecha,
		&record.PrecioTotal,
		&record.NombreLista,
		&productos,
	); err != nil {
		return nil, err
	}
	if len(productos) > 0 {
		if err := json.Unmarshal(productos, &record.Productos); err != nil {
			return nil, fmt.Errorf("failed to decode purchased products: %w", err)
		}
	}
	return record, nil
}
