package postgres

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/Kerhoff/familycart/internal/models"
	"github.com/Kerhoff/familycart/internal/repository"
)

type listRepository struct {
	db *sql.DB
}

// NewListRepository creates a new shopping list repository
func NewListRepository(db *sql.DB) repository.ListRepository {
	return &listRepository{db: db}
}

func (r *listRepository) Create(ctx context.Context, familyID string, list *models.ShoppingList) error {
	query := `
		INSERT INTO shopping_lists (id, family_id, name, created_by, created_at)
		VALUES ($1, $2, $3, $4, $5)`

	if list.ID == "" {
		list.ID = newID()
	}
	if list.Timestamp.IsZero() {
		list.Timestamp = time.Now()
	}

	_, err := r.db.ExecContext(ctx, query,
		list.ID,
		familyID,
		list.Name,
		list.CreatedBy,
		list.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to create shopping list: %w", err)
	}

	return nil
}

func (r *listRepository) ListByFamily(ctx context.Context, familyID string) ([]*models.ShoppingList, error) {
	query := `
		SELECT id, name, created_by, created_at
		FROM shopping_lists
		WHERE family_id = $1
		ORDER BY created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query shopping lists: %w", err)
	}
	defer rows.Close()

	var lists []*models.ShoppingList
	for rows.Next() {
		list := &models.ShoppingList{}
		if err := rows.Scan(&list.ID, &list.Name, &list.CreatedBy, &list.Timestamp); err != nil {
			return nil, fmt.Errorf("failed to scan shopping list: %w", err)
		}
		lists = append(lists, list)
	}

	return lists, rows.Err()
}

func (r *listRepository) GetByID(ctx context.Context, familyID, listID string) (*models.ShoppingList, error) {
	query := `
		SELECT id, name, created_by, created_at
		FROM shopping_lists
		WHERE family_id = $1 AND id = $2`

	list := &models.ShoppingList{}
	err := r.db.QueryRowContext(ctx, query, familyID, listID).Scan(
		&list.ID,
		&list.Name,
		&list.CreatedBy,
		&list.Timestamp,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get shopping list: %w", err)
	}

	return list, nil
}

func (r *listRepository) Delete(ctx context.Context, familyID, listID string) error {
	query := `DELETE FROM shopping_lists WHERE family_id = $1 AND id = $2`

	if _, err := r.db.ExecContext(ctx, query, familyID, listID); err != nil {
		return fmt.Errorf("failed to delete shopping list: %w", err)
	}

	return nil
}

func (r *listRepository) Items(ctx context.Context, familyID, listID string) ([]*models.ListItem, error) {
	query := `
		SELECT id, product_id, cantidad, nota, added_by, created_at
		FROM list_items
		WHERE family_id = $1 AND list_id = $2
		ORDER BY created_at ASC, id ASC`

	rows, err := r.db.QueryContext(ctx, query, familyID, listID)
	if err != nil {
		return nil, fmt.Errorf("failed to query list items: %w", err)
	}
	defer rows.Close()

	var items []*models.ListItem
	for rows.Next() {
		item := &models.ListItem{}
		if err := rows.Scan(
			&item.ID,
			&item.ProductID,
			&item.Cantidad,
			&item.Nota,
			&item.AddedBy,
			&item.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("failed to scan list item: %w", err)
		}
		items = append(items, item)
	}

	return items, rows.Err()
}

func (r *listRepository) HasProduct(ctx context.Context, familyID, listID, productID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM list_items
			WHERE family_id = $1 AND list_id = $2 AND product_id = $3
		)`

	var exists bool
	if err := r.db.QueryRowContext(ctx, query, familyID, listID, productID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check list item: %w", err)
	}
	return exists, nil
}

func (r *listRepository) AddItem(ctx context.Context, familyID, listID string, item *models.ListItem) error {
	query := `
		INSERT INTO list_items (id, family_id, list_id, product_id, cantidad, nota, added_by, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`

	if item.ID == "" {
		item.ID = newID()
	}
	if item.Timestamp.IsZero() {
		item.Timestamp = time.Now()
	}

	_, err := r.db.ExecContext(ctx, query,
		item.ID,
		familyID,
		listID,
		item.ProductID,
		item.Cantidad,
		item.Nota,
		item.AddedBy,
		item.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("failed to add list item: %w", err)
	}

	return nil
}

func (r *listRepository) DeleteItemsByProduct(ctx context.Context, familyID, listID, productID string) (int, error) {
	query := `DELETE FROM list_items WHERE family_id = $1 AND list_id = $2 AND product_id = $3`

	result, err := r.db.ExecContext(ctx, query, familyID, listID, productID)
	if err != nil {
		return 0, fmt.Errorf("failed to delete list items: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("failed to get rows affected: %w", err)
	}

	return int(rowsAffected), nil
}
