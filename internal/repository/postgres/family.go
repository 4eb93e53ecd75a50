package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Kerhoff/familycart/internal/models"
	"github.com/Kerhoff/familycart/internal/repository"
)

type familyRepository struct {
	db *sql.DB
}

// NewFamilyRepository creates a new family repository
func NewFamilyRepository(db *sql.DB) repository.FamilyRepository {
	return &familyRepository{db: db}
}

func (r *familyRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	var exists bool
	err := r.db.QueryRowContext(ctx, `SELECT EXISTS (SELECT 1 FROM families WHERE code = $1)`, code).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check family code: %w", err)
	}
	return exists, nil
}

func (r *familyRepository) GetByCode(ctx context.Context, code string) (*models.Family, error) {
	query := `
		SELECT id, code, password, owner_id
		FROM families
		WHERE code = $1
		LIMIT 1`

	return r.getOne(ctx, query, code)
}

func (r *familyRepository) GetByID(ctx context.Context, id string) (*models.Family, error) {
	query := `
		SELECT id, code, password, owner_id
		FROM families
		WHERE id = $1`

	return r.getOne(ctx, query, id)
}

func (r *familyRepository) getOne(ctx context.Context, query string, arg string) (*models.Family, error) {
	family := &models.Family{}
	err := r.db.QueryRowContext(ctx, query, arg).Scan(
		&family.ID,
		&family.Code,
		&family.Password,
		&family.OwnerID,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get family: %w", err)
	}

	return family, nil
}

func (r *familyRepository) CreateWithOwner(ctx context.Context, family *models.Family) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	id := newID()
	_, err = tx.ExecContext(ctx,
		`INSERT INTO families (id, code, password, owner_id) VALUES ($1, $2, $3, $4)`,
		id, family.Code, family.Password, family.OwnerID,
	)
	if err != nil {
		return fmt.Errorf("failed to create family: %w", err)
	}

	result, err := tx.ExecContext(ctx, `UPDATE users SET family_id = $2 WHERE uid = $1`, family.OwnerID, id)
	if err != nil {
		return fmt.Errorf("failed to assign family owner: %w", err)
	}
	if err := expectRow(result); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit family creation: %w", err)
	}

	family.ID = id
	return nil
}
