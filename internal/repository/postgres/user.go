package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/Kerhoff/familycart/internal/models"
	"github.com/Kerhoff/familycart/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, profile *models.UserProfile) error {
	query := `
		INSERT INTO users (uid, email, nombre, apellidos, foto, family_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (uid) DO UPDATE
		SET email = $2, nombre = $3, apellidos = $4, foto = $5, family_id = $6`

	_, err := r.db.ExecContext(ctx, query,
		profile.UID,
		profile.Email,
		profile.Nombre,
		profile.Apellidos,
		profile.Foto,
		nullString(profile.FamilyID),
	)
	if err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *userRepository) GetByID(ctx context.Context, uid string) (*models.UserProfile, error) {
	query := `
		SELECT uid, email, nombre, apellidos, foto, family_id
		FROM users
		WHERE uid = $1`

	profile, err := scanUser(r.db.QueryRowContext(ctx, query, uid))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}

	return profile, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, uid, nombre, apellidos, foto string) error {
	query := `UPDATE users SET nombre = $2, apellidos = $3, foto = $4 WHERE uid = $1`

	result, err := r.db.ExecContext(ctx, query, uid, nombre, apellidos, foto)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	return expectRow(result)
}

func (r *userRepository) SetFamily(ctx context.Context, uid string, familyID *string) error {
	query := `UPDATE users SET family_id = $2 WHERE uid = $1`

	result, err := r.db.ExecContext(ctx, query, uid, nullString(familyID))
	if err != nil {
		return fmt.Errorf("failed to set user family: %w", err)
	}

	return expectRow(result)
}

func (r *userRepository) ListByFamily(ctx context.Context, familyID string) ([]*models.UserProfile, error) {
	query := `
		SELECT uid, email, nombre, apellidos, foto, family_id
		FROM users
		WHERE family_id = $1
		ORDER BY uid ASC`

	rows, err := r.db.QueryContext(ctx, query, familyID)
	if err != nil {
		return nil, fmt.Errorf("failed to query family members: %w", err)
	}
	defer rows.Close()

	var members []*models.UserProfile
	for rows.Next() {
		profile, err := scanUser(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan family member: %w", err)
		}
		members = append(members, profile)
	}

	return members, rows.Err()
}

func (r *userRepository) Delete(ctx context.Context, uid string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE uid = $1`, uid); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*models.UserProfile, error) {
	profile := &models.UserProfile{}
	var familyID sql.NullString
	if err := row.Scan(
		&profile.UID,
		&profile.Email,
		&profile.Nombre,
		&profile.Apellidos,
		&profile.Foto,
		&familyID,
	); err != nil {
		return nil, err
	}
	if familyID.Valid {
		profile.FamilyID = &familyID.String
	}
	return profile, nil
}

func expectRow(result sql.Result) error {
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return repository.ErrNotFound
	}
	return nil
}
