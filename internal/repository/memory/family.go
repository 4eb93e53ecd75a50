package memory

import (
	"context"

	"github.com/Kerhoff/familycart/internal/models"
	"github.com/Kerhoff/familycart/internal/repository"
)

type familyRepository struct {
	db *Database
}

// NewFamilyRepository creates a new in-memory family repository
func NewFamilyRepository(db *Database) repository.FamilyRepository {
	return &familyRepository{db: db}
}

func (r *familyRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	f, err := r.GetByCode(ctx, code)
	if err == repository.ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return f != nil, nil
}

func (r *familyRepository) GetByCode(ctx context.Context, code string) (*models.Family, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	for _, f := range r.db.families {
		if f.Code == code {
			family := f
			return &family, nil
		}
	}
	return nil, repository.ErrNotFound
}

func (r *familyRepository) GetByID(ctx context.Context, id string) (*models.Family, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	f, ok := r.db.families[id]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return &f, nil
}

func (r *familyRepository) CreateWithOwner(ctx context.Context, family *models.Family) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	owner, ok := r.db.users[family.OwnerID]
	if !ok {
		return repository.ErrNotFound
	}

	id := newID()
	stored := *family
	stored.ID = id
	r.db.families[id] = stored

	owner.FamilyID = &id
	r.db.users[owner.UID] = owner

	family.ID = id
	return nil
}
