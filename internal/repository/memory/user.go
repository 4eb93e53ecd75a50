package memory

import (
	"context"
	"fmt"
	"sort"

	"github.com/Kerhoff/familycart/internal/models"
	"github.com/Kerhoff/familycart/internal/repository"
)

type userRepository struct {
	db *Database
}

// NewUserRepository creates a new in-memory user repository
func NewUserRepository(db *Database) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, profile *models.UserProfile) error {
	if profile.UID == "" {
		return fmt.Errorf("failed to create user: empty uid")
	}
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	stored := *profile
	stored.FamilyID = copyString(profile.FamilyID)
	r.db.users[profile.UID] = stored
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, uid string) (*models.UserProfile, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	u, ok := r.db.users[uid]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return cloneUser(u), nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, uid, nombre, apellidos, foto string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	u, ok := r.db.users[uid]
	if !ok {
		return repository.ErrNotFound
	}
	u.Nombre, u.Apellidos, u.Foto = nombre, apellidos, foto
	r.db.users[uid] = u
	return nil
}

func (r *userRepository) SetFamily(ctx context.Context, uid string, familyID *string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	u, ok := r.db.users[uid]
	if !ok {
		return repository.ErrNotFound
	}
	u.FamilyID = copyString(familyID)
	r.db.users[uid] = u
	return nil
}

func (r *userRepository) ListByFamily(ctx context.Context, familyID string) ([]*models.UserProfile, error) {
	r.db.mu.RLock()
	defer r.db.mu.RUnlock()

	var members []*models.UserProfile
	for _, u := range r.db.users {
		if u.FamilyID != nil && *u.FamilyID == familyID {
			members = append(members, cloneUser(u))
		}
	}
	sort.Slice(members, func(i, j int) bool { return members[i].UID < members[j].UID })
	return members, nil
}

func (r *userRepository) Delete(ctx context.Context, uid string) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()

	delete(r.db.users, uid)
	return nil
}

func cloneUser(u models.UserProfile) *models.UserProfile {
	u.FamilyID = copyString(u.FamilyID)
	return &u
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	v := *s
	return &v
}
