package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"

	"github.com/Kerhoff/familycart/internal/models"
	"github.com/Kerhoff/familycart/internal/repository"
)

type familyRepository struct {
	client *firestore.Client
}

// NewFamilyRepository creates a new Firestore family repository
func NewFamilyRepository(client *firestore.Client) repository.FamilyRepository {
	return &familyRepository{client: client}
}

func (r *familyRepository) CodeExists(ctx context.Context, code string) (bool, error) {
	_, err := r.GetByCode(ctx, code)
	if err == repository.ErrNotFound {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}

func (r *familyRepository) GetByCode(ctx context.Context, code string) (*models.Family, error) {
	iter := r.client.Collection(groupsCollection).Where("code", "==", code).Limit(1).Documents(ctx)
	families, err := decodeAll(iter, func(f *models.Family, id string) { f.ID = id })
	if err != nil {
		return nil, fmt.Errorf("failed to get family by code: %w", err)
	}
	if len(families) == 0 {
		return nil, repository.ErrNotFound
	}
	return families[0], nil
}

func (r *familyRepository) GetByID(ctx context.Context, id string) (*models.Family, error) {
	snap, err := group(r.client, id).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get family by ID: %w", err)
	}

	var family models.Family
	if err := snap.DataTo(&family); err != nil {
		return nil, fmt.Errorf("failed to decode family: %w", err)
	}
	family.ID = snap.Ref.ID
	return &family, nil
}

func (r *familyRepository) CreateWithOwner(ctx context.Context, family *models.Family) error {
	ref := r.client.Collection(groupsCollection).NewDoc()
	owner := r.client.Collection(usersCollection).Doc(family.OwnerID)

	err := r.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		if err := tx.Create(ref, family); err != nil {
			return err
		}
		return tx.Update(owner, []firestore.Update{{Path: "familyId", Value: ref.ID}})
	})
	if err != nil {
		if isNotFound(err) {
			return repository.ErrNotFound
		}
		return fmt.Errorf("failed to create family: %w", err)
	}

	family.ID = ref.ID
	return nil
}
