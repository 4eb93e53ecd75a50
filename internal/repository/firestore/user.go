package firestore

import (
	"context"
	"fmt"

	"cloud.google.com/go/firestore"

	"github.com/Kerhoff/familycart/internal/models"
	"github.com/Kerhoff/familycart/internal/repository"
)

type userRepository struct {
	client *firestore.Client
}

// NewUserRepository creates a new Firestore profile repository
func NewUserRepository(client *firestore.Client) repository.UserRepository {
	return &userRepository{client: client}
}

func (r *userRepository) doc(uid string) *firestore.DocumentRef {
	return r.client.Collection(usersCollection).Doc(uid)
}

func (r *userRepository) Create(ctx context.Context, profile *models.UserProfile) error {
	if _, err := r.doc(profile.UID).Set(ctx, profile); err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *userRepository) GetByID(ctx context.Context, uid string) (*models.UserProfile, error) {
	snap, err := r.doc(uid).Get(ctx)
	if err != nil {
		if isNotFound(err) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}

	var profile models.UserProfile
	if err := snap.DataTo(&profile); err != nil {
		return nil, fmt.Errorf("failed to decode user: %w", err)
	}
	profile.UID = snap.Ref.ID
	return &profile, nil
}

func (r *userRepository) UpdateProfile(ctx context.Context, uid, nombre, apellidos, foto string) error {
	_, err := r.doc(uid).Update(ctx, []firestore.Update{
		{Path: "nombre", Value: nombre},
		{Path: "apellidos", Value: apellidos},
		{Path: "foto", Value: foto},
	})
	if err != nil {
		if isNotFound(err) {
			return repository.ErrNotFound
		}
		return fmt.Errorf("failed to update user: %w", err)
	}
	return nil
}

func (r *userRepository) SetFamily(ctx context.Context, uid string, familyID *string) error {
	var value interface{}
	if familyID != nil {
		value = *familyID
	}
	_, err := r.doc(uid).Update(ctx, []firestore.Update{{Path: "familyId", Value: value}})
	if err != nil {
		if isNotFound(err) {
			return repository.ErrNotFound
		}
		return fmt.Errorf("failed to set user family: %w", err)
	}
	return nil
}

func (r *userRepository) ListByFamily(ctx context.Context, familyID string) ([]*models.UserProfile, error) {
	iter := r.client.Collection(usersCollection).Where("familyId", "==", familyID).Documents(ctx)
	members, err := decodeAll(iter, func(p *models.UserProfile, id string) { p.UID = id })
	if err != nil {
		return nil, fmt.Errorf("failed to query family members: %w", err)
	}
	return members, nil
}

func (r *userRepository) Delete(ctx context.Context, uid string) error {
	if _, err := r.doc(uid).Delete(ctx); err != nil {
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
