package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/sync/errgroup"

	"github.com/Kerhoff/familycart/internal/models"
	"github.com/Kerhoff/familycart/internal/repository"
)

// GenerateFamilyCode draws join codes until one is not taken.
func (s *Service) GenerateFamilyCode(ctx context.Context) (string, error) {
	for {
		if err := ctx.Err(); err != nil {
			return "", err
		}

		var b strings.Builder
		for i := 0; i < models.FamilyCodeLength; i++ {
			b.WriteByte(models.FamilyCodeAlphabet[s.intn(len(models.FamilyCodeAlphabet))])
		}
		code := b.String()

		exists, err := s.Families.CodeExists(ctx, code)
		if err != nil {
			return "", fmt.Errorf("failed to check family code: %w", err)
		}
		if !exists {
			return code, nil
		}
		s.logger.WithField("code", code).Debug("Family code collision, regenerating")
	}
}

// CreateGroup creates a family owned by the user and makes the user a member.
// The family and the owner's membership are written atomically.
func (s *Service) CreateGroup(ctx context.Context, uid, password string) (*models.Family, error) {
	if password == "" {
		return nil, ErrEmptyPassword
	}
	if _, err := s.profile(ctx, uid); err != nil {
		return nil, err
	}

	code, err := s.GenerateFamilyCode(ctx)
	if err != nil {
		return nil, err
	}

	family := &models.Family{Code: code, Password: password, OwnerID: uid}
	if err := s.Families.CreateWithOwner(ctx, family); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, fmt.Errorf("failed to create family for %s: %w", uid, err)
	}

	s.logger.WithFields(logrus.Fields{
		"family_id": family.ID,
		"owner":     uid,
	}).Info("Created new family")
	return family, nil
}

// JoinGroupByCode adds the user to the family with the given code after
// checking its password.
func (s *Service) JoinGroupByCode(ctx context.Context, uid, code, password string) (*models.Family, error) {
	if _, err := s.profile(ctx, uid); err != nil {
		return nil, err
	}

	family, err := s.Families.GetByCode(ctx, strings.ToUpper(strings.TrimSpace(code)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCode
		}
		return nil, fmt.Errorf("failed to lookup family by code: %w", err)
	}

	// Family passwords are stored and compared in plaintext.
	if family.Password != password {
		return nil, ErrIncorrectPassword
	}

	if err := s.Users.SetFamily(ctx, uid, &family.ID); err != nil {
		return nil, fmt.Errorf("failed to join family %s: %w", family.ID, err)
	}

	s.logger.WithFields(logrus.Fields{
		"family_id": family.ID,
		"uid":       uid,
	}).Info("User joined family")
	return family, nil
}

// LeaveGroup clears the user's family. The family itself is left untouched,
// even when the owner or the last member leaves.
func (s *Service) LeaveGroup(ctx context.Context, uid string) error {
	if _, err := s.profile(ctx, uid); err != nil {
		return err
	}
	if err := s.Users.SetFamily(ctx, uid, nil); err != nil {
		return fmt.Errorf("failed to leave family: %w", err)
	}
	s.logger.WithField("uid", uid).Info("User left family")
	return nil
}

// FamilyOverview loads the family together with its members and the owner's
// name. Members and owner are read concurrently.
func (s *Service) FamilyOverview(ctx context.Context, familyID string) (*models.FamilyOverview, error) {
	family, err := s.Families.GetByID(ctx, familyID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNoFamily
		}
		return nil, fmt.Errorf("failed to get family %s: %w", familyID, err)
	}

	overview := &models.FamilyOverview{Family: family}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		members, err := s.Users.ListByFamily(gctx, familyID)
		if err != nil {
			return fmt.Errorf("failed to get members of %s: %w", familyID, err)
		}
		overview.Members = members
		return nil
	})
	g.Go(func() error {
		owner, err := s.Users.GetByID(gctx, family.OwnerID)
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to get owner of %s: %w", familyID, err)
		}
		overview.OwnerName = owner.Nombre
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	if overview.Members == nil {
		overview.Members = []*models.UserProfile{}
	}
	return overview, nil
}
