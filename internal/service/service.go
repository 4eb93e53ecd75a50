// Package service implements the family shopping operations on top of the
// stores, the identity provider and the product catalog.
package service

import (
	"context"
	"errors"
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/Kerhoff/familycart/internal/auth"
	"github.com/Kerhoff/familycart/internal/catalog"
	"github.com/Kerhoff/familycart/internal/metrics"
	"github.com/Kerhoff/familycart/internal/models"
	"github.com/Kerhoff/familycart/internal/notify"
	"github.com/Kerhoff/familycart/internal/repository"
)

// DefaultResolveConcurrency bounds catalog lookups per batch when none is set.
const DefaultResolveConcurrency = 8

// NotifyTimeout bounds how long a stored purchase waits on its notifiers.
const NotifyTimeout = 5 * time.Second

// Service is the central business logic layer that holds all repositories
// and provides high-level methods for the application.
type Service struct {
	logger *logrus.Logger

	Users     repository.UserRepository
	Families  repository.FamilyRepository
	Lists     repository.ListRepository
	Favorites repository.FavoriteRepository
	Purchases repository.PurchaseRepository

	Auth     auth.Provider
	Products catalog.ProductGetter

	notifier      notify.Notifier
	notifyTimeout time.Duration
	metrics       *metrics.Metrics
	resolveLimit  int
	intn          func(n int) int
}

// New creates a new Service with all required dependencies. notifier and m
// may be nil.
func New(logger *logrus.Logger,
	store repository.Store,
	provider auth.Provider,
	products catalog.ProductGetter,
	notifier notify.Notifier,
	m *metrics.Metrics,
	resolveLimit int,
) *Service {
	if notifier == nil {
		notifier = notify.Nop{}
	}
	if resolveLimit < 1 {
		resolveLimit = DefaultResolveConcurrency
	}
	return &Service{
		logger:    logger,
		Users:     store.Users,
		Families:  store.Families,
		Lists:     store.Lists,
		Favorites: store.Favorites,
		Purchases: store.Purchases,
		Auth:      provider,
		Products:  products,

		notifier:      notifier,
		notifyTimeout: NotifyTimeout,
		metrics:       m,
		resolveLimit:  resolveLimit,
		intn:          rand.IntN,
	}
}

// CurrentFamilyID returns the family of the user, or ErrNoFamily.
func (s *Service) CurrentFamilyID(ctx context.Context, uid string) (string, error) {
	profile, err := s.profile(ctx, uid)
	if err != nil {
		if errors.Is(err, ErrNotAuthenticated) {
			return "", ErrNoFamily
		}
		return "", err
	}
	if !profile.HasFamily() {
		return "", ErrNoFamily
	}
	return *profile.FamilyID, nil
}

func (s *Service) profile(ctx context.Context, uid string) (*models.UserProfile, error) {
	if uid == "" {
		return nil, ErrNotAuthenticated
	}
	profile, err := s.Users.GetByID(ctx, uid)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrNotAuthenticated
		}
		return nil, fmt.Errorf("failed to lookup user %s: %w", uid, err)
	}
	return profile, nil
}

func (s *Service) resolve(ctx context.Context, ids []string) []catalog.Resolution {
	return catalog.ResolveProducts(ctx, s.Products, ids, s.resolveLimit)
}
