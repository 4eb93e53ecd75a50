package service

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Kerhoff/familycart/internal/auth"
	"github.com/Kerhoff/familycart/internal/catalog"
	"github.com/Kerhoff/familycart/internal/models"
	"github.com/Kerhoff/familycart/internal/repository"
	"github.com/Kerhoff/familycart/internal/repository/memory"
)

// MockProvider is a mock implementation of auth.Provider.
type MockProvider struct {
	mock.Mock
}

func (m *MockProvider) SignIn(ctx context.Context, email, password string) (*auth.Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Session), args.Error(1)
}

func (m *MockProvider) CreateUser(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func (m *MockProvider) DeleteUser(ctx context.Context, uid string) error {
	args := m.Called(ctx, uid)
	return args.Error(0)
}

func (m *MockProvider) VerifyToken(ctx context.Context, idToken string) (string, error) {
	args := m.Called(ctx, idToken)
	return args.String(0), args.Error(1)
}

type mockNotifier struct {
	mock.Mock
}

func (m *mockNotifier) PurchaseRecorded(ctx context.Context, familyID string, record *models.PurchaseRecord) error {
	args := m.Called(ctx, familyID, record)
	return args.Error(0)
}

// fakeCatalog serves products from a map; ids not in the map are absent.
type fakeCatalog map[string]*models.Product

func (c fakeCatalog) GetProductByID(ctx context.Context, id string) *models.Product {
	p, ok := c[id]
	if !ok {
		return nil
	}
	cp := *p
	return &cp
}

func product(id, name, price string) *models.Product {
	return &models.Product{
		ID:                models.Scalar(id),
		DisplayName:       name,
		PriceInstructions: models.PriceInstructions{UnitPrice: models.Scalar(price)},
	}
}

type testEnv struct {
	svc      *Service
	store    repository.Store
	provider *MockProvider
	hook     *test.Hook
}

func newTestEnv(t *testing.T, products catalog.ProductGetter) *testEnv {
	t.Helper()
	logger, hook := test.NewNullLogger()
	logger.SetLevel(logrus.DebugLevel)
	store := memory.NewStore(memory.NewDatabase())
	provider := new(MockProvider)
	if products == nil {
		products = fakeCatalog{}
	}
	return &testEnv{
		svc:      New(logger, store, provider, products, nil, nil, 4),
		store:    store,
		provider: provider,
		hook:     hook,
	}
}

// withUser stores a profile and returns its uid.
func (e *testEnv) withUser(t *testing.T, uid, nombre string) string {
	t.Helper()
	require.NoError(t, e.store.Users.Create(context.Background(), &models.UserProfile{UID: uid, Email: uid + "@example.com", Nombre: nombre}))
	return uid
}

// withFamily creates a family owned by uid.
func (e *testEnv) withFamily(t *testing.T, uid, code, password string) *models.Family {
	t.Helper()
	f := &models.Family{Code: code, Password: password, OwnerID: uid}
	require.NoError(t, e.store.Families.CreateWithOwner(context.Background(), f))
	return f
}

// sequence returns an intn that yields vals in order, cycling.
func sequence(vals ...int) func(int) int {
	i := 0
	return func(n int) int {
		v := vals[i%len(vals)]
		i++
		return v % n
	}
}

func TestService_CurrentFamilyID(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	_, err := env.svc.CurrentFamilyID(ctx, "ghost")
	assert.ErrorIs(t, err, ErrNoFamily)

	uid := env.withUser(t, "u1", "Ana")
	_, err = env.svc.CurrentFamilyID(ctx, uid)
	assert.ErrorIs(t, err, ErrNoFamily)

	f := env.withFamily(t, uid, "AB12", "pw")
	id, err := env.svc.CurrentFamilyID(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, f.ID, id)
}

func TestService_ErrorsCarryUserText(t *testing.T) {
	assert.True(t, strings.HasPrefix(ErrInvalidCode.Error(), "Código"))
	assert.Equal(t, "Este producto ya está en la lista", ErrProductAlreadyInList.Error())
	assert.False(t, errors.Is(ErrInvalidCode, ErrIncorrectPassword))
}
