package viewmodel

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Kerhoff/familycart/internal/auth"
	"github.com/Kerhoff/familycart/internal/models"
	"github.com/Kerhoff/familycart/internal/repository"
	"github.com/Kerhoff/familycart/internal/repository/memory"
	"github.com/Kerhoff/familycart/internal/service"
)

type mockProvider struct {
	mock.Mock
}

func (m *mockProvider) SignIn(ctx context.Context, email, password string) (*auth.Session, error) {
	args := m.Called(ctx, email, password)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*auth.Session), args.Error(1)
}

func (m *mockProvider) CreateUser(ctx context.Context, email, password string) (string, error) {
	args := m.Called(ctx, email, password)
	return args.String(0), args.Error(1)
}

func (m *mockProvider) DeleteUser(ctx context.Context, uid string) error {
	return m.Called(ctx, uid).Error(0)
}

func (m *mockProvider) VerifyToken(ctx context.Context, idToken string) (string, error) {
	args := m.Called(ctx, idToken)
	return args.String(0), args.Error(1)
}

type fakeCatalog map[string]*models.Product

func (c fakeCatalog) GetProductByID(ctx context.Context, id string) *models.Product {
	p, ok := c[id]
	if !ok {
		return nil
	}
	cp := *p
	return &cp
}

var testCatalog = fakeCatalog{
	"1": {ID: "1", DisplayName: "Leche", PriceInstructions: models.PriceInstructions{UnitPrice: "0.95"}},
	"2": {ID: "2", DisplayName: "Pan", PriceInstructions: models.PriceInstructions{UnitPrice: "1.20"}},
	"3": {ID: "3", DisplayName: "Huevos", PriceInstructions: models.PriceInstructions{UnitPrice: "2.10"}},
}

type env struct {
	svc      *service.Service
	store    repository.Store
	provider *mockProvider
}

func newEnv(t *testing.T) *env {
	t.Helper()
	logger, _ := test.NewNullLogger()
	store := memory.NewStore(memory.NewDatabase())
	provider := new(mockProvider)
	return &env{
		svc:      service.New(logger, store, provider, testCatalog, nil, nil, 2),
		store:    store,
		provider: provider,
	}
}

// member stores a profile for uid.
func (e *env) member(t *testing.T, uid, nombre string) {
	t.Helper()
	require.NoError(t, e.store.Users.Create(context.Background(), &models.UserProfile{UID: uid, Nombre: nombre}))
}

func (e *env) family(t *testing.T, owner string) string {
	t.Helper()
	f, err := e.svc.CreateGroup(context.Background(), owner, "secreto")
	require.NoError(t, err)
	return f.ID
}

func TestSignal_SubscribersRunInOrder(t *testing.T) {
	s := NewSignal(0)

	var got []string
	s.Subscribe(func(v int) { got = append(got, "a") })
	unsubscribe := s.Subscribe(func(v int) { got = append(got, "b") })
	s.Subscribe(func(v int) { got = append(got, "c") })

	s.Set(1)
	assert.Equal(t, []string{"a", "b", "c"}, got)

	unsubscribe()
	unsubscribe()
	got = nil
	s.Update(func(v int) int { return v + 1 })
	assert.Equal(t, []string{"a", "c"}, got)
	assert.Equal(t, 2, s.Get())
}

func TestSignal_SubscriberMaySetAgain(t *testing.T) {
	s := NewSignal("")
	other := NewSignal("")
	s.Subscribe(func(v string) { other.Set(v + "!") })

	s.Set("hola")
	assert.Equal(t, "hola!", other.Get())
}

func TestCheckout_Flow(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.member(t, "u1", "Ana")
	familyID := e.family(t, "u1")

	list, err := e.svc.CreateList(ctx, "u1", "Semana")
	require.NoError(t, err)
	for _, id := range []string{"1", "2", "3"} {
		_, err := e.svc.AddProductToList(ctx, "u1", list.ID, id, "", 2)
		require.NoError(t, err)
	}

	c := NewCheckout(e.svc, familyID, list.ID)
	require.NoError(t, c.Load(ctx))
	require.Len(t, c.Items().Get(), 3)
	for _, it := range c.Items().Get() {
		assert.Equal(t, Pending, it.State)
	}

	record, err := c.Finish(ctx)
	require.NoError(t, err)
	assert.Nil(t, record, "nothing added, nothing recorded")

	c.MarkAdded("1")
	c.MarkAdded("3")
	require.Len(t, c.Added(), 2)

	record, err = c.Finish(ctx)
	require.NoError(t, err)
	require.NotNil(t, record)
	assert.Equal(t, "Semana", record.NombreLista)
	assert.ElementsMatch(t, []string{"1", "3"}, record.ProductIDs())
	assert.InDelta(t, 0.95*2+2.10*2, record.PrecioTotal, 0.001)

	remaining := c.Items().Get()
	require.Len(t, remaining, 1)
	assert.Equal(t, "2", remaining[0].Item.ProductID)
	assert.Equal(t, Pending, remaining[0].State)

	history, err := e.svc.PurchaseHistory(ctx, familyID)
	require.NoError(t, err)
	assert.Len(t, history, 1)
}

func TestListDetail_DropsUnknownProducts(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.member(t, "u1", "Ana")
	familyID := e.family(t, "u1")

	list, err := e.svc.CreateList(ctx, "u1", "Fiesta")
	require.NoError(t, err)
	_, err = e.svc.AddProductToList(ctx, "u1", list.ID, "2", "", 1)
	require.NoError(t, err)
	_, err = e.svc.AddProductToList(ctx, "u1", list.ID, "999", "", 1)
	require.NoError(t, err)

	d := NewListDetail(e.svc, "u1", familyID, list.ID)
	require.NoError(t, d.Load(ctx))
	assert.Equal(t, "Fiesta", d.Name().Get())
	require.Len(t, d.Entries().Get(), 1)
	assert.Equal(t, "Pan", d.Entries().Get()[0].Product.DisplayName)
	assert.Equal(t, []string{"999"}, d.Unresolved().Get())

	require.NoError(t, d.Remove(ctx, "2"))
	assert.Empty(t, d.Entries().Get())
}

func TestFamily_StatusTransitions(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.member(t, "u1", "Ana")
	e.member(t, "u2", "Luis")

	owner := NewFamily(e.svc, "u1")
	assert.Equal(t, StatusUnknown, owner.Status().Get())
	require.NoError(t, owner.Check(ctx))
	assert.Equal(t, StatusNoFamily, owner.Status().Get())

	require.NoError(t, owner.Create(ctx, "secreto"))
	assert.Equal(t, StatusHasFamily, owner.Status().Get())
	require.NotNil(t, owner.Family().Get())
	assert.Equal(t, "Ana", owner.OwnerName().Get())

	joiner := NewFamily(e.svc, "u2")
	err := joiner.Join(ctx, owner.Family().Get().Code, "otra")
	assert.ErrorIs(t, err, service.ErrIncorrectPassword)
	require.NoError(t, joiner.Join(ctx, owner.Family().Get().Code, "secreto"))
	assert.Len(t, joiner.Members().Get(), 2)

	// Already resolved: Check does not reload.
	var changes int
	owner.Members().Subscribe(func([]*models.UserProfile) { changes++ })
	require.NoError(t, owner.Check(ctx))
	assert.Zero(t, changes)
	assert.Len(t, owner.Members().Get(), 1)

	require.NoError(t, joiner.Leave(ctx))
	assert.Equal(t, StatusNoFamily, joiner.Status().Get())
	assert.Nil(t, joiner.Family().Get())
}

// unavailableUsers fails every profile read.
type unavailableUsers struct {
	repository.UserRepository
}

func (unavailableUsers) GetByID(ctx context.Context, uid string) (*models.UserProfile, error) {
	return nil, errors.New("connection reset")
}

func TestFamily_CheckKeepsStatusOnStoreFailure(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.member(t, "u1", "Ana")

	f := NewFamily(e.svc, "u1")
	users := e.svc.Users
	e.svc.Users = unavailableUsers{users}

	assert.Error(t, f.Check(ctx))
	assert.Equal(t, StatusUnknown, f.Status().Get())

	e.svc.Users = users
	require.NoError(t, f.Check(ctx))
	assert.Equal(t, StatusNoFamily, f.Status().Get())
}

type categorySource []models.Category

func (c categorySource) Categories(ctx context.Context) ([]models.Category, error) {
	return c, nil
}

func TestCategories_ToggleExpanded(t *testing.T) {
	c := NewCategories(categorySource{{ID: 12, Name: "Aceite"}, {ID: 15, Name: "Bebé"}})
	require.NoError(t, c.Load(context.Background()))
	assert.Len(t, c.Categories().Get(), 2)

	before := c.Expanded().Get()
	c.ToggleExpanded(12)
	assert.True(t, c.IsExpanded(12))
	assert.Empty(t, before, "previous value is not mutated")

	c.ToggleExpanded(15)
	c.ToggleExpanded(12)
	assert.False(t, c.IsExpanded(12))
	assert.True(t, c.IsExpanded(15))
}

func TestProductDetail_ToggleFavorite(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.member(t, "u1", "Ana")

	p := NewProductDetail(e.svc, "u1", "1")
	require.NoError(t, p.Load(ctx))
	assert.Equal(t, "Leche", p.Product().Get().DisplayName)
	assert.ErrorIs(t, p.ToggleFavorite(ctx), service.ErrNoFamily)

	familyID := e.family(t, "u1")
	require.NoError(t, p.ToggleFavorite(ctx))
	assert.True(t, p.IsFavorite().Get())
	ok, err := e.svc.IsFavorite(ctx, familyID, "1")
	require.NoError(t, err)
	assert.True(t, ok)

	require.NoError(t, p.ToggleFavorite(ctx))
	assert.False(t, p.IsFavorite().Get())

	missing := NewProductDetail(e.svc, "u1", "404")
	assert.ErrorIs(t, missing.Load(ctx), ErrProductNotFound)
}

func TestProductDetail_SetFavoriteIsIdempotent(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.member(t, "u1", "Ana")

	p := NewProductDetail(e.svc, "u1", "404")
	assert.ErrorIs(t, p.LoadFavorite(ctx), service.ErrNoFamily)
	e.family(t, "u1")

	// No catalog lookup is needed to flag a product.
	require.NoError(t, p.SetFavorite(ctx, true))
	require.NoError(t, p.SetFavorite(ctx, true))
	assert.True(t, p.IsFavorite().Get())

	other := NewProductDetail(e.svc, "u1", "404")
	require.NoError(t, other.LoadFavorite(ctx))
	assert.True(t, other.IsFavorite().Get())

	require.NoError(t, p.SetFavorite(ctx, false))
	require.NoError(t, p.SetFavorite(ctx, false))
	require.NoError(t, other.LoadFavorite(ctx))
	assert.False(t, other.IsFavorite().Get())
}

func TestFavorites_Load(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.member(t, "u1", "Ana")
	familyID := e.family(t, "u1")
	require.NoError(t, e.svc.AddFavorite(ctx, familyID, "2"))

	f := NewFavorites(e.svc, "u1")
	var loading []bool
	f.Loading().Subscribe(func(v bool) { loading = append(loading, v) })

	require.NoError(t, f.Load(ctx))
	require.Len(t, f.Favorites().Get(), 1)
	assert.Equal(t, "Pan", f.Favorites().Get()[0].DisplayName)
	assert.Empty(t, f.History().Get())
	assert.Equal(t, []bool{true, false}, loading)
}

func TestRegistration_Validate(t *testing.T) {
	r := NewRegistration(newEnv(t).svc)
	valid := RegistrationForm{
		Nombre:          "Ana",
		Apellidos:       "García",
		Email:           "ana@example.com",
		Password:        "12345678",
		ConfirmPassword: "12345678",
	}

	tests := []struct {
		name   string
		mutate func(f *RegistrationForm)
		want   string
	}{
		{"valid", func(f *RegistrationForm) {}, ""},
		{"blank name", func(f *RegistrationForm) { f.Nombre = "   " }, "El nombre no puede estar vacío"},
		{"blank surname", func(f *RegistrationForm) { f.Apellidos = "" }, "Los apellidos no pueden estar vacíos"},
		{"bad email", func(f *RegistrationForm) { f.Email = "ana" }, "Ingresa un email válido."},
		{"short password", func(f *RegistrationForm) { f.Password, f.ConfirmPassword = "1234", "1234" }, "La contraseña debe tener al menos 8 caracteres."},
		{"mismatch", func(f *RegistrationForm) { f.ConfirmPassword = "87654321" }, "Las contraseñas no coinciden."},
		{"first failure wins", func(f *RegistrationForm) { f.Nombre, f.Email = "", "x" }, "El nombre no puede estar vacío"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			form := valid
			tt.mutate(&form)
			assert.Equal(t, tt.want, r.Validate(&form))
		})
	}
}

func TestRegistration_Submit(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	r := NewRegistration(e.svc)

	_, err := r.Submit(ctx, RegistrationForm{Nombre: "Ana"})
	require.Error(t, err)
	assert.Equal(t, "Los apellidos no pueden estar vacíos", r.Message().Get())

	e.provider.On("CreateUser", mock.Anything, "ana@example.com", "12345678").Return("uid-1", nil).Once()
	profile, err := r.Submit(ctx, RegistrationForm{
		Nombre:          " Ana ",
		Apellidos:       "García",
		Email:           "ana@example.com ",
		Password:        "12345678",
		ConfirmPassword: "12345678",
	})
	require.NoError(t, err)
	assert.Equal(t, "uid-1", profile.UID)
	assert.Equal(t, "Ana", profile.Nombre)
	assert.Empty(t, r.Message().Get())
	e.provider.AssertExpectations(t)

	e.provider.On("CreateUser", mock.Anything, "b@example.com", "12345678").
		Return("", errors.New("The email address is already in use by another account.")).Once()
	_, err = r.Submit(ctx, RegistrationForm{Nombre: "B", Apellidos: "C", Email: "b@example.com", Password: "12345678", ConfirmPassword: "12345678"})
	require.Error(t, err)
	assert.Equal(t, err.Error(), r.Message().Get())
}

func TestLists_CreateAndDelete(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.member(t, "u1", "Ana")
	e.family(t, "u1")

	l := NewLists(e.svc, "u1")
	_, err := l.Create(ctx, "  ")
	assert.ErrorIs(t, err, service.ErrEmptyListName)

	list, err := l.Create(ctx, "Semana")
	require.NoError(t, err)
	require.Len(t, l.Lists().Get(), 1)

	require.NoError(t, l.Delete(ctx, list.ID))
	assert.Empty(t, l.Lists().Get())
}

func TestProfile_Update(t *testing.T) {
	e := newEnv(t)
	ctx := context.Background()
	e.member(t, "u1", "Ana")

	p := NewProfile(e.svc, "u1")
	require.NoError(t, p.Load(ctx))
	assert.Equal(t, "Ana", p.Profile().Get().Nombre)

	assert.ErrorIs(t, p.Update(ctx, "Ana", "García", "sandia"), service.ErrInvalidAvatar)
	require.NoError(t, p.Update(ctx, "Ana María", "García", "pan"))
	assert.Equal(t, "Ana María", p.Profile().Get().Nombre)
	assert.Equal(t, "pan", p.Profile().Get().Foto)
}

func TestFamilyStatus_Text(t *testing.T) {
	for _, st := range []FamilyStatus{StatusUnknown, StatusNoFamily, StatusHasFamily} {
		text, err := st.MarshalText()
		require.NoError(t, err)
		var back FamilyStatus
		require.NoError(t, back.UnmarshalText(text))
		assert.Equal(t, st, back)
	}
	var st FamilyStatus
	assert.Error(t, st.UnmarshalText([]byte("maybe")))
}
