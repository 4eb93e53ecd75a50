package service

import (
	"context"
	"errors"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/Kerhoff/familycart/internal/auth"
	"github.com/Kerhoff/familycart/internal/models"
	"github.com/Kerhoff/familycart/internal/repository"
)

func TestService_Login(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	env.provider.On("SignIn", mock.Anything, "ana@example.com", "secreto123").
		Return(&auth.Session{UID: "u1", IDToken: "tok"}, nil)
	env.provider.On("SignIn", mock.Anything, "ana@example.com", "mal").
		Return(nil, errors.New("The password is invalid or the user does not have a password."))

	session, err := env.svc.Login(ctx, "  ana@example.com ", "secreto123")
	require.NoError(t, err)
	assert.Equal(t, "u1", session.UID)

	_, err = env.svc.Login(ctx, "ana@example.com", "mal")
	require.Error(t, err)
	assert.Equal(t, "La contraseña es incorrecta", err.Error())
	env.provider.AssertExpectations(t)
}

func TestService_RegisterAssignsAvatar(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()

	for i := 0; i < 20; i++ {
		uid := "uid-" + string(rune('a'+i))
		email := uid + "@example.com"
		env.provider.On("CreateUser", mock.Anything, email, "contraseña1").Return(uid, nil).Once()

		profile, err := env.svc.Register(ctx, "Ana", "García", email, "contraseña1")
		require.NoError(t, err)
		assert.True(t, models.IsAvatar(profile.Foto), "unexpected avatar %q", profile.Foto)

		stored, err := env.store.Users.GetByID(ctx, uid)
		require.NoError(t, err)
		assert.Equal(t, profile.Foto, stored.Foto)
		assert.Equal(t, "Ana", stored.Nombre)
		assert.Nil(t, stored.FamilyID)
	}
	env.provider.AssertExpectations(t)
}

func TestService_RegisterTranslatesProviderFailure(t *testing.T) {
	env := newTestEnv(t, nil)
	env.provider.On("CreateUser", mock.Anything, "ana@example.com", "contraseña1").
		Return("", errors.New("The email address is already in use by another account."))

	_, err := env.svc.Register(context.Background(), "Ana", "García", "ana@example.com", "contraseña1")
	require.Error(t, err)
	assert.Equal(t, "El email ya está registrado", err.Error())
}

// failingUsers rejects every profile write.
type failingUsers struct {
	repository.UserRepository
}

func (failingUsers) Create(ctx context.Context, profile *models.UserProfile) error {
	return errors.New("deadline exceeded")
}

func TestService_RegisterCompensatesFailedProfileWrite(t *testing.T) {
	env := newTestEnv(t, nil)
	env.svc.Users = failingUsers{env.svc.Users}
	ctx := context.Background()

	env.provider.On("CreateUser", mock.Anything, "ana@example.com", "contraseña1").Return("u1", nil)
	env.provider.On("DeleteUser", mock.Anything, "u1").Return(nil)

	_, err := env.svc.Register(ctx, "Ana", "García", "ana@example.com", "contraseña1")
	assert.Equal(t, ErrRegistrationFailed, err)
	assert.NotContains(t, err.Error(), "deadline exceeded")
	env.provider.AssertCalled(t, "DeleteUser", mock.Anything, "u1")

	entry := env.hook.LastEntry()
	require.NotNil(t, entry)
	assert.Equal(t, "Failed to write profile, new identity removed", entry.Message)
	assert.EqualError(t, entry.Data[logrus.ErrorKey].(error), "deadline exceeded")

	_, err = env.store.Users.GetByID(ctx, "u1")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestService_UpdateProfile(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	uid := env.withUser(t, "u1", "Ana")

	_, err := env.svc.UpdateProfile(ctx, uid, "", "García", "pan")
	assert.ErrorIs(t, err, ErrEmptyName)
	_, err = env.svc.UpdateProfile(ctx, uid, "Ana", " ", "pan")
	assert.ErrorIs(t, err, ErrEmptySurname)
	_, err = env.svc.UpdateProfile(ctx, uid, "Ana", "García", "pizza")
	assert.ErrorIs(t, err, ErrInvalidAvatar)

	profile, err := env.svc.UpdateProfile(ctx, uid, "Ana María", "García", "leche")
	require.NoError(t, err)
	assert.Equal(t, "Ana María García", profile.FullName())

	stored, err := env.svc.GetProfile(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, "leche", stored.Foto)

	_, err = env.svc.GetProfile(ctx, "ghost")
	assert.ErrorIs(t, err, ErrNotAuthenticated)
}
