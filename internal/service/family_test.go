package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kerhoff/familycart/internal/models"
)

func TestService_GenerateFamilyCodeShape(t *testing.T) {
	env := newTestEnv(t, nil)

	for i := 0; i < 50; i++ {
		code, err := env.svc.GenerateFamilyCode(context.Background())
		require.NoError(t, err)
		assert.True(t, models.IsValidFamilyCode(code), "bad code %q", code)
	}
}

func TestService_GenerateFamilyCodeSkipsTakenCodes(t *testing.T) {
	env := newTestEnv(t, nil)
	owner := env.withUser(t, "u1", "Ana")
	env.withFamily(t, owner, "A1B2", "secret")

	// A=0 '1'=27 B=1 '2'=28, then Z=25 four times.
	env.svc.intn = sequence(0, 27, 1, 28, 25, 25, 25, 25)

	code, err := env.svc.GenerateFamilyCode(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ZZZZ", code)
}

func TestService_CreateGroup(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	uid := env.withUser(t, "u1", "Ana")

	_, err := env.svc.CreateGroup(ctx, uid, "")
	assert.ErrorIs(t, err, ErrEmptyPassword)

	_, err = env.svc.CreateGroup(ctx, "ghost", "secret")
	assert.ErrorIs(t, err, ErrNotAuthenticated)

	family, err := env.svc.CreateGroup(ctx, uid, "secret")
	require.NoError(t, err)
	assert.True(t, models.IsValidFamilyCode(family.Code))
	assert.Equal(t, uid, family.OwnerID)

	familyID, err := env.svc.CurrentFamilyID(ctx, uid)
	require.NoError(t, err)
	assert.Equal(t, family.ID, familyID)
}

func TestService_JoinGroupByCode(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	owner := env.withUser(t, "owner", "Luis")
	family := env.withFamily(t, owner, "A1B2", "secret")
	joiner := env.withUser(t, "joiner", "Ana")

	_, err := env.svc.JoinGroupByCode(ctx, joiner, "A1B2", "wrong")
	assert.ErrorIs(t, err, ErrIncorrectPassword)
	assert.Equal(t, "Contraseña incorrecta", err.Error())

	_, err = env.svc.CurrentFamilyID(ctx, joiner)
	assert.ErrorIs(t, err, ErrNoFamily)

	joined, err := env.svc.JoinGroupByCode(ctx, joiner, "A1B2", "secret")
	require.NoError(t, err)
	assert.Equal(t, family.ID, joined.ID)

	profile, err := env.store.Users.GetByID(ctx, joiner)
	require.NoError(t, err)
	require.NotNil(t, profile.FamilyID)
	assert.Equal(t, family.ID, *profile.FamilyID)

	_, err = env.svc.JoinGroupByCode(ctx, joiner, "ZZZZ", "anything")
	assert.ErrorIs(t, err, ErrInvalidCode)
}

func TestService_LeaveGroupKeepsFamily(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	owner := env.withUser(t, "owner", "Luis")
	family := env.withFamily(t, owner, "A1B2", "secret")

	require.NoError(t, env.svc.LeaveGroup(ctx, owner))

	_, err := env.svc.CurrentFamilyID(ctx, owner)
	assert.ErrorIs(t, err, ErrNoFamily)

	stored, err := env.store.Families.GetByID(ctx, family.ID)
	require.NoError(t, err)
	assert.Equal(t, owner, stored.OwnerID)
}

func TestService_FamilyOverview(t *testing.T) {
	env := newTestEnv(t, nil)
	ctx := context.Background()
	owner := env.withUser(t, "owner", "Luis")
	family := env.withFamily(t, owner, "A1B2", "secret")
	member := env.withUser(t, "member", "Ana")
	_, err := env.svc.JoinGroupByCode(ctx, member, "A1B2", "secret")
	require.NoError(t, err)

	overview, err := env.svc.FamilyOverview(ctx, family.ID)
	require.NoError(t, err)
	assert.Equal(t, "A1B2", overview.Family.Code)
	assert.Equal(t, "Luis", overview.OwnerName)
	assert.Len(t, overview.Members, 2)

	_, err = env.svc.FamilyOverview(ctx, "missing")
	assert.ErrorIs(t, err, ErrNoFamily)
}
