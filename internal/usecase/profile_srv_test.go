package usecase

import (
	"context"
	"testing"

	"warranty-portal/internal/data/entity"
	"warranty-portal/internal/data/repository"
	"warranty-portal/internal/dto/request"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestProfileMe(t *testing.T) {
	env := newTestEnv()
	auth := env.authService()
	srv := NewProfileService(env.repo, zap.NewNop())

	registerAndVerify(t, env, auth, customerRegisterRequest(), "asha@example.com")
	profile, err := env.repo.Profile.FindByEmail(context.Background(), "asha@example.com")
	require.NoError(t, err)
	require.NotNil(t, profile)

	me, err := srv.Me(context.Background(), profile.ID)
	require.NoError(t, err)
	assert.Equal(t, "Asha Kumar", me.Name)
	assert.Equal(t, entity.RoleCustomer, me.Role)
	assert.True(t, me.IsValidated)
}

func TestProfileMeUnverifiedVendor(t *testing.T) {
	env := newTestEnv()
	auth := env.authService()
	srv := NewProfileService(env.repo, zap.NewNop())

	registerAndVerify(t, env, auth, vendorRegisterRequest(), "ravi@example.com")
	profile, err := env.repo.Profile.FindByEmail(context.Background(), "ravi@example.com")
	require.NoError(t, err)
	require.NotNil(t, profile)

	me, err := srv.Me(context.Background(), profile.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.RoleVendor, me.Role)
	assert.False(t, me.IsValidated)

	require.NoError(t, env.repo.Verification.Approve(context.Background(), profile.ID))

	me, err = srv.Me(context.Background(), profile.ID)
	require.NoError(t, err)
	assert.True(t, me.IsValidated)
}

func TestProfileMeUnknownUser(t *testing.T) {
	env := newTestEnv()
	srv := NewProfileService(env.repo, zap.NewNop())

	_, err := srv.Me(context.Background(), uuid.New())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "user not found")
}

func TestProfileUpdate(t *testing.T) {
	env := newTestEnv()
	auth := env.authService()
	srv := NewProfileService(env.repo, zap.NewNop())

	registerAndVerify(t, env, auth, customerRegisterRequest(), "asha@example.com")
	profile, err := env.repo.Profile.FindByEmail(context.Background(), "asha@example.com")
	require.NoError(t, err)
	require.NotNil(t, profile)

	updated, err := srv.Update(context.Background(), profile.ID, &request.UpdateProfileRequest{
		Name:        "Asha K",
		Email:       "asha.k@example.com",
		PhoneNumber: "0 98765-43211",
	})
	require.NoError(t, err)
	assert.Equal(t, "Asha K", updated.Name)
	assert.Equal(t, "asha.k@example.com", updated.Email)
	assert.Equal(t, "9876543211", updated.Phone)
}

func TestProfileUpdateEmailCollision(t *testing.T) {
	env := newTestEnv()
	auth := env.authService()
	srv := NewProfileService(env.repo, zap.NewNop())

	registerAndVerify(t, env, auth, customerRegisterRequest(), "asha@example.com")

	other := customerRegisterRequest()
	other.Email = "meera@example.com"
	other.PhoneNumber = "9876500000"
	registerAndVerify(t, env, auth, other, "meera@example.com")

	profile, err := env.repo.Profile.FindByEmail(context.Background(), "asha@example.com")
	require.NoError(t, err)
	require.NotNil(t, profile)

	_, err = srv.Update(context.Background(), profile.ID, &request.UpdateProfileRequest{
		Name:        "Asha Kumar",
		Email:       "meera@example.com",
		PhoneNumber: "9876543210",
	})
	require.ErrorIs(t, err, repository.ErrDuplicateEmail)
}
