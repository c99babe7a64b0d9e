package store

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableorder-backend/internal/model"
)

func TestProfileLifecycle(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	profile := &model.Profile{
		ID:           uuid.New(),
		Email:        "alice@manager.com",
		Role:         model.RoleManager,
		PasswordHash: "x",
	}
	require.NoError(t, s.CreateProfile(ctx, profile))

	// Same email again is a conflict regardless of the id.
	dup := &model.Profile{ID: uuid.New(), Email: "alice@manager.com", Role: model.RoleServant, PasswordHash: "y"}
	assert.ErrorIs(t, s.CreateProfile(ctx, dup), ErrDuplicateEmail)

	byEmail, err := s.ProfileByEmail(ctx, "alice@manager.com")
	require.NoError(t, err)
	assert.Equal(t, profile.ID, byEmail.ID)
	assert.Equal(t, model.RoleManager, byEmail.Role)

	byID, err := s.ProfileByID(ctx, profile.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice@manager.com", byID.Email)

	updated, err := s.UpdateProfile(ctx, profile.ID, ProfileUpdate{Email: "alice.h@manager.com"})
	require.NoError(t, err)
	assert.Equal(t, "alice.h@manager.com", updated.Email)
	assert.Equal(t, model.RoleManager, updated.Role)

	_, err = s.ProfileByEmail(ctx, "nobody@servant.com")
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.ProfileByID(ctx, uuid.New())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestListProfiles(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	for _, email := range []string{"a@manager.com", "b@servant.com"} {
		role := model.RoleServant
		if email == "a@manager.com" {
			role = model.RoleManager
		}
		require.NoError(t, s.CreateProfile(ctx, &model.Profile{
			ID: uuid.New(), Email: email, Role: role, PasswordHash: "x",
		}))
	}

	profiles, err := s.ListProfiles(ctx)
	require.NoError(t, err)
	require.Len(t, profiles, 2)
}
