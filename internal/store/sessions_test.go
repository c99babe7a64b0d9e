package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tableorder-backend/internal/model"
)

func TestRegisterSessionIdempotent(t *testing.T) {
	s, testDB := newTestStore(t)
	ctx := context.Background()

	_, err := s.CreateTable(ctx, 1)
	require.NoError(t, err)

	first, created, err := s.RegisterSession(ctx, 1, "D1")
	require.NoError(t, err)
	assert.True(t, created)

	// Registering the same pair again is a no-op success, not an error.
	second, created, err := s.RegisterSession(ctx, 1, "D1")
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	testDB.Model(&model.DeviceSession{}).Count(&count)
	assert.Equal(t, int64(1), count, "duplicate registration must not add a row")

	// A different device at the same table is a new session.
	_, created, err = s.RegisterSession(ctx, 1, "D2")
	require.NoError(t, err)
	assert.True(t, created)
}

func TestRegisterSessionValidation(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, _, err := s.RegisterSession(ctx, 7, "D1")
	assert.ErrorIs(t, err, ErrNotFound, "absent table is a referential violation")

	_, err = s.CreateTable(ctx, 7)
	require.NoError(t, err)
	_, _, err = s.RegisterSession(ctx, 7, "")
	assert.ErrorIs(t, err, ErrInvalidStatus)
}

func TestCloseSessionIdempotent(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.CreateTable(ctx, 1)
	require.NoError(t, err)
	_, _, err = s.RegisterSession(ctx, 1, "D1")
	require.NoError(t, err)

	deleted, err := s.CloseSession(ctx, 1, "D1")
	require.NoError(t, err)
	assert.True(t, deleted)

	deleted, err = s.CloseSession(ctx, 1, "D1")
	require.NoError(t, err)
	assert.False(t, deleted, "closing an absent session is a no-op success")
}

func TestListSessions(t *testing.T) {
	s, _ := newTestStore(t)
	ctx := context.Background()

	_, err := s.CreateTable(ctx, 1)
	require.NoError(t, err)
	_, err = s.CreateTable(ctx, 2)
	require.NoError(t, err)

	for _, device := range []string{"D1", "D2"} {
		_, _, err = s.RegisterSession(ctx, 1, device)
		require.NoError(t, err)
	}
	_, _, err = s.RegisterSession(ctx, 2, "D3")
	require.NoError(t, err)

	sessions, err := s.ListSessions(ctx, 1)
	require.NoError(t, err)
	require.Len(t, sessions, 2)
	assert.Equal(t, "D1", sessions[0].DeviceID)
	assert.Equal(t, "D2", sessions[1].DeviceID)
}
