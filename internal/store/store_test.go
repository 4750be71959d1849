package store

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/listshare/internal/dbtest"
	"github.com/ahmetcoskunkizilkaya/listshare/internal/models"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *Store {
	t.Helper()
	return New(dbtest.Open(t))
}

func createUser(t *testing.T, s *Store, handle string) *models.User {
	t.Helper()
	user := &models.User{AuthProviderID: "test:" + handle, Handle: handle}
	require.NoError(t, s.CreateUser(context.Background(), user))
	return user
}

func strPtr(s string) *string { return &s }

func TestUserLookups(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	ann := createUser(t, s, "ann")

	byID, err := s.GetUserByID(ctx, ann.ID)
	require.NoError(t, err)
	assert.Equal(t, "ann", byID.Handle)

	byProvider, err := s.GetUserByAuthProviderID(ctx, "test:ann")
	require.NoError(t, err)
	assert.Equal(t, ann.ID, byProvider.ID)

	byHandle, err := s.GetUserByHandle(ctx, "ann")
	require.NoError(t, err)
	assert.Equal(t, ann.ID, byHandle.ID)

	_, err = s.GetUserByHandle(ctx, "nobody")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestCreateUserUniqueness(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	createUser(t, s, "ann")

	err := s.CreateUser(ctx, &models.User{AuthProviderID: "test:other", Handle: "ann"})
	assert.ErrorIs(t, err, ErrHandleTaken)

	err = s.CreateUser(ctx, &models.User{AuthProviderID: "test:ann", Handle: "ann2"})
	assert.ErrorIs(t, err, ErrUserExists)
}

func TestHandleTakenByOther(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	createUser(t, s, "ann")

	taken, err := s.HandleTakenByOther(ctx, "ann", "test:ann")
	require.NoError(t, err)
	assert.False(t, taken, "own handle is not taken")

	taken, err = s.HandleTakenByOther(ctx, "ann", "test:bob")
	require.NoError(t, err)
	assert.True(t, taken)

	taken, err = s.HandleTakenByOther(ctx, "free", "test:bob")
	require.NoError(t, err)
	assert.False(t, taken)
}

func TestUpdateUser(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	ann := createUser(t, s, "ann")
	createUser(t, s, "bob")

	require.NoError(t, s.UpdateUser(ctx, ann.ID, map[string]any{"display_name": "Ann R"}))
	got, err := s.GetUserByID(ctx, ann.ID)
	require.NoError(t, err)
	require.NotNil(t, got.DisplayName)
	assert.Equal(t, "Ann R", *got.DisplayName)

	assert.ErrorIs(t, s.UpdateUser(ctx, ann.ID, map[string]any{"handle": "bob"}), ErrHandleTaken)
	assert.ErrorIs(t, s.UpdateUser(ctx, uuid.New(), map[string]any{"handle": "zed"}), ErrUserNotFound)
	assert.NoError(t, s.UpdateUser(ctx, uuid.New(), nil))
}

func TestSearchUsers(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)

	for i, handle := range []string{"alice", "malice", "bob", "under_score"} {
		user := &models.User{
			AuthProviderID: "test:" + handle,
			Handle:         handle,
			CreatedAt:      time.Now().UTC().Add(time.Duration(i) * time.Minute),
		}
		require.NoError(t, s.CreateUser(ctx, user))
	}
	carol := &models.User{AuthProviderID: "test:carol", Handle: "carol", DisplayName: strPtr("Carol ALICEson"), CreatedAt: time.Now().UTC().Add(10 * time.Minute)}
	require.NoError(t, s.CreateUser(ctx, carol))

	users, err := s.SearchUsers(ctx, "ALIC", 20)
	require.NoError(t, err)
	handles := make([]string, 0, len(users))
	for _, u := range users {
		handles = append(handles, u.Handle)
	}
	assert.Equal(t, []string{"carol", "malice", "alice"}, handles, "newest accounts first")

	users, err = s.SearchUsers(ctx, "_", 20)
	require.NoError(t, err)
	require.Len(t, users, 1, "underscore is matched literally")
	assert.Equal(t, "under_score", users[0].Handle)

	users, err = s.SearchUsers(ctx, "%", 20)
	require.NoError(t, err)
	assert.Empty(t, users)
}

func TestSearchUsersLimit(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	for i := 0; i < 25; i++ {
		createUser(t, s, fmt.Sprintf("reader%02d", i))
	}
	users, err := s.SearchUsers(ctx, "reader", 20)
	require.NoError(t, err)
	assert.Len(t, users, 20)
}
