package seed

import (
	"context"
	"testing"

	"github.com/ahmetcoskunkizilkaya/listshare/internal/dbtest"
	"github.com/ahmetcoskunkizilkaya/listshare/internal/models"
	"github.com/ahmetcoskunkizilkaya/listshare/internal/services"
	"github.com/ahmetcoskunkizilkaya/listshare/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemoFixtureParses(t *testing.T) {
	f, err := DemoFixture()
	require.NoError(t, err)
	require.NotEmpty(t, f.Users)
	for _, u := range f.Users {
		assert.NotEmpty(t, u.Lists, u.Handle)
	}
}

func TestParseRejectsBadFixtures(t *testing.T) {
	_, err := Parse([]byte("users:\n  - handle: a\n    colour: red\n"))
	assert.Error(t, err, "unknown keys are rejected")

	_, err = Parse([]byte("users:\n  - display_name: Nobody\n"))
	assert.Error(t, err)

	_, err = Parse([]byte("users:\n  - handle: a\n    lists:\n      - title: L\n        type: t\n        items:\n          - title: x\n            status: archived\n"))
	assert.Error(t, err)
}

func TestDemoIsRepeatable(t *testing.T) {
	ctx := context.Background()
	st := store.New(dbtest.Open(t))
	users := services.NewUserService(st)

	first, err := Demo(ctx, st, users)
	require.NoError(t, err)
	assert.Equal(t, 3, first.Users)
	assert.Equal(t, 5, first.Lists)
	assert.Equal(t, 11, first.Items)
	assert.Equal(t, []string{"alice", "bruno", "chen"}, first.Handles)

	alice, err := st.GetUserByHandle(ctx, "alice")
	require.NoError(t, err)
	require.NotNil(t, alice.Bio)
	assert.Equal(t, ProviderPrefix+"alice", alice.AuthProviderID)

	lists, err := st.GetListsByOwner(ctx, alice.ID)
	require.NoError(t, err)
	require.Len(t, lists, 2)
	var books models.ListSummary
	for _, l := range lists {
		if l.Type == "book" {
			books = l
		}
	}
	assert.EqualValues(t, 2, books.ActiveCount)
	assert.EqualValues(t, 1, books.DoneCount)

	second, err := Demo(ctx, st, users)
	require.NoError(t, err)
	assert.Equal(t, 3, second.Users)
	assert.Zero(t, second.Lists)
	assert.Zero(t, second.Items)
}
