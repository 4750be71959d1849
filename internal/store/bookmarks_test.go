package store

import (
	"context"
	"testing"

	"github.com/ahmetcoskunkizilkaya/listshare/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCopyItemWithBookmark(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	alice := createUser(t, s, "alice")
	bob := createUser(t, s, "bob")

	books, err := s.CreateList(ctx, alice.ID, "Books", "book")
	require.NoError(t, err)
	dune, err := s.AddItem(ctx, books.ID, "Dune", strPtr("spice"), nil)
	require.NoError(t, err)
	src, err := s.GetSourceItem(ctx, dune.ID)
	require.NoError(t, err)

	res, err := s.CopyItemWithBookmark(ctx, bob.ID, src)
	require.NoError(t, err)
	assert.True(t, res.ListCreated)
	assert.Equal(t, "Books", res.List.Title)
	assert.Equal(t, "book", res.List.Type)
	assert.Equal(t, bob.ID, res.List.OwnerID)
	assert.Equal(t, "Dune", res.Item.Title)
	assert.Equal(t, models.ItemStatusActive, res.Item.Status)
	assert.Equal(t, dune.ID, res.Bookmark.SourceItemID)
	assert.Equal(t, alice.ID, res.Bookmark.SourceUserID)
	assert.Equal(t, res.Item.ID, res.Bookmark.CreatedItemID)

	second, err := s.CopyItemWithBookmark(ctx, bob.ID, src)
	require.NoError(t, err)
	assert.False(t, second.ListCreated)
	assert.Equal(t, res.List.ID, second.List.ID)
	assert.NotEqual(t, res.Item.ID, second.Item.ID, "each bookmark creates a new copy")

	count, err := s.CountBookmarks(ctx, bob.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 2, count)
}

func TestBookmarkSurvivesSourceDeletion(t *testing.T) {
	ctx := context.Background()
	s := newTestStore(t)
	alice := createUser(t, s, "alice")
	bob := createUser(t, s, "bob")

	books, err := s.CreateList(ctx, alice.ID, "Books", "book")
	require.NoError(t, err)
	dune, err := s.AddItem(ctx, books.ID, "Dune", nil, nil)
	require.NoError(t, err)
	src, err := s.GetSourceItem(ctx, dune.ID)
	require.NoError(t, err)
	_, err = s.CopyItemWithBookmark(ctx, bob.ID, src)
	require.NoError(t, err)

	require.NoError(t, s.db.Delete(alice).Error)

	count, err := s.CountBookmarks(ctx, bob.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}
