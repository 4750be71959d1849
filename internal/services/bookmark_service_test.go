package services

import (
	"context"
	"testing"

	"github.com/ahmetcoskunkizilkaya/listshare/internal/dto"
	"github.com/ahmetcoskunkizilkaya/listshare/internal/models"
	"github.com/ahmetcoskunkizilkaya/listshare/internal/store"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func countItems(t *testing.T, f *fixture, owner uuid.UUID) int64 {
	t.Helper()
	var n int64
	require.NoError(t, dbOf(f).Model(&models.Item{}).
		Joins("JOIN lists ON lists.id = items.list_id").
		Where("lists.owner_id = ?", owner).
		Count(&n).Error)
	return n
}

func TestBookmarkCopiesIntoMatchingList(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	books := f.list(t, alice, "Books", "book")
	dune := f.item(t, alice, books, "Dune")

	res, err := f.bookmarks.BookmarkItem(ctx, bob, dune.ID, nil)
	require.NoError(t, err)
	require.NotNil(t, res.CreatedItemID)
	assert.True(t, res.ListCreated)
	assert.Contains(t, res.Message, "Dune")

	mine, ok := res.View.(dto.MineView)
	require.True(t, ok, "centred on the destination list, got %T", res.View)
	assert.Equal(t, "Books", mine.List.Title)
	assert.Equal(t, "book", mine.List.Type)
	require.Len(t, mine.ActiveItems, 1)
	assert.Equal(t, "Dune", mine.ActiveItems[0].Title)
	assert.Equal(t, *res.CreatedItemID, mine.ActiveItems[0].ID)

	count, err := f.store.CountBookmarks(ctx, bob.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 1, count)
}

func TestBookmarkUsesExistingListAndViewingList(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.user(t, "alice")
	bob := f.user(t, "bob")
	books := f.list(t, alice, "Books", "book")
	dune := f.item(t, alice, books, "Dune")
	reading := f.list(t, bob, "To read", "book")

	res, err := f.bookmarks.BookmarkItem(ctx, bob, dune.ID, &books.ID)
	require.NoError(t, err)
	assert.False(t, res.ListCreated)

	profile, ok := res.View.(dto.ProfileView)
	require.True(t, ok, "centred on the list being viewed, got %T", res.View)
	assert.Equal(t, books.ID, profile.List.ID)

	items, err := f.store.GetItemsByList(ctx, reading.ID, models.ItemStatusActive)
	require.NoError(t, err)
	require.Len(t, items, 1)
	assert.Equal(t, "Dune", items[0].Title)
}

func TestBookmarkOwnItemIsNoop(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t)
	alice := f.user(t, "alice")
	books := f.list(t, alice, "Books", "book")
	dune := f.item(t, alice, books, "Dune")

	before := countItems(t, f, alice.ID)
	res, err := f.bookmarks.BookmarkItem(ctx, alice, dune.ID, nil)
	require.NoError(t, err)
	assert.Nil(t, res.CreatedItemID)
	assert.Equal(t, alreadyYoursMessage, res.Message)
	assert.Equal(t, before, countItems(t, f, alice.ID))

	count, err := f.store.CountBookmarks(ctx, alice.ID)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestBookmarkUnknownItem(t *testing.T) {
	f := newFixture(t)
	bob := f.user(t, "bob")
	_, err := f.bookmarks.BookmarkItem(context.Background(), bob, uuid.New(), nil)
	assert.ErrorIs(t, err, store.ErrItemNotFound)
}
