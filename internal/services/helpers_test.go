package services

import (
	"context"
	"testing"

	"github.com/ahmetcoskunkizilkaya/listshare/internal/dbtest"
	"github.com/ahmetcoskunkizilkaya/listshare/internal/identity"
	"github.com/ahmetcoskunkizilkaya/listshare/internal/models"
	"github.com/ahmetcoskunkizilkaya/listshare/internal/store"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

type fixture struct {
	store     *store.Store
	users     *UserService
	lists     *ListService
	views     *ViewService
	bookmarks *BookmarkService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	st := store.New(dbtest.Open(t))
	views := NewViewService(st)
	return &fixture{
		store:     st,
		users:     NewUserService(st),
		lists:     NewListService(st),
		views:     views,
		bookmarks: NewBookmarkService(st, views),
	}
}

func (f *fixture) user(t *testing.T, handle string) *models.User {
	t.Helper()
	u, err := f.users.EnsureUser(context.Background(), identity.Identity{AuthProviderID: "test:" + handle, Handle: handle})
	require.NoError(t, err)
	return u
}

func (f *fixture) list(t *testing.T, owner *models.User, title, listType string) *models.List {
	t.Helper()
	l, err := f.lists.CreateList(context.Background(), owner, title, listType)
	require.NoError(t, err)
	return l
}

func (f *fixture) item(t *testing.T, owner *models.User, list *models.List, title string) *models.Item {
	t.Helper()
	it, err := f.lists.AddItem(context.Background(), owner, list.ID, ItemInput{Title: title})
	require.NoError(t, err)
	return it
}

func ptr[T any](v T) *T { return &v }

func dbOf(f *fixture) *gorm.DB { return f.store.DB() }
