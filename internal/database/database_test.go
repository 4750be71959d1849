package database_test

import (
	"context"
	"testing"

	"github.com/ahmetcoskunkizilkaya/listshare/internal/database"
	"github.com/ahmetcoskunkizilkaya/listshare/internal/dbtest"
	"github.com/ahmetcoskunkizilkaya/listshare/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMigrateCreatesTables(t *testing.T) {
	db := dbtest.Open(t)

	require.NoError(t, database.Ping(context.Background(), db))
	for _, model := range []any{&models.User{}, &models.List{}, &models.Item{}, &models.Bookmark{}, &models.SystemLog{}} {
		assert.True(t, db.Migrator().HasTable(model), "%T table", model)
	}
	// Running again is a no-op.
	require.NoError(t, database.Migrate(db))
}

func TestDeletingUserCascadesToListsAndItems(t *testing.T) {
	db := dbtest.Open(t)

	user := models.User{AuthProviderID: "dev:1", Handle: "ann"}
	require.NoError(t, db.Create(&user).Error)
	list := models.List{OwnerID: user.ID, Title: "Books", Type: "book"}
	require.NoError(t, db.Create(&list).Error)
	require.NoError(t, db.Create(&models.Item{ListID: list.ID, Title: "Dune"}).Error)

	require.NoError(t, db.Delete(&user).Error)

	var lists, items int64
	require.NoError(t, db.Model(&models.List{}).Count(&lists).Error)
	require.NoError(t, db.Model(&models.Item{}).Count(&items).Error)
	assert.Zero(t, lists)
	assert.Zero(t, items)
}
