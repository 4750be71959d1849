package store

import (
	"context"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/listshare/internal/models"
	"github.com/google/uuid"
)

func (s *Store) CreateBookmark(ctx context.Context, bookmark *models.Bookmark) error {
	if err := s.conn(ctx).Create(bookmark).Error; err != nil {
		return fmt.Errorf("create bookmark: %w", err)
	}
	return nil
}

func (s *Store) CountBookmarks(ctx context.Context, userID uuid.UUID) (int64, error) {
	var count int64
	if err := s.conn(ctx).Model(&models.Bookmark{}).Where("user_id = ?", userID).Count(&count).Error; err != nil {
		return 0, fmt.Errorf("count bookmarks: %w", err)
	}
	return count, nil
}

// CopyResult describes one completed copy.
type CopyResult struct {
	List        *models.List
	ListCreated bool
	Item        *models.Item
	Bookmark    *models.Bookmark
}

// CopyItemWithBookmark copies src into the user's list of the same type
// and records the bookmark, all in one transaction.
func (s *Store) CopyItemWithBookmark(ctx context.Context, userID uuid.UUID, src *models.SourceItem) (*CopyResult, error) {
	var res CopyResult
	err := s.Transaction(ctx, func(tx *Store) error {
		list, created, err := tx.GetOrCreateListByType(ctx, userID, src.ListType, src.ListTitle)
		if err != nil {
			return err
		}
		item, err := tx.AddItem(ctx, list.ID, src.Title, src.Note, src.URL)
		if err != nil {
			return err
		}
		bookmark := &models.Bookmark{
			UserID:        userID,
			SourceItemID:  src.ItemID,
			SourceListID:  src.ListID,
			SourceUserID:  src.OwnerID,
			CreatedItemID: item.ID,
		}
		if err := tx.CreateBookmark(ctx, bookmark); err != nil {
			return err
		}
		res = CopyResult{List: list, ListCreated: created, Item: item, Bookmark: bookmark}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &res, nil
}
