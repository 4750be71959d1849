package services

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/listshare/internal/dto"
	"github.com/ahmetcoskunkizilkaya/listshare/internal/models"
	"github.com/ahmetcoskunkizilkaya/listshare/internal/store"
	"github.com/google/uuid"
)

const alreadyYoursMessage = "That item is already in your lists."

type BookmarkResult struct {
	View          dto.View
	CreatedItemID *uuid.UUID
	ListCreated   bool
	Message       string
}

// BookmarkService copies other users' items into the viewer's lists.
type BookmarkService struct {
	store *store.Store
	views *ViewService
}

func NewBookmarkService(st *store.Store, views *ViewService) *BookmarkService {
	return &BookmarkService{store: st, views: views}
}

// BookmarkItem copies sourceItemID into the viewer's list of the same
// type. Bookmarking one's own item writes nothing. The returned view is
// centred on viewingListID when given, else on the destination list.
func (s *BookmarkService) BookmarkItem(ctx context.Context, viewer *models.User, sourceItemID uuid.UUID, viewingListID *uuid.UUID) (*BookmarkResult, error) {
	src, err := s.store.GetSourceItem(ctx, sourceItemID)
	if err != nil {
		return nil, err
	}

	if src.OwnerID == viewer.ID {
		view, err := s.views.Build(ctx, viewer, viewingListID)
		if err != nil {
			return nil, err
		}
		return &BookmarkResult{View: view, Message: alreadyYoursMessage}, nil
	}

	copied, err := s.store.CopyItemWithBookmark(ctx, viewer.ID, src)
	if err != nil {
		return nil, err
	}

	centre := viewingListID
	if centre == nil {
		centre = &copied.List.ID
	}
	view, err := s.views.Build(ctx, viewer, centre)
	if err != nil {
		return nil, err
	}
	return &BookmarkResult{
		View:          view,
		CreatedItemID: &copied.Item.ID,
		ListCreated:   copied.ListCreated,
		Message:       savedMessage(copied.Item.Title, copied.List.Title, src.OwnerHandle),
	}, nil
}

func savedMessage(itemTitle, listTitle, ownerHandle string) string {
	return "Saved \"" + itemTitle + "\" from @" + ownerHandle + " to your \"" + listTitle + "\" list."
}
