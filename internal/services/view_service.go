package services

import (
	"context"
	"strings"

	"github.com/ahmetcoskunkizilkaya/listshare/internal/dto"
	"github.com/ahmetcoskunkizilkaya/listshare/internal/identity"
	"github.com/ahmetcoskunkizilkaya/listshare/internal/models"
	"github.com/ahmetcoskunkizilkaya/listshare/internal/store"
	"github.com/google/uuid"
)

const searchLimit = 20

// ViewService assembles the view returned by every tool call.
type ViewService struct {
	store *store.Store
}

func NewViewService(st *store.Store) *ViewService {
	return &ViewService{store: st}
}

// Build centres the view on listID, or on the viewer's newest list when
// listID is nil.
func (s *ViewService) Build(ctx context.Context, viewer *models.User, listID *uuid.UUID) (dto.View, error) {
	myLists, err := s.store.GetListsByOwner(ctx, viewer.ID)
	if err != nil {
		return nil, err
	}

	var selected *models.ListSummary
	if listID != nil {
		selected, err = s.store.GetListSummary(ctx, *listID)
		if err != nil {
			return nil, err
		}
	}
	if selected == nil {
		if len(myLists) == 0 {
			return dto.EmptyView{MyLists: myLists}, nil
		}
		selected = &myLists[0]
	}

	active, done, err := s.items(ctx, selected.ID)
	if err != nil {
		return nil, err
	}

	if selected.OwnerID == viewer.ID {
		return dto.MineView{MyLists: myLists, List: *selected, ActiveItems: active, DoneItems: done}, nil
	}

	owner, err := s.store.GetUserByID(ctx, selected.OwnerID)
	if err != nil {
		return nil, err
	}
	ownerLists, err := s.store.GetListsByOwner(ctx, owner.ID)
	if err != nil {
		return nil, err
	}
	return dto.ProfileView{
		MyLists:     myLists,
		Profile:     dto.ProfileOf(owner),
		OwnerLists:  ownerLists,
		List:        selected,
		ActiveItems: active,
		DoneItems:   done,
	}, nil
}

// Search finds users by handle or display name. A blank query yields no results.
func (s *ViewService) Search(ctx context.Context, viewer *models.User, query string) (dto.View, error) {
	myLists, err := s.store.GetListsByOwner(ctx, viewer.ID)
	if err != nil {
		return nil, err
	}
	query = strings.TrimSpace(query)
	view := dto.SearchView{MyLists: myLists, Query: query, Results: []dto.UserProfile{}}
	if query == "" {
		return view, nil
	}

	users, err := s.store.SearchUsers(ctx, query, searchLimit)
	if err != nil {
		return nil, err
	}
	for i := range users {
		view.Results = append(view.Results, dto.ProfileOf(&users[i]))
	}
	return view, nil
}

// Profile shows the user with handle. The viewer's own handle yields
// their own view.
func (s *ViewService) Profile(ctx context.Context, viewer *models.User, handle string) (dto.View, error) {
	owner, err := s.store.GetUserByHandle(ctx, identity.LookupHandle(handle))
	if err != nil {
		return nil, err
	}
	if owner.ID == viewer.ID {
		return s.Build(ctx, viewer, nil)
	}

	ownerLists, err := s.store.GetListsByOwner(ctx, owner.ID)
	if err != nil {
		return nil, err
	}
	if len(ownerLists) > 0 {
		return s.Build(ctx, viewer, &ownerLists[0].ID)
	}

	myLists, err := s.store.GetListsByOwner(ctx, viewer.ID)
	if err != nil {
		return nil, err
	}
	return dto.ProfileView{
		MyLists:    myLists,
		Profile:    dto.ProfileOf(owner),
		OwnerLists: ownerLists,
	}, nil
}

func (s *ViewService) items(ctx context.Context, listID uuid.UUID) (active, done []models.Item, err error) {
	active, err = s.store.GetItemsByList(ctx, listID, models.ItemStatusActive)
	if err != nil {
		return nil, nil, err
	}
	done, err = s.store.GetItemsByList(ctx, listID, models.ItemStatusDone)
	if err != nil {
		return nil, nil, err
	}
	return active, done, nil
}
