package services

import (
	"context"
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/listshare/internal/models"
	"github.com/ahmetcoskunkizilkaya/listshare/internal/store"
	"github.com/google/uuid"
)

// ItemInput is a new item as supplied by the caller.
type ItemInput struct {
	Title string
	Note  *string
	URL   *string
}

// ListService applies owner-only mutations to lists and items.
type ListService struct {
	store *store.Store
}

func NewListService(st *store.Store) *ListService {
	return &ListService{store: st}
}

func NormalizeListType(t string) string {
	return strings.ToLower(strings.TrimSpace(t))
}

func (s *ListService) CreateList(ctx context.Context, viewer *models.User, title, listType string) (*models.List, error) {
	title = strings.TrimSpace(title)
	listType = NormalizeListType(listType)
	if err := validateListFields(title, listType); err != nil {
		return nil, err
	}
	return s.store.CreateList(ctx, viewer.ID, title, listType)
}

func (s *ListService) AddItem(ctx context.Context, viewer *models.User, listID uuid.UUID, in ItemInput) (*models.Item, error) {
	title, note, link := strings.TrimSpace(in.Title), trimmed(in.Note), trimmed(in.URL)
	if err := validateItemFields(&title, note, link, true); err != nil {
		return nil, err
	}
	if _, err := s.ownedList(ctx, viewer, listID); err != nil {
		return nil, err
	}
	return s.store.AddItem(ctx, listID, title, note, link)
}

func (s *ListService) UpdateItem(ctx context.Context, viewer *models.User, listID, itemID uuid.UUID, patch store.ItemPatch) error {
	patch = store.ItemPatch{Title: trimmed(patch.Title), Note: trimmed(patch.Note), URL: trimmed(patch.URL)}
	if err := validateItemFields(patch.Title, patch.Note, patch.URL, false); err != nil {
		return err
	}
	if _, err := s.ownedList(ctx, viewer, listID); err != nil {
		return err
	}
	return s.store.UpdateItem(ctx, listID, itemID, patch)
}

func (s *ListService) SetItemStatus(ctx context.Context, viewer *models.User, listID, itemID uuid.UUID, status models.ItemStatus) error {
	status = models.ItemStatus(strings.ToLower(strings.TrimSpace(string(status))))
	if !status.Valid() {
		return fmt.Errorf("%w: status must be %q or %q", ErrInvalidInput, models.ItemStatusActive, models.ItemStatusDone)
	}
	if _, err := s.ownedList(ctx, viewer, listID); err != nil {
		return err
	}
	return s.store.SetItemStatus(ctx, listID, itemID, status)
}

// ownedList loads the list and fails before any write unless the viewer owns it.
func (s *ListService) ownedList(ctx context.Context, viewer *models.User, listID uuid.UUID) (*models.List, error) {
	list, err := s.store.GetList(ctx, listID)
	if err != nil {
		return nil, err
	}
	if list.OwnerID != viewer.ID {
		return nil, ErrNotListOwner
	}
	return list, nil
}
