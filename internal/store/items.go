package store

import (
	"context"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/listshare/internal/models"
	"github.com/google/uuid"
)

// ItemPatch holds the fields to change; nil leaves a field alone and an
// empty note or url clears it.
type ItemPatch struct {
	Title *string
	Note  *string
	URL   *string
}

func (p ItemPatch) Empty() bool {
	return p.Title == nil && p.Note == nil && p.URL == nil
}

func (s *Store) AddItem(ctx context.Context, listID uuid.UUID, title string, note, url *string) (*models.Item, error) {
	item := &models.Item{
		ListID: listID,
		Title:  title,
		Note:   nonEmpty(note),
		URL:    nonEmpty(url),
		Status: models.ItemStatusActive,
	}
	if err := s.conn(ctx).Create(item).Error; err != nil {
		return nil, fmt.Errorf("create item: %w", err)
	}
	return item, nil
}

func (s *Store) GetItem(ctx context.Context, listID, itemID uuid.UUID) (*models.Item, error) {
	var items []models.Item
	err := s.conn(ctx).Where("id = ? AND list_id = ?", itemID, listID).Limit(1).Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("load item: %w", err)
	}
	if len(items) == 0 {
		return nil, ErrItemNotFound
	}
	return &items[0], nil
}

// UpdateItem applies patch to the item, matching on both item and list id.
func (s *Store) UpdateItem(ctx context.Context, listID, itemID uuid.UUID, patch ItemPatch) error {
	if patch.Empty() {
		return nil
	}
	updates := map[string]any{}
	if patch.Title != nil {
		updates["title"] = *patch.Title
	}
	if patch.Note != nil {
		updates["note"] = nonEmpty(patch.Note)
	}
	if patch.URL != nil {
		updates["url"] = nonEmpty(patch.URL)
	}

	result := s.conn(ctx).Model(&models.Item{}).
		Where("id = ? AND list_id = ?", itemID, listID).
		Updates(updates)
	if result.Error != nil {
		return fmt.Errorf("update item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (s *Store) SetItemStatus(ctx context.Context, listID, itemID uuid.UUID, status models.ItemStatus) error {
	result := s.conn(ctx).Model(&models.Item{}).
		Where("id = ? AND list_id = ?", itemID, listID).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("set item status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrItemNotFound
	}
	return nil
}

// GetItemsByList returns the list's items with status, newest first.
// order_index is not used for ordering.
func (s *Store) GetItemsByList(ctx context.Context, listID uuid.UUID, status models.ItemStatus) ([]models.Item, error) {
	var items []models.Item
	err := s.conn(ctx).
		Where("list_id = ? AND status = ?", listID, status).
		Order("created_at DESC").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("list items: %w", err)
	}
	return items, nil
}

// GetSourceItem loads an item with its list and owner.
func (s *Store) GetSourceItem(ctx context.Context, itemID uuid.UUID) (*models.SourceItem, error) {
	var rows []models.SourceItem
	err := s.conn(ctx).Table("items").
		Select(`items.id AS item_id, items.list_id AS list_id, lists.owner_id AS owner_id,
			items.title AS title, items.note AS note, items.url AS url,
			lists.title AS list_title, lists.type AS list_type, users.handle AS owner_handle`).
		Joins("JOIN lists ON lists.id = items.list_id").
		Joins("JOIN users ON users.id = lists.owner_id").
		Where("items.id = ?", itemID).
		Limit(1).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("load source item: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrItemNotFound
	}
	return &rows[0], nil
}

func nonEmpty(s *string) *string {
	if s == nil || *s == "" {
		return nil
	}
	return s
}
