package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/ahmetcoskunkizilkaya/listshare/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

const listSummaryColumns = `lists.id AS id, lists.owner_id AS owner_id, lists.title AS title,
	lists.type AS type, lists.visibility AS visibility,
	users.handle AS owner_handle, users.display_name AS owner_display_name,
	(SELECT COUNT(*) FROM items WHERE items.list_id = lists.id AND items.status = 'active') AS active_count,
	(SELECT COUNT(*) FROM items WHERE items.list_id = lists.id AND items.status = 'done') AS done_count,
	lists.created_at AS created_at, lists.updated_at AS updated_at`

func (s *Store) CreateList(ctx context.Context, ownerID uuid.UUID, title, listType string) (*models.List, error) {
	list := &models.List{OwnerID: ownerID, Title: title, Type: listType}
	if err := s.conn(ctx).Create(list).Error; err != nil {
		return nil, fmt.Errorf("create list: %w", err)
	}
	return list, nil
}

func (s *Store) GetList(ctx context.Context, id uuid.UUID) (*models.List, error) {
	var list models.List
	err := s.conn(ctx).Where("id = ?", id).First(&list).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrListNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load list: %w", err)
	}
	return &list, nil
}

func (s *Store) summaries(ctx context.Context) *gorm.DB {
	return s.conn(ctx).Table("lists").
		Select(listSummaryColumns).
		Joins("JOIN users ON users.id = lists.owner_id")
}

// GetListsByOwner returns the owner's lists with item counts, newest first.
func (s *Store) GetListsByOwner(ctx context.Context, ownerID uuid.UUID) ([]models.ListSummary, error) {
	var out []models.ListSummary
	err := s.summaries(ctx).
		Where("lists.owner_id = ?", ownerID).
		Order("lists.created_at DESC").
		Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("list lists: %w", err)
	}
	return out, nil
}

func (s *Store) GetListSummary(ctx context.Context, id uuid.UUID) (*models.ListSummary, error) {
	var out []models.ListSummary
	err := s.summaries(ctx).Where("lists.id = ?", id).Limit(1).Scan(&out).Error
	if err != nil {
		return nil, fmt.Errorf("load list summary: %w", err)
	}
	if len(out) == 0 {
		return nil, ErrListNotFound
	}
	return &out[0], nil
}

// GetOrCreateListByType returns the owner's most recent list of listType,
// creating one titled fallbackTitle when there is none.
func (s *Store) GetOrCreateListByType(ctx context.Context, ownerID uuid.UUID, listType, fallbackTitle string) (*models.List, bool, error) {
	var lists []models.List
	err := s.conn(ctx).
		Where("owner_id = ? AND type = ?", ownerID, listType).
		Order("created_at DESC").
		Limit(1).
		Find(&lists).Error
	if err != nil {
		return nil, false, fmt.Errorf("find list by type: %w", err)
	}
	if len(lists) > 0 {
		return &lists[0], false, nil
	}
	list, err := s.CreateList(ctx, ownerID, fallbackTitle, listType)
	if err != nil {
		return nil, false, err
	}
	return list, true, nil
}
