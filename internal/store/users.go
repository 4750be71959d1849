package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ahmetcoskunkizilkaya/listshare/internal/models"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

func (s *Store) GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	return s.findUser(ctx, "id = ?", id)
}

func (s *Store) GetUserByAuthProviderID(ctx context.Context, authProviderID string) (*models.User, error) {
	return s.findUser(ctx, "auth_provider_id = ?", authProviderID)
}

func (s *Store) GetUserByHandle(ctx context.Context, handle string) (*models.User, error) {
	return s.findUser(ctx, "handle = ?", handle)
}

func (s *Store) findUser(ctx context.Context, query string, arg any) (*models.User, error) {
	var user models.User
	err := s.conn(ctx).Where(query, arg).First(&user).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("load user: %w", err)
	}
	return &user, nil
}

// HandleTakenByOther reports whether handle belongs to a user with a
// different auth provider id.
func (s *Store) HandleTakenByOther(ctx context.Context, handle, authProviderID string) (bool, error) {
	var count int64
	err := s.conn(ctx).Model(&models.User{}).
		Where("handle = ? AND auth_provider_id <> ?", handle, authProviderID).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check handle: %w", err)
	}
	return count > 0, nil
}

func (s *Store) CreateUser(ctx context.Context, user *models.User) error {
	if err := s.conn(ctx).Create(user).Error; err != nil {
		if constraint, ok := uniqueViolation(err); ok {
			if strings.Contains(constraint, "handle") {
				return ErrHandleTaken
			}
			return ErrUserExists
		}
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

// UpdateUser applies the given column changes.
func (s *Store) UpdateUser(ctx context.Context, id uuid.UUID, updates map[string]any) error {
	if len(updates) == 0 {
		return nil
	}
	result := s.conn(ctx).Model(&models.User{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		if constraint, ok := uniqueViolation(result.Error); ok && strings.Contains(constraint, "handle") {
			return ErrHandleTaken
		}
		return fmt.Errorf("update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrUserNotFound
	}
	return nil
}

// SearchUsers matches query case-insensitively as a substring of handle
// or display name, newest accounts first.
func (s *Store) SearchUsers(ctx context.Context, query string, limit int) ([]models.User, error) {
	pattern := "%" + escapeLike(strings.ToLower(query)) + "%"
	var users []models.User
	err := s.conn(ctx).
		Where(`LOWER(handle) LIKE ? ESCAPE '\' OR LOWER(COALESCE(display_name, '')) LIKE ? ESCAPE '\'`, pattern, pattern).
		Order("created_at DESC").
		Limit(limit).
		Find(&users).Error
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}
	return users, nil
}
