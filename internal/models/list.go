package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

const VisibilityPublic = "public"

// List is an ordered-by-recency collection of items owned by one user.
// Type is the free-text category used to route bookmarks.
type List struct {
	ID         uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	OwnerID    uuid.UUID `gorm:"type:uuid;not null;index" json:"owner_id"`
	Owner      *User     `gorm:"foreignKey:OwnerID;constraint:OnDelete:CASCADE" json:"-"`
	Title      string    `gorm:"size:200;not null" json:"title"`
	Type       string    `gorm:"size:50;not null;index" json:"type"`
	Visibility string    `gorm:"size:20;not null;default:'public'" json:"visibility"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

func (l *List) BeforeCreate(_ *gorm.DB) error {
	if l.ID == uuid.Nil {
		l.ID = uuid.New()
	}
	if l.Visibility == "" {
		l.Visibility = VisibilityPublic
	}
	return nil
}

// ListSummary is a list row joined with its owner and item counts.
type ListSummary struct {
	ID               uuid.UUID `json:"id"`
	OwnerID          uuid.UUID `json:"owner_id"`
	Title            string    `json:"title"`
	Type             string    `json:"type"`
	Visibility       string    `json:"visibility"`
	OwnerHandle      string    `json:"owner_handle"`
	OwnerDisplayName *string   `json:"owner_display_name,omitempty"`
	ActiveCount      int64     `json:"active_count"`
	DoneCount        int64     `json:"done_count"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
