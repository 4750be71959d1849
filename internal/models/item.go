package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ItemStatus string

const (
	ItemStatusActive ItemStatus = "active"
	ItemStatusDone   ItemStatus = "done"
)

func (s ItemStatus) Valid() bool {
	return s == ItemStatusActive || s == ItemStatusDone
}

type Item struct {
	ID         uuid.UUID  `gorm:"type:uuid;primaryKey" json:"id"`
	ListID     uuid.UUID  `gorm:"type:uuid;not null;index" json:"list_id"`
	List       *List      `gorm:"foreignKey:ListID;constraint:OnDelete:CASCADE" json:"-"`
	Title      string     `gorm:"size:200;not null" json:"title"`
	Note       *string    `gorm:"type:text" json:"note,omitempty"`
	URL        *string    `gorm:"type:text" json:"url,omitempty"`
	Status     ItemStatus `gorm:"size:10;not null;default:'active';index" json:"status"`
	OrderIndex int        `gorm:"not null;default:0" json:"order_index"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}

func (i *Item) BeforeCreate(_ *gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	if i.Status == "" {
		i.Status = ItemStatusActive
	}
	return nil
}

// SourceItem is an item joined with its list and owner, as needed to
// copy it into another user's lists.
type SourceItem struct {
	ItemID      uuid.UUID
	ListID      uuid.UUID
	OwnerID     uuid.UUID
	Title       string
	Note        *string
	URL         *string
	ListTitle   string
	ListType    string
	OwnerHandle string
}
