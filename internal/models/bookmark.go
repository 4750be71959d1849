package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Bookmark is the audit record of one item copy. The source and created
// ids are plain columns so the record survives deletion of those rows.
type Bookmark struct {
	ID            uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	UserID        uuid.UUID `gorm:"type:uuid;not null;index" json:"user_id"`
	User          *User     `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"-"`
	SourceItemID  uuid.UUID `gorm:"type:uuid;not null;index" json:"source_item_id"`
	SourceListID  uuid.UUID `gorm:"type:uuid;not null" json:"source_list_id"`
	SourceUserID  uuid.UUID `gorm:"type:uuid;not null" json:"source_user_id"`
	CreatedItemID uuid.UUID `gorm:"type:uuid;not null" json:"created_item_id"`
	CreatedAt     time.Time `json:"created_at"`
}

func (b *Bookmark) BeforeCreate(_ *gorm.DB) error {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	return nil
}
