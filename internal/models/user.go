package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a person known to the server. AuthProviderID is the stable
// subject assigned by the identity layer; Handle is the public name.
type User struct {
	ID             uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	AuthProviderID string    `gorm:"size:255;not null;uniqueIndex" json:"-"`
	Handle         string    `gorm:"size:64;not null;uniqueIndex" json:"handle"`
	DisplayName    *string   `gorm:"size:255" json:"display_name,omitempty"`
	Bio            *string   `gorm:"type:text" json:"bio,omitempty"`
	AvatarURL      *string   `gorm:"type:text" json:"avatar_url,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == uuid.Nil {
		u.ID = uuid.New()
	}
	return nil
}
