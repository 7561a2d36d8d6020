package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// PreferenceProfile holds a user's ingredient avoidance list. One row per
// user, enforced by the unique index on UserID.
type PreferenceProfile struct {
	ID                 uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	UserID             uuid.UUID        `gorm:"type:uuid;not null;uniqueIndex" json:"user_id"`
	IngredientsToAvoid JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients_to_avoid"`
	CreatedAt          time.Time        `json:"created_at"`
	UpdatedAt          time.Time        `json:"updated_at"`
}

func (p *PreferenceProfile) BeforeCreate(tx *gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
