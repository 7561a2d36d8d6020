package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Recipe sources. Set once at creation and never mutated afterwards.
const (
	SourceAI     = "ai"
	SourceManual = "manual"
)

// JSONBStringArray is a custom type for handling string arrays in JSONB
type JSONBStringArray []string

// Value implements the driver.Valuer interface
func (a JSONBStringArray) Value() (driver.Value, error) {
	if len(a) == 0 {
		return "[]", nil
	}
	return json.Marshal(a)
}

// Scan implements the sql.Scanner interface
func (a *JSONBStringArray) Scan(value interface{}) error {
	if value == nil {
		*a = JSONBStringArray{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		return nil
	}

	return json.Unmarshal(bytes, a)
}

// Recipe is a persisted recipe. Every query against this table is scoped
// by UserID; a row is never visible to a non-owner.
type Recipe struct {
	ID               uuid.UUID        `gorm:"type:uuid;primary_key" json:"id"`
	UserID           uuid.UUID        `gorm:"type:uuid;not null;index" json:"user_id"`
	Title            string           `gorm:"size:255;not null" json:"title"`
	Ingredients      JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"ingredients"`
	PreparationSteps JSONBStringArray `gorm:"type:jsonb;not null;default:'[]'" json:"preparation_steps"`
	Source           string           `gorm:"size:16;not null" json:"source"`
	ImageURL         string           `gorm:"size:255" json:"image_url"`
	CreatedAt        time.Time        `json:"created_at"`
	UpdatedAt        time.Time        `json:"updated_at"`
}

// BeforeCreate assigns an id when the database does not (SQLite in tests).
func (r *Recipe) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
