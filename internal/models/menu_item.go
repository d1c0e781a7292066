package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// MenuItem belongs to exactly one category of exactly one restaurant; its
// RestaurantID always equals its category's RestaurantID. Price is a decimal,
// never binary floating point, so currency amounts round-trip exactly.
type MenuItem struct {
	ID           uuid.UUID       `gorm:"type:uuid;primaryKey" json:"id"`
	RestaurantID uuid.UUID       `gorm:"type:uuid;not null;index" json:"restaurant_id"`
	CategoryID   uuid.UUID       `gorm:"type:uuid;not null;index" json:"category_id"`
	Name         string          `gorm:"size:255;not null" json:"name"`
	Description  string          `gorm:"type:text" json:"description"`
	Ingredients  string          `gorm:"type:text" json:"ingredients"`
	Price        decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	Dietary      DietaryLabelSet `gorm:"type:jsonb;not null;default:'[]'" json:"dietary"`
	ImageURL     string          `gorm:"size:255" json:"image_url"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

func (m *MenuItem) BeforeCreate(tx *gorm.DB) error {
	if m.ID == uuid.Nil {
		m.ID = uuid.New()
	}
	return nil
}
