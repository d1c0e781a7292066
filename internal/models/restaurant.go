package models

import (
	"regexp"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Theme is the closed set of presentation identifiers a restaurant may use.
type Theme string

const (
	ThemeClassic Theme = "classic"
	ThemeModern  Theme = "modern"
	ThemeRustic  Theme = "rustic"
	ThemeMinimal Theme = "minimal"
)

// ValidTheme reports whether t is one of the known themes.
func ValidTheme(t Theme) bool {
	switch t {
	case ThemeClassic, ThemeModern, ThemeRustic, ThemeMinimal:
		return true
	}
	return false
}

// SlugPattern constrains restaurant slugs on every write.
var SlugPattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// Restaurant is a tenant: one restaurant's isolated slice of menu data.
// Deleting a restaurant removes all of its categories and menu items.
type Restaurant struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	Slug        string    `gorm:"size:100;uniqueIndex;not null" json:"slug"`
	Name        string    `gorm:"size:255;not null" json:"name"`
	Address     string    `gorm:"size:255" json:"address"`
	Country     string    `gorm:"size:100" json:"country"`
	FoodType    string    `gorm:"size:100" json:"food_type"`
	Phone       string    `gorm:"size:50" json:"phone"`
	Description string    `gorm:"type:text" json:"description"`
	LogoURL     string    `gorm:"size:255" json:"logo_url"`
	Currency    string    `gorm:"size:3;not null;default:'USD'" json:"currency"`
	IsActive    bool      `gorm:"not null;default:false" json:"is_active"`
	IsDisplayed bool      `gorm:"not null;default:false" json:"is_displayed"`
	Theme       Theme     `gorm:"size:50;not null;default:'classic'" json:"theme"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	Categories []Category `gorm:"foreignKey:RestaurantID;constraint:OnDelete:CASCADE" json:"categories,omitempty"`
}

func (r *Restaurant) BeforeCreate(tx *gorm.DB) error {
	if r.ID == uuid.Nil {
		r.ID = uuid.New()
	}
	return nil
}
