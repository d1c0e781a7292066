package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// AccessLevel is the role a user holds within one restaurant. Every level
// currently grants the same mutation rights; the level is persisted so
// finer-grained enforcement can be added without a schema change.
type AccessLevel string

const (
	AccessOwner  AccessLevel = "owner"
	AccessEditor AccessLevel = "editor"
	AccessViewer AccessLevel = "viewer"
)

// ValidAccessLevel reports whether l is one of the known levels.
func ValidAccessLevel(l AccessLevel) bool {
	switch l {
	case AccessOwner, AccessEditor, AccessViewer:
		return true
	}
	return false
}

// Assignment links a user to a restaurant and is the sole authorization
// source for non-admin subjects. Re-assigning is an idempotent upsert;
// deleting the row revokes access.
type Assignment struct {
	ID           uuid.UUID   `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_assignment_user_restaurant" json:"user_id"`
	RestaurantID uuid.UUID   `gorm:"type:uuid;not null;uniqueIndex:idx_assignment_user_restaurant" json:"restaurant_id"`
	AccessLevel  AccessLevel `gorm:"size:20;not null;default:'editor'" json:"access_level"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`

	Restaurant Restaurant `gorm:"foreignKey:RestaurantID" json:"restaurant,omitempty"`
}

func (a *Assignment) BeforeCreate(tx *gorm.DB) error {
	if a.ID == uuid.Nil {
		a.ID = uuid.New()
	}
	return nil
}
