package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/forkful/menuboard-v2/backend/internal/errs"
	"github.com/forkful/menuboard-v2/backend/internal/models"
)

// AssignmentInput is the shaped payload for assigning a user to a restaurant.
type AssignmentInput struct {
	UserID      uuid.UUID `json:"user_id"`
	AccessLevel string    `json:"access_level"`
}

// AssignmentService manages the user-restaurant links that are the sole
// authorization source for non-admin subjects. All operations here sit
// behind the admin gate.
type AssignmentService struct {
	db *gorm.DB
}

func NewAssignmentService(db *gorm.DB) *AssignmentService {
	return &AssignmentService{db: db}
}

// Upsert assigns a user to a restaurant. Re-assigning the same pair is
// idempotent: the existing row keeps its identity and only the access level
// is refreshed.
func (s *AssignmentService) Upsert(ctx context.Context, restaurantID uuid.UUID, in *AssignmentInput) (*models.Assignment, error) {
	fields := map[string]string{}
	if in.UserID == uuid.Nil {
		fields["user_id"] = "is required"
	}
	level := models.AccessLevel(in.AccessLevel)
	if level == "" {
		level = models.AccessEditor
	} else if !models.ValidAccessLevel(level) {
		fields["access_level"] = fmt.Sprintf("unknown access level %q", in.AccessLevel)
	}
	if len(fields) > 0 {
		return nil, errs.Validation(fields)
	}

	var user models.User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", in.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, errs.Store(err)
	}
	var restaurant models.Restaurant
	if err := s.db.WithContext(ctx).First(&restaurant, "id = ?", restaurantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, errs.Store(err)
	}

	var assignment models.Assignment
	err := s.db.WithContext(ctx).
		Where("user_id = ? AND restaurant_id = ?", in.UserID, restaurantID).
		First(&assignment).Error
	switch {
	case err == nil:
		if assignment.AccessLevel != level {
			assignment.AccessLevel = level
			if err := s.db.WithContext(ctx).Model(&assignment).Update("access_level", level).Error; err != nil {
				return nil, translateWriteError(err)
			}
		}
		return &assignment, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		assignment = models.Assignment{
			ID:           uuid.New(),
			UserID:       in.UserID,
			RestaurantID: restaurantID,
			AccessLevel:  level,
		}
		if err := s.db.WithContext(ctx).Create(&assignment).Error; err != nil {
			return nil, translateWriteError(err)
		}
		return &assignment, nil
	default:
		return nil, errs.Store(err)
	}
}

// Revoke removes a user's assignment to a restaurant.
func (s *AssignmentService) Revoke(ctx context.Context, restaurantID, userID uuid.UUID) error {
	result := s.db.WithContext(ctx).
		Where("user_id = ? AND restaurant_id = ?", userID, restaurantID).
		Delete(&models.Assignment{})
	if result.Error != nil {
		return errs.Store(result.Error)
	}
	if result.RowsAffected == 0 {
		return errs.ErrNotFound
	}
	return nil
}

// ListByRestaurant returns every assignment for one restaurant.
func (s *AssignmentService) ListByRestaurant(ctx context.Context, restaurantID uuid.UUID) ([]models.Assignment, error) {
	var assignments []models.Assignment
	err := s.db.WithContext(ctx).
		Where("restaurant_id = ?", restaurantID).
		Order("created_at, id").
		Find(&assignments).Error
	if err != nil {
		return nil, errs.Store(err)
	}
	return assignments, nil
}

// ListByUser returns a user's assignments with restaurants preloaded; it
// backs the staff "my restaurants" view.
func (s *AssignmentService) ListByUser(ctx context.Context, userID uuid.UUID) ([]models.Assignment, error) {
	var assignments []models.Assignment
	err := s.db.WithContext(ctx).
		Preload("Restaurant").
		Where("user_id = ?", userID).
		Order("created_at, id").
		Find(&assignments).Error
	if err != nil {
		return nil, errs.Store(err)
	}
	return assignments, nil
}
