package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/forkful/menuboard-v2/backend/internal/cache"
	"github.com/forkful/menuboard-v2/backend/internal/errs"
	"github.com/forkful/menuboard-v2/backend/internal/models"
)

// RestaurantInput carries an already-shaped create/update request. The
// handler layer binds and types the payload; this layer owns the invariants.
type RestaurantInput struct {
	Slug        string `json:"slug"`
	Name        string `json:"name"`
	Address     string `json:"address"`
	Country     string `json:"country"`
	FoodType    string `json:"food_type"`
	Phone       string `json:"phone"`
	Description string `json:"description"`
	LogoURL     string `json:"logo_url"`
	Currency    string `json:"currency"`
	IsActive    bool   `json:"is_active"`
	IsDisplayed bool   `json:"is_displayed"`
	Theme       string `json:"theme"`
}

// RestaurantService guards every tenant write: slug format and uniqueness,
// theme enumeration, and transactional cascade on delete.
type RestaurantService struct {
	db    *gorm.DB
	cache *cache.MenuCache
}

func NewRestaurantService(db *gorm.DB, menuCache *cache.MenuCache) *RestaurantService {
	return &RestaurantService{db: db, cache: menuCache}
}

func (s *RestaurantService) validateInput(in *RestaurantInput) map[string]string {
	fields := map[string]string{}
	if in.Name == "" {
		fields["name"] = "is required"
	}
	if in.Slug == "" {
		fields["slug"] = "is required"
	} else if !models.SlugPattern.MatchString(in.Slug) {
		fields["slug"] = "must contain only lowercase letters, digits and hyphens"
	}
	if in.Theme != "" && !models.ValidTheme(models.Theme(in.Theme)) {
		fields["theme"] = fmt.Sprintf("unknown theme %q", in.Theme)
	}
	if in.Currency != "" && len(in.Currency) != 3 {
		fields["currency"] = "must be a 3-letter code"
	}
	return fields
}

// slugTaken reports whether another restaurant already owns slug. excludeID
// is the updating row's own id, or uuid.Nil on create.
func (s *RestaurantService) slugTaken(ctx context.Context, slug string, excludeID uuid.UUID) (bool, error) {
	var count int64
	query := s.db.WithContext(ctx).Model(&models.Restaurant{}).Where("slug = ?", slug)
	if excludeID != uuid.Nil {
		query = query.Where("id <> ?", excludeID)
	}
	if err := query.Count(&count).Error; err != nil {
		return false, errs.Store(err)
	}
	return count > 0, nil
}

// Create inserts a new restaurant. The slug check here is advisory; the
// unique index is the final authority and a racing insert surfaces as
// Conflict through translateWriteError.
func (s *RestaurantService) Create(ctx context.Context, in *RestaurantInput) (*models.Restaurant, error) {
	if fields := s.validateInput(in); len(fields) > 0 {
		return nil, errs.Validation(fields)
	}

	taken, err := s.slugTaken(ctx, in.Slug, uuid.Nil)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: slug %q already in use", errs.ErrConflict, in.Slug)
	}

	restaurant := models.Restaurant{
		ID:          uuid.New(),
		Slug:        in.Slug,
		Name:        in.Name,
		Address:     in.Address,
		Country:     in.Country,
		FoodType:    in.FoodType,
		Phone:       in.Phone,
		Description: in.Description,
		LogoURL:     in.LogoURL,
		Currency:    in.Currency,
		IsActive:    in.IsActive,
		IsDisplayed: in.IsDisplayed,
		Theme:       models.Theme(in.Theme),
	}
	if restaurant.Currency == "" {
		restaurant.Currency = "USD"
	}
	if restaurant.Theme == "" {
		restaurant.Theme = models.ThemeClassic
	}

	if err := s.db.WithContext(ctx).Create(&restaurant).Error; err != nil {
		return nil, translateWriteError(err)
	}
	return &restaurant, nil
}

// Update rewrites a restaurant. A new slug is rejected if any other
// restaurant owns it (self-exclusion by id).
func (s *RestaurantService) Update(ctx context.Context, id uuid.UUID, in *RestaurantInput) (*models.Restaurant, error) {
	if fields := s.validateInput(in); len(fields) > 0 {
		return nil, errs.Validation(fields)
	}

	existing, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	taken, err := s.slugTaken(ctx, in.Slug, id)
	if err != nil {
		return nil, err
	}
	if taken {
		return nil, fmt.Errorf("%w: slug %q already in use", errs.ErrConflict, in.Slug)
	}

	oldSlug := existing.Slug
	updates := map[string]interface{}{
		"slug":         in.Slug,
		"name":         in.Name,
		"address":      in.Address,
		"country":      in.Country,
		"food_type":    in.FoodType,
		"phone":        in.Phone,
		"description":  in.Description,
		"logo_url":     in.LogoURL,
		"is_active":    in.IsActive,
		"is_displayed": in.IsDisplayed,
	}
	if in.Currency != "" {
		updates["currency"] = in.Currency
	}
	if in.Theme != "" {
		updates["theme"] = in.Theme
	}

	if err := s.db.WithContext(ctx).Model(&models.Restaurant{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, translateWriteError(err)
	}

	s.cache.Invalidate(ctx, oldSlug)
	if in.Slug != oldSlug {
		s.cache.Invalidate(ctx, in.Slug)
	}
	return s.Get(ctx, id)
}

// Delete removes a restaurant and, in the same transaction, every category,
// menu item and assignment that references it. Dependent rows never outlive
// their parent.
func (s *RestaurantService) Delete(ctx context.Context, id uuid.UUID) error {
	restaurant, err := s.Get(ctx, id)
	if err != nil {
		return err
	}

	err = s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("restaurant_id = ?", id).Delete(&models.MenuItem{}).Error; err != nil {
			return err
		}
		if err := tx.Where("restaurant_id = ?", id).Delete(&models.Category{}).Error; err != nil {
			return err
		}
		if err := tx.Where("restaurant_id = ?", id).Delete(&models.Assignment{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Restaurant{}, "id = ?", id).Error
	})
	if err != nil {
		return errs.Store(err)
	}

	s.cache.Invalidate(ctx, restaurant.Slug)
	return nil
}

// Get fetches a restaurant by id.
func (s *RestaurantService) Get(ctx context.Context, id uuid.UUID) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := s.db.WithContext(ctx).First(&restaurant, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, errs.Store(err)
	}
	return &restaurant, nil
}

// GetBySlug fetches a restaurant by slug with its menu hierarchy preloaded.
// With publicOnly set, an inactive restaurant is reported as NotFound — the
// public surface never distinguishes "hidden" from "missing".
func (s *RestaurantService) GetBySlug(ctx context.Context, slug string, publicOnly bool) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	err := s.db.WithContext(ctx).
		Preload("Categories", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order, name")
		}).
		Preload("Categories.MenuItems", func(db *gorm.DB) *gorm.DB {
			return db.Order("name")
		}).
		First(&restaurant, "slug = ?", strings.ToLower(slug)).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, errs.Store(err)
	}
	if publicOnly && !restaurant.IsActive {
		return nil, errs.ErrNotFound
	}
	return &restaurant, nil
}

// ListFeatured returns active restaurants flagged for the featured listing,
// in deterministic name order.
func (s *RestaurantService) ListFeatured(ctx context.Context) ([]models.Restaurant, error) {
	var restaurants []models.Restaurant
	err := s.db.WithContext(ctx).
		Where("is_active = ? AND is_displayed = ?", true, true).
		Order("name, id").
		Find(&restaurants).Error
	if err != nil {
		return nil, errs.Store(err)
	}
	return restaurants, nil
}
