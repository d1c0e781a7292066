package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/forkful/menuboard-v2/backend/internal/cache"
	"github.com/forkful/menuboard-v2/backend/internal/errs"
	"github.com/forkful/menuboard-v2/backend/internal/models"
)

// CategoryInput is the shaped payload for category writes.
type CategoryInput struct {
	Name      string `json:"name"`
	SortOrder int    `json:"sort_order"`
}

// MenuItemInput is the shaped payload for menu item writes. Price arrives as
// a decimal string and Dietary as a plain list; both are validated here
// before anything touches the store.
type MenuItemInput struct {
	CategoryID  uuid.UUID `json:"category_id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Ingredients string    `json:"ingredients"`
	Price       string    `json:"price"`
	Dietary     []string  `json:"dietary"`
	ImageURL    string    `json:"image_url"`
}

// MenuService guards category and menu item writes for one restaurant:
// price and dietary-label validation, parent consistency, and transactional
// cascade when a category goes away.
type MenuService struct {
	db    *gorm.DB
	cache *cache.MenuCache
}

func NewMenuService(db *gorm.DB, menuCache *cache.MenuCache) *MenuService {
	return &MenuService{db: db, cache: menuCache}
}

func (s *MenuService) invalidate(ctx context.Context, restaurantID uuid.UUID) {
	var restaurant models.Restaurant
	if err := s.db.WithContext(ctx).Select("slug").First(&restaurant, "id = ?", restaurantID).Error; err != nil {
		return
	}
	s.cache.Invalidate(ctx, restaurant.Slug)
}

// CreateCategory adds a category to a restaurant. SortOrder is taken as
// given; duplicates and gaps are accepted and never re-sequenced.
func (s *MenuService) CreateCategory(ctx context.Context, restaurantID uuid.UUID, in *CategoryInput) (*models.Category, error) {
	if in.Name == "" {
		return nil, errs.Validation(map[string]string{"name": "is required"})
	}
	if _, err := s.restaurantExists(ctx, restaurantID); err != nil {
		return nil, err
	}

	category := models.Category{
		ID:           uuid.New(),
		RestaurantID: restaurantID,
		Name:         in.Name,
		SortOrder:    in.SortOrder,
	}
	if err := s.db.WithContext(ctx).Create(&category).Error; err != nil {
		return nil, translateWriteError(err)
	}

	s.invalidate(ctx, restaurantID)
	return &category, nil
}

// UpdateCategory rewrites a category's name and sort order.
func (s *MenuService) UpdateCategory(ctx context.Context, restaurantID, categoryID uuid.UUID, in *CategoryInput) (*models.Category, error) {
	if in.Name == "" {
		return nil, errs.Validation(map[string]string{"name": "is required"})
	}

	category, err := s.getCategory(ctx, restaurantID, categoryID)
	if err != nil {
		return nil, err
	}

	updates := map[string]interface{}{"name": in.Name, "sort_order": in.SortOrder}
	if err := s.db.WithContext(ctx).Model(category).Updates(updates).Error; err != nil {
		return nil, translateWriteError(err)
	}

	s.invalidate(ctx, restaurantID)
	return s.getCategory(ctx, restaurantID, categoryID)
}

// DeleteCategory removes a category and all of its menu items in one
// transaction; an item never outlives its category.
func (s *MenuService) DeleteCategory(ctx context.Context, restaurantID, categoryID uuid.UUID) error {
	if _, err := s.getCategory(ctx, restaurantID, categoryID); err != nil {
		return err
	}

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("category_id = ?", categoryID).Delete(&models.MenuItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Category{}, "id = ?", categoryID).Error
	})
	if err != nil {
		return errs.Store(err)
	}

	s.invalidate(ctx, restaurantID)
	return nil
}

// ListCategories returns a restaurant's categories with items, ordered
// deterministically by (sort_order, name).
func (s *MenuService) ListCategories(ctx context.Context, restaurantID uuid.UUID) ([]models.Category, error) {
	var categories []models.Category
	err := s.db.WithContext(ctx).
		Preload("MenuItems", func(db *gorm.DB) *gorm.DB { return db.Order("name") }).
		Where("restaurant_id = ?", restaurantID).
		Order("sort_order, name").
		Find(&categories).Error
	if err != nil {
		return nil, errs.Store(err)
	}
	return categories, nil
}

// validateItem collects every violated field before reporting.
func (s *MenuService) validateItem(in *MenuItemInput) (decimal.Decimal, models.DietaryLabelSet, map[string]string) {
	fields := map[string]string{}

	if in.CategoryID == uuid.Nil {
		fields["category_id"] = "is required"
	}
	if in.Name == "" {
		fields["name"] = "is required"
	}

	var price decimal.Decimal
	if in.Price == "" {
		fields["price"] = "is required"
	} else {
		parsed, err := decimal.NewFromString(in.Price)
		switch {
		case err != nil:
			fields["price"] = "must be a decimal number"
		case !parsed.IsPositive():
			fields["price"] = "must be positive"
		default:
			price = parsed
		}
	}

	labels, err := models.ParseDietaryLabels(in.Dietary)
	if err != nil {
		fields["dietary"] = err.Error()
	}

	return price, labels, fields
}

// CreateItem adds a menu item. The target category must belong to the same
// restaurant, which keeps the item's restaurant id equal to its category's.
func (s *MenuService) CreateItem(ctx context.Context, restaurantID uuid.UUID, in *MenuItemInput) (*models.MenuItem, error) {
	price, labels, fields := s.validateItem(in)
	if len(fields) > 0 {
		return nil, errs.Validation(fields)
	}

	if _, err := s.getCategory(ctx, restaurantID, in.CategoryID); err != nil {
		return nil, err
	}

	item := models.MenuItem{
		ID:           uuid.New(),
		RestaurantID: restaurantID,
		CategoryID:   in.CategoryID,
		Name:         in.Name,
		Description:  in.Description,
		Ingredients:  in.Ingredients,
		Price:        price,
		Dietary:      labels,
		ImageURL:     in.ImageURL,
	}
	if err := s.db.WithContext(ctx).Create(&item).Error; err != nil {
		return nil, translateWriteError(err)
	}

	s.invalidate(ctx, restaurantID)
	return &item, nil
}

// UpdateItem rewrites a menu item, allowing a move to another category of
// the same restaurant.
func (s *MenuService) UpdateItem(ctx context.Context, restaurantID, itemID uuid.UUID, in *MenuItemInput) (*models.MenuItem, error) {
	price, labels, fields := s.validateItem(in)
	if len(fields) > 0 {
		return nil, errs.Validation(fields)
	}

	item, err := s.getItem(ctx, restaurantID, itemID)
	if err != nil {
		return nil, err
	}
	if _, err := s.getCategory(ctx, restaurantID, in.CategoryID); err != nil {
		return nil, err
	}

	updates := map[string]interface{}{
		"category_id": in.CategoryID,
		"name":        in.Name,
		"description": in.Description,
		"ingredients": in.Ingredients,
		"price":       price,
		"dietary":     labels,
		"image_url":   in.ImageURL,
	}
	if err := s.db.WithContext(ctx).Model(item).Updates(updates).Error; err != nil {
		return nil, translateWriteError(err)
	}

	s.invalidate(ctx, restaurantID)
	return s.getItem(ctx, restaurantID, itemID)
}

// DeleteItem removes a single menu item.
func (s *MenuService) DeleteItem(ctx context.Context, restaurantID, itemID uuid.UUID) error {
	if _, err := s.getItem(ctx, restaurantID, itemID); err != nil {
		return err
	}
	if err := s.db.WithContext(ctx).Delete(&models.MenuItem{}, "id = ?", itemID).Error; err != nil {
		return errs.Store(err)
	}
	s.invalidate(ctx, restaurantID)
	return nil
}

func (s *MenuService) restaurantExists(ctx context.Context, restaurantID uuid.UUID) (*models.Restaurant, error) {
	var restaurant models.Restaurant
	if err := s.db.WithContext(ctx).First(&restaurant, "id = ?", restaurantID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, errs.Store(err)
	}
	return &restaurant, nil
}

func (s *MenuService) getCategory(ctx context.Context, restaurantID, categoryID uuid.UUID) (*models.Category, error) {
	var category models.Category
	err := s.db.WithContext(ctx).
		First(&category, "id = ? AND restaurant_id = ?", categoryID, restaurantID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, errs.Store(err)
	}
	return &category, nil
}

func (s *MenuService) getItem(ctx context.Context, restaurantID, itemID uuid.UUID) (*models.MenuItem, error) {
	var item models.MenuItem
	err := s.db.WithContext(ctx).
		First(&item, "id = ? AND restaurant_id = ?", itemID, restaurantID).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.ErrNotFound
		}
		return nil, errs.Store(err)
	}
	return &item, nil
}
