package service

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/forkful/menuboard-v2/backend/internal/errs"
	"github.com/forkful/menuboard-v2/backend/internal/models"
	"github.com/forkful/menuboard-v2/backend/internal/testhelpers"
)

func newRestaurantService(t *testing.T) (*RestaurantService, *gorm.DB) {
	db := testhelpers.SetupSQLite(t)
	return NewRestaurantService(db, nil), db
}

func TestCreateRestaurantDefaults(t *testing.T) {
	svc, _ := newRestaurantService(t)

	restaurant, err := svc.Create(context.Background(), &RestaurantInput{
		Slug: "pizza-place",
		Name: "Pizza Place",
	})
	require.NoError(t, err)
	assert.Equal(t, "USD", restaurant.Currency)
	assert.Equal(t, models.ThemeClassic, restaurant.Theme)
	assert.False(t, restaurant.IsActive)
}

func TestCreateRestaurantValidation(t *testing.T) {
	svc, _ := newRestaurantService(t)

	_, err := svc.Create(context.Background(), &RestaurantInput{
		Slug:     "Bad Slug!",
		Theme:    "neon",
		Currency: "DOLLARS",
	})
	ve, ok := errs.AsValidation(err)
	require.True(t, ok)

	// Every violated field is reported, not just the first.
	assert.Contains(t, ve.Fields, "name")
	assert.Contains(t, ve.Fields, "slug")
	assert.Contains(t, ve.Fields, "theme")
	assert.Contains(t, ve.Fields, "currency")
}

func TestCreateRestaurantDuplicateSlug(t *testing.T) {
	svc, db := newRestaurantService(t)

	original, err := svc.Create(context.Background(), &RestaurantInput{Slug: "pizza-place", Name: "Pizza Place"})
	require.NoError(t, err)

	_, err = svc.Create(context.Background(), &RestaurantInput{Slug: "pizza-place", Name: "Imposter"})
	assert.ErrorIs(t, err, errs.ErrConflict)

	// The existing row is untouched.
	var kept models.Restaurant
	require.NoError(t, db.First(&kept, "slug = ?", "pizza-place").Error)
	assert.Equal(t, original.ID, kept.ID)
	assert.Equal(t, "Pizza Place", kept.Name)
}

func TestUpdateRestaurantSlugSelfExclusion(t *testing.T) {
	svc, _ := newRestaurantService(t)

	first, err := svc.Create(context.Background(), &RestaurantInput{Slug: "pizza-place", Name: "Pizza Place"})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), &RestaurantInput{Slug: "tokyo-table", Name: "Tokyo Table"})
	require.NoError(t, err)

	// Keeping your own slug on update is fine.
	updated, err := svc.Update(context.Background(), first.ID, &RestaurantInput{
		Slug: "pizza-place",
		Name: "Pizza Palace",
	})
	require.NoError(t, err)
	assert.Equal(t, "Pizza Palace", updated.Name)

	// Taking another restaurant's slug is a conflict.
	_, err = svc.Update(context.Background(), first.ID, &RestaurantInput{
		Slug: "tokyo-table",
		Name: "Pizza Palace",
	})
	assert.ErrorIs(t, err, errs.ErrConflict)
}

func TestUpdateRestaurantNotFound(t *testing.T) {
	svc, _ := newRestaurantService(t)

	_, err := svc.Update(context.Background(), uuid.New(), &RestaurantInput{Slug: "ghost", Name: "Ghost"})
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestDeleteRestaurantCascades(t *testing.T) {
	svc, db := newRestaurantService(t)

	restaurant, err := svc.Create(context.Background(), &RestaurantInput{Slug: "pizza-place", Name: "Pizza Place"})
	require.NoError(t, err)

	category := models.Category{ID: uuid.New(), RestaurantID: restaurant.ID, Name: "Appetizers"}
	require.NoError(t, db.Create(&category).Error)
	require.NoError(t, db.Create(&models.MenuItem{
		ID:           uuid.New(),
		RestaurantID: restaurant.ID,
		CategoryID:   category.ID,
		Name:         "Garlic Bread",
		Price:        decimal.RequireFromString("4.50"),
	}).Error)
	user := models.User{ID: uuid.New(), SubjectID: "u1"}
	require.NoError(t, db.Create(&user).Error)
	require.NoError(t, db.Create(&models.Assignment{
		ID: uuid.New(), UserID: user.ID, RestaurantID: restaurant.ID, AccessLevel: models.AccessOwner,
	}).Error)

	require.NoError(t, svc.Delete(context.Background(), restaurant.ID))

	var categories, items, assignments int64
	require.NoError(t, db.Model(&models.Category{}).Where("restaurant_id = ?", restaurant.ID).Count(&categories).Error)
	require.NoError(t, db.Model(&models.MenuItem{}).Where("restaurant_id = ?", restaurant.ID).Count(&items).Error)
	require.NoError(t, db.Model(&models.Assignment{}).Where("restaurant_id = ?", restaurant.ID).Count(&assignments).Error)
	assert.Zero(t, categories)
	assert.Zero(t, items)
	assert.Zero(t, assignments)

	err = db.First(&models.Restaurant{}, "id = ?", restaurant.ID).Error
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	// The slug is free for reuse after deletion.
	_, err = svc.Create(context.Background(), &RestaurantInput{Slug: "pizza-place", Name: "New Pizza Place"})
	assert.NoError(t, err)
}

func TestGetBySlugPublicHidesInactive(t *testing.T) {
	svc, _ := newRestaurantService(t)

	_, err := svc.Create(context.Background(), &RestaurantInput{
		Slug: "pizza-place", Name: "Pizza Place", IsActive: false,
	})
	require.NoError(t, err)

	// Public reads collapse inactive and missing into the same outcome.
	_, err = svc.GetBySlug(context.Background(), "pizza-place", true)
	assert.ErrorIs(t, err, errs.ErrNotFound)
	_, err = svc.GetBySlug(context.Background(), "no-such-place", true)
	assert.ErrorIs(t, err, errs.ErrNotFound)

	// Staff reads still see the inactive tenant.
	restaurant, err := svc.GetBySlug(context.Background(), "pizza-place", false)
	require.NoError(t, err)
	assert.Equal(t, "pizza-place", restaurant.Slug)
}

func TestListFeatured(t *testing.T) {
	svc, _ := newRestaurantService(t)

	_, err := svc.Create(context.Background(), &RestaurantInput{
		Slug: "bella-roma", Name: "Bella Roma", IsActive: true, IsDisplayed: true,
	})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), &RestaurantInput{
		Slug: "active-only", Name: "Active Only", IsActive: true,
	})
	require.NoError(t, err)
	_, err = svc.Create(context.Background(), &RestaurantInput{
		Slug: "displayed-only", Name: "Displayed Only", IsDisplayed: true,
	})
	require.NoError(t, err)

	featured, err := svc.ListFeatured(context.Background())
	require.NoError(t, err)
	require.Len(t, featured, 1)
	assert.Equal(t, "bella-roma", featured[0].Slug)
}
