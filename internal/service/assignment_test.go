package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/forkful/menuboard-v2/backend/internal/errs"
	"github.com/forkful/menuboard-v2/backend/internal/models"
	"github.com/forkful/menuboard-v2/backend/internal/testhelpers"
)

func newAssignmentFixture(t *testing.T) (*AssignmentService, *gorm.DB, *models.User, *models.Restaurant) {
	t.Helper()
	db := testhelpers.SetupSQLite(t)
	svc := NewAssignmentService(db)

	user := &models.User{ID: uuid.New(), SubjectID: "u1", Email: "u1@example.com"}
	require.NoError(t, db.Create(user).Error)
	restaurant := &models.Restaurant{ID: uuid.New(), Slug: "pizza-place", Name: "Pizza Place"}
	require.NoError(t, db.Create(restaurant).Error)

	return svc, db, user, restaurant
}

func TestAssignmentUpsertIsIdempotent(t *testing.T) {
	svc, db, user, restaurant := newAssignmentFixture(t)

	first, err := svc.Upsert(context.Background(), restaurant.ID, &AssignmentInput{
		UserID:      user.ID,
		AccessLevel: "editor",
	})
	require.NoError(t, err)

	// Re-assigning keeps the same row and only refreshes the level.
	second, err := svc.Upsert(context.Background(), restaurant.ID, &AssignmentInput{
		UserID:      user.ID,
		AccessLevel: "owner",
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, models.AccessOwner, second.AccessLevel)

	var count int64
	require.NoError(t, db.Model(&models.Assignment{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)
}

func TestAssignmentUpsertDefaultsToEditor(t *testing.T) {
	svc, _, user, restaurant := newAssignmentFixture(t)

	assignment, err := svc.Upsert(context.Background(), restaurant.ID, &AssignmentInput{UserID: user.ID})
	require.NoError(t, err)
	assert.Equal(t, models.AccessEditor, assignment.AccessLevel)
}

func TestAssignmentUpsertRejectsUnknownLevel(t *testing.T) {
	svc, _, user, restaurant := newAssignmentFixture(t)

	_, err := svc.Upsert(context.Background(), restaurant.ID, &AssignmentInput{
		UserID:      user.ID,
		AccessLevel: "superuser",
	})
	ve, ok := errs.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "access_level")
}

func TestAssignmentUpsertUnknownTargets(t *testing.T) {
	svc, _, user, restaurant := newAssignmentFixture(t)

	_, err := svc.Upsert(context.Background(), restaurant.ID, &AssignmentInput{UserID: uuid.New()})
	assert.ErrorIs(t, err, errs.ErrNotFound)

	_, err = svc.Upsert(context.Background(), uuid.New(), &AssignmentInput{UserID: user.ID})
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestAssignmentRevoke(t *testing.T) {
	svc, _, user, restaurant := newAssignmentFixture(t)

	_, err := svc.Upsert(context.Background(), restaurant.ID, &AssignmentInput{UserID: user.ID})
	require.NoError(t, err)

	require.NoError(t, svc.Revoke(context.Background(), restaurant.ID, user.ID))

	// Revoking twice reports the missing link.
	err = svc.Revoke(context.Background(), restaurant.ID, user.ID)
	assert.ErrorIs(t, err, errs.ErrNotFound)
}

func TestAssignmentListByUser(t *testing.T) {
	svc, db, user, restaurant := newAssignmentFixture(t)

	other := models.Restaurant{ID: uuid.New(), Slug: "tokyo-table", Name: "Tokyo Table"}
	require.NoError(t, db.Create(&other).Error)

	_, err := svc.Upsert(context.Background(), restaurant.ID, &AssignmentInput{UserID: user.ID})
	require.NoError(t, err)
	_, err = svc.Upsert(context.Background(), other.ID, &AssignmentInput{UserID: user.ID, AccessLevel: "viewer"})
	require.NoError(t, err)

	assignments, err := svc.ListByUser(context.Background(), user.ID)
	require.NoError(t, err)
	require.Len(t, assignments, 2)
	assert.Equal(t, "Pizza Place", assignments[0].Restaurant.Name)
	assert.Equal(t, "Tokyo Table", assignments[1].Restaurant.Name)
}
