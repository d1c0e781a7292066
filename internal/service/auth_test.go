package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/forkful/menuboard-v2/backend/internal/errs"
	"github.com/forkful/menuboard-v2/backend/internal/models"
	"github.com/forkful/menuboard-v2/backend/internal/testhelpers"
)

const testSecret = "unit-test-jwt-secret"

func TestRegisterAndLogin(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := NewAuthService(db, testSecret)

	token, err := svc.Register(context.Background(), "staff@example.com", "hunter2hunter2")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	subject, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "staff@example.com", subject.Email)
	assert.False(t, subject.Admin)

	loginToken, err := svc.Login(context.Background(), "staff@example.com", "hunter2hunter2")
	require.NoError(t, err)
	loginSubject, err := svc.ValidateToken(loginToken)
	require.NoError(t, err)
	assert.Equal(t, subject.UserID, loginSubject.UserID)
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := NewAuthService(db, testSecret)

	_, err := svc.Register(context.Background(), "staff@example.com", "hunter2hunter2")
	require.NoError(t, err)

	_, err = svc.Register(context.Background(), "staff@example.com", "anotherpassword")
	assert.ErrorIs(t, err, errs.ErrConflict)
}

func TestRegisterValidation(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := NewAuthService(db, testSecret)

	_, err := svc.Register(context.Background(), "", "short")
	ve, ok := errs.AsValidation(err)
	require.True(t, ok)
	assert.Contains(t, ve.Fields, "email")
	assert.Contains(t, ve.Fields, "password")
}

func TestLoginInvalidCredentials(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := NewAuthService(db, testSecret)

	_, err := svc.Register(context.Background(), "staff@example.com", "hunter2hunter2")
	require.NoError(t, err)

	_, err = svc.Login(context.Background(), "staff@example.com", "wrong-password")
	assert.ErrorIs(t, err, errs.ErrUnauthenticated)

	_, err = svc.Login(context.Background(), "nobody@example.com", "hunter2hunter2")
	assert.ErrorIs(t, err, errs.ErrUnauthenticated)
}

func TestValidateTokenRejectsGarbage(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := NewAuthService(db, testSecret)

	_, err := svc.ValidateToken("not.a.token")
	assert.ErrorIs(t, err, errs.ErrUnauthenticated)
}

func TestAdminClaimTravelsInToken(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := NewAuthService(db, testSecret)

	_, err := svc.Register(context.Background(), "admin@example.com", "hunter2hunter2")
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.User{}).
		Where("email = ?", "admin@example.com").
		Update("is_admin", true).Error)

	token, err := svc.Login(context.Background(), "admin@example.com", "hunter2hunter2")
	require.NoError(t, err)

	subject, err := svc.ValidateToken(token)
	require.NoError(t, err)
	assert.True(t, subject.Admin)
}

func TestUpsertBySubjectIsIdempotent(t *testing.T) {
	db := testhelpers.SetupSQLite(t)
	svc := NewAuthService(db, testSecret)

	first, err := svc.UpsertBySubject(context.Background(), "idp|abc123", "new@example.com")
	require.NoError(t, err)

	second, err := svc.UpsertBySubject(context.Background(), "idp|abc123", "new@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.User{}).Count(&count).Error)
	assert.EqualValues(t, 1, count)

	// A changed email refreshes the row in place.
	third, err := svc.UpsertBySubject(context.Background(), "idp|abc123", "renamed@example.com")
	require.NoError(t, err)
	assert.Equal(t, first.ID, third.ID)
	assert.Equal(t, "renamed@example.com", third.Email)
}
