package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"github.com/forkful/menuboard-v2/backend/internal/auth"
	"github.com/forkful/menuboard-v2/backend/internal/errs"
	"github.com/forkful/menuboard-v2/backend/internal/models"
)

var ErrInvalidCredentials = fmt.Errorf("%w: invalid credentials", errs.ErrUnauthenticated)

// AuthService is the identity-provider boundary: it authenticates callers and
// turns validated tokens into Subject values. Admin status travels in the
// token claims, so IsAdmin never needs a store lookup.
type AuthService struct {
	db        *gorm.DB
	jwtSecret string
}

func NewAuthService(db *gorm.DB, jwtSecret string) *AuthService {
	return &AuthService{
		db:        db,
		jwtSecret: jwtSecret,
	}
}

// Register creates a local staff account and returns a signed token.
func (s *AuthService) Register(ctx context.Context, email, password string) (string, error) {
	fields := map[string]string{}
	if email == "" {
		fields["email"] = "is required"
	}
	if len(password) < 8 {
		fields["password"] = "must be at least 8 characters"
	}
	if len(fields) > 0 {
		return "", errs.Validation(fields)
	}

	var existing models.User
	err := s.db.WithContext(ctx).Where("email = ?", email).First(&existing).Error
	if err == nil {
		return "", fmt.Errorf("%w: user already exists", errs.ErrConflict)
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", errs.Store(err)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}

	user := models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: string(hashed),
	}
	user.SubjectID = "local|" + user.ID.String()

	if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
		return "", translateWriteError(err)
	}

	return s.generateToken(&user)
}

// Login authenticates a local account and returns a signed token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, error) {
	var user models.User
	if err := s.db.WithContext(ctx).Where("email = ?", email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrInvalidCredentials
		}
		return "", errs.Store(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.generateToken(&user)
}

// UpsertBySubject records a user on first sign-in through the external
// identity provider. Safe to call on every sign-in event; the subject id is
// the idempotency key and existing rows are only refreshed, never duplicated.
func (s *AuthService) UpsertBySubject(ctx context.Context, subjectID, email string) (*models.User, error) {
	if subjectID == "" {
		return nil, errs.Validation(map[string]string{"subject_id": "is required"})
	}

	var user models.User
	err := s.db.WithContext(ctx).Where("subject_id = ?", subjectID).First(&user).Error
	switch {
	case err == nil:
		if email != "" && email != user.Email {
			user.Email = email
			if err := s.db.WithContext(ctx).Model(&user).Update("email", email).Error; err != nil {
				return nil, translateWriteError(err)
			}
		}
		return &user, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		user = models.User{ID: uuid.New(), SubjectID: subjectID, Email: email}
		if err := s.db.WithContext(ctx).Create(&user).Error; err != nil {
			return nil, translateWriteError(err)
		}
		return &user, nil
	default:
		return nil, errs.Store(err)
	}
}

func (s *AuthService) generateToken(user *models.User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID.String(),
		"sub":     user.SubjectID,
		"email":   user.Email,
		"admin":   user.IsAdmin,
		"exp":     time.Now().Add(time.Hour * 24).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

// ValidateToken parses a token into an explicit Subject value. The admin flag
// comes straight from the claims bag, per the authorization contract.
func (s *AuthService) ValidateToken(tokenString string) (*auth.Subject, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(s.jwtSecret), nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", errs.ErrUnauthenticated, err)
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return nil, fmt.Errorf("%w: invalid token", errs.ErrUnauthenticated)
	}

	userIDStr, ok := claims["user_id"].(string)
	if !ok {
		return nil, fmt.Errorf("%w: invalid token claims", errs.ErrUnauthenticated)
	}
	userID, err := uuid.Parse(userIDStr)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid token claims", errs.ErrUnauthenticated)
	}

	subject := &auth.Subject{UserID: userID}
	if sub, ok := claims["sub"].(string); ok {
		subject.SubjectID = sub
	}
	if email, ok := claims["email"].(string); ok {
		subject.Email = email
	}
	if admin, ok := claims["admin"].(bool); ok {
		subject.Admin = admin
	}
	return subject, nil
}
