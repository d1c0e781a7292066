package auth

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/forkful/menuboard-v2/backend/internal/errs"
	"github.com/forkful/menuboard-v2/backend/internal/models"
)

// Decision is the outcome of an authorization check. The two deny outcomes
// are distinct on purpose: unauthenticated callers should be prompted to
// sign in, forbidden ones should not learn whether the resource exists.
type Decision int

const (
	DenyUnauthenticated Decision = iota
	DenyForbidden
	Allow
)

func (d Decision) String() string {
	switch d {
	case Allow:
		return "allow"
	case DenyForbidden:
		return "deny:forbidden"
	default:
		return "deny:unauthenticated"
	}
}

// Authorizer decides whether a subject may act on a restaurant. It is
// side-effect free and evaluates every call fresh; decisions are never
// cached because assignment and admin state can change between requests.
type Authorizer struct {
	db *gorm.DB
}

func NewAuthorizer(db *gorm.DB) *Authorizer {
	return &Authorizer{db: db}
}

// Authorize maps (subject, restaurant) to a Decision, short-circuiting in
// order: missing identity, global admin override, then assignment lookup.
// The admin override does not consult the store at all, so it holds even for
// restaurant ids that do not exist. Store failures propagate; they are never
// converted into a deny.
func (a *Authorizer) Authorize(ctx context.Context, subject *Subject, restaurantID uuid.UUID) (Decision, error) {
	if subject == nil || subject.UserID == uuid.Nil {
		return DenyUnauthenticated, nil
	}
	if IsAdmin(subject) {
		return Allow, nil
	}

	var assignment models.Assignment
	err := a.db.WithContext(ctx).
		Where("user_id = ? AND restaurant_id = ?", subject.UserID, restaurantID).
		First(&assignment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return DenyForbidden, nil
		}
		return DenyForbidden, errs.Store(err)
	}
	return Allow, nil
}
