package api

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/forkful/menuboard-v2/backend/internal/auth"
	"github.com/forkful/menuboard-v2/backend/internal/errs"
	"github.com/forkful/menuboard-v2/backend/internal/middleware"
)

// respondError translates the shared error taxonomy into HTTP outcomes. This
// is the only place that decides presentation; services only classify.
func respondError(c *gin.Context, err error) {
	if ve, ok := errs.AsValidation(err); ok {
		c.JSON(http.StatusUnprocessableEntity, gin.H{
			"error":  "validation failed",
			"fields": ve.Fields,
		})
		return
	}
	switch {
	case errors.Is(err, errs.ErrUnauthenticated):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	case errors.Is(err, errs.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	case errors.Is(err, errs.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, errs.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, errs.ErrStoreUnavailable):
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "store unavailable"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

// gate runs the authorization engine for a tenant-scoped route and writes
// the caller-visible outcome on deny. It must return true before any write
// is issued; on any other decision zero writes occur.
func gate(c *gin.Context, authorizer *auth.Authorizer, restaurantID uuid.UUID) bool {
	subject := middleware.SubjectFrom(c)
	decision, err := authorizer.Authorize(c.Request.Context(), subject, restaurantID)
	if err != nil {
		respondError(c, err)
		c.Abort()
		return false
	}
	switch decision {
	case auth.Allow:
		return true
	case auth.DenyUnauthenticated:
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
	default:
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
	}
	c.Abort()
	return false
}

// requireAdmin guards the admin-only surface. Forbidden here is reported as
// such: admin-facing routes deliberately distinguish forbidden from missing.
func requireAdmin(c *gin.Context) *auth.Subject {
	subject := middleware.SubjectFrom(c)
	if subject == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		c.Abort()
		return nil
	}
	if !auth.IsAdmin(subject) {
		c.JSON(http.StatusForbidden, gin.H{"error": "forbidden"})
		c.Abort()
		return nil
	}
	return subject
}

// pathID parses a uuid path parameter. A malformed id names a resource that
// cannot exist, so it reads as not found rather than leaking shape hints.
func pathID(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
		c.Abort()
		return uuid.Nil, false
	}
	return id, true
}
