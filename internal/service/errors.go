package service

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/forkful/menuboard-v2/backend/internal/errs"
)

// translateWriteError maps store write failures to the shared taxonomy. The
// pre-write uniqueness checks are advisory only; a racing write can still hit
// the database constraint, and that late violation must surface as a conflict
// rather than a generic store failure.
func translateWriteError(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return fmt.Errorf("%w: %v", errs.ErrConflict, err)
	}
	msg := err.Error()
	if strings.Contains(msg, "duplicate key") || strings.Contains(msg, "UNIQUE constraint failed") {
		return fmt.Errorf("%w: %v", errs.ErrConflict, err)
	}
	return errs.Store(err)
}
