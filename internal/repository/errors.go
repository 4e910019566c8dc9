package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/sefazor/starclub-backend/internal/models"
)

// translate maps gorm errors onto the shared error kinds. Anything the
// driver reports that is not a missing row or a unique violation is treated
// as the backend being unavailable.
func translate(entity string, err error) error {
	if err == nil {
		return nil
	}
	switch {
	case errors.Is(err, models.ErrNotFound),
		errors.Is(err, models.ErrInvalidInput),
		errors.Is(err, models.ErrConflict),
		errors.Is(err, models.ErrStorageUnavailable):
		return err
	case errors.Is(err, gorm.ErrRecordNotFound):
		return fmt.Errorf("%s %w", entity, models.ErrNotFound)
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return fmt.Errorf("%s %w", entity, models.ErrConflict)
	default:
		return fmt.Errorf("%w: %s: %v", models.ErrStorageUnavailable, entity, err)
	}
}
