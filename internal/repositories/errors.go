package repositories

import (
	"errors"

	"github.com/localnerve/franchisedb/internal/types"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a record addressed by id does not exist.
var ErrNotFound = errors.New("record not found")

// translateError maps store errors onto repository and domain errors.
// A duplicate key means a concurrent writer won the race against the
// service-level uniqueness check.
func translateError(err error, entity string) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return types.NewConflictError(entity+".conflict", "A %s with this name already exists", entity)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return types.NewNotFoundError(entity+".parent", "The parent of this %s does not exist", entity)
	case errors.Is(err, gorm.ErrCheckConstraintViolated):
		return types.NewValidationError(entity+".validation", "The %s violates a data constraint", entity)
	}
	return err
}
