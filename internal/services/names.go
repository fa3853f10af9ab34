package services

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/localnerve/franchisedb/internal/logger"
	"github.com/localnerve/franchisedb/internal/models"
	"github.com/localnerve/franchisedb/internal/repositories"
	"github.com/localnerve/franchisedb/internal/types"
	"go.uber.org/zap"
)

// normalizeName trims the name and checks it is neither blank nor too long.
func normalizeName(entity, name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return "", types.NewValidationError(entity+".validation.name", "The %s name cannot be empty", entity)
	}
	if utf8.RuneCountInString(trimmed) > models.NameMaxLength {
		return "", types.NewValidationError(entity+".validation.name",
			"The %s name cannot be longer than %d characters", entity, models.NameMaxLength)
	}
	return trimmed, nil
}

// ensureUnique returns a ConflictError when lookup finds a record whose id is not selfID.
// Use selfID 0 on create.
func ensureUnique(entity, name string, selfID uint64, lookup func() (uint64, error)) error {
	id, err := lookup()
	if errors.Is(err, repositories.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if id != selfID {
		return types.NewConflictError(entity+".conflict", "A %s named '%s' already exists", entity, name)
	}
	return nil
}

// logResult logs business rule rejections at debug and anything else at error.
func logResult(ctx context.Context, msg string, err error, fields ...zap.Field) {
	if err == nil {
		return
	}
	log := logger.FromContext(ctx)
	fields = append(fields, zap.Error(err))
	if _, ok := types.AsCustomError(err); ok {
		log.Debug(msg+" rejected", fields...)
		return
	}
	log.Error(msg+" failed", fields...)
}
