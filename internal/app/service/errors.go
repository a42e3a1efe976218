package service

import (
	"errors"
	"fmt"

	"github.com/ikkim/marketplace-api/internal/app/repository"
	"github.com/ikkim/marketplace-api/pkg/logger"
	"gorm.io/gorm"
)

var (
	// ErrIDMismatch is returned when the id inside a payload names a
	// different entity than the id in the request path.
	ErrIDMismatch = errors.New("payload id does not match path id")
	// ErrTableUnavailable means the backing table was never initialized.
	ErrTableUnavailable = errors.New("catalog table unavailable")
	// ErrConcurrencyConflict is an update conflict that could not be
	// explained by the row being deleted. It is not retried.
	ErrConcurrencyConflict = errors.New("concurrent modification conflict")
)

// translateLookup maps repository lookup failures onto service errors.
func translateLookup(err error, notFound error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	case errors.Is(err, repository.ErrTableUnavailable):
		return ErrTableUnavailable
	default:
		return err
	}
}

// resolveConflict decides what an UpdateConflict means: a row that is gone
// is reported as notFound, a row that still exists is a hard conflict.
func resolveConflict(kind string, id uint, exists func(uint) (bool, error), notFound error) error {
	ok, err := exists(id)
	if err != nil {
		logger.Error("Failed to re-check existence after update conflict", err, map[string]interface{}{
			"kind": kind,
			"id":   id,
		})
		return translateLookup(err, notFound)
	}

	if !ok {
		logger.Warn("Update target deleted concurrently", map[string]interface{}{
			"kind": kind,
			"id":   id,
		})
		return notFound
	}

	logger.Error("Update conflict on existing row", ErrConcurrencyConflict, map[string]interface{}{
		"kind": kind,
		"id":   id,
	})
	return fmt.Errorf("%w: %s %d", ErrConcurrencyConflict, kind, id)
}
