package repository

import (
	"errors"

	"github.com/ikkim/marketplace-api/pkg/logger"
	"gorm.io/gorm"
)

// ErrTableUnavailable is returned by a repository built without a database
// handle.
var ErrTableUnavailable = errors.New("table unavailable")

// UpdateOutcome reports how an optimistic update ended. A non-nil error next
// to it is a persistence failure and the outcome carries no meaning.
type UpdateOutcome int

const (
	// UpdateApplied means the row was found and rewritten.
	UpdateApplied UpdateOutcome = iota
	// UpdateConflict means no row matched at write time; it was removed after
	// the caller read it.
	UpdateConflict
)

func (o UpdateOutcome) String() string {
	switch o {
	case UpdateApplied:
		return "applied"
	case UpdateConflict:
		return "conflict"
	default:
		return "unknown"
	}
}

// table is the keyed-table contract shared by every catalog entity. Ids come
// from the database sequence, so they grow monotonically.
type table[T any] struct {
	db   *gorm.DB
	kind string
}

func newTable[T any](db *gorm.DB, kind string) table[T] {
	return table[T]{db: db, kind: kind}
}

func (t table[T]) ready() error {
	if t.db == nil {
		logger.Warn("Table accessed before initialization", map[string]interface{}{
			"kind": t.kind,
		})
		return ErrTableUnavailable
	}
	return nil
}

func (t table[T]) findAll() ([]T, error) {
	if err := t.ready(); err != nil {
		return nil, err
	}

	var rows []T
	if err := t.db.Order("id ASC").Find(&rows).Error; err != nil {
		logger.Error("Failed to list rows", err, map[string]interface{}{
			"kind": t.kind,
		})
		return nil, err
	}

	logger.Debug("Rows listed", map[string]interface{}{
		"kind":  t.kind,
		"count": len(rows),
	})
	return rows, nil
}

func (t table[T]) findByID(id uint) (*T, error) {
	if err := t.ready(); err != nil {
		return nil, err
	}

	var row T
	if err := t.db.First(&row, id).Error; err != nil {
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			logger.Error("Failed to find row by ID", err, map[string]interface{}{
				"kind": t.kind,
				"id":   id,
			})
		}
		return nil, err
	}
	return &row, nil
}

func (t table[T]) create(row *T) error {
	if err := t.ready(); err != nil {
		return err
	}

	if err := t.db.Create(row).Error; err != nil {
		logger.Error("Failed to create row", err, map[string]interface{}{
			"kind": t.kind,
		})
		return err
	}
	return nil
}

// updateColumns writes the given columns of one live row. Zero values are
// written too.
func (t table[T]) updateColumns(id uint, columns map[string]interface{}) (UpdateOutcome, error) {
	if err := t.ready(); err != nil {
		return UpdateConflict, err
	}

	result := t.db.Model(new(T)).Where("id = ?", id).Updates(columns)
	if result.Error != nil {
		logger.Error("Failed to update row", result.Error, map[string]interface{}{
			"kind": t.kind,
			"id":   id,
		})
		return UpdateConflict, result.Error
	}

	if result.RowsAffected == 0 {
		logger.Warn("Update matched no row", map[string]interface{}{
			"kind": t.kind,
			"id":   id,
		})
		return UpdateConflict, nil
	}
	return UpdateApplied, nil
}

func (t table[T]) delete(id uint) error {
	if err := t.ready(); err != nil {
		return err
	}

	result := t.db.Delete(new(T), id)
	if result.Error != nil {
		logger.Error("Failed to delete row", result.Error, map[string]interface{}{
			"kind": t.kind,
			"id":   id,
		})
		return result.Error
	}
	if result.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (t table[T]) exists(id uint) (bool, error) {
	if err := t.ready(); err != nil {
		return false, err
	}

	var count int64
	if err := t.db.Model(new(T)).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}
