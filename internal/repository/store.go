package repository

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/Dan9191/credit-simulator/internal/errs"
)

// Get loads the record of type T with primary key id.
func Get[T any](tx *gorm.DB, entidad string, id uint) (*T, error) {
	var rec T
	if err := tx.First(&rec, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: %s con id %d", errs.ErrNotFound, entidad, id)
		}
		return nil, fmt.Errorf("failed to get %s %d: %w", entidad, id, err)
	}
	return &rec, nil
}

// Exists reports whether a record of type T with primary key id exists.
func Exists[T any](tx *gorm.DB, id uint) (bool, error) {
	var n int64
	if err := tx.Model(new(T)).Where("id = ?", id).Count(&n).Error; err != nil {
		return false, fmt.Errorf("failed to check existence: %w", err)
	}
	return n > 0, nil
}

// Referenced reports whether any record of type T has column equal to id.
func Referenced[T any](tx *gorm.DB, column string, id uint) (bool, error) {
	var n int64
	if err := tx.Model(new(T)).Where(column+" = ?", id).Count(&n).Error; err != nil {
		return false, fmt.Errorf("failed to count %s references: %w", column, err)
	}
	return n > 0, nil
}

// Contains adds a case-sensitive substring condition on column.
// SQLite LIKE folds ASCII case, so neither dialect uses LIKE.
func Contains(tx *gorm.DB, column, substr string) *gorm.DB {
	if tx.Dialector.Name() == "postgres" {
		return tx.Where("strpos("+column+", ?) > 0", substr)
	}
	return tx.Where("instr("+column+", ?) > 0", substr)
}
