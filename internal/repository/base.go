// Package repository implements the data access layer for the application.
package repository

import (
	"errors"

	"artspace/internal/models"

	"gorm.io/gorm"
)

const maxListLimit = 100

// ListFilter narrows content listings. Zero values mean "no restriction".
type ListFilter struct {
	OwnerID uint
	Limit   int
	Offset  int
}

// newestFirst orders content reverse-chronologically with id as a stable tie-break.
func newestFirst(db *gorm.DB) *gorm.DB {
	return db.Order("created_at DESC").Order("id DESC")
}

func applyFilter(db *gorm.DB, f ListFilter) *gorm.DB {
	if f.OwnerID != 0 {
		db = db.Where("user_id = ?", f.OwnerID)
	}
	if f.Limit > 0 {
		limit := f.Limit
		if limit > maxListLimit {
			limit = maxListLimit
		}
		db = db.Limit(limit)
	}
	if f.Offset > 0 {
		db = db.Offset(f.Offset)
	}
	return db
}

// lookupError converts a GORM lookup failure into an AppError.
func lookupError(err error, resource string, id interface{}) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return models.NewNotFoundError(resource, id)
	}
	return models.NewInternalError(err)
}

// readLikeCount loads the like_count column of the live row id into dest.
func readLikeCount(tx *gorm.DB, model interface{}, id uint, dest *int) error {
	var counts []int
	if err := tx.Model(model).Where("id = ?", id).Pluck("like_count", &counts).Error; err != nil {
		return models.NewInternalError(err)
	}
	if len(counts) == 0 {
		return models.NewNotFoundError("Record", id)
	}
	*dest = counts[0]
	return nil
}
