package database

import "artspace/internal/models"

// PersistentModels returns the authoritative set of schema-managed GORM models.
func PersistentModels() []interface{} {
	return []interface{}{
		&models.User{},
		&models.Artwork{},
		&models.Video{},
		&models.VideoLike{},
	}
}
