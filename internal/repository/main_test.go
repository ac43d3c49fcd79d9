package repository

import (
	"path/filepath"
	"testing"
	"time"

	"artspace/internal/config"
	"artspace/internal/database"
	"artspace/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

// setupSQLiteDB returns a migrated database backed by a file in a temp dir.
func setupSQLiteDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := database.Connect(&config.Config{
		Env:          "test",
		DBDriver:     "sqlite",
		DBSQLitePath: filepath.Join(t.TempDir(), "repo.db"),
	})
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})
	return db
}

func createUser(t *testing.T, db *gorm.DB, username string) *models.User {
	t.Helper()
	user := &models.User{
		Email:    username + "@example.com",
		Username: username,
		Password: "hash",
		FullName: "Test " + username,
	}
	require.NoError(t, db.Create(user).Error)
	return user
}

func createArtwork(t *testing.T, db *gorm.DB, owner uint, title string, at time.Time) *models.Artwork {
	t.Helper()
	artwork := &models.Artwork{UserID: owner, Title: title, ImagePath: "artworks/" + title + ".png", CreatedAt: at}
	require.NoError(t, db.Create(artwork).Error)
	return artwork
}

func createVideo(t *testing.T, db *gorm.DB, owner uint, title string, at time.Time) *models.Video {
	t.Helper()
	video := &models.Video{
		UserID:        owner,
		Title:         title,
		YoutubeLink:   "https://youtu.be/" + title,
		ThumbnailLink: "https://img.youtube.com/vi/" + title + "/0.jpg",
		CreatedBy:     "Studio",
		CreatedAt:     at,
	}
	require.NoError(t, db.Create(video).Error)
	return video
}
