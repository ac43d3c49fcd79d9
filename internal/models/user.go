// Package models contains data structures for the application's domain models.
package models

import (
	"time"

	"gorm.io/gorm"
)

// User represents an artist account.
type User struct {
	ID         uint           `gorm:"primaryKey" json:"id"`
	Email      string         `gorm:"size:50;uniqueIndex;not null" json:"email"`
	Username   string         `gorm:"size:50;uniqueIndex;not null" json:"username"`
	Password   string         `gorm:"size:255;not null" json:"-"`
	FullName   string         `gorm:"column:nama_lengkap;size:100;not null" json:"nama_lengkap"`
	AvatarPath *string        `gorm:"column:foto_profil;size:255" json:"foto_profil"`
	Bio        string         `gorm:"type:text" json:"bio"`
	Location   string         `gorm:"column:lokasi;size:100" json:"lokasi"`
	CreatedAt  time.Time      `json:"created_at"`
	UpdatedAt  *time.Time     `gorm:"autoUpdateTime:false" json:"updated_at"`
	DeletedAt  gorm.DeletedAt `gorm:"index" json:"-"`
}

// AnonymousArtist is shown in place of an owner that no longer exists.
const AnonymousArtist = "Anonim"

// ArtistName returns the display attribution for content owned by u.
func ArtistName(u *User) string {
	if u == nil || u.ID == 0 || u.DeletedAt.Valid {
		return AnonymousArtist
	}
	return u.Username
}
