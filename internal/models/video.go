package models

import (
	"time"

	"gorm.io/gorm"
)

// Video is an externally hosted video entry.
type Video struct {
	ID            uint           `gorm:"primaryKey" json:"id"`
	UserID        uint           `gorm:"not null;index" json:"user_id"`
	User          *User          `gorm:"foreignKey:UserID" json:"-"`
	Title         string         `gorm:"column:judul;size:100;not null" json:"judul"`
	YoutubeLink   string         `gorm:"column:link_youtube;size:255;not null" json:"link_youtube"`
	ThumbnailLink string         `gorm:"column:link_thumbnail;size:255;not null" json:"link_thumbnail"`
	Description   string         `gorm:"column:deskripsi;type:text" json:"deskripsi"`
	CreatedBy     string         `gorm:"column:dibuat_oleh;size:100;not null" json:"dibuat_oleh"`
	LikeCount     int            `gorm:"not null;default:0" json:"like_count"`
	CreatedAt     time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt     *time.Time     `gorm:"autoUpdateTime:false" json:"updated_at"`
	DeletedAt     gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Video) TableName() string { return "ruang_video" }

func (v *Video) OwnerID() uint { return v.UserID }

// VideoLike records that a user likes a video.
// The combination of UserID and VideoID must be unique. Rows are hard deleted
// on unlike.
type VideoLike struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:idx_video_like_user_video" json:"user_id"`
	VideoID   uint      `gorm:"not null;uniqueIndex:idx_video_like_user_video" json:"video_id"`
	CreatedAt time.Time `json:"created_at"`
}

// LikeState is the result of a like operation.
type LikeState struct {
	Liked     bool `json:"liked"`
	LikeCount int  `json:"like_count"`
}
