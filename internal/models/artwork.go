package models

import (
	"time"

	"gorm.io/gorm"
)

// Artwork is an uploaded piece of visual art. Likes on artworks are a bare
// counter with no record of who liked.
type Artwork struct {
	ID           uint           `gorm:"primaryKey" json:"id"`
	UserID       uint           `gorm:"not null;index" json:"user_id"`
	User         *User          `gorm:"foreignKey:UserID" json:"-"`
	Title        string         `gorm:"column:judul_karya;size:100;not null" json:"judul_karya"`
	Description  string         `gorm:"column:deskripsi;type:text" json:"deskripsi"`
	ImagePath    string         `gorm:"column:link_foto;size:255;not null" json:"link_foto"`
	WhatsAppLink *string        `gorm:"column:link_whatsapp;size:255" json:"link_whatsapp"`
	LikeCount    int            `gorm:"not null;default:0" json:"like_count"`
	CreatedAt    time.Time      `gorm:"index" json:"created_at"`
	UpdatedAt    *time.Time     `gorm:"autoUpdateTime:false" json:"updated_at"`
	DeletedAt    gorm.DeletedAt `gorm:"index" json:"-"`
}

func (Artwork) TableName() string { return "karya_seni" }

func (a *Artwork) OwnerID() uint { return a.UserID }
