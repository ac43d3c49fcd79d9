package server

import (
	"time"

	"artspace/internal/models"
	"artspace/internal/service"
)

const displayTimeLayout = "2006-01-02 15:04:05"

type userResponse struct {
	ID        uint    `json:"id"`
	Email     string  `json:"email,omitempty"`
	Username  string  `json:"username"`
	FullName  string  `json:"nama_lengkap"`
	AvatarURL *string `json:"foto_profil"`
	Bio       string  `json:"bio"`
	Location  string  `json:"lokasi"`
	CreatedAt string  `json:"created_at"`
	UpdatedAt *string `json:"updated_at"`
}

type artworkResponse struct {
	ID           uint    `json:"id"`
	UserID       uint    `json:"user_id"`
	Artist       string  `json:"artist"`
	Title        string  `json:"judul_karya"`
	Description  string  `json:"deskripsi"`
	ImageURL     string  `json:"link_foto"`
	WhatsAppLink *string `json:"link_whatsapp"`
	LikeCount    int     `json:"like_count"`
	CreatedAt    string  `json:"created_at"`
	UpdatedAt    *string `json:"updated_at"`
}

type videoResponse struct {
	ID            uint    `json:"id"`
	UserID        uint    `json:"user_id"`
	Artist        string  `json:"artist"`
	Title         string  `json:"judul"`
	YoutubeLink   string  `json:"link_youtube"`
	ThumbnailLink string  `json:"link_thumbnail"`
	Description   string  `json:"deskripsi"`
	CreatedBy     string  `json:"dibuat_oleh"`
	LikeCount     int     `json:"like_count"`
	Liked         bool    `json:"liked"`
	CreatedAt     string  `json:"created_at"`
	UpdatedAt     *string `json:"updated_at"`
}

type artistDetailResponse struct {
	userResponse
	Artworks []artworkResponse `json:"karya_seni"`
	Videos   []videoResponse   `json:"ruang_video"`
}

func (s *Server) formatTime(t time.Time) string {
	return t.In(s.location).Format(displayTimeLayout)
}

func (s *Server) formatOptionalTime(t *time.Time) *string {
	if t == nil {
		return nil
	}
	v := s.formatTime(*t)
	return &v
}

func (s *Server) fileURL(rel string) string {
	if s.store == nil {
		return rel
	}
	return s.store.URL(rel)
}

// presentUser renders a user. Email is included only for the account owner.
func (s *Server) presentUser(u *models.User, withEmail bool) userResponse {
	resp := userResponse{
		ID:        u.ID,
		Username:  u.Username,
		FullName:  u.FullName,
		Bio:       u.Bio,
		Location:  u.Location,
		CreatedAt: s.formatTime(u.CreatedAt),
		UpdatedAt: s.formatOptionalTime(u.UpdatedAt),
	}
	if withEmail {
		resp.Email = u.Email
	}
	if u.AvatarPath != nil && *u.AvatarPath != "" {
		url := s.fileURL(*u.AvatarPath)
		resp.AvatarURL = &url
	}
	return resp
}

func (s *Server) presentArtwork(a *models.Artwork) artworkResponse {
	return artworkResponse{
		ID:           a.ID,
		UserID:       a.UserID,
		Artist:       models.ArtistName(a.User),
		Title:        a.Title,
		Description:  a.Description,
		ImageURL:     s.fileURL(a.ImagePath),
		WhatsAppLink: a.WhatsAppLink,
		LikeCount:    a.LikeCount,
		CreatedAt:    s.formatTime(a.CreatedAt),
		UpdatedAt:    s.formatOptionalTime(a.UpdatedAt),
	}
}

func (s *Server) presentArtworks(list []*models.Artwork) []artworkResponse {
	out := make([]artworkResponse, 0, len(list))
	for _, a := range list {
		out = append(out, s.presentArtwork(a))
	}
	return out
}

func (s *Server) presentVideo(v *models.Video, liked bool) videoResponse {
	return videoResponse{
		ID:            v.ID,
		UserID:        v.UserID,
		Artist:        models.ArtistName(v.User),
		Title:         v.Title,
		YoutubeLink:   v.YoutubeLink,
		ThumbnailLink: s.fileURL(v.ThumbnailLink),
		Description:   v.Description,
		CreatedBy:     v.CreatedBy,
		LikeCount:     v.LikeCount,
		Liked:         liked,
		CreatedAt:     s.formatTime(v.CreatedAt),
		UpdatedAt:     s.formatOptionalTime(v.UpdatedAt),
	}
}

func (s *Server) presentVideoListing(listing *service.VideoListing) []videoResponse {
	out := make([]videoResponse, 0, len(listing.Videos))
	for _, v := range listing.Videos {
		out = append(out, s.presentVideo(v, listing.Liked[v.ID]))
	}
	return out
}

func (s *Server) presentArtistDetail(d *service.ArtistDetail) artistDetailResponse {
	videos := make([]videoResponse, 0, len(d.Videos))
	for _, v := range d.Videos {
		videos = append(videos, s.presentVideo(v, false))
	}
	return artistDetailResponse{
		userResponse: s.presentUser(d.User, false),
		Artworks:     s.presentArtworks(d.Artworks),
		Videos:       videos,
	}
}
