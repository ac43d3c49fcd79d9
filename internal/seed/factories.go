// Package seed provides helpers to create demo data for the application
// database. These helpers are intended for development and testing only.
package seed

import (
	"context"
	"fmt"
	"time"

	"artspace/internal/models"
	"artspace/internal/repository"

	"github.com/brianvoe/gofakeit/v6"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// DefaultPassword is given to every seeded account.
const DefaultPassword = "password123"

var youtubeIDs = []string{"dQw4w9WgXcQ", "9bZkp7q19f0", "3JZ_D3ELwOQ", "L_jWHffIx5E", "kXYiU_JCYtU"}

// Factory builds domain entities and persists them through the repositories.
type Factory struct {
	faker    *gofakeit.Faker
	users    repository.UserRepository
	artworks repository.ArtworkRepository
	videos   repository.VideoRepository
	password string
	hashed   string
	maxDays  int
	seq      int
}

// NewFactory creates a Factory. A zero seed uses the current time.
func NewFactory(db *gorm.DB, seed int64, password string) *Factory {
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	if password == "" {
		password = DefaultPassword
	}
	return &Factory{
		faker:    gofakeit.New(seed),
		users:    repository.NewUserRepository(db),
		artworks: repository.NewArtworkRepository(db),
		videos:   repository.NewVideoRepository(db),
		password: password,
		maxDays:  90,
	}
}

func (f *Factory) passwordHash(skipBcrypt bool) (string, error) {
	if skipBcrypt {
		return f.password, nil
	}
	if f.hashed == "" {
		hashed, err := bcrypt.GenerateFromPassword([]byte(f.password), bcrypt.DefaultCost)
		if err != nil {
			return "", err
		}
		f.hashed = string(hashed)
	}
	return f.hashed, nil
}

// createdAt spreads timestamps over the last maxDays so listings look lived in.
func (f *Factory) createdAt() time.Time {
	back := time.Duration(f.faker.Number(0, f.maxDays*24*60)) * time.Minute
	return time.Now().UTC().Add(-back)
}

// CreateUser persists a sample artist. Overrides run before saving.
func (f *Factory) CreateUser(ctx context.Context, skipBcrypt bool, overrides ...func(*models.User)) (*models.User, error) {
	password, err := f.passwordHash(skipBcrypt)
	if err != nil {
		return nil, err
	}

	f.seq++
	username := fmt.Sprintf("%s%d", f.faker.Username(), f.seq)
	if len(username) > 30 {
		username = username[len(username)-30:]
	}
	avatar := fmt.Sprintf("https://i.pravatar.cc/150?u=%s", f.faker.UUID())
	user := &models.User{
		Email:      username + "@example.com",
		Username:   username,
		Password:   password,
		FullName:   f.faker.Name(),
		AvatarPath: &avatar,
		Bio:        f.faker.Sentence(10),
		Location:   f.faker.City(),
		CreatedAt:  f.createdAt(),
	}
	for _, override := range overrides {
		override(user)
	}

	if err := f.users.Create(ctx, user); err != nil {
		return nil, err
	}
	return user, nil
}

// CreateArtwork persists a sample artwork owned by user.
func (f *Factory) CreateArtwork(ctx context.Context, user *models.User, overrides ...func(*models.Artwork)) (*models.Artwork, error) {
	artwork := &models.Artwork{
		UserID:      user.ID,
		Title:       truncate(f.faker.Sentence(4), 100),
		Description: f.faker.Paragraph(1, 3, 12, "\n"),
		ImagePath:   fmt.Sprintf("https://picsum.photos/seed/%s/800/800", f.faker.UUID()),
		CreatedAt:   f.createdAt(),
	}
	if f.faker.Bool() {
		link := fmt.Sprintf("https://wa.me/62%d", f.faker.Number(800000000, 899999999))
		artwork.WhatsAppLink = &link
	}
	for _, override := range overrides {
		override(artwork)
	}

	if err := f.artworks.Create(ctx, artwork); err != nil {
		return nil, err
	}
	return artwork, nil
}

// CreateVideo persists a sample video owned by user.
func (f *Factory) CreateVideo(ctx context.Context, user *models.User, overrides ...func(*models.Video)) (*models.Video, error) {
	id := youtubeIDs[f.faker.Number(0, len(youtubeIDs)-1)]
	video := &models.Video{
		UserID:        user.ID,
		Title:         truncate(f.faker.Sentence(5), 100),
		YoutubeLink:   "https://www.youtube.com/watch?v=" + id,
		ThumbnailLink: fmt.Sprintf("https://img.youtube.com/vi/%s/hqdefault.jpg", id),
		Description:   f.faker.Paragraph(1, 2, 10, "\n"),
		CreatedBy:     truncate(f.faker.Company(), 100),
		CreatedAt:     f.createdAt(),
	}
	for _, override := range overrides {
		override(video)
	}

	if err := f.videos.Create(ctx, video); err != nil {
		return nil, err
	}
	return video, nil
}

// count picks how many items one user gets, between 1 and upTo.
func (f *Factory) count(upTo int) int {
	if upTo <= 0 {
		return 0
	}
	return f.faker.Number(1, upTo)
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
