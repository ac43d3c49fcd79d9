package seed

import (
	"context"
	"fmt"
	"log"

	"artspace/internal/models"

	"gorm.io/gorm"
)

// Options configures a seeding run.
type Options struct {
	NumUsers        int
	ArtworksPerUser int
	VideosPerUser   int
	Password        string
	ShouldClean     bool
	// SkipBcrypt stores the password in clear text. Tests only.
	SkipBcrypt bool
	// Seed makes the generated content reproducible. Zero means random.
	Seed int64
}

// Summary counts what a run created.
type Summary struct {
	Users        int
	Artworks     int
	Videos       int
	VideoLikes   int
	ArtworkLikes int
}

// Seed populates the database with artists, their work and some engagement.
func Seed(ctx context.Context, db *gorm.DB, opts Options) (*Summary, error) {
	if opts.NumUsers <= 0 {
		return nil, fmt.Errorf("number of users must be positive")
	}
	log.Printf("Seeding %d users (up to %d artworks, %d videos each)", opts.NumUsers, opts.ArtworksPerUser, opts.VideosPerUser)

	if opts.ShouldClean {
		if err := Clean(db); err != nil {
			return nil, fmt.Errorf("failed to clean database: %w", err)
		}
	}

	f := NewFactory(db, opts.Seed, opts.Password)
	summary := &Summary{}

	users := make([]*models.User, 0, opts.NumUsers)
	for i := 0; i < opts.NumUsers; i++ {
		user, err := f.CreateUser(ctx, opts.SkipBcrypt)
		if err != nil {
			return nil, fmt.Errorf("failed to create user: %w", err)
		}
		users = append(users, user)
	}
	summary.Users = len(users)
	log.Printf("✓ %d users created", summary.Users)

	var artworks []*models.Artwork
	var videos []*models.Video
	for _, user := range users {
		for i := f.count(opts.ArtworksPerUser); i > 0; i-- {
			artwork, err := f.CreateArtwork(ctx, user)
			if err != nil {
				return nil, fmt.Errorf("failed to create artwork: %w", err)
			}
			artworks = append(artworks, artwork)
		}
		for i := f.count(opts.VideosPerUser); i > 0; i-- {
			video, err := f.CreateVideo(ctx, user)
			if err != nil {
				return nil, fmt.Errorf("failed to create video: %w", err)
			}
			videos = append(videos, video)
		}
	}
	summary.Artworks = len(artworks)
	summary.Videos = len(videos)
	log.Printf("✓ %d artworks, %d videos created", summary.Artworks, summary.Videos)

	for _, video := range videos {
		for _, user := range users {
			if !f.faker.Bool() {
				continue
			}
			if _, err := f.videos.ToggleLike(ctx, user.ID, video.ID); err != nil {
				return nil, fmt.Errorf("failed to like video %d: %w", video.ID, err)
			}
			summary.VideoLikes++
		}
	}

	for _, artwork := range artworks {
		n := f.faker.Number(0, len(users))
		for i := 0; i < n; i++ {
			if _, err := f.artworks.IncrementLikes(ctx, artwork.ID); err != nil {
				return nil, fmt.Errorf("failed to like artwork %d: %w", artwork.ID, err)
			}
		}
		summary.ArtworkLikes += n
	}
	log.Printf("✓ %d video likes, %d artwork likes added", summary.VideoLikes, summary.ArtworkLikes)

	return summary, nil
}

// Clean hard deletes all application rows, children first.
func Clean(db *gorm.DB) error {
	log.Println("Clearing existing data...")
	tx := db.Session(&gorm.Session{AllowGlobalUpdate: true}).Unscoped()
	for _, model := range []interface{}{
		&models.VideoLike{},
		&models.Video{},
		&models.Artwork{},
		&models.User{},
	} {
		if err := tx.Delete(model).Error; err != nil {
			return err
		}
	}
	return nil
}
