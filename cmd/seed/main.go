// Command seed fills the database with demo artists, artworks and videos.
package main

import (
	"context"
	"flag"
	"log"

	"artspace/internal/config"
	"artspace/internal/database"
	"artspace/internal/seed"
)

func main() {
	numUsers := flag.Int("users", 20, "Number of users to create")
	artworks := flag.Int("artworks", 4, "Maximum artworks per user")
	videos := flag.Int("videos", 2, "Maximum videos per user")
	password := flag.String("password", seed.DefaultPassword, "Password for every seeded account")
	shouldClean := flag.Bool("clean", true, "Clean database before seeding")
	randomSeed := flag.Int64("seed", 0, "Random seed for reproducible content (0 = random)")
	flag.Parse()

	log.Println("Database Seeder")
	log.Printf("Target: %d users, clean=%v", *numUsers, *shouldClean)

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	db, err := database.Connect(cfg)
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}
	if cfg.IsProduction() {
		if err := database.Migrate(db); err != nil {
			log.Fatalf("Migration failed: %v", err)
		}
	}

	summary, err := seed.Seed(context.Background(), db, seed.Options{
		NumUsers:        *numUsers,
		ArtworksPerUser: *artworks,
		VideosPerUser:   *videos,
		Password:        *password,
		ShouldClean:     *shouldClean,
		Seed:            *randomSeed,
	})
	if err != nil {
		log.Fatalf("Seeding failed: %v", err)
	}

	log.Printf("Done: %d users, %d artworks, %d videos, %d video likes, %d artwork likes",
		summary.Users, summary.Artworks, summary.Videos, summary.VideoLikes, summary.ArtworkLikes)
	log.Printf("All seeded users have the password: %s", *password)
}
