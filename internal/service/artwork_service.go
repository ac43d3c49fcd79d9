package service

import (
	"context"
	"strings"
	"time"

	"artspace/internal/models"
	"artspace/internal/observability"
	"artspace/internal/repository"
	"artspace/internal/storage"

	"go.opentelemetry.io/otel/attribute"
)

const (
	maxTitleLen       = 100
	maxDescriptionLen = 5000
	maxLinkLen        = 255
	defaultLatest     = 10
)

type ArtworkService struct {
	artworkRepo repository.ArtworkRepository
	userRepo    repository.UserRepository
	uploads     *uploader
	now         func() time.Time
}

type CreateArtworkInput struct {
	UserID       uint
	Title        string
	Description  string
	WhatsAppLink string
	Image        *Upload
}

type UpdateArtworkInput struct {
	UserID       uint
	ArtworkID    uint
	Title        *string
	Description  *string
	WhatsAppLink *string
	Image        *Upload
}

func NewArtworkService(
	artworkRepo repository.ArtworkRepository,
	userRepo repository.UserRepository,
	store storage.Store,
	maxUploadBytes int64,
) *ArtworkService {
	return &ArtworkService{
		artworkRepo: artworkRepo,
		userRepo:    userRepo,
		uploads:     newUploader(store, maxUploadBytes),
		now:         time.Now,
	}
}

// WithClock replaces the time source used for updated_at and deleted_at.
func (s *ArtworkService) WithClock(now func() time.Time) *ArtworkService {
	s.now = now
	return s
}

func (s *ArtworkService) Create(ctx context.Context, in CreateArtworkInput) (*models.Artwork, error) {
	in.Title = strings.TrimSpace(in.Title)
	if in.Title == "" {
		return nil, models.NewValidationError("judul_karya is required")
	}
	if in.Image == nil {
		return nil, models.NewValidationError("link_foto file is required")
	}
	if err := validateContentText(in.Title, in.Description); err != nil {
		return nil, err
	}
	if err := validateLink("link_whatsapp", in.WhatsAppLink); err != nil {
		return nil, err
	}

	image, err := s.uploads.save(ctx, storage.CategoryArtwork, in.Image, true)
	if err != nil {
		return nil, err
	}

	artwork := &models.Artwork{
		UserID:       in.UserID,
		Title:        in.Title,
		Description:  in.Description,
		ImagePath:    image,
		WhatsAppLink: optionalString(in.WhatsAppLink),
	}
	if err := s.artworkRepo.Create(ctx, artwork); err != nil {
		s.uploads.discard(ctx, image)
		return nil, err
	}
	return artwork, nil
}

func (s *ArtworkService) List(ctx context.Context) ([]*models.Artwork, error) {
	return s.artworkRepo.List(ctx, repository.ListFilter{})
}

// Latest returns the newest artworks. A non-positive limit uses the default.
func (s *ArtworkService) Latest(ctx context.Context, limit int) ([]*models.Artwork, error) {
	if limit <= 0 {
		limit = defaultLatest
	}
	return s.artworkRepo.List(ctx, repository.ListFilter{Limit: limit})
}

// ListByOwnerUsername returns an empty list for unknown usernames.
func (s *ArtworkService) ListByOwnerUsername(ctx context.Context, username string) ([]*models.Artwork, error) {
	owner, err := lookupOwner(ctx, s.userRepo, username)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return []*models.Artwork{}, nil
	}
	return s.artworkRepo.List(ctx, repository.ListFilter{OwnerID: owner.ID})
}

func (s *ArtworkService) ListMine(ctx context.Context, userID uint) ([]*models.Artwork, error) {
	return s.artworkRepo.List(ctx, repository.ListFilter{OwnerID: userID})
}

// Get returns a live artwork. The owner can also read their own
// soft-deleted artwork.
func (s *ArtworkService) Get(ctx context.Context, id, callerID uint) (*models.Artwork, error) {
	artwork, err := s.artworkRepo.GetByIDUnscoped(ctx, id)
	if err != nil {
		return nil, err
	}
	if artwork.DeletedAt.Valid && (callerID == 0 || artwork.UserID != callerID) {
		return nil, models.NewNotFoundError("Artwork", id)
	}
	return artwork, nil
}

func (s *ArtworkService) Update(ctx context.Context, in UpdateArtworkInput) (*models.Artwork, error) {
	artwork, err := s.artworkRepo.GetByIDUnscoped(ctx, in.ArtworkID)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(artwork, in.UserID, "edit"); err != nil {
		return nil, err
	}

	if in.Title != nil && strings.TrimSpace(*in.Title) != "" {
		artwork.Title = strings.TrimSpace(*in.Title)
	}
	if in.Description != nil {
		artwork.Description = *in.Description
	}
	if in.WhatsAppLink != nil {
		if err := validateLink("link_whatsapp", *in.WhatsAppLink); err != nil {
			return nil, err
		}
		artwork.WhatsAppLink = optionalString(*in.WhatsAppLink)
	}
	if err := validateContentText(artwork.Title, artwork.Description); err != nil {
		return nil, err
	}

	image, err := s.uploads.save(ctx, storage.CategoryArtwork, in.Image, false)
	if err != nil {
		return nil, err
	}
	if image != "" {
		artwork.ImagePath = image
	}

	now := s.now()
	artwork.UpdatedAt = &now
	if err := s.artworkRepo.Update(ctx, artwork); err != nil {
		s.uploads.discard(ctx, image)
		return nil, err
	}
	return artwork, nil
}

func (s *ArtworkService) Delete(ctx context.Context, userID, artworkID uint) error {
	artwork, err := s.artworkRepo.GetByIDUnscoped(ctx, artworkID)
	if err != nil {
		return err
	}
	if err := authorizeOwner(artwork, userID, "delete"); err != nil {
		return err
	}
	return s.artworkRepo.SoftDelete(ctx, artworkID, s.now())
}

// Like increments the counter unconditionally. Repeat likes by the same
// user all count.
func (s *ArtworkService) Like(ctx context.Context, artworkID uint) (int, error) {
	ctx, span := observability.StartSpan(ctx, "artwork.like", attribute.Int("artwork.id", int(artworkID)))
	defer span.End()

	count, err := s.artworkRepo.IncrementLikes(ctx, artworkID)
	if err != nil {
		span.RecordError(err)
		return 0, err
	}
	observability.RecordLike("artwork", "like")
	return count, nil
}

// Unlike decrements the counter, stopping at zero.
func (s *ArtworkService) Unlike(ctx context.Context, artworkID uint) (int, error) {
	ctx, span := observability.StartSpan(ctx, "artwork.unlike", attribute.Int("artwork.id", int(artworkID)))
	defer span.End()

	count, err := s.artworkRepo.DecrementLikes(ctx, artworkID)
	if err != nil {
		span.RecordError(err)
		return 0, err
	}
	observability.RecordLike("artwork", "unlike")
	return count, nil
}

func lookupOwner(ctx context.Context, users repository.UserRepository, username string) (*models.User, error) {
	username = strings.TrimSpace(username)
	if username == "" {
		return nil, models.NewValidationError("owner is required")
	}
	return users.GetByUsername(ctx, username)
}

func validateContentText(title, description string) error {
	if len([]rune(title)) > maxTitleLen {
		return models.NewValidationError("Title too long (max 100 characters)")
	}
	if len([]rune(description)) > maxDescriptionLen {
		return models.NewValidationError("Description too long (max 5000 characters)")
	}
	return nil
}

func validateLink(field, value string) error {
	if len(value) > maxLinkLen {
		return models.NewValidationError(field + " too long (max 255 characters)")
	}
	return nil
}

func optionalString(v string) *string {
	v = strings.TrimSpace(v)
	if v == "" {
		return nil
	}
	return &v
}
