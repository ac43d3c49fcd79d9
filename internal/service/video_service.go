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

type VideoService struct {
	videoRepo repository.VideoRepository
	userRepo  repository.UserRepository
	uploads   *uploader
	now       func() time.Time
}

// CreateVideoInput accepts the thumbnail either as a link or as an uploaded
// file. An uploaded file wins when both are given.
type CreateVideoInput struct {
	UserID        uint
	Title         string
	YoutubeLink   string
	ThumbnailLink string
	Thumbnail     *Upload
	Description   string
	CreatedBy     string
}

type UpdateVideoInput struct {
	UserID        uint
	VideoID       uint
	Title         *string
	YoutubeLink   *string
	ThumbnailLink *string
	Thumbnail     *Upload
	Description   *string
	CreatedBy     *string
}

// VideoListing is a page of videos plus the caller's like state.
type VideoListing struct {
	Videos []*models.Video
	Liked  map[uint]bool
}

func NewVideoService(
	videoRepo repository.VideoRepository,
	userRepo repository.UserRepository,
	store storage.Store,
	maxUploadBytes int64,
) *VideoService {
	return &VideoService{
		videoRepo: videoRepo,
		userRepo:  userRepo,
		uploads:   newUploader(store, maxUploadBytes),
		now:       time.Now,
	}
}

// WithClock replaces the time source used for updated_at and deleted_at.
func (s *VideoService) WithClock(now func() time.Time) *VideoService {
	s.now = now
	return s
}

func (s *VideoService) Create(ctx context.Context, in CreateVideoInput) (*models.Video, error) {
	in.Title = strings.TrimSpace(in.Title)
	in.YoutubeLink = strings.TrimSpace(in.YoutubeLink)
	in.ThumbnailLink = strings.TrimSpace(in.ThumbnailLink)
	in.CreatedBy = strings.TrimSpace(in.CreatedBy)

	if in.Title == "" || in.YoutubeLink == "" || (in.ThumbnailLink == "" && in.Thumbnail == nil) || in.CreatedBy == "" {
		return nil, models.NewValidationError("judul, link_youtube, link_thumbnail, and dibuat_oleh are required")
	}
	if err := validateContentText(in.Title, in.Description); err != nil {
		return nil, err
	}
	for field, v := range map[string]string{"link_youtube": in.YoutubeLink, "link_thumbnail": in.ThumbnailLink, "dibuat_oleh": in.CreatedBy} {
		if err := validateLink(field, v); err != nil {
			return nil, err
		}
	}

	thumbnail := in.ThumbnailLink
	uploaded, err := s.uploads.save(ctx, storage.CategoryThumbnail, in.Thumbnail, true)
	if err != nil {
		return nil, err
	}
	if uploaded != "" {
		thumbnail = uploaded
	}

	video := &models.Video{
		UserID:        in.UserID,
		Title:         in.Title,
		YoutubeLink:   in.YoutubeLink,
		ThumbnailLink: thumbnail,
		Description:   in.Description,
		CreatedBy:     in.CreatedBy,
	}
	if err := s.videoRepo.Create(ctx, video); err != nil {
		s.uploads.discard(ctx, uploaded)
		return nil, err
	}
	return video, nil
}

func (s *VideoService) List(ctx context.Context, callerID uint) (*VideoListing, error) {
	return s.list(ctx, repository.ListFilter{}, callerID)
}

// Latest returns the newest videos. A non-positive limit uses the default.
func (s *VideoService) Latest(ctx context.Context, limit int, callerID uint) (*VideoListing, error) {
	if limit <= 0 {
		limit = defaultLatest
	}
	return s.list(ctx, repository.ListFilter{Limit: limit}, callerID)
}

// ListByOwnerUsername returns an empty listing for unknown usernames.
func (s *VideoService) ListByOwnerUsername(ctx context.Context, username string, callerID uint) (*VideoListing, error) {
	owner, err := lookupOwner(ctx, s.userRepo, username)
	if err != nil {
		return nil, err
	}
	if owner == nil {
		return &VideoListing{Videos: []*models.Video{}, Liked: map[uint]bool{}}, nil
	}
	return s.list(ctx, repository.ListFilter{OwnerID: owner.ID}, callerID)
}

func (s *VideoService) ListMine(ctx context.Context, userID uint) (*VideoListing, error) {
	return s.list(ctx, repository.ListFilter{OwnerID: userID}, userID)
}

func (s *VideoService) list(ctx context.Context, filter repository.ListFilter, callerID uint) (*VideoListing, error) {
	videos, err := s.videoRepo.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	ids := make([]uint, len(videos))
	for i, v := range videos {
		ids[i] = v.ID
	}
	liked, err := s.videoRepo.LikedVideoIDs(ctx, callerID, ids)
	if err != nil {
		return nil, err
	}
	return &VideoListing{Videos: videos, Liked: liked}, nil
}

// Get returns a live video. The owner can also read their own soft-deleted
// video.
func (s *VideoService) Get(ctx context.Context, id, callerID uint) (*models.Video, bool, error) {
	video, err := s.videoRepo.GetByIDUnscoped(ctx, id)
	if err != nil {
		return nil, false, err
	}
	if video.DeletedAt.Valid && (callerID == 0 || video.UserID != callerID) {
		return nil, false, models.NewNotFoundError("Video", id)
	}
	liked, err := s.videoRepo.LikedVideoIDs(ctx, callerID, []uint{id})
	if err != nil {
		return nil, false, err
	}
	return video, liked[id], nil
}

func (s *VideoService) Update(ctx context.Context, in UpdateVideoInput) (*models.Video, error) {
	video, err := s.videoRepo.GetByIDUnscoped(ctx, in.VideoID)
	if err != nil {
		return nil, err
	}
	if err := authorizeOwner(video, in.UserID, "edit"); err != nil {
		return nil, err
	}

	assign := func(dst *string, src *string) {
		if src != nil && strings.TrimSpace(*src) != "" {
			*dst = strings.TrimSpace(*src)
		}
	}
	assign(&video.Title, in.Title)
	assign(&video.YoutubeLink, in.YoutubeLink)
	assign(&video.ThumbnailLink, in.ThumbnailLink)
	assign(&video.CreatedBy, in.CreatedBy)
	if in.Description != nil {
		video.Description = *in.Description
	}
	if err := validateContentText(video.Title, video.Description); err != nil {
		return nil, err
	}
	for field, v := range map[string]string{"link_youtube": video.YoutubeLink, "link_thumbnail": video.ThumbnailLink, "dibuat_oleh": video.CreatedBy} {
		if err := validateLink(field, v); err != nil {
			return nil, err
		}
	}

	uploaded, err := s.uploads.save(ctx, storage.CategoryThumbnail, in.Thumbnail, false)
	if err != nil {
		return nil, err
	}
	if uploaded != "" {
		video.ThumbnailLink = uploaded
	}

	now := s.now()
	video.UpdatedAt = &now
	if err := s.videoRepo.Update(ctx, video); err != nil {
		s.uploads.discard(ctx, uploaded)
		return nil, err
	}
	return video, nil
}

func (s *VideoService) Delete(ctx context.Context, userID, videoID uint) error {
	video, err := s.videoRepo.GetByIDUnscoped(ctx, videoID)
	if err != nil {
		return err
	}
	if err := authorizeOwner(video, userID, "delete"); err != nil {
		return err
	}
	return s.videoRepo.SoftDelete(ctx, videoID, s.now())
}

// ToggleLike flips the caller's like. Two consecutive calls return the
// video to its original state.
func (s *VideoService) ToggleLike(ctx context.Context, userID, videoID uint) (*models.LikeState, error) {
	ctx, span := observability.StartSpan(ctx, "video.toggle_like",
		attribute.Int("video.id", int(videoID)),
		attribute.Int("user.id", int(userID)),
	)
	defer span.End()

	state, err := s.videoRepo.ToggleLike(ctx, userID, videoID)
	if err != nil {
		span.RecordError(err)
		return nil, err
	}
	action := "unlike"
	if state.Liked {
		action = "like"
	}
	observability.RecordLike("video", action)
	span.SetAttributes(attribute.Bool("video.liked", state.Liked), attribute.Int("video.like_count", state.LikeCount))
	return state, nil
}
