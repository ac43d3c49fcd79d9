package repository

import (
	"context"
	"time"

	"artspace/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// VideoRepository defines persistence operations for videos and their likes.
type VideoRepository interface {
	Create(ctx context.Context, video *models.Video) error
	GetByID(ctx context.Context, id uint) (*models.Video, error)
	GetByIDUnscoped(ctx context.Context, id uint) (*models.Video, error)
	List(ctx context.Context, filter ListFilter) ([]*models.Video, error)
	Update(ctx context.Context, video *models.Video) error
	SoftDelete(ctx context.Context, id uint, at time.Time) error
	ToggleLike(ctx context.Context, userID, videoID uint) (*models.LikeState, error)
	LikedVideoIDs(ctx context.Context, userID uint, videoIDs []uint) (map[uint]bool, error)
}

type videoRepository struct {
	db *gorm.DB
}

// NewVideoRepository returns a new VideoRepository implementation.
func NewVideoRepository(db *gorm.DB) VideoRepository {
	return &videoRepository{db: db}
}

func (r *videoRepository) Create(ctx context.Context, video *models.Video) error {
	if err := r.db.WithContext(ctx).Omit("User").Create(video).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

func (r *videoRepository) GetByID(ctx context.Context, id uint) (*models.Video, error) {
	var video models.Video
	if err := r.db.WithContext(ctx).Preload("User").First(&video, id).Error; err != nil {
		return nil, lookupError(err, "Video", id)
	}
	return &video, nil
}

func (r *videoRepository) GetByIDUnscoped(ctx context.Context, id uint) (*models.Video, error) {
	var video models.Video
	if err := r.db.WithContext(ctx).Unscoped().Preload("User").First(&video, id).Error; err != nil {
		return nil, lookupError(err, "Video", id)
	}
	return &video, nil
}

func (r *videoRepository) List(ctx context.Context, filter ListFilter) ([]*models.Video, error) {
	var videos []*models.Video
	q := applyFilter(newestFirst(r.db.WithContext(ctx).Preload("User")), filter)
	if err := q.Find(&videos).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return videos, nil
}

func (r *videoRepository) Update(ctx context.Context, video *models.Video) error {
	res := r.db.WithContext(ctx).Unscoped().
		Model(&models.Video{}).
		Where("id = ?", video.ID).
		Updates(map[string]interface{}{
			"judul":          video.Title,
			"link_youtube":   video.YoutubeLink,
			"link_thumbnail": video.ThumbnailLink,
			"deskripsi":      video.Description,
			"dibuat_oleh":    video.CreatedBy,
			"updated_at":     video.UpdatedAt,
		})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Video", video.ID)
	}
	return nil
}

// SoftDelete hides the video. Existing likes are kept.
func (r *videoRepository) SoftDelete(ctx context.Context, id uint, at time.Time) error {
	res := r.db.WithContext(ctx).Unscoped().
		Model(&models.Video{}).
		Where("id = ?", id).
		UpdateColumn("deleted_at", at)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Video", id)
	}
	return nil
}

// ToggleLike flips the caller's like on a live video and stores the
// recomputed count. The unique (user, video) index keeps concurrent likes
// from producing duplicate rows.
func (r *videoRepository) ToggleLike(ctx context.Context, userID, videoID uint) (*models.LikeState, error) {
	var state models.LikeState
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var video models.Video
		if err := tx.Select("id").First(&video, videoID).Error; err != nil {
			return lookupError(err, "Video", videoID)
		}

		res := tx.Where("user_id = ? AND video_id = ?", userID, videoID).Delete(&models.VideoLike{})
		if res.Error != nil {
			return models.NewInternalError(res.Error)
		}
		state.Liked = res.RowsAffected == 0
		if state.Liked {
			like := models.VideoLike{UserID: userID, VideoID: videoID}
			if err := tx.Clauses(clause.OnConflict{DoNothing: true}).Create(&like).Error; err != nil {
				return models.NewInternalError(err)
			}
		}

		var count int64
		if err := tx.Model(&models.VideoLike{}).Where("video_id = ?", videoID).Count(&count).Error; err != nil {
			return models.NewInternalError(err)
		}
		if err := tx.Model(&models.Video{}).Where("id = ?", videoID).UpdateColumn("like_count", count).Error; err != nil {
			return models.NewInternalError(err)
		}
		state.LikeCount = int(count)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &state, nil
}

// LikedVideoIDs reports which of videoIDs the user has liked.
func (r *videoRepository) LikedVideoIDs(ctx context.Context, userID uint, videoIDs []uint) (map[uint]bool, error) {
	liked := make(map[uint]bool, len(videoIDs))
	if userID == 0 || len(videoIDs) == 0 {
		return liked, nil
	}

	var ids []uint
	err := r.db.WithContext(ctx).
		Model(&models.VideoLike{}).
		Where("user_id = ? AND video_id IN ?", userID, videoIDs).
		Pluck("video_id", &ids).Error
	if err != nil {
		return nil, models.NewInternalError(err)
	}
	for _, id := range ids {
		liked[id] = true
	}
	return liked, nil
}
