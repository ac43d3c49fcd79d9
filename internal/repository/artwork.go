package repository

import (
	"context"
	"time"

	"artspace/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// ArtworkRepository defines persistence operations for artworks.
type ArtworkRepository interface {
	Create(ctx context.Context, artwork *models.Artwork) error
	GetByID(ctx context.Context, id uint) (*models.Artwork, error)
	GetByIDUnscoped(ctx context.Context, id uint) (*models.Artwork, error)
	List(ctx context.Context, filter ListFilter) ([]*models.Artwork, error)
	Update(ctx context.Context, artwork *models.Artwork) error
	SoftDelete(ctx context.Context, id uint, at time.Time) error
	IncrementLikes(ctx context.Context, id uint) (int, error)
	DecrementLikes(ctx context.Context, id uint) (int, error)
}

type artworkRepository struct {
	db *gorm.DB
}

// NewArtworkRepository returns a new ArtworkRepository implementation.
func NewArtworkRepository(db *gorm.DB) ArtworkRepository {
	return &artworkRepository{db: db}
}

func (r *artworkRepository) Create(ctx context.Context, artwork *models.Artwork) error {
	if err := r.db.WithContext(ctx).Omit("User").Create(artwork).Error; err != nil {
		return models.NewInternalError(err)
	}
	return nil
}

// GetByID returns a live artwork with its owner preloaded. A soft-deleted
// owner is left nil.
func (r *artworkRepository) GetByID(ctx context.Context, id uint) (*models.Artwork, error) {
	var artwork models.Artwork
	if err := r.db.WithContext(ctx).Preload("User").First(&artwork, id).Error; err != nil {
		return nil, lookupError(err, "Artwork", id)
	}
	return &artwork, nil
}

// GetByIDUnscoped also returns soft-deleted artworks.
func (r *artworkRepository) GetByIDUnscoped(ctx context.Context, id uint) (*models.Artwork, error) {
	var artwork models.Artwork
	if err := r.db.WithContext(ctx).Unscoped().Preload("User").First(&artwork, id).Error; err != nil {
		return nil, lookupError(err, "Artwork", id)
	}
	return &artwork, nil
}

func (r *artworkRepository) List(ctx context.Context, filter ListFilter) ([]*models.Artwork, error) {
	var artworks []*models.Artwork
	q := applyFilter(newestFirst(r.db.WithContext(ctx).Preload("User")), filter)
	if err := q.Find(&artworks).Error; err != nil {
		return nil, models.NewInternalError(err)
	}
	return artworks, nil
}

// Update writes the editable columns. like_count is never touched so
// concurrent likes are not lost.
func (r *artworkRepository) Update(ctx context.Context, artwork *models.Artwork) error {
	res := r.db.WithContext(ctx).Unscoped().
		Model(&models.Artwork{}).
		Where("id = ?", artwork.ID).
		Updates(map[string]interface{}{
			"judul_karya":   artwork.Title,
			"deskripsi":     artwork.Description,
			"link_foto":     artwork.ImagePath,
			"link_whatsapp": artwork.WhatsAppLink,
			"updated_at":    artwork.UpdatedAt,
		})
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Artwork", artwork.ID)
	}
	return nil
}

func (r *artworkRepository) SoftDelete(ctx context.Context, id uint, at time.Time) error {
	res := r.db.WithContext(ctx).Unscoped().
		Model(&models.Artwork{}).
		Where("id = ?", id).
		UpdateColumn("deleted_at", at)
	if res.Error != nil {
		return models.NewInternalError(res.Error)
	}
	if res.RowsAffected == 0 {
		return models.NewNotFoundError("Artwork", id)
	}
	return nil
}

func (r *artworkRepository) IncrementLikes(ctx context.Context, id uint) (int, error) {
	return r.adjustLikes(ctx, id, gorm.Expr("COALESCE(like_count, 0) + 1"))
}

// DecrementLikes never takes the counter below zero.
func (r *artworkRepository) DecrementLikes(ctx context.Context, id uint) (int, error) {
	return r.adjustLikes(ctx, id, gorm.Expr("CASE WHEN COALESCE(like_count, 0) > 0 THEN like_count - 1 ELSE 0 END"))
}

// adjustLikes applies expr to a live artwork in a single UPDATE and reads
// the resulting count back in the same transaction.
func (r *artworkRepository) adjustLikes(ctx context.Context, id uint, expr clause.Expr) (int, error) {
	var count int
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.Artwork{}).Where("id = ?", id).UpdateColumn("like_count", expr)
		if res.Error != nil {
			return models.NewInternalError(res.Error)
		}
		if res.RowsAffected == 0 {
			return models.NewNotFoundError("Artwork", id)
		}
		return readLikeCount(tx, &models.Artwork{}, id, &count)
	})
	if err != nil {
		return 0, err
	}
	return count, nil
}
