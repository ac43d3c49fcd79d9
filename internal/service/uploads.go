package service

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"artspace/internal/middleware"
	"artspace/internal/models"
	"artspace/internal/observability"
	"artspace/internal/storage"
)

// Upload is a file received with a request.
type Upload struct {
	Filename string
	Size     int64
	Open     func() (io.ReadCloser, error)
}

type uploader struct {
	store    storage.Store
	maxBytes int64
}

func newUploader(store storage.Store, maxBytes int64) *uploader {
	return &uploader{store: store, maxBytes: maxBytes}
}

// save stores f under category. With strict unset, a file of a disallowed
// type is skipped and "" is returned; otherwise it is a ValidationError.
func (u *uploader) save(ctx context.Context, category storage.Category, f *Upload, strict bool) (string, error) {
	if f == nil {
		return "", nil
	}
	if !storage.Allowed(category, f.Filename) {
		if strict {
			return "", models.NewValidationError(fmt.Sprintf("File type not allowed for %s", category))
		}
		return "", nil
	}
	if u.maxBytes > 0 && f.Size > u.maxBytes {
		return "", models.NewValidationError(fmt.Sprintf("File too large (max %d MB)", u.maxBytes>>20))
	}
	if u.store == nil {
		return "", models.NewInternalError(fmt.Errorf("upload storage is not configured"))
	}

	r, err := f.Open()
	if err != nil {
		return "", models.NewInternalError(err)
	}
	defer r.Close()

	rel, err := u.store.Save(ctx, category, f.Filename, r)
	if err != nil {
		var appErr *models.AppError
		if errors.As(err, &appErr) {
			return "", appErr
		}
		return "", models.NewInternalError(err)
	}
	observability.RecordUpload(string(category), u.store.Backend())
	return rel, nil
}

// discard removes a stored file whose database write failed.
func (u *uploader) discard(ctx context.Context, rel string) {
	if rel == "" || u.store == nil {
		return
	}
	if err := u.store.Delete(ctx, rel); err != nil {
		middleware.Logger.Warn("failed to remove orphaned upload",
			slog.String("path", rel),
			slog.String("error", err.Error()),
		)
	}
}
