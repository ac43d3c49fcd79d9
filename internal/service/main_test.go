package service

import (
	"context"
	"errors"
	"io"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"artspace/internal/auth"
	"artspace/internal/config"
	"artspace/internal/database"
	"artspace/internal/models"
	"artspace/internal/repository"
	"artspace/internal/storage"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// memStore keeps uploads in memory.
type memStore struct {
	mu    sync.Mutex
	files map[string]string
	seq   int
}

func newMemStore() *memStore {
	return &memStore{files: make(map[string]string)}
}

func (m *memStore) Save(_ context.Context, category storage.Category, filename string, r io.Reader) (string, error) {
	if !storage.Allowed(category, filename) {
		return "", models.NewValidationError("file type not allowed")
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.seq++
	rel := string(category) + "/" + strings.Repeat("f", m.seq) + "-" + filename
	m.files[rel] = string(data)
	return rel, nil
}

func (m *memStore) Delete(_ context.Context, rel string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.files, rel)
	return nil
}

func (m *memStore) URL(rel string) string { return "/static/uploads/" + rel }

func (m *memStore) Backend() string { return "memory" }

func (m *memStore) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.files)
}

func fileUpload(name, content string) *Upload {
	return &Upload{
		Filename: name,
		Size:     int64(len(content)),
		Open: func() (io.ReadCloser, error) {
			return io.NopCloser(strings.NewReader(content)), nil
		},
	}
}

func strPtr(s string) *string { return &s }

// fixedClock is a controllable time source.
type fixedClock struct{ t time.Time }

func (c *fixedClock) Now() time.Time { return c.t }

type testEnv struct {
	db       *gorm.DB
	store    *memStore
	clock    *fixedClock
	userRepo repository.UserRepository
	tokens   *auth.TokenService
	users    *UserService
	artworks *ArtworkService
	videos   *VideoService
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	cfg := &config.Config{
		Env:           "test",
		DBDriver:      "sqlite",
		DBSQLitePath:  filepath.Join(t.TempDir(), "service.db"),
		JWTSecret:     "service-test-secret-with-enough-length",
		TokenTTLHours: 24,
	}
	db, err := database.Connect(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	env := &testEnv{
		db:    db,
		store: newMemStore(),
		clock: &fixedClock{t: time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC)},
	}
	env.userRepo = repository.NewUserRepository(db)
	artworkRepo := repository.NewArtworkRepository(db)
	videoRepo := repository.NewVideoRepository(db)
	env.tokens = auth.NewTokenService(cfg, env.userRepo)

	const maxUpload = 1 << 20
	env.users = NewUserService(env.userRepo, artworkRepo, videoRepo, env.tokens, env.store, maxUpload).WithClock(env.clock.Now)
	env.artworks = NewArtworkService(artworkRepo, env.userRepo, env.store, maxUpload).WithClock(env.clock.Now)
	env.videos = NewVideoService(videoRepo, env.userRepo, env.store, maxUpload).WithClock(env.clock.Now)
	return env
}

func (e *testEnv) register(t *testing.T, username string) *models.User {
	t.Helper()
	res, err := e.users.Register(context.Background(), RegisterInput{
		Email:    username + "@example.com",
		Username: username,
		Password: "secret",
		FullName: "Artist " + username,
	})
	require.NoError(t, err)
	return res.User
}

func assertAppError(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError with code %s, got %v", code, err)
	assert.Equal(t, code, appErr.Code)
}
