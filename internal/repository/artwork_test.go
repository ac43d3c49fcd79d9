package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"artspace/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func assertCode(t *testing.T, err error, code string) {
	t.Helper()
	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr), "expected AppError, got %v", err)
	assert.Equal(t, code, appErr.Code)
}

func TestArtworkRepository_ListNewestFirst(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewArtworkRepository(db)
	ctx := context.Background()

	alice := createUser(t, db, "alice")
	bob := createUser(t, db, "bob")
	base := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	createArtwork(t, db, alice.ID, "old", base)
	createArtwork(t, db, bob.ID, "middle", base.Add(time.Hour))
	createArtwork(t, db, alice.ID, "new", base.Add(2*time.Hour))

	all, err := repo.List(ctx, ListFilter{})
	require.NoError(t, err)
	require.Len(t, all, 3)
	assert.Equal(t, []string{"new", "middle", "old"}, []string{all[0].Title, all[1].Title, all[2].Title})
	require.NotNil(t, all[0].User)
	assert.Equal(t, "alice", all[0].User.Username)

	latest, err := repo.List(ctx, ListFilter{Limit: 1})
	require.NoError(t, err)
	require.Len(t, latest, 1)
	assert.Equal(t, "new", latest[0].Title)

	owned, err := repo.List(ctx, ListFilter{OwnerID: alice.ID})
	require.NoError(t, err)
	require.Len(t, owned, 2)
	assert.Equal(t, "new", owned[0].Title)
}

func TestArtworkRepository_DeletedOwnerIsNotPreloaded(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewArtworkRepository(db)
	users := NewUserRepository(db)
	ctx := context.Background()

	owner := createUser(t, db, "gone")
	artwork := createArtwork(t, db, owner.ID, "orphan", time.Now())
	require.NoError(t, users.SoftDelete(ctx, owner.ID, time.Now()))

	got, err := repo.GetByID(ctx, artwork.ID)
	require.NoError(t, err)
	assert.Equal(t, models.AnonymousArtist, models.ArtistName(got.User))
}

func TestArtworkRepository_SoftDelete(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewArtworkRepository(db)
	ctx := context.Background()

	owner := createUser(t, db, "owner")
	artwork := createArtwork(t, db, owner.ID, "piece", time.Now())

	require.NoError(t, repo.SoftDelete(ctx, artwork.ID, time.Now()))

	_, err := repo.GetByID(ctx, artwork.ID)
	assertCode(t, err, models.CodeNotFound)

	hidden, err := repo.GetByIDUnscoped(ctx, artwork.ID)
	require.NoError(t, err)
	assert.True(t, hidden.DeletedAt.Valid)

	listed, err := repo.List(ctx, ListFilter{})
	require.NoError(t, err)
	assert.Empty(t, listed)

	assertCode(t, repo.SoftDelete(ctx, 4242, time.Now()), models.CodeNotFound)
}

func TestArtworkRepository_UpdateLeavesLikeCount(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewArtworkRepository(db)
	ctx := context.Background()

	owner := createUser(t, db, "owner")
	artwork := createArtwork(t, db, owner.ID, "draft", time.Now())
	_, err := repo.IncrementLikes(ctx, artwork.ID)
	require.NoError(t, err)

	now := time.Now()
	wa := "https://wa.me/62811"
	artwork.Title = "final"
	artwork.WhatsAppLink = &wa
	artwork.UpdatedAt = &now
	artwork.LikeCount = 0
	require.NoError(t, repo.Update(ctx, artwork))

	got, err := repo.GetByID(ctx, artwork.ID)
	require.NoError(t, err)
	assert.Equal(t, "final", got.Title)
	assert.Equal(t, 1, got.LikeCount)
	require.NotNil(t, got.WhatsAppLink)
	assert.Equal(t, wa, *got.WhatsAppLink)
	assert.NotNil(t, got.UpdatedAt)

	assertCode(t, repo.Update(ctx, &models.Artwork{ID: 999, Title: "x"}), models.CodeNotFound)
}

func TestArtworkRepository_LikeCounter(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewArtworkRepository(db)
	ctx := context.Background()

	owner := createUser(t, db, "owner")
	artwork := createArtwork(t, db, owner.ID, "liked", time.Now())

	count, err := repo.IncrementLikes(ctx, artwork.ID)
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	count, err = repo.IncrementLikes(ctx, artwork.ID)
	require.NoError(t, err)
	assert.Equal(t, 2, count)

	for _, want := range []int{1, 0, 0} {
		count, err = repo.DecrementLikes(ctx, artwork.ID)
		require.NoError(t, err)
		assert.Equal(t, want, count)
	}
}

func TestArtworkRepository_LikeMissingOrDeleted(t *testing.T) {
	db := setupSQLiteDB(t)
	repo := NewArtworkRepository(db)
	ctx := context.Background()

	_, err := repo.IncrementLikes(ctx, 77)
	assertCode(t, err, models.CodeNotFound)

	owner := createUser(t, db, "owner")
	artwork := createArtwork(t, db, owner.ID, "deleted", time.Now())
	require.NoError(t, repo.SoftDelete(ctx, artwork.ID, time.Now()))

	_, err = repo.IncrementLikes(ctx, artwork.ID)
	assertCode(t, err, models.CodeNotFound)
	_, err = repo.DecrementLikes(ctx, artwork.ID)
	assertCode(t, err, models.CodeNotFound)
}
