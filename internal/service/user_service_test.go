package service

import (
	"context"
	"strings"
	"testing"
	"time"

	"artspace/internal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUserService_RegisterAndLogin(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	in := RegisterInput{Email: "a@x.com", Username: "art1", Password: "p", FullName: "Ann"}
	res, err := env.users.Register(ctx, in)
	require.NoError(t, err)
	assert.NotEmpty(t, res.Token)
	assert.NotEqual(t, "p", res.User.Password)

	_, err = env.users.Register(ctx, in)
	assertAppError(t, err, models.CodeConflict)

	login, err := env.users.Login(ctx, LoginInput{Email: "a@x.com", Password: "p"})
	require.NoError(t, err)
	require.NotEmpty(t, login.Token)

	verified, err := env.tokens.Verify(ctx, "Bearer "+login.Token)
	require.NoError(t, err)
	assert.Equal(t, res.User.ID, verified.ID)

	_, err = env.users.Login(ctx, LoginInput{Email: "a@x.com", Password: "wrong"})
	assertAppError(t, err, models.CodeUnauthorized)

	_, err = env.users.Login(ctx, LoginInput{Email: "nobody@x.com", Password: "p"})
	assertAppError(t, err, models.CodeUnauthorized)
}

func TestUserService_RegisterValidation(t *testing.T) {
	env := setupEnv(t)

	tests := []struct {
		name string
		in   RegisterInput
	}{
		{"missing email", RegisterInput{Username: "art1", Password: "p", FullName: "Ann"}},
		{"missing username", RegisterInput{Email: "a@x.com", Password: "p", FullName: "Ann"}},
		{"missing password", RegisterInput{Email: "a@x.com", Username: "art1", FullName: "Ann"}},
		{"missing full name", RegisterInput{Email: "a@x.com", Username: "art1", Password: "p"}},
		{"bad email", RegisterInput{Email: "not-an-email", Username: "art1", Password: "p", FullName: "Ann"}},
		{"bad username", RegisterInput{Email: "a@x.com", Username: "a b", Password: "p", FullName: "Ann"}},
		{"bio too long", RegisterInput{Email: "a@x.com", Username: "art1", Password: "p", FullName: "Ann", Bio: strings.Repeat("x", 501)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := env.users.Register(context.Background(), tt.in)
			assertAppError(t, err, models.CodeValidation)
		})
	}
}

func TestUserService_RegisterConflictsWithDeletedAccount(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	user := env.register(t, "ghost")
	require.NoError(t, env.users.DeleteAccount(ctx, user.ID))

	_, err := env.users.Register(ctx, RegisterInput{Email: "new@example.com", Username: "ghost", Password: "p", FullName: "G"})
	assertAppError(t, err, models.CodeConflict)
}

func TestUserService_UpdateProfile(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	user := env.register(t, "painter")
	other := env.register(t, "sculptor")

	t.Run("other user is forbidden", func(t *testing.T) {
		_, err := env.users.UpdateProfile(ctx, UpdateProfileInput{UserID: other.ID, TargetID: user.ID, Bio: strPtr("hacked")})
		assertAppError(t, err, models.CodeForbidden)
	})

	t.Run("missing user is not found", func(t *testing.T) {
		_, err := env.users.UpdateProfile(ctx, UpdateProfileInput{UserID: user.ID, TargetID: 9999})
		assertAppError(t, err, models.CodeNotFound)
	})

	t.Run("username collision", func(t *testing.T) {
		_, err := env.users.UpdateProfile(ctx, UpdateProfileInput{UserID: user.ID, TargetID: user.ID, Username: strPtr("sculptor")})
		assertAppError(t, err, models.CodeConflict)
	})

	t.Run("partial update with avatar", func(t *testing.T) {
		updated, err := env.users.UpdateProfile(ctx, UpdateProfileInput{
			UserID:   user.ID,
			TargetID: user.ID,
			Location: strPtr("Ubud"),
			Avatar:   fileUpload("me.png", "png-bytes"),
		})
		require.NoError(t, err)
		assert.Equal(t, "Ubud", updated.Location)
		assert.Equal(t, "painter", updated.Username)
		require.NotNil(t, updated.AvatarPath)
		assert.True(t, strings.HasPrefix(*updated.AvatarPath, "profile_pictures/"))
		require.NotNil(t, updated.UpdatedAt)
		assert.True(t, updated.UpdatedAt.Equal(env.clock.t))

		stored, err := env.users.GetProfile(ctx, user.ID)
		require.NoError(t, err)
		assert.Equal(t, "Ubud", stored.Location)
		assert.Equal(t, "Artist painter", stored.FullName)
	})

	t.Run("disallowed avatar type is ignored", func(t *testing.T) {
		before := env.store.count()
		updated, err := env.users.UpdateProfile(ctx, UpdateProfileInput{
			UserID:   user.ID,
			TargetID: user.ID,
			Avatar:   fileUpload("anim.gif", "gif"),
		})
		require.NoError(t, err)
		require.NotNil(t, updated.AvatarPath)
		assert.False(t, strings.HasSuffix(*updated.AvatarPath, ".gif"))
		assert.Equal(t, before, env.store.count())
	})
}

func TestUserService_DeleteAccountVoidsTokens(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	res, err := env.users.Register(ctx, RegisterInput{Email: "bye@example.com", Username: "leaver", Password: "p", FullName: "L"})
	require.NoError(t, err)

	require.NoError(t, env.users.DeleteAccount(ctx, res.User.ID))

	_, err = env.tokens.Verify(ctx, "Bearer "+res.Token)
	assertAppError(t, err, models.CodeUnauthorized)

	_, err = env.users.Login(ctx, LoginInput{Email: "bye@example.com", Password: "p"})
	assertAppError(t, err, models.CodeUnauthorized)
}

func TestUserService_GetArtistDetail(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	user := env.register(t, "maker")
	kept, err := env.artworks.Create(ctx, CreateArtworkInput{UserID: user.ID, Title: "kept", Image: fileUpload("a.png", "a")})
	require.NoError(t, err)
	removed, err := env.artworks.Create(ctx, CreateArtworkInput{UserID: user.ID, Title: "removed", Image: fileUpload("b.png", "b")})
	require.NoError(t, err)
	require.NoError(t, env.artworks.Delete(ctx, user.ID, removed.ID))
	_, err = env.videos.Create(ctx, CreateVideoInput{UserID: user.ID, Title: "clip", YoutubeLink: "https://youtu.be/x", ThumbnailLink: "https://img/x.jpg", CreatedBy: "me"})
	require.NoError(t, err)

	detail, err := env.users.GetArtistDetail(ctx, user.ID)
	require.NoError(t, err)
	require.Len(t, detail.Artworks, 1)
	assert.Equal(t, kept.ID, detail.Artworks[0].ID)
	assert.Len(t, detail.Videos, 1)

	require.NoError(t, env.users.DeleteAccount(ctx, user.ID))
	_, err = env.users.GetArtistDetail(ctx, user.ID)
	assertAppError(t, err, models.CodeNotFound)
}

func TestUserService_TokenExpiry(t *testing.T) {
	env := setupEnv(t)
	ctx := context.Background()

	res, err := env.users.Register(ctx, RegisterInput{Email: "old@example.com", Username: "oldtimer", Password: "p", FullName: "O"})
	require.NoError(t, err)

	later := env.tokens.WithClock(func() time.Time { return res.ExpiresAt.Add(time.Minute) })
	_, err = later.Verify(ctx, "Bearer "+res.Token)
	assertAppError(t, err, models.CodeUnauthorized)
}
