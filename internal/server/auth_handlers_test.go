package server

import (
	"fmt"
	"net/http"
	"testing"
	"time"

	"artspace/internal/cache"
	"artspace/internal/models"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterAndLogin(t *testing.T) {
	_, app := setupTestServer(t)

	register := map[string]string{
		"email":        "a@x.com",
		"username":     "art1",
		"password":     "p",
		"nama_lengkap": "Ann",
	}

	status, body := doJSON(t, app, http.MethodPost, "/api/auth/register", "", register)
	require.Equal(t, http.StatusCreated, status, body)
	assert.Equal(t, "Registration successful", body["message"])
	assert.NotEmpty(t, body["token"])
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "art1", user["username"])
	assert.Equal(t, "a@x.com", user["email"])
	assert.NotContains(t, user, "password")

	status, _ = doJSON(t, app, http.MethodPost, "/api/auth/register", "", register)
	assert.Equal(t, http.StatusConflict, status)

	status, body = doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "a@x.com", "password": "p",
	})
	require.Equal(t, http.StatusOK, status, body)
	assert.Equal(t, true, body["success"])
	assert.NotEmpty(t, body["token"])

	status, _ = doJSON(t, app, http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "a@x.com", "password": "wrong",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestRegisterValidation(t *testing.T) {
	_, app := setupTestServer(t)

	tests := []struct {
		name string
		body map[string]string
	}{
		{"missing fields", map[string]string{"email": "a@x.com"}},
		{"bad email", map[string]string{"email": "nope", "username": "art1", "password": "p", "nama_lengkap": "Ann"}},
		{"short username", map[string]string{"email": "a@x.com", "username": "ab", "password": "p", "nama_lengkap": "Ann"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			status, _ := doJSON(t, app, http.MethodPost, "/api/auth/register", "", tt.body)
			assert.Equal(t, http.StatusBadRequest, status)
		})
	}
}

func TestAuthRequired(t *testing.T) {
	_, app := setupTestServer(t)

	status, body := doJSON(t, app, http.MethodGet, "/api/users/me", "", nil)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.NotEmpty(t, body["message"])

	status, _ = doJSON(t, app, http.MethodGet, "/api/users/me", "not-a-token", nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	token, id := registerUser(t, app, "painter")
	status, body = doJSON(t, app, http.MethodGet, "/api/users/me", token, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, float64(id), body["id"])
}

func TestDeletedAccountTokenRejected(t *testing.T) {
	_, app := setupTestServer(t)
	token, _ := registerUser(t, app, "leaver")

	status, _ := doJSON(t, app, http.MethodDelete, "/api/users/me", token, nil)
	require.Equal(t, http.StatusOK, status)

	status, _ = doJSON(t, app, http.MethodGet, "/api/users/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestDeletedAccountTokenRejectedWithWarmCache(t *testing.T) {
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	cache.SetClient(rdb)
	t.Cleanup(func() {
		cache.SetClient(nil)
		_ = rdb.Close()
	})

	s, app := setupTestServer(t)
	token, id := registerUser(t, app, "cached")

	status, _ := doJSON(t, app, http.MethodGet, fmt.Sprintf("/api/users/%d/detail", id), "", nil)
	require.Equal(t, http.StatusOK, status)
	require.True(t, mr.Exists(cache.UserKey(id)))

	// Soft delete without invalidating, as a failed DEL would leave it.
	require.NoError(t, s.db.Model(&models.User{}).Where("id = ?", id).
		UpdateColumn("deleted_at", time.Now()).Error)
	require.True(t, mr.Exists(cache.UserKey(id)))

	status, _ = doJSON(t, app, http.MethodGet, "/api/users/me", token, nil)
	assert.Equal(t, http.StatusUnauthorized, status)
}
