package server

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"artspace/internal/config"
	"artspace/internal/database"
	"artspace/internal/storage"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
)

// pngBytes is a minimal PNG header, enough for an upload body.
var pngBytes = []byte("\x89PNG\r\n\x1a\n0000")

func setupTestServer(t *testing.T) (*Server, *fiber.App) {
	t.Helper()
	dir := t.TempDir()
	cfg := &config.Config{
		Env:             "test",
		Port:            "0",
		JWTSecret:       "server-test-secret-with-enough-length",
		TokenTTLHours:   24,
		DBDriver:        "sqlite",
		DBSQLitePath:    filepath.Join(dir, "server.db"),
		UploadBackend:   "local",
		UploadDir:       filepath.Join(dir, "uploads"),
		UploadMaxSizeMB: 1,
		PublicBaseURL:   "http://localhost:8080",
	}
	db, err := database.Connect(cfg)
	require.NoError(t, err)
	t.Cleanup(func() {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
	})

	store, err := storage.NewLocalStore(cfg.UploadDir, cfg.PublicBaseURL+storage.LocalURLPrefix)
	require.NoError(t, err)

	s, err := NewServerWithDeps(cfg, db, nil, store)
	require.NoError(t, err)
	return s, s.NewApp()
}

// doJSON sends body as JSON and decodes the response into a generic value.
func doJSON(t *testing.T, app *fiber.App, method, path, token string, body interface{}) (int, map[string]interface{}) {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	return send(t, app, req, token)
}

func doMultipart(t *testing.T, app *fiber.App, method, path, token string, fields map[string]string, fileField, fileName string, content []byte) (int, map[string]interface{}) {
	t.Helper()
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	for k, v := range fields {
		require.NoError(t, w.WriteField(k, v))
	}
	if fileField != "" {
		part, err := w.CreateFormFile(fileField, fileName)
		require.NoError(t, err)
		_, err = part.Write(content)
		require.NoError(t, err)
	}
	require.NoError(t, w.Close())

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	return send(t, app, req, token)
}

func send(t *testing.T, app *fiber.App, req *http.Request, token string) (int, map[string]interface{}) {
	t.Helper()
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer func() { _ = resp.Body.Close() }()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	out := map[string]interface{}{}
	if len(raw) > 0 && raw[0] == '{' {
		require.NoError(t, json.Unmarshal(raw, &out))
	} else if len(raw) > 0 && raw[0] == '[' {
		var items []interface{}
		require.NoError(t, json.Unmarshal(raw, &items))
		out["items"] = items
	}
	return resp.StatusCode, out
}

// registerUser creates an account through the API and returns its token and ID.
func registerUser(t *testing.T, app *fiber.App, username string) (string, uint) {
	t.Helper()
	status, body := doJSON(t, app, http.MethodPost, "/api/auth/register", "", map[string]string{
		"email":        username + "@example.com",
		"username":     username,
		"password":     "secret",
		"nama_lengkap": "Artist " + username,
	})
	require.Equal(t, http.StatusCreated, status, body)
	user := body["user"].(map[string]interface{})
	return body["token"].(string), uint(user["id"].(float64))
}

func createArtwork(t *testing.T, app *fiber.App, token, title string) uint {
	t.Helper()
	status, body := doMultipart(t, app, http.MethodPost, "/api/karya_seni", token,
		map[string]string{"judul_karya": title, "deskripsi": "oil on canvas"},
		"link_foto", "art.png", pngBytes)
	require.Equal(t, http.StatusCreated, status, body)
	return uint(body["karya_seni"].(map[string]interface{})["id"].(float64))
}

func createVideo(t *testing.T, app *fiber.App, token, title string) uint {
	t.Helper()
	status, body := doJSON(t, app, http.MethodPost, "/api/ruang_video", token, map[string]string{
		"judul":          title,
		"link_youtube":   "https://youtu.be/abc123",
		"link_thumbnail": "https://img.example.com/thumb.jpg",
		"dibuat_oleh":    "Studio",
	})
	require.Equal(t, http.StatusCreated, status, body)
	return uint(body["ruang_video"].(map[string]interface{})["id"].(float64))
}

func items(body map[string]interface{}) []interface{} {
	list, _ := body["items"].([]interface{})
	return list
}
