package storage

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"artspace/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeS3 answers the handful of path-style S3 calls S3Store makes.
type fakeS3 struct {
	mu      sync.Mutex
	buckets map[string]bool
	objects map[string][]byte
	calls   []string
}

func newFakeS3(buckets ...string) *fakeS3 {
	f := &fakeS3{buckets: map[string]bool{}, objects: map[string][]byte{}}
	for _, b := range buckets {
		f.buckets[b] = true
	}
	return f
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	parts := strings.SplitN(strings.TrimPrefix(r.URL.Path, "/"), "/", 2)
	bucket := parts[0]
	key := ""
	if len(parts) == 2 {
		key = parts[1]
	}
	f.calls = append(f.calls, r.Method+" "+r.URL.Path)

	switch {
	case r.Method == http.MethodHead && key == "":
		if !f.buckets[bucket] {
			w.WriteHeader(http.StatusNotFound)
			return
		}
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodPut && key == "":
		f.buckets[bucket] = true
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		f.objects[bucket+"/"+key] = body
		w.Header().Set("ETag", `"etag"`)
		w.WriteHeader(http.StatusOK)
	case r.Method == http.MethodDelete:
		delete(f.objects, bucket+"/"+key)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusNotImplemented)
	}
}

func s3Config(endpoint string) *config.Config {
	return &config.Config{
		UploadBackend:     "s3",
		S3Endpoint:        endpoint,
		S3Region:          "us-east-1",
		S3Bucket:          "artspace",
		S3AccessKeyID:     "minio",
		S3SecretAccessKey: "minio-secret",
		PublicBaseURL:     "https://api.example.com",
	}
}

func TestPublicObjectURL(t *testing.T) {
	cfg := s3Config("http://minio:9000")
	assert.Equal(t, "http://minio:9000/artspace", publicObjectURL(cfg, "http://minio:9000/"))

	cfg.S3PublicURL = "https://cdn.example.com/art/"
	assert.Equal(t, "https://cdn.example.com/art", publicObjectURL(cfg, "http://minio:9000"))
}

func TestS3Store_CreatesMissingBucket(t *testing.T) {
	fake := newFakeS3()
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	_, err := NewS3Store(context.Background(), s3Config(srv.URL))
	require.NoError(t, err)
	assert.True(t, fake.buckets["artspace"])
	assert.Equal(t, []string{"HEAD /artspace", "PUT /artspace"}, fake.calls)
}

func TestS3Store_SaveURLAndDelete(t *testing.T) {
	fake := newFakeS3("artspace")
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)
	ctx := context.Background()

	store, err := NewS3Store(ctx, s3Config(srv.URL))
	require.NoError(t, err)
	assert.Equal(t, "s3", store.Backend())

	rel, err := store.Save(ctx, CategoryArtwork, "sunset.PNG", strings.NewReader("png-bytes"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(rel, "artworks/"))
	assert.True(t, strings.HasSuffix(rel, ".png"))

	fake.mu.Lock()
	body, ok := fake.objects["artspace/"+rel]
	fake.mu.Unlock()
	require.True(t, ok, "object not uploaded: %v", fake.calls)
	assert.Contains(t, string(body), "png-bytes")

	url := store.URL(rel)
	assert.Equal(t, srv.URL+"/artspace/"+rel, url)
	assert.NotContains(t, url, "api.example.com")
	assert.Equal(t, "https://img.youtube.com/t.jpg", store.URL("https://img.youtube.com/t.jpg"))
	assert.Equal(t, "", store.URL(""))

	require.NoError(t, store.Delete(ctx, rel))
	fake.mu.Lock()
	_, ok = fake.objects["artspace/"+rel]
	fake.mu.Unlock()
	assert.False(t, ok)
}

func TestS3Store_RejectsDisallowedType(t *testing.T) {
	fake := newFakeS3("artspace")
	srv := httptest.NewServer(fake)
	t.Cleanup(srv.Close)

	store, err := NewS3Store(context.Background(), s3Config(srv.URL))
	require.NoError(t, err)

	_, err = store.Save(context.Background(), CategoryProfilePicture, "me.gif", strings.NewReader("gif"))
	assert.Error(t, err)
}

func TestNewS3Store_RequiresBucket(t *testing.T) {
	cfg := s3Config("http://minio:9000")
	cfg.S3Bucket = ""
	_, err := NewS3Store(context.Background(), cfg)
	assert.Error(t, err)
}
