package storage_test

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"github.com/nagoyameshi/go-api-server/internal/config"
	"github.com/nagoyameshi/go-api-server/internal/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestImageKey(t *testing.T) {
	key, contentType, err := storage.ImageKey("restaurants", storage.Image{Filename: "Miso.JPG", Size: 1024}, 2<<20)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(key, "restaurants/"))
	assert.True(t, strings.HasSuffix(key, ".jpg"))
	assert.Equal(t, "image/jpeg", contentType)

	_, _, err = storage.ImageKey("restaurants", storage.Image{Filename: "menu.pdf", Size: 10}, 2<<20)
	assert.ErrorIs(t, err, storage.ErrUnsupportedType)

	_, _, err = storage.ImageKey("restaurants", storage.Image{Filename: "big.png", Size: 3 << 20}, 2<<20)
	assert.ErrorIs(t, err, storage.ErrTooLarge)
}

func TestLocalStore_PutAndDelete(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewLocalStore(dir, "/uploads")
	require.NoError(t, err)
	ctx := context.Background()

	// When: an image is stored
	ref, err := store.Put(ctx, "restaurants/a.png", strings.NewReader("png-bytes"), "image/png")
	require.NoError(t, err)

	// Then: the file exists and the URL points at the public path
	data, err := os.ReadFile(filepath.Join(dir, "restaurants", "a.png"))
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))
	assert.Equal(t, "/uploads/restaurants/a.png", store.URL(ref))

	// When: it is deleted (twice)
	require.NoError(t, store.Delete(ctx, ref))
	require.NoError(t, store.Delete(ctx, ref))

	_, err = os.Stat(filepath.Join(dir, "restaurants", "a.png"))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStore_RejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	store, err := storage.NewLocalStore(filepath.Join(dir, "uploads"), "/uploads")
	require.NoError(t, err)

	ref, err := store.Put(context.Background(), "../../etc/passwd", strings.NewReader("x"), "text/plain")
	require.NoError(t, err)

	// the key is confined to the upload directory
	_, statErr := os.Stat(filepath.Join(dir, "uploads", "etc", "passwd"))
	assert.NoError(t, statErr)
	assert.Equal(t, "../../etc/passwd", ref)
}

func TestLocalStore_EmptyRef(t *testing.T) {
	store, err := storage.NewLocalStore(t.TempDir(), "/uploads")
	require.NoError(t, err)

	assert.Equal(t, "", store.URL(""))
	assert.NoError(t, store.Delete(context.Background(), ""))
}

// fakeS3 accepts path-style PUT and DELETE object calls.
type fakeS3 struct {
	mu      sync.Mutex
	objects map[string]string
}

func (f *fakeS3) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.mu.Lock()
	defer f.mu.Unlock()

	switch r.Method {
	case http.MethodPut:
		body, _ := io.ReadAll(r.Body)
		f.objects[r.URL.Path] = string(body)
		w.WriteHeader(http.StatusOK)
	case http.MethodDelete:
		delete(f.objects, r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func TestS3Store_PutAndDelete(t *testing.T) {
	fake := &fakeS3{objects: map[string]string{}}
	server := httptest.NewServer(fake)
	t.Cleanup(server.Close)

	store, err := storage.NewS3Store(context.Background(), config.StorageConfig{
		S3Bucket:       "nagoyameshi",
		S3Region:       "us-east-1",
		S3Endpoint:     server.URL,
		S3AccessKey:    "test",
		S3SecretKey:    "test",
		S3UsePathStyle: true,
		PublicBaseURL:  "https://cdn.example.com",
	})
	require.NoError(t, err)
	ctx := context.Background()

	ref, err := store.Put(ctx, "restaurants/b.png", strings.NewReader("image"), "image/png")
	require.NoError(t, err)
	assert.Equal(t, "restaurants/b.png", ref)
	assert.Equal(t, "https://cdn.example.com/restaurants/b.png", store.URL(ref))

	fake.mu.Lock()
	_, stored := fake.objects["/nagoyameshi/restaurants/b.png"]
	fake.mu.Unlock()
	assert.True(t, stored)

	require.NoError(t, store.Delete(ctx, ref))

	fake.mu.Lock()
	_, stored = fake.objects["/nagoyameshi/restaurants/b.png"]
	fake.mu.Unlock()
	assert.False(t, stored)
}
