package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmetcoskunkizilkaya/gallery-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/gallery-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/gallery-backend/internal/middleware"
	"github.com/ahmetcoskunkizilkaya/gallery-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/gallery-backend/internal/services"
)

const testSecret = "test-secret-key"

// galleryStore is a stateful in-memory ImageStore mirroring the
// repository's delete-with-audit semantics.
type galleryStore struct {
	images    []models.GeneratedImage // kept sorted newest first
	auditLogs []models.DeletionLog
	listErr   error
	deleteErr error
}

func (g *galleryStore) List(_ context.Context, offset, limit int) ([]models.GeneratedImage, error) {
	if g.listErr != nil {
		return nil, g.listErr
	}
	if offset >= len(g.images) {
		return nil, nil
	}
	end := offset + limit
	if end > len(g.images) {
		end = len(g.images)
	}
	return g.images[offset:end], nil
}

func (g *galleryStore) Count(_ context.Context) (int64, error) {
	if g.listErr != nil {
		return 0, g.listErr
	}
	return int64(len(g.images)), nil
}

func (g *galleryStore) DeleteWithAudit(_ context.Context, id uint) error {
	if g.deleteErr != nil {
		return g.deleteErr
	}
	for i, img := range g.images {
		if img.ID == id {
			g.auditLogs = append(g.auditLogs, models.DeletionLog{
				ImageID:   img.ID,
				DeletedAt: time.Now().UTC(),
				ImageURL:  img.DisplayURL,
			})
			g.images = append(g.images[:i], g.images[i+1:]...)
			return nil
		}
	}
	// Nonexistent id: zero audit rows, zero deletes, still success.
	return nil
}

func seedGallery(n int) *galleryStore {
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	images := make([]models.GeneratedImage, 0, n)
	// Newest first: highest id has the latest timestamp.
	for i := n; i >= 1; i-- {
		images = append(images, models.GeneratedImage{
			ID:          uint(i),
			Prompt:      fmt.Sprintf("prompt %d", i),
			GeneratedAt: base.Add(time.Duration(i) * time.Minute),
			DisplayURL:  fmt.Sprintf("https://images.example.com/%d.png", i),
			Title:       fmt.Sprintf("image-%d", i),
			Width:       512,
			Height:      512,
			Size:        1024,
		})
	}
	return &galleryStore{images: images}
}

func newImageApp(store *galleryStore) *fiber.App {
	cfg := &config.Config{AuthProvider: config.ProviderLocal, JWTSecret: testSecret}
	h := NewImageHandler(services.NewImageService(store))

	app := fiber.New()
	app.Get("/api/images", h.List)
	app.Delete("/api/images/:id", middleware.Protected(cfg, nil), middleware.AdminRequired(), h.Delete)
	return app
}

func adminToken(t *testing.T) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"id":       float64(1),
		"username": "root",
		"is_admin": true,
		"iat":      time.Now().Unix(),
		"exp":      time.Now().Add(time.Hour).Unix(),
	})
	signed, err := token.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return signed
}

func decodeImages(t *testing.T, resp *http.Response) dto.ImagesResponse {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var out dto.ImagesResponse
	require.NoError(t, json.Unmarshal(body, &out))
	return out
}

func TestListDefaultsToFirstPage(t *testing.T) {
	app := newImageApp(seedGallery(25))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/images", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	out := decodeImages(t, resp)
	assert.Equal(t, int64(25), out.Total)
	assert.Equal(t, 1, out.Page)
	assert.Equal(t, 10, out.Limit)
	require.Len(t, out.Images, 10)
	assert.Equal(t, uint(25), out.Images[0].ID)
	assert.Equal(t, uint(16), out.Images[9].ID)
}

func TestListSecondPage(t *testing.T) {
	app := newImageApp(seedGallery(25))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/images?page=2&limit=10", nil))
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	// Rows ranked 11-20 by recency.
	out := decodeImages(t, resp)
	require.Len(t, out.Images, 10)
	assert.Equal(t, uint(15), out.Images[0].ID)
	assert.Equal(t, uint(6), out.Images[9].ID)
}

func TestListConsecutivePagesDisjoint(t *testing.T) {
	app := newImageApp(seedGallery(25))

	seen := make(map[uint]bool)
	for page := 1; page <= 3; page++ {
		url := fmt.Sprintf("/api/images?page=%d&limit=10", page)
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, url, nil))
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)

		out := decodeImages(t, resp)
		for _, img := range out.Images {
			assert.False(t, seen[img.ID], "image %d returned twice", img.ID)
			seen[img.ID] = true
		}
	}
	assert.Len(t, seen, 25)
}

func TestListOrderedNewestFirst(t *testing.T) {
	app := newImageApp(seedGallery(25))

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/images?limit=25", nil))
	require.NoError(t, err)
	out := decodeImages(t, resp)

	for i := 1; i < len(out.Images); i++ {
		prev, cur := out.Images[i-1], out.Images[i]
		assert.False(t, cur.GeneratedAt.After(prev.GeneratedAt))
	}
}

func TestListInvalidPagination(t *testing.T) {
	app := newImageApp(seedGallery(5))

	for _, q := range []string{"?page=0", "?limit=0", "?limit=101", "?page=-1&limit=10"} {
		resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/images"+q, nil))
		require.NoError(t, err)
		assert.Equal(t, http.StatusBadRequest, resp.StatusCode, "query %s", q)
	}
}

func TestListStorageError(t *testing.T) {
	app := newImageApp(&galleryStore{listErr: errors.New("connection refused")})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/images", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)

	// Storage details never leak to the client.
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.NotContains(t, string(body), "connection refused")
}

func TestDeleteExistingImage(t *testing.T) {
	store := seedGallery(3)
	app := newImageApp(store)

	req := httptest.NewRequest(http.MethodDelete, "/api/images/2", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	var msg dto.MessageResponse
	require.NoError(t, json.Unmarshal(body, &msg))
	assert.Equal(t, "Image deleted successfully", msg.Message)

	// Exactly one audit row, capturing the pre-deletion URL.
	require.Len(t, store.auditLogs, 1)
	assert.Equal(t, uint(2), store.auditLogs[0].ImageID)
	assert.Equal(t, "https://images.example.com/2.png", store.auditLogs[0].ImageURL)

	// The catalog row is gone.
	for _, img := range store.images {
		assert.NotEqual(t, uint(2), img.ID)
	}
	assert.Len(t, store.images, 2)
}

func TestDeleteNonexistentImageIsSuccessfulNoop(t *testing.T) {
	store := seedGallery(3)
	app := newImageApp(store)

	req := httptest.NewRequest(http.MethodDelete, "/api/images/999", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Empty(t, store.auditLogs)
	assert.Len(t, store.images, 3)
}

func TestDeleteWithoutCredential(t *testing.T) {
	store := seedGallery(3)
	app := newImageApp(store)

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/api/images/1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
	assert.Len(t, store.images, 3)
}

func TestDeleteStorageError(t *testing.T) {
	app := newImageApp(&galleryStore{deleteErr: errors.New("deadlock detected")})

	req := httptest.NewRequest(http.MethodDelete, "/api/images/1", nil)
	req.Header.Set("Authorization", "Bearer "+adminToken(t))
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
}
