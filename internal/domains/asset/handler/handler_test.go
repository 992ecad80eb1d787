package handler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vocalhub-backend/internal/infrastructure/storage"
)

func newRouter(t *testing.T) (*gin.Engine, *storage.LocalStore) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	store, err := storage.NewLocalStore(t.TempDir())
	require.NoError(t, err)

	r := gin.New()
	r.GET("/files/*ref", NewHandler(store).Serve)
	return r, store
}

func TestServeStreamsAsset(t *testing.T) {
	r, store := newRouter(t)

	ref, err := store.Store(context.Background(), storage.BytesFile("sample.MP3", []byte("ID3audio")), storage.CategorySamples)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/files/"+ref.String(), nil))

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "audio/mpeg", w.Header().Get("Content-Type"))
	assert.Equal(t, `inline; filename="`+ref.Name()+`"`, w.Header().Get("Content-Disposition"))
	assert.Equal(t, "ID3audio", w.Body.String())
}

func TestServeMissingAndInvalid(t *testing.T) {
	r, _ := newRouter(t)

	for _, path := range []string{
		"/files/samples/" + uuid.NewString() + ".mp3",
		"/files/../../etc/passwd",
		"/files/secrets/key.pem",
	} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, http.StatusNotFound, w.Code, path)
	}
}
