package handler

import (
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"vocalhub-backend/internal/infrastructure/storage"
	"vocalhub-backend/internal/shared/response"
)

// Handler streams stored assets back to clients
type Handler struct {
	store storage.AssetStore
}

func NewHandler(store storage.AssetStore) *Handler {
	return &Handler{store: store}
}

// Serve - GET /v1/files/*ref
func (h *Handler) Serve(c *gin.Context) {
	ref, err := storage.ParseRef(strings.TrimPrefix(c.Param("ref"), "/"))
	if err != nil {
		response.NotFound(c, "file not found")
		return
	}

	rc, obj, err := h.store.Retrieve(c.Request.Context(), ref)
	if err != nil {
		response.FromError(c, err)
		return
	}
	defer rc.Close()

	c.Header("Content-Type", obj.ContentType)
	c.Header("Content-Disposition", fmt.Sprintf("inline; filename=%q", ref.Name()))
	if obj.Size >= 0 {
		c.Header("Content-Length", strconv.FormatInt(obj.Size, 10))
	}
	c.Status(http.StatusOK)

	if _, err := io.Copy(c.Writer, rc); err != nil {
		log.Warn().Err(err).Str("ref", ref.String()).Msg("file stream interrupted")
	}
}
