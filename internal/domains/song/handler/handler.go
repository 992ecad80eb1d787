package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"vocalhub-backend/internal/domains/song/model"
	"vocalhub-backend/internal/domains/song/service"
	"vocalhub-backend/internal/infrastructure/storage"
	"vocalhub-backend/internal/shared/apperror"
	"vocalhub-backend/internal/shared/middleware"
	"vocalhub-backend/internal/shared/response"
	"vocalhub-backend/internal/shared/utils"
)

var errInvalidID = apperror.Validation("INVALID_ID", "invalid id")

type Handler struct {
	service        service.ServiceInterface
	maxUploadBytes int64
}

func NewHandler(service service.ServiceInterface, maxUploadBytes int64) *Handler {
	return &Handler{service: service, maxUploadBytes: maxUploadBytes}
}

// Create - POST /v1/songs (multipart)
func (h *Handler) Create(c *gin.Context) {
	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxUploadBytes)

	form, err := c.MultipartForm()
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			response.ErrorResponse(c, http.StatusRequestEntityTooLarge, "PAYLOAD_TOO_LARGE", "upload exceeds the size limit")
			return
		}
		response.BadRequest(c, "could not read multipart form")
		return
	}

	value := func(key string) string {
		if v := form.Value[key]; len(v) > 0 {
			return v[0]
		}
		return ""
	}
	file := func(key string) *storage.File {
		if f := form.File[key]; len(f) > 0 {
			return storage.FileFromHeader(f[0])
		}
		return nil
	}

	profileID, err := utils.ParseOptionalUUID(value("vocaloidId"))
	if err != nil {
		response.FromError(c, errInvalidID.WithDetails(map[string]string{"vocaloidId": "must be a uuid"}))
		return
	}

	song, err := h.service.Create(c.Request.Context(), middleware.CurrentActor(c), &model.CreateSongRequest{
		Title:       value("title"),
		ProfileID:   profileID,
		Creator:     value("creator"),
		BilibiliURL: value("bilibiliUrl"),
		Lyrics:      value("lyrics"),
		SongFile:    file("songFile"),
		CoverFile:   file("coverFile"),
	})
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, song)
}

// List - GET /v1/songs?profile_id=
func (h *Handler) List(c *gin.Context) {
	profileID, err := utils.ParseOptionalUUID(c.Query("profile_id"))
	if err != nil {
		response.FromError(c, errInvalidID)
		return
	}

	songs, err := h.service.List(c.Request.Context(), profileID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, songs, &response.Meta{Total: len(songs)})
}

// Get - GET /v1/songs/:id
func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.FromError(c, errInvalidID)
		return
	}

	song, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, song)
}

// ListBySubmitter - GET /v1/users/:id/songs
func (h *Handler) ListBySubmitter(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.FromError(c, errInvalidID)
		return
	}

	songs, err := h.service.ListBySubmitter(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, songs, &response.Meta{Total: len(songs)})
}
