package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"vocalhub-backend/internal/domains/profile/model"
	"vocalhub-backend/internal/domains/profile/service"
	"vocalhub-backend/internal/shared/response"
)

type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// List - GET /v1/profiles?q=&engine=&language=&gender=
func (h *Handler) List(c *gin.Context) {
	filter := model.ListFilter{
		Query:    c.Query("q"),
		Engine:   c.Query("engine"),
		Language: c.Query("language"),
	}
	if g := c.Query("gender"); g != "" {
		filter.Gender = model.ParseGender(g)
		if !filter.Gender.Valid() {
			response.BadRequest(c, "gender must be MALE, FEMALE or UNKNOWN")
			return
		}
	}

	profiles, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, profiles, &response.Meta{Total: len(profiles)})
}

// Get - GET /v1/profiles/:id
func (h *Handler) Get(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid profile id")
		return
	}

	detail, err := h.service.Get(c.Request.Context(), id)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, detail)
}
