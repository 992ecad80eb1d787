package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vocalhub-backend/internal/domains/link/model"
	"vocalhub-backend/internal/domains/link/service"
	"vocalhub-backend/internal/shared/response"
)

type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// List - GET /v1/links?category=
func (h *Handler) List(c *gin.Context) {
	category, err := model.ParseCategory(c.Query("category"))
	if err != nil {
		response.FromError(c, err)
		return
	}

	links, err := h.service.List(c.Request.Context(), category)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.SuccessWithMeta(c, http.StatusOK, links, &response.Meta{Total: len(links)})
}

// Create - POST /v1/admin/links
func (h *Handler) Create(c *gin.Context) {
	var req model.CreateLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	link, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, link)
}
