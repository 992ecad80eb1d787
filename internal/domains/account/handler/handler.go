package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"vocalhub-backend/internal/domains/account/model"
	"vocalhub-backend/internal/domains/account/service"
	"vocalhub-backend/internal/shared/middleware"
	"vocalhub-backend/internal/shared/response"
)

type Handler struct {
	service service.ServiceInterface
}

func NewHandler(service service.ServiceInterface) *Handler {
	return &Handler{service: service}
}

// Register - POST /v1/auth/register
func (h *Handler) Register(c *gin.Context) {
	var req model.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	account, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusCreated, account)
}

// Login - POST /v1/auth/login
func (h *Handler) Login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request body")
		return
	}

	resp, err := h.service.Login(c.Request.Context(), req)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp)
}

// Me - GET /v1/users/me
func (h *Handler) Me(c *gin.Context) {
	actor := middleware.CurrentActor(c)
	if !actor.IsAuthenticated() {
		response.Unauthorized(c, "login required")
		return
	}

	account, err := h.service.GetProfile(c.Request.Context(), actor.AccountID)
	if err != nil {
		response.FromError(c, err)
		return
	}
	response.Success(c, http.StatusOK, account)
}
