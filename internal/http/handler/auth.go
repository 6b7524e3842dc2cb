package handler

import (
	"github.com/gin-gonic/gin"

	"peoplehub.app/api/internal/http/dto"
	"peoplehub.app/api/internal/http/response"
	"peoplehub.app/api/internal/service"
)

type AuthHandler struct {
	authService service.AuthService
}

func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if !bindJSON(c, &req) {
		return
	}

	user, token, err := h.authService.Register(c.Request.Context(), req.Name, req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}

	response.Created(c, "registration successful", dto.ToAuthResponse(user, token))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if !bindJSON(c, &req) {
		return
	}

	user, token, err := h.authService.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		fail(c, err)
		return
	}

	response.OK(c, "login successful", dto.ToAuthResponse(user, token))
}

func (h *AuthHandler) Me(c *gin.Context) {
	response.OK(c, "user fetched", dto.ToUserResponse(currentUser(c)))
}

func (h *AuthHandler) ChangePassword(c *gin.Context) {
	var req dto.ChangePasswordRequest
	if !bindJSON(c, &req) {
		return
	}

	user := currentUser(c)
	if err := h.authService.ChangePassword(c.Request.Context(), user.ID, req.CurrentPassword, req.NewPassword); err != nil {
		fail(c, err)
		return
	}

	response.OK(c, "password updated", nil)
}
