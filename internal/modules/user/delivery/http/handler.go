package handler

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/quizbase/quizbase/internal/entity"
	"github.com/quizbase/quizbase/internal/middleware"
	"github.com/quizbase/quizbase/internal/modules/user/dto"
	"github.com/quizbase/quizbase/internal/modules/user/service"
	"github.com/quizbase/quizbase/pkg/apperror"
	"github.com/quizbase/quizbase/pkg/response"
	"github.com/quizbase/quizbase/pkg/validator"
)

type AuthHandler struct {
	service service.AuthService
}

func NewAuthHandler(service service.AuthService) *AuthHandler {
	return &AuthHandler{service: service}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var input dto.RegisterInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, fmt.Errorf("%w: %s", apperror.ErrValidation, validator.FormatValidationError(err)))
		return
	}

	user, err := h.service.Register(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	message := "user registered successfully"
	if user.Role == entity.RoleAdmin {
		message = "administrator registered successfully"
	}
	response.Created(c, message, dto.FromUser(user))
}

func (h *AuthHandler) Login(c *gin.Context) {
	var input dto.LoginInput
	if err := c.ShouldBindJSON(&input); err != nil {
		response.Error(c, fmt.Errorf("%w: %s", apperror.ErrValidation, validator.FormatValidationError(err)))
		return
	}

	auth, err := h.service.Login(c.Request.Context(), input)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "login successful", auth)
}

// Logout is envelope-only: tokens are stateless, the client discards its
// copy and that is the whole ceremony.
func (h *AuthHandler) Logout(c *gin.Context) {
	response.OK(c, "logout successful", nil)
}

func (h *AuthHandler) Me(c *gin.Context) {
	id, ok := middleware.UserID(c)
	if !ok {
		response.Error(c, apperror.ErrAuthRequired)
		return
	}

	user, err := h.service.CurrentUser(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "", dto.FromUser(user))
}

func (h *AuthHandler) CheckAuth(c *gin.Context) {
	id, ok := middleware.UserID(c)
	if !ok {
		response.OK(c, "", dto.CheckAuthResponse{Authenticated: false})
		return
	}

	user, err := h.service.CurrentUser(c.Request.Context(), id)
	if err != nil {
		response.OK(c, "", dto.CheckAuthResponse{Authenticated: false})
		return
	}

	response.OK(c, "", dto.CheckAuthResponse{
		Authenticated: true,
		User:          dto.FromUser(user),
	})
}
