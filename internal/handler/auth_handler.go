package handler

import (
	"errors"
	"net/http"

	"github.com/cisclab/registrar-backend/internal/middleware"
	"github.com/cisclab/registrar-backend/internal/response"
	"github.com/cisclab/registrar-backend/internal/service"
	"github.com/cisclab/registrar-backend/internal/validator"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles admin login and profile lookup.
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest is the payload for admin login.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login godoc
// POST /api/v1/auth/login
// Verifies credentials and returns a signed JWT plus the admin profile.
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if fields := validator.Bind(c, &req); fields != nil {
		response.FailWithFields(c, http.StatusBadRequest, response.ErrValidation, fields)
		return
	}

	admin, err := h.authService.Authenticate(req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			response.Fail(c, http.StatusUnauthorized, response.ErrInvalidCredentials)
			return
		}
		response.FromError(c, err)
		return
	}

	token, err := h.authService.GenerateToken(admin)
	if err != nil {
		response.Fail(c, http.StatusInternalServerError, response.ErrInternal)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"token": token,
		"admin": admin.Public(),
	})
}

// Me godoc
// GET /api/v1/auth/me
// Returns the authenticated admin's token claims.
func (h *AuthHandler) Me(c *gin.Context) {
	claims, ok := middleware.ClaimsFrom(c)
	if !ok {
		response.Fail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"admin_id": claims.AdminID,
		"email":    claims.Email,
	})
}
