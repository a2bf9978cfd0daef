package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/sangkips/retail-pos/internal/application/service"
	"github.com/sangkips/retail-pos/internal/presentation/http/dto/request"
	"github.com/sangkips/retail-pos/internal/presentation/http/dto/response"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Login handles user login
func (h *AuthHandler) Login(c *gin.Context) {
	var req request.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "Invalid request body: "+err.Error())
		return
	}

	output, err := h.authService.Login(c.Request.Context(), &service.LoginInput{
		Username: req.Username,
		Password: req.Password,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Login successful", response.AuthResponse{
		User:        output.User,
		AccessToken: output.AccessToken,
		TokenType:   "Bearer",
		ExpiresAt:   output.ExpiresAt,
	})
}

// Me returns the identity carried by the session token, if any
func (h *AuthHandler) Me(c *gin.Context) {
	if GetCashierName(c) == "" {
		response.Unauthorized(c, "No active session")
		return
	}
	response.OK(c, "Session retrieved successfully", gin.H{
		"user_id":   c.GetString(ContextUserID),
		"username":  c.GetString(ContextUsername),
		"full_name": c.GetString(ContextFullName),
		"role":      c.GetString(ContextRole),
	})
}
