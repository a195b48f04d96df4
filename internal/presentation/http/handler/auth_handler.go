package handler

import (
	"github.com/bacdepzai/orderdesk/internal/application/service"
	"github.com/bacdepzai/orderdesk/internal/presentation/http/dto/request"
	"github.com/bacdepzai/orderdesk/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// AuthHandler handles the owner PIN gate
type AuthHandler struct {
	authService *service.AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// Unlock handles switching to the owner role
func (h *AuthHandler) Unlock(c *gin.Context) {
	var req request.UnlockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	result, err := h.authService.Unlock(c.Request.Context(), req.Pin)
	if err != nil {
		response.Error(c, err)
		return
	}

	message := "Owner mode unlocked"
	if result.PinCreated {
		message = "Owner PIN created"
	}
	response.OK(c, message, gin.H{
		"access_token": result.Token,
		"token_type":   "Bearer",
		"role":         result.Role,
		"expires_at":   result.ExpiresAt,
	})
}

// Status reports the caller's role and whether a PIN exists
func (h *AuthHandler) Status(c *gin.Context) {
	status, err := h.authService.Status(c.Request.Context(), GetRole(c))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Auth status retrieved successfully", status)
}

// ChangePin handles replacing the owner PIN
func (h *AuthHandler) ChangePin(c *gin.Context) {
	var req request.ChangePinRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	err := h.authService.ChangePin(c.Request.Context(), GetRole(c), &service.ChangePinInput{
		CurrentPin: req.CurrentPin,
		NewPin:     req.NewPin,
	})
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "PIN changed successfully", nil)
}
