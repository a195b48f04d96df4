package handler

import (
	"github.com/bacdepzai/orderdesk/internal/application/service"
	"github.com/bacdepzai/orderdesk/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// AdminHandler handles destructive owner operations
type AdminHandler struct {
	adminService *service.AdminService
}

// NewAdminHandler creates a new admin handler
func NewAdminHandler(adminService *service.AdminService) *AdminHandler {
	return &AdminHandler{adminService: adminService}
}

// Reset wipes history, draft, PIN and preferences
func (h *AdminHandler) Reset(c *gin.Context) {
	if err := h.adminService.Reset(c.Request.Context(), GetRole(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "All data has been reset", nil)
}
