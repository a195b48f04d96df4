package handler

import (
	"github.com/bacdepzai/orderdesk/internal/application/service"
	"github.com/bacdepzai/orderdesk/internal/presentation/http/dto/request"
	"github.com/bacdepzai/orderdesk/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// StatsHandler handles the owner's monthly figures
type StatsHandler struct {
	statsService *service.StatsService
}

// NewStatsHandler creates a new stats handler
func NewStatsHandler(statsService *service.StatsService) *StatsHandler {
	return &StatsHandler{statsService: statsService}
}

// Monthly handles getting revenue, profit and top customers of a month
func (h *StatsHandler) Monthly(c *gin.Context) {
	var req request.MonthlyStatsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	stats, err := h.statsService.Monthly(c.Request.Context(), GetRole(c), req.Month)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, "Monthly stats retrieved successfully", stats)
}
