package handler

import (
	"github.com/bacdepzai/orderdesk/internal/application/service"
	"github.com/bacdepzai/orderdesk/internal/presentation/http/dto/request"
	"github.com/bacdepzai/orderdesk/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// AssistantHandler handles the chat assistant
type AssistantHandler struct {
	assistantService *service.AssistantService
}

// NewAssistantHandler creates a new assistant handler
func NewAssistantHandler(assistantService *service.AssistantService) *AssistantHandler {
	return &AssistantHandler{assistantService: assistantService}
}

// Ask handles sending a prompt
func (h *AssistantHandler) Ask(c *gin.Context) {
	var req request.AskAssistantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	reply, err := h.assistantService.Ask(c.Request.Context(), GetRole(c), req.Prompt)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Assistant replied", reply)
}

// History handles reading the transcript
func (h *AssistantHandler) History(c *gin.Context) {
	response.OK(c, "Assistant history retrieved successfully", h.assistantService.History())
}

// Clear handles dropping the transcript
func (h *AssistantHandler) Clear(c *gin.Context) {
	h.assistantService.ClearHistory()
	response.OK(c, "Assistant history cleared", nil)
}
