package handler

import (
	"github.com/bacdepzai/orderdesk/internal/application/service"
	"github.com/bacdepzai/orderdesk/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// PrinterHandler handles printer-related HTTP requests.
type PrinterHandler struct {
	printerService *service.PrinterService
	draftService   *service.DraftService
	orderService   *service.OrderService
}

// NewPrinterHandler creates a new printer handler.
func NewPrinterHandler(printerService *service.PrinterService, draftService *service.DraftService, orderService *service.OrderService) *PrinterHandler {
	return &PrinterHandler{
		printerService: printerService,
		draftService:   draftService,
		orderService:   orderService,
	}
}

// GetStatus returns the current printer connection status.
func (h *PrinterHandler) GetStatus(c *gin.Context) {
	status := h.printerService.GetStatus(c.Request.Context())
	response.OK(c, "Printer status retrieved", status)
}

// PrintDraft prints a receipt for the current draft.
func (h *PrinterHandler) PrintDraft(c *gin.Context) {
	snap, err := h.draftService.Get(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	h.print(c, snap)
}

// PrintOrder prints a receipt for a history record.
func (h *PrinterHandler) PrintOrder(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	snap, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.print(c, snap)
}

func (h *PrinterHandler) print(c *gin.Context, snap *service.OrderSnapshot) {
	receipt, err := h.printerService.PrintOrder(c.Request.Context(), snap)
	if err != nil {
		// The receipt is still useful on screen when the printer is down.
		if receipt != nil {
			response.OK(c, "Receipt generated but printing failed", gin.H{
				"receipt": receipt,
				"warning": err.Error(),
			})
			return
		}
		response.Error(c, err)
		return
	}
	response.OK(c, "Receipt printed successfully", gin.H{
		"receipt": receipt,
	})
}
