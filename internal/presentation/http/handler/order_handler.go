package handler

import (
	"github.com/bacdepzai/orderdesk/internal/application/service"
	"github.com/bacdepzai/orderdesk/internal/presentation/http/dto/request"
	"github.com/bacdepzai/orderdesk/internal/presentation/http/dto/response"
	"github.com/bacdepzai/orderdesk/pkg/pagination"
	"github.com/gin-gonic/gin"
)

// OrderHandler handles the order history
type OrderHandler struct {
	orderService   *service.OrderService
	invoiceService *service.InvoiceService
	exportService  *service.ExportService
	costGate       CostGate
}

// NewOrderHandler creates a new order handler
func NewOrderHandler(
	orderService *service.OrderService,
	invoiceService *service.InvoiceService,
	exportService *service.ExportService,
	costGate CostGate,
) *OrderHandler {
	return &OrderHandler{
		orderService:   orderService,
		invoiceService: invoiceService,
		exportService:  exportService,
		costGate:       costGate,
	}
}

// List handles listing history newest first
func (h *OrderHandler) List(c *gin.Context) {
	var req request.OrderFilterRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		bindError(c, err)
		return
	}

	snaps, page, err := h.orderService.ListOrders(c.Request.Context(), &service.ListOrdersInput{
		Search: req.Search,
		Pagination: &pagination.PaginationParams{
			Page:    req.Page,
			PerPage: req.PerPage,
		},
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	result := pagination.NewPaginatedResult(response.NewOrderViews(snaps, showCost(c, h.costGate)), page)
	response.SuccessWithPagination(c, 200, "Orders retrieved successfully", result)
}

func (h *OrderHandler) find(c *gin.Context) (*service.OrderSnapshot, bool) {
	id, ok := parseID(c)
	if !ok {
		return nil, false
	}
	snap, err := h.orderService.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return nil, false
	}
	return snap, true
}

// Get handles reading one history record
func (h *OrderHandler) Get(c *gin.Context) {
	snap, ok := h.find(c)
	if !ok {
		return
	}
	response.OK(c, "Order retrieved successfully", response.NewOrderView(snap, showCost(c, h.costGate)))
}

// Load handles copying a history record into the draft for editing
func (h *OrderHandler) Load(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	snap, err := h.orderService.LoadForEdit(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Order loaded into draft", response.NewOrderView(snap, showCost(c, h.costGate)))
}

// Duplicate handles starting a new draft from a history record
func (h *OrderHandler) Duplicate(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	snap, err := h.orderService.Duplicate(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Order duplicated into draft", response.NewOrderView(snap, showCost(c, h.costGate)))
}

// Share handles rendering the quotation text of a history record
func (h *OrderHandler) Share(c *gin.Context) {
	snap, ok := h.find(c)
	if !ok {
		return
	}
	shareText(c, snap)
}

// Invoice handles rendering a history record as a PDF
func (h *OrderHandler) Invoice(c *gin.Context) {
	snap, ok := h.find(c)
	if !ok {
		return
	}
	invoicePDF(c, h.invoiceService, snap, "hoa-don-"+snap.Order.ID.String()[:8]+".pdf")
}

// Delete handles removing a history record
func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}
	if err := h.orderService.DeleteOrder(c.Request.Context(), GetRole(c), id); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Order deleted successfully", nil)
}

// Clear handles wiping the whole history
func (h *OrderHandler) Clear(c *gin.Context) {
	if err := h.orderService.ClearHistory(c.Request.Context(), GetRole(c)); err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Order history cleared", nil)
}

// ExportCSV handles downloading the history as CSV
func (h *OrderHandler) ExportCSV(c *gin.Context) {
	snaps, err := h.orderService.AllOrders(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	data, err := h.exportService.CSV(snaps, showCost(c, h.costGate))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, "lich-su-bao-gia.csv", "text/csv; charset=utf-8", data)
}

// ExportXLSX handles downloading the history as an Excel workbook
func (h *OrderHandler) ExportXLSX(c *gin.Context) {
	snaps, err := h.orderService.AllOrders(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	data, err := h.exportService.XLSX(snaps, showCost(c, h.costGate))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, "lich-su-bao-gia.xlsx",
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
