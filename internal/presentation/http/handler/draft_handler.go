package handler

import (
	"github.com/bacdepzai/orderdesk/internal/application/service"
	"github.com/bacdepzai/orderdesk/internal/presentation/http/dto/request"
	"github.com/bacdepzai/orderdesk/internal/presentation/http/dto/response"
	"github.com/gin-gonic/gin"
)

// DraftHandler handles the current draft order
type DraftHandler struct {
	draftService   *service.DraftService
	orderService   *service.OrderService
	invoiceService *service.InvoiceService
	costGate       CostGate
}

// NewDraftHandler creates a new draft handler
func NewDraftHandler(
	draftService *service.DraftService,
	orderService *service.OrderService,
	invoiceService *service.InvoiceService,
	costGate CostGate,
) *DraftHandler {
	return &DraftHandler{
		draftService:   draftService,
		orderService:   orderService,
		invoiceService: invoiceService,
		costGate:       costGate,
	}
}

func (h *DraftHandler) respond(c *gin.Context, message string, snap *service.OrderSnapshot, err error) {
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, message, response.NewOrderView(snap, showCost(c, h.costGate)))
}

func toItemInput(req *request.ItemRequest) *service.ItemInput {
	return &service.ItemInput{
		Name:        req.Name,
		Width:       req.Width,
		Length:      req.Length,
		Quantity:    req.Quantity,
		Unit:        req.Unit,
		PriceBuy:    req.PriceBuy,
		PriceImport: req.PriceImport,
	}
}

// Get handles reading the draft
func (h *DraftHandler) Get(c *gin.Context) {
	snap, err := h.draftService.Get(c.Request.Context())
	h.respond(c, "Draft retrieved successfully", snap, err)
}

// Update handles editing order-level fields
func (h *DraftHandler) Update(c *gin.Context) {
	var req request.UpdateDraftRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	snap, err := h.draftService.UpdateFields(c.Request.Context(), &service.UpdateDraftInput{
		CustomerName:       req.CustomerName,
		Phone:              req.Phone,
		Address:            req.Address,
		Notes:              req.Notes,
		Date:               req.Date,
		OrderNo:            req.OrderNo,
		ShippingCollection: req.ShippingCollection,
		ShippingCost:       req.ShippingCost,
		DiscountPercent:    req.DiscountPercent,
	})
	h.respond(c, "Draft updated successfully", snap, err)
}

// Reset handles starting over with an empty draft
func (h *DraftHandler) Reset(c *gin.Context) {
	snap, err := h.draftService.Reset(c.Request.Context())
	h.respond(c, "Draft reset successfully", snap, err)
}

// AddItem handles appending a line
func (h *DraftHandler) AddItem(c *gin.Context) {
	var req request.ItemRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
	}

	snap, err := h.draftService.AddItem(c.Request.Context(), toItemInput(&req))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Item added successfully", response.NewOrderView(snap, showCost(c, h.costGate)))
}

// UpdateItem handles editing the line at :index
func (h *DraftHandler) UpdateItem(c *gin.Context) {
	index, ok := parseIndex(c)
	if !ok {
		return
	}

	var req request.ItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		bindError(c, err)
		return
	}

	snap, err := h.draftService.UpdateItem(c.Request.Context(), index, toItemInput(&req))
	h.respond(c, "Item updated successfully", snap, err)
}

// RemoveItem handles dropping the line at :index
func (h *DraftHandler) RemoveItem(c *gin.Context) {
	index, ok := parseIndex(c)
	if !ok {
		return
	}

	snap, err := h.draftService.RemoveItem(c.Request.Context(), index)
	h.respond(c, "Item removed successfully", snap, err)
}

// Save handles committing the draft to history
func (h *DraftHandler) Save(c *gin.Context) {
	var req request.SaveDraftRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			bindError(c, err)
			return
		}
	}

	snap, err := h.orderService.SaveDraft(c.Request.Context(), req.ConfirmBelowCost)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Created(c, "Order saved successfully", response.NewOrderView(snap, showCost(c, h.costGate)))
}

// Share handles rendering the quotation text of the draft
func (h *DraftHandler) Share(c *gin.Context) {
	snap, err := h.draftService.Get(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	shareText(c, snap)
}

// Invoice handles rendering the draft as a PDF
func (h *DraftHandler) Invoice(c *gin.Context) {
	snap, err := h.draftService.Get(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}
	invoicePDF(c, h.invoiceService, snap, "bao-gia-"+snap.Order.Date+".pdf")
}

func shareText(c *gin.Context, snap *service.OrderSnapshot) {
	text, err := service.ShareText(snap)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, "Share text generated successfully", gin.H{"text": text})
}

func invoicePDF(c *gin.Context, invoices *service.InvoiceService, snap *service.OrderSnapshot, filename string) {
	data, err := invoices.PDF(snap)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, filename, "application/pdf", data)
}
