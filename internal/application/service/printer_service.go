package service

import (
	"context"
	"fmt"
	"log"

	"github.com/bacdepzai/orderdesk/internal/domain/entity"
	"github.com/bacdepzai/orderdesk/internal/domain/pricing"
	"github.com/bacdepzai/orderdesk/pkg/printer"
	"github.com/bacdepzai/orderdesk/pkg/utils"
)

// PrinterService handles receipt formatting and thermal printing.
type PrinterService struct {
	printer   printer.Printer
	shop      entity.ReceiptHeader
	charWidth int
}

// NewPrinterService creates a new printer service.
func NewPrinterService(p printer.Printer, shop entity.ReceiptHeader, charWidth int) *PrinterService {
	return &PrinterService{
		printer:   p,
		shop:      shop,
		charWidth: charWidth,
	}
}

// PrinterStatus returns the current printer status information.
type PrinterStatus struct {
	Configured bool   `json:"configured"`
	Connected  bool   `json:"connected"`
	Name       string `json:"name"`
}

// GetStatus returns printer connection status.
func (s *PrinterService) GetStatus(ctx context.Context) *PrinterStatus {
	return &PrinterStatus{
		Configured: s.printer.Name() != "none",
		Connected:  s.printer.IsConnected(ctx),
		Name:       s.printer.Name(),
	}
}

// BuildReceipt composes the printable receipt of snap.
func (s *PrinterService) BuildReceipt(snap *OrderSnapshot) *entity.Receipt {
	o, t := snap.Order, snap.Totals
	r := &entity.Receipt{
		Header:             s.shop,
		OrderNo:            o.OrderNo,
		Date:               o.Date,
		Customer:           o.DisplayCustomer(),
		Phone:              o.Phone,
		Subtotal:           utils.FormatVND(t.Subtotal),
		DiscountPercent:    utils.FormatQty(o.DiscountPercent),
		DiscountAmount:     utils.FormatVND(t.DiscountAmount),
		ShippingCost:       utils.FormatVND(o.ShippingCost),
		ShippingCollection: utils.FormatVND(o.ShippingCollection),
		GrandTotal:         utils.FormatVND(t.GrandTotal),
		Notes:              o.Notes,
	}
	for _, item := range o.Items {
		r.Lines = append(r.Lines, entity.ReceiptLine{
			Name:   item.Name,
			Detail: LineQuantity(pricing.ModeOf(item), item.Quantity, item.Unit, pricing.Area(item)) + " x " + utils.FormatVND(item.PriceBuy),
			Total:  utils.FormatVND(pricing.ItemTotal(item)),
		})
	}
	return r
}

// PrintOrder prints snap. Orders with blocking errors are refused. The
// receipt is returned even when the printer fails so the caller can show it.
func (s *PrinterService) PrintOrder(ctx context.Context, snap *OrderSnapshot) (*entity.Receipt, error) {
	if err := RequireFinalizable(snap); err != nil {
		return nil, err
	}

	receipt := s.BuildReceipt(snap)
	data := FormatReceipt(receipt, s.charWidth)
	if err := s.printer.Print(ctx, data); err != nil {
		log.Printf("Printer error (%s): %v", s.printer.Name(), err)
		return receipt, fmt.Errorf("failed to print receipt: %w", err)
	}
	return receipt, nil
}

// FormatReceipt converts a Receipt into ESC/POS bytes. Thermal code pages
// have no Vietnamese glyphs, so text is folded to ASCII.
func FormatReceipt(r *entity.Receipt, charWidth int) []byte {
	a := utils.ToASCII
	doc := printer.NewReceipt(charWidth)

	doc.Align(printer.AlignCenter).
		Bold(true).
		Size(printer.FontDouble).
		Line(a(r.Header.ShopName)).
		Size(printer.FontNormal).
		Bold(false)
	if r.Header.Address != "" {
		doc.Line(a(r.Header.Address))
	}
	if r.Header.Phone != "" {
		doc.Line(r.Header.Phone)
	}
	doc.Feed(1).Bold(true).Line(a("HÓA ĐƠN BÁN HÀNG")).Bold(false)

	orderNo := r.OrderNo
	if orderNo == "" {
		orderNo = "N/A"
	}
	doc.Align(printer.AlignLeft).
		Rule('-').
		Pair(a("Đơn số:"), orderNo).
		Pair(a("Ngày:"), r.Date).
		Pair(a("Khách:"), a(r.Customer))
	if r.Phone != "" {
		doc.Pair(a("SĐT:"), r.Phone)
	}
	doc.Rule('-')

	for _, l := range r.Lines {
		doc.Line(a(l.Name)).Pair("  "+a(l.Detail), l.Total)
	}
	doc.Rule('-')

	doc.Pair(a("Tạm tính:"), r.Subtotal)
	if r.DiscountAmount != "0" {
		doc.Pair(a("Chiết khấu ("+r.DiscountPercent+"%):"), "-"+r.DiscountAmount)
	}
	if r.ShippingCost != "0" {
		doc.Pair(a("Phí ship:"), r.ShippingCost)
	}
	if r.ShippingCollection != "0" {
		doc.Pair(a("Tiền xe (thu hộ):"), r.ShippingCollection)
	}
	doc.Bold(true).
		Pair(a("TỔNG:"), r.GrandTotal).
		Bold(false).
		Rule('-')

	if r.Notes != "" {
		doc.Line(a(r.Notes))
	}

	doc.Align(printer.AlignCenter).
		Feed(1).
		Line(a("Cảm ơn quý khách!")).
		Align(printer.AlignLeft).
		Cut()

	return doc.Bytes()
}
