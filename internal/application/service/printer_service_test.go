package service

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"testing"

	"github.com/bacdepzai/orderdesk/internal/domain/entity"
	"github.com/bacdepzai/orderdesk/pkg/printer"
)

type recordingPrinter struct {
	err  error
	data []byte
}

func (p *recordingPrinter) Print(_ context.Context, data []byte) error {
	p.data = data
	return p.err
}
func (p *recordingPrinter) IsConnected(context.Context) bool { return p.err == nil }
func (p *recordingPrinter) Name() string                     { return "recording" }

var testShop = entity.ReceiptHeader{ShopName: "BACDEPZAI", Address: "Hà Nội", Phone: "0900000000"}

func TestPrinterService_GetStatus(t *testing.T) {
	s := NewPrinterService(printer.NewNullPrinter(), testShop, 32)
	status := s.GetStatus(context.Background())
	if status.Configured || status.Connected || status.Name != "none" {
		t.Errorf("null printer status = %+v", status)
	}
}

func TestPrinterService_BuildReceipt(t *testing.T) {
	env := newTestEnv(t)
	snap := fillValidDraft(t, env.drafts)

	r := NewPrinterService(printer.NewNullPrinter(), testShop, 32).BuildReceipt(snap)
	if len(r.Lines) != 2 {
		t.Fatalf("lines = %d, want 2", len(r.Lines))
	}
	if r.Lines[0].Detail != "24.00 m² x 10.000" || r.Lines[0].Total != "240.000" {
		t.Errorf("area line = %+v", r.Lines[0])
	}
	if r.Lines[1].Detail != "5 Cái x 20.000" || r.Lines[1].Total != "100.000" {
		t.Errorf("unit line = %+v", r.Lines[1])
	}
	if r.GrandTotal != "340.000" || r.Customer != "Chị Lan" {
		t.Errorf("receipt = %+v", r)
	}
}

func TestPrinterService_PrintOrder(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	snap := fillValidDraft(t, env.drafts)

	p := &recordingPrinter{}
	if _, err := NewPrinterService(p, testShop, 32).PrintOrder(ctx, snap); err != nil {
		t.Fatalf("PrintOrder() error = %v", err)
	}
	if !bytes.Contains(p.data, []byte("Giay in anh")) {
		t.Error("receipt should carry the ASCII-folded item name")
	}
	if !bytes.Contains(p.data, []byte("HOA DON BAN HANG")) {
		t.Error("receipt title missing")
	}

	failing := &recordingPrinter{err: errors.New("paper out")}
	receipt, err := NewPrinterService(failing, testShop, 32).PrintOrder(ctx, snap)
	if err == nil || receipt == nil {
		t.Errorf("failed print should return the receipt and an error, got %v / %v", receipt, err)
	}

	blank, _ := env.drafts.Reset(ctx)
	_, err = NewPrinterService(p, testShop, 32).PrintOrder(ctx, blank)
	assertAppError(t, err, http.StatusUnprocessableEntity)
}

func TestFormatReceiptSkipsZeroLines(t *testing.T) {
	r := &entity.Receipt{
		Header:             testShop,
		Date:               "2026-03-15",
		Customer:           entity.WalkInCustomer,
		Subtotal:           "100.000",
		DiscountPercent:    "0",
		DiscountAmount:     "0",
		ShippingCost:       "0",
		ShippingCollection: "0",
		GrandTotal:         "100.000",
	}

	out := string(FormatReceipt(r, 32))
	if strings.Contains(out, "Chiet khau") || strings.Contains(out, "Phi ship") {
		t.Error("zero discount and shipping should be omitted")
	}
	if !strings.Contains(out, "Khach le") || !strings.Contains(out, "N/A") {
		t.Errorf("receipt missing walk-in customer or order number placeholder")
	}
}
