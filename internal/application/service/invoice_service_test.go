package service

import (
	"bytes"
	"context"
	"net/http"
	"testing"

	"github.com/bacdepzai/orderdesk/internal/domain/entity"
)

func TestInvoiceService_PDF(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	fillValidDraft(t, env.drafts)
	snap, _ := env.drafts.UpdateFields(ctx, &UpdateDraftInput{
		DiscountPercent: floatPtr(5),
		ShippingCost:    floatPtr(15000),
		Notes:           strPtr("Giao trước 5h chiều"),
	})

	s := NewInvoiceService(entity.ReceiptHeader{ShopName: "BACDEPZAI", Address: "Hà Nội", Phone: "0900000000"})
	data, err := s.PDF(snap)
	if err != nil {
		t.Fatalf("PDF() error = %v", err)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		t.Errorf("output is not a PDF: %q", data[:min(len(data), 8)])
	}
}

func TestInvoiceService_PDFRefusesBlocking(t *testing.T) {
	env := newTestEnv(t)
	snap, _ := env.drafts.Get(context.Background())

	_, err := NewInvoiceService(entity.ReceiptHeader{ShopName: "BACDEPZAI"}).PDF(snap)
	assertAppError(t, err, http.StatusUnprocessableEntity)
}

func TestJoinNonEmpty(t *testing.T) {
	if got := joinNonEmpty(" | ", "a", "", "b"); got != "a | b" {
		t.Errorf("joinNonEmpty() = %q", got)
	}
	if got := joinNonEmpty(", "); got != "" {
		t.Errorf("joinNonEmpty() with no parts = %q", got)
	}
}
