package sheets

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestPushOrder(t *testing.T) {
	var got map[string]interface{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			t.Errorf("method = %s, want POST", r.Method)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("content type = %q", ct)
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
	}))
	defer srv.Close()

	c := NewClient(srv.URL, time.Second)
	if err := c.PushOrder(context.Background(), map[string]interface{}{"customer_name": "Anh Ba"}); err != nil {
		t.Fatalf("PushOrder() error = %v", err)
	}
	if got["customer_name"] != "Anh Ba" {
		t.Errorf("payload = %v", got)
	}
}

func TestPushOrder_Failures(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "boom", http.StatusInternalServerError)
	}))
	defer srv.Close()

	if err := NewClient(srv.URL, time.Second).PushOrder(context.Background(), struct{}{}); err == nil {
		t.Error("expected error for 500 response")
	}

	if err := NewClient("", time.Second).PushOrder(context.Background(), struct{}{}); !errors.Is(err, ErrNoWebhook) {
		t.Errorf("error = %v, want ErrNoWebhook", err)
	}
}
