package sheets

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// ErrNoWebhook is returned by PushOrder when no URL was configured.
var ErrNoWebhook = errors.New("sheets: webhook URL is not configured")

// Client posts orders to a spreadsheet web-hook (an Apps Script endpoint).
type Client struct {
	url        string
	httpClient *http.Client
}

func NewClient(webhookURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	return &Client{
		url:        webhookURL,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Enabled reports whether a web-hook URL is set.
func (c *Client) Enabled() bool {
	return c != nil && c.url != ""
}

// PushOrder POSTs payload as JSON. Any non-2xx status is an error.
func (c *Client) PushOrder(ctx context.Context, payload interface{}) error {
	if !c.Enabled() {
		return ErrNoWebhook
	}

	jsonData, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("sheets: marshal payload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.url, bytes.NewReader(jsonData))
	if err != nil {
		return fmt.Errorf("sheets: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("sheets: request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("sheets: status %d: %s", resp.StatusCode, string(body))
	}
	return nil
}
