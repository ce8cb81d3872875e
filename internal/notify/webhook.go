package notify

import (
	"bytes"
	"encoding/json"
	"net/http"
	"time"

	"arctic_mining/internal/logger"
)

// Notifier delivers operator-facing messages on a best-effort basis.
// Deliveries are never awaited by the caller and failures are logged only.
type Notifier interface {
	Notify(message string)
}

// Nop discards every message.
type Nop struct{}

func (Nop) Notify(string) {}

// Webhook posts messages to a Discord-compatible webhook URL.
type Webhook struct {
	URL    string
	client *http.Client
}

func NewWebhook(url string) *Webhook {
	return &Webhook{
		URL:    url,
		client: &http.Client{Timeout: 10 * time.Second},
	}
}

// Notify sends the message in a background goroutine. The HTTP response body
// is ignored; only the status is checked for logging.
func (w *Webhook) Notify(message string) {
	if w.URL == "" {
		return
	}

	body, err := json.Marshal(map[string]string{"content": message})
	if err != nil {
		return
	}

	go func() {
		resp, err := w.client.Post(w.URL, "application/json", bytes.NewReader(body))
		if err != nil {
			logger.Error("webhook delivery failed", "error", err)
			return
		}
		defer resp.Body.Close()
		if resp.StatusCode >= 300 {
			logger.Warn("webhook delivery rejected", "status", resp.StatusCode)
		}
	}()
}
