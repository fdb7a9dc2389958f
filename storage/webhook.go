package storage

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"menuboard-api/pkg/logger"
)

// Webhook posts a notification after an image is stored. Delivery is
// fire-and-forget: failures are logged and never retried or surfaced.
type Webhook struct {
	url    string
	client *http.Client
	log    *logger.Logger
}

func NewWebhook(url string, log *logger.Logger) *Webhook {
	return &Webhook{
		url:    url,
		client: &http.Client{Timeout: 10 * time.Second},
		log:    log,
	}
}

type webhookPayload struct {
	Event     string `json:"event"`
	Filename  string `json:"filename"`
	Reference string `json:"reference"`
}

// Notify sends the POST in the background. The caller never waits on it.
func (w *Webhook) Notify(requestID, filename, reference string) {
	if w.url == "" {
		return
	}
	go func() {
		body, _ := json.Marshal(webhookPayload{
			Event:     "image_stored",
			Filename:  filename,
			Reference: reference,
		})
		resp, err := w.client.Post(w.url, "application/json", bytes.NewReader(body))
		if err != nil {
			w.log.Error(requestID, "webhook_post", "webhook delivery failed", err)
			return
		}
		resp.Body.Close()
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			w.log.Error(requestID, "webhook_post", "webhook delivery failed",
				fmt.Errorf("status %d", resp.StatusCode))
			return
		}
		w.log.Info(requestID, "webhook_post", "webhook delivered")
	}()
}
