package notification

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-store-api/internal/interfaces"
	"github.com/onerilhan/go-store-api/internal/metrics"
)

// WebhookNotifier checkout sonrası chat-bot webhook'una mesaj atar.
// Fire-and-forget: hatalar loglanır ve yutulur, checkout'un sonucunu
// asla etkilemez ve critical path'te beklenmez.
type WebhookNotifier struct {
	webhookURL string
	httpClient *http.Client
}

// NewWebhookNotifier yeni notifier oluşturur; url boşsa bildirim kapalıdır
func NewWebhookNotifier(webhookURL string) interfaces.NotifierInterface {
	return &WebhookNotifier{
		webhookURL: webhookURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
	}
}

// checkoutMessage webhook payload'ı
type checkoutMessage struct {
	Text string `json:"text"`
}

// NotifyCheckout satın alma bildirimini asenkron gönderir
func (n *WebhookNotifier) NotifyCheckout(userID, orderID int, totalAmount int64) {
	if n.webhookURL == "" {
		return
	}

	go func() {
		// Goroutine içinde panic olsa bile servis düşmemeli
		defer func() {
			if r := recover(); r != nil {
				log.Error().Interface("panic", r).Msg("Bildirim goroutine paniği toparlandı")
			}
		}()

		msg := checkoutMessage{
			Text: fmt.Sprintf("🛒 Yeni sipariş: #%d (user: %d, tutar: %d)", orderID, userID, totalAmount),
		}

		body, err := json.Marshal(msg)
		if err != nil {
			metrics.NotificationsSentTotal.WithLabelValues("failed").Inc()
			log.Warn().Err(err).Int("order_id", orderID).Msg("Bildirim payload'ı oluşturulamadı")
			return
		}

		resp, err := n.httpClient.Post(n.webhookURL, "application/json", bytes.NewReader(body))
		if err != nil {
			metrics.NotificationsSentTotal.WithLabelValues("failed").Inc()
			log.Warn().Err(err).Int("order_id", orderID).Msg("Checkout bildirimi gönderilemedi")
			return
		}
		defer resp.Body.Close()

		if resp.StatusCode >= 400 {
			metrics.NotificationsSentTotal.WithLabelValues("failed").Inc()
			log.Warn().
				Int("status_code", resp.StatusCode).
				Int("order_id", orderID).
				Msg("Checkout bildirimi webhook tarafından reddedildi")
			return
		}

		metrics.NotificationsSentTotal.WithLabelValues("sent").Inc()
		log.Debug().Int("order_id", orderID).Msg("Checkout bildirimi gönderildi")
	}()
}
