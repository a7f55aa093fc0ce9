package bank

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-store-api/internal/apperrors"
	"github.com/onerilhan/go-store-api/internal/interfaces"
	"github.com/onerilhan/go-store-api/internal/models"
)

// Client dış banka hareket feed'i client'ı.
// Feed eventually consistent ve güvenilmezdir: timeout sınırlıdır,
// bozuk payload ExternalServiceError olarak döner, asla panic olmaz.
type Client struct {
	feedURL    string
	httpClient *http.Client
}

// NewClient yeni feed client'ı oluşturur
func NewClient(feedURL string, timeout time.Duration) interfaces.BankFeedClientInterface {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		feedURL: feedURL,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// FetchTransactions son banka hareketlerini getirir
func (c *Client) FetchTransactions(ctx context.Context) ([]models.BankTransaction, error) {
	if c.feedURL == "" {
		return nil, &apperrors.ExternalServiceError{
			Service: "bank-feed",
			Err:     fmt.Errorf("feed URL yapılandırılmamış"),
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.feedURL, nil)
	if err != nil {
		return nil, &apperrors.ExternalServiceError{Service: "bank-feed", Err: err}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, &apperrors.ExternalServiceError{Service: "bank-feed", Err: err}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, &apperrors.ExternalServiceError{
			Service: "bank-feed",
			Err:     fmt.Errorf("beklenmeyen HTTP status: %d", resp.StatusCode),
		}
	}

	var feed models.BankFeedResponse
	if err := json.NewDecoder(resp.Body).Decode(&feed); err != nil {
		return nil, &apperrors.ExternalServiceError{
			Service: "bank-feed",
			Err:     fmt.Errorf("feed yanıtı parse edilemedi: %w", err),
		}
	}

	// Boundary doğrulaması: feed verisine olduğu gibi güvenilmez
	if err := validateFeed(&feed); err != nil {
		return nil, &apperrors.ExternalServiceError{Service: "bank-feed", Err: err}
	}

	log.Debug().
		Int("transaction_count", len(feed.Transactions)).
		Msg("Banka feed'i alındı")

	return feed.Transactions, nil
}

// validateFeed feed payload'ını boundary'de doğrular (fail fast)
func validateFeed(feed *models.BankFeedResponse) error {
	for i, tx := range feed.Transactions {
		if tx.TransactionID == "" {
			return fmt.Errorf("feed kaydı %d: transactionID boş", i)
		}
		if tx.Amount < 0 {
			return fmt.Errorf("feed kaydı %d: negatif tutar: %d", i, tx.Amount)
		}
		if tx.Type != models.BankTxTypeIn && tx.Type != models.BankTxTypeOut {
			return fmt.Errorf("feed kaydı %d: geçersiz tip: %q", i, tx.Type)
		}
	}
	return nil
}
