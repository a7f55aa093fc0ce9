package services

import (
	"database/sql"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-store-api/internal/apperrors"
	"github.com/onerilhan/go-store-api/internal/db"
	"github.com/onerilhan/go-store-api/internal/interfaces"
	"github.com/onerilhan/go-store-api/internal/metrics"
	"github.com/onerilhan/go-store-api/internal/models"
)

// CheckoutService sepet onaylama orchestrator'ı.
// Sipariş + item'lar + ledger kaydı + bakiye güncellemesi + erişim hakları
// + ödeme kaydı tek database transaction'ında uygulanır: ya hepsi görünür
// olur ya hiçbiri.
type CheckoutService struct {
	priceVerifier interfaces.PriceVerifierInterface
	notifier      interfaces.NotifierInterface
	database      *sql.DB
	currency      string
}

// NewCheckoutService yeni service oluşturur
func NewCheckoutService(priceVerifier interfaces.PriceVerifierInterface, notifier interfaces.NotifierInterface, database *sql.DB, currency string) *CheckoutService {
	return &CheckoutService{
		priceVerifier: priceVerifier,
		notifier:      notifier,
		database:      database,
		currency:      currency,
	}
}

// Checkout siparişi tek logical unit olarak işler.
// Cüzdan satırı FOR UPDATE ile kilitlenir: aynı kullanıcının eşzamanlı
// checkout/topup'ları bakiye read-modify-write'ını kaybettiremez
// (lost update). İki eşzamanlı checkout aynı ön bakiyeyi okuyamaz.
func (s *CheckoutService) Checkout(userID int, req *models.CheckoutRequest) (*models.CheckoutResponse, error) {
	// 1. Boş sepet kontrolü
	if req == nil || len(req.Items) == 0 {
		metrics.CheckoutsTotal.WithLabelValues("empty_cart").Inc()
		return nil, &apperrors.EmptyCartError{}
	}

	// 2. Fiyatları katalogdan doğrula (client fiyatı yok sayılır)
	verifiedItems, totalAmount, err := s.priceVerifier.Verify(req.Items)
	if err != nil {
		metrics.CheckoutsTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}

	var result *models.CheckoutResponse

	// 3-5. Atomik blok: rollback mechanism ile
	err = db.WithTransaction(s.database, func(tx *sql.Tx) error {
		txRepo := db.NewTxRepository(tx)

		// Cüzdanı oku ve satırı kilitle
		var balanceBefore int64
		err := txRepo.QueryRow(`
			SELECT balance FROM wallets WHERE user_id = $1 FOR UPDATE
		`, userID).Scan(&balanceBefore)

		if err == sql.ErrNoRows {
			return &apperrors.WalletNotFoundError{UserID: userID}
		}
		if err != nil {
			return fmt.Errorf("cüzdan sorgusu hatası: %w", err)
		}

		// Yeterli bakiye kontrolü
		if balanceBefore < totalAmount {
			return &apperrors.InsufficientBalanceError{
				Required:  totalAmount,
				Available: balanceBefore,
			}
		}

		// Siparişi oluştur (paid)
		var orderID int
		err = txRepo.QueryRow(`
			INSERT INTO orders (user_id, status, total_amount, currency, payment_method)
			VALUES ($1, 'paid', $2, $3, 'wallet')
			RETURNING id
		`, userID, totalAmount, s.currency).Scan(&orderID)

		if err != nil {
			return fmt.Errorf("sipariş oluşturulamadı: %w", err)
		}

		// Sipariş item'ları: ürün adı ve fiyat satın alma anındaki haliyle
		for _, item := range verifiedItems {
			_, err = txRepo.Exec(`
				INSERT INTO order_items (order_id, product_id, product_name, unit_price, quantity)
				VALUES ($1, $2, $3, $4, $5)
			`, orderID, item.ProductID, item.ProductName, item.UnitPrice, item.Quantity)
			if err != nil {
				return fmt.Errorf("sipariş item'ı oluşturulamadı: %w", err)
			}
		}

		// Ledger kaydını ekle (debit), kilitli ön bakiyeden hesaplanır
		balanceAfter := balanceBefore - totalAmount
		_, err = txRepo.Exec(`
			INSERT INTO wallet_transactions (user_id, type, amount, balance_before, balance_after, ref_type, ref_id, note)
			VALUES ($1, 'debit', $2, $3, $4, 'order', $5, $6)
		`, userID, totalAmount, balanceBefore, balanceAfter, orderID, fmt.Sprintf("Sipariş #%d", orderID))
		if err != nil {
			return fmt.Errorf("ledger kaydı oluşturulamadı: %w", err)
		}

		// Bakiyeyi güncelle (sadece ledger append'i ile birlikte)
		_, err = txRepo.Exec(`
			UPDATE wallets SET balance = $1, updated_at = NOW() WHERE user_id = $2
		`, balanceAfter, userID)
		if err != nil {
			return fmt.Errorf("bakiye güncellenemedi: %w", err)
		}

		// Erişim haklarını yaz; tekrar satın almada duplicate oluşmaz
		for _, item := range verifiedItems {
			_, err = txRepo.Exec(`
				INSERT INTO entitlements (user_id, product_id, order_id)
				VALUES ($1, $2, $3)
				ON CONFLICT (user_id, product_id) DO NOTHING
			`, userID, item.ProductID, orderID)
			if err != nil {
				return fmt.Errorf("erişim hakkı oluşturulamadı: %w", err)
			}
		}

		// Ödeme kaydı (completed)
		_, err = txRepo.Exec(`
			INSERT INTO payments (order_id, user_id, amount, method, status)
			VALUES ($1, $2, $3, 'wallet', 'completed')
		`, orderID, userID, totalAmount)
		if err != nil {
			return fmt.Errorf("ödeme kaydı oluşturulamadı: %w", err)
		}

		result = &models.CheckoutResponse{
			OrderID:       orderID,
			TotalAmount:   totalAmount,
			Currency:      s.currency,
			BalanceBefore: balanceBefore,
			BalanceAfter:  balanceAfter,
			Items:         verifiedItems,
		}

		return nil // SUCCESS - transaction commit edilecek
	})

	if err != nil {
		metrics.CheckoutsTotal.WithLabelValues("rejected").Inc()
		return nil, err
	}

	metrics.CheckoutsTotal.WithLabelValues("success").Inc()

	log.Info().
		Int("user_id", userID).
		Int("order_id", result.OrderID).
		Int64("total_amount", result.TotalAmount).
		Int64("balance_after", result.BalanceAfter).
		Msg("Checkout tamamlandı")

	// 6. Best-effort bildirim: başarısızlığı checkout'u etkilemez
	s.notifier.NotifyCheckout(userID, result.OrderID, result.TotalAmount)

	return result, nil
}
