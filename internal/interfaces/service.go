// internal/interfaces/service.go
package interfaces

import (
	"context"

	"github.com/onerilhan/go-store-api/internal/models"
)

// BankFeedClientInterface dış banka hareket feed'i için interface.
// Feed güvenilmez ve eventually consistent kabul edilir; implementasyon
// bounded timeout uygular ve bozuk veriyi ExternalServiceError'a çevirir.
type BankFeedClientInterface interface {
	// FetchTransactions son banka hareketlerini getirir
	FetchTransactions(ctx context.Context) ([]models.BankTransaction, error)
}

// NotifierInterface başarılı checkout sonrası best-effort bildirim.
// Hata döndürmez: bildirim transaction'ın doğruluk sözleşmesinin parçası
// değildir, başarısızlık loglanır ve yutulur.
type NotifierInterface interface {
	// NotifyCheckout satın alma bildirimini asenkron gönderir
	NotifyCheckout(userID, orderID int, totalAmount int64)
}

// PriceVerifierInterface checkout fiyat doğrulama
type PriceVerifierInterface interface {
	// Verify sepeti katalog fiyatlarıyla doğrular ve toplamı döner
	Verify(items []models.CartItem) ([]models.VerifiedItem, int64, error)
}

// CheckoutServiceInterface sepet onaylama orchestrator'ı
type CheckoutServiceInterface interface {
	// Checkout siparişi tek logical unit olarak işler
	Checkout(userID int, req *models.CheckoutRequest) (*models.CheckoutResponse, error)
}

// TopupServiceInterface yükleme talebi yaşam döngüsü
type TopupServiceInterface interface {
	// CreateTopup yeni pending talep ve topup kodu oluşturur
	CreateTopup(userID int, req *models.CreateTopupRequest) (*models.TopupRequest, error)

	// Decide admin kararını uygular (approve kredilendirir, deny sadece kapatır)
	Decide(adminID int, topupID int, action, note, clientIP string) (*models.TopupDecisionResponse, error)

	// VerifyOwnTopup kullanıcının kendi talebini feed'e karşı doğrular
	VerifyOwnTopup(ctx context.Context, userID, topupID int) (*models.VerifyTopupResponse, error)

	// GetUserTopups kullanıcının taleplerini listeler
	GetUserTopups(userID int, limit, offset int) ([]*models.TopupRequest, error)
}

// ReconcileServiceInterface banka mutabakat eşleştiricisi
type ReconcileServiceInterface interface {
	// ReconcileBankTopups feed'i çekip tüm pending talepleri eşleştirir
	ReconcileBankTopups(ctx context.Context) (*models.ReconcileResult, error)
}

// WalletServiceInterface cüzdan okuma işlemleri
type WalletServiceInterface interface {
	// GetWallet kullanıcının cüzdanını getirir
	GetWallet(userID int) (*models.Wallet, error)

	// GetTransactions kullanıcının ledger kayıtlarını getirir
	GetTransactions(userID int, limit, offset int) ([]*models.WalletTransaction, error)

	// CheckLedger ledger fold'unu bakiyeyle karşılaştırır
	CheckLedger(userID int) (*models.LedgerCheckResult, error)
}
