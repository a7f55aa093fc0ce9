// internal/interfaces/repository.go
package interfaces

import (
	"github.com/onerilhan/go-store-api/internal/models"
)

// UserRepositoryInterface kullanıcı database işlemleri için interface
type UserRepositoryInterface interface {
	// Create yeni kullanıcı oluşturur ve cüzdan satırını açar
	Create(user *models.CreateUserRequest) (*models.User, error)

	// GetByEmail email ile kullanıcı bulur
	GetByEmail(email string) (*models.User, error)

	// GetByID ID ile kullanıcı bulur
	GetByID(id int) (*models.User, error)
}

// WalletRepositoryInterface cüzdan database işlemleri için interface.
// Bakiye yazma işlemleri burada yoktur: bakiye sadece orchestrator
// transaction'larının içinde, ledger kaydıyla birlikte değişir.
type WalletRepositoryInterface interface {
	// GetByUserID kullanıcının cüzdanını getirir
	GetByUserID(userID int) (*models.Wallet, error)

	// Create kullanıcı için sıfır bakiyeli cüzdan oluşturur
	Create(userID int) (*models.Wallet, error)
}

// WalletTransactionRepositoryInterface ledger okuma işlemleri için interface
type WalletTransactionRepositoryInterface interface {
	// GetByUserID kullanıcının ledger kayıtlarını getirir (yeniden eskiye)
	GetByUserID(userID int, limit, offset int) ([]*models.WalletTransaction, error)

	// GetAllByUserAsc kullanıcının tüm kayıtlarını oluşturulma sırasıyla getirir
	// (ledger fold / tutarlılık kontrolü için)
	GetAllByUserAsc(userID int) ([]*models.WalletTransaction, error)
}

// ProductRepositoryInterface katalog okuma işlemleri için interface.
// Price Verifier'ın fiyat otoritesi budur.
type ProductRepositoryInterface interface {
	// GetByID ID ile ürün getirir; yoksa sql.ErrNoRows sarmalanmış hata döner
	GetByID(id int) (*models.Product, error)
}

// OrderRepositoryInterface sipariş okuma işlemleri için interface
type OrderRepositoryInterface interface {
	// GetByID ID ile siparişi item'larıyla getirir
	GetByID(id int) (*models.Order, []*models.OrderItem, error)

	// GetByUserID kullanıcının siparişlerini getirir
	GetByUserID(userID int, limit, offset int) ([]*models.Order, error)
}

// EntitlementRepositoryInterface erişim hakkı okuma işlemleri için interface
type EntitlementRepositoryInterface interface {
	// GetByUserID kullanıcının tüm erişim haklarını getirir
	GetByUserID(userID int) ([]*models.Entitlement, error)
}

// TopupRepositoryInterface yükleme talebi database işlemleri için interface
type TopupRepositoryInterface interface {
	// Create yeni pending talep oluşturur
	Create(req *models.TopupRequest) (*models.TopupRequest, error)

	// GetByID ID ile talep getirir
	GetByID(id int) (*models.TopupRequest, error)

	// GetByUserID kullanıcının taleplerini getirir
	GetByUserID(userID int, limit, offset int) ([]*models.TopupRequest, error)

	// GetPendingWithCode topup kodu olan tüm pending talepleri getirir
	GetPendingWithCode() ([]*models.TopupRequest, error)

	// IsBankTransactionClaimed banka hareketi başka bir talepte kullanılmış mı
	IsBankTransactionClaimed(bankTransactionID string) (bool, error)
}

// AuditRepositoryInterface audit log database işlemleri için interface
type AuditRepositoryInterface interface {
	// Create yeni audit log oluşturur
	Create(log *models.AuditLog) error

	// GetAll logları getirir (pagination ile)
	GetAll(limit, offset int) ([]*models.AuditLog, error)
}
