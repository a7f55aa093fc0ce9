package services

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-store-api/internal/interfaces"
	"github.com/onerilhan/go-store-api/internal/models"
)

// WalletService cüzdan okuma işlemleri
type WalletService struct {
	walletRepo interfaces.WalletRepositoryInterface
	txRepo     interfaces.WalletTransactionRepositoryInterface
}

// NewWalletService yeni service oluşturur
func NewWalletService(walletRepo interfaces.WalletRepositoryInterface, txRepo interfaces.WalletTransactionRepositoryInterface) *WalletService {
	return &WalletService{
		walletRepo: walletRepo,
		txRepo:     txRepo,
	}
}

// GetWallet kullanıcının cüzdanını getirir
func (s *WalletService) GetWallet(userID int) (*models.Wallet, error) {
	return s.walletRepo.GetByUserID(userID)
}

// GetTransactions kullanıcının ledger kayıtlarını getirir
func (s *WalletService) GetTransactions(userID int, limit, offset int) ([]*models.WalletTransaction, error) {
	// Limit validasyonu
	if limit <= 0 || limit > 100 {
		limit = 10
	}
	if offset < 0 {
		offset = 0
	}

	transactions, err := s.txRepo.GetByUserID(userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ledger kayıtları alınamadı: %w", err)
	}

	return transactions, nil
}

// CheckLedger kullanıcının ledger kayıtlarını sırayla 0'dan toplar ve
// sonucu cüzdan bakiyesiyle karşılaştırır. Ayrıca her kaydın kendi
// balance_before/balance_after zincirinin tutarlı olduğunu doğrular.
// Tutarsızlık bir bug ya da elle müdahale işaretidir; sadece raporlanır.
func (s *WalletService) CheckLedger(userID int) (*models.LedgerCheckResult, error) {
	wallet, err := s.walletRepo.GetByUserID(userID)
	if err != nil {
		return nil, err
	}

	transactions, err := s.txRepo.GetAllByUserAsc(userID)
	if err != nil {
		return nil, fmt.Errorf("ledger kayıtları alınamadı: %w", err)
	}

	var balance int64
	chainOK := true

	for _, tx := range transactions {
		if tx.BalanceBefore != balance {
			chainOK = false
		}

		switch tx.Type {
		case models.TxTypeCredit:
			balance += tx.Amount
		case models.TxTypeDebit:
			balance -= tx.Amount
		default:
			return nil, fmt.Errorf("bilinmeyen ledger kayıt tipi: %q (id: %d)", tx.Type, tx.ID)
		}

		if tx.BalanceAfter != balance {
			chainOK = false
		}
	}

	result := &models.LedgerCheckResult{
		UserID:           userID,
		WalletBalance:    wallet.Balance,
		LedgerBalance:    balance,
		TransactionCount: len(transactions),
		Consistent:       chainOK && balance == wallet.Balance,
	}

	if !result.Consistent {
		log.Error().
			Int("user_id", userID).
			Int64("wallet_balance", wallet.Balance).
			Int64("ledger_balance", balance).
			Bool("chain_ok", chainOK).
			Msg("🚨 Ledger tutarsızlığı tespit edildi")
	}

	return result, nil
}
