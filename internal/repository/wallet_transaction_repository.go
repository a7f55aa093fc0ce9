package repository

import (
	"database/sql"
	"fmt"

	"github.com/onerilhan/go-store-api/internal/interfaces"
	"github.com/onerilhan/go-store-api/internal/models"
)

// WalletTransactionRepository ledger okuma işlemleri.
// Ledger append'leri burada değil, orchestrator transaction'larının
// içinde yapılır; bu repository sadece okur.
type WalletTransactionRepository struct {
	db *sql.DB
}

// NewWalletTransactionRepository yeni repository oluşturur
func NewWalletTransactionRepository(db *sql.DB) interfaces.WalletTransactionRepositoryInterface {
	return &WalletTransactionRepository{db: db}
}

// GetByUserID kullanıcının ledger kayıtlarını getirir (yeniden eskiye)
func (r *WalletTransactionRepository) GetByUserID(userID int, limit, offset int) ([]*models.WalletTransaction, error) {
	query := `
		SELECT id, user_id, type, amount, balance_before, balance_after, ref_type, ref_id, note, created_at
		FROM wallet_transactions
		WHERE user_id = $1
		ORDER BY id DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("ledger listesi alınamadı: %w", err)
	}
	defer rows.Close()

	return scanWalletTransactions(rows)
}

// GetAllByUserAsc kullanıcının tüm kayıtlarını oluşturulma sırasıyla getirir
func (r *WalletTransactionRepository) GetAllByUserAsc(userID int) ([]*models.WalletTransaction, error) {
	query := `
		SELECT id, user_id, type, amount, balance_before, balance_after, ref_type, ref_id, note, created_at
		FROM wallet_transactions
		WHERE user_id = $1
		ORDER BY id ASC
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("ledger listesi alınamadı: %w", err)
	}
	defer rows.Close()

	return scanWalletTransactions(rows)
}

// scanWalletTransactions satırları model listesine çevirir
func scanWalletTransactions(rows *sql.Rows) ([]*models.WalletTransaction, error) {
	var transactions []*models.WalletTransaction
	for rows.Next() {
		var tx models.WalletTransaction
		err := rows.Scan(
			&tx.ID,
			&tx.UserID,
			&tx.Type,
			&tx.Amount,
			&tx.BalanceBefore,
			&tx.BalanceAfter,
			&tx.RefType,
			&tx.RefID,
			&tx.Note,
			&tx.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("ledger scan hatası: %w", err)
		}
		transactions = append(transactions, &tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ledger okuma hatası: %w", err)
	}

	return transactions, nil
}
