package repository

import (
	"database/sql"
	"fmt"

	"github.com/onerilhan/go-store-api/internal/apperrors"
	"github.com/onerilhan/go-store-api/internal/interfaces"
	"github.com/onerilhan/go-store-api/internal/models"
)

// WalletRepository, WalletRepositoryInterface'in somut halidir.
type WalletRepository struct {
	db *sql.DB
}

// NewWalletRepository yeni repository oluşturur
func NewWalletRepository(db *sql.DB) interfaces.WalletRepositoryInterface {
	return &WalletRepository{db: db}
}

// GetByUserID kullanıcının cüzdanını getirir
func (r *WalletRepository) GetByUserID(userID int) (*models.Wallet, error) {
	query := `
		SELECT user_id, balance, updated_at
		FROM wallets
		WHERE user_id = $1
	`

	var wallet models.Wallet
	err := r.db.QueryRow(query, userID).Scan(
		&wallet.UserID,
		&wallet.Balance,
		&wallet.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &apperrors.WalletNotFoundError{UserID: userID}
		}
		return nil, fmt.Errorf("cüzdan arama hatası: %w", err)
	}

	return &wallet, nil
}

// Create kullanıcı için sıfır bakiyeli cüzdan oluşturur
func (r *WalletRepository) Create(userID int) (*models.Wallet, error) {
	query := `
		INSERT INTO wallets (user_id, balance)
		VALUES ($1, 0)
		RETURNING user_id, balance, updated_at
	`

	var wallet models.Wallet
	err := r.db.QueryRow(query, userID).Scan(
		&wallet.UserID,
		&wallet.Balance,
		&wallet.UpdatedAt,
	)

	if err != nil {
		return nil, fmt.Errorf("cüzdan oluşturulamadı: %w", err)
	}

	return &wallet, nil
}
