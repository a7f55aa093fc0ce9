package repository

import (
	"database/sql"
	"fmt"

	"github.com/onerilhan/go-store-api/internal/apperrors"
	"github.com/onerilhan/go-store-api/internal/interfaces"
	"github.com/onerilhan/go-store-api/internal/models"
)

// TopupRepository yükleme talebi database işlemleri.
// Status geçişleri burada değil, TopupService'in transaction'ı içindedir.
type TopupRepository struct {
	db *sql.DB
}

// NewTopupRepository yeni repository oluşturur
func NewTopupRepository(db *sql.DB) interfaces.TopupRepositoryInterface {
	return &TopupRepository{db: db}
}

const topupColumns = `id, user_id, amount, method, topup_code, status, admin_id, admin_note, bank_transaction_id, decided_at, created_at`

// Create yeni pending talep oluşturur
func (r *TopupRepository) Create(req *models.TopupRequest) (*models.TopupRequest, error) {
	query := `
		INSERT INTO topup_requests (user_id, amount, method, topup_code, status)
		VALUES ($1, $2, $3, $4, 'pending')
		RETURNING id, status, created_at
	`

	err := r.db.QueryRow(
		query,
		req.UserID,
		req.Amount,
		req.Method,
		req.TopupCode,
	).Scan(&req.ID, &req.Status, &req.CreatedAt)

	if err != nil {
		return nil, fmt.Errorf("yükleme talebi oluşturulamadı: %w", err)
	}

	return req, nil
}

// GetByID ID ile talep getirir
func (r *TopupRepository) GetByID(id int) (*models.TopupRequest, error) {
	query := `SELECT ` + topupColumns + ` FROM topup_requests WHERE id = $1`

	topup, err := scanTopup(r.db.QueryRow(query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &apperrors.NotFoundError{Entity: "yükleme talebi", ID: id}
		}
		return nil, fmt.Errorf("yükleme talebi arama hatası: %w", err)
	}

	return topup, nil
}

// GetByUserID kullanıcının taleplerini getirir
func (r *TopupRepository) GetByUserID(userID int, limit, offset int) ([]*models.TopupRequest, error) {
	query := `
		SELECT ` + topupColumns + `
		FROM topup_requests
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("yükleme talebi listesi alınamadı: %w", err)
	}
	defer rows.Close()

	return scanTopups(rows)
}

// GetPendingWithCode topup kodu olan tüm pending talepleri getirir.
// Mutabakat eşleştiricisinin çalışma listesi budur.
func (r *TopupRepository) GetPendingWithCode() ([]*models.TopupRequest, error) {
	query := `
		SELECT ` + topupColumns + `
		FROM topup_requests
		WHERE status = 'pending' AND topup_code <> ''
		ORDER BY created_at ASC
	`

	rows, err := r.db.Query(query)
	if err != nil {
		return nil, fmt.Errorf("pending talep listesi alınamadı: %w", err)
	}
	defer rows.Close()

	return scanTopups(rows)
}

// IsBankTransactionClaimed banka hareketi başka bir talepte kullanılmış mı
func (r *TopupRepository) IsBankTransactionClaimed(bankTransactionID string) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM topup_requests WHERE bank_transaction_id = $1)`

	var claimed bool
	if err := r.db.QueryRow(query, bankTransactionID).Scan(&claimed); err != nil {
		return false, fmt.Errorf("banka hareketi kontrolü hatası: %w", err)
	}

	return claimed, nil
}

// rowScanner hem *sql.Row hem *sql.Rows için ortak scan arayüzü
type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanTopup tek satırı modele çevirir
func scanTopup(row rowScanner) (*models.TopupRequest, error) {
	var topup models.TopupRequest
	err := row.Scan(
		&topup.ID,
		&topup.UserID,
		&topup.Amount,
		&topup.Method,
		&topup.TopupCode,
		&topup.Status,
		&topup.AdminID,
		&topup.AdminNote,
		&topup.BankTransactionID,
		&topup.DecidedAt,
		&topup.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &topup, nil
}

// scanTopups satırları model listesine çevirir
func scanTopups(rows *sql.Rows) ([]*models.TopupRequest, error) {
	var topups []*models.TopupRequest
	for rows.Next() {
		topup, err := scanTopup(rows)
		if err != nil {
			return nil, fmt.Errorf("yükleme talebi scan hatası: %w", err)
		}
		topups = append(topups, topup)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("yükleme talebi okuma hatası: %w", err)
	}

	return topups, nil
}
