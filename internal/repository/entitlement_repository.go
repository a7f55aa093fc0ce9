package repository

import (
	"database/sql"
	"fmt"

	"github.com/onerilhan/go-store-api/internal/interfaces"
	"github.com/onerilhan/go-store-api/internal/models"
)

// EntitlementRepository erişim hakkı okuma işlemleri
type EntitlementRepository struct {
	db *sql.DB
}

// NewEntitlementRepository yeni repository oluşturur
func NewEntitlementRepository(db *sql.DB) interfaces.EntitlementRepositoryInterface {
	return &EntitlementRepository{db: db}
}

// GetByUserID kullanıcının tüm erişim haklarını getirir
func (r *EntitlementRepository) GetByUserID(userID int) ([]*models.Entitlement, error) {
	query := `
		SELECT id, user_id, product_id, order_id, created_at
		FROM entitlements
		WHERE user_id = $1
		ORDER BY created_at DESC
	`

	rows, err := r.db.Query(query, userID)
	if err != nil {
		return nil, fmt.Errorf("erişim hakkı listesi alınamadı: %w", err)
	}
	defer rows.Close()

	var entitlements []*models.Entitlement
	for rows.Next() {
		var e models.Entitlement
		err := rows.Scan(&e.ID, &e.UserID, &e.ProductID, &e.OrderID, &e.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("erişim hakkı scan hatası: %w", err)
		}
		entitlements = append(entitlements, &e)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("erişim hakkı okuma hatası: %w", err)
	}

	return entitlements, nil
}
