package repository

import (
	"database/sql"
	"fmt"

	"github.com/onerilhan/go-store-api/internal/interfaces"
	"github.com/onerilhan/go-store-api/internal/models"
)

// AuditRepository audit log database işlemleri
type AuditRepository struct {
	db *sql.DB
}

// NewAuditRepository yeni repository oluşturur
func NewAuditRepository(db *sql.DB) interfaces.AuditRepositoryInterface {
	return &AuditRepository{db: db}
}

// Create yeni audit log oluşturur
func (r *AuditRepository) Create(log *models.AuditLog) error {
	query := `
		INSERT INTO audit_logs (entity_type, entity_id, action, admin_id, old_data, new_data, details, ip_address)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.Exec(
		query,
		log.EntityType,
		log.EntityID,
		log.Action,
		log.AdminID,
		log.OldData,
		log.NewData,
		log.Details,
		log.IPAddress,
	)

	if err != nil {
		return fmt.Errorf("audit log oluşturulamadı: %w", err)
	}

	return nil
}

// GetAll logları getirir (pagination ile)
func (r *AuditRepository) GetAll(limit, offset int) ([]*models.AuditLog, error) {
	query := `
		SELECT id, entity_type, entity_id, action, admin_id, old_data, new_data, details, ip_address, created_at
		FROM audit_logs
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2
	`

	rows, err := r.db.Query(query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("audit log listesi alınamadı: %w", err)
	}
	defer rows.Close()

	var logs []*models.AuditLog
	for rows.Next() {
		var l models.AuditLog
		err := rows.Scan(
			&l.ID,
			&l.EntityType,
			&l.EntityID,
			&l.Action,
			&l.AdminID,
			&l.OldData,
			&l.NewData,
			&l.Details,
			&l.IPAddress,
			&l.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("audit log scan hatası: %w", err)
		}
		logs = append(logs, &l)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("audit log okuma hatası: %w", err)
	}

	return logs, nil
}
