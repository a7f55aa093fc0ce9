package repository

import (
	"database/sql"
	"fmt"

	"github.com/onerilhan/go-store-api/internal/apperrors"
	"github.com/onerilhan/go-store-api/internal/interfaces"
	"github.com/onerilhan/go-store-api/internal/models"
)

// UserRepository kullanıcı database işlemleri
type UserRepository struct {
	db *sql.DB
}

// NewUserRepository yeni repository oluşturur
func NewUserRepository(db *sql.DB) interfaces.UserRepositoryInterface {
	return &UserRepository{db: db}
}

// Create yeni kullanıcı oluşturur ve cüzdan satırını açar.
// İkisi aynı transaction'da yapılır: kayıtlı ama cüzdansız kullanıcı
// veri tutarsızlığıdır, oluşmasına izin verilmez.
func (r *UserRepository) Create(req *models.CreateUserRequest) (*models.User, error) {
	tx, err := r.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("transaction başlatılamadı: %w", err)
	}

	var user models.User
	err = tx.QueryRow(`
		INSERT INTO users (name, email, password, role)
		VALUES ($1, $2, $3, $4)
		RETURNING id, name, email, role, created_at
	`, req.Name, req.Email, req.Password, req.Role).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Role,
		&user.CreatedAt,
	)

	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("kullanıcı oluşturulamadı: %w", err)
	}

	_, err = tx.Exec(`INSERT INTO wallets (user_id, balance) VALUES ($1, 0)`, user.ID)
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("cüzdan oluşturulamadı: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("kullanıcı kaydı commit edilemedi: %w", err)
	}

	return &user, nil
}

// GetByEmail email ile kullanıcı bulur
func (r *UserRepository) GetByEmail(email string) (*models.User, error) {
	query := `
		SELECT id, name, email, password, role, created_at
		FROM users
		WHERE email = $1
	`

	var user models.User
	err := r.db.QueryRow(query, email).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Password,
		&user.Role,
		&user.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("kullanıcı bulunamadı")
		}
		return nil, fmt.Errorf("kullanıcı arama hatası: %w", err)
	}

	return &user, nil
}

// GetByID ID ile kullanıcı bulur
func (r *UserRepository) GetByID(id int) (*models.User, error) {
	query := `
		SELECT id, name, email, password, role, created_at
		FROM users
		WHERE id = $1
	`

	var user models.User
	err := r.db.QueryRow(query, id).Scan(
		&user.ID,
		&user.Name,
		&user.Email,
		&user.Password,
		&user.Role,
		&user.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &apperrors.NotFoundError{Entity: "kullanıcı", ID: id}
		}
		return nil, fmt.Errorf("kullanıcı arama hatası: %w", err)
	}

	return &user, nil
}
