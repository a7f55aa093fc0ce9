package repository

import (
	"database/sql"
	"fmt"

	"github.com/onerilhan/go-store-api/internal/apperrors"
	"github.com/onerilhan/go-store-api/internal/interfaces"
	"github.com/onerilhan/go-store-api/internal/models"
)

// ProductRepository katalog okuma işlemleri
type ProductRepository struct {
	db *sql.DB
}

// NewProductRepository yeni repository oluşturur
func NewProductRepository(db *sql.DB) interfaces.ProductRepositoryInterface {
	return &ProductRepository{db: db}
}

// GetByID ID ile ürün getirir
func (r *ProductRepository) GetByID(id int) (*models.Product, error) {
	query := `
		SELECT id, name, price, status, created_at
		FROM products
		WHERE id = $1
	`

	var product models.Product
	err := r.db.QueryRow(query, id).Scan(
		&product.ID,
		&product.Name,
		&product.Price,
		&product.Status,
		&product.CreatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, &apperrors.ProductUnavailableError{ProductID: id}
		}
		return nil, fmt.Errorf("ürün arama hatası: %w", err)
	}

	return &product, nil
}
