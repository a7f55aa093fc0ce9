package repository

import (
	"database/sql"
	"fmt"

	"github.com/onerilhan/go-store-api/internal/apperrors"
	"github.com/onerilhan/go-store-api/internal/interfaces"
	"github.com/onerilhan/go-store-api/internal/models"
)

// OrderRepository sipariş okuma işlemleri.
// Sipariş yazma işlemleri checkout transaction'ının içindedir.
type OrderRepository struct {
	db *sql.DB
}

// NewOrderRepository yeni repository oluşturur
func NewOrderRepository(db *sql.DB) interfaces.OrderRepositoryInterface {
	return &OrderRepository{db: db}
}

// GetByID ID ile siparişi item'larıyla getirir
func (r *OrderRepository) GetByID(id int) (*models.Order, []*models.OrderItem, error) {
	query := `
		SELECT id, user_id, status, total_amount, currency, payment_method, created_at, updated_at
		FROM orders
		WHERE id = $1
	`

	var order models.Order
	err := r.db.QueryRow(query, id).Scan(
		&order.ID,
		&order.UserID,
		&order.Status,
		&order.TotalAmount,
		&order.Currency,
		&order.PaymentMethod,
		&order.CreatedAt,
		&order.UpdatedAt,
	)

	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil, &apperrors.NotFoundError{Entity: "sipariş", ID: id}
		}
		return nil, nil, fmt.Errorf("sipariş arama hatası: %w", err)
	}

	itemQuery := `
		SELECT id, order_id, product_id, product_name, unit_price, quantity
		FROM order_items
		WHERE order_id = $1
		ORDER BY id
	`

	rows, err := r.db.Query(itemQuery, id)
	if err != nil {
		return nil, nil, fmt.Errorf("sipariş item listesi alınamadı: %w", err)
	}
	defer rows.Close()

	var items []*models.OrderItem
	for rows.Next() {
		var item models.OrderItem
		err := rows.Scan(
			&item.ID,
			&item.OrderID,
			&item.ProductID,
			&item.ProductName,
			&item.UnitPrice,
			&item.Quantity,
		)
		if err != nil {
			return nil, nil, fmt.Errorf("sipariş item scan hatası: %w", err)
		}
		items = append(items, &item)
	}

	if err := rows.Err(); err != nil {
		return nil, nil, fmt.Errorf("sipariş item okuma hatası: %w", err)
	}

	return &order, items, nil
}

// GetByUserID kullanıcının siparişlerini getirir
func (r *OrderRepository) GetByUserID(userID int, limit, offset int) ([]*models.Order, error) {
	query := `
		SELECT id, user_id, status, total_amount, currency, payment_method, created_at, updated_at
		FROM orders
		WHERE user_id = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3
	`

	rows, err := r.db.Query(query, userID, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("sipariş listesi alınamadı: %w", err)
	}
	defer rows.Close()

	var orders []*models.Order
	for rows.Next() {
		var order models.Order
		err := rows.Scan(
			&order.ID,
			&order.UserID,
			&order.Status,
			&order.TotalAmount,
			&order.Currency,
			&order.PaymentMethod,
			&order.CreatedAt,
			&order.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("sipariş scan hatası: %w", err)
		}
		orders = append(orders, &order)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("sipariş okuma hatası: %w", err)
	}

	return orders, nil
}
