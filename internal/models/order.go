package models

import "time"

// Order durumları
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusCompleted = "completed"
	OrderStatusCancelled = "cancelled"
	OrderStatusRefunded  = "refunded"
)

// Order sipariş kaydı. OrderItem'larıyla birlikte tek transaction'da
// oluşturulur; total_amount her zaman item'ların sunucu fiyatlı toplamıdır.
type Order struct {
	ID            int       `json:"id" db:"id"`
	UserID        int       `json:"user_id" db:"user_id"`
	Status        string    `json:"status" db:"status"`
	TotalAmount   int64     `json:"total_amount" db:"total_amount"`
	Currency      string    `json:"currency" db:"currency"`
	PaymentMethod string    `json:"payment_method" db:"payment_method"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time `json:"updated_at" db:"updated_at"`
}

// OrderItem sipariş satırı. Ürün adı ve birim fiyat, katalog sonradan
// değişebileceği için satın alma anındaki haliyle denormalize edilir.
type OrderItem struct {
	ID          int    `json:"id" db:"id"`
	OrderID     int    `json:"order_id" db:"order_id"`
	ProductID   int    `json:"product_id" db:"product_id"`
	ProductName string `json:"product_name" db:"product_name"`
	UnitPrice   int64  `json:"unit_price" db:"unit_price"`
	Quantity    int    `json:"quantity" db:"quantity"`
}

// CheckoutRequest sepet onaylama isteği
type CheckoutRequest struct {
	Items []CartItem `json:"items"`
}

// CheckoutResponse başarılı checkout yanıtı
type CheckoutResponse struct {
	OrderID       int            `json:"order_id"`
	TotalAmount   int64          `json:"total_amount"`
	Currency      string         `json:"currency"`
	BalanceBefore int64          `json:"balance_before"`
	BalanceAfter  int64          `json:"balance_after"`
	Items         []VerifiedItem `json:"items"`
}
