package models

import "time"

// Payment durumları
const (
	PaymentStatusCompleted = "completed"
	PaymentStatusFailed    = "failed"
)

// Payment ödeme yöntemleri
const (
	PaymentMethodWallet = "wallet"
)

// Payment sipariş başına ödeme kaydı
type Payment struct {
	ID        int       `json:"id" db:"id"`
	OrderID   int       `json:"order_id" db:"order_id"`
	UserID    int       `json:"user_id" db:"user_id"`
	Amount    int64     `json:"amount" db:"amount"`
	Method    string    `json:"method" db:"method"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
