package models

import "time"

// Entitlement satın alınan dijital ürüne erişim hakkı.
// (user_id, product_id) üzerinde unique'tir; tekrar satın alma yeni
// kayıt oluşturmaz ("ignore if exists").
type Entitlement struct {
	ID        int       `json:"id" db:"id"`
	UserID    int       `json:"user_id" db:"user_id"`
	ProductID int       `json:"product_id" db:"product_id"`
	OrderID   int       `json:"order_id" db:"order_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}
