package models

import "time"

// Product durumları
const (
	ProductStatusPublished = "published"
	ProductStatusDraft     = "draft"
	ProductStatusArchived  = "archived"
)

// Product katalogdaki dijital ürün. Fiyatın tek otoritesi burasıdır;
// client'tan gelen fiyat hiçbir zaman charge tutarı olarak kullanılmaz.
type Product struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Price     int64     `json:"price" db:"price"`
	Status    string    `json:"status" db:"status"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

// CartItem client'ın gönderdiği sepet satırı.
// Price alanı sadece bilgi amaçlıdır, sunucu fiyatıyla değiştirilir.
type CartItem struct {
	ProductID int   `json:"product_id"`
	Quantity  int   `json:"quantity"`
	Price     int64 `json:"price,omitempty"`
}

// VerifiedItem fiyatı katalogdan doğrulanmış sepet satırı
type VerifiedItem struct {
	ProductID   int    `json:"product_id"`
	ProductName string `json:"product_name"`
	UnitPrice   int64  `json:"unit_price"`
	Quantity    int    `json:"quantity"`
	Subtotal    int64  `json:"subtotal"`
}
