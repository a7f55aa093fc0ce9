package services

import (
	"errors"
	"fmt"

	"github.com/onerilhan/go-store-api/internal/apperrors"
	"github.com/onerilhan/go-store-api/internal/interfaces"
	"github.com/onerilhan/go-store-api/internal/models"
)

// PriceVerifier sepet fiyatlarını katalogdan doğrular.
// Client'tan gelen fiyat data'dır, charge tutarı değildir: her satır için
// sunucu fiyatı yazılır ve toplam sunucu fiyatlarından hesaplanır.
type PriceVerifier struct {
	productRepo interfaces.ProductRepositoryInterface
}

// NewPriceVerifier yeni verifier oluşturur
func NewPriceVerifier(productRepo interfaces.ProductRepositoryInterface) *PriceVerifier {
	return &PriceVerifier{productRepo: productRepo}
}

// Verify sepeti katalog fiyatlarıyla doğrular ve toplamı döner.
// Herhangi bir ürün yoksa ya da yayında değilse checkout'un tamamı
// ProductUnavailable ile reddedilir, kısmi karşılama yapılmaz.
func (v *PriceVerifier) Verify(items []models.CartItem) ([]models.VerifiedItem, int64, error) {
	verified := make([]models.VerifiedItem, 0, len(items))
	var total int64

	for _, item := range items {
		if item.Quantity <= 0 {
			return nil, 0, fmt.Errorf("geçersiz adet: %d (ürün: %d)", item.Quantity, item.ProductID)
		}

		product, err := v.productRepo.GetByID(item.ProductID)
		if err != nil {
			var unavailableErr *apperrors.ProductUnavailableError
			if errors.As(err, &unavailableErr) {
				return nil, 0, err
			}
			return nil, 0, fmt.Errorf("katalog sorgusu hatası: %w", err)
		}

		if product.Status != models.ProductStatusPublished {
			return nil, 0, &apperrors.ProductUnavailableError{ProductID: item.ProductID}
		}

		subtotal := product.Price * int64(item.Quantity)
		verified = append(verified, models.VerifiedItem{
			ProductID:   product.ID,
			ProductName: product.Name,
			UnitPrice:   product.Price, // client fiyatı değil, katalog fiyatı
			Quantity:    item.Quantity,
			Subtotal:    subtotal,
		})
		total += subtotal
	}

	return verified, total, nil
}
