package models

import (
	"fmt"
	"net/mail"
	"strings"
)

// Validate kayıt isteğini doğrular
func (r *CreateUserRequest) Validate() error {
	if strings.TrimSpace(r.Name) == "" {
		return fmt.Errorf("isim boş olamaz")
	}
	if len(r.Name) > 100 {
		return fmt.Errorf("isim en fazla 100 karakter olabilir")
	}
	if _, err := mail.ParseAddress(r.Email); err != nil {
		return fmt.Errorf("geçersiz email formatı")
	}
	if len(r.Password) < 8 {
		return fmt.Errorf("şifre en az 8 karakter olmalıdır")
	}
	return nil
}

// Validate giriş isteğini doğrular
func (r *LoginRequest) Validate() error {
	if r.Email == "" {
		return fmt.Errorf("email boş olamaz")
	}
	if r.Password == "" {
		return fmt.Errorf("şifre boş olamaz")
	}
	return nil
}

// Validate checkout isteğini doğrular.
// Fiyat alanları burada kontrol edilmez: fiyat otoritesi katalogdur,
// client fiyatı sadece gösterim amaçlıdır.
func (r *CheckoutRequest) Validate() error {
	if len(r.Items) == 0 {
		return fmt.Errorf("sepet boş olamaz")
	}
	for i, item := range r.Items {
		if item.ProductID <= 0 {
			return fmt.Errorf("geçersiz ürün ID (satır %d)", i+1)
		}
		if item.Quantity <= 0 {
			return fmt.Errorf("adet sıfırdan büyük olmalıdır (satır %d)", i+1)
		}
	}
	return nil
}

// Validate yükleme talebi isteğini doğrular
func (r *CreateTopupRequest) Validate() error {
	if r.Amount <= 0 {
		return fmt.Errorf("tutar sıfırdan büyük olmalıdır")
	}
	if r.Method != "" && r.Method != "bank_transfer" {
		return fmt.Errorf("geçersiz yükleme yöntemi: %s", r.Method)
	}
	return nil
}

// Validate admin karar isteğini doğrular
func (r *TopupDecisionRequest) Validate() error {
	if r.Action != TopupActionApprove && r.Action != TopupActionDeny {
		return fmt.Errorf("geçersiz karar: %q. Geçerli kararlar: approve, deny", r.Action)
	}
	if len(r.Note) > 500 {
		return fmt.Errorf("not en fazla 500 karakter olabilir")
	}
	return nil
}
