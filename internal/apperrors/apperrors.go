package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// APIError HTTP status taşıyan domain error'ları için interface
type APIError interface {
	error
	Status() int
}

// UnauthorizedError kimlik doğrulama hatası
type UnauthorizedError struct {
	Message string
}

func (e *UnauthorizedError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return "kimlik doğrulanamadı"
}

func (e *UnauthorizedError) Status() int { return http.StatusUnauthorized }

// ForbiddenError kimliği doğrulanmış ama yetkisi yetersiz kullanıcı
type ForbiddenError struct {
	Role   string
	Action string
}

func (e *ForbiddenError) Error() string {
	return fmt.Sprintf("bu işlem için yetkiniz bulunmuyor: %s", e.Action)
}

func (e *ForbiddenError) Status() int { return http.StatusForbidden }

// NotFoundError aranan kayıt yok
type NotFoundError struct {
	Entity string
	ID     int
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s bulunamadı (ID: %d)", e.Entity, e.ID)
}

func (e *NotFoundError) Status() int { return http.StatusNotFound }

// WalletNotFoundError kullanıcının cüzdan kaydı yok.
// Kayıtlı kullanıcıda olmaması veri tutarsızlığına işaret eder.
type WalletNotFoundError struct {
	UserID int
}

func (e *WalletNotFoundError) Error() string {
	return fmt.Sprintf("kullanıcının cüzdanı bulunamadı (user: %d)", e.UserID)
}

func (e *WalletNotFoundError) Status() int { return http.StatusNotFound }

// AlreadyProcessedError idempotency ihlali: kayıt beklenen pending durumunda değil.
// Retry'lar bu hata ile reddedilir, işlem tekrar uygulanmaz.
type AlreadyProcessedError struct {
	Entity        string
	ID            int
	CurrentStatus string
}

func (e *AlreadyProcessedError) Error() string {
	return fmt.Sprintf("%s zaten sonuçlandırılmış (ID: %d, durum: %s)", e.Entity, e.ID, e.CurrentStatus)
}

func (e *AlreadyProcessedError) Status() int { return http.StatusConflict }

// EmptyCartError boş sepetle checkout denemesi
type EmptyCartError struct{}

func (e *EmptyCartError) Error() string { return "sepet boş" }

func (e *EmptyCartError) Status() int { return http.StatusBadRequest }

// ProductUnavailableError ürün katalogda yok ya da yayında değil.
// Checkout kısmen değil, tamamen reddedilir.
type ProductUnavailableError struct {
	ProductID int
}

func (e *ProductUnavailableError) Error() string {
	return fmt.Sprintf("ürün satışta değil (ID: %d)", e.ProductID)
}

func (e *ProductUnavailableError) Status() int { return http.StatusUnprocessableEntity }

// InsufficientBalanceError bakiye yetersiz; gereken ve mevcut tutarı taşır
type InsufficientBalanceError struct {
	Required  int64
	Available int64
}

func (e *InsufficientBalanceError) Error() string {
	return fmt.Sprintf("yetersiz bakiye. Gereken: %d, mevcut: %d", e.Required, e.Available)
}

func (e *InsufficientBalanceError) Status() int { return http.StatusUnprocessableEntity }

// ExternalServiceError dış servis (banka feed'i vb.) hatası
type ExternalServiceError struct {
	Service string
	Err     error
}

func (e *ExternalServiceError) Error() string {
	return fmt.Sprintf("dış servis hatası (%s): %v", e.Service, e.Err)
}

func (e *ExternalServiceError) Status() int { return http.StatusBadGateway }

func (e *ExternalServiceError) Unwrap() error { return e.Err }

// StatusOf error zincirindeki ilk APIError'un status'unu döner, yoksa 500
func StatusOf(err error) int {
	var apiErr APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status()
	}
	return http.StatusInternalServerError
}

// Details error tipine göre response'a eklenecek yapılandırılmış detayları döner.
// Caller'ın aksiyon alabilmesi için gereken alanlar buradan gider (örn. gereken/mevcut bakiye).
func Details(err error) map[string]interface{} {
	var insufficientErr *InsufficientBalanceError
	if errors.As(err, &insufficientErr) {
		return map[string]interface{}{
			"required":  insufficientErr.Required,
			"available": insufficientErr.Available,
		}
	}

	var processedErr *AlreadyProcessedError
	if errors.As(err, &processedErr) {
		return map[string]interface{}{
			"current_status": processedErr.CurrentStatus,
		}
	}

	var productErr *ProductUnavailableError
	if errors.As(err, &productErr) {
		return map[string]interface{}{
			"product_id": productErr.ProductID,
		}
	}

	return nil
}
