package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-store-api/internal/interfaces"
	"github.com/onerilhan/go-store-api/internal/middleware"
	"github.com/onerilhan/go-store-api/internal/models"
)

// CheckoutHandler checkout HTTP isteklerini yönetir
type CheckoutHandler struct {
	checkoutService interfaces.CheckoutServiceInterface
	orderRepo       interfaces.OrderRepositoryInterface
	entitlementRepo interfaces.EntitlementRepositoryInterface
}

// NewCheckoutHandler yeni handler oluşturur
func NewCheckoutHandler(checkoutService interfaces.CheckoutServiceInterface, orderRepo interfaces.OrderRepositoryInterface, entitlementRepo interfaces.EntitlementRepositoryInterface) *CheckoutHandler {
	return &CheckoutHandler{
		checkoutService: checkoutService,
		orderRepo:       orderRepo,
		entitlementRepo: entitlementRepo,
	}
}

// Checkout sepet onaylama endpoint'i (protected)
func (h *CheckoutHandler) Checkout(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		middleware.WriteErrorResponse(w, r, http.StatusUnauthorized, "Yetkilendirme hatası. Lütfen tekrar giriş yapın.", nil)
		return
	}

	var req models.CheckoutRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteErrorResponse(w, r, http.StatusBadRequest, "Geçersiz JSON formatı", nil)
		return
	}

	if err := req.Validate(); err != nil {
		log.Warn().
			Err(err).
			Int("user_id", claims.UserID).
			Msg("❌ Checkout validation hatası")
		middleware.WriteErrorResponse(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}

	response, err := h.checkoutService.Checkout(claims.UserID, &req)
	if err != nil {
		log.Warn().Err(err).Int("user_id", claims.UserID).Msg("Checkout reddedildi")
		writeDomainError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusCreated, response, "Sipariş başarıyla oluşturuldu")
}

// GetOrders kullanıcının siparişlerini listeler (protected)
func (h *CheckoutHandler) GetOrders(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		middleware.WriteErrorResponse(w, r, http.StatusUnauthorized, "Yetkilendirme hatası. Lütfen tekrar giriş yapın.", nil)
		return
	}

	limit, offset := parsePagination(r)

	orders, err := h.orderRepo.GetByUserID(claims.UserID, limit, offset)
	if err != nil {
		log.Error().Err(err).Int("user_id", claims.UserID).Msg("Siparişler getirilemedi")
		middleware.WriteErrorResponse(w, r, http.StatusInternalServerError, "Siparişler alınamadı. Lütfen tekrar deneyin.", nil)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]interface{}{
		"orders": orders,
		"limit":  limit,
		"offset": offset,
		"count":  len(orders),
	}, "")
}

// GetEntitlements kullanıcının erişim haklarını listeler (protected)
func (h *CheckoutHandler) GetEntitlements(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		middleware.WriteErrorResponse(w, r, http.StatusUnauthorized, "Yetkilendirme hatası. Lütfen tekrar giriş yapın.", nil)
		return
	}

	entitlements, err := h.entitlementRepo.GetByUserID(claims.UserID)
	if err != nil {
		log.Error().Err(err).Int("user_id", claims.UserID).Msg("Erişim hakları getirilemedi")
		middleware.WriteErrorResponse(w, r, http.StatusInternalServerError, "Erişim hakları alınamadı. Lütfen tekrar deneyin.", nil)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]interface{}{
		"entitlements": entitlements,
		"count":        len(entitlements),
	}, "")
}
