package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-store-api/internal/interfaces"
	"github.com/onerilhan/go-store-api/internal/middleware"
	"github.com/onerilhan/go-store-api/internal/models"
)

// TopupHandler yükleme talebi HTTP isteklerini yönetir
type TopupHandler struct {
	topupService interfaces.TopupServiceInterface
}

// NewTopupHandler yeni handler oluşturur
func NewTopupHandler(topupService interfaces.TopupServiceInterface) *TopupHandler {
	return &TopupHandler{topupService: topupService}
}

// CreateTopup yeni yükleme talebi endpoint'i (protected)
func (h *TopupHandler) CreateTopup(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		middleware.WriteErrorResponse(w, r, http.StatusUnauthorized, "Yetkilendirme hatası. Lütfen tekrar giriş yapın.", nil)
		return
	}

	var req models.CreateTopupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteErrorResponse(w, r, http.StatusBadRequest, "Geçersiz JSON formatı", nil)
		return
	}

	if err := req.Validate(); err != nil {
		log.Warn().
			Err(err).
			Int("user_id", claims.UserID).
			Msg("❌ Topup validation hatası")
		middleware.WriteErrorResponse(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}

	topup, err := h.topupService.CreateTopup(claims.UserID, &req)
	if err != nil {
		log.Warn().Err(err).Int("user_id", claims.UserID).Msg("Yükleme talebi oluşturulamadı")
		middleware.WriteErrorResponse(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}

	writeSuccess(w, http.StatusCreated, topup,
		"Yükleme talebi oluşturuldu. Havale açıklamasına topup kodunu yazmayı unutmayın.")
}

// GetTopups kullanıcının taleplerini listeler (protected)
func (h *TopupHandler) GetTopups(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		middleware.WriteErrorResponse(w, r, http.StatusUnauthorized, "Yetkilendirme hatası. Lütfen tekrar giriş yapın.", nil)
		return
	}

	limit, offset := parsePagination(r)

	topups, err := h.topupService.GetUserTopups(claims.UserID, limit, offset)
	if err != nil {
		log.Error().Err(err).Int("user_id", claims.UserID).Msg("Yükleme talepleri getirilemedi")
		middleware.WriteErrorResponse(w, r, http.StatusInternalServerError, "Yükleme talepleri alınamadı. Lütfen tekrar deneyin.", nil)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]interface{}{
		"topups": topups,
		"limit":  limit,
		"offset": offset,
		"count":  len(topups),
	}, "")
}

// VerifyTopup kullanıcının kendi talebini banka feed'ine karşı doğrular (protected)
func (h *TopupHandler) VerifyTopup(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		middleware.WriteErrorResponse(w, r, http.StatusUnauthorized, "Yetkilendirme hatası. Lütfen tekrar giriş yapın.", nil)
		return
	}

	vars := mux.Vars(r)
	topupID, err := strconv.Atoi(vars["id"])
	if err != nil {
		middleware.WriteErrorResponse(w, r, http.StatusBadRequest, "Geçersiz talep ID", nil)
		return
	}

	response, err := h.topupService.VerifyOwnTopup(r.Context(), claims.UserID, topupID)
	if err != nil {
		log.Warn().Err(err).Int("user_id", claims.UserID).Int("topup_id", topupID).Msg("Talep doğrulaması başarısız")
		writeDomainError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, response, "")
}
