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
	"github.com/onerilhan/go-store-api/internal/utils"
)

// AdminHandler admin HTTP isteklerini yönetir.
// Rol kontrolü route'a bağlanan RBAC middleware'indedir.
type AdminHandler struct {
	topupService     interfaces.TopupServiceInterface
	reconcileService interfaces.ReconcileServiceInterface
	auditRepo        interfaces.AuditRepositoryInterface
}

// NewAdminHandler yeni handler oluşturur
func NewAdminHandler(topupService interfaces.TopupServiceInterface, reconcileService interfaces.ReconcileServiceInterface, auditRepo interfaces.AuditRepositoryInterface) *AdminHandler {
	return &AdminHandler{
		topupService:     topupService,
		reconcileService: reconcileService,
		auditRepo:        auditRepo,
	}
}

// DecideTopup yükleme talebine admin kararı endpoint'i (admin)
func (h *AdminHandler) DecideTopup(w http.ResponseWriter, r *http.Request) {
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

	var req models.TopupDecisionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteErrorResponse(w, r, http.StatusBadRequest, "Geçersiz JSON formatı", nil)
		return
	}

	if err := req.Validate(); err != nil {
		log.Warn().
			Err(err).
			Int("admin_id", claims.UserID).
			Int("topup_id", topupID).
			Msg("❌ Karar validation hatası")
		middleware.WriteErrorResponse(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}

	clientIP := utils.GetClientIP(r)

	response, err := h.topupService.Decide(claims.UserID, topupID, req.Action, req.Note, clientIP)
	if err != nil {
		log.Warn().
			Err(err).
			Int("admin_id", claims.UserID).
			Int("topup_id", topupID).
			Str("action", req.Action).
			Msg("Karar uygulanamadı")
		writeDomainError(w, r, err)
		return
	}

	log.Info().
		Int("admin_id", claims.UserID).
		Int("topup_id", topupID).
		Str("action", req.Action).
		Str("client_ip", clientIP).
		Msg("Admin kararı uygulandı")

	writeSuccess(w, http.StatusOK, response, "")
}

// RunReconcile banka mutabakatını elle tetikler (admin)
func (h *AdminHandler) RunReconcile(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		middleware.WriteErrorResponse(w, r, http.StatusUnauthorized, "Yetkilendirme hatası. Lütfen tekrar giriş yapın.", nil)
		return
	}

	result, err := h.reconcileService.ReconcileBankTopups(r.Context())
	if err != nil {
		log.Error().Err(err).Int("admin_id", claims.UserID).Msg("Mutabakat başarısız")
		writeDomainError(w, r, err)
		return
	}

	log.Info().
		Int("admin_id", claims.UserID).
		Int("processed", result.ProcessedCount).
		Int("approved", result.ApprovedCount).
		Msg("Mutabakat elle tetiklendi")

	writeSuccess(w, http.StatusOK, result, "")
}

// GetAuditLogs audit loglarını listeler (admin)
func (h *AdminHandler) GetAuditLogs(w http.ResponseWriter, r *http.Request) {
	limit, offset := parsePagination(r)

	logs, err := h.auditRepo.GetAll(limit, offset)
	if err != nil {
		log.Error().Err(err).Msg("Audit logları getirilemedi")
		middleware.WriteErrorResponse(w, r, http.StatusInternalServerError, "Audit logları alınamadı. Lütfen tekrar deneyin.", nil)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]interface{}{
		"audit_logs": logs,
		"limit":      limit,
		"offset":     offset,
		"count":      len(logs),
	}, "")
}
