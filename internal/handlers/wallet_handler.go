package handlers

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-store-api/internal/interfaces"
	"github.com/onerilhan/go-store-api/internal/middleware"
)

// WalletHandler cüzdan HTTP isteklerini yönetir
type WalletHandler struct {
	walletService interfaces.WalletServiceInterface
}

// NewWalletHandler yeni handler oluşturur
func NewWalletHandler(walletService interfaces.WalletServiceInterface) *WalletHandler {
	return &WalletHandler{walletService: walletService}
}

// GetWallet kullanıcının cüzdanını döner (protected)
func (h *WalletHandler) GetWallet(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		middleware.WriteErrorResponse(w, r, http.StatusUnauthorized, "Yetkilendirme hatası. Lütfen tekrar giriş yapın.", nil)
		return
	}

	wallet, err := h.walletService.GetWallet(claims.UserID)
	if err != nil {
		log.Error().Err(err).Int("user_id", claims.UserID).Msg("Cüzdan getirilemedi")
		writeDomainError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, wallet, "")
}

// GetTransactions kullanıcının ledger kayıtlarını listeler (protected)
func (h *WalletHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		middleware.WriteErrorResponse(w, r, http.StatusUnauthorized, "Yetkilendirme hatası. Lütfen tekrar giriş yapın.", nil)
		return
	}

	limit, offset := parsePagination(r)

	transactions, err := h.walletService.GetTransactions(claims.UserID, limit, offset)
	if err != nil {
		log.Error().Err(err).Int("user_id", claims.UserID).Msg("Ledger kayıtları getirilemedi")
		middleware.WriteErrorResponse(w, r, http.StatusInternalServerError, "Cüzdan hareketleri alınamadı. Lütfen tekrar deneyin.", nil)
		return
	}

	writeSuccess(w, http.StatusOK, map[string]interface{}{
		"transactions": transactions,
		"limit":        limit,
		"offset":       offset,
		"count":        len(transactions),
	}, "")
}

// CheckLedger kullanıcının ledger tutarlılık kontrolü (protected)
func (h *WalletHandler) CheckLedger(w http.ResponseWriter, r *http.Request) {
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		middleware.WriteErrorResponse(w, r, http.StatusUnauthorized, "Yetkilendirme hatası. Lütfen tekrar giriş yapın.", nil)
		return
	}

	result, err := h.walletService.CheckLedger(claims.UserID)
	if err != nil {
		log.Error().Err(err).Int("user_id", claims.UserID).Msg("Ledger kontrolü başarısız")
		writeDomainError(w, r, err)
		return
	}

	writeSuccess(w, http.StatusOK, result, "")
}
