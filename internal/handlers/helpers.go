package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/onerilhan/go-store-api/internal/apperrors"
	"github.com/onerilhan/go-store-api/internal/middleware"
)

// writeSuccess standardized success response gönderir
func writeSuccess(w http.ResponseWriter, statusCode int, data interface{}, message string) {
	response := map[string]interface{}{
		"success": true,
		"data":    data,
	}
	if message != "" {
		response["message"] = message
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(response)
}

// writeDomainError domain error'unu HTTP yanıtına çevirir.
// Status ve yapılandırılmış detaylar error taksonomisinden gelir.
func writeDomainError(w http.ResponseWriter, r *http.Request, err error) {
	middleware.WriteErrorResponse(w, r, apperrors.StatusOf(err), err.Error(), apperrors.Details(err))
}

// parsePagination limit/offset query parametrelerini parse eder
func parsePagination(r *http.Request) (limit, offset int) {
	limit = 10
	offset = 0

	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		if parsedLimit, err := strconv.Atoi(limitStr); err == nil && parsedLimit > 0 && parsedLimit <= 100 {
			limit = parsedLimit
		}
	}

	if offsetStr := r.URL.Query().Get("offset"); offsetStr != "" {
		if parsedOffset, err := strconv.Atoi(offsetStr); err == nil && parsedOffset >= 0 {
			offset = parsedOffset
		}
	}

	return limit, offset
}
