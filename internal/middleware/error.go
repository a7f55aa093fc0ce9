package middleware

import (
	"encoding/json"
	"fmt"
	"net/http"
	"runtime/debug"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-store-api/internal/middleware/errors"
	"github.com/onerilhan/go-store-api/internal/utils"
)

// ErrorHandlingMiddleware centralized panic recovery.
// Auth/RBAC katmanları APIError panic'ler; beklenmeyen panic'ler stack
// trace ile loglanır ve client'a jenerik 500 döner.
func ErrorHandlingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if recovered := recover(); recovered != nil {
				var statusCode int
				var errorMessage string

				switch err := recovered.(type) {
				case errors.APIError:
					statusCode = err.Status()
					errorMessage = err.Error()

					log.Warn().
						Str("error_type", fmt.Sprintf("%T", err)).
						Str("method", r.Method).
						Str("path", r.URL.Path).
						Str("client_ip", utils.GetClientIP(r)).
						Int("status_code", statusCode).
						Msg(errorMessage)

				case error:
					statusCode = http.StatusInternalServerError
					errorMessage = "Sunucu hatası. Bu durum teknik ekibimize bildirildi."

					log.Error().
						Err(err).
						Str("method", r.Method).
						Str("path", r.URL.Path).
						Str("stack", string(debug.Stack())).
						Msg("🚨 Handler panic (error)")

				default:
					statusCode = http.StatusInternalServerError
					errorMessage = "Sunucu hatası. Bu durum teknik ekibimize bildirildi."

					log.Error().
						Interface("panic", recovered).
						Str("method", r.Method).
						Str("path", r.URL.Path).
						Str("stack", string(debug.Stack())).
						Msg("🚨 Handler panic")
				}

				WriteErrorResponse(w, r, statusCode, errorMessage, nil)
			}
		}()

		next.ServeHTTP(w, r)
	})
}

// WriteErrorResponse standardized error response gönderir
func WriteErrorResponse(w http.ResponseWriter, r *http.Request, statusCode int, message string, details map[string]interface{}) {
	response := errors.ErrorResponse{
		Success:   false,
		Error:     message,
		Code:      statusCode,
		Timestamp: time.Now().Format(time.RFC3339),
		RequestID: w.Header().Get("X-Request-ID"),
		Details:   details,
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(response); err != nil {
		log.Error().
			Err(err).
			Str("request_id", response.RequestID).
			Msg("Error response JSON encoding başarısız")
	}
}
