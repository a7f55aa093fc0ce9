package middleware

import (
	"context"
	"net/http"
	"strings"

	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-store-api/internal/auth"
)

// ContextKey middleware'de context için key tipi
type ContextKey string

const UserContextKey ContextKey = "user"

// AuthMiddleware JWT token kontrolü yapar (Gorilla Mux için middleware)
func AuthMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Authorization header'ını al
		authHeader := r.Header.Get("Authorization")
		if authHeader == "" {
			log.Warn().
				Str("path", r.URL.Path).
				Str("method", r.Method).
				Msg("Authorization header eksik")
			WriteErrorResponse(w, r, http.StatusUnauthorized, "Authorization header gerekli", nil)
			return
		}

		// "Bearer " prefix'ini kontrol et
		tokenParts := strings.Split(authHeader, " ")
		if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
			log.Warn().
				Str("path", r.URL.Path).
				Msg("Geçersiz Authorization format")
			WriteErrorResponse(w, r, http.StatusUnauthorized, "Authorization format: 'Bearer <token>'", nil)
			return
		}

		// Token'ı doğrula
		claims, err := auth.ValidateToken(tokenParts[1])
		if err != nil {
			log.Warn().
				Err(err).
				Str("path", r.URL.Path).
				Msg("Token doğrulama başarısız")
			WriteErrorResponse(w, r, http.StatusUnauthorized, "Geçersiz token", nil)
			return
		}

		// User bilgilerini context'e ekle
		ctx := context.WithValue(r.Context(), UserContextKey, claims)
		r = r.WithContext(ctx)

		log.Debug().
			Int("user_id", claims.UserID).
			Str("path", r.URL.Path).
			Str("method", r.Method).
			Msg("🔐 Authentication successful")

		next.ServeHTTP(w, r)
	})
}

// ClaimsFromContext context'teki JWT claims'i döner
func ClaimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(UserContextKey).(*auth.Claims)
	return claims, ok
}
