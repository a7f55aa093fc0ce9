package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"
)

// JWT için secret key; main config'ten SetSecret ile set eder
var jwtSecret = []byte("change-this-secret-in-production")

// SetSecret imzalama anahtarını ayarlar
func SetSecret(secret string) {
	jwtSecret = []byte(secret)
}

// Claims JWT payload'ını temsil eder
type Claims struct {
	UserID int    `json:"user_id"`
	Email  string `json:"email"`
	Role   string `json:"role"`
	jwt.RegisteredClaims
}

// GenerateToken kullanıcı için JWT token oluşturur
func GenerateToken(userID int, email, role string) (string, error) {
	// Token 24 saat geçerli olacak
	expirationTime := time.Now().Add(24 * time.Hour)

	claims := &Claims{
		UserID: userID,
		Email:  email,
		Role:   role,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(expirationTime),
			IssuedAt:  jwt.NewNumericDate(time.Now()),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	tokenString, err := token.SignedString(jwtSecret)
	if err != nil {
		return "", fmt.Errorf("token oluşturulamadı: %w", err)
	}

	return tokenString, nil
}

// ValidateToken JWT token'ını doğrular ve claims'i döner
func ValidateToken(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		// Signing method kontrolü
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("beklenmeyen signing method: %v", token.Header["alg"])
		}
		return jwtSecret, nil
	})

	if err != nil {
		return nil, fmt.Errorf("token parse edilemedi: %w", err)
	}

	if claims, ok := token.Claims.(*Claims); ok && token.Valid {
		return claims, nil
	}

	return nil, fmt.Errorf("geçersiz token")
}

// RefreshToken süresi dolmuş token'dan yeni token üretir.
// Sadece imzası geçerli ama süresi dolmuş token'lar yenilenir; hala
// geçerli bir token için refresh gerekmez.
func RefreshToken(tokenString string) (string, int64, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("beklenmeyen signing method: %v", token.Header["alg"])
		}
		return jwtSecret, nil
	})

	// Token geçerliyse refresh gerekmiyor
	if err == nil && token.Valid {
		return "", 0, fmt.Errorf("token hala geçerli, refresh gerekmiyor")
	}

	if token == nil {
		return "", 0, fmt.Errorf("token parse edilemedi: %w", err)
	}

	if errors.Is(err, jwt.ErrTokenExpired) {
		claims, ok := token.Claims.(*Claims)
		if !ok {
			return "", 0, fmt.Errorf("token claims alınamadı")
		}

		newToken, genErr := GenerateToken(claims.UserID, claims.Email, claims.Role)
		if genErr != nil {
			return "", 0, fmt.Errorf("yeni token oluşturulamadı: %w", genErr)
		}

		expiresIn := int64(24 * 60 * 60) // 24 saat
		log.Info().Int("user_id", claims.UserID).Msg("Token başarıyla refresh edildi")
		return newToken, expiresIn, nil
	}

	return "", 0, fmt.Errorf("token yenilenemedi: %w", err)
}
