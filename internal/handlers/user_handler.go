package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-store-api/internal/auth"
	"github.com/onerilhan/go-store-api/internal/middleware"
	"github.com/onerilhan/go-store-api/internal/models"
	"github.com/onerilhan/go-store-api/internal/services"
)

// UserHandler kullanıcı HTTP isteklerini yönetir
type UserHandler struct {
	userService *services.UserService
}

// NewUserHandler yeni handler oluşturur
func NewUserHandler(userService *services.UserService) *UserHandler {
	return &UserHandler{userService: userService}
}

// Register kullanıcı kayıt endpoint'i
func (h *UserHandler) Register(w http.ResponseWriter, r *http.Request) {
	// JSON'u parse et
	var req models.CreateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteErrorResponse(w, r, http.StatusBadRequest, "Geçersiz JSON formatı", nil)
		return
	}

	if err := req.Validate(); err != nil {
		log.Warn().
			Err(err).
			Str("email", req.Email).
			Msg("❌ Register validation hatası")
		middleware.WriteErrorResponse(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}

	// Kullanıcıyı oluştur
	user, err := h.userService.Register(&req)
	if err != nil {
		log.Error().Err(err).Msg("Kullanıcı kaydı başarısız")
		middleware.WriteErrorResponse(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}

	writeSuccess(w, http.StatusCreated, user, "Kullanıcı başarıyla kaydedildi")

	log.Info().
		Str("email", user.Email).
		Str("role", user.Role).
		Msg("Yeni kullanıcı kaydedildi")
}

// Login kullanıcı giriş endpoint'i
func (h *UserHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req models.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteErrorResponse(w, r, http.StatusBadRequest, "Geçersiz JSON formatı", nil)
		return
	}

	if err := req.Validate(); err != nil {
		log.Warn().
			Err(err).
			Str("email", req.Email).
			Msg("❌ Login validation hatası")
		middleware.WriteErrorResponse(w, r, http.StatusBadRequest, err.Error(), nil)
		return
	}

	// Kullanıcı girişi yap
	response, err := h.userService.Login(&req)
	if err != nil {
		log.Warn().Err(err).Msg("Giriş başarısız")
		middleware.WriteErrorResponse(w, r, http.StatusUnauthorized, err.Error(), nil)
		return
	}

	writeSuccess(w, http.StatusOK, response, "")

	log.Info().
		Str("email", response.User.Email).
		Str("role", response.User.Role).
		Msg("Kullanıcı giriş yaptı")
}

// GetProfile kullanıcının kendi profilini döner (protected endpoint)
func (h *UserHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	// Context'ten user bilgilerini al
	claims, ok := middleware.ClaimsFromContext(r.Context())
	if !ok {
		middleware.WriteErrorResponse(w, r, http.StatusUnauthorized, "Yetkilendirme hatası. Lütfen tekrar giriş yapın.", nil)
		return
	}

	user, err := h.userService.GetUserByID(claims.UserID)
	if err != nil {
		log.Error().Err(err).Int("user_id", claims.UserID).Msg("Kullanıcı bulunamadı")
		middleware.WriteErrorResponse(w, r, http.StatusNotFound, "Kullanıcı bulunamadı", nil)
		return
	}

	writeSuccess(w, http.StatusOK, user, "")
}

// Refresh JWT token yenileme endpoint'i
func (h *UserHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		middleware.WriteErrorResponse(w, r, http.StatusBadRequest, "Geçersiz JSON formatı", nil)
		return
	}

	newToken, expiresIn, err := auth.RefreshToken(req.Token)
	if err != nil {
		log.Warn().Err(err).Msg("Token refresh başarısız")
		middleware.WriteErrorResponse(w, r, http.StatusUnauthorized, err.Error(), nil)
		return
	}

	response := models.RefreshResponse{
		Success:   true,
		Token:     newToken,
		ExpiresIn: expiresIn,
		Message:   "Token başarıyla yenilendi",
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(response)
}
