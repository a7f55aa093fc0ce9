package services

import (
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/onerilhan/go-store-api/internal/auth"
	"github.com/onerilhan/go-store-api/internal/interfaces"
	"github.com/onerilhan/go-store-api/internal/models"
)

// UserService kullanıcı business logic'i
type UserService struct {
	userRepo interfaces.UserRepositoryInterface
}

// NewUserService yeni service oluşturur
func NewUserService(userRepo interfaces.UserRepositoryInterface) *UserService {
	return &UserService{userRepo: userRepo}
}

// Register yeni kullanıcı kaydeder; cüzdan repository tarafında aynı
// transaction'da açılır
func (s *UserService) Register(req *models.CreateUserRequest) (*models.User, error) {
	// Email zaten var mı kontrol et
	existingUser, _ := s.userRepo.GetByEmail(req.Email)
	if existingUser != nil {
		return nil, fmt.Errorf("bu email zaten kullanılıyor")
	}

	// GÜVENLIK: admin hesapları kayıt endpoint'inden açılamaz
	if req.Role == "admin" {
		return nil, fmt.Errorf("admin hesapları sadece sistem yöneticisi tarafından oluşturulabilir")
	}

	// Geçerli role kontrolü ve default assignment
	if req.Role == "" || req.Role == "user" {
		req.Role = "user"
	} else {
		return nil, fmt.Errorf("geçersiz rol: %s. Sadece 'user' rolü ile kayıt olabilirsiniz", req.Role)
	}

	// Şifreyi hashle
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("şifre hashlenemedi: %w", err)
	}
	req.Password = string(hashedPassword)

	// Kullanıcıyı ve cüzdanını oluştur
	user, err := s.userRepo.Create(req)
	if err != nil {
		return nil, fmt.Errorf("kullanıcı oluşturulamadı: %w", err)
	}

	user.Role = req.Role

	return user, nil
}

// Login kullanıcı girişi yapar ve token döner
func (s *UserService) Login(req *models.LoginRequest) (*models.LoginResponse, error) {
	// Email ile kullanıcıyı bul
	user, err := s.userRepo.GetByEmail(req.Email)
	if err != nil {
		return nil, fmt.Errorf("email veya şifre hatalı")
	}

	// Şifreyi kontrol et
	err = bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password))
	if err != nil {
		return nil, fmt.Errorf("email veya şifre hatalı")
	}

	// JWT token oluştur (role'u da dahil et)
	token, err := auth.GenerateToken(user.ID, user.Email, user.Role)
	if err != nil {
		return nil, fmt.Errorf("token oluşturulamadı: %w", err)
	}

	return &models.LoginResponse{
		User:  user,
		Token: token,
	}, nil
}

// GetUserByID ID ile kullanıcı getirir
func (s *UserService) GetUserByID(userID int) (*models.User, error) {
	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return nil, fmt.Errorf("kullanıcı bulunamadı: %w", err)
	}
	return user, nil
}
