package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"golang.org/x/crypto/bcrypt"

	"github.com/onerilhan/go-store-api/internal/interfaces"
	"github.com/onerilhan/go-store-api/internal/models"
)

// MockUserRepository - test için mock repository
type MockUserRepository struct {
	mock.Mock
}

var _ interfaces.UserRepositoryInterface = (*MockUserRepository)(nil)

func (m *MockUserRepository) Create(user *models.CreateUserRequest) (*models.User, error) {
	args := m.Called(user)
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(email string) (*models.User, error) {
	args := m.Called(email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByID(id int) (*models.User, error) {
	args := m.Called(id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

// İlk basit test - kullanıcı kaydı
func TestUserService_Register_Success(t *testing.T) {
	// Arrange
	mockRepo := new(MockUserRepository)
	userService := NewUserService(mockRepo)

	req := &models.CreateUserRequest{
		Name:     "Test User",
		Email:    "test@example.com",
		Password: "Password123!",
		Role:     "user",
	}

	expectedUser := &models.User{
		ID:    1,
		Name:  "Test User",
		Email: "test@example.com",
		Role:  "user",
	}

	// Mock expectations
	mockRepo.On("GetByEmail", "test@example.com").Return(nil, nil) // Email yok
	mockRepo.On("Create", mock.AnythingOfType("*models.CreateUserRequest")).Return(expectedUser, nil)

	// Act
	result, err := userService.Register(req)

	// Assert
	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, "Test User", result.Name)
	assert.Equal(t, "test@example.com", result.Email)
	assert.Equal(t, "user", result.Role)

	// Mock assertions
	mockRepo.AssertExpectations(t)
}

// Email already exists test
func TestUserService_Register_EmailExists(t *testing.T) {
	// Arrange
	mockRepo := new(MockUserRepository)
	userService := NewUserService(mockRepo)

	req := &models.CreateUserRequest{
		Name:     "Test User",
		Email:    "existing@example.com",
		Password: "Password123!",
		Role:     "user",
	}

	existingUser := &models.User{
		ID:    1,
		Email: "existing@example.com",
	}

	// Mock: Email zaten var
	mockRepo.On("GetByEmail", "existing@example.com").Return(existingUser, nil)

	// Act
	result, err := userService.Register(req)

	// Assert
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "bu email zaten kullanılıyor")

	// Mock assertions
	mockRepo.AssertExpectations(t)
}

// Admin rolü kayıt endpoint'inden açılamaz
func TestUserService_Register_AdminRoleRejected(t *testing.T) {
	mockRepo := new(MockUserRepository)
	userService := NewUserService(mockRepo)

	req := &models.CreateUserRequest{
		Name:     "Sahte Admin",
		Email:    "admin@example.com",
		Password: "Password123!",
		Role:     "admin",
	}

	mockRepo.On("GetByEmail", "admin@example.com").Return(nil, nil)

	result, err := userService.Register(req)

	assert.Error(t, err)
	assert.Nil(t, result)
	mockRepo.AssertNotCalled(t, "Create", mock.Anything)
}

func TestUserService_Login_Success(t *testing.T) {
	// Arrange
	mockRepo := new(MockUserRepository)
	userService := NewUserService(mockRepo)

	hashed, err := bcrypt.GenerateFromPassword([]byte("Password123!"), bcrypt.MinCost)
	assert.NoError(t, err)

	mockRepo.On("GetByEmail", "test@example.com").Return(&models.User{
		ID:       1,
		Email:    "test@example.com",
		Password: string(hashed),
		Role:     "user",
	}, nil)

	// Act
	result, err := userService.Login(&models.LoginRequest{
		Email:    "test@example.com",
		Password: "Password123!",
	})

	// Assert
	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.NotEmpty(t, result.Token)
	assert.Equal(t, 1, result.User.ID)
}

func TestUserService_Login_WrongPassword(t *testing.T) {
	mockRepo := new(MockUserRepository)
	userService := NewUserService(mockRepo)

	hashed, err := bcrypt.GenerateFromPassword([]byte("DogruSifre1!"), bcrypt.MinCost)
	assert.NoError(t, err)

	mockRepo.On("GetByEmail", "test@example.com").Return(&models.User{
		ID:       1,
		Email:    "test@example.com",
		Password: string(hashed),
	}, nil)

	result, err := userService.Login(&models.LoginRequest{
		Email:    "test@example.com",
		Password: "YanlisSifre",
	})

	// Email mi şifre mi hatalı belli edilmez
	assert.Error(t, err)
	assert.Nil(t, result)
	assert.Contains(t, err.Error(), "email veya şifre hatalı")
}
