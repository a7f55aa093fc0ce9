package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/onerilhan/go-store-api/internal/apperrors"
	"github.com/onerilhan/go-store-api/internal/interfaces"
	"github.com/onerilhan/go-store-api/internal/models"
)

// MockWalletRepository - test için mock repository
type MockWalletRepository struct {
	mock.Mock
}

var _ interfaces.WalletRepositoryInterface = (*MockWalletRepository)(nil)

func (m *MockWalletRepository) GetByUserID(userID int) (*models.Wallet, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Wallet), args.Error(1)
}

func (m *MockWalletRepository) Create(userID int) (*models.Wallet, error) {
	args := m.Called(userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Wallet), args.Error(1)
}

// MockWalletTransactionRepository - test için mock ledger repository
type MockWalletTransactionRepository struct {
	mock.Mock
}

var _ interfaces.WalletTransactionRepositoryInterface = (*MockWalletTransactionRepository)(nil)

func (m *MockWalletTransactionRepository) GetByUserID(userID int, limit, offset int) ([]*models.WalletTransaction, error) {
	args := m.Called(userID, limit, offset)
	return args.Get(0).([]*models.WalletTransaction), args.Error(1)
}

func (m *MockWalletTransactionRepository) GetAllByUserAsc(userID int) ([]*models.WalletTransaction, error) {
	args := m.Called(userID)
	return args.Get(0).([]*models.WalletTransaction), args.Error(1)
}

func TestWalletService_CheckLedger_Consistent(t *testing.T) {
	// Arrange
	mockWalletRepo := new(MockWalletRepository)
	mockTxRepo := new(MockWalletTransactionRepository)
	service := NewWalletService(mockWalletRepo, mockTxRepo)

	mockWalletRepo.On("GetByUserID", 1).Return(&models.Wallet{UserID: 1, Balance: 340000}, nil)

	// 0 + 500000 - 60000 - 100000 = 340000
	mockTxRepo.On("GetAllByUserAsc", 1).Return([]*models.WalletTransaction{
		{ID: 1, Type: models.TxTypeCredit, Amount: 500000, BalanceBefore: 0, BalanceAfter: 500000},
		{ID: 2, Type: models.TxTypeDebit, Amount: 60000, BalanceBefore: 500000, BalanceAfter: 440000},
		{ID: 3, Type: models.TxTypeDebit, Amount: 100000, BalanceBefore: 440000, BalanceAfter: 340000},
	}, nil)

	// Act
	result, err := service.CheckLedger(1)

	// Assert
	assert.NoError(t, err)
	assert.True(t, result.Consistent)
	assert.Equal(t, int64(340000), result.LedgerBalance)
	assert.Equal(t, int64(340000), result.WalletBalance)
	assert.Equal(t, 3, result.TransactionCount)
}

func TestWalletService_CheckLedger_BalanceMismatch(t *testing.T) {
	mockWalletRepo := new(MockWalletRepository)
	mockTxRepo := new(MockWalletTransactionRepository)
	service := NewWalletService(mockWalletRepo, mockTxRepo)

	// Cüzdan 400000 diyor ama ledger 340000 veriyor
	mockWalletRepo.On("GetByUserID", 1).Return(&models.Wallet{UserID: 1, Balance: 400000}, nil)
	mockTxRepo.On("GetAllByUserAsc", 1).Return([]*models.WalletTransaction{
		{ID: 1, Type: models.TxTypeCredit, Amount: 340000, BalanceBefore: 0, BalanceAfter: 340000},
	}, nil)

	result, err := service.CheckLedger(1)

	assert.NoError(t, err)
	assert.False(t, result.Consistent)
	assert.Equal(t, int64(340000), result.LedgerBalance)
	assert.Equal(t, int64(400000), result.WalletBalance)
}

func TestWalletService_CheckLedger_BrokenChain(t *testing.T) {
	mockWalletRepo := new(MockWalletRepository)
	mockTxRepo := new(MockWalletTransactionRepository)
	service := NewWalletService(mockWalletRepo, mockTxRepo)

	// Fold 340000'e varıyor ama ikinci kaydın balance_before zinciri kopuk
	mockWalletRepo.On("GetByUserID", 1).Return(&models.Wallet{UserID: 1, Balance: 340000}, nil)
	mockTxRepo.On("GetAllByUserAsc", 1).Return([]*models.WalletTransaction{
		{ID: 1, Type: models.TxTypeCredit, Amount: 500000, BalanceBefore: 0, BalanceAfter: 500000},
		{ID: 2, Type: models.TxTypeDebit, Amount: 160000, BalanceBefore: 999999, BalanceAfter: 340000},
	}, nil)

	result, err := service.CheckLedger(1)

	assert.NoError(t, err)
	assert.False(t, result.Consistent)
}

func TestWalletService_CheckLedger_EmptyLedger(t *testing.T) {
	mockWalletRepo := new(MockWalletRepository)
	mockTxRepo := new(MockWalletTransactionRepository)
	service := NewWalletService(mockWalletRepo, mockTxRepo)

	mockWalletRepo.On("GetByUserID", 1).Return(&models.Wallet{UserID: 1, Balance: 0}, nil)
	mockTxRepo.On("GetAllByUserAsc", 1).Return([]*models.WalletTransaction{}, nil)

	result, err := service.CheckLedger(1)

	assert.NoError(t, err)
	assert.True(t, result.Consistent)
	assert.Equal(t, 0, result.TransactionCount)
}

func TestWalletService_GetWallet_NotFound(t *testing.T) {
	mockWalletRepo := new(MockWalletRepository)
	service := NewWalletService(mockWalletRepo, new(MockWalletTransactionRepository))

	mockWalletRepo.On("GetByUserID", 9).Return(nil, &apperrors.WalletNotFoundError{UserID: 9})

	wallet, err := service.GetWallet(9)

	assert.Nil(t, wallet)
	var notFoundErr *apperrors.WalletNotFoundError
	assert.ErrorAs(t, err, &notFoundErr)
}

func TestWalletService_GetTransactions_LimitClamping(t *testing.T) {
	mockWalletRepo := new(MockWalletRepository)
	mockTxRepo := new(MockWalletTransactionRepository)
	service := NewWalletService(mockWalletRepo, mockTxRepo)

	// Geçersiz limit/offset default'lara çekilir
	mockTxRepo.On("GetByUserID", 1, 10, 0).Return([]*models.WalletTransaction{}, nil)

	_, err := service.GetTransactions(1, 500, -3)

	assert.NoError(t, err)
	mockTxRepo.AssertCalled(t, "GetByUserID", 1, 10, 0)
}
