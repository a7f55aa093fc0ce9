package services

import (
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/onerilhan/go-store-api/internal/apperrors"
	"github.com/onerilhan/go-store-api/internal/interfaces"
	"github.com/onerilhan/go-store-api/internal/models"
)

// MockPriceVerifier - test için mock verifier
type MockPriceVerifier struct {
	mock.Mock
}

var _ interfaces.PriceVerifierInterface = (*MockPriceVerifier)(nil)

func (m *MockPriceVerifier) Verify(items []models.CartItem) ([]models.VerifiedItem, int64, error) {
	args := m.Called(items)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).([]models.VerifiedItem), args.Get(1).(int64), args.Error(2)
}

// MockNotifier - test için mock notifier
type MockNotifier struct {
	mock.Mock
}

var _ interfaces.NotifierInterface = (*MockNotifier)(nil)

func (m *MockNotifier) NotifyCheckout(userID, orderID int, totalAmount int64) {
	m.Called(userID, orderID, totalAmount)
}

func TestCheckoutService_Checkout_Success(t *testing.T) {
	// Arrange
	database, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer database.Close()

	mockVerifier := new(MockPriceVerifier)
	mockNotifier := new(MockNotifier)
	service := NewCheckoutService(mockVerifier, mockNotifier, database, "TRY")

	items := []models.CartItem{{ProductID: 1, Quantity: 2}}
	verified := []models.VerifiedItem{
		{ProductID: 1, ProductName: "E-Kitap", UnitPrice: 30000, Quantity: 2, Subtotal: 60000},
	}
	mockVerifier.On("Verify", items).Return(verified, int64(60000), nil)
	mockNotifier.On("NotifyCheckout", 1, 42, int64(60000)).Return()

	// Bakiye 100000, sipariş 60000: kalan 40000
	dbMock.ExpectBegin()
	dbMock.ExpectQuery("SELECT balance FROM wallets").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(100000))
	dbMock.ExpectQuery("INSERT INTO orders").
		WithArgs(1, int64(60000), "TRY").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(42))
	dbMock.ExpectExec("INSERT INTO order_items").
		WithArgs(42, 1, "E-Kitap", int64(30000), 2).
		WillReturnResult(sqlmock.NewResult(1, 1))
	dbMock.ExpectExec("INSERT INTO wallet_transactions").
		WithArgs(1, int64(60000), int64(100000), int64(40000), 42, "Sipariş #42").
		WillReturnResult(sqlmock.NewResult(1, 1))
	dbMock.ExpectExec("UPDATE wallets").
		WithArgs(int64(40000), 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	dbMock.ExpectExec("INSERT INTO entitlements").
		WithArgs(1, 1, 42).
		WillReturnResult(sqlmock.NewResult(1, 1))
	dbMock.ExpectExec("INSERT INTO payments").
		WithArgs(42, 1, int64(60000)).
		WillReturnResult(sqlmock.NewResult(1, 1))
	dbMock.ExpectCommit()

	// Act
	result, err := service.Checkout(1, &models.CheckoutRequest{Items: items})

	// Assert
	assert.NoError(t, err)
	assert.NotNil(t, result)
	assert.Equal(t, 42, result.OrderID)
	assert.Equal(t, int64(60000), result.TotalAmount)
	assert.Equal(t, int64(100000), result.BalanceBefore)
	assert.Equal(t, int64(40000), result.BalanceAfter)
	assert.NoError(t, dbMock.ExpectationsWereMet())
	mockVerifier.AssertExpectations(t)
}

func TestCheckoutService_Checkout_InsufficientBalance(t *testing.T) {
	database, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer database.Close()

	mockVerifier := new(MockPriceVerifier)
	mockNotifier := new(MockNotifier)
	service := NewCheckoutService(mockVerifier, mockNotifier, database, "TRY")

	items := []models.CartItem{{ProductID: 1, Quantity: 1}}
	verified := []models.VerifiedItem{
		{ProductID: 1, ProductName: "Kurs", UnitPrice: 150000, Quantity: 1, Subtotal: 150000},
	}
	mockVerifier.On("Verify", items).Return(verified, int64(150000), nil)

	// Bakiye 100000, sipariş 150000: reddedilir, hiçbir yazma olmaz
	dbMock.ExpectBegin()
	dbMock.ExpectQuery("SELECT balance FROM wallets").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(100000))
	dbMock.ExpectRollback()

	result, err := service.Checkout(1, &models.CheckoutRequest{Items: items})

	assert.Nil(t, result)
	var insufficientErr *apperrors.InsufficientBalanceError
	assert.ErrorAs(t, err, &insufficientErr)
	assert.Equal(t, int64(150000), insufficientErr.Required)
	assert.Equal(t, int64(100000), insufficientErr.Available)
	assert.NoError(t, dbMock.ExpectationsWereMet())
	mockNotifier.AssertNotCalled(t, "NotifyCheckout")
}

func TestCheckoutService_Checkout_EmptyCart(t *testing.T) {
	database, _, err := sqlmock.New()
	assert.NoError(t, err)
	defer database.Close()

	mockVerifier := new(MockPriceVerifier)
	service := NewCheckoutService(mockVerifier, new(MockNotifier), database, "TRY")

	result, err := service.Checkout(1, &models.CheckoutRequest{})

	assert.Nil(t, result)
	var emptyErr *apperrors.EmptyCartError
	assert.ErrorAs(t, err, &emptyErr)
	mockVerifier.AssertNotCalled(t, "Verify")
}

func TestCheckoutService_Checkout_WalletNotFound(t *testing.T) {
	database, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer database.Close()

	mockVerifier := new(MockPriceVerifier)
	service := NewCheckoutService(mockVerifier, new(MockNotifier), database, "TRY")

	items := []models.CartItem{{ProductID: 1, Quantity: 1}}
	mockVerifier.On("Verify", items).Return([]models.VerifiedItem{
		{ProductID: 1, ProductName: "E-Kitap", UnitPrice: 30000, Quantity: 1, Subtotal: 30000},
	}, int64(30000), nil)

	dbMock.ExpectBegin()
	dbMock.ExpectQuery("SELECT balance FROM wallets").
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}))
	dbMock.ExpectRollback()

	result, err := service.Checkout(7, &models.CheckoutRequest{Items: items})

	assert.Nil(t, result)
	var notFoundErr *apperrors.WalletNotFoundError
	assert.ErrorAs(t, err, &notFoundErr)
	assert.Equal(t, 7, notFoundErr.UserID)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestCheckoutService_Checkout_VerifyFails(t *testing.T) {
	database, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer database.Close()

	mockVerifier := new(MockPriceVerifier)
	service := NewCheckoutService(mockVerifier, new(MockNotifier), database, "TRY")

	items := []models.CartItem{{ProductID: 9, Quantity: 1}}
	mockVerifier.On("Verify", items).Return(nil, int64(0), fmt.Errorf("katalog sorgusu hatası"))

	result, err := service.Checkout(1, &models.CheckoutRequest{Items: items})

	assert.Nil(t, result)
	assert.Error(t, err)
	// Transaction hiç açılmadı
	assert.NoError(t, dbMock.ExpectationsWereMet())
}
