package services

import (
	"context"
	"fmt"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/onerilhan/go-store-api/internal/apperrors"
	"github.com/onerilhan/go-store-api/internal/models"
)

func TestReconcileService_FeedFailure(t *testing.T) {
	// Arrange
	mockRepo := new(MockTopupRepository)
	mockFeed := new(MockBankFeedClient)
	topupService := NewTopupService(mockRepo, mockFeed, nil, 100_000_000)
	service := NewReconcileService(mockRepo, topupService, mockFeed)

	mockFeed.On("FetchTransactions", mock.Anything).Return(nil, &apperrors.ExternalServiceError{
		Service: "bank-feed",
		Err:     fmt.Errorf("connection refused"),
	})

	// Act
	result, err := service.ReconcileBankTopups(context.Background())

	// Assert: feed kesintisi hiçbir talebi etkilemez
	assert.Nil(t, result)
	var extErr *apperrors.ExternalServiceError
	assert.ErrorAs(t, err, &extErr)
	mockRepo.AssertNotCalled(t, "GetPendingWithCode")
}

func TestReconcileService_NoMatch(t *testing.T) {
	mockRepo := new(MockTopupRepository)
	mockFeed := new(MockBankFeedClient)
	topupService := NewTopupService(mockRepo, mockFeed, nil, 100_000_000)
	service := NewReconcileService(mockRepo, topupService, mockFeed)

	mockFeed.On("FetchTransactions", mock.Anything).Return([]models.BankTransaction{
		{TransactionID: "bank-1", Amount: 100, Description: "alakasiz havale", Type: models.BankTxTypeIn},
	}, nil)
	mockRepo.On("GetPendingWithCode").Return([]*models.TopupRequest{
		{ID: 5, UserID: 1, Amount: 500000, Status: models.TopupStatusPending, TopupCode: "TOPUP7X3F"},
	}, nil)

	result, err := service.ReconcileBankTopups(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 1, result.ProcessedCount)
	assert.Equal(t, 0, result.ApprovedCount)
	assert.Equal(t, models.ReconcileResultNoMatch, result.Items[0].Result)
}

func TestReconcileService_SingleMatchApproves(t *testing.T) {
	database, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer database.Close()

	mockRepo := new(MockTopupRepository)
	mockFeed := new(MockBankFeedClient)
	topupService := NewTopupService(mockRepo, mockFeed, database, 100_000_000)
	service := NewReconcileService(mockRepo, topupService, mockFeed)

	mockFeed.On("FetchTransactions", mock.Anything).Return([]models.BankTransaction{
		{TransactionID: "bank-1", Amount: 500000, Description: "Havale TOPUP7X3F", Type: models.BankTxTypeIn},
	}, nil)
	mockRepo.On("GetPendingWithCode").Return([]*models.TopupRequest{
		{ID: 5, UserID: 1, Amount: 500000, Status: models.TopupStatusPending, TopupCode: "TOPUP7X3F"},
	}, nil)

	dbMock.ExpectBegin()
	dbMock.ExpectQuery("SELECT user_id, amount, status FROM topup_requests").
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "amount", "status"}).
			AddRow(1, 500000, models.TopupStatusPending))
	dbMock.ExpectQuery("SELECT EXISTS").
		WithArgs("bank-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(false))
	dbMock.ExpectQuery("SELECT balance FROM wallets").
		WithArgs(1).
		WillReturnRows(sqlmock.NewRows([]string{"balance"}).AddRow(250000))
	dbMock.ExpectExec("INSERT INTO wallet_transactions").
		WithArgs(1, int64(500000), int64(250000), int64(750000), 5, "Bakiye yükleme #5").
		WillReturnResult(sqlmock.NewResult(1, 1))
	dbMock.ExpectExec("UPDATE wallets").
		WithArgs(int64(750000), 1).
		WillReturnResult(sqlmock.NewResult(0, 1))
	dbMock.ExpectExec("UPDATE topup_requests").
		WithArgs(nil, sqlmock.AnyArg(), "bank-1", 5).
		WillReturnResult(sqlmock.NewResult(0, 1))
	dbMock.ExpectExec("INSERT INTO audit_logs").
		WithArgs(5, models.AuditActionApproveTopup, nil, sqlmock.AnyArg(), sqlmock.AnyArg(), "").
		WillReturnResult(sqlmock.NewResult(1, 1))
	dbMock.ExpectCommit()

	result, err := service.ReconcileBankTopups(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 1, result.ProcessedCount)
	assert.Equal(t, 1, result.ApprovedCount)
	assert.Equal(t, models.ReconcileResultApproved, result.Items[0].Result)
	assert.Equal(t, "bank-1", result.Items[0].BankTransactionID)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestReconcileService_AmbiguousMatchLeftPending(t *testing.T) {
	mockRepo := new(MockTopupRepository)
	mockFeed := new(MockBankFeedClient)
	topupService := NewTopupService(mockRepo, mockFeed, nil, 100_000_000)
	service := NewReconcileService(mockRepo, topupService, mockFeed)

	// Aynı kod iki harekette: otomatik onay yapılmaz
	mockFeed.On("FetchTransactions", mock.Anything).Return([]models.BankTransaction{
		{TransactionID: "bank-1", Amount: 500000, Description: "TOPUP7X3F", Type: models.BankTxTypeIn},
		{TransactionID: "bank-2", Amount: 500000, Description: "havale TOPUP7X3F", Type: models.BankTxTypeIn},
	}, nil)
	mockRepo.On("GetPendingWithCode").Return([]*models.TopupRequest{
		{ID: 5, UserID: 1, Amount: 500000, Status: models.TopupStatusPending, TopupCode: "TOPUP7X3F"},
	}, nil)

	result, err := service.ReconcileBankTopups(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 0, result.ApprovedCount)
	assert.Equal(t, models.ReconcileResultAmbiguous, result.Items[0].Result)
}

func TestReconcileService_ClaimedBankTransaction(t *testing.T) {
	database, dbMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer database.Close()

	mockRepo := new(MockTopupRepository)
	mockFeed := new(MockBankFeedClient)
	topupService := NewTopupService(mockRepo, mockFeed, database, 100_000_000)
	service := NewReconcileService(mockRepo, topupService, mockFeed)

	mockFeed.On("FetchTransactions", mock.Anything).Return([]models.BankTransaction{
		{TransactionID: "bank-1", Amount: 500000, Description: "TOPUP7X3F", Type: models.BankTxTypeIn},
	}, nil)
	mockRepo.On("GetPendingWithCode").Return([]*models.TopupRequest{
		{ID: 5, UserID: 1, Amount: 500000, Status: models.TopupStatusPending, TopupCode: "TOPUP7X3F"},
	}, nil)

	dbMock.ExpectBegin()
	dbMock.ExpectQuery("SELECT user_id, amount, status FROM topup_requests").
		WithArgs(5).
		WillReturnRows(sqlmock.NewRows([]string{"user_id", "amount", "status"}).
			AddRow(1, 500000, models.TopupStatusPending))
	dbMock.ExpectQuery("SELECT EXISTS").
		WithArgs("bank-1").
		WillReturnRows(sqlmock.NewRows([]string{"exists"}).AddRow(true))
	dbMock.ExpectRollback()

	result, err := service.ReconcileBankTopups(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 0, result.ApprovedCount)
	assert.Equal(t, models.ReconcileResultClaimed, result.Items[0].Result)
	assert.NoError(t, dbMock.ExpectationsWereMet())
}

func TestReconcileService_SecondRunIsNoop(t *testing.T) {
	mockRepo := new(MockTopupRepository)
	mockFeed := new(MockBankFeedClient)
	topupService := NewTopupService(mockRepo, mockFeed, nil, 100_000_000)
	service := NewReconcileService(mockRepo, topupService, mockFeed)

	// Onaylanmış talepler pending listesinde görünmez
	mockFeed.On("FetchTransactions", mock.Anything).Return([]models.BankTransaction{
		{TransactionID: "bank-1", Amount: 500000, Description: "TOPUP7X3F", Type: models.BankTxTypeIn},
	}, nil)
	mockRepo.On("GetPendingWithCode").Return([]*models.TopupRequest{}, nil)

	result, err := service.ReconcileBankTopups(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 0, result.ProcessedCount)
	assert.Empty(t, result.Items)
}
