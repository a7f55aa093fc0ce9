package bank

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/onerilhan/go-store-api/internal/apperrors"
	"github.com/onerilhan/go-store-api/internal/models"
)

func TestClient_FetchTransactions_Success(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{
			"status": "ok",
			"transactions": [
				{"transactionID": "bank-1", "amount": 500000, "description": "Havale TOPUP7X3F", "type": "IN", "transactionDate": "2025-06-01"},
				{"transactionID": "bank-2", "amount": 10000, "description": "fatura", "type": "OUT", "transactionDate": "2025-06-02"}
			]
		}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)

	transactions, err := client.FetchTransactions(context.Background())

	assert.NoError(t, err)
	assert.Len(t, transactions, 2)
	assert.Equal(t, "bank-1", transactions[0].TransactionID)
	assert.Equal(t, int64(500000), transactions[0].Amount)
	assert.Equal(t, models.BankTxTypeIn, transactions[0].Type)
}

func TestClient_FetchTransactions_MalformedJSON(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "ok", "transactions": [{`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)

	transactions, err := client.FetchTransactions(context.Background())

	assert.Nil(t, transactions)
	var extErr *apperrors.ExternalServiceError
	assert.ErrorAs(t, err, &extErr)
	assert.Equal(t, "bank-feed", extErr.Service)
}

func TestClient_FetchTransactions_HTTPError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)

	_, err := client.FetchTransactions(context.Background())

	var extErr *apperrors.ExternalServiceError
	assert.ErrorAs(t, err, &extErr)
}

func TestClient_FetchTransactions_InvalidPayload(t *testing.T) {
	// Negatif tutar boundary'de reddedilir
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"status": "ok", "transactions": [{"transactionID": "bank-1", "amount": -5, "type": "IN"}]}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, 5*time.Second)

	_, err := client.FetchTransactions(context.Background())

	var extErr *apperrors.ExternalServiceError
	assert.ErrorAs(t, err, &extErr)
}

func TestClient_FetchTransactions_MissingURL(t *testing.T) {
	client := NewClient("", 5*time.Second)

	_, err := client.FetchTransactions(context.Background())

	var extErr *apperrors.ExternalServiceError
	assert.ErrorAs(t, err, &extErr)
}

func TestClient_FetchTransactions_ServerUnreachable(t *testing.T) {
	// Kapatılmış server: bağlantı hatası ExternalServiceError'a çevrilir
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	client := NewClient(server.URL, 1*time.Second)

	_, err := client.FetchTransactions(context.Background())

	var extErr *apperrors.ExternalServiceError
	assert.ErrorAs(t, err, &extErr)
}
