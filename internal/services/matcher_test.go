package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/onerilhan/go-store-api/internal/models"
)

func TestCodeMatches_TokenBoundary(t *testing.T) {
	tests := []struct {
		name        string
		description string
		code        string
		want        bool
	}{
		{"tam eşleşme", "TOPUP7X3F", "TOPUP7X3F", true},
		{"açıklama içinde boşlukla", "Havale TOPUP7X3F acil", "TOPUP7X3F", true},
		{"case insensitive", "havale topup7x3f", "TOPUP7X3F", true},
		{"noktalama sınırı", "odeme,TOPUP7X3F.", "TOPUP7X3F", true},
		{"substring eşleşmez", "XTOPUP7X3F1", "TOPUP7X3F", false},
		{"soldan bitişik harf", "XTOPUP7X3F", "TOPUP7X3F", false},
		{"sağdan bitişik rakam", "TOPUP7X3F1", "TOPUP7X3F", false},
		{"ikinci geçişte eşleşir", "ATOPUP7X3FB sonra TOPUP7X3F", "TOPUP7X3F", true},
		{"kod yok", "havale aciklamasi", "TOPUP7X3F", false},
		{"boş kod", "TOPUP7X3F", "", false},
		{"boş açıklama", "", "TOPUP7X3F", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, codeMatches(tt.description, tt.code))
		})
	}
}

func TestFindCandidates(t *testing.T) {
	topup := &models.TopupRequest{
		ID:        1,
		UserID:    1,
		Amount:    500000,
		TopupCode: "TOPUP7X3F",
	}

	feed := []models.BankTransaction{
		{TransactionID: "bank-1", Amount: 500000, Description: "Havale TOPUP7X3F", Type: models.BankTxTypeIn},
		{TransactionID: "bank-2", Amount: 500000, Description: "TOPUP7X3F", Type: models.BankTxTypeOut},  // yanlış yön
		{TransactionID: "bank-3", Amount: 400000, Description: "TOPUP7X3F", Type: models.BankTxTypeIn},   // tutar eksik
		{TransactionID: "bank-4", Amount: 600000, Description: "XTOPUP7X3F1", Type: models.BankTxTypeIn}, // substring
		{TransactionID: "bank-5", Amount: 600000, Description: "odeme TOPUP7X3F", Type: models.BankTxTypeIn},
	}

	candidates := findCandidates(feed, topup)

	assert.Len(t, candidates, 2)
	assert.Equal(t, "bank-1", candidates[0].TransactionID)
	assert.Equal(t, "bank-5", candidates[1].TransactionID)
}

func TestFindCandidates_EmptyFeed(t *testing.T) {
	topup := &models.TopupRequest{ID: 1, Amount: 500000, TopupCode: "TOPUP7X3F"}

	assert.Empty(t, findCandidates(nil, topup))
	assert.Empty(t, findCandidates([]models.BankTransaction{}, topup))
}
