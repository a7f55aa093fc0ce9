package services

import (
	"strings"

	"github.com/onerilhan/go-store-api/internal/models"
)

// codeMatches açıklama topup kodunu tam token olarak içeriyor mu bakar.
// Karşılaştırma case-insensitive'dir ve kodun iki yanındaki karakterlerin
// alfanumerik olmaması gerekir: "TOPUP7X3F" kodu "XTOPUP7X3F1" içinde
// eşleşmez. Substring eşleşmesi, kodları üst üste binen iki talebin aynı
// havaleyi sahiplenmesine yol açar.
func codeMatches(description, code string) bool {
	if code == "" {
		return false
	}

	desc := strings.ToUpper(description)
	code = strings.ToUpper(code)

	for start := 0; ; {
		idx := strings.Index(desc[start:], code)
		if idx < 0 {
			return false
		}
		idx += start

		leftOK := idx == 0 || !isAlphanumeric(desc[idx-1])
		rightOK := idx+len(code) == len(desc) || !isAlphanumeric(desc[idx+len(code)])
		if leftOK && rightOK {
			return true
		}

		start = idx + 1
	}
}

func isAlphanumeric(c byte) bool {
	return (c >= 'A' && c <= 'Z') || (c >= 'a' && c <= 'z') || (c >= '0' && c <= '9')
}

// findCandidates talebi karşılayabilecek banka hareketlerini döner:
// tip IN, tutar >= talep tutarı ve açıklama kodu tam token olarak içeriyor.
func findCandidates(feed []models.BankTransaction, topup *models.TopupRequest) []models.BankTransaction {
	var candidates []models.BankTransaction
	for _, tx := range feed {
		if tx.Type != models.BankTxTypeIn {
			continue
		}
		if tx.Amount < topup.Amount {
			continue
		}
		if !codeMatches(tx.Description, topup.TopupCode) {
			continue
		}
		candidates = append(candidates, tx)
	}
	return candidates
}
