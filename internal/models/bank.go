package models

// BankTransaction tipleri
const (
	BankTxTypeIn  = "IN"
	BankTxTypeOut = "OUT"
)

// BankTransaction dış banka feed'inden gelen tek hareket.
// Feed güvenilmez kabul edilir; alanlar boundary'de doğrulanır.
type BankTransaction struct {
	TransactionID   string `json:"transactionID"`
	Amount          int64  `json:"amount"`
	Description     string `json:"description"`
	Type            string `json:"type"` // IN | OUT
	TransactionDate string `json:"transactionDate"`
}

// BankFeedResponse feed endpoint'inin ham yanıtı
type BankFeedResponse struct {
	Status       string            `json:"status"`
	Transactions []BankTransaction `json:"transactions"`
}
