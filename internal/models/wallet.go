package models

import "time"

// Wallet kullanıcı başına tek stored-value bakiyesi.
// Tutarlar en küçük para birimi cinsinden tutulur (kuruş).
// Balance sadece aynı transaction içinde eşleşen bir WalletTransaction
// append'i ile değişir; doğrudan bakiye düzenlemesi yapılmaz.
type Wallet struct {
	UserID    int       `json:"user_id" db:"user_id"`
	Balance   int64     `json:"balance" db:"balance"`
	UpdatedAt time.Time `json:"updated_at" db:"updated_at"`
}

// WalletTransaction tipleri
const (
	TxTypeCredit = "credit"
	TxTypeDebit  = "debit"
)

// WalletTransaction referans tipleri
const (
	RefTypeOrder = "order"
	RefTypeTopup = "topup"
)

// WalletTransaction değişmez ledger kaydı.
// Bir kez yazıldıktan sonra güncellenmez ve silinmez; kullanıcının
// kayıtları sırayla 0'dan toplandığında güncel bakiyeyi vermelidir.
type WalletTransaction struct {
	ID            int       `json:"id" db:"id"`
	UserID        int       `json:"user_id" db:"user_id"`
	Type          string    `json:"type" db:"type"` // credit | debit
	Amount        int64     `json:"amount" db:"amount"`
	BalanceBefore int64     `json:"balance_before" db:"balance_before"`
	BalanceAfter  int64     `json:"balance_after" db:"balance_after"`
	RefType       string    `json:"ref_type" db:"ref_type"`
	RefID         *int      `json:"ref_id" db:"ref_id"`
	Note          string    `json:"note" db:"note"`
	CreatedAt     time.Time `json:"created_at" db:"created_at"`
}

// LedgerCheckResult ledger tutarlılık kontrolü sonucu
type LedgerCheckResult struct {
	UserID           int   `json:"user_id"`
	WalletBalance    int64 `json:"wallet_balance"`
	LedgerBalance    int64 `json:"ledger_balance"`
	TransactionCount int   `json:"transaction_count"`
	Consistent       bool  `json:"consistent"`
}
