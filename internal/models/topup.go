package models

import "time"

// TopupRequest durumları. pending'den sadece approved ya da denied'a
// geçilir; ikisi de terminaldir.
const (
	TopupStatusPending  = "pending"
	TopupStatusApproved = "approved"
	TopupStatusDenied   = "denied"
)

// Topup kararları
const (
	TopupActionApprove = "approve"
	TopupActionDeny    = "deny"
)

// TopupRequest banka havalesi ile bakiye yükleme talebi.
// TopupCode kullanıcının havale açıklamasına yazacağı benzersiz referanstır.
// BankTransactionID eşleşme sonrası bir kez set edilir ve unique'tir:
// tek havale iki talebi kredilendiremez.
type TopupRequest struct {
	ID                int        `json:"id" db:"id"`
	UserID            int        `json:"user_id" db:"user_id"`
	Amount            int64      `json:"amount" db:"amount"`
	Method            string     `json:"method" db:"method"`
	TopupCode         string     `json:"topup_code" db:"topup_code"`
	Status            string     `json:"status" db:"status"`
	AdminID           *int       `json:"admin_id" db:"admin_id"`
	AdminNote         string     `json:"admin_note" db:"admin_note"`
	BankTransactionID *string    `json:"bank_transaction_id" db:"bank_transaction_id"`
	DecidedAt         *time.Time `json:"decided_at" db:"decided_at"`
	CreatedAt         time.Time  `json:"created_at" db:"created_at"`
}

// CreateTopupRequest yeni yükleme talebi isteği
type CreateTopupRequest struct {
	Amount int64  `json:"amount"`
	Method string `json:"method"`
}

// TopupDecisionRequest admin karar isteği
type TopupDecisionRequest struct {
	Action string `json:"action"` // approve | deny
	Note   string `json:"note"`
}

// TopupDecisionResponse karar yanıtı; approve'da bakiye öncesi/sonrası döner
type TopupDecisionResponse struct {
	TopupID       int    `json:"topup_id"`
	Status        string `json:"status"`
	BalanceBefore *int64 `json:"balance_before,omitempty"`
	BalanceAfter  *int64 `json:"balance_after,omitempty"`
}

// VerifyTopupResponse self-service doğrulama yanıtı.
// Feed eventually consistent olduğu için eşleşme yoksa hata değil,
// "henüz bulunamadı" mesajı döner.
type VerifyTopupResponse struct {
	Verified      bool   `json:"verified"`
	Message       string `json:"message,omitempty"`
	BalanceBefore *int64 `json:"balance_before,omitempty"`
	BalanceAfter  *int64 `json:"balance_after,omitempty"`
}

// Mutabakat item sonuçları
const (
	ReconcileResultApproved  = "approved"
	ReconcileResultNoMatch   = "no_match"
	ReconcileResultAmbiguous = "ambiguous"
	ReconcileResultClaimed   = "bank_transaction_claimed"
	ReconcileResultFailed    = "failed"
)

// ReconcileItemResult tek bir pending talep için mutabakat sonucu
type ReconcileItemResult struct {
	TopupID           int    `json:"topup_id"`
	TopupCode         string `json:"topup_code"`
	Result            string `json:"result"`
	BankTransactionID string `json:"bank_transaction_id,omitempty"`
	Error             string `json:"error,omitempty"`
}

// ReconcileResult toplu mutabakat özeti
type ReconcileResult struct {
	ProcessedCount int                   `json:"processed_count"`
	ApprovedCount  int                   `json:"approved_count"`
	Items          []ReconcileItemResult `json:"items"`
}
