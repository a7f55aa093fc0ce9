package models

import (
	"encoding/json"
	"time"
)

// Audit aksiyonları
const (
	AuditActionApproveTopup = "APPROVE_TOPUP"
	AuditActionDenyTopup    = "DENY_TOPUP"
)

// AuditLog audit log modelini temsil eder.
// Append-only'dir; her ayrıcalıklı durum geçişiyle birlikte yazılır.
type AuditLog struct {
	ID         int             `json:"id" db:"id"`
	EntityType string          `json:"entity_type" db:"entity_type"`
	EntityID   int             `json:"entity_id" db:"entity_id"`
	Action     string          `json:"action" db:"action"`
	AdminID    *int            `json:"admin_id" db:"admin_id"`
	OldData    json.RawMessage `json:"old_data" db:"old_data"`
	NewData    json.RawMessage `json:"new_data" db:"new_data"`
	Details    string          `json:"details" db:"details"`
	IPAddress  string          `json:"ip_address" db:"ip_address"`
	CreatedAt  time.Time       `json:"created_at" db:"created_at"`
}
