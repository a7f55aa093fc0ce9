package middleware

import (
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/onerilhan/go-store-api/internal/middleware/errors"
)

// Permission represents a specific permission
type Permission string

const (
	// User permissions
	PermCheckout       Permission = "checkout"
	PermViewOwnWallet  Permission = "view_own_wallet"
	PermCreateTopup    Permission = "create_topup"
	PermVerifyOwnTopup Permission = "verify_own_topup"

	// Admin permissions
	PermDecideTopup   Permission = "decide_topup"
	PermRunReconcile  Permission = "run_reconcile"
	PermViewAuditLogs Permission = "view_audit_logs"
	PermViewAnyLedger Permission = "view_any_ledger"
)

// RolePermissions defines permissions for each role
var RolePermissions = map[string][]Permission{
	"user": {
		PermCheckout,
		PermViewOwnWallet,
		PermCreateTopup,
		PermVerifyOwnTopup,
	},
	"admin": {
		// Admin inherits user permissions
		PermCheckout,
		PermViewOwnWallet,
		PermCreateTopup,
		PermVerifyOwnTopup,
		// Plus admin-specific permissions
		PermDecideTopup,
		PermRunReconcile,
		PermViewAuditLogs,
		PermViewAnyLedger,
	},
}

// RequirePermission creates RBAC middleware for specific permission
func RequirePermission(permission Permission) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Get user from context (set by AuthMiddleware)
			claims, ok := ClaimsFromContext(r.Context())
			if !ok {
				log.Error().
					Str("path", r.URL.Path).
					Str("method", r.Method).
					Msg("RBAC: User context not found - AuthMiddleware might be missing")

				panic(errors.NewAuthError("Authentication required"))
			}

			userRole := claims.Role
			if userRole == "" {
				userRole = "user"
			}

			if !hasPermission(userRole, permission) {
				log.Warn().
					Int("user_id", claims.UserID).
					Str("role", userRole).
					Str("required_permission", string(permission)).
					Str("path", r.URL.Path).
					Str("method", r.Method).
					Msg("RBAC: Access denied - Insufficient permissions")

				panic(errors.NewRBACError("Bu işlem için yetkiniz bulunmuyor", r.URL.Path, r.Method))
			}

			next.ServeHTTP(w, r)
		})
	}
}

// hasPermission checks if role has the required permission
func hasPermission(role string, permission Permission) bool {
	permissions, exists := RolePermissions[role]
	if !exists {
		return false
	}

	for _, p := range permissions {
		if p == permission {
			return true
		}
	}
	return false
}

// RequireAdmin requires admin role
func RequireAdmin() func(http.Handler) http.Handler {
	return RequirePermission(PermDecideTopup)
}
