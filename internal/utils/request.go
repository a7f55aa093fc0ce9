package utils

import (
	"net"
	"net/http"
	"strings"
)

// GetClientIP gerçek client IP'sini alır (proxy, load balancer desteği ile)
func GetClientIP(r *http.Request) string {
	// X-Forwarded-For header'ını kontrol et (load balancer/proxy)
	xff := r.Header.Get("X-Forwarded-For")
	if xff != "" {
		// Chain'deki ilk IP gerçek client
		ips := strings.Split(xff, ",")
		return strings.TrimSpace(ips[0])
	}

	// X-Real-IP header'ını kontrol et
	if xri := r.Header.Get("X-Real-IP"); xri != "" {
		return xri
	}

	// RemoteAddr'yi kullan (son çare)
	host, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return r.RemoteAddr
	}
	return host
}
