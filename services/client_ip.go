package services

import (
	"net"
	"net/http"
	"strings"
)

// ExtractClientIP derives the originating client address from proxy headers,
// preferring X-Forwarded-For, then X-Real-IP, then the transport remote
// address. The result is advisory data for rate limiting, not a trust
// boundary, so no syntax validation is performed.
func ExtractClientIP(r *http.Request) string {
	clientIP := r.Header.Get("X-Forwarded-For")

	if !usableIP(clientIP) {
		clientIP = r.Header.Get("X-Real-IP")
	}

	if !usableIP(clientIP) {
		clientIP = r.RemoteAddr
		// RemoteAddr usually carries a port
		if host, _, err := net.SplitHostPort(clientIP); err == nil {
			clientIP = host
		}
	}

	// X-Forwarded-For can contain multiple IPs, take the first one
	if strings.Contains(clientIP, ",") {
		clientIP = strings.TrimSpace(strings.Split(clientIP, ",")[0])
	}

	return clientIP
}

func usableIP(s string) bool {
	return s != "" && !strings.EqualFold(s, "unknown")
}
