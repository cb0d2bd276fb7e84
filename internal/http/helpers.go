package http

import (
	"net/http"
	"strings"
)

// sanitizeInput removes control characters and trims whitespace
func sanitizeInput(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r < 32 && r != 9 && r != 10 && r != 13 {
			return -1
		}
		return r
	}, s)
}

// extractClientIP resolves the client address, honoring proxy headers
func extractClientIP(r *http.Request) string {
	if ip := r.Header.Get("X-Forwarded-For"); ip != "" {
		return ip
	}
	if ip := r.Header.Get("X-Real-IP"); ip != "" {
		return ip
	}
	return r.RemoteAddr
}

// formChecked reports whether a checkbox field was submitted as checked
func formChecked(r *http.Request, field string) bool {
	v := strings.TrimSpace(r.Form.Get(field))
	return v == "on" || v == "true" || v == "1"
}
