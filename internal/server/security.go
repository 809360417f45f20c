package server

import (
	"net/http"
	"slices"
	"strconv"
	"strings"
)

// SecurityConfig controls the security headers, CORS policy and input
// limits of the HTTP server.
type SecurityConfig struct {
	EnableCORS     bool
	AllowedOrigins []string
	AllowedMethods []string
	// MaxBodyBytes bounds the size of a request body.
	MaxBodyBytes int64
	// MaxExprLength bounds the length of the expression in POST /eval.
	MaxExprLength int
	// MaxVars bounds the number of variables a request may bind.
	MaxVars int
	// MaxResultBits bounds the bit length of any intermediate result.
	MaxResultBits int
	// MaxWork bounds the estimated word operations of a single
	// multiplication, division or remainder.
	MaxWork uint64
}

// DefaultSecurityConfig returns permissive CORS for the read and eval
// endpoints with conservative input limits.
func DefaultSecurityConfig() SecurityConfig {
	return SecurityConfig{
		EnableCORS:     true,
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		MaxBodyBytes:   1 << 20,
		MaxExprLength:  64 << 10,
		MaxVars:        256,
		MaxResultBits:  1 << 20,
		MaxWork:        1 << 26,
	}
}

// SecurityMiddleware sets the security headers on every response, applies
// the CORS policy and answers preflight requests without calling next.
func SecurityMiddleware(config SecurityConfig, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		h := w.Header()
		h.Set("X-Content-Type-Options", "nosniff")
		h.Set("X-Frame-Options", "DENY")
		h.Set("X-XSS-Protection", "1; mode=block")
		h.Set("Referrer-Policy", "strict-origin-when-cross-origin")
		h.Set("Content-Security-Policy", "default-src 'none'; frame-ancestors 'none'")

		if config.EnableCORS {
			if origin, ok := allowedOrigin(config.AllowedOrigins, r.Header.Get("Origin")); ok {
				h.Set("Access-Control-Allow-Origin", origin)
				h.Set("Access-Control-Allow-Methods", strings.Join(config.AllowedMethods, ", "))
				h.Set("Access-Control-Allow-Headers", "Content-Type")
				h.Set("Access-Control-Max-Age", strconv.Itoa(86400))
				if origin != "*" {
					h.Add("Vary", "Origin")
				}
			}
		}

		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		if config.MaxBodyBytes > 0 && r.Body != nil {
			r.Body = http.MaxBytesReader(w, r.Body, config.MaxBodyBytes)
		}
		next(w, r)
	}
}

func allowedOrigin(allowed []string, origin string) (string, bool) {
	if slices.Contains(allowed, "*") {
		return "*", true
	}
	if origin == "" {
		return "", false
	}
	if slices.Contains(allowed, origin) {
		return origin, true
	}
	return "", false
}
