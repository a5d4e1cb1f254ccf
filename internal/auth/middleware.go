package auth

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"time"
)

type clientContextKey struct{}

// ClientFromContext returns the authenticated client, if any.
func ClientFromContext(ctx context.Context) (Client, bool) {
	c, ok := ctx.Value(clientContextKey{}).(Client)
	return c, ok
}

// Middleware authenticates requests via Authorization: Bearer <key> or
// the X-API-Key header and applies per-key rate limiting. With auth
// disabled it passes requests through untouched.
func Middleware(store KeyStore, cfg Config, logger *slog.Logger) func(http.Handler) http.Handler {
	limiter := NewRateLimiter(cfg.RatePerMinute, cfg.RateWindow)
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !cfg.Enabled {
				next.ServeHTTP(w, r)
				return
			}

			rawKey := extractKey(r)
			if rawKey == "" {
				writeAuthError(w, http.StatusUnauthorized, "AUTH_REQUIRED", "API key required")
				return
			}

			client, err := store.Validate(rawKey)
			if err != nil {
				logger.Warn("rejected API key", "remote", r.RemoteAddr)
				writeAuthError(w, http.StatusUnauthorized, "INVALID_KEY", "Invalid API key")
				return
			}

			if allowed, retryAfter := limiter.Allow(client.Label); !allowed {
				w.Header().Set("Retry-After", retryAfter.Round(time.Second).String())
				writeAuthError(w, http.StatusTooManyRequests, "RATE_LIMITED", "Too many requests")
				return
			}

			logger.Info("authenticated request", "client", client.Label, "path", r.URL.Path)
			ctx := context.WithValue(r.Context(), clientContextKey{}, client)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func extractKey(r *http.Request) string {
	if h := r.Header.Get("Authorization"); h != "" {
		if key, ok := strings.CutPrefix(h, "Bearer "); ok {
			return key
		}
		if key, ok := strings.CutPrefix(h, "ApiKey "); ok {
			return key
		}
	}
	return r.Header.Get("X-API-Key")
}

func writeAuthError(w http.ResponseWriter, status int, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"code":    code,
		"message": message,
	})
}
