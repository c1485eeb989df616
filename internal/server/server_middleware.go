package server

import (
	"crypto/sha256"
	"crypto/subtle"
	"fmt"
	"net/http"
	"strings"

	"github.com/brk3/flexhabits/internal/logger"
)

// authMiddleware requires "Authorization: Bearer <auth_token>" when a token
// is configured. With no token the API is open, which is only sane on a
// loopback listener.
func (s *Server) authMiddleware(next http.Handler) http.Handler {
	want := ""
	if s.cfg.AuthToken != "" {
		want = hashAPIKey(s.cfg.AuthToken)
	}
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if want == "" {
			next.ServeHTTP(w, r)
			return
		}
		ah := r.Header.Get("Authorization")
		token, ok := strings.CutPrefix(ah, "Bearer ")
		if !ok || token == "" {
			authFailuresTotal.Inc()
			logger.Debug("Missing bearer token", "path", r.URL.Path)
			writeError(w, http.StatusUnauthorized, "authorization required")
			return
		}
		got := hashAPIKey(token)
		if subtle.ConstantTimeCompare([]byte(got), []byte(want)) != 1 {
			authFailuresTotal.Inc()
			logger.Warn("Rejected bearer token", "path", r.URL.Path, "token_hash", truncateHash(got))
			writeError(w, http.StatusUnauthorized, "invalid token")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// hashAPIKey creates a SHA256 hash of a token so comparisons run over
// fixed-length values.
func hashAPIKey(apiKey string) string {
	hash := sha256.Sum256([]byte(apiKey))
	return fmt.Sprintf("%x", hash)
}

// truncateHash returns a truncated hash for logging
func truncateHash(hash string) string {
	if len(hash) <= 16 {
		return hash
	}
	return hash[:16] + "..."
}
