package middleware

import (
	"crypto/sha256"
	"crypto/subtle"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/JonMunkholm/qaeditor/internal/config"
	"github.com/JonMunkholm/qaeditor/internal/logging"
)

// APIKeyAuth guards a route group with the configured API keys. Clients send
// the key in X-API-Key or as an Authorization bearer token.
//
// A missing key is 401 and an unknown key is 403. With RequireAPIKey set and
// no keys configured every request is refused.
func APIKeyAuth(cfg config.SecurityConfig) func(http.Handler) http.Handler {
	if !cfg.RequireAPIKey {
		return func(next http.Handler) http.Handler { return next }
	}
	keys := newKeyring(cfg.APIKeys)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			presented := presentedKey(r)
			switch {
			case presented == "":
				denyRequest(w, r, http.StatusUnauthorized, "AUTH_MISSING_KEY", "missing API key")
			case !keys.accepts(presented):
				denyRequest(w, r, http.StatusForbidden, "AUTH_INVALID_KEY", "invalid API key")
			default:
				next.ServeHTTP(w, r)
			}
		})
	}
}

// keyring stores digests so every comparison has the same length.
type keyring [][sha256.Size]byte

func newKeyring(keys []string) keyring {
	ring := make(keyring, 0, len(keys))
	for _, k := range keys {
		if k = strings.TrimSpace(k); k != "" {
			ring = append(ring, sha256.Sum256([]byte(k)))
		}
	}
	return ring
}

// accepts compares against every key so timing does not reveal a match.
func (kr keyring) accepts(key string) bool {
	sum := sha256.Sum256([]byte(key))
	match := 0
	for i := range kr {
		match |= subtle.ConstantTimeCompare(sum[:], kr[i][:])
	}
	return match == 1
}

func presentedKey(r *http.Request) string {
	if k := strings.TrimSpace(r.Header.Get("X-API-Key")); k != "" {
		return k
	}
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if ok && strings.EqualFold(scheme, "Bearer") {
		return strings.TrimSpace(token)
	}
	return ""
}

func denyRequest(w http.ResponseWriter, r *http.Request, status int, code, msg string) {
	logging.FromContext(r.Context()).Warn("auth: request denied",
		"code", code,
		"path", r.URL.Path,
		"method", r.Method,
		"ip", r.RemoteAddr,
	)
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(map[string]string{"error": msg, "code": code})
}
