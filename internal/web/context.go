package web

import (
	"context"
	"net"
	"net/http"

	"github.com/JonMunkholm/qaeditor/internal/core"
)

// WithRequestMetadata adds IP, User-Agent and actor to ctx for audit logging.
// The actor is the masked API key when the client sent one.
func WithRequestMetadata(ctx context.Context, r *http.Request) context.Context {
	origin := core.Origin{
		IPAddress: clientIP(r),
		UserAgent: r.UserAgent(),
	}
	if key := r.Header.Get("X-API-Key"); key != "" {
		origin.Actor = core.MaskKey(key)
	}
	return core.WithOrigin(ctx, origin)
}

func requestMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		next.ServeHTTP(w, r.WithContext(WithRequestMetadata(r.Context(), r)))
	})
}

// clientIP strips the port from RemoteAddr, which TrustedRealIP has
// already resolved.
func clientIP(r *http.Request) string {
	if host, _, err := net.SplitHostPort(r.RemoteAddr); err == nil {
		return host
	}
	return r.RemoteAddr
}
