package core

import "context"

// Origin identifies where a mutation came from. It is stamped onto every
// audit entry written while handling the request.
type Origin struct {
	IPAddress string
	UserAgent string
	// Actor is a masked API key, "cli", or empty for anonymous editors.
	Actor string
}

type originKey struct{}

// WithOrigin attaches o to ctx, replacing any origin already present.
func WithOrigin(ctx context.Context, o Origin) context.Context {
	return context.WithValue(ctx, originKey{}, o)
}

// OriginFrom returns the origin attached to ctx, or the zero Origin.
func OriginFrom(ctx context.Context) Origin {
	o, _ := ctx.Value(originKey{}).(Origin)
	return o
}
