package auth

import (
	"context"
	"net/http"
	"time"
)

type contextKey struct{}

func NewRequestContext(ctx context.Context, authCtx *Context) context.Context {
	return context.WithValue(ctx, contextKey{}, authCtx)
}

func FromContext(ctx context.Context) (*Context, bool) {
	authCtx, ok := ctx.Value(contextKey{}).(*Context)
	return authCtx, ok
}

// SessionFromContext returns the current session of the request, or an
// unauthenticated one when no auth context is attached.
func SessionFromContext(ctx context.Context) Session {
	authCtx, ok := FromContext(ctx)
	if !ok {
		return Session{}
	}
	return authCtx.CurrentSession()
}

// Factory builds a cookie backed Context for each incoming request.
type Factory struct {
	Codec        TokenCodec
	Verifier     Verifier
	Registry     Registry
	CookieName   string
	CookieSecure bool
	TTL          time.Duration
}

func (f *Factory) ForRequest(w http.ResponseWriter, r *http.Request) *Context {
	ttl := f.TTL
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return NewContext(ContextParams{
		Store:    NewCookieStore(w, r, f.CookieName, f.CookieSecure, ttl),
		Codec:    f.Codec,
		Verifier: f.Verifier,
		Registry: f.Registry,
	})
}
