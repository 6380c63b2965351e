package testinternals

import (
	"context"
	"net/http"
	"testing"
	"time"

	"github.com/elitestar/bookings-web/internal/auth"

	"github.com/go-redis/redis/v8"
	"github.com/go-redis/redismock/v8"
)

const TestSessionSecret = "test-session-secret"

// Internals bundles the auth pieces handler tests sign visitors in with.
type Internals struct {
	Codec    *auth.JWTCodec
	Registry *auth.RedisRegistry

	// redis
	RedisClient *redis.Client
	RedisMock   redismock.ClientMock
}

func NewTestingInternals() *Internals {
	redisClient, redisMock := redismock.NewClientMock()
	return &Internals{
		Codec:       auth.NewJWTCodec(TestSessionSecret, time.Hour),
		Registry:    auth.NewRedisRegistry(time.Hour, redisClient),
		RedisClient: redisClient,
		RedisMock:   redisMock,
	}
}

// roleVerifier accepts any password and hands out the configured role.
type roleVerifier struct {
	role auth.Role
}

func (v roleVerifier) Verify(_ context.Context, creds auth.Credentials) (auth.Identity, error) {
	return auth.Identity{Username: creds.Username, Role: v.role}, nil
}

// SignedIn returns an auth context that already holds a session for username.
func (i *Internals) SignedIn(t *testing.T, username string, role auth.Role) *auth.Context {
	t.Helper()

	authCtx := auth.NewContext(auth.ContextParams{
		Store:    auth.NewMemoryStore(""),
		Codec:    i.Codec,
		Verifier: roleVerifier{role: role},
	})
	if _, err := authCtx.Login(context.Background(), username, "password"); err != nil {
		t.Fatalf("sign in %s: %s", username, err)
	}
	return authCtx
}

// WithSession attaches a signed in session to the request.
func (i *Internals) WithSession(t *testing.T, r *http.Request, username string, role auth.Role) *http.Request {
	t.Helper()
	authCtx := i.SignedIn(t, username, role)
	return r.WithContext(auth.NewRequestContext(r.Context(), authCtx))
}

// Anonymous attaches an auth context without a session to the request.
func (i *Internals) Anonymous(r *http.Request) *http.Request {
	authCtx := auth.NewContext(auth.ContextParams{
		Store:    auth.NewMemoryStore(""),
		Codec:    i.Codec,
		Verifier: roleVerifier{role: auth.RoleUser},
	})
	authCtx.Initialize(r.Context())
	return r.WithContext(auth.NewRequestContext(r.Context(), authCtx))
}
