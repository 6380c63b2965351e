package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const DefaultTTL = 24 * 7 * time.Hour

var (
	ErrTokenInvalid = errors.New("session token invalid")
	ErrTokenExpired = errors.New("session token expired")
)

// Claims are the decoded contents of a session token.
type Claims struct {
	ID        string
	Username  string
	Role      Role
	IssuedAt  time.Time
	ExpiresAt time.Time
}

type TokenCodec interface {
	Issue(identity Identity) (string, Claims, error)
	Parse(token string) (Claims, error)
}

var _ TokenCodec = (*JWTCodec)(nil)

type sessionClaims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// JWTCodec issues HS256 tokens whose subject is the username.
type JWTCodec struct {
	secret []byte
	ttl    time.Duration
	// ability to inject the clock (for unit testing)
	NowFunc func() time.Time
}

func NewJWTCodec(secret string, ttl time.Duration) *JWTCodec {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &JWTCodec{
		secret:  []byte(secret),
		ttl:     ttl,
		NowFunc: time.Now,
	}
}

func (c *JWTCodec) Issue(identity Identity) (string, Claims, error) {
	now := c.NowFunc().Truncate(time.Second)
	claims := Claims{
		ID:        uuid.NewString(),
		Username:  identity.Username,
		Role:      identity.Role,
		IssuedAt:  now,
		ExpiresAt: now.Add(c.ttl),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, sessionClaims{
		Role: string(claims.Role),
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        claims.ID,
			Subject:   claims.Username,
			IssuedAt:  jwt.NewNumericDate(claims.IssuedAt),
			ExpiresAt: jwt.NewNumericDate(claims.ExpiresAt),
		},
	})

	signed, err := token.SignedString(c.secret)
	if err != nil {
		return "", Claims{}, fmt.Errorf("sign token: %w", err)
	}
	return signed, claims, nil
}

func (c *JWTCodec) Parse(tokenStr string) (Claims, error) {
	var sc sessionClaims
	_, err := jwt.ParseWithClaims(
		tokenStr,
		&sc,
		func(_ *jwt.Token) (any, error) {
			return c.secret, nil
		},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(c.NowFunc),
	)
	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return Claims{}, ErrTokenExpired
		}
		return Claims{}, fmt.Errorf("%w: %s", ErrTokenInvalid, err)
	}

	if sc.Subject == "" || sc.ID == "" {
		return Claims{}, fmt.Errorf("%w: missing subject or id", ErrTokenInvalid)
	}
	role := ParseRole(sc.Role)
	if role == "" {
		return Claims{}, fmt.Errorf("%w: unknown role %q", ErrTokenInvalid, sc.Role)
	}

	claims := Claims{
		ID:       sc.ID,
		Username: sc.Subject,
		Role:     role,
	}
	if sc.IssuedAt != nil {
		claims.IssuedAt = sc.IssuedAt.Time
	}
	if sc.ExpiresAt != nil {
		claims.ExpiresAt = sc.ExpiresAt.Time
	}
	return claims, nil
}
