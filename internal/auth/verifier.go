package auth

import (
	"context"
	"errors"

	"github.com/elitestar/bookings-web/pkg"
)

var (
	ErrMissingCredentials = errors.New("username and password are required")
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrUnreachable        = errors.New("authentication service unreachable")
)

type Role string

const (
	RoleUser  Role = "user"
	RoleAdmin Role = "admin"
)

// reservedAdminUsername is consulted only at login, and only when the
// verifier did not return a role.
const reservedAdminUsername = "admin"

func ParseRole(s string) Role {
	switch Role(s) {
	case RoleAdmin:
		return RoleAdmin
	case RoleUser:
		return RoleUser
	default:
		return ""
	}
}

type Credentials struct {
	Username string
	Password string
}

// Identity is what a Verifier vouches for. Role may be empty.
type Identity struct {
	Username string
	Role     Role
}

type Verifier interface {
	Verify(ctx context.Context, creds Credentials) (Identity, error)
}

var _ Verifier = (*AdminVerifier)(nil)

// AdminVerifier accepts a single locally configured admin account.
type AdminVerifier struct {
	Username     string
	PasswordHash string
}

func NewAdminVerifier(username, passwordHash string) *AdminVerifier {
	return &AdminVerifier{
		Username:     username,
		PasswordHash: passwordHash,
	}
}

func (v *AdminVerifier) Verify(_ context.Context, creds Credentials) (Identity, error) {
	if creds.Username != v.Username {
		return Identity{}, ErrInvalidCredentials
	}
	if !pkg.CheckPasswordHash(creds.Password, v.PasswordHash) {
		return Identity{}, ErrInvalidCredentials
	}
	return Identity{
		Username: v.Username,
		Role:     RoleAdmin,
	}, nil
}
