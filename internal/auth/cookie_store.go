package auth

import (
	"context"
	"errors"
	"net/http"
	"time"
)

const DefaultCookieName = "elitestar_session"

var _ TokenStore = (*CookieStore)(nil)

// CookieStore keeps the token in an HttpOnly cookie of a single request/response pair.
// After Save or Remove, Load reflects the pending cookie instead of the request one.
type CookieStore struct {
	r      *http.Request
	w      http.ResponseWriter
	name   string
	secure bool
	maxAge time.Duration

	pending *string
}

func NewCookieStore(w http.ResponseWriter, r *http.Request, name string, secure bool, maxAge time.Duration) *CookieStore {
	if name == "" {
		name = DefaultCookieName
	}
	return &CookieStore{
		r:      r,
		w:      w,
		name:   name,
		secure: secure,
		maxAge: maxAge,
	}
}

func (s *CookieStore) Load(_ context.Context) (string, error) {
	if s.pending != nil {
		if *s.pending == "" {
			return "", ErrNoToken
		}
		return *s.pending, nil
	}

	cookie, err := s.r.Cookie(s.name)
	if err != nil {
		if errors.Is(err, http.ErrNoCookie) {
			return "", ErrNoToken
		}
		return "", err
	}
	if cookie.Value == "" {
		return "", ErrNoToken
	}
	return cookie.Value, nil
}

func (s *CookieStore) Save(_ context.Context, token string) error {
	http.SetCookie(s.w, &http.Cookie{
		Name:     s.name,
		Value:    token,
		Path:     "/",
		MaxAge:   int(s.maxAge.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	s.pending = &token
	return nil
}

func (s *CookieStore) Remove(_ context.Context) error {
	if _, err := s.Load(context.Background()); errors.Is(err, ErrNoToken) {
		return nil
	}

	http.SetCookie(s.w, &http.Cookie{
		Name:     s.name,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	})
	empty := ""
	s.pending = &empty
	return nil
}
