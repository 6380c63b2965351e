package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	log "github.com/sirupsen/logrus"
)

type ContextParams struct {
	Store    TokenStore
	Codec    TokenCodec
	Verifier Verifier
	// Registry is optional; without it tokens are trusted until they expire.
	Registry Registry
}

// Context owns one visitor's session. Every mutation writes the token store
// first and updates the in-memory session only once that write succeeded.
type Context struct {
	mutex    sync.RWMutex
	store    TokenStore
	codec    TokenCodec
	verifier Verifier
	registry Registry

	session Session
	tokenID string
}

func NewContext(params ContextParams) *Context {
	return &Context{
		store:    params.Store,
		codec:    params.Codec,
		verifier: params.Verifier,
		registry: params.Registry,
	}
}

// Initialize restores the session from the persisted token. Any failure
// leaves the visitor unauthenticated; it is never reported to the caller.
func (c *Context) Initialize(ctx context.Context) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.session = Session{}
	c.tokenID = ""

	token, err := c.store.Load(ctx)
	if err != nil {
		if !errors.Is(err, ErrNoToken) {
			log.Warnf("auth context, load token: %s", err)
		}
		return
	}

	claims, err := c.codec.Parse(token)
	if err != nil {
		log.Debugf("auth context, dropping unusable token: %s", err)
		c.discardToken(ctx)
		return
	}

	if c.registry != nil {
		active, err := c.registry.IsActive(ctx, claims.ID)
		if err != nil {
			// registry down: do not trust the token now, but keep it for later
			log.Warnf("auth context, check session %s: %s", claims.ID, err)
			return
		}
		if !active {
			log.Debugf("auth context, session %s revoked", claims.ID)
			c.discardToken(ctx)
			return
		}
	}

	c.session = Session{
		Authenticated: true,
		Username:      claims.Username,
		Role:          claims.Role,
	}
	c.tokenID = claims.ID
}

func (c *Context) discardToken(ctx context.Context) {
	if err := c.store.Remove(ctx); err != nil {
		log.Errorf("auth context, remove stale token: %s", err)
	}
}

// Login verifies the credentials and, on success, persists a new token and
// authenticates the session. On failure the session is left unauthenticated.
func (c *Context) Login(ctx context.Context, username, password string) (Session, error) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	creds := Credentials{
		Username: strings.TrimSpace(username),
		Password: password,
	}
	if creds.Username == "" || creds.Password == "" {
		c.failLogin(ctx)
		return Session{}, ErrMissingCredentials
	}

	identity, err := c.verifier.Verify(ctx, creds)
	if err != nil {
		c.failLogin(ctx)
		return Session{}, err
	}
	if identity.Username == "" {
		identity.Username = creds.Username
	}
	if identity.Role == "" {
		identity.Role = RoleUser
		if identity.Username == reservedAdminUsername {
			identity.Role = RoleAdmin
		}
	}

	token, claims, err := c.codec.Issue(identity)
	if err != nil {
		c.failLogin(ctx)
		return Session{}, fmt.Errorf("issue token: %w", err)
	}

	if c.registry != nil {
		if err := c.registry.Register(ctx, claims); err != nil {
			c.failLogin(ctx)
			return Session{}, fmt.Errorf("register session: %w", err)
		}
	}

	if err := c.store.Save(ctx, token); err != nil {
		if c.registry != nil {
			if rerr := c.registry.Revoke(ctx, claims.ID); rerr != nil {
				log.Errorf("auth context, roll back session %s: %s", claims.ID, rerr)
			}
		}
		c.failLogin(ctx)
		return Session{}, fmt.Errorf("persist token: %w", err)
	}

	// the new token replaced the old one, so the old session is gone for good
	if c.registry != nil && c.tokenID != "" {
		if err := c.registry.Revoke(ctx, c.tokenID); err != nil {
			log.Errorf("auth context, revoke replaced session %s: %s", c.tokenID, err)
		}
	}

	c.session = Session{
		Authenticated: true,
		Username:      claims.Username,
		Role:          claims.Role,
	}
	c.tokenID = claims.ID

	return c.session, nil
}

// failLogin drops a previous session, if any, so a failed login never
// leaves the visitor logged in.
func (c *Context) failLogin(ctx context.Context) {
	if !c.session.Authenticated {
		return
	}
	if err := c.logout(ctx); err != nil {
		log.Errorf("auth context, drop previous session after failed login: %s", err)
	}
}

// Logout removes the persisted token and clears the session.
// Calling it while logged out is a no-op.
func (c *Context) Logout(ctx context.Context) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()
	return c.logout(ctx)
}

func (c *Context) logout(ctx context.Context) error {
	if err := c.store.Remove(ctx); err != nil {
		return fmt.Errorf("remove token: %w", err)
	}

	if c.registry != nil && c.tokenID != "" {
		if err := c.registry.Revoke(ctx, c.tokenID); err != nil {
			log.Errorf("auth context, revoke session %s: %s", c.tokenID, err)
		}
	}

	c.session = Session{}
	c.tokenID = ""
	return nil
}

func (c *Context) CurrentSession() Session {
	c.mutex.RLock()
	defer c.mutex.RUnlock()
	return c.session
}
