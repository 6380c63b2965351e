package auth

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	log "github.com/sirupsen/logrus"
)

const (
	sessionKeyPrefix = "elitestar-session||"
	tokensSetKey     = "elitestar-sessions"
)

// Registry tracks issued sessions server side, so a token can be revoked
// before it expires.
type Registry interface {
	Register(ctx context.Context, claims Claims) error
	IsActive(ctx context.Context, tokenID string) (bool, error)
	Revoke(ctx context.Context, tokenID string) error
}

var _ Registry = (*RedisRegistry)(nil)

type RedisRegistry struct {
	redisClient *redis.Client
	ttl         time.Duration
}

func NewRedisRegistry(ttl time.Duration, redisClient *redis.Client) *RedisRegistry {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &RedisRegistry{
		ttl:         ttl,
		redisClient: redisClient,
	}
}

func (rr *RedisRegistry) Register(ctx context.Context, claims Claims) error {
	sessionKey := sessionKeyPrefix + claims.ID
	cmdSet := rr.redisClient.Set(ctx, sessionKey, claims.IssuedAt.Unix(), rr.ttl)
	if err := cmdSet.Err(); err != nil {
		return fmt.Errorf("set session: %w", err)
	}

	// add token to list of sessions
	cmdSAdd := rr.redisClient.SAdd(ctx, tokensSetKey, claims.ID)
	if err := cmdSAdd.Err(); err != nil {
		return fmt.Errorf("add session to set: %w", err)
	}

	return nil
}

func (rr *RedisRegistry) IsActive(ctx context.Context, tokenID string) (bool, error) {
	sessionKey := sessionKeyPrefix + tokenID
	cmd := rr.redisClient.Get(ctx, sessionKey)
	if err := cmd.Err(); err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}

	createdAtUnix, err := strconv.ParseInt(cmd.Val(), 10, 64)
	if err != nil {
		return false, err
	}
	if createdAtUnix <= 0 {
		return false, nil
	}

	createdAt := time.Unix(createdAtUnix, 0)
	return time.Since(createdAt) <= rr.ttl, nil
}

func (rr *RedisRegistry) Revoke(ctx context.Context, tokenID string) error {
	sessionKey := sessionKeyPrefix + tokenID
	if err := rr.redisClient.Del(ctx, sessionKey).Err(); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}

	// remove token from the list of sessions
	if err := rr.redisClient.SRem(ctx, tokensSetKey, tokenID).Err(); err != nil {
		return fmt.Errorf("remove session from set: %w", err)
	}

	return nil
}

// ScanAndClean will run through all sessions, check the TTL, and clean them if old.
// It returns the number of removed sessions.
func (rr *RedisRegistry) ScanAndClean(ctx context.Context) int {
	cmd := rr.redisClient.SMembers(ctx, tokensSetKey)
	if err := cmd.Err(); err != nil {
		log.Errorf("!!! session registry, scan and clean, get sessions: %s", err)
		return 0
	}

	tokenIDs := cmd.Val()
	if len(tokenIDs) == 0 {
		log.Debugln("=> session registry, scan and clean abort, no sessions")
		return 0
	}

	log.Debugf("=> session registry, scan and clean [%d sessions] start ...", len(tokenIDs))
	var toRemove []string
	for _, tokenID := range tokenIDs {
		active, err := rr.IsActive(ctx, tokenID)
		if err != nil {
			log.Errorf("=> session registry, scan and clean token %s: %s", tokenID, err)
			continue
		}
		if !active {
			toRemove = append(toRemove, tokenID)
		}
	}

	removed := 0
	for _, tokenID := range toRemove {
		if err := rr.Revoke(ctx, tokenID); err != nil {
			log.Errorf("=> session registry, clean token %s: %s", tokenID, err)
			continue
		}
		removed++
	}

	return removed
}
