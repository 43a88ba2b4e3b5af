package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when no live session exists for the given id.
var ErrNotFound = errors.New("session not found")

// ErrRedisUnavailable wraps transport-level Redis failures.
var ErrRedisUnavailable = errors.New("session redis unavailable")

// Store is a Redis-backed session store. Each session is a JSON blob keyed
// by id with a TTL matching its expiry, plus a per-user set of session ids
// backing the active-session listing.
type Store struct {
	redis  redis.UniversalClient
	prefix string
	now    func() time.Time
}

// NewStore creates a session [Store] backed by the given Redis client.
// prefix sets the Redis key namespace.
func NewStore(redisClient redis.UniversalClient, prefix string) *Store {
	if prefix == "" {
		prefix = "as"
	}
	return &Store{
		redis:  redisClient,
		prefix: prefix,
		now:    time.Now,
	}
}

func (s *Store) key(sessionID string) string {
	return s.prefix + ":" + sessionID
}

func (s *Store) userKey(userID string) string {
	return s.prefix + ":u:" + userID
}

// Create persists a new session for userID expiring after ttl. Session ids
// are random UUIDs; no two sessions share an id.
func (s *Store) Create(ctx context.Context, userID, userAgent string, ttl time.Duration) (*Session, error) {
	now := s.now()
	sess := &Session{
		ID:        uuid.NewString(),
		UserID:    userID,
		UserAgent: userAgent,
		CreatedAt: now,
		ExpiresAt: now.Add(ttl),
	}

	data, err := json.Marshal(sess)
	if err != nil {
		return nil, err
	}

	_, err = s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.key(sess.ID), data, ttl)
		pipe.SAdd(ctx, s.userKey(userID), sess.ID)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	return sess, nil
}

// Get retrieves a session by id. An expired row is deleted lazily and
// reported as [ErrNotFound].
func (s *Store) Get(ctx context.Context, sessionID string) (*Session, error) {
	data, err := s.redis.Get(ctx, s.key(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, err
	}

	if !sess.Active(s.now()) {
		if err := s.deleteSessionAndIndex(ctx, sess.UserID, sessionID); err != nil {
			return nil, err
		}
		return nil, ErrNotFound
	}

	return &sess, nil
}

// ExtendExpiry moves a session's expiry to newExpiresAt and realigns the
// Redis TTL. Read-modify-write; the narrow race with a concurrent extend is
// harmless since both writers extend to roughly the same instant.
func (s *Store) ExtendExpiry(ctx context.Context, sessionID string, newExpiresAt time.Time) error {
	sess, err := s.Get(ctx, sessionID)
	if err != nil {
		return err
	}

	sess.ExpiresAt = newExpiresAt
	data, err := json.Marshal(sess)
	if err != nil {
		return err
	}

	ttl := newExpiresAt.Sub(s.now())
	if ttl <= 0 {
		return ErrNotFound
	}
	if err := s.redis.Set(ctx, s.key(sessionID), data, ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// Delete removes a session by id. Deleting a session that does not exist is
// a no-op success, which gives logout its idempotent boundary semantics.
func (s *Store) Delete(ctx context.Context, sessionID string) error {
	data, err := s.redis.Get(ctx, s.key(sessionID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return err
	}

	return s.deleteSessionAndIndex(ctx, sess.UserID, sessionID)
}

// DeleteOwned removes a session only when it belongs to userID. A missing
// session and a session owned by someone else both return [ErrNotFound]:
// this is an authorization check, and the two cases must not be
// distinguishable by the caller.
func (s *Store) DeleteOwned(ctx context.Context, userID, sessionID string) error {
	sess, err := s.Get(ctx, sessionID)
	if err != nil {
		return err
	}
	if sess.UserID != userID {
		return ErrNotFound
	}
	return s.deleteSessionAndIndex(ctx, sess.UserID, sessionID)
}

// ListActive returns the user's live sessions ordered newest-first. Stale
// index entries for expired or deleted sessions are pruned as they are seen.
func (s *Store) ListActive(ctx context.Context, userID string) ([]*Session, error) {
	sessionIDs, err := s.redis.SMembers(ctx, s.userKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return []*Session{}, nil
		}
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	if len(sessionIDs) == 0 {
		return []*Session{}, nil
	}

	pipe := s.redis.Pipeline()
	cmds := make([]*redis.StringCmd, len(sessionIDs))
	for i, sid := range sessionIDs {
		cmds[i] = pipe.Get(ctx, s.key(sid))
	}
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	now := s.now()
	sessions := make([]*Session, 0, len(sessionIDs))
	var stale []interface{}
	for i, cmd := range cmds {
		data, cmdErr := cmd.Bytes()
		if cmdErr != nil {
			if errors.Is(cmdErr, redis.Nil) {
				stale = append(stale, sessionIDs[i])
				continue
			}
			return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, cmdErr)
		}

		var sess Session
		if err := json.Unmarshal(data, &sess); err != nil {
			return nil, err
		}
		if !sess.Active(now) {
			stale = append(stale, sess.ID)
			continue
		}
		sessions = append(sessions, &sess)
	}

	if len(stale) > 0 {
		if err := s.redis.SRem(ctx, s.userKey(userID), stale...).Err(); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
		}
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].CreatedAt.After(sessions[j].CreatedAt)
	})

	return sessions, nil
}

// DeleteAllForUser removes every tracked session for a user. Not fully
// atomic: a session created between the index read and the delete survives;
// it will expire naturally or be caught by a later call.
func (s *Store) DeleteAllForUser(ctx context.Context, userID string) error {
	userKey := s.userKey(userID)

	sessionIDs, err := s.redis.SMembers(ctx, userKey).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil
		}
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	_, err = s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		for _, sid := range sessionIDs {
			pipe.Del(ctx, s.key(sid))
		}
		pipe.Del(ctx, userKey)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	return nil
}

func (s *Store) deleteSessionAndIndex(ctx context.Context, userID, sessionID string) error {
	_, err := s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.key(sessionID))
		pipe.SRem(ctx, s.userKey(userID), sessionID)
		return nil
	})
	if err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}
