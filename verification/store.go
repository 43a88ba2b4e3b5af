package verification

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// ErrNotFound is returned when no live code matches id and type. Expired
// codes and type mismatches are deliberately indistinguishable from missing
// ones.
var ErrNotFound = errors.New("verification code not found")

// ErrRedisUnavailable wraps transport-level Redis failures.
var ErrRedisUnavailable = errors.New("verification redis unavailable")

// issuanceLogRetention bounds how long the per-user issuance log is kept.
// It only needs to cover the rate-limit window, which is minutes.
const issuanceLogRetention = 24 * time.Hour

// Store persists verification codes in Redis. Each code is a JSON blob with
// a TTL matching its expiry; issuance timestamps are additionally logged in
// a per-user, per-type sorted set for [Store.CountSince].
type Store struct {
	redis  redis.UniversalClient
	prefix string
	now    func() time.Time
}

// NewStore creates a verification code [Store] backed by the given Redis
// client. prefix sets the Redis key namespace.
func NewStore(redisClient redis.UniversalClient, prefix string) *Store {
	if prefix == "" {
		prefix = "avc"
	}
	return &Store{
		redis:  redisClient,
		prefix: prefix,
		now:    time.Now,
	}
}

func (s *Store) key(codeID string) string {
	return s.prefix + ":" + codeID
}

func (s *Store) issuedKey(userID string, typ Type) string {
	return s.prefix + ":log:" + userID + ":" + strconv.Itoa(int(typ))
}

// Create persists a new code for userID expiring at expiresAt and records
// the issuance in the per-user log.
func (s *Store) Create(ctx context.Context, userID string, typ Type, expiresAt time.Time) (*Code, error) {
	now := s.now()
	ttl := expiresAt.Sub(now)
	if ttl <= 0 {
		return nil, errors.New("verification code expiry must be in the future")
	}

	code := &Code{
		ID:        uuid.NewString(),
		UserID:    userID,
		Type:      typ,
		CreatedAt: now,
		ExpiresAt: expiresAt,
	}

	data, err := json.Marshal(code)
	if err != nil {
		return nil, err
	}

	logKey := s.issuedKey(userID, typ)
	_, err = s.redis.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, s.key(code.ID), data, ttl)
		pipe.ZAdd(ctx, logKey, redis.Z{Score: float64(now.UnixMilli()), Member: code.ID})
		pipe.ZRemRangeByScore(ctx, logKey, "0", strconv.FormatInt(now.Add(-issuanceLogRetention).UnixMilli(), 10))
		pipe.Expire(ctx, logKey, issuanceLogRetention)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	return code, nil
}

// FindValid returns the code only when id exists, the type matches, and the
// expiry is still in the future. Every other outcome is [ErrNotFound].
func (s *Store) FindValid(ctx context.Context, codeID string, typ Type) (*Code, error) {
	data, err := s.redis.Get(ctx, s.key(codeID)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}

	var code Code
	if err := json.Unmarshal(data, &code); err != nil {
		return nil, err
	}

	if code.Type != typ || !code.ExpiresAt.After(s.now()) {
		return nil, ErrNotFound
	}

	return &code, nil
}

// Delete removes a code by id. Deleting a missing code is a no-op success.
func (s *Store) Delete(ctx context.Context, codeID string) error {
	if err := s.redis.Del(ctx, s.key(codeID)).Err(); err != nil {
		return fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return nil
}

// CountSince reports how many codes of the given type were issued to userID
// strictly after since. Redeemed codes still count: the log tracks issuance,
// not liveness, which is what the rate-limit policy cares about.
func (s *Store) CountSince(ctx context.Context, userID string, typ Type, since time.Time) (int, error) {
	count, err := s.redis.ZCount(
		ctx,
		s.issuedKey(userID, typ),
		"("+strconv.FormatInt(since.UnixMilli(), 10),
		"+inf",
	).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("%w: %v", ErrRedisUnavailable, err)
	}
	return int(count), nil
}
