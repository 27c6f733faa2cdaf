package keycache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/lkinley/AsyncAWS/sigv4"
)

// redisKeyPrefix namespaces cache entries in a shared Redis instance.
const redisKeyPrefix = "asyncaws:sigkey:"

// Redis is a distributed read-through signing-key cache. It lets a fleet of
// signers share one derivation per key per day. Only derived keys are stored;
// they expire at the end of their UTC day. Any Redis failure degrades to
// plain derivation, so signing keeps working without the cache.
type Redis struct {
	client redis.UniversalClient
	next   sigv4.KeyProvider
	now    func() time.Time
	logger zerolog.Logger
}

// NewRedis creates a Redis-backed cache wrapping next. A nil next falls back
// to fresh derivation.
func NewRedis(client redis.UniversalClient, next sigv4.KeyProvider, logger zerolog.Logger) *Redis {
	if next == nil {
		next = sigv4.DeriveProvider{}
	}
	return &Redis{
		client: client,
		next:   next,
		now:    time.Now,
		logger: logger.With().Str("component", "keycache").Logger(),
	}
}

// SigningKey implements sigv4.KeyProvider.
func (c *Redis) SigningKey(ctx context.Context, creds sigv4.Credentials, date, region, service string) ([]byte, error) {
	cacheKey := redisKeyPrefix + creds.AccessKeyID + "/" + date + "/" + region + "/" + service

	cached, err := c.client.Get(ctx, cacheKey).Bytes()
	if err == nil && len(cached) > 0 {
		return cached, nil
	}
	if err != nil && !errors.Is(err, redis.Nil) {
		c.logger.Warn().Err(err).Msg("redis get failed, deriving key locally")
	}

	key, derr := c.next.SigningKey(ctx, creds, date, region, service)
	if derr != nil {
		return nil, derr
	}

	if ttl := c.dayTTL(date); ttl > 0 {
		if serr := c.client.Set(ctx, cacheKey, key, ttl).Err(); serr != nil {
			c.logger.Warn().Err(serr).Msg("redis set failed, key not cached")
		}
	}

	return key, nil
}

// dayTTL returns how long a key derived for the given YYYYMMDD date remains
// valid: until the end of that UTC day.
func (c *Redis) dayTTL(date string) time.Duration {
	day, err := time.Parse(sigv4.YYYYMMDD, date)
	if err != nil {
		return 0
	}
	return day.AddDate(0, 0, 1).Sub(c.now().UTC())
}

var _ sigv4.KeyProvider = (*Redis)(nil)
