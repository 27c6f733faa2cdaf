package keycache

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/lkinley/AsyncAWS/sigv4"
)

func TestRedis_DegradesWithoutServer(t *testing.T) {
	// Nothing listens here; every Redis call fails fast and the cache must
	// fall back to plain derivation.
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	t.Cleanup(func() { client.Close() })

	cache := NewRedis(client, nil, zerolog.Nop())

	key, err := cache.SigningKey(context.Background(), testCreds(), "20150830", "us-east-1", "sqs")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := sigv4.DeriveSigningKey("SECRET", "20150830", "us-east-1", "sqs")
	if !bytes.Equal(key, want) {
		t.Error("degraded cache must still derive the correct key")
	}
}

func TestRedis_DayTTL(t *testing.T) {
	cache := NewRedis(redis.NewClient(&redis.Options{Addr: "127.0.0.1:1"}), nil, zerolog.Nop())
	cache.now = func() time.Time {
		return time.Date(2015, 8, 30, 18, 0, 0, 0, time.UTC)
	}

	if got := cache.dayTTL("20150830"); got != 6*time.Hour {
		t.Errorf("expected 6h TTL at 18:00 UTC, got %s", got)
	}
	if got := cache.dayTTL("not-a-date"); got != 0 {
		t.Errorf("expected zero TTL for unparsable date, got %s", got)
	}
}
