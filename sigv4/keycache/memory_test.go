package keycache

import (
	"bytes"
	"context"
	"testing"

	"github.com/lkinley/AsyncAWS/sigv4"
)

// countingProvider records how many times derivation is reached.
type countingProvider struct {
	calls int
}

func (p *countingProvider) SigningKey(ctx context.Context, creds sigv4.Credentials, date, region, service string) ([]byte, error) {
	p.calls++
	return sigv4.DeriveSigningKey(creds.SecretAccessKey, date, region, service), nil
}

func testCreds() sigv4.Credentials {
	return sigv4.Credentials{AccessKeyID: "AKIDEXAMPLE", SecretAccessKey: "SECRET"}
}

func TestMemory_ReadThrough(t *testing.T) {
	next := &countingProvider{}
	cache := NewMemory(next)
	ctx := context.Background()

	first, err := cache.SigningKey(ctx, testCreds(), "20150830", "us-east-1", "sqs")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	second, err := cache.SigningKey(ctx, testCreds(), "20150830", "us-east-1", "sqs")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Error("cache hit must return the same key bytes")
	}
	if next.calls != 1 {
		t.Errorf("expected 1 derivation, got %d", next.calls)
	}

	want := sigv4.DeriveSigningKey("SECRET", "20150830", "us-east-1", "sqs")
	if !bytes.Equal(first, want) {
		t.Error("cached key must match a fresh derivation")
	}
}

func TestMemory_DistinctScopes(t *testing.T) {
	next := &countingProvider{}
	cache := NewMemory(next)
	ctx := context.Background()

	_, _ = cache.SigningKey(ctx, testCreds(), "20150830", "us-east-1", "sqs")
	_, _ = cache.SigningKey(ctx, testCreds(), "20150830", "us-east-1", "sns")
	_, _ = cache.SigningKey(ctx, testCreds(), "20150830", "eu-west-1", "sqs")

	if next.calls != 3 {
		t.Errorf("distinct scopes must each derive, got %d calls", next.calls)
	}
}

func TestMemory_DropsStaleDays(t *testing.T) {
	next := &countingProvider{}
	cache := NewMemory(next)
	ctx := context.Background()

	_, _ = cache.SigningKey(ctx, testCreds(), "20150830", "us-east-1", "sqs")
	_, _ = cache.SigningKey(ctx, testCreds(), "20150831", "us-east-1", "sqs")

	cache.mu.RLock()
	defer cache.mu.RUnlock()
	if len(cache.entries) != 1 {
		t.Errorf("entries from earlier days must be dropped, got %d entries", len(cache.entries))
	}
	if _, ok := cache.entries["AKIDEXAMPLE/20150831/us-east-1/sqs"]; !ok {
		t.Error("current day entry missing")
	}
}

func TestMemory_ReturnsCopies(t *testing.T) {
	cache := NewMemory(nil)
	ctx := context.Background()

	first, _ := cache.SigningKey(ctx, testCreds(), "20150830", "us-east-1", "sqs")
	first[0] ^= 0xff

	second, _ := cache.SigningKey(ctx, testCreds(), "20150830", "us-east-1", "sqs")
	if bytes.Equal(first, second) {
		t.Error("mutating a returned key must not corrupt the cache")
	}
}
