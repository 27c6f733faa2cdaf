package keycache

import (
	"context"
	"sync"

	"github.com/lkinley/AsyncAWS/sigv4"
)

// Memory is an in-process read-through signing-key cache.
// Suitable when all signing happens inside one process.
type Memory struct {
	mu      sync.RWMutex
	entries map[string]memoryEntry
	next    sigv4.KeyProvider
}

// memoryEntry holds one derived key and the UTC day it is valid for.
type memoryEntry struct {
	key []byte
	day string
}

// NewMemory creates a memory cache wrapping next. A nil next falls back to
// fresh derivation.
func NewMemory(next sigv4.KeyProvider) *Memory {
	if next == nil {
		next = sigv4.DeriveProvider{}
	}
	return &Memory{
		entries: make(map[string]memoryEntry),
		next:    next,
	}
}

// SigningKey implements sigv4.KeyProvider. A miss derives through the wrapped
// provider and stores the result; entries from earlier days are dropped on
// insert, so the map never grows past one day's worth of scopes.
func (c *Memory) SigningKey(ctx context.Context, creds sigv4.Credentials, date, region, service string) ([]byte, error) {
	cacheKey := creds.AccessKeyID + "/" + date + "/" + region + "/" + service

	c.mu.RLock()
	entry, ok := c.entries[cacheKey]
	c.mu.RUnlock()
	if ok {
		return cloneKey(entry.key), nil
	}

	key, err := c.next.SigningKey(ctx, creds, date, region, service)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	for k, e := range c.entries {
		if e.day != date {
			delete(c.entries, k)
		}
	}
	c.entries[cacheKey] = memoryEntry{key: cloneKey(key), day: date}
	c.mu.Unlock()

	return key, nil
}

// cloneKey copies key bytes so callers cannot mutate cached state.
func cloneKey(key []byte) []byte {
	out := make([]byte, len(key))
	copy(out, key)
	return out
}

var _ sigv4.KeyProvider = (*Memory)(nil)
