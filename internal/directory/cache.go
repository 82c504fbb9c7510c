package directory

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// CachingDirectory wraps another Directory with a bounded, expiring cache
// of recent successful authentications. HTTP Basic credentials arrive on
// every request, and a bcrypt comparison per request is deliberately
// expensive; caching the verified pair for a short TTL keeps that cost off
// the hot path. Failures are never cached.
type CachingDirectory struct {
	inner Directory
	cache *expirable.LRU[string, Identity]
}

// NewCachingDirectory builds the decorator. Size bounds the number of
// cached credential pairs; ttl bounds how long a verified pair is trusted
// without re-checking the backing directory.
func NewCachingDirectory(inner Directory, size int, ttl time.Duration) *CachingDirectory {
	return &CachingDirectory{
		inner: inner,
		cache: expirable.NewLRU[string, Identity](size, nil, ttl),
	}
}

// Authenticate consults the cache before the backing directory.
func (d *CachingDirectory) Authenticate(ctx context.Context, username, password string) (Identity, error) {
	key := credentialKey(username, password)
	if identity, ok := d.cache.Get(key); ok {
		return identity, nil
	}

	identity, err := d.inner.Authenticate(ctx, username, password)
	if err != nil {
		return Identity{}, err
	}
	d.cache.Add(key, identity)
	return identity, nil
}

// credentialKey derives the cache key from a digest of the pair so raw
// passwords are never held in cache keys.
func credentialKey(username, password string) string {
	sum := sha256.Sum256([]byte(username + "\x00" + password))
	return hex.EncodeToString(sum[:])
}
