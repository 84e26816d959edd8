package verify

import (
	"context"
	"encoding/json"
	"time"

	"github.com/hearsay-live/hearsay/internal/cache"
	"github.com/hearsay-live/hearsay/internal/model"
	"github.com/hearsay-live/hearsay/internal/textnorm"
)

// CachedChecker wraps a Checker with a verdict cache keyed by normalized
// claim text. Fresh requests bypass the read path but still refresh the
// cache on success.
type CachedChecker struct {
	inner Checker
	store cache.Store
	ttl   time.Duration
}

// NewCachedChecker creates a caching wrapper around inner.
func NewCachedChecker(inner Checker, store cache.Store, ttl time.Duration) *CachedChecker {
	return &CachedChecker{inner: inner, store: store, ttl: ttl}
}

// Check returns a cached verdict when one exists, otherwise delegates.
func (c *CachedChecker) Check(ctx context.Context, req CheckRequest) (*model.VerificationResult, error) {
	key := cache.Key(textnorm.Normalize(req.Claim))

	if !req.Fresh {
		if raw, ok := c.store.Get(key); ok {
			var result model.VerificationResult
			if err := json.Unmarshal(raw, &result); err == nil {
				return &result, nil
			}
			// Corrupt entry: drop it and fall through to a real check.
			_ = c.store.Delete(key)
		}
	}

	result, err := c.inner.Check(ctx, req)
	if err != nil {
		return nil, err
	}

	if raw, err := json.Marshal(result); err == nil {
		_ = c.store.Set(key, raw, c.ttl)
	}
	return result, nil
}
