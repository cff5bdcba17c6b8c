package lookup

import (
	"context"
	"fmt"
	"strings"
	"time"

	"community_cards/internal/domain"

	"github.com/hashicorp/golang-lru/v2/expirable"
	"golang.org/x/sync/singleflight"
)

// DefaultSharedLookupTimeout bounds a coalesced lookup once it no longer
// follows the cancellation of the caller that started it.
const DefaultSharedLookupTimeout = 15 * time.Second

// CachedClient wraps a Client with an expiring LRU and coalesces
// concurrent lookups of the same handle. Failed lookups are not cached.
type CachedClient struct {
	next          Client
	lru           *expirable.LRU[string, domain.UserProfile]
	group         singleflight.Group
	sharedTimeout time.Duration
}

// NewCachedClient creates a cache of at most size profiles, each kept for ttl.
func NewCachedClient(next Client, size int, ttl time.Duration) *CachedClient {
	return &CachedClient{
		next:          next,
		lru:           expirable.NewLRU[string, domain.UserProfile](size, nil, ttl),
		sharedTimeout: DefaultSharedLookupTimeout,
	}
}

func cacheKey(handle string) string {
	return strings.ToLower(strings.TrimLeft(strings.TrimSpace(handle), "@"))
}

// Lookup returns a cached profile or asks the wrapped client.
func (c *CachedClient) Lookup(ctx context.Context, handle string) (*domain.UserProfile, error) {
	key := cacheKey(handle)
	if p, ok := c.lru.Get(key); ok {
		LookupCacheHits.Inc()
		return &p, nil
	}

	// The shared call outlives any single caller; each caller still
	// stops waiting when its own ctx is done.
	ch := c.group.DoChan(key, func() (interface{}, error) {
		sharedCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.sharedTimeout)
		defer cancel()
		p, err := c.next.Lookup(sharedCtx, handle)
		if err != nil {
			return nil, err
		}
		c.lru.Add(key, *p)
		return *p, nil
	})

	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%w: %v", domain.ErrLookupFailed, ctx.Err())
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		p := res.Val.(domain.UserProfile)
		return &p, nil
	}
}

// Forget drops a handle from the cache.
func (c *CachedClient) Forget(handle string) {
	key := cacheKey(handle)
	c.lru.Remove(key)
	c.group.Forget(key)
}

// Len returns the number of cached profiles.
func (c *CachedClient) Len() int {
	return c.lru.Len()
}
