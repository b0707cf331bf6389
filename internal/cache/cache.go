package cache

import (
	"context"
	"time"
)

// Cache is the optional result cache. It is a pure latency optimization:
// callers must behave identically when it is absent or failing, so reads
// degrade to a miss rather than an error the caller has to act on.
type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (hit bool, err error)
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}
