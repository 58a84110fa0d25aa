package cache

import (
	"context"
	"time"
)

// Cache holds short-lived JSON documents. Wizard drafts live here.
type Cache interface {
	GetJSON(ctx context.Context, key string, dst any) (hit bool, err error)
	SetJSON(ctx context.Context, key string, val any, ttl time.Duration) error
	Del(ctx context.Context, keys ...string) error
}

// WizardKey is the cache key of one browser's draft in one wizard flow.
func WizardKey(flow, browserID string) string {
	return "wizard:" + flow + ":" + browserID
}
