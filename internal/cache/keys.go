package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	userKeyPrefix     = "user:%d"
	productKeyPrefix  = "product:%d"
	categoryKeyPrefix = "category:%d"
)

// TTLs for cached single-record reads.
const (
	UserTTL     = 5 * time.Minute
	ProductTTL  = 10 * time.Minute
	CategoryTTL = 30 * time.Minute
)

// UserKey returns the cache key for a user record.
func UserKey(id uint) string { return fmt.Sprintf(userKeyPrefix, id) }

// ProductKey returns the cache key for a product record.
func ProductKey(id uint) string { return fmt.Sprintf(productKeyPrefix, id) }

// CategoryKey returns the cache key for a category record.
func CategoryKey(id uint) string { return fmt.Sprintf(categoryKeyPrefix, id) }

// Invalidate removes a key from the cache, if caching is enabled.
func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

// InvalidateUser drops the cached user record.
func InvalidateUser(ctx context.Context, id uint) { Invalidate(ctx, UserKey(id)) }

// InvalidateProduct drops the cached product record.
func InvalidateProduct(ctx context.Context, id uint) { Invalidate(ctx, ProductKey(id)) }

// InvalidateCategory drops the cached category record.
func InvalidateCategory(ctx context.Context, id uint) { Invalidate(ctx, CategoryKey(id)) }
