package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Cache keys for derived views
const (
	RankingGlobalKey   = "ranking:global"
	RankingDistritoFmt = "ranking:distrito:%s"
	ImpactoKey         = "impacto:resumen"
)

var client *redis.Client

// Init initializes the Redis connection. A failed connection leaves the
// package degraded: every helper becomes a no-op and callers fall back to
// the database.
func Init(addr, password string) error {
	client = redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       0,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		client = nil
		return err
	}
	return nil
}

// InitWithClient installs an already-built client. Used by tests with miniredis.
func InitWithClient(c *redis.Client) {
	client = c
}

// GetCached returns cached data for a key
func GetCached(ctx context.Context, key string) ([]byte, bool) {
	if client == nil {
		return nil, false
	}
	data, err := client.Get(ctx, key).Bytes()
	if err != nil {
		return nil, false
	}
	return data, true
}

// SetCached stores data with a TTL
func SetCached(ctx context.Context, key string, data []byte, ttl time.Duration) {
	if client == nil {
		return
	}
	client.Set(ctx, key, data, ttl)
}

// InvalidatePattern removes all keys matching a glob pattern
func InvalidatePattern(ctx context.Context, pattern string) {
	if client == nil {
		return
	}
	keys, err := client.Keys(ctx, pattern).Result()
	if err == nil && len(keys) > 0 {
		client.Del(ctx, keys...)
	}
}

// InvalidateKeys removes specific cache keys
func InvalidateKeys(ctx context.Context, keys ...string) {
	if client == nil || len(keys) == 0 {
		return
	}
	client.Del(ctx, keys...)
}

// DistritoKey builds the per-district ranking cache key
func DistritoKey(distrito string) string {
	return fmt.Sprintf(RankingDistritoFmt, distrito)
}

// InvalidateRecogidaCaches clears every derived view that depends on pickup
// records. Called when: CreateRecogida, UpdateRecogida, DeleteRecogida,
// CompletarRuta.
func InvalidateRecogidaCaches(ctx context.Context) {
	InvalidatePattern(ctx, "ranking:*")
	InvalidateKeys(ctx, ImpactoKey)
}

// InvalidateUsuarioCaches clears user-derived views.
// Called when: CreateUsuario, UpdateUsuario, soft delete.
func InvalidateUsuarioCaches(ctx context.Context) {
	InvalidatePattern(ctx, "ranking:*")
}

// IsHealthy returns true if Redis connection is working
func IsHealthy() bool {
	if client == nil {
		return false
	}
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	return client.Ping(ctx).Err() == nil
}
