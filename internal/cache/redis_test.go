package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func setupMiniredis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("miniredis: %v", err)
	}
	t.Cleanup(mr.Close)

	InitWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() { InitWithClient(nil) })
	return mr
}

func TestCacheRoundTrip(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	if _, ok := GetCached(ctx, "missing"); ok {
		t.Fatalf("unexpected hit for missing key")
	}

	SetCached(ctx, RankingGlobalKey, []byte(`[{"cliente_id":1}]`), time.Minute)
	data, ok := GetCached(ctx, RankingGlobalKey)
	if !ok || string(data) != `[{"cliente_id":1}]` {
		t.Fatalf("expected cached payload, got %q (hit=%v)", data, ok)
	}

	if !IsHealthy() {
		t.Fatalf("expected healthy cache")
	}
}

func TestInvalidateRecogidaCaches(t *testing.T) {
	setupMiniredis(t)
	ctx := context.Background()

	SetCached(ctx, RankingGlobalKey, []byte("a"), time.Minute)
	SetCached(ctx, DistritoKey("Centro"), []byte("b"), time.Minute)
	SetCached(ctx, ImpactoKey, []byte("c"), time.Minute)
	SetCached(ctx, "unrelated", []byte("d"), time.Minute)

	InvalidateRecogidaCaches(ctx)

	for _, key := range []string{RankingGlobalKey, DistritoKey("Centro"), ImpactoKey} {
		if _, ok := GetCached(ctx, key); ok {
			t.Fatalf("key %q should have been invalidated", key)
		}
	}
	if _, ok := GetCached(ctx, "unrelated"); !ok {
		t.Fatalf("unrelated key should survive invalidation")
	}
}

// Without Redis every helper is a no-op and callers fall back to the
// database.
func TestDegradedModeIsNoOp(t *testing.T) {
	InitWithClient(nil)
	ctx := context.Background()

	if _, ok := GetCached(ctx, RankingGlobalKey); ok {
		t.Fatalf("degraded cache must always miss")
	}

	// None of these may panic
	SetCached(ctx, RankingGlobalKey, []byte("x"), time.Minute)
	InvalidatePattern(ctx, "ranking:*")
	InvalidateKeys(ctx, ImpactoKey)
	InvalidateRecogidaCaches(ctx)
	InvalidateUsuarioCaches(ctx)

	if IsHealthy() {
		t.Fatalf("degraded cache must report unhealthy")
	}
}

func TestDistritoKey(t *testing.T) {
	if got := DistritoKey("Centro"); got != "ranking:distrito:Centro" {
		t.Fatalf("unexpected key %q", got)
	}
}
