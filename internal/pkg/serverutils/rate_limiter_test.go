package serverutils

import (
	"context"
	"fmt"
	"testing"
	"time"
)

func TestMemoryRateLimiterAllow(t *testing.T) {
	limiter := NewMemoryRateLimiter(3, time.Minute)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		allowed, err := limiter.Allow(ctx, "client-a")
		if err != nil {
			t.Fatalf("Allow #%d: %v", i, err)
		}
		if !allowed {
			t.Fatalf("Allow #%d = false, want true", i)
		}
	}

	allowed, err := limiter.Allow(ctx, "client-a")
	if err != nil {
		t.Fatal(err)
	}
	if allowed {
		t.Error("request over the limit was allowed")
	}
}

func TestMemoryRateLimiterKeysAreIndependent(t *testing.T) {
	limiter := NewMemoryRateLimiter(1, time.Minute)
	ctx := context.Background()

	if allowed, _ := limiter.Allow(ctx, "client-a"); !allowed {
		t.Fatal("first request for client-a denied")
	}
	if allowed, _ := limiter.Allow(ctx, "client-a"); allowed {
		t.Fatal("second request for client-a allowed")
	}
	if allowed, _ := limiter.Allow(ctx, "client-b"); !allowed {
		t.Error("client-b was throttled by client-a's counter")
	}
}

func TestMemoryRateLimiterWindowReset(t *testing.T) {
	limiter := NewMemoryRateLimiter(1, 30*time.Millisecond)
	ctx := context.Background()

	if allowed, _ := limiter.Allow(ctx, "client-a"); !allowed {
		t.Fatal("first request denied")
	}
	if allowed, _ := limiter.Allow(ctx, "client-a"); allowed {
		t.Fatal("second request in window allowed")
	}

	time.Sleep(50 * time.Millisecond)

	if allowed, _ := limiter.Allow(ctx, "client-a"); !allowed {
		t.Error("request after window expiry denied")
	}
}

func TestMemoryRateLimiterZeroLimitDeniesAll(t *testing.T) {
	limiter := NewMemoryRateLimiter(0, time.Minute)

	if allowed, _ := limiter.Allow(context.Background(), "client-a"); allowed {
		t.Error("zero-limit limiter allowed a request")
	}
}

func TestMemoryRateLimiterConcurrentKeys(t *testing.T) {
	limiter := NewMemoryRateLimiter(100, time.Minute)
	ctx := context.Background()

	for i := 0; i < 50; i++ {
		key := fmt.Sprintf("client-%d", i%5)
		if allowed, err := limiter.Allow(ctx, key); err != nil || !allowed {
			t.Fatalf("Allow(%s) = %v, %v", key, allowed, err)
		}
	}
}
