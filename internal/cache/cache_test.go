package cache

import (
	"context"
	"testing"
	"time"
)

func TestRevocationKey(t *testing.T) {
	key1 := revocationKey("some-token")
	key2 := revocationKey("some-token")
	if key1 != key2 {
		t.Errorf("revocationKey() should be deterministic, got %s and %s", key1, key2)
	}

	if key1 == revocationKey("other-token") {
		t.Error("revocationKey() should differ per token")
	}

	// "revoked:" prefix plus 64 hex chars of sha256
	if len(key1) != len("revoked:")+64 {
		t.Errorf("revocationKey() unexpected length %d", len(key1))
	}
}

func TestDisabledCacheIsSafe(t *testing.T) {
	var disabled *Cache
	ctx := context.Background()

	if err := disabled.RevokeToken(ctx, "token", time.Minute); err != ErrCacheDisabled {
		t.Errorf("RevokeToken() on nil cache = %v, want ErrCacheDisabled", err)
	}

	revoked, err := disabled.IsTokenRevoked(ctx, "token")
	if err != ErrCacheDisabled {
		t.Errorf("IsTokenRevoked() on nil cache = %v, want ErrCacheDisabled", err)
	}
	if revoked {
		t.Error("IsTokenRevoked() on nil cache should report false")
	}
}
