package cache

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"sentra-identity-svc/src/internal/config"
	"sentra-identity-svc/src/internal/models"
)

func newTestService(t *testing.T) (Service, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	cfg := &config.Configuration{
		Cache: config.CacheConfig{
			SessionExpirationMinutes: 30,
			SessionKeyPrefix:         "session:",
		},
	}

	return NewCacheService(client, cfg), mr
}

func testCacheSession(now time.Time) *models.Session {
	return &models.Session{
		SessionID:      "2b1f8c1e-5d7a-4f3b-9c2d-8e4a6b1c0d9f",
		UserID:         "7c9e6679-7425-40de-944b-e07fc1f90ae7",
		TenantID:       "f47ac10b-58cc-4372-a567-0e02b2c3d479",
		Status:         models.SessionActive,
		CreatedAt:      now.Add(-time.Hour),
		LastActivityAt: now,
		ExpiresAt:      now.Add(2 * time.Hour),
	}
}

func TestCacheAndGetActiveSession(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	now := time.Now()
	sess := testCacheSession(now)

	if err := svc.CacheActiveSession(ctx, sess); err != nil {
		t.Fatalf("cache failed: %v", err)
	}

	got, err := svc.GetActiveSession(ctx, sess.UserID, sess.SessionID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got == nil {
		t.Fatal("expected cached session")
	}
	if got.SessionID != sess.SessionID || got.UserID != sess.UserID || got.TenantID != sess.TenantID {
		t.Fatalf("cached session mismatch: %+v", got)
	}
}

func TestGetActiveSessionMissIsNotAnError(t *testing.T) {
	svc, _ := newTestService(t)

	got, err := svc.GetActiveSession(context.Background(), "u1", "s1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != nil {
		t.Fatalf("expected nil on miss, got %+v", got)
	}
}

func TestCacheSkipsExpiredSession(t *testing.T) {
	svc, _ := newTestService(t)
	now := time.Now()
	sess := testCacheSession(now)
	sess.ExpiresAt = now.Add(-time.Minute)

	if err := svc.CacheActiveSession(context.Background(), sess); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := svc.GetActiveSession(context.Background(), sess.UserID, sess.SessionID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got != nil {
		t.Fatal("expired session must not be cached")
	}
}

func TestCacheTTLBoundedBySessionExpiry(t *testing.T) {
	svc, mr := newTestService(t)
	now := time.Now()
	sess := testCacheSession(now)
	sess.ExpiresAt = now.Add(5 * time.Minute)

	if err := svc.CacheActiveSession(context.Background(), sess); err != nil {
		t.Fatalf("cache failed: %v", err)
	}

	mr.FastForward(6 * time.Minute)

	got, err := svc.GetActiveSession(context.Background(), sess.UserID, sess.SessionID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got != nil {
		t.Fatal("cache entry must not outlive the session expiry")
	}
}

func TestUpdateSessionActivityAdvancesTimestamp(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	now := time.Now().Add(-time.Minute)
	sess := testCacheSession(now)

	if err := svc.CacheActiveSession(ctx, sess); err != nil {
		t.Fatalf("cache failed: %v", err)
	}
	if err := svc.UpdateSessionActivity(ctx, sess.UserID, sess.SessionID); err != nil {
		t.Fatalf("update failed: %v", err)
	}

	got, err := svc.GetActiveSession(ctx, sess.UserID, sess.SessionID)
	if err != nil || got == nil {
		t.Fatalf("get failed: %v %v", got, err)
	}
	if !got.LastActivityAt.After(sess.LastActivityAt) {
		t.Fatal("expected last activity to advance")
	}
}

func TestInvalidateSession(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	sess := testCacheSession(time.Now())

	if err := svc.CacheActiveSession(ctx, sess); err != nil {
		t.Fatalf("cache failed: %v", err)
	}
	if err := svc.InvalidateSession(ctx, sess.UserID, sess.SessionID); err != nil {
		t.Fatalf("invalidate failed: %v", err)
	}

	got, err := svc.GetActiveSession(ctx, sess.UserID, sess.SessionID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got != nil {
		t.Fatal("expected session to be gone after invalidation")
	}
}
