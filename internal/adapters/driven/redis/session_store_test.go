package redis

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"

	"github.com/bhaktikarche/eureka/internal/core/domain"
)

// setupTestRedis starts a miniredis instance and returns a client
func setupTestRedis(t *testing.T) (*redis.Client, func()) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}

	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	return client, func() {
		client.Close()
		mr.Close()
	}
}

func testSession(userID string) *domain.Session {
	return &domain.Session{
		ID:           "session-123",
		UserID:       userID,
		Token:        "token-abc",
		RefreshToken: "refresh-xyz",
		ExpiresAt:    time.Now().Add(24 * time.Hour),
		CreatedAt:    time.Now(),
	}
}

func TestSessionStoreSaveAndGet(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()
	store := NewSessionStore(client)
	ctx := context.Background()

	session := testSession("user-1")
	if err := store.Save(ctx, session); err != nil {
		t.Fatalf("save: %v", err)
	}

	retrieved, err := store.Get(ctx, session.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if retrieved.ID != session.ID || retrieved.UserID != session.UserID {
		t.Errorf("unexpected session: %+v", retrieved)
	}
}

func TestSessionStoreSkipsExpired(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()
	store := NewSessionStore(client)
	ctx := context.Background()

	session := testSession("user-1")
	session.ExpiresAt = time.Now().Add(-time.Hour)

	if err := store.Save(ctx, session); err != nil {
		t.Fatalf("save: %v", err)
	}
	if _, err := store.Get(ctx, session.ID); err != domain.ErrSessionNotFound {
		t.Errorf("expected ErrSessionNotFound, got %v", err)
	}
}

func TestSessionStoreGetByToken(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()
	store := NewSessionStore(client)
	ctx := context.Background()

	session := testSession("user-1")
	if err := store.Save(ctx, session); err != nil {
		t.Fatalf("save: %v", err)
	}

	byToken, err := store.GetByToken(ctx, session.Token)
	if err != nil {
		t.Fatalf("get by token: %v", err)
	}
	if byToken.ID != session.ID {
		t.Errorf("expected session %s, got %s", session.ID, byToken.ID)
	}

	byRefresh, err := store.GetByRefreshToken(ctx, session.RefreshToken)
	if err != nil {
		t.Fatalf("get by refresh token: %v", err)
	}
	if byRefresh.ID != session.ID {
		t.Errorf("expected session %s, got %s", session.ID, byRefresh.ID)
	}
}

func TestSessionStoreDelete(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()
	store := NewSessionStore(client)
	ctx := context.Background()

	session := testSession("user-1")
	if err := store.Save(ctx, session); err != nil {
		t.Fatalf("save: %v", err)
	}

	if err := store.Delete(ctx, session.ID); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if _, err := store.Get(ctx, session.ID); err != domain.ErrSessionNotFound {
		t.Errorf("expected session gone, got %v", err)
	}
	if _, err := store.GetByToken(ctx, session.Token); err != domain.ErrSessionNotFound {
		t.Errorf("expected token index gone, got %v", err)
	}

	// Deleting again is a no-op
	if err := store.Delete(ctx, session.ID); err != nil {
		t.Errorf("expected idempotent delete, got %v", err)
	}
}

func TestSessionStoreDeleteByUser(t *testing.T) {
	client, cleanup := setupTestRedis(t)
	defer cleanup()
	store := NewSessionStore(client)
	ctx := context.Background()

	for _, id := range []string{"s1", "s2", "s3"} {
		session := testSession("user-1")
		session.ID = id
		session.Token = "token-" + id
		session.RefreshToken = "refresh-" + id
		if err := store.Save(ctx, session); err != nil {
			t.Fatalf("save %s: %v", id, err)
		}
	}

	if err := store.DeleteByUser(ctx, "user-1"); err != nil {
		t.Fatalf("delete by user: %v", err)
	}
	for _, id := range []string{"s1", "s2", "s3"} {
		if _, err := store.Get(ctx, id); err != domain.ErrSessionNotFound {
			t.Errorf("expected %s gone, got %v", id, err)
		}
	}
}
