package redis

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func setupTestRedis(t *testing.T) (*redis.Client, *miniredis.Miniredis) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("failed to start miniredis: %v", err)
	}
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() {
		client.Close()
		mr.Close()
	})
	return client, mr
}

func TestLock_AcquireAndRelease(t *testing.T) {
	client, _ := setupTestRedis(t)
	lock := NewLock(client)
	ctx := context.Background()

	acquired, err := lock.Acquire(ctx, "ingest:doc-42", 10*time.Second)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if !acquired {
		t.Fatal("expected to acquire the lock")
	}

	// Not reentrant: the same instance cannot take it twice
	again, err := lock.Acquire(ctx, "ingest:doc-42", 10*time.Second)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if again {
		t.Error("expected the second acquire to fail while held")
	}

	if err := lock.Release(ctx, "ingest:doc-42"); err != nil {
		t.Fatalf("release: %v", err)
	}

	acquired, err = lock.Acquire(ctx, "ingest:doc-42", 10*time.Second)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if !acquired {
		t.Error("expected to re-acquire after release")
	}
}

func TestLock_TwoWorkersOneDocument(t *testing.T) {
	client, _ := setupTestRedis(t)
	worker1 := NewLock(client)
	worker2 := NewLock(client)
	ctx := context.Background()

	acquired, err := worker1.Acquire(ctx, "ingest:doc-42", 10*time.Second)
	if err != nil || !acquired {
		t.Fatalf("worker1 acquire: acquired=%v err=%v", acquired, err)
	}

	acquired, err = worker2.Acquire(ctx, "ingest:doc-42", 10*time.Second)
	if err != nil {
		t.Fatalf("worker2 acquire: %v", err)
	}
	if acquired {
		t.Error("expected worker2 to be shut out while worker1 ingests")
	}

	// A different document is free
	acquired, err = worker2.Acquire(ctx, "ingest:doc-43", 10*time.Second)
	if err != nil || !acquired {
		t.Errorf("expected worker2 to take a different document: acquired=%v err=%v", acquired, err)
	}
}

func TestLock_ReleaseGuardsOwnership(t *testing.T) {
	client, _ := setupTestRedis(t)
	holder := NewLock(client)
	intruder := NewLock(client)
	ctx := context.Background()

	if acquired, err := holder.Acquire(ctx, "ingest:doc-42", 10*time.Second); err != nil || !acquired {
		t.Fatalf("acquire: acquired=%v err=%v", acquired, err)
	}

	// A foreign release is silently ignored
	if err := intruder.Release(ctx, "ingest:doc-42"); err != nil {
		t.Fatalf("release: %v", err)
	}
	if acquired, _ := intruder.Acquire(ctx, "ingest:doc-42", 10*time.Second); acquired {
		t.Error("expected the lock to survive a foreign release")
	}

	// Releasing a lock nobody holds is a no-op
	if err := holder.Release(ctx, "ingest:doc-99"); err != nil {
		t.Errorf("unexpected error releasing an unheld lock: %v", err)
	}
}

func TestLock_Extend(t *testing.T) {
	client, mr := setupTestRedis(t)
	lock := NewLock(client)
	ctx := context.Background()

	if acquired, err := lock.Acquire(ctx, "ingest:doc-42", time.Minute); err != nil || !acquired {
		t.Fatalf("acquire: acquired=%v err=%v", acquired, err)
	}
	if err := lock.Extend(ctx, "ingest:doc-42", 10*time.Minute); err != nil {
		t.Fatalf("extend: %v", err)
	}

	// The original TTL would have expired; the extension keeps it held
	mr.FastForward(5 * time.Minute)
	if acquired, _ := lock.Acquire(ctx, "ingest:doc-42", time.Minute); acquired {
		t.Error("expected the extended lock to still be held")
	}
}

func TestLock_Extend_NotHeld(t *testing.T) {
	client, _ := setupTestRedis(t)
	holder := NewLock(client)
	other := NewLock(client)
	ctx := context.Background()

	if err := other.Extend(ctx, "ingest:doc-42", time.Minute); !errors.Is(err, ErrLockNotHeld) {
		t.Errorf("expected ErrLockNotHeld for an unheld lock, got %v", err)
	}

	if acquired, err := holder.Acquire(ctx, "ingest:doc-42", time.Minute); err != nil || !acquired {
		t.Fatalf("acquire: acquired=%v err=%v", acquired, err)
	}
	if err := other.Extend(ctx, "ingest:doc-42", time.Minute); !errors.Is(err, ErrLockNotHeld) {
		t.Errorf("expected ErrLockNotHeld for a foreign lock, got %v", err)
	}
}

func TestLock_ExpiresOnItsOwn(t *testing.T) {
	client, mr := setupTestRedis(t)
	crashed := NewLock(client)
	next := NewLock(client)
	ctx := context.Background()

	// A worker that dies mid-ingest never releases; TTL frees the doc
	if acquired, err := crashed.Acquire(ctx, "ingest:doc-42", time.Minute); err != nil || !acquired {
		t.Fatalf("acquire: acquired=%v err=%v", acquired, err)
	}
	mr.FastForward(2 * time.Minute)

	acquired, err := next.Acquire(ctx, "ingest:doc-42", time.Minute)
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if !acquired {
		t.Error("expected the lock to expire with its TTL")
	}
}

func TestLock_Ping(t *testing.T) {
	client, _ := setupTestRedis(t)
	lock := NewLock(client)

	if err := lock.Ping(context.Background()); err != nil {
		t.Errorf("unexpected ping error: %v", err)
	}
}
