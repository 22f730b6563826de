package redis

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/cognidocs/cognidocs-core/internal/core/ports/driven"
	"github.com/redis/go-redis/v9"
)

// Verify interface compliance
var _ driven.DistributedLock = (*Lock)(nil)

const lockPrefix = "cognidocs:lock:"

// ErrLockNotHeld is returned by Extend when another instance holds
// the lock, or the lock already expired.
var ErrLockNotHeld = errors.New("lock not held by this instance")

// Ownership-guarded scripts: release and extend only act when the
// stored holder matches, so one worker can never drop or stretch a
// lock another worker took over after expiry.
var (
	releaseScript = redis.NewScript(`
		if redis.call("get", KEYS[1]) == ARGV[1] then
			return redis.call("del", KEYS[1])
		end
		return 0
	`)
	extendScript = redis.NewScript(`
		if redis.call("get", KEYS[1]) == ARGV[1] then
			return redis.call("pexpire", KEYS[1], ARGV[2])
		end
		return 0
	`)
)

// Lock coordinates ingestion across instances via Redis SET NX. Each
// Lock value carries a holder ID so two workers processing the same
// document queue never run the same ingest concurrently.
type Lock struct {
	client *redis.Client
	holder string
}

// NewLock creates a new Redis-backed distributed lock
func NewLock(client *redis.Client) *Lock {
	buf := make([]byte, 8)
	_, _ = rand.Read(buf)
	hostname, _ := os.Hostname()
	return &Lock{
		client: client,
		holder: fmt.Sprintf("%s:%d:%s", hostname, os.Getpid(), hex.EncodeToString(buf)),
	}
}

// Acquire takes a named lock for ttl. Returns false when another
// instance already holds it.
func (l *Lock) Acquire(ctx context.Context, name string, ttl time.Duration) (bool, error) {
	ok, err := l.client.SetNX(ctx, lockPrefix+name, l.holder, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("acquire lock %q: %w", name, err)
	}
	return ok, nil
}

// Release drops a named lock if this instance holds it. A no-op when
// the lock expired or belongs to someone else.
func (l *Lock) Release(ctx context.Context, name string) error {
	_, err := releaseScript.Run(ctx, l.client, []string{lockPrefix + name}, l.holder).Result()
	if err != nil && err != redis.Nil {
		return fmt.Errorf("release lock %q: %w", name, err)
	}
	return nil
}

// Extend pushes out the TTL of a lock this instance holds
func (l *Lock) Extend(ctx context.Context, name string, ttl time.Duration) error {
	res, err := extendScript.Run(ctx, l.client, []string{lockPrefix + name}, l.holder, ttl.Milliseconds()).Result()
	if err != nil {
		return fmt.Errorf("extend lock %q: %w", name, err)
	}
	if res.(int64) == 0 {
		return fmt.Errorf("extend lock %q: %w", name, ErrLockNotHeld)
	}
	return nil
}

// Ping checks if the Redis backend is healthy
func (l *Lock) Ping(ctx context.Context) error {
	return l.client.Ping(ctx).Err()
}
