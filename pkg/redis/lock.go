package redis

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const unlockScript = `
	if redis.call("GET", KEYS[1]) == ARGV[1] then
		return redis.call("DEL", KEYS[1])
	else
		return 0
	end
`

// ErrLockNotHeld is returned by Unlock when the key expired or belongs to another holder
var ErrLockNotHeld = errors.New("lock was not held by this client")

// Scripter is the subset of go-redis commands used by Lock
type Scripter interface {
	SetNX(ctx context.Context, key string, value interface{}, expiration time.Duration) *redis.BoolCmd
	Eval(ctx context.Context, script string, keys []string, args ...interface{}) *redis.Cmd
}

// LockOptions represents options for distributed locking
type LockOptions struct {
	// TTL is the lock expiration time, it bounds how long a crashed holder blocks other runs
	TTL time.Duration
	// LockNamespace is the namespace for organizing locks
	LockNamespace string
}

// Lock is a non blocking distributed lock. A Lock value may be acquired again after Unlock.
type Lock struct {
	rdb  Scripter
	key  string
	opts LockOptions

	mu    sync.Mutex
	value string
}

// NewLock creates a new distributed lock; a zero TTL means 15 minutes
func NewLock(rdb Scripter, key string, opts LockOptions) *Lock {
	if opts.TTL <= 0 {
		opts.TTL = 15 * time.Minute
	}
	return &Lock{rdb: rdb, key: key, opts: opts}
}

// Key constructs the full lock key using LockNamespace::lockKey format
func (l *Lock) Key() string {
	if l.opts.LockNamespace != "" {
		return l.opts.LockNamespace + "::" + l.key
	}
	return l.key
}

// TryLock makes a single SET NX attempt and reports whether the lock was acquired
func (l *Lock) TryLock(ctx context.Context) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	value := uuid.NewString()
	acquired, err := l.rdb.SetNX(ctx, l.Key(), value, l.opts.TTL).Result()
	if err != nil {
		return false, fmt.Errorf("failed to acquire lock: %w", err)
	}
	if acquired {
		l.value = value
	}
	return acquired, nil
}

// Unlock releases the lock, only deleting the key when it still holds our value
func (l *Lock) Unlock(ctx context.Context) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.value == "" {
		return ErrLockNotHeld
	}
	value := l.value
	l.value = ""

	result, err := l.rdb.Eval(ctx, unlockScript, []string{l.Key()}, value).Int64()
	if err != nil {
		return fmt.Errorf("failed to release lock: %w", err)
	}
	if result == 0 {
		return ErrLockNotHeld
	}
	return nil
}
