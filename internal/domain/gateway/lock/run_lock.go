package lock

import "context"

// RunLock serializes pipeline runs across processes.
type RunLock interface {
	// TryLock acquires the lock without waiting, reporting false when another owner holds it.
	TryLock(ctx context.Context) (bool, error)
	// Unlock releases a lock acquired by this owner.
	Unlock(ctx context.Context) error
}
