// Package lock provides per-account locking for balance operations.
// Different accounts never contend; one account's critical sections run
// strictly one at a time.
package lock

import (
	"context"
	"sync"
	"time"
)

// accountMutex is a one-slot semaphore so waiters can give up on context
// cancellation. refCount counts holders and waiters.
type accountMutex struct {
	sem      chan struct{}
	refCount int
}

// AccountLock provides per-account mutual exclusion. Entries are created on
// demand and dropped once nobody holds or waits for them.
type AccountLock struct {
	mu    sync.Mutex
	locks map[int64]*accountMutex
	pool  sync.Pool
}

// NewAccountLock creates a new AccountLock instance.
func NewAccountLock() *AccountLock {
	return &AccountLock{
		locks: make(map[int64]*accountMutex),
		pool: sync.Pool{
			New: func() any {
				return &accountMutex{sem: make(chan struct{}, 1)}
			},
		},
	}
}

// acquire returns the entry for accountID with a reference taken.
func (al *AccountLock) acquire(accountID int64) *accountMutex {
	al.mu.Lock()
	defer al.mu.Unlock()

	m, ok := al.locks[accountID]
	if !ok {
		m = al.pool.Get().(*accountMutex)
		al.locks[accountID] = m
	}
	m.refCount++
	return m
}

// release drops a reference and recycles the entry when it becomes idle.
func (al *AccountLock) release(accountID int64, m *accountMutex) {
	al.mu.Lock()
	defer al.mu.Unlock()

	m.refCount--
	if m.refCount == 0 {
		delete(al.locks, accountID)
		al.pool.Put(m)
	}
}

// LockContext acquires the account's lock or returns ctx.Err() if the
// context ends first.
func (al *AccountLock) LockContext(ctx context.Context, accountID int64) error {
	m := al.acquire(accountID)
	select {
	case m.sem <- struct{}{}:
		return nil
	case <-ctx.Done():
		al.release(accountID, m)
		return ctx.Err()
	}
}

// LockWithTimeout acquires the lock or returns ErrLockTimeout once timeout
// passes. Cancellation of ctx itself is reported as ctx.Err().
func (al *AccountLock) LockWithTimeout(ctx context.Context, accountID int64, timeout time.Duration) error {
	timeoutCtx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	if err := al.LockContext(timeoutCtx, accountID); err != nil {
		if ctx.Err() == nil {
			return ErrLockTimeout
		}
		return err
	}
	return nil
}

// Unlock releases the account's lock. Like sync.Mutex, only the goroutine
// that acquired the lock may release it; calling Unlock on an account nobody
// holds is a no-op.
func (al *AccountLock) Unlock(accountID int64) {
	al.mu.Lock()
	m, ok := al.locks[accountID]
	al.mu.Unlock()
	if !ok {
		return
	}

	select {
	case <-m.sem:
		al.release(accountID, m)
	default:
	}
}

// held reports whether the account's lock is currently held.
func (al *AccountLock) held(accountID int64) bool {
	al.mu.Lock()
	defer al.mu.Unlock()

	m, ok := al.locks[accountID]
	return ok && len(m.sem) == 1
}

// tracked returns how many accounts currently have a holder or waiter.
func (al *AccountLock) tracked() int {
	al.mu.Lock()
	defer al.mu.Unlock()
	return len(al.locks)
}
