// Package runlock serializes encodes across squeeze processes with an
// advisory file lock.
package runlock

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gofrs/flock"

	"squeeze/internal/services"
)

const defaultRetryDelay = 250 * time.Millisecond

// Lock is a held or pending run lock.
type Lock struct {
	path string
	lock *flock.Flock
}

// New prepares a lock at path without acquiring it.
func New(path string) (*Lock, error) {
	path = strings.TrimSpace(path)
	if path == "" {
		return nil, services.Wrap(services.ErrConfiguration, "runlock", "path", "lock path is empty", nil)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, services.Wrap(services.ErrConfiguration, "runlock", "create lock directory", path, err)
	}
	return &Lock{path: path, lock: flock.New(path)}, nil
}

// Path returns the lock file location.
func (l *Lock) Path() string { return l.path }

// TryAcquire takes the lock if it is free and reports whether it did.
func (l *Lock) TryAcquire() (bool, error) {
	ok, err := l.lock.TryLock()
	if err != nil {
		return false, fmt.Errorf("acquire lock %s: %w", l.path, err)
	}
	return ok, nil
}

// Acquire blocks until the lock is held or ctx ends. A cancelled wait is
// reported as services.ErrInterrupted.
func (l *Lock) Acquire(ctx context.Context) error {
	ok, err := l.lock.TryLockContext(ctx, defaultRetryDelay)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			return services.Wrap(services.ErrInterrupted, "runlock", "wait", l.path, err)
		}
		return fmt.Errorf("acquire lock %s: %w", l.path, err)
	}
	if !ok {
		return services.Wrap(services.ErrInterrupted, "runlock", "wait", l.path, ctx.Err())
	}
	return nil
}

// Release drops the lock. Releasing an unheld lock is a no-op.
func (l *Lock) Release() error {
	if l == nil || !l.lock.Locked() {
		return nil
	}
	if err := l.lock.Unlock(); err != nil {
		return fmt.Errorf("release lock %s: %w", l.path, err)
	}
	return nil
}
