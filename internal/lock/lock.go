// Package lock provides the single-flight guard around generation runs.
package lock

import (
	"context"
	"errors"
	"time"
)

// ErrHeld is returned when another holder owns the key.
var ErrHeld = errors.New("lock already held")

// DefaultTTL bounds how long a crashed holder can block later runs.
const DefaultTTL = 5 * time.Minute

// Locker hands out exclusive, expiring leases on a key.
type Locker interface {
	Acquire(ctx context.Context, key string, ttl time.Duration) (*Lease, error)
}

// Lease is a held lock. Release is safe to call more than once.
type Lease struct {
	Key   string
	Token string

	release func(ctx context.Context) error
}

func (l *Lease) Release(ctx context.Context) error {
	if l == nil || l.release == nil {
		return nil
	}
	fn := l.release
	l.release = nil
	return fn(ctx)
}
