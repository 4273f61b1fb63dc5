package ports

import "context"

// LoginThrottle tracks failed login attempts per email so that repeated
// guessing can be slowed down. Implementations must treat a missing counter
// as "not blocked".
type LoginThrottle interface {
	Blocked(ctx context.Context, email string) (bool, error)
	RecordFailure(ctx context.Context, email string) error
	Reset(ctx context.Context, email string) error
}
