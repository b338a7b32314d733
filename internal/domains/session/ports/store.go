package ports

import (
	"context"
	"errors"
)

// Persisted keys. The session service is the only writer of KeyToken and KeyUser.
const (
	KeyToken    = "token"
	KeyUser     = "user"
	KeyDemoMode = "demoMode"
)

var ErrStoreUnavailable = errors.New("session store unavailable")

// Store abstracts the device-local key/value storage backing the session.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
}
