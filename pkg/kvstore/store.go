package kvstore

import (
	"context"
	"errors"
)

// ErrNotFound is returned by Get when the key has no stored value.
var ErrNotFound = errors.New("kvstore: key not found")

// Store is the scoped key-value persistence used for history lists.
// Values are opaque strings; callers own the serialization format.
type Store interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string) error
	Del(ctx context.Context, key string) error
}
