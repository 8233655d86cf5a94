package repositories

import (
	"context"
	"encoding/json"
)

// KeyValueRepository is a single-slot-per-key local cache. Put always
// overwrites; values are raw JSON documents.
type KeyValueRepository interface {
	Get(ctx context.Context, key string) (json.RawMessage, error)
	Put(ctx context.Context, key string, value json.RawMessage) error
	Delete(ctx context.Context, key string) error
}
