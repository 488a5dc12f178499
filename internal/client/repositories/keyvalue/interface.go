// Package keyvalue is the durable on-device key-value storage used for the
// persisted session (keys "token" and "user").
package keyvalue

import "context"

// Repository is durable key-value storage. Get returns (nil, nil) when the
// key is absent.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
