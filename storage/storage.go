package storage

import (
	"context"
	"errors"
	"time"
)

var (
	ErrNotFound     = errors.New("key not found")
	ErrEncodeFailed = errors.New("failed to encode value")
	ErrDecodeFailed = errors.New("failed to decode value")
)

// Storage is an expiring key-value store. TTL is advisory for List but
// strict for Get: an entry past its TTL must never be returned.
//
// GetDel is the atomic read-and-delete used for consume-once semantics;
// two concurrent GetDel calls on the same key observe the value at most
// once between them.
type Storage interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	GetDel(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) (bool, error)
	List(ctx context.Context, prefix string) ([]string, error)
}
