package storage

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrNotFound      = errors.New("key not found")
	ErrQuotaExceeded = errors.New("storage quota exceeded")
)

//go:generate mockgen -source=$GOFILE -destination=medium_mock.go -package=storage

// Medium is a durable, string keyed byte store. It has no notion of
// namespaces or value types, both live in the store package.
type Medium interface {
	// Get returns ErrNotFound for a missing key.
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	// Delete of a missing key is not an error.
	Delete(ctx context.Context, key string) error
	// Keys lists every key starting with prefix, in no particular order.
	Keys(ctx context.Context, prefix string) ([]string, error)
	Close() error
}

func checkQuota(key string, value []byte, maxValueBytes int) error {
	if maxValueBytes > 0 && len(value) > maxValueBytes {
		return fmt.Errorf("set %s (%d bytes, max %d): %w", key, len(value), maxValueBytes, ErrQuotaExceeded)
	}
	return nil
}
