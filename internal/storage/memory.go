package storage

import (
	"context"
	"strings"
	"sync"
)

var _ Medium = (*MemoryMedium)(nil)

// MemoryMedium keeps everything in process memory. Used in tests and
// for throwaway sessions (--backend memory).
type MemoryMedium struct {
	mutex         sync.Mutex
	values        map[string][]byte
	maxValueBytes int
}

func NewMemoryMedium(maxValueBytes int) *MemoryMedium {
	return &MemoryMedium{
		values:        make(map[string][]byte),
		maxValueBytes: maxValueBytes,
	}
}

func (m *MemoryMedium) Get(_ context.Context, key string) ([]byte, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	val, ok := m.values[key]
	if !ok {
		return nil, ErrNotFound
	}
	out := make([]byte, len(val))
	copy(out, val)
	return out, nil
}

func (m *MemoryMedium) Set(_ context.Context, key string, value []byte) error {
	if err := checkQuota(key, value, m.maxValueBytes); err != nil {
		return err
	}

	m.mutex.Lock()
	defer m.mutex.Unlock()

	stored := make([]byte, len(value))
	copy(stored, value)
	m.values[key] = stored
	return nil
}

func (m *MemoryMedium) Delete(_ context.Context, key string) error {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	delete(m.values, key)
	return nil
}

func (m *MemoryMedium) Keys(_ context.Context, prefix string) ([]string, error) {
	m.mutex.Lock()
	defer m.mutex.Unlock()

	keys := make([]string, 0, len(m.values))
	for k := range m.values {
		if strings.HasPrefix(k, prefix) {
			keys = append(keys, k)
		}
	}
	return keys, nil
}

func (m *MemoryMedium) Close() error {
	return nil
}
