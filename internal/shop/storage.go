package shop

import (
	"context"
	"sync"
)

// Storage persists the store's durable subset as one opaque record under the
// fixed StorageKey. Load reports ok=false when no record exists yet.
type Storage interface {
	Load(ctx context.Context) (raw []byte, ok bool, err error)
	Save(ctx context.Context, raw []byte) error
}

// MemStorage keeps the record in memory. Used by tests and as a throwaway
// backend when no durable path is configured.
type MemStorage struct {
	mu   sync.Mutex
	data []byte
	set  bool
}

func NewMemStorage() *MemStorage { return &MemStorage{} }

func (m *MemStorage) Load(ctx context.Context) ([]byte, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if !m.set {
		return nil, false, nil
	}
	out := make([]byte, len(m.data))
	copy(out, m.data)
	return out, true, nil
}

func (m *MemStorage) Save(ctx context.Context, raw []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.data = make([]byte, len(raw))
	copy(m.data, raw)
	m.set = true
	return nil
}
