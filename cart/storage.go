package cart

import "sync"

// Storage persists one serialized cart blob per owner. Load returns
// (nil, nil) when nothing was saved for the owner yet.
type Storage interface {
	Load(owner string) ([]byte, error)
	Save(owner string, data []byte) error
}

// MemoryStorage keeps carts in process memory. Used in tests and as the
// fallback when no Redis address is configured.
type MemoryStorage struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewMemoryStorage() *MemoryStorage {
	return &MemoryStorage{blobs: make(map[string][]byte)}
}

func (m *MemoryStorage) Load(owner string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.blobs[owner], nil
}

func (m *MemoryStorage) Save(owner string, data []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	stored := make([]byte, len(data))
	copy(stored, data)
	m.blobs[owner] = stored
	return nil
}
