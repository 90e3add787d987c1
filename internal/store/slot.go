package store

import "sync"

// Slot is a durable named key-value location. Values are whole serialized
// collections; there is no partial update.
type Slot interface {
	Get(key string) (string, bool, error)
	Set(key string, value string) error
}

// MemorySlot keeps values in process memory. It is used by tests and by the
// "memory" storage backend.
type MemorySlot struct {
	mu     sync.RWMutex
	values map[string]string
}

func NewMemorySlot() *MemorySlot {
	return &MemorySlot{values: map[string]string{}}
}

func (slot *MemorySlot) Get(key string) (string, bool, error) {
	slot.mu.RLock()
	defer slot.mu.RUnlock()
	value, ok := slot.values[key]
	return value, ok, nil
}

func (slot *MemorySlot) Set(key string, value string) error {
	slot.mu.Lock()
	defer slot.mu.Unlock()
	slot.values[key] = value
	return nil
}
