package store

import (
	"fmt"
	"sync"
)

// Registry hands out one RecordStore per scope, e.g. one message thread per
// user. Keys are built from a fmt template with a single %s verb.
type Registry[T Entity] struct {
	mu          sync.Mutex
	slot        Slot
	keyTemplate string
	opts        []Option[T]
	stores      map[string]*RecordStore[T]
}

func NewRegistry[T Entity](slot Slot, keyTemplate string, opts ...Option[T]) *Registry[T] {
	return &Registry[T]{
		slot:        slot,
		keyTemplate: keyTemplate,
		opts:        opts,
		stores:      map[string]*RecordStore[T]{},
	}
}

func (registry *Registry[T]) KeyFor(scope string) string {
	return fmt.Sprintf(registry.keyTemplate, scope)
}

func (registry *Registry[T]) For(scope string) *RecordStore[T] {
	registry.mu.Lock()
	defer registry.mu.Unlock()

	if existing, ok := registry.stores[scope]; ok {
		return existing
	}
	created := New(registry.slot, registry.KeyFor(scope), registry.opts...)
	registry.stores[scope] = created
	return created
}

// ReloadKey refreshes the already opened store bound to key, if any.
func (registry *Registry[T]) ReloadKey(key string) bool {
	registry.mu.Lock()
	var target *RecordStore[T]
	for _, candidate := range registry.stores {
		if candidate.Key() == key {
			target = candidate
			break
		}
	}
	registry.mu.Unlock()

	if target == nil {
		return false
	}
	target.Reload()
	return true
}
