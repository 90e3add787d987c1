// Package store keeps an ordered in-memory collection of records in lockstep
// with a durable slot.
package store

import (
	"encoding/json"
	"log"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
)

// Entity is a record addressed by a caller-assigned unique id.
type Entity interface {
	RecordID() string
}

// Attachment carries the identity generated for a sub-entity at the moment it
// is attached to its parent.
type Attachment struct {
	ID string
	At time.Time
}

type Option[T Entity] func(*RecordStore[T])

func WithLogger[T Entity](logger *log.Logger) Option[T] {
	return func(store *RecordStore[T]) {
		if logger != nil {
			store.logger = logger
		}
	}
}

// WithAfterLoad registers a hook applied to every decoded record, e.g. to move
// date fields into a location or to rewrite legacy values.
func WithAfterLoad[T Entity](hook func(*T)) Option[T] {
	return func(store *RecordStore[T]) {
		store.afterLoad = hook
	}
}

func WithIDGenerator[T Entity](generate func() string) Option[T] {
	return func(store *RecordStore[T]) {
		if generate != nil {
			store.newID = generate
		}
	}
}

func WithClock[T Entity](now func() time.Time) Option[T] {
	return func(store *RecordStore[T]) {
		if now != nil {
			store.now = now
		}
	}
}

// WithPersistErrorHandler is notified after a failed slot write. The failure
// is still swallowed.
func WithPersistErrorHandler[T Entity](handler func(key string, err error)) Option[T] {
	return func(store *RecordStore[T]) {
		store.onPersistError = handler
	}
}

// WithSeed provides the records used when the slot holds no value yet. Seeds
// are not written until the first mutation.
func WithSeed[T Entity](seed func() []T) Option[T] {
	return func(store *RecordStore[T]) {
		store.seed = seed
	}
}

// WithFallbackKey names a slot read when the store's own key holds no value,
// e.g. a collection written under an older shared key. The fallback is never
// written; the first mutation persists under the store's key.
func WithFallbackKey[T Entity](key string) Option[T] {
	return func(store *RecordStore[T]) {
		store.fallbackKey = key
	}
}

type RecordStore[T Entity] struct {
	mu             sync.Mutex
	slot           Slot
	key            string
	records        []T
	logger         *log.Logger
	afterLoad      func(*T)
	newID          func() string
	now            func() time.Time
	onPersistError func(key string, err error)
	seed           func() []T
	fallbackKey    string
}

// New builds a store and loads its collection from the slot. A missing or
// undecodable value yields an empty collection.
func New[T Entity](slot Slot, key string, opts ...Option[T]) *RecordStore[T] {
	store := &RecordStore[T]{
		slot:   slot,
		key:    key,
		logger: log.Default(),
		newID:  uuid.NewString,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(store)
	}
	store.records = store.load()
	return store
}

func (store *RecordStore[T]) Key() string {
	return store.key
}

// Reload replaces the in-memory collection with the slot's current value. The
// read and the swap happen under the store lock so a concurrent mutation is
// never overwritten by an older snapshot.
func (store *RecordStore[T]) Reload() {
	store.mu.Lock()
	defer store.mu.Unlock()
	store.records = store.load()
}

func (store *RecordStore[T]) load() []T {
	raw, found, err := store.slot.Get(store.key)
	if err != nil {
		store.logger.Printf("read slot %s: %v", store.key, err)
		return []T{}
	}
	if !found && store.fallbackKey != "" {
		raw, found, err = store.slot.Get(store.fallbackKey)
		if err != nil {
			store.logger.Printf("read slot %s: %v", store.fallbackKey, err)
			found = false
		}
	}
	if !found {
		if store.seed != nil {
			return slices.Clone(store.seed())
		}
		return []T{}
	}

	records := make([]T, 0)
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		store.logger.Printf("parse slot %s: %v", store.key, err)
		return []T{}
	}
	if records == nil {
		records = []T{}
	}
	if store.afterLoad != nil {
		for index := range records {
			store.afterLoad(&records[index])
		}
	}
	return records
}

// All returns a copy of the collection in stored order. Records implementing
// Clone() T are deep-copied so callers never share pointers with the store.
func (store *RecordStore[T]) All() []T {
	store.mu.Lock()
	defer store.mu.Unlock()
	snapshot := make([]T, len(store.records))
	for index, record := range store.records {
		snapshot[index] = cloneRecord(record)
	}
	return snapshot
}

func (store *RecordStore[T]) Len() int {
	store.mu.Lock()
	defer store.mu.Unlock()
	return len(store.records)
}

func (store *RecordStore[T]) Find(id string) (T, bool) {
	store.mu.Lock()
	defer store.mu.Unlock()
	index := store.indexOf(id)
	if index < 0 {
		var zero T
		return zero, false
	}
	return cloneRecord(store.records[index]), true
}

func (store *RecordStore[T]) Add(record T) {
	store.mu.Lock()
	defer store.mu.Unlock()
	next := make([]T, 0, len(store.records)+1)
	next = append(next, store.records...)
	next = append(next, cloneRecord(record))
	store.commit(next)
}

// Update applies mutate to a copy of the matching record. It reports whether
// a record matched; the collection is persisted either way.
func (store *RecordStore[T]) Update(id string, mutate func(*T)) bool {
	store.mu.Lock()
	defer store.mu.Unlock()
	next := slices.Clone(store.records)
	index := store.indexOf(id)
	if index >= 0 {
		mutate(&next[index])
	}
	store.commit(next)
	return index >= 0
}

func (store *RecordStore[T]) Replace(id string, record T) bool {
	return store.Update(id, func(current *T) {
		*current = record
	})
}

func (store *RecordStore[T]) Delete(id string) bool {
	store.mu.Lock()
	defer store.mu.Unlock()
	index := store.indexOf(id)
	next := make([]T, 0, len(store.records))
	for position, record := range store.records {
		if position == index {
			continue
		}
		next = append(next, record)
	}
	store.commit(next)
	return index >= 0
}

// Toggle flips the boolean selected by field on the matching record.
func (store *RecordStore[T]) Toggle(id string, field func(*T) *bool) bool {
	return store.Update(id, func(record *T) {
		flag := field(record)
		*flag = !*flag
	})
}

// Attach generates a fresh id and timestamp and hands them to attach together
// with the parent record. The zero Attachment is returned when no parent
// matches.
func (store *RecordStore[T]) Attach(parentID string, attach func(*T, Attachment)) (Attachment, bool) {
	attachment := Attachment{ID: store.newID(), At: store.now()}
	if !store.Update(parentID, func(parent *T) {
		attach(parent, attachment)
	}) {
		return Attachment{}, false
	}
	return attachment, true
}

func cloneRecord[T Entity](record T) T {
	if cloner, ok := any(record).(interface{ Clone() T }); ok {
		return cloner.Clone()
	}
	return record
}

func (store *RecordStore[T]) indexOf(id string) int {
	for index, record := range store.records {
		if record.RecordID() == id {
			return index
		}
	}
	return -1
}

// commit swaps in the new collection and writes it to the slot. Memory stays
// authoritative if the write fails.
func (store *RecordStore[T]) commit(next []T) {
	store.records = next

	encoded, err := json.Marshal(next)
	if err == nil {
		err = store.slot.Set(store.key, string(encoded))
	}
	if err != nil {
		store.logger.Printf("persist slot %s: %v", store.key, err)
		if store.onPersistError != nil {
			store.onPersistError(store.key, err)
		}
	}
}
