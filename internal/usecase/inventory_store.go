package usecase

import (
	"sort"
	"sync"

	"livemenu-backend/internal/domain"
)

// Inventory is a point-in-time view of the store: category -> id -> record.
// The per-category maps are never mutated after publication.
type Inventory map[string]map[string]domain.Record

// InventoryStore caches the latest snapshot of every category. Each Replace
// swaps in a freshly built map, so readers see either the old or the new
// category content, never a mix.
type InventoryStore struct {
	mu         sync.RWMutex
	categories Inventory
	errs       map[string]error
	version    uint64
}

func NewInventoryStore() *InventoryStore {
	return &InventoryStore{
		categories: make(Inventory),
		errs:       make(map[string]error),
	}
}

// Replace installs the full content of a category and clears its error.
func (s *InventoryStore) Replace(category string, docs map[string]domain.Document) int {
	records := make(map[string]domain.Record, len(docs))
	for id, doc := range docs {
		records[id] = domain.RecordFromDocument(category, id, doc)
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.categories[category] = records
	delete(s.errs, category)
	s.version++
	return len(records)
}

// Fail marks a category degraded. Its last good records stay in place.
func (s *InventoryStore) Fail(category string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.errs[category] = &domain.SubscriptionError{Category: category, Err: err}
	s.version++
}

// Version increases on every Replace and Fail.
func (s *InventoryStore) Version() uint64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.version
}

// Get returns the records of one category. The map must not be modified.
func (s *InventoryStore) Get(category string) map[string]domain.Record {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.categories[category]
}

// Lookup finds a single record.
func (s *InventoryStore) Lookup(category, id string) (domain.Record, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	rec, ok := s.categories[category][id]
	return rec, ok
}

// GetAll flattens every category, ordered by category then id.
func (s *InventoryStore) GetAll() []domain.Record {
	inv := s.Snapshot()

	names := make([]string, 0, len(inv))
	for name := range inv {
		names = append(names, name)
	}
	sort.Strings(names)

	var out []domain.Record
	for _, name := range names {
		out = append(out, sortedRecords(inv[name])...)
	}
	return out
}

// Snapshot copies the outer map so later Replace calls do not affect it.
func (s *InventoryStore) Snapshot() Inventory {
	inv, _ := s.VersionedSnapshot()
	return inv
}

// VersionedSnapshot returns a snapshot together with the version it was
// taken at, read under one lock.
func (s *InventoryStore) VersionedSnapshot() (Inventory, uint64) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make(Inventory, len(s.categories))
	for k, v := range s.categories {
		out[k] = v
	}
	return out, s.version
}

// Degraded lists categories whose last delivery was an error.
func (s *InventoryStore) Degraded() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]string, 0, len(s.errs))
	for k := range s.errs {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

// Err returns the current error for a category, if any.
func (s *InventoryStore) Err(category string) error {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.errs[category]
}

func sortedRecords(m map[string]domain.Record) []domain.Record {
	ids := make([]string, 0, len(m))
	for id := range m {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	out := make([]domain.Record, 0, len(ids))
	for _, id := range ids {
		out = append(out, m[id])
	}
	return out
}
