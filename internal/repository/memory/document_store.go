package memory

import (
	"context"
	"sync"

	"livemenu-backend/internal/domain"
)

// DocumentStore is an in-process document store with live snapshots. It
// backs mock mode and tests.
type DocumentStore struct {
	mu          sync.Mutex
	collections map[string]map[string]domain.Document
	subs        map[string]map[uint64]func(domain.Snapshot)
	next        uint64

	// deliverMu keeps deliveries ordered per store.
	deliverMu sync.Mutex
}

func NewDocumentStore() *DocumentStore {
	return &DocumentStore{
		collections: make(map[string]map[string]domain.Document),
		subs:        make(map[string]map[uint64]func(domain.Snapshot)),
	}
}

type subscription struct {
	store *DocumentStore
	path  string
	id    uint64
	once  sync.Once
}

func (s *subscription) Unsubscribe() {
	s.once.Do(func() {
		s.store.mu.Lock()
		defer s.store.mu.Unlock()
		delete(s.store.subs[s.path], s.id)
	})
}

// Subscribe registers fn and delivers the current content immediately.
func (s *DocumentStore) Subscribe(ctx context.Context, path string, fn func(domain.Snapshot)) (domain.Subscription, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	s.mu.Lock()
	s.next++
	id := s.next
	if s.subs[path] == nil {
		s.subs[path] = make(map[uint64]func(domain.Snapshot))
	}
	s.subs[path][id] = fn
	snap := s.snapshotLocked(path)
	s.deliverMu.Lock()
	s.mu.Unlock()

	fn(snap)
	s.deliverMu.Unlock()

	return &subscription{store: s, path: path, id: id}, nil
}

func (s *DocumentStore) SetRecord(ctx context.Context, path, id string, data domain.Document) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	if s.collections[path] == nil {
		s.collections[path] = make(map[string]domain.Document)
	}
	s.collections[path][id] = data.Clone()
	s.publishLocked(path)
	return nil
}

// DeleteRecord removes a document. Deleting a missing document succeeds.
func (s *DocumentStore) DeleteRecord(ctx context.Context, path, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	s.mu.Lock()
	delete(s.collections[path], id)
	s.publishLocked(path)
	return nil
}

// Fail delivers an error to the subscribers of path without ending their
// subscriptions.
func (s *DocumentStore) Fail(path string, err error) {
	s.mu.Lock()
	fns := s.subscribersLocked(path)
	s.deliverMu.Lock()
	s.mu.Unlock()

	for _, fn := range fns {
		fn(domain.Snapshot{Path: path, Err: err})
	}
	s.deliverMu.Unlock()
}

// publishLocked must be called with mu held; it releases mu.
func (s *DocumentStore) publishLocked(path string) {
	snap := s.snapshotLocked(path)
	fns := s.subscribersLocked(path)
	s.deliverMu.Lock()
	s.mu.Unlock()

	for _, fn := range fns {
		fn(snap)
	}
	s.deliverMu.Unlock()
}

func (s *DocumentStore) snapshotLocked(path string) domain.Snapshot {
	docs := make(map[string]domain.Document, len(s.collections[path]))
	for id, doc := range s.collections[path] {
		docs[id] = doc.Clone()
	}
	return domain.Snapshot{Path: path, Documents: docs}
}

func (s *DocumentStore) subscribersLocked(path string) []func(domain.Snapshot) {
	fns := make([]func(domain.Snapshot), 0, len(s.subs[path]))
	for _, fn := range s.subs[path] {
		fns = append(fns, fn)
	}
	return fns
}
