package pgrepo

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"livemenu-backend/internal/domain"
	"livemenu-backend/pkg/logger"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// DocumentStore implements domain.DocumentStore on Postgres. A single
// connection LISTENs on the notify channel; each notification re-reads the
// named collection and hands the full snapshot to its subscribers.
type DocumentStore struct {
	*documentRepository

	channel string
	retry   time.Duration

	mu    sync.Mutex
	subs  map[string]map[uint64]func(domain.Snapshot)
	locks map[string]*sync.Mutex
	next  uint64

	startOnce sync.Once
	cancel    context.CancelFunc
	wg        sync.WaitGroup
}

func NewDocumentStore(db *pgxpool.Pool, channel string, retry time.Duration) *DocumentStore {
	return &DocumentStore{
		documentRepository: newDocumentRepository(db, channel),
		channel:            channel,
		retry:              retry,
		subs:               make(map[string]map[uint64]func(domain.Snapshot)),
		locks:              make(map[string]*sync.Mutex),
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

// Subscribe registers fn, starts the listener on first use, and delivers the
// current collection before returning.
func (s *DocumentStore) Subscribe(ctx context.Context, path string, fn func(domain.Snapshot)) (domain.Subscription, error) {
	s.startOnce.Do(func() {
		listenCtx, cancel := context.WithCancel(context.Background())
		s.cancel = cancel
		s.wg.Add(1)
		go s.listen(listenCtx)
	})

	s.mu.Lock()
	s.next++
	id := s.next
	if s.subs[path] == nil {
		s.subs[path] = make(map[uint64]func(domain.Snapshot))
	}
	s.subs[path][id] = fn
	s.mu.Unlock()

	s.deliver(ctx, path, []func(domain.Snapshot){fn})
	return &subscription{store: s, path: path, id: id}, nil
}

// Close stops the listener. Subscriptions receive nothing afterwards.
func (s *DocumentStore) Close() {
	if s.cancel != nil {
		s.cancel()
	}
	s.wg.Wait()
}

func (s *DocumentStore) listen(ctx context.Context) {
	defer s.wg.Done()
	for {
		err := s.listenOnce(ctx)
		if ctx.Err() != nil {
			return
		}
		logger.Error().Err(err).Str("channel", s.channel).Msg("Document listener disconnected")
		s.failAll(err)

		select {
		case <-time.After(s.retry):
		case <-ctx.Done():
			return
		}
	}
}

func (s *DocumentStore) listenOnce(ctx context.Context) error {
	c, err := s.db.Acquire(ctx)
	if err != nil {
		return fmt.Errorf("acquire listener connection: %w", err)
	}
	defer c.Release()

	if _, err := c.Exec(ctx, "LISTEN "+pgx.Identifier{s.channel}.Sanitize()); err != nil {
		return fmt.Errorf("listen %s: %w", s.channel, err)
	}

	// Changes may have been missed while disconnected.
	for _, path := range s.paths() {
		s.deliver(ctx, path, s.subscribers(path))
	}

	for {
		n, err := c.Conn().WaitForNotification(ctx)
		if err != nil {
			return err
		}
		if fns := s.subscribers(n.Payload); len(fns) > 0 {
			s.deliver(ctx, n.Payload, fns)
		}
	}
}

// deliver loads the collection and calls fns. Deliveries for one path are
// serialized so subscribers never see an older snapshot after a newer one.
func (s *DocumentStore) deliver(ctx context.Context, path string, fns []func(domain.Snapshot)) {
	lock := s.pathLock(path)
	lock.Lock()
	defer lock.Unlock()

	snap := domain.Snapshot{Path: path}
	docs, err := s.LoadCollection(ctx, path)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		snap.Err = err
	} else {
		snap.Documents = docs
	}
	for _, fn := range fns {
		fn(snap)
	}
}

func (s *DocumentStore) failAll(err error) {
	for _, path := range s.paths() {
		snap := domain.Snapshot{Path: path, Err: err}
		lock := s.pathLock(path)
		lock.Lock()
		for _, fn := range s.subscribers(path) {
			fn(snap)
		}
		lock.Unlock()
	}
}

func (s *DocumentStore) pathLock(path string) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[path]
	if !ok {
		l = &sync.Mutex{}
		s.locks[path] = l
	}
	return l
}

func (s *DocumentStore) subscribers(path string) []func(domain.Snapshot) {
	s.mu.Lock()
	defer s.mu.Unlock()
	fns := make([]func(domain.Snapshot), 0, len(s.subs[path]))
	for _, fn := range s.subs[path] {
		fns = append(fns, fn)
	}
	return fns
}

func (s *DocumentStore) paths() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.subs))
	for p, fns := range s.subs {
		if len(fns) > 0 {
			out = append(out, p)
		}
	}
	return out
}
