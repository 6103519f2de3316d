package domain

import "context"

// Snapshot is the complete current content of one collection, or an error.
// Documents is keyed by document id.
type Snapshot struct {
	Path      string
	Documents map[string]Document
	Err       error
}

// Subscription is a live feed registration.
type Subscription interface {
	Unsubscribe()
}

// SnapshotSource delivers full-collection snapshots for a path. Deliveries for
// one path are ordered; errors do not end the feed.
type SnapshotSource interface {
	Subscribe(ctx context.Context, path string, fn func(Snapshot)) (Subscription, error)
}

// DocumentWriter issues create/update/delete against the document store.
type DocumentWriter interface {
	SetRecord(ctx context.Context, path, id string, data Document) error
	DeleteRecord(ctx context.Context, path, id string) error
}

// DocumentStore is a store that both feeds and accepts writes.
type DocumentStore interface {
	SnapshotSource
	DocumentWriter
}
