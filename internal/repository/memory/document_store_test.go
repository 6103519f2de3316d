package memory

import (
	"context"
	"errors"
	"testing"

	"livemenu-backend/internal/domain"

	"github.com/google/go-cmp/cmp"
)

const path = "artifacts/test/public/data/Flower"

func TestSubscribeDeliversCurrentContent(t *testing.T) {
	ctx := context.Background()
	s := NewDocumentStore()
	if err := s.SetRecord(ctx, path, "a", domain.Document{"name": "Apple Fritter"}); err != nil {
		t.Fatalf("SetRecord() = %v", err)
	}

	var got []domain.Snapshot
	sub, err := s.Subscribe(ctx, path, func(snap domain.Snapshot) { got = append(got, snap) })
	if err != nil {
		t.Fatalf("Subscribe() = %v", err)
	}
	defer sub.Unsubscribe()

	want := []domain.Snapshot{{
		Path:      path,
		Documents: map[string]domain.Document{"a": {"name": "Apple Fritter"}},
	}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("snapshots mismatch (-want +got):\n%s", diff)
	}
}

func TestWritesPublishFullSnapshots(t *testing.T) {
	ctx := context.Background()
	s := NewDocumentStore()

	var sizes []int
	sub, _ := s.Subscribe(ctx, path, func(snap domain.Snapshot) { sizes = append(sizes, len(snap.Documents)) })

	_ = s.SetRecord(ctx, path, "a", domain.Document{"name": "A"})
	_ = s.SetRecord(ctx, path, "b", domain.Document{"name": "B"})
	_ = s.SetRecord(ctx, path, "a", domain.Document{"name": "A2"})
	_ = s.DeleteRecord(ctx, path, "b")
	_ = s.SetRecord(ctx, "artifacts/test/public/data/Edibles", "x", domain.Document{"name": "X"})

	sub.Unsubscribe()
	_ = s.SetRecord(ctx, path, "c", domain.Document{"name": "C"})

	if diff := cmp.Diff([]int{0, 1, 2, 2, 1}, sizes); diff != "" {
		t.Errorf("snapshot sizes mismatch (-want +got):\n%s", diff)
	}
}

func TestFailKeepsSubscription(t *testing.T) {
	ctx := context.Background()
	s := NewDocumentStore()
	boom := errors.New("permission denied")

	var errs, snaps int
	sub, _ := s.Subscribe(ctx, path, func(snap domain.Snapshot) {
		if snap.Err != nil {
			errs++
			return
		}
		snaps++
	})
	defer sub.Unsubscribe()

	s.Fail(path, boom)
	_ = s.SetRecord(ctx, path, "a", domain.Document{"name": "A"})

	if errs != 1 || snaps != 2 {
		t.Errorf("errs = %d, snaps = %d; want 1, 2", errs, snaps)
	}
}

func TestStoredDocumentsAreCopied(t *testing.T) {
	ctx := context.Background()
	s := NewDocumentStore()
	doc := domain.Document{"name": "A"}
	_ = s.SetRecord(ctx, path, "a", doc)
	doc["name"] = "mutated"

	var got string
	sub, _ := s.Subscribe(ctx, path, func(snap domain.Snapshot) { got, _ = snap.Documents["a"]["name"].(string) })
	defer sub.Unsubscribe()

	if got != "A" {
		t.Errorf("name = %q, want A", got)
	}
}
