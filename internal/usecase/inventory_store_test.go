package usecase

import (
	"errors"
	"testing"

	"livemenu-backend/internal/domain"

	"github.com/google/go-cmp/cmp"
)

func TestInventoryStoreReplace(t *testing.T) {
	s := NewInventoryStore()
	n := s.Replace(domain.CategoryFlower, map[string]domain.Document{
		"a": {"name": "Gelato", "isFeatured": true},
		"b": {"name": "Runtz", "category": "Edibles", "id": "spoofed"},
	})
	if n != 2 {
		t.Fatalf("Replace() = %d, want 2", n)
	}

	b, ok := s.Lookup(domain.CategoryFlower, "b")
	if !ok {
		t.Fatal("Lookup(b) missed")
	}
	want := domain.Record{ID: "b", Category: domain.CategoryFlower, Fields: map[string]string{"name": "Runtz"}}
	if diff := cmp.Diff(want, b); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}

	s.Replace(domain.CategoryFlower, map[string]domain.Document{"c": {"name": "Mimosa"}})
	if _, ok := s.Lookup(domain.CategoryFlower, "a"); ok {
		t.Error("Replace() kept a record missing from the new snapshot")
	}
	if got := len(s.Get(domain.CategoryFlower)); got != 1 {
		t.Errorf("Get() = %d records, want 1", got)
	}
}

func TestInventoryStoreSnapshotIsStable(t *testing.T) {
	s := NewInventoryStore()
	s.Replace(domain.CategoryFlower, map[string]domain.Document{"a": {"name": "A"}})
	snap := s.Snapshot()

	s.Replace(domain.CategoryFlower, map[string]domain.Document{})
	if got := len(snap[domain.CategoryFlower]); got != 1 {
		t.Errorf("snapshot changed after Replace: %d records", got)
	}
}

func TestInventoryStoreFailKeepsLastGood(t *testing.T) {
	s := NewInventoryStore()
	s.Replace(domain.CategoryFlower, map[string]domain.Document{"a": {"name": "A"}})
	s.Replace(domain.CategoryEdibles, map[string]domain.Document{"e": {"name": "E"}})
	v := s.Version()

	boom := errors.New("permission denied")
	s.Fail(domain.CategoryEdibles, boom)

	if s.Version() == v {
		t.Error("Fail() did not bump the version")
	}
	if _, ok := s.Lookup(domain.CategoryEdibles, "e"); !ok {
		t.Error("Fail() dropped last-good records")
	}
	if diff := cmp.Diff([]string{domain.CategoryEdibles}, s.Degraded()); diff != "" {
		t.Errorf("Degraded() mismatch (-want +got):\n%s", diff)
	}

	var subErr *domain.SubscriptionError
	if err := s.Err(domain.CategoryEdibles); !errors.As(err, &subErr) || !errors.Is(err, boom) {
		t.Errorf("Err() = %v", err)
	}
	if err := s.Err(domain.CategoryFlower); err != nil {
		t.Errorf("Err(Flower) = %v", err)
	}

	s.Replace(domain.CategoryEdibles, map[string]domain.Document{})
	if got := s.Degraded(); len(got) != 0 {
		t.Errorf("Degraded() after recovery = %v", got)
	}
}

func TestInventoryStoreGetAll(t *testing.T) {
	s := NewInventoryStore()
	s.Replace(domain.CategoryFlower, map[string]domain.Document{"b": {}, "a": {}})
	s.Replace(domain.CategoryEdibles, map[string]domain.Document{"c": {}})

	var got []domain.Key
	for _, r := range s.GetAll() {
		got = append(got, r.Key())
	}
	want := []domain.Key{
		{ID: "c", Category: domain.CategoryEdibles},
		{ID: "a", Category: domain.CategoryFlower},
		{ID: "b", Category: domain.CategoryFlower},
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("GetAll() mismatch (-want +got):\n%s", diff)
	}
}
