package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"livemenu-backend/internal/domain"

	"github.com/google/go-cmp/cmp"
)

var staff = &domain.Identity{ID: "staff-1", Role: domain.RoleBudtender}

type failingWriter struct{ err error }

func (w failingWriter) SetRecord(context.Context, string, string, domain.Document) error { return w.err }
func (w failingWriter) DeleteRecord(context.Context, string, string) error               { return w.err }

func newTestMutation(env *testEnv, now time.Time) *MutationUsecase {
	uc := NewMutationUsecase(domain.NewRegistry(), env.docs, env.store, env.cfg)
	uc.now = func() time.Time { return now }
	uc.newID = func() string { return "new-id" }
	return uc
}

func TestSaveCreatesRecord(t *testing.T) {
	env := newTestEnv(t)
	now := time.Date(2025, 4, 20, 12, 0, 0, 0, time.UTC)
	uc := newTestMutation(env, now)

	rec, err := uc.Save(context.Background(), staff, domain.CategoryTinctures, "", SaveInput{
		Fields: map[string]string{
			"name":    "  Sleep Drops ",
			"brand":   "Union",
			"ratio":   "1:1",
			"price":   "25",
			"unknown": "dropped",
		},
		IsOnSale:   true,
		StaffNotes: "restock monthly",
	})
	if err != nil {
		t.Fatalf("Save() = %v", err)
	}

	want := &domain.Record{
		ID:         "new-id",
		Category:   domain.CategoryTinctures,
		IsOnSale:   true,
		StaffNotes: "restock monthly",
		CreatedAt:  &now,
		UpdatedAt:  &now,
		Fields:     map[string]string{"name": "Sleep Drops", "brand": "Union", "ratio": "1:1", "price": "$25"},
	}
	if diff := cmp.Diff(want, rec); diff != "" {
		t.Errorf("Save() mismatch (-want +got):\n%s", diff)
	}

	// The inventory only changes once the snapshot is applied.
	if _, ok := env.store.Lookup(domain.CategoryTinctures, "new-id"); ok {
		t.Error("inventory updated before the snapshot arrived")
	}
	env.menu.Drain()
	stored, ok := env.store.Lookup(domain.CategoryTinctures, "new-id")
	if !ok {
		t.Fatal("record missing after snapshot")
	}
	if diff := cmp.Diff(*want, stored); diff != "" {
		t.Errorf("stored mismatch (-want +got):\n%s", diff)
	}
}

func TestSaveUpdatePreservesCreatedAt(t *testing.T) {
	env := newTestEnv(t)
	created := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	env.put(t, domain.CategoryConcentrates, "c1", domain.Document{
		"name":      "Badder",
		"createdAt": created.Format(time.RFC3339),
	})

	now := created.Add(48 * time.Hour)
	uc := newTestMutation(env, now)
	rec, err := uc.Save(context.Background(), staff, domain.CategoryConcentrates, "c1", SaveInput{
		Fields: map[string]string{"name": "Badder", "brand": "Union", "format": "Live Rosin", "price": "$$40"},
	})
	if err != nil {
		t.Fatalf("Save() = %v", err)
	}
	if !rec.CreatedAt.Equal(created) || !rec.UpdatedAt.Equal(now) {
		t.Errorf("timestamps = %v / %v", rec.CreatedAt, rec.UpdatedAt)
	}
	if rec.ID != "c1" || rec.Fields["price"] != "$40" {
		t.Errorf("rec = %+v", rec)
	}
}

func TestSaveValidation(t *testing.T) {
	env := newTestEnv(t)
	uc := newTestMutation(env, time.Now())
	ctx := context.Background()

	tests := []struct {
		name   string
		fields map[string]string
		field  string
		reason string
	}{
		{"first missing required", map[string]string{"brand": "Union"}, "name", domain.ReasonRequired},
		{"blank counts as missing", map[string]string{"name": "X", "brand": "   "}, "brand", domain.ReasonRequired},
		{"select value not offered", map[string]string{"name": "X", "brand": "Y", "format": "Shatter", "price": "$1"}, "format", domain.ReasonNotAllowed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.Save(ctx, staff, domain.CategoryConcentrates, "", SaveInput{Fields: tt.fields})
			var verr *domain.ValidationError
			if !errors.As(err, &verr) {
				t.Fatalf("Save() = %v, want ValidationError", err)
			}
			if verr.Field != tt.field || verr.Reason != tt.reason {
				t.Errorf("ValidationError = %+v", verr)
			}
		})
	}

	env.menu.Drain()
	if got := len(env.store.Get(domain.CategoryConcentrates)); got != 0 {
		t.Errorf("validation failure wrote %d records", got)
	}
}

func TestSaveAuthorization(t *testing.T) {
	env := newTestEnv(t)
	uc := newTestMutation(env, time.Now())
	ctx := context.Background()
	in := SaveInput{Fields: map[string]string{"name": "X"}}

	if _, err := uc.Save(ctx, nil, domain.CategoryFlower, "", in); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("Save(anonymous) = %v", err)
	}
	if _, err := uc.Save(ctx, &domain.Identity{Role: "customer"}, domain.CategoryFlower, "", in); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("Save(customer) = %v", err)
	}
	if _, err := uc.Save(ctx, staff, domain.CategoryAllProducts, "", in); !errors.Is(err, domain.ErrUnknownCategory) {
		t.Errorf("Save(All Products) = %v", err)
	}
	valid := SaveInput{Fields: map[string]string{
		"name": "Gelato", "type": "Hybrid", "grower": "Union", "price_1g": "10", "price_35g": "30",
	}}
	if _, err := uc.Save(ctx, staff, domain.CategoryFlower, "missing", valid); !errors.Is(err, domain.ErrRecordNotFound) {
		t.Errorf("Save(missing) = %v", err)
	}
}

func TestDelete(t *testing.T) {
	env := newTestEnv(t)
	env.put(t, domain.CategoryEdibles, "e1", domain.Document{"name": "Gummies"})
	uc := newTestMutation(env, time.Now())
	ctx := context.Background()

	if err := uc.Delete(ctx, staff, domain.CategoryEdibles, "nope"); !errors.Is(err, domain.ErrRecordNotFound) {
		t.Errorf("Delete(missing) = %v", err)
	}
	if err := uc.Delete(ctx, nil, domain.CategoryEdibles, "e1"); !errors.Is(err, domain.ErrForbidden) {
		t.Errorf("Delete(anonymous) = %v", err)
	}
	if err := uc.Delete(ctx, staff, domain.CategoryEdibles, "e1"); err != nil {
		t.Fatalf("Delete() = %v", err)
	}
	env.menu.Drain()
	if _, ok := env.store.Lookup(domain.CategoryEdibles, "e1"); ok {
		t.Error("record still present after delete snapshot")
	}
}

func TestMutationWriterFailure(t *testing.T) {
	env := newTestEnv(t)
	env.put(t, domain.CategoryEdibles, "e1", domain.Document{"name": "Gummies"})
	boom := errors.New("unavailable")
	uc := NewMutationUsecase(domain.NewRegistry(), failingWriter{boom}, env.store, env.cfg)

	_, err := uc.Save(context.Background(), staff, domain.CategorySpecials, "", SaveInput{
		Fields: map[string]string{"name": "BOGO", "description": "Buy one", "price": "10"},
	})
	if !errors.Is(err, boom) {
		t.Errorf("Save() = %v, want writer error", err)
	}
	if err := uc.Delete(context.Background(), staff, domain.CategoryEdibles, "e1"); !errors.Is(err, boom) {
		t.Errorf("Delete() = %v, want writer error", err)
	}
	if _, ok := env.store.Lookup(domain.CategoryEdibles, "e1"); !ok {
		t.Error("failed delete touched the inventory")
	}
}
