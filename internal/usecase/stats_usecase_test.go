package usecase

import (
	"context"
	"testing"
	"time"

	"livemenu-backend/internal/domain"
	"livemenu-backend/internal/infrastructure/cache"

	"github.com/google/go-cmp/cmp"
)

func newTestStats(t *testing.T) (*StatsUsecase, *InventoryStore) {
	t.Helper()
	store := NewInventoryStore()
	store.Replace(domain.CategoryFlower, map[string]domain.Document{
		"a": {"name": "A", "isFeatured": true, "isLowStock": true},
		"b": {"name": "B", "isSoldOut": true, "isLowStock": true, "updatedAt": "2025-03-01T00:00:00Z"},
		"c": {"name": "C", "isOnSale": true, "updatedAt": "2025-05-01T00:00:00Z"},
	})
	store.Replace(domain.CategoryEdibles, map[string]domain.Document{
		"e": {"name": "E", "isLowStock": true, "updatedAt": "2024-01-01T00:00:00Z"},
	})
	return NewStatsUsecase(domain.NewRegistry(), store, cache.NewMemoryCache(time.Hour, time.Hour)), store
}

func TestInventoryKPIs(t *testing.T) {
	uc, store := newTestStats(t)
	ctx := context.Background()

	kpis := uc.GetInventoryKPIs(ctx)
	if diff := cmp.Diff(CategoryKPIs{Category: domain.CategoryFlower, Total: 3, Featured: 1, OnSale: 1, LowStock: 1, SoldOut: 1}, kpis.Categories[0]); diff != "" {
		t.Errorf("Flower KPIs mismatch (-want +got):\n%s", diff)
	}
	if kpis.Totals.Total != 4 || kpis.Totals.LowStock != 2 || len(kpis.Categories) != 8 {
		t.Errorf("totals = %+v (%d categories)", kpis.Totals, len(kpis.Categories))
	}

	store.Replace(domain.CategoryEdibles, map[string]domain.Document{})
	if got := uc.GetInventoryKPIs(ctx).Totals.Total; got != 3 {
		t.Errorf("Total after snapshot = %d, want 3", got)
	}
}

func TestStatsLists(t *testing.T) {
	uc, _ := newTestStats(t)
	ctx := context.Background()

	keys := func(recs []domain.Record) []string {
		var out []string
		for _, r := range recs {
			out = append(out, r.ID)
		}
		return out
	}

	if diff := cmp.Diff([]string{"e", "a"}, keys(uc.GetLowStockRecords(ctx, 10, 0))); diff != "" {
		t.Errorf("low stock mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"a"}, keys(uc.GetLowStockRecords(ctx, 10, 1))); diff != "" {
		t.Errorf("low stock offset mismatch (-want +got):\n%s", diff)
	}
	if got := uc.GetLowStockRecords(ctx, 10, 5); len(got) != 0 {
		t.Errorf("offset past end = %v", got)
	}
	if diff := cmp.Diff([]string{"b"}, keys(uc.GetSoldOutRecords(ctx, 0, 0))); diff != "" {
		t.Errorf("sold out mismatch (-want +got):\n%s", diff)
	}

	recent, err := uc.GetRecentlyUpdated(ctx, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), 10)
	if err != nil {
		t.Fatalf("GetRecentlyUpdated() = %v", err)
	}
	if diff := cmp.Diff([]string{"c", "b"}, keys(recent)); diff != "" {
		t.Errorf("recent mismatch (-want +got):\n%s", diff)
	}
	if _, err := uc.GetRecentlyUpdated(ctx, time.Now().Add(time.Hour), 10); err == nil {
		t.Error("GetRecentlyUpdated(future) = nil error")
	}
}
