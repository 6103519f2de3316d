package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"livemenu-backend/internal/domain"
	"livemenu-backend/pkg/cache"
	"livemenu-backend/pkg/logger"
)

// CategoryKPIs counts records by status for one category.
type CategoryKPIs struct {
	Category string `json:"category"`
	Total    int    `json:"total"`
	Featured int    `json:"featured"`
	OnSale   int    `json:"onSale"`
	LowStock int    `json:"lowStock"`
	SoldOut  int    `json:"soldOut"`
}

type InventoryKPIs struct {
	Categories []CategoryKPIs `json:"categories"`
	Totals     CategoryKPIs   `json:"totals"`
	Degraded   []string       `json:"degraded"`
}

// StatsUsecase summarizes the live inventory for the staff console. Results
// are cached per inventory version, so any snapshot invalidates them.
type StatsUsecase struct {
	registry *domain.Registry
	store    *InventoryStore
	cache    cache.CacheService
}

func NewStatsUsecase(registry *domain.Registry, store *InventoryStore, cache cache.CacheService) *StatsUsecase {
	return &StatsUsecase{
		registry: registry,
		store:    store,
		cache:    cache,
	}
}

// GetInventoryKPIs counts every concrete category in definition order.
func (uc *StatsUsecase) GetInventoryKPIs(ctx context.Context) *InventoryKPIs {
	cacheKey := fmt.Sprintf("stats:kpis:%d", uc.store.Version())
	if val, found := uc.cache.Get(cacheKey); found {
		return val.(*InventoryKPIs)
	}

	inv := uc.store.Snapshot()
	out := &InventoryKPIs{Totals: CategoryKPIs{Category: domain.CategoryAllProducts}, Degraded: uc.store.Degraded()}
	for _, category := range uc.registry.AllCategories() {
		k := CategoryKPIs{Category: category}
		for _, r := range inv[category] {
			k.Total++
			if r.IsFeatured {
				k.Featured++
			}
			if r.IsOnSale {
				k.OnSale++
			}
			if r.IsLowStock && !r.IsSoldOut {
				k.LowStock++
			}
			if r.IsSoldOut {
				k.SoldOut++
			}
		}
		out.Categories = append(out.Categories, k)

		out.Totals.Total += k.Total
		out.Totals.Featured += k.Featured
		out.Totals.OnSale += k.OnSale
		out.Totals.LowStock += k.LowStock
		out.Totals.SoldOut += k.SoldOut
	}

	logger.WithContext(ctx).Debug().Int("records", out.Totals.Total).Msg("Inventory KPIs computed")
	uc.cache.Set(cacheKey, out, 10*time.Minute)
	return out
}

// GetLowStockRecords lists records flagged low stock that are still for sale.
func (uc *StatsUsecase) GetLowStockRecords(ctx context.Context, limit, offset int32) []domain.Record {
	return uc.page(uc.filter(func(r domain.Record) bool { return r.IsLowStock && !r.IsSoldOut }), limit, offset)
}

// GetSoldOutRecords lists records currently hidden from public detail.
func (uc *StatsUsecase) GetSoldOutRecords(ctx context.Context, limit, offset int32) []domain.Record {
	return uc.page(uc.filter(func(r domain.Record) bool { return r.IsSoldOut }), limit, offset)
}

// GetRecentlyUpdated lists records updated at or after since, newest first.
func (uc *StatsUsecase) GetRecentlyUpdated(ctx context.Context, since time.Time, limit int32) ([]domain.Record, error) {
	if since.After(time.Now()) {
		return nil, errors.New("since must not be in the future")
	}

	recs := uc.filter(func(r domain.Record) bool {
		return r.UpdatedAt != nil && !r.UpdatedAt.Before(since)
	})
	sort.SliceStable(recs, func(i, j int) bool {
		return recs[i].UpdatedAt.After(*recs[j].UpdatedAt)
	})
	return uc.page(recs, limit, 0), nil
}

func (uc *StatsUsecase) filter(pred func(domain.Record) bool) []domain.Record {
	out := []domain.Record{}
	for _, r := range uc.store.GetAll() {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}

func (uc *StatsUsecase) page(recs []domain.Record, limit, offset int32) []domain.Record {
	if limit < 1 {
		limit = 20
	}
	if offset < 0 {
		offset = 0
	}
	if int(offset) >= len(recs) {
		return []domain.Record{}
	}
	end := int(offset) + int(limit)
	if end > len(recs) {
		end = len(recs)
	}
	return recs[offset:end]
}
