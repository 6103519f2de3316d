package usecase

import (
	"sort"
	"strings"
	"time"

	"livemenu-backend/internal/domain"
	"livemenu-backend/pkg/utils"
)

// QueryPipeline derives the ordered result list for a category and filter
// state. It holds no mutable state; Run is safe for concurrent use.
type QueryPipeline struct {
	registry *domain.Registry
	admin    bool
}

// NewQueryPipeline builds a pipeline. Non-admin pipelines strip admin-only
// fields before searching so staff notes never leak into public results.
func NewQueryPipeline(registry *domain.Registry, admin bool) *QueryPipeline {
	return &QueryPipeline{registry: registry, admin: admin}
}

func (q *QueryPipeline) Registry() *domain.Registry { return q.registry }

func (q *QueryPipeline) Run(inv Inventory, category string, f domain.FilterState) []domain.Record {
	return q.refine(q.materialize(inv, category), category, f)
}

// RunCollection runs the same filters and sort over the records stored under
// category only. Specials yields its native records, sold-out included, and
// never pulls in promoted items from other categories.
func (q *QueryPipeline) RunCollection(inv Inventory, category string, f domain.FilterState) []domain.Record {
	var items []domain.Record
	for _, r := range sortedRecords(inv[category]) {
		if !q.admin {
			r = r.Public()
		}
		items = append(items, r)
	}
	return q.refine(items, category, f)
}

func (q *QueryPipeline) refine(items []domain.Record, category string, f domain.FilterState) []domain.Record {
	// 2. Search over every string field
	if query := strings.ToLower(f.SearchQuery); query != "" {
		items = keep(items, func(r domain.Record) bool {
			for _, v := range r.StringValues() {
				if strings.Contains(strings.ToLower(v), query) {
					return true
				}
			}
			return false
		})
	}

	// 3. Type filter
	if f.TypeFilter != "" && f.TypeFilter != domain.FilterAll {
		items = keep(items, func(r domain.Record) bool {
			return r.Fields["type"] == f.TypeFilter
		})
	}

	// 4. Category facets
	for _, rule := range domain.FacetRules(category) {
		want := f.Facets.Get(rule.Facet)
		if want == domain.FilterAll || want == "" {
			continue
		}
		items = keep(items, func(r domain.Record) bool {
			got := r.Fields[rule.Field]
			if rule.Contains {
				return got != "" && strings.Contains(got, want)
			}
			return got == want
		})
	}

	// 5. Sort
	q.order(items, category, f)
	return items
}

func (q *QueryPipeline) materialize(inv Inventory, category string) []domain.Record {
	var out []domain.Record
	add := func(r domain.Record) {
		if !q.admin {
			r = r.Public()
		}
		out = append(out, r)
	}

	switch category {
	case domain.CategoryAllProducts:
		for _, name := range q.registry.AllCategories() {
			for _, r := range sortedRecords(inv[name]) {
				add(r)
			}
		}
	case domain.CategorySpecials:
		seen := make(map[domain.Key]bool)
		for _, name := range q.registry.AllCategories() {
			for _, r := range sortedRecords(inv[name]) {
				if r.IsSoldOut || seen[r.Key()] {
					continue
				}
				native := name == domain.CategorySpecials
				promoted := r.Category != domain.CategorySpecials && (r.IsFeatured || r.IsOnSale)
				if native || promoted {
					seen[r.Key()] = true
					add(r)
				}
			}
		}
	default:
		for _, r := range sortedRecords(inv[category]) {
			add(r)
		}
	}
	return out
}

func (q *QueryPipeline) order(items []domain.Record, category string, f domain.FilterState) {
	key := q.registry.ResolveSortKey(category, f.SortBy)
	natural := utils.NaturalComparer()
	byPrice := q.registry.IsPriceKey(category, key)
	aggregate := domain.IsAggregate(category)

	value := func(r domain.Record) string {
		if byPrice && aggregate && key == domain.SortKeyPrice {
			if v := r.Fields[q.registry.PrimaryPriceField(r.Category)]; v != "" {
				return v
			}
			return r.Fields[domain.SortKeyPrice]
		}
		return r.Field(key)
	}

	primary := func(a, b domain.Record) int {
		switch {
		case key == domain.SortKeyCreatedAt:
			return compareTimes(a.CreatedAt, b.CreatedAt)
		case key == domain.SortKeyUpdatedAt:
			return compareTimes(a.UpdatedAt, b.UpdatedAt)
		case byPrice:
			return utils.ComparePrices(value(a), value(b))
		}
		return natural(value(a), value(b))
	}

	sort.SliceStable(items, func(i, j int) bool {
		return compareRecords(items[i], items[j], f.SortDirection, primary) < 0
	})
}

// compareRecords puts featured first and sold-out last, independent of
// direction, then applies the primary key.
func compareRecords(a, b domain.Record, dir domain.SortDirection, primary func(a, b domain.Record) int) int {
	if a.IsFeatured != b.IsFeatured {
		if a.IsFeatured {
			return -1
		}
		return 1
	}
	if a.IsSoldOut != b.IsSoldOut {
		if a.IsSoldOut {
			return 1
		}
		return -1
	}
	c := primary(a, b)
	if dir == domain.SortDesc {
		return -c
	}
	return c
}

func compareTimes(a, b *time.Time) int {
	var ta, tb time.Time
	if a != nil {
		ta = *a
	}
	if b != nil {
		tb = *b
	}
	return ta.Compare(tb)
}

func keep(items []domain.Record, pred func(domain.Record) bool) []domain.Record {
	out := items[:0]
	for _, r := range items {
		if pred(r) {
			out = append(out, r)
		}
	}
	return out
}
