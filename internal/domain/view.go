package domain

import "fmt"

type ViewMode string

func ParseViewMode(v string) (ViewMode, error) {
	for _, m := range ViewModes {
		if string(m) == v {
			return m, nil
		}
	}
	return "", fmt.Errorf("%w: view mode %q", ErrInvalidFilter, v)
}

// ViewItem is a record as shown on a menu card.
type ViewItem struct {
	Record        Record   `json:"record"`
	Badges        []string `json:"badges"`
	CategoryLabel string   `json:"categoryLabel,omitempty"`
}

// MenuView is everything a renderer needs after a pipeline run.
type MenuView struct {
	Category     string          `json:"category"`
	Items        []ViewItem      `json:"items"`
	Total        int             `json:"total"`
	HasMore      bool            `json:"hasMore"`
	Page         int             `json:"page"`
	PageSize     int             `json:"pageSize"`
	Filters      FilterState     `json:"filters"`
	SortOptions  []SortOption    `json:"sortOptions"`
	Controls     []FilterControl `json:"controls"`
	EmptyMessage string          `json:"emptyMessage,omitempty"`
	Degraded     []string        `json:"degraded,omitempty"`
	ViewMode     ViewMode        `json:"viewMode,omitempty"`
}

type PriceLine struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

type DetailField struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ItemDetail is the expanded view of one record.
type ItemDetail struct {
	Record Record        `json:"record"`
	Prices []PriceLine   `json:"prices"`
	Fields []DetailField `json:"fields"`
	Badges []string      `json:"badges"`
}

// Badges returns the status badges for a card. Low stock and on sale are
// suppressed for featured or sold-out records.
func Badges(r Record) []string {
	var out []string
	if r.IsFeatured {
		out = append(out, BadgeFeatured)
	}
	if r.IsSoldOut {
		out = append(out, BadgeSoldOut)
	}
	if r.IsLowStock && !r.IsSoldOut && !r.IsFeatured {
		out = append(out, BadgeLowStock)
	}
	if r.IsOnSale && !r.IsSoldOut && !r.IsFeatured {
		out = append(out, BadgeOnSale)
	}
	return out
}

// EmptyMessage picks the notice for an empty result. Specials wins over
// search, which wins over the type filter.
func EmptyMessage(category string, f FilterState) string {
	switch {
	case category == CategorySpecials:
		return "No specials are currently active."
	case f.SearchQuery != "":
		return fmt.Sprintf("No products found matching %q.", f.SearchQuery)
	case f.TypeFilter != "" && f.TypeFilter != FilterAll:
		return fmt.Sprintf("No %s products found in this category.", f.TypeFilter)
	}
	return fmt.Sprintf("No items available in the %s category.", category)
}

var flowerPriceLabels = []struct {
	field string
	label string
}{
	{"price_1g", "1 gram"},
	{"price_35g", "3.5 grams (Eighth)"},
	{"price_7g", "7 grams (Quarter)"},
}

// PriceLines lists the prices shown on the detail view.
func PriceLines(r Record) []PriceLine {
	if r.Category != CategoryFlower {
		v := r.Fields["price"]
		if v == "" {
			v = "N/A"
		}
		return []PriceLine{{Label: "Unit Price", Value: v}}
	}
	var out []PriceLine
	for _, p := range flowerPriceLabels {
		if v := r.Fields[p.field]; v != "" {
			out = append(out, PriceLine{Label: p.label, Value: v})
		}
	}
	return out
}
