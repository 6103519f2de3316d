package domain

import (
	"fmt"
	"strings"
)

// FacetRule binds a facet to the record field it filters in one category.
type FacetRule struct {
	Facet    Facet
	Field    string
	Contains bool
}

// facetRules are applied only while the category is active.
var facetRules = map[string][]FacetRule{
	CategoryConcentrates: {
		{Facet: FacetFormat, Field: "format"},
	},
	CategoryTopicals: {
		{Facet: FacetForm, Field: "form"},
	},
	CategoryTinctures: {
		{Facet: FacetRatio, Field: "ratio"},
	},
	CategoryEdibles: {
		{Facet: FacetCannabinoid, Field: "cannabinoids", Contains: true},
		{Facet: FacetEdibleForm, Field: "edibleForm"},
	},
	CategoryCartridges: {
		{Facet: FacetFormat, Field: "format_type"},
		{Facet: FacetDevice, Field: "device_type"},
		{Facet: FacetVolume, Field: "volume"},
	},
	CategoryPreRolls: {
		{Facet: FacetWeight, Field: "weight"},
		{Facet: FacetPackaging, Field: "packaging"},
		{Facet: FacetInfusion, Field: "infused"},
	},
}

func FacetRules(category string) []FacetRule {
	return facetRules[category]
}

// ControlType is the type filter pseudo-facet used in FilterControl.
const ControlType = "type"

// ControlPackaging is the combined packaging/infusion group.
const ControlPackaging = "packagingInfusion"

type FilterOption struct {
	Label  string `json:"label"`
	Facet  string `json:"facet"`
	Value  string `json:"value"`
	Active bool   `json:"active"`
}

type FilterControl struct {
	ID      string         `json:"id"`
	Label   string         `json:"label"`
	Options []FilterOption `json:"options"`
}

type controlDef struct {
	id      string
	label   string
	allText string
	values  []string
}

var typeControl = controlDef{ControlType, "Filter by Type", "All Types", []string{"Indica", "Sativa", "Hybrid"}}

var categoryControls = map[string][]controlDef{
	CategoryEdibles: {
		{string(FacetCannabinoid), "Filter by Cannabinoid Focus", "All Cannabinoids", []string{"THC", "CBD", "CBG", "CBN", "CBC"}},
		{string(FacetEdibleForm), "Filter by Edible Form", "All Forms", []string{"Gummies", "Chocolates", "Mints", "Drinks", "FECO", "Other"}},
	},
	CategoryConcentrates: {
		{string(FacetFormat), "Filter by Concentrate Format", "All Formats", []string{"Live Resin", "Live Rosin", "Other"}},
	},
	CategoryTinctures: {
		{string(FacetRatio), "Filter by Cannabinoid Ratio", "All Ratios", []string{"1:1", "5:1 CBD", "CBD Only", "THC Only"}},
	},
	CategoryTopicals: {
		{string(FacetForm), "Filter by Product Form", "All Forms", []string{"Lotion", "Balm", "Salt", "Oil"}},
	},
	CategoryCartridges: {
		{string(FacetFormat), "Filter by Content", "All Contents", []string{"Live Rosin", "Live Resin", "Distillate", "Oil"}},
		{string(FacetVolume), "Filter by Volume", "All Volumes", []string{"0.5g", "1g", "2g"}},
		{string(FacetDevice), "Filter by Device Type", "All Devices", []string{"510 Screw On", "All-In-One"}},
	},
	CategoryPreRolls: {
		{string(FacetWeight), "Filter by Weight", "All Weights", []string{"0.5g", "1g", "1.5g"}},
	},
}

// Controls describes the filter widgets for a category with the current
// selections marked active.
func Controls(category string, state FilterState) []FilterControl {
	var out []FilterControl
	if SupportsTypeFilter(category) {
		out = append(out, typeControl.build(state.TypeFilter))
	}
	for _, def := range categoryControls[category] {
		out = append(out, def.build(state.Facets.Get(Facet(def.id))))
	}
	if category == CategoryPreRolls {
		out = append(out, packagingControl(state.Facets))
	}
	return out
}

func (d controlDef) build(current string) FilterControl {
	c := FilterControl{ID: d.id, Label: d.label}
	c.Options = append(c.Options, FilterOption{Label: d.allText, Facet: d.id, Value: FilterAll, Active: current == FilterAll})
	for _, v := range d.values {
		c.Options = append(c.Options, FilterOption{Label: v, Facet: d.id, Value: v, Active: current == v})
	}
	return c
}

func packagingControl(f Facets) FilterControl {
	return FilterControl{
		ID:    ControlPackaging,
		Label: "Filter by Packaging/Infusion",
		Options: []FilterOption{
			{Label: "All Packaging", Facet: string(FacetPackaging), Value: FilterAll, Active: f.Packaging == FilterAll && f.Infusion == FilterAll},
			{Label: "Singles", Facet: string(FacetPackaging), Value: "Singles", Active: f.Packaging == "Singles"},
			{Label: "Packs", Facet: string(FacetPackaging), Value: "Packs", Active: f.Packaging == "Packs"},
			{Label: "Infused", Facet: string(FacetInfusion), Value: "Yes", Active: f.Infusion == "Yes"},
			{Label: "Non-Infused", Facet: string(FacetInfusion), Value: "No", Active: f.Infusion == "No"},
		},
	}
}

// ValidateTypeFilter accepts FilterAll and the offered type values.
func ValidateTypeFilter(value string) error {
	if value == FilterAll || contains(typeControl.values, value) {
		return nil
	}
	return fmt.Errorf("%w: type %q", ErrInvalidFilter, value)
}

// ValidateFacet accepts FilterAll and any value offered for the facet in
// some category.
func ValidateFacet(name Facet, value string) error {
	if value == FilterAll {
		if _, err := (&Facets{}).ref(name); err != nil {
			return err
		}
		return nil
	}
	switch name {
	case FacetPackaging:
		if value == "Singles" || value == "Packs" {
			return nil
		}
	case FacetInfusion:
		if value == "Yes" || value == "No" {
			return nil
		}
	default:
		for _, defs := range categoryControls {
			for _, d := range defs {
				if d.id == string(name) && contains(d.values, value) {
					return nil
				}
			}
		}
	}
	return fmt.Errorf("%w: %s %q", ErrInvalidFilter, name, value)
}

type SortOption struct {
	Value string `json:"value"`
	Label string `json:"label"`
}

var timestampSortOptions = []SortOption{
	{Value: SortKeyCreatedAt, Label: "Date Added"},
	{Value: SortKeyUpdatedAt, Label: "Last Updated"},
}

// SortOptions lists the sort keys offered for a category. Every category
// carries timestamps, so the timestamp keys are always offered.
func (r *Registry) SortOptions(category string) []SortOption {
	if IsAggregate(category) {
		out := []SortOption{
			{Value: SortKeyName, Label: "Name"},
			{Value: SortKeyPrice, Label: "Price (Default)"},
			{Value: SortKeyType, Label: "Type"},
		}
		return append(out, timestampSortOptions...)
	}

	out := []SortOption{{Value: SortKeyName, Label: "Name"}}
	hasPrice := false
	for _, f := range r.FieldsFor(category) {
		if !f.Sortable || f.ID == SortKeyName {
			continue
		}
		if strings.HasPrefix(f.ID, "price_") {
			if category == CategoryFlower && f.ID == "price_1g" {
				out = append(out, SortOption{Value: f.ID, Label: "Price (1g Base)"})
			}
			continue
		}
		if f.ID == SortKeyPrice {
			hasPrice = true
		}
		out = append(out, SortOption{Value: f.ID, Label: f.ShortLabel()})
	}
	if category != CategoryFlower && !hasPrice {
		out = append(out, SortOption{Value: SortKeyPrice, Label: "Price"})
	}
	return append(out, timestampSortOptions...)
}

// ResolveSortKey falls back to name for keys the category does not offer.
func (r *Registry) ResolveSortKey(category, sortBy string) string {
	for _, o := range r.SortOptions(category) {
		if o.Value == sortBy {
			return sortBy
		}
	}
	return SortKeyName
}

func contains(values []string, v string) bool {
	for _, x := range values {
		if x == v {
			return true
		}
	}
	return false
}
