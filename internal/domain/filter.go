package domain

import "fmt"

type SortDirection string

// Facet names a category-specific filter.
type Facet string

const (
	FacetFormat      Facet = "format"
	FacetForm        Facet = "form"
	FacetRatio       Facet = "ratio"
	FacetCannabinoid Facet = "cannabinoid"
	FacetEdibleForm  Facet = "edibleForm"
	FacetDevice      Facet = "device"
	FacetVolume      Facet = "volume"
	FacetWeight      Facet = "weight"
	FacetPackaging   Facet = "packaging"
	FacetInfusion    Facet = "infusion"
)

// AllFacets lists every facet in a stable order.
var AllFacets = []Facet{
	FacetFormat, FacetForm, FacetRatio, FacetCannabinoid, FacetEdibleForm,
	FacetDevice, FacetVolume, FacetWeight, FacetPackaging, FacetInfusion,
}

// Facets holds one selection per facet. A value of FilterAll means inactive.
// Every facet is kept regardless of category so a saved state round-trips.
type Facets struct {
	Format      string `json:"format"`
	Form        string `json:"form"`
	Ratio       string `json:"ratio"`
	Cannabinoid string `json:"cannabinoid"`
	EdibleForm  string `json:"edibleForm"`
	Device      string `json:"device"`
	Volume      string `json:"volume"`
	Weight      string `json:"weight"`
	Packaging   string `json:"packaging"`
	Infusion    string `json:"infusion"`
}

func DefaultFacets() Facets {
	return Facets{
		Format:      FilterAll,
		Form:        FilterAll,
		Ratio:       FilterAll,
		Cannabinoid: FilterAll,
		EdibleForm:  FilterAll,
		Device:      FilterAll,
		Volume:      FilterAll,
		Weight:      FilterAll,
		Packaging:   FilterAll,
		Infusion:    FilterAll,
	}
}

func (f *Facets) ref(name Facet) (*string, error) {
	switch name {
	case FacetFormat:
		return &f.Format, nil
	case FacetForm:
		return &f.Form, nil
	case FacetRatio:
		return &f.Ratio, nil
	case FacetCannabinoid:
		return &f.Cannabinoid, nil
	case FacetEdibleForm:
		return &f.EdibleForm, nil
	case FacetDevice:
		return &f.Device, nil
	case FacetVolume:
		return &f.Volume, nil
	case FacetWeight:
		return &f.Weight, nil
	case FacetPackaging:
		return &f.Packaging, nil
	case FacetInfusion:
		return &f.Infusion, nil
	}
	return nil, fmt.Errorf("%w: unknown facet %q", ErrInvalidFilter, name)
}

// Get returns the selection for a facet, FilterAll for unknown names.
func (f Facets) Get(name Facet) string {
	p, err := f.ref(name)
	if err != nil {
		return FilterAll
	}
	return *p
}

// Set assigns a facet without enforcing the packaging/infusion exclusivity;
// use FilterState.SelectFacet for user selections.
func (f *Facets) Set(name Facet, value string) error {
	p, err := f.ref(name)
	if err != nil {
		return err
	}
	*p = value
	return nil
}

// FilterState is the full set of selections for one category.
type FilterState struct {
	SearchQuery   string        `json:"searchQuery"`
	TypeFilter    string        `json:"typeFilter"`
	SortBy        string        `json:"sortBy"`
	SortDirection SortDirection `json:"sortDirection"`
	Facets        Facets        `json:"facets"`
}

func DefaultFilterState() FilterState {
	return FilterState{
		TypeFilter:    FilterAll,
		SortBy:        SortKeyName,
		SortDirection: SortAsc,
		Facets:        DefaultFacets(),
	}
}

// SelectFacet applies a user facet selection. Packaging and infusion form a
// single exclusive group: choosing one resets the other, and choosing All on
// either clears both.
func (s *FilterState) SelectFacet(name Facet, value string) error {
	switch name {
	case FacetPackaging:
		s.Facets.Packaging = value
		s.Facets.Infusion = FilterAll
		return nil
	case FacetInfusion:
		s.Facets.Infusion = value
		s.Facets.Packaging = FilterAll
		return nil
	}
	return s.Facets.Set(name, value)
}

// ParseSortDirection accepts "asc" and "desc".
func ParseSortDirection(v string) (SortDirection, error) {
	switch SortDirection(v) {
	case SortAsc, SortDesc:
		return SortDirection(v), nil
	}
	return "", fmt.Errorf("%w: sort direction %q", ErrInvalidFilter, v)
}
