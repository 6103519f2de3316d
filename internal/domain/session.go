package domain

// PaginationWindow reveals PageSize * CurrentPage results.
type PaginationWindow struct {
	PageSize    int `json:"pageSize"`
	CurrentPage int `json:"currentPage"`
}

func NewPaginationWindow(pageSize int) PaginationWindow {
	if pageSize < 1 {
		pageSize = 1
	}
	return PaginationWindow{PageSize: pageSize, CurrentPage: 1}
}

func (p *PaginationWindow) Reset() { p.CurrentPage = 1 }

// Advance reveals one more page. Callers check HasMore first.
func (p *PaginationWindow) Advance() { p.CurrentPage++ }

func (p PaginationWindow) VisibleCount(total int) int {
	n := p.PageSize * p.CurrentPage
	if n > total {
		return total
	}
	return n
}

func (p PaginationWindow) HasMore(total int) bool {
	return p.VisibleCount(total) < total
}

// SessionState is everything a menu viewer has selected. It is passed to the
// query pipeline explicitly and stored between requests.
type SessionState struct {
	Category string                 `json:"category"`
	Filters  FilterState            `json:"filters"`
	Saved    map[string]FilterState `json:"saved"`
	Page     PaginationWindow       `json:"page"`

	// InventoryVersion is the store version the page was computed against.
	InventoryVersion uint64 `json:"inventoryVersion"`
}

func NewSessionState(pageSize int) *SessionState {
	return &SessionState{
		Category: CategoryFlower,
		Filters:  DefaultFilterState(),
		Saved:    make(map[string]FilterState),
		Page:     NewPaginationWindow(pageSize),
	}
}

// SwitchCategory saves the current filters under the current category and
// restores the target's saved filters. A category with nothing saved keeps the
// search and sort, keeps the type filter only where the type facet exists, and
// resets every facet.
func (s *SessionState) SwitchCategory(category string) {
	if s.Saved == nil {
		s.Saved = make(map[string]FilterState)
	}
	s.Saved[s.Category] = s.Filters
	s.Category = category

	if saved, ok := s.Saved[category]; ok {
		s.Filters = saved
	} else {
		s.Filters.Facets = DefaultFacets()
		if !SupportsTypeFilter(category) {
			s.Filters.TypeFilter = FilterAll
		}
	}
	s.Page.Reset()
}

func (s *SessionState) SetSearch(query string) {
	s.Filters.SearchQuery = query
	s.Page.Reset()
}

func (s *SessionState) SetTypeFilter(value string) {
	s.Filters.TypeFilter = value
	s.Page.Reset()
}

func (s *SessionState) SelectFacet(name Facet, value string) error {
	if err := s.Filters.SelectFacet(name, value); err != nil {
		return err
	}
	s.Page.Reset()
	return nil
}

func (s *SessionState) SetSort(sortBy string, dir SortDirection) {
	if sortBy != "" {
		s.Filters.SortBy = sortBy
	}
	if dir != "" {
		s.Filters.SortDirection = dir
	}
	s.Page.Reset()
}

// Observe resets the page when the inventory changed since the last render.
func (s *SessionState) Observe(version uint64) {
	if s.InventoryVersion != version {
		s.InventoryVersion = version
		s.Page.Reset()
	}
}

// Clone deep-copies the saved map so cached sessions are never shared.
func (s *SessionState) Clone() *SessionState {
	out := *s
	out.Saved = make(map[string]FilterState, len(s.Saved))
	for k, v := range s.Saved {
		out.Saved[k] = v
	}
	return &out
}
