package usecase

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"livemenu-backend/config"
	"livemenu-backend/internal/domain"
	"livemenu-backend/pkg/cache"
	"livemenu-backend/pkg/logger"
	"livemenu-backend/pkg/utils"
)

// MenuUsecase owns the live inventory and every viewer's session state.
// Snapshots arrive on a bounded inbox and are applied by a single goroutine
// (Run), so the inventory has exactly one writer.
type MenuUsecase struct {
	public   *QueryPipeline
	admin    *QueryPipeline
	store    *InventoryStore
	source   domain.SnapshotSource
	sessions cache.CacheService
	cache    cache.CacheService
	cfg      *config.Config

	paths map[string]string
	inbox chan domain.Snapshot
	done  chan struct{}
	stop  sync.Once

	subsMu sync.Mutex
	subs   []domain.Subscription

	sessionMu sync.Mutex
}

func NewMenuUsecase(registry *domain.Registry, store *InventoryStore, source domain.SnapshotSource, sessions cache.CacheService, cache cache.CacheService, cfg *config.Config) *MenuUsecase {
	paths := make(map[string]string)
	for _, category := range registry.AllCategories() {
		paths[domain.CollectionPath(cfg.AppID, category)] = category
	}

	return &MenuUsecase{
		public:   NewQueryPipeline(registry, false),
		admin:    NewQueryPipeline(registry.Clone().AddStaffNotes(), true),
		store:    store,
		source:   source,
		sessions: sessions,
		cache:    cache,
		cfg:      cfg,
		paths:    paths,
		inbox:    make(chan domain.Snapshot, cfg.InboxSize),
		done:     make(chan struct{}),
	}
}

// --- Live feed ---

// Start subscribes to every category. A category that cannot be subscribed
// is marked degraded; the others keep working.
func (uc *MenuUsecase) Start(ctx context.Context) {
	for path, category := range uc.paths {
		sub, err := uc.source.Subscribe(ctx, path, uc.enqueue)
		if err != nil {
			logger.SubscriptionFailed(category, err)
			uc.store.Fail(category, err)
			continue
		}
		uc.subsMu.Lock()
		uc.subs = append(uc.subs, sub)
		uc.subsMu.Unlock()
	}
}

func (uc *MenuUsecase) enqueue(s domain.Snapshot) {
	select {
	case uc.inbox <- s:
	case <-uc.done:
	}
}

// Run applies snapshots until ctx is cancelled or Stop is called.
func (uc *MenuUsecase) Run(ctx context.Context) {
	for {
		select {
		case s := <-uc.inbox:
			uc.apply(s)
		case <-ctx.Done():
			return
		case <-uc.done:
			return
		}
	}
}

// Drain applies every pending snapshot on the caller's goroutine. It must not
// be used while Run is active.
func (uc *MenuUsecase) Drain() int {
	n := 0
	for {
		select {
		case s := <-uc.inbox:
			uc.apply(s)
			n++
		default:
			return n
		}
	}
}

func (uc *MenuUsecase) apply(s domain.Snapshot) {
	category, ok := uc.paths[s.Path]
	if !ok {
		logger.Warn().Str("path", s.Path).Msg("Snapshot for unknown collection")
		return
	}
	if s.Err != nil {
		logger.SubscriptionFailed(category, s.Err)
		uc.store.Fail(category, s.Err)
		return
	}
	logger.SnapshotApplied(category, uc.store.Replace(category, s.Documents))
}

// Stop cancels every subscription and releases blocked deliveries.
func (uc *MenuUsecase) Stop() {
	uc.stop.Do(func() {
		uc.subsMu.Lock()
		for _, sub := range uc.subs {
			sub.Unsubscribe()
		}
		uc.subs = nil
		uc.subsMu.Unlock()
		close(uc.done)
	})
}

// --- Catalog ---

type CategoryList struct {
	Nav     []string `json:"nav"`
	Addable []string `json:"addable"`
}

func (uc *MenuUsecase) Categories() CategoryList {
	reg := uc.public.Registry()
	return CategoryList{Nav: reg.NavCategories(), Addable: reg.AddableCategories()}
}

// Schema returns the form fields of a category. Aggregate and unknown
// categories have none.
func (uc *MenuUsecase) Schema(privileged bool, category string) []domain.FieldDefinition {
	cacheKey := fmt.Sprintf("schema:%t:%s", privileged, category)
	if cached, found := uc.cache.Get(cacheKey); found {
		return cached.([]domain.FieldDefinition)
	}

	fields := uc.pipeline(privileged).Registry().FieldsFor(category)
	if fields == nil {
		fields = []domain.FieldDefinition{}
	}
	uc.cache.Set(cacheKey, fields, uc.cfg.CacheSchemaTTL)
	return fields
}

// --- Sessions ---

func (uc *MenuUsecase) View(ctx context.Context, sessionID string, privileged bool) (*domain.MenuView, error) {
	return uc.update(ctx, sessionID, privileged, func(*domain.SessionState, Inventory) error { return nil })
}

func (uc *MenuUsecase) SelectCategory(ctx context.Context, sessionID, category string, privileged bool) (*domain.MenuView, error) {
	if !uc.public.Registry().IsKnown(category) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownCategory, category)
	}
	return uc.update(ctx, sessionID, privileged, func(s *domain.SessionState, _ Inventory) error {
		s.SwitchCategory(category)
		return nil
	})
}

func (uc *MenuUsecase) Search(ctx context.Context, sessionID, query string, privileged bool) (*domain.MenuView, error) {
	return uc.update(ctx, sessionID, privileged, func(s *domain.SessionState, _ Inventory) error {
		s.SetSearch(utils.NormalizeQuery(query))
		return nil
	})
}

func (uc *MenuUsecase) SetTypeFilter(ctx context.Context, sessionID, value string, privileged bool) (*domain.MenuView, error) {
	if err := domain.ValidateTypeFilter(value); err != nil {
		return nil, err
	}
	return uc.update(ctx, sessionID, privileged, func(s *domain.SessionState, _ Inventory) error {
		s.SetTypeFilter(value)
		return nil
	})
}

func (uc *MenuUsecase) SelectFacet(ctx context.Context, sessionID string, facet domain.Facet, value string, privileged bool) (*domain.MenuView, error) {
	if err := domain.ValidateFacet(facet, value); err != nil {
		return nil, err
	}
	return uc.update(ctx, sessionID, privileged, func(s *domain.SessionState, _ Inventory) error {
		return s.SelectFacet(facet, value)
	})
}

// SetSort changes the sort key and/or direction. Empty values keep the
// current setting. Keys the category does not offer sort by name.
func (uc *MenuUsecase) SetSort(ctx context.Context, sessionID, sortBy, direction string, privileged bool) (*domain.MenuView, error) {
	var dir domain.SortDirection
	if direction != "" {
		d, err := domain.ParseSortDirection(direction)
		if err != nil {
			return nil, err
		}
		dir = d
	}
	return uc.update(ctx, sessionID, privileged, func(s *domain.SessionState, _ Inventory) error {
		s.SetSort(sortBy, dir)
		return nil
	})
}

// More reveals the next page when more results remain.
func (uc *MenuUsecase) More(ctx context.Context, sessionID string, privileged bool) (*domain.MenuView, error) {
	return uc.update(ctx, sessionID, privileged, func(s *domain.SessionState, inv Inventory) error {
		total := len(uc.pipeline(privileged).Run(inv, s.Category, s.Filters))
		if s.Page.HasMore(total) {
			s.Page.Advance()
		}
		return nil
	})
}

// Detail expands one record. Sold-out records are not detailed publicly.
func (uc *MenuUsecase) Detail(ctx context.Context, category, id string, privileged bool) (*domain.ItemDetail, error) {
	reg := uc.pipeline(privileged).Registry()
	if !reg.IsConcrete(category) {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownCategory, category)
	}

	rec, ok := uc.store.Lookup(category, id)
	if !ok || (rec.IsSoldOut && !privileged) {
		logger.WithContext(ctx).Debug().Str("category", category).Str("id", id).Msg("Detail lookup missed")
		return nil, fmt.Errorf("%w: %s/%s", domain.ErrRecordNotFound, category, id)
	}
	if !privileged {
		rec = rec.Public()
	}

	detail := &domain.ItemDetail{
		Record: rec,
		Prices: domain.PriceLines(rec),
		Badges: domain.Badges(rec),
	}
	for _, f := range reg.FieldsFor(category) {
		if f.IsPrice || f.AdminOnly || f.ID == "name" || f.ID == "description" {
			continue
		}
		if v := rec.Fields[f.ID]; v != "" {
			detail.Fields = append(detail.Fields, domain.DetailField{Label: f.ShortLabel(), Value: v})
		}
	}
	return detail, nil
}

func (uc *MenuUsecase) pipeline(privileged bool) *QueryPipeline {
	if privileged {
		return uc.admin
	}
	return uc.public
}

// load returns a private copy of the session. A snapshot applied since the
// last request resets the page first.
func (uc *MenuUsecase) load(sessionID string, version uint64) *domain.SessionState {
	state := domain.NewSessionState(uc.cfg.MenuPageSize)
	if cached, found := uc.sessions.Get(sessionKey(sessionID)); found {
		state = cached.(*domain.SessionState).Clone()
	}
	state.Observe(version)
	return state
}

// update applies fn to the session and renders it. The page check, fn and
// the rendered view all see the same inventory snapshot.
func (uc *MenuUsecase) update(ctx context.Context, sessionID string, privileged bool, fn func(*domain.SessionState, Inventory) error) (*domain.MenuView, error) {
	uc.sessionMu.Lock()
	inv, version := uc.store.VersionedSnapshot()
	state := uc.load(sessionID, version)
	if err := fn(state, inv); err != nil {
		uc.sessionMu.Unlock()
		return nil, err
	}
	uc.sessions.Set(sessionKey(sessionID), state, uc.cfg.SessionTTL)
	uc.sessionMu.Unlock()

	logger.WithContext(ctx).Debug().
		Str("category", state.Category).
		Str("search", state.Filters.SearchQuery).
		Int("page", state.Page.CurrentPage).
		Msg("Session updated")
	return uc.render(state, inv, privileged), nil
}

func (uc *MenuUsecase) render(state *domain.SessionState, inv Inventory, privileged bool) *domain.MenuView {
	p := uc.pipeline(privileged)
	reg := p.Registry()
	results := p.Run(inv, state.Category, state.Filters)
	total := len(results)

	filters := state.Filters
	filters.SortBy = reg.ResolveSortKey(state.Category, filters.SortBy)

	view := &domain.MenuView{
		Category:    state.Category,
		Items:       make([]domain.ViewItem, 0, state.Page.VisibleCount(total)),
		Total:       total,
		HasMore:     state.Page.HasMore(total),
		Page:        state.Page.CurrentPage,
		PageSize:    state.Page.PageSize,
		Filters:     filters,
		SortOptions: reg.SortOptions(state.Category),
		Controls:    domain.Controls(state.Category, state.Filters),
		Degraded:    uc.store.Degraded(),
	}
	for _, rec := range results[:state.Page.VisibleCount(total)] {
		item := domain.ViewItem{Record: rec, Badges: domain.Badges(rec)}
		if domain.IsAggregate(state.Category) {
			item.CategoryLabel = strings.ToUpper(rec.Category)
		}
		view.Items = append(view.Items, item)
	}
	if total == 0 {
		view.EmptyMessage = domain.EmptyMessage(state.Category, state.Filters)
	}
	return view
}

func sessionKey(id string) string {
	return "session:" + id
}
