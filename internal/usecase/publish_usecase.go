package usecase

import (
	"context"
	"fmt"
	"time"

	"livemenu-backend/config"
	"livemenu-backend/internal/domain"
	"livemenu-backend/pkg/logger"
	"livemenu-backend/pkg/utils"

	"github.com/goccy/go-json"
)

// MenuExporter stores published menu documents.
type MenuExporter interface {
	UploadBuffer(ctx context.Context, key string, data []byte, contentType string) (string, error)
	DeleteKey(ctx context.Context, key string) error
}

type PublishedCategory struct {
	Name   string                   `json:"name"`
	Fields []domain.FieldDefinition `json:"fields"`
	Items  []domain.ViewItem        `json:"items"`
}

// MenuExport is the static public menu document.
type MenuExport struct {
	AppID       string              `json:"appId"`
	PublishedAt time.Time           `json:"publishedAt"`
	Categories  []PublishedCategory `json:"categories"`
}

type PublishResult struct {
	URL         string    `json:"url"`
	PublishedAt time.Time `json:"publishedAt"`
	Items       int       `json:"items"`
}

// PublishUsecase exports the public menu to object storage. A nil exporter
// disables it.
type PublishUsecase struct {
	pipeline *QueryPipeline
	store    *InventoryStore
	exporter MenuExporter
	cfg      *config.Config
	now      func() time.Time
}

func NewPublishUsecase(registry *domain.Registry, store *InventoryStore, exporter MenuExporter, cfg *config.Config) *PublishUsecase {
	return &PublishUsecase{
		pipeline: NewQueryPipeline(registry, false),
		store:    store,
		exporter: exporter,
		cfg:      cfg,
		now:      time.Now,
	}
}

// Build renders the stored records of every concrete category with default
// filters. Sold-out records are included and carry their badge; promoted
// items appear only under their own category.
func (uc *PublishUsecase) Build() *MenuExport {
	inv := uc.store.Snapshot()
	reg := uc.pipeline.Registry()
	export := &MenuExport{AppID: uc.cfg.AppID, PublishedAt: uc.now().UTC()}

	for _, category := range reg.AllCategories() {
		pc := PublishedCategory{Name: category, Fields: reg.FieldsFor(category), Items: []domain.ViewItem{}}
		for _, rec := range uc.pipeline.RunCollection(inv, category, domain.DefaultFilterState()) {
			pc.Items = append(pc.Items, domain.ViewItem{Record: rec, Badges: domain.Badges(rec)})
		}
		export.Categories = append(export.Categories, pc)
	}
	return export
}

func (uc *PublishUsecase) Publish(ctx context.Context, identity *domain.Identity) (*PublishResult, error) {
	if !identity.IsPrivileged() {
		return nil, domain.ErrForbidden
	}
	if uc.exporter == nil {
		return nil, domain.ErrPublisherDisabled
	}

	export := uc.Build()
	data, err := json.Marshal(export)
	if err != nil {
		return nil, fmt.Errorf("failed to encode menu: %w", err)
	}

	url, err := uc.exporter.UploadBuffer(ctx, uc.objectKey(), data, "application/json")
	if err != nil {
		logger.WithContext(ctx).Error().Err(err).Msg("Menu publish failed")
		return nil, err
	}

	count := 0
	for _, c := range export.Categories {
		count += len(c.Items)
	}
	logger.WithContext(ctx).Info().Str("url", url).Int("items", count).Msg("Menu published")
	return &PublishResult{URL: url, PublishedAt: export.PublishedAt, Items: count}, nil
}

// Unpublish removes the exported menu.
func (uc *PublishUsecase) Unpublish(ctx context.Context, identity *domain.Identity) error {
	if !identity.IsPrivileged() {
		return domain.ErrForbidden
	}
	if uc.exporter == nil {
		return domain.ErrPublisherDisabled
	}
	return uc.exporter.DeleteKey(ctx, uc.objectKey())
}

func (uc *PublishUsecase) objectKey() string {
	return fmt.Sprintf("menus/%s/menu.json", utils.GenerateSlug(uc.cfg.AppID))
}
