package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"livemenu-backend/config"
	"livemenu-backend/internal/domain"
	"livemenu-backend/pkg/logger"
	"livemenu-backend/pkg/utils"
)

// SaveInput is the admin form submission for one record.
type SaveInput struct {
	Fields     map[string]string `json:"fields"`
	IsFeatured bool              `json:"isFeatured"`
	IsOnSale   bool              `json:"isOnSale"`
	IsLowStock bool              `json:"isLowStock"`
	IsSoldOut  bool              `json:"isSoldOut"`
	StaffNotes string            `json:"staffNotes"`
}

// MutationUsecase validates and shapes records before writing them to the
// document store. The inventory is not touched; the live feed delivers the
// result once the store accepts the write.
type MutationUsecase struct {
	registry *domain.Registry
	writer   domain.DocumentWriter
	store    *InventoryStore
	cfg      *config.Config

	now   func() time.Time
	newID func() string
}

func NewMutationUsecase(registry *domain.Registry, writer domain.DocumentWriter, store *InventoryStore, cfg *config.Config) *MutationUsecase {
	return &MutationUsecase{
		registry: registry.Clone().AddStaffNotes(),
		writer:   writer,
		store:    store,
		cfg:      cfg,
		now:      time.Now,
		newID:    utils.GenerateUUID,
	}
}

// Save creates a record when id is empty, otherwise replaces it.
func (uc *MutationUsecase) Save(ctx context.Context, identity *domain.Identity, category, id string, in SaveInput) (*domain.Record, error) {
	if err := uc.authorize(identity, category); err != nil {
		return nil, err
	}

	// 1. Validate and shape schema fields, failing on the first bad one
	fields, err := uc.shape(category, in.Fields)
	if err != nil {
		logger.WithContext(ctx).Debug().Err(err).Str("category", category).Msg("Save rejected")
		return nil, err
	}

	// 2. Timestamps: createdAt survives every update
	now := uc.now().UTC()
	createdAt := now
	if id == "" {
		id = uc.newID()
	} else {
		existing, ok := uc.store.Lookup(category, id)
		if !ok {
			return nil, fmt.Errorf("%w: %s/%s", domain.ErrRecordNotFound, category, id)
		}
		if existing.CreatedAt != nil {
			createdAt = *existing.CreatedAt
		}
	}

	rec := domain.Record{
		ID:         id,
		Category:   category,
		IsFeatured: in.IsFeatured,
		IsOnSale:   in.IsOnSale,
		IsLowStock: in.IsLowStock,
		IsSoldOut:  in.IsSoldOut,
		StaffNotes: strings.TrimSpace(in.StaffNotes),
		CreatedAt:  &createdAt,
		UpdatedAt:  &now,
		Fields:     fields,
	}

	// 3. Write through; the snapshot feed updates the inventory
	err = uc.writer.SetRecord(ctx, domain.CollectionPath(uc.cfg.AppID, category), id, rec.Document())
	logger.Mutation("save", category, id, err)
	if err != nil {
		return nil, fmt.Errorf("failed to save record: %w", err)
	}
	return &rec, nil
}

// Delete removes a record that is present in the inventory.
func (uc *MutationUsecase) Delete(ctx context.Context, identity *domain.Identity, category, id string) error {
	if err := uc.authorize(identity, category); err != nil {
		return err
	}
	if _, ok := uc.store.Lookup(category, id); !ok {
		return fmt.Errorf("%w: %s/%s", domain.ErrRecordNotFound, category, id)
	}

	err := uc.writer.DeleteRecord(ctx, domain.CollectionPath(uc.cfg.AppID, category), id)
	logger.Mutation("delete", category, id, err)
	if err != nil {
		return fmt.Errorf("failed to delete record: %w", err)
	}
	return nil
}

func (uc *MutationUsecase) authorize(identity *domain.Identity, category string) error {
	if !identity.IsPrivileged() {
		return domain.ErrForbidden
	}
	if !uc.registry.IsConcrete(category) {
		return fmt.Errorf("%w: %s", domain.ErrUnknownCategory, category)
	}
	return nil
}

// shape keeps only schema fields, checks required and select values, and
// formats prices as "$<amount>".
func (uc *MutationUsecase) shape(category string, in map[string]string) (map[string]string, error) {
	out := make(map[string]string)
	for _, f := range uc.registry.FieldsFor(category) {
		if f.AdminOnly {
			continue
		}
		v := strings.TrimSpace(in[f.ID])
		if v == "" {
			if f.Required {
				return nil, &domain.ValidationError{Field: f.ID, Label: f.Label, Reason: domain.ReasonRequired}
			}
			continue
		}
		if f.Kind == domain.FieldSelect && !allowed(f.AllowedValues, v) {
			return nil, &domain.ValidationError{Field: f.ID, Label: f.Label, Reason: domain.ReasonNotAllowed}
		}
		if f.IsPrice {
			v = formatPrice(v)
		}
		out[f.ID] = v
	}
	return out, nil
}

func formatPrice(v string) string {
	return "$" + strings.TrimSpace(strings.ReplaceAll(v, "$", ""))
}

func allowed(values []string, v string) bool {
	for _, a := range values {
		if a == v {
			return true
		}
	}
	return false
}
