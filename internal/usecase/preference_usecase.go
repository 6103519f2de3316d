package usecase

import (
	"context"
	"fmt"

	"livemenu-backend/internal/domain"
	"livemenu-backend/pkg/cache"
	"livemenu-backend/pkg/logger"
)

// PreferenceUsecase keeps the per-client view mode, the only state that
// outlives a session.
type PreferenceUsecase struct {
	store cache.PersistentCache
}

func NewPreferenceUsecase(store cache.PersistentCache) *PreferenceUsecase {
	return &PreferenceUsecase{store: store}
}

func (uc *PreferenceUsecase) ViewMode(clientID string) domain.ViewMode {
	if val, found := uc.store.Get(viewModeKey(clientID)); found {
		if s, ok := val.(string); ok {
			if mode, err := domain.ParseViewMode(s); err == nil {
				return mode
			}
		}
	}
	return domain.ViewModeGrid
}

// SetViewMode stores the mode and writes the preferences file.
func (uc *PreferenceUsecase) SetViewMode(ctx context.Context, clientID, mode string) (domain.ViewMode, error) {
	m, err := domain.ParseViewMode(mode)
	if err != nil {
		return "", err
	}
	uc.store.Set(viewModeKey(clientID), string(m), 0)
	if err := uc.store.Save(); err != nil {
		logger.WithContext(ctx).Error().Err(err).Msg("Failed to persist preferences")
		return m, fmt.Errorf("failed to persist preferences: %w", err)
	}
	return m, nil
}

func viewModeKey(clientID string) string {
	return "viewMode:" + clientID
}
