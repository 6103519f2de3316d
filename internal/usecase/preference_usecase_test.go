package usecase

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"livemenu-backend/internal/domain"
	"livemenu-backend/internal/infrastructure/cache"
)

func TestViewModePersists(t *testing.T) {
	path := filepath.Join(t.TempDir(), "prefs", "preferences.gob")
	ctx := context.Background()

	uc := NewPreferenceUsecase(cache.NewFileCache(path))
	if got := uc.ViewMode("client-1"); got != domain.ViewModeGrid {
		t.Errorf("default ViewMode() = %q, want grid", got)
	}
	if _, err := uc.SetViewMode(ctx, "client-1", "list"); err != nil {
		t.Fatalf("SetViewMode() = %v", err)
	}

	reloaded := cache.NewFileCache(path)
	if err := reloaded.Load(); err != nil {
		t.Fatalf("Load() = %v", err)
	}
	uc = NewPreferenceUsecase(reloaded)
	if got := uc.ViewMode("client-1"); got != domain.ViewModeList {
		t.Errorf("ViewMode() after restart = %q, want list", got)
	}
	if got := uc.ViewMode("client-2"); got != domain.ViewModeGrid {
		t.Errorf("ViewMode(other client) = %q, want grid", got)
	}
}

func TestSetViewModeRejectsUnknown(t *testing.T) {
	uc := NewPreferenceUsecase(cache.NewFileCache(filepath.Join(t.TempDir(), "p.gob")))
	if _, err := uc.SetViewMode(context.Background(), "c", "carousel"); !errors.Is(err, domain.ErrInvalidFilter) {
		t.Errorf("SetViewMode() = %v, want ErrInvalidFilter", err)
	}
}
