package v1

import (
	"net/http"

	"livemenu-backend/internal/usecase"
	"livemenu-backend/pkg/utils"
)

type HealthHandler struct {
	store *usecase.InventoryStore
}

func NewHealthHandler(store *usecase.InventoryStore) *HealthHandler {
	return &HealthHandler{store: store}
}

// ServeHTTP reports "degraded" while any category subscription is failing.
func (h *HealthHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	degraded := h.store.Degraded()
	status := "ok"
	errs := make(map[string]string, len(degraded))
	for _, category := range degraded {
		status = "degraded"
		if err := h.store.Err(category); err != nil {
			errs[category] = err.Error()
		}
	}
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"status":   status,
		"degraded": degraded,
		"errors":   errs,
		"version":  h.store.Version(),
	})
}
