package v1

import (
	"net/http"

	"livemenu-backend/internal/delivery/http/middleware"
	"livemenu-backend/internal/usecase"
	"livemenu-backend/pkg/utils"
)

type PreferenceHandler struct {
	preferenceUC *usecase.PreferenceUsecase
}

func NewPreferenceHandler(uc *usecase.PreferenceUsecase) *PreferenceHandler {
	return &PreferenceHandler{preferenceUC: uc}
}

func (h *PreferenceHandler) GetViewMode(w http.ResponseWriter, r *http.Request) {
	mode := h.preferenceUC.ViewMode(middleware.SessionID(r.Context()))
	utils.WriteJSON(w, http.StatusOK, map[string]string{"viewMode": string(mode)})
}

func (h *PreferenceHandler) SetViewMode(w http.ResponseWriter, r *http.Request) {
	var req struct {
		ViewMode string `json:"viewMode"`
	}
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	mode, err := h.preferenceUC.SetViewMode(r.Context(), middleware.SessionID(r.Context()), req.ViewMode)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, map[string]string{"viewMode": string(mode)})
}
