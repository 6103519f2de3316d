package v1

import (
	"net/http"

	"livemenu-backend/internal/delivery/http/middleware"
	"livemenu-backend/internal/domain"
	"livemenu-backend/internal/usecase"
	"livemenu-backend/pkg/utils"
)

type MenuHandler struct {
	menuUC       *usecase.MenuUsecase
	preferenceUC *usecase.PreferenceUsecase
}

func NewMenuHandler(menuUC *usecase.MenuUsecase, preferenceUC *usecase.PreferenceUsecase) *MenuHandler {
	return &MenuHandler{menuUC: menuUC, preferenceUC: preferenceUC}
}

func (h *MenuHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, h.menuUC.Categories())
}

func (h *MenuHandler) GetSchema(w http.ResponseWriter, r *http.Request) {
	fields := h.menuUC.Schema(privileged(r), r.PathValue("category"))
	utils.WriteJSON(w, http.StatusOK, map[string]interface{}{"fields": fields})
}

func (h *MenuHandler) GetMenu(w http.ResponseWriter, r *http.Request) {
	view, err := h.menuUC.View(r.Context(), middleware.SessionID(r.Context()), privileged(r))
	h.respond(w, r, view, err)
}

func (h *MenuHandler) SelectCategory(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Category string `json:"category"`
	}
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	view, err := h.menuUC.SelectCategory(r.Context(), middleware.SessionID(r.Context()), req.Category, privileged(r))
	h.respond(w, r, view, err)
}

func (h *MenuHandler) Search(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Query string `json:"query"`
	}
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	view, err := h.menuUC.Search(r.Context(), middleware.SessionID(r.Context()), req.Query, privileged(r))
	h.respond(w, r, view, err)
}

func (h *MenuHandler) SetTypeFilter(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Value string `json:"value"`
	}
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	view, err := h.menuUC.SetTypeFilter(r.Context(), middleware.SessionID(r.Context()), req.Value, privileged(r))
	h.respond(w, r, view, err)
}

func (h *MenuHandler) SelectFacet(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Facet string `json:"facet"`
		Value string `json:"value"`
	}
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	view, err := h.menuUC.SelectFacet(r.Context(), middleware.SessionID(r.Context()), domain.Facet(req.Facet), req.Value, privileged(r))
	h.respond(w, r, view, err)
}

func (h *MenuHandler) SetSort(w http.ResponseWriter, r *http.Request) {
	var req struct {
		SortBy        string `json:"sortBy"`
		SortDirection string `json:"sortDirection"`
	}
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	view, err := h.menuUC.SetSort(r.Context(), middleware.SessionID(r.Context()), req.SortBy, req.SortDirection, privileged(r))
	h.respond(w, r, view, err)
}

func (h *MenuHandler) More(w http.ResponseWriter, r *http.Request) {
	view, err := h.menuUC.More(r.Context(), middleware.SessionID(r.Context()), privileged(r))
	h.respond(w, r, view, err)
}

func (h *MenuHandler) GetItem(w http.ResponseWriter, r *http.Request) {
	detail, err := h.menuUC.Detail(r.Context(), r.PathValue("category"), r.PathValue("id"), privileged(r))
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, detail)
}

func (h *MenuHandler) respond(w http.ResponseWriter, r *http.Request, view *domain.MenuView, err error) {
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	view.ViewMode = h.preferenceUC.ViewMode(middleware.SessionID(r.Context()))
	utils.WriteJSON(w, http.StatusOK, view)
}

func privileged(r *http.Request) bool {
	return domain.IdentityFromContext(r.Context()).IsPrivileged()
}
