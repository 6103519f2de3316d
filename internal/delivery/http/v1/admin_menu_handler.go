package v1

import (
	"net/http"

	"livemenu-backend/internal/domain"
	"livemenu-backend/internal/usecase"
	"livemenu-backend/pkg/utils"
)

type AdminMenuHandler struct {
	mutationUC *usecase.MutationUsecase
	publishUC  *usecase.PublishUsecase
}

func NewAdminMenuHandler(mutationUC *usecase.MutationUsecase, publishUC *usecase.PublishUsecase) *AdminMenuHandler {
	return &AdminMenuHandler{mutationUC: mutationUC, publishUC: publishUC}
}

func (h *AdminMenuHandler) CreateItem(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, "", http.StatusCreated)
}

func (h *AdminMenuHandler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	h.save(w, r, r.PathValue("id"), http.StatusOK)
}

func (h *AdminMenuHandler) save(w http.ResponseWriter, r *http.Request, id string, status int) {
	var req usecase.SaveInput
	if err := utils.DecodeJSON(r, &req); err != nil {
		utils.WriteError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	identity := domain.IdentityFromContext(r.Context())
	rec, err := h.mutationUC.Save(r.Context(), identity, r.PathValue("category"), id, req)
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, status, rec)
}

func (h *AdminMenuHandler) DeleteItem(w http.ResponseWriter, r *http.Request) {
	identity := domain.IdentityFromContext(r.Context())
	if err := h.mutationUC.Delete(r.Context(), identity, r.PathValue("category"), r.PathValue("id")); err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *AdminMenuHandler) Publish(w http.ResponseWriter, r *http.Request) {
	res, err := h.publishUC.Publish(r.Context(), domain.IdentityFromContext(r.Context()))
	if err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	utils.WriteJSON(w, http.StatusOK, res)
}

func (h *AdminMenuHandler) Unpublish(w http.ResponseWriter, r *http.Request) {
	if err := h.publishUC.Unpublish(r.Context(), domain.IdentityFromContext(r.Context())); err != nil {
		writeUsecaseError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// Preview returns the export document without uploading it.
func (h *AdminMenuHandler) Preview(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, h.publishUC.Build())
}
