package v1

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"livemenu-backend/internal/usecase"
	"livemenu-backend/pkg/utils"
)

type AdminStatsHandler struct {
	statsUC *usecase.StatsUsecase
}

func NewAdminStatsHandler(uc *usecase.StatsUsecase) *AdminStatsHandler {
	return &AdminStatsHandler{statsUC: uc}
}

// Helper: Parse required date param
func parseRequiredDate(r *http.Request, param string) (time.Time, error) {
	str := r.URL.Query().Get(param)
	if str == "" {
		return time.Time{}, fmt.Errorf("%s parameter is required", param)
	}
	return time.Parse("2006-01-02", str)
}

// Helper: Parse optional int32 param with default
func parseInt32WithDefault(r *http.Request, param string, defaultVal int32) int32 {
	str := r.URL.Query().Get(param)
	if str == "" {
		return defaultVal
	}
	val, err := strconv.ParseInt(str, 10, 32)
	if err != nil {
		return defaultVal
	}
	return int32(val)
}

// GET /admin/stats/kpis
func (h *AdminStatsHandler) GetInventoryKPIs(w http.ResponseWriter, r *http.Request) {
	utils.WriteJSON(w, http.StatusOK, h.statsUC.GetInventoryKPIs(r.Context()))
}

// GET /admin/stats/inventory/low-stock?limit=50&offset=0
func (h *AdminStatsHandler) GetLowStock(w http.ResponseWriter, r *http.Request) {
	limit := parseInt32WithDefault(r, "limit", 50)
	offset := parseInt32WithDefault(r, "offset", 0)
	utils.WriteJSON(w, http.StatusOK, h.statsUC.GetLowStockRecords(r.Context(), limit, offset))
}

// GET /admin/stats/inventory/sold-out?limit=50&offset=0
func (h *AdminStatsHandler) GetSoldOut(w http.ResponseWriter, r *http.Request) {
	limit := parseInt32WithDefault(r, "limit", 50)
	offset := parseInt32WithDefault(r, "offset", 0)
	utils.WriteJSON(w, http.StatusOK, h.statsUC.GetSoldOutRecords(r.Context(), limit, offset))
}

// GET /admin/stats/recent?since=2024-01-01&limit=25
func (h *AdminStatsHandler) GetRecentlyUpdated(w http.ResponseWriter, r *http.Request) {
	since, err := parseRequiredDate(r, "since")
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, "since date required (format: YYYY-MM-DD)")
		return
	}

	recs, err := h.statsUC.GetRecentlyUpdated(r.Context(), since, parseInt32WithDefault(r, "limit", 25))
	if err != nil {
		utils.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}
	utils.WriteJSON(w, http.StatusOK, recs)
}
