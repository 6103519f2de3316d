package v1

import (
	"errors"
	"net/http"

	"livemenu-backend/internal/domain"
	"livemenu-backend/pkg/logger"
	"livemenu-backend/pkg/utils"
)

// writeUsecaseError maps domain errors to HTTP statuses.
func writeUsecaseError(w http.ResponseWriter, r *http.Request, err error) {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		utils.WriteJSON(w, http.StatusBadRequest, map[string]string{
			"error": verr.Error(),
			"field": verr.Field,
		})
	case errors.Is(err, domain.ErrUnknownCategory), errors.Is(err, domain.ErrInvalidFilter):
		utils.WriteError(w, http.StatusBadRequest, err.Error())
	case errors.Is(err, domain.ErrRecordNotFound):
		utils.WriteError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, domain.ErrForbidden):
		utils.WriteError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, domain.ErrPublisherDisabled):
		utils.WriteError(w, http.StatusServiceUnavailable, err.Error())
	default:
		logger.WithContext(r.Context()).Error().Err(err).Msg("Request failed")
		utils.WriteError(w, http.StatusInternalServerError, "Internal server error")
	}
}
