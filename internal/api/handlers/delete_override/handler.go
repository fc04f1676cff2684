package delete_override

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/PCM-ScheduleService/internal/api/handlers"
	"github.com/m04kA/PCM-ScheduleService/internal/api/middleware"
	"github.com/m04kA/PCM-ScheduleService/internal/service/availability"
)

const (
	msgInvalidVetID     = "некорректный ID ветеринара"
	msgInvalidDate      = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgMissingUserID    = "отсутствует ID пользователя"
	msgVetNotFound      = "ветеринар не найден"
	msgOverrideNotFound = "переопределение расписания не найдено"
	msgForbidden        = "доступ запрещен"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle DELETE /api/v1/vets/{vetId}/availability/overrides/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	vetIDStr := vars["vetId"]
	date := vars["date"]

	vetID, err := strconv.ParseInt(vetIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("DELETE /vets/{vetId}/availability/overrides/{date} - Invalid vet ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVetID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /vets/{vetId}/availability/overrides/{date} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	err = h.service.DeleteOverride(r.Context(), userID, vetID, date)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("DELETE /vets/{vetId}/availability/overrides/{date} - Invalid date %q: %v", date, err)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, availability.ErrVetNotFound):
			h.logger.Warn("DELETE /vets/{vetId}/availability/overrides/{date} - Vet not found: vet_id=%d", vetID)
			handlers.RespondNotFound(w, msgVetNotFound)

		case errors.Is(err, availability.ErrOverrideNotFound):
			h.logger.Warn("DELETE /vets/{vetId}/availability/overrides/{date} - Override not found: vet_id=%d, date=%s",
				vetID, date)
			handlers.RespondNotFound(w, msgOverrideNotFound)

		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("DELETE /vets/{vetId}/availability/overrides/{date} - Access denied: vet_id=%d, user_id=%d",
				vetID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("DELETE /vets/{vetId}/availability/overrides/{date} - Failed to delete override: vet_id=%d, date=%s, error=%v",
				vetID, date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("DELETE /vets/{vetId}/availability/overrides/{date} - Override deleted successfully: vet_id=%d, date=%s",
		vetID, date)
	w.WriteHeader(http.StatusNoContent)
}
