package save_override

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
	msgInvalidVetID       = "некорректный ID ветеринара"
	msgInvalidRequestBody = "некорректное тело запроса"
	msgMissingUserID      = "отсутствует ID пользователя"
	msgVetNotFound        = "ветеринар не найден"
	msgForbidden          = "доступ запрещен"
	msgInvalidOverride    = "некорректное переопределение расписания"
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

// Handle PUT /api/v1/vets/{vetId}/availability/overrides/{date}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	vetIDStr := vars["vetId"]
	date := vars["date"]

	vetID, err := strconv.ParseInt(vetIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /vets/{vetId}/availability/overrides/{date} - Invalid vet ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVetID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /vets/{vetId}/availability/overrides/{date} - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req SaveOverrideRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /vets/{vetId}/availability/overrides/{date} - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.UpsertOverride(r.Context(), req.ToServiceRequest(userID, vetID, date))
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("PUT /vets/{vetId}/availability/overrides/{date} - Invalid override: vet_id=%d, date=%s, error=%v",
				vetID, date, err)
			handlers.RespondBadRequest(w, msgInvalidOverride)

		case errors.Is(err, availability.ErrVetNotFound):
			h.logger.Warn("PUT /vets/{vetId}/availability/overrides/{date} - Vet not found: vet_id=%d", vetID)
			handlers.RespondNotFound(w, msgVetNotFound)

		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("PUT /vets/{vetId}/availability/overrides/{date} - Access denied: vet_id=%d, user_id=%d",
				vetID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PUT /vets/{vetId}/availability/overrides/{date} - Failed to save override: vet_id=%d, date=%s, error=%v",
				vetID, date, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /vets/{vetId}/availability/overrides/{date} - Override saved successfully: vet_id=%d, date=%s",
		vetID, date)
	handlers.RespondJSON(w, http.StatusOK, result)
}
