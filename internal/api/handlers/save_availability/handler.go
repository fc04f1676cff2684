package save_availability

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
	msgInvalidSchedule    = "некорректное недельное расписание"
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

// Handle PUT /api/v1/vets/{vetId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	vetIDStr := vars["vetId"]

	vetID, err := strconv.ParseInt(vetIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PUT /vets/{vetId}/availability - Invalid vet ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVetID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PUT /vets/{vetId}/availability - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req SaveAvailabilityRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PUT /vets/{vetId}/availability - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.service.SaveWeek(r.Context(), req.ToServiceRequest(userID, vetID))
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("PUT /vets/{vetId}/availability - Invalid schedule: vet_id=%d, error=%v", vetID, err)
			handlers.RespondBadRequest(w, msgInvalidSchedule)

		case errors.Is(err, availability.ErrVetNotFound):
			h.logger.Warn("PUT /vets/{vetId}/availability - Vet not found: vet_id=%d", vetID)
			handlers.RespondNotFound(w, msgVetNotFound)

		case errors.Is(err, availability.ErrAccessDenied):
			h.logger.Warn("PUT /vets/{vetId}/availability - Access denied: vet_id=%d, user_id=%d", vetID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("PUT /vets/{vetId}/availability - Failed to save schedule: vet_id=%d, error=%v",
				vetID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /vets/{vetId}/availability - Schedule saved successfully: vet_id=%d, user_id=%d",
		vetID, userID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
