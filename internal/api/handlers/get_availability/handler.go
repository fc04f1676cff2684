package get_availability

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/PCM-ScheduleService/internal/api/handlers"
	"github.com/m04kA/PCM-ScheduleService/internal/service/availability"
)

const (
	msgInvalidVetID = "некорректный ID ветеринара"
	msgVetNotFound  = "ветеринар не найден"
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

// Handle GET /api/v1/vets/{vetId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	vetIDStr := vars["vetId"]

	vetID, err := strconv.ParseInt(vetIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /vets/{vetId}/availability - Invalid vet ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVetID)
		return
	}

	result, err := h.service.GetWeek(r.Context(), vetID)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrVetNotFound):
			h.logger.Warn("GET /vets/{vetId}/availability - Vet not found: vet_id=%d", vetID)
			handlers.RespondNotFound(w, msgVetNotFound)

		default:
			h.logger.Error("GET /vets/{vetId}/availability - Failed to get schedule: vet_id=%d, error=%v",
				vetID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /vets/{vetId}/availability - Schedule retrieved successfully: vet_id=%d", vetID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
