package get_vet_appointments

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/PCM-ScheduleService/internal/api/handlers"
	"github.com/m04kA/PCM-ScheduleService/internal/api/middleware"
	"github.com/m04kA/PCM-ScheduleService/internal/service/appointments"
	"github.com/m04kA/PCM-ScheduleService/internal/service/appointments/models"
)

const (
	msgInvalidVetID  = "некорректный ID ветеринара"
	msgMissingUserID = "отсутствует ID пользователя"
	msgVetNotFound   = "ветеринар не найден"
	msgForbidden     = "доступ запрещен"
	msgInvalidFilter = "некорректные параметры фильтрации"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle GET /api/v1/vets/{vetId}/appointments?date=&from=&to=&status=&includeInactive=
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	vetIDStr := vars["vetId"]

	vetID, err := strconv.ParseInt(vetIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /vets/{vetId}/appointments - Invalid vet ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVetID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("GET /vets/{vetId}/appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	req := &models.VetAppointmentsRequest{
		UserID: userID,
		VetID:  vetID,
	}

	query := r.URL.Query()
	if date := query.Get("date"); date != "" {
		req.Date = &date
	}
	if from := query.Get("from"); from != "" {
		req.From = &from
	}
	if to := query.Get("to"); to != "" {
		req.To = &to
	}
	if status := query.Get("status"); status != "" {
		req.Status = &status
	}
	req.IncludeInactive = query.Get("includeInactive") == "true"

	result, err := h.service.GetVetAppointments(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /vets/{vetId}/appointments - Invalid filter: vet_id=%d, error=%v", vetID, err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		case errors.Is(err, appointments.ErrVetNotFound):
			h.logger.Warn("GET /vets/{vetId}/appointments - Vet not found: vet_id=%d", vetID)
			handlers.RespondNotFound(w, msgVetNotFound)

		case errors.Is(err, appointments.ErrAccessDenied):
			h.logger.Warn("GET /vets/{vetId}/appointments - Access denied: vet_id=%d, user_id=%d", vetID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		default:
			h.logger.Error("GET /vets/{vetId}/appointments - Failed to get appointments: vet_id=%d, error=%v",
				vetID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /vets/{vetId}/appointments - Appointments retrieved successfully: vet_id=%d, count=%d",
		vetID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
