package reschedule_appointment

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/m04kA/PCM-ScheduleService/internal/api/handlers"
	"github.com/m04kA/PCM-ScheduleService/internal/api/middleware"
	rescheduleAppointment "github.com/m04kA/PCM-ScheduleService/internal/usecase/reschedule_appointment"
)

const (
	msgInvalidAppointmentID = "некорректный ID приёма"
	msgInvalidRequestBody   = "некорректное тело запроса"
	msgMissingUserID        = "отсутствует ID пользователя"
	msgNotFound             = "приём не найден"
	msgForbidden            = "доступ запрещен"
	msgNoSlotChosen         = "новый слот не выбран"
	msgSlotNotAvailable     = "выбранный временной слот недоступен"
	msgCannotReschedule     = "приём не может быть перенесён"
	msgInvalidSlotDate      = "некорректная дата слота"
	msgInvalidSlotTime      = "некорректное время слота"
	msgDayClosed            = "ветеринар не принимает в выбранную дату"
	msgInvalidTimeSlot      = "некорректный временной слот"
	msgSlotInPast           = "время слота уже прошло"
	msgVisitTypeNotServed   = "тип приёма недоступен в выбранную дату"
)

type Handler struct {
	useCase RescheduleAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase RescheduleAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle PATCH /api/v1/appointments/{appointmentId}/reschedule
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	appointmentIDStr := vars["appointmentId"]

	appointmentID, err := strconv.ParseInt(appointmentIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("PATCH /appointments/{id}/reschedule - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("PATCH /appointments/{id}/reschedule - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req RescheduleAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("PATCH /appointments/{id}/reschedule - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req.ToUseCaseRequest(userID, appointmentID))
	if err != nil {
		switch {
		case errors.Is(err, rescheduleAppointment.ErrAppointmentNotFound):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Appointment not found: appointment_id=%d",
				appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, rescheduleAppointment.ErrAccessDenied):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Access denied: appointment_id=%d, user_id=%d",
				appointmentID, userID)
			handlers.RespondForbidden(w, msgForbidden)

		case errors.Is(err, rescheduleAppointment.ErrNoSlotChosen):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - No slot chosen: appointment_id=%d", appointmentID)
			handlers.RespondBadRequest(w, msgNoSlotChosen)

		case errors.Is(err, rescheduleAppointment.ErrSlotNotAvailable):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Slot not available: appointment_id=%d",
				appointmentID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, rescheduleAppointment.ErrCannotReschedule):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Cannot reschedule: appointment_id=%d",
				appointmentID)
			handlers.RespondBadRequest(w, msgCannotReschedule)

		case errors.Is(err, rescheduleAppointment.ErrInvalidDate):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Invalid slot date: appointment_id=%d",
				appointmentID)
			handlers.RespondBadRequest(w, msgInvalidSlotDate)

		case errors.Is(err, rescheduleAppointment.ErrInvalidTime):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Invalid slot time: appointment_id=%d",
				appointmentID)
			handlers.RespondBadRequest(w, msgInvalidSlotTime)

		case errors.Is(err, rescheduleAppointment.ErrDayClosed):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Day closed: appointment_id=%d", appointmentID)
			handlers.RespondBadRequest(w, msgDayClosed)

		case errors.Is(err, rescheduleAppointment.ErrInvalidTimeSlot):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Invalid time slot: appointment_id=%d",
				appointmentID)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, rescheduleAppointment.ErrSlotInPast):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Slot in the past: appointment_id=%d",
				appointmentID)
			handlers.RespondBadRequest(w, msgSlotInPast)

		case errors.Is(err, rescheduleAppointment.ErrVisitTypeNotServed):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Visit type not served: appointment_id=%d",
				appointmentID)
			handlers.RespondBadRequest(w, msgVisitTypeNotServed)

		case errors.Is(err, rescheduleAppointment.ErrInvalidInput):
			h.logger.Warn("PATCH /appointments/{id}/reschedule - Invalid input: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("PATCH /appointments/{id}/reschedule - Failed to reschedule appointment: appointment_id=%d, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PATCH /appointments/{id}/reschedule - Appointment rescheduled successfully: appointment_id=%d, user_id=%d",
		appointmentID, userID)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
