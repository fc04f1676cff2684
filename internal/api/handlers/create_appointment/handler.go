package create_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/PCM-ScheduleService/internal/api/handlers"
	"github.com/m04kA/PCM-ScheduleService/internal/api/middleware"
	createAppointment "github.com/m04kA/PCM-ScheduleService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody  = "некорректное тело запроса"
	msgInvalidDateOrTime   = "некорректный формат даты или времени"
	msgMissingUserID       = "отсутствует ID пользователя"
	msgSlotNotAvailable    = "выбранный временной слот недоступен"
	msgVetNotFound         = "ветеринар не найден"
	msgPetNotFound         = "питомец не найден"
	msgVisitTypeNotOffered = "ветеринар не оказывает этот тип приёма"
	msgInvalidDate         = "некорректная дата приёма"
	msgDayClosed           = "ветеринар не принимает в выбранную дату"
	msgInvalidTimeSlot     = "некорректный временной слот"
	msgSlotInPast          = "время слота уже прошло"
)

type Handler struct {
	useCase CreateAppointmentUseCase
	logger  Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	userID, ok := middleware.GetUserID(r.Context())
	if !ok {
		h.logger.Warn("POST /appointments - Missing user ID")
		handlers.RespondUnauthorized(w, msgMissingUserID)
		return
	}

	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}

	// Конвертируем HTTP запрос в модель use case (с парсингом даты и времени)
	useCaseReq, err := req.ToUseCaseRequest(userID)
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgInvalidDateOrTime)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrSlotNotAvailable):
			h.logger.Warn("POST /appointments - Slot not available: user_id=%d, vet_id=%d", userID, req.VetID)
			handlers.RespondConflict(w, msgSlotNotAvailable)

		case errors.Is(err, createAppointment.ErrVetNotFound):
			h.logger.Warn("POST /appointments - Vet not found: vet_id=%d", req.VetID)
			handlers.RespondNotFound(w, msgVetNotFound)

		case errors.Is(err, createAppointment.ErrPetNotFound):
			h.logger.Warn("POST /appointments - Pet not found: user_id=%d, pet_id=%d", userID, req.PetID)
			handlers.RespondNotFound(w, msgPetNotFound)

		case errors.Is(err, createAppointment.ErrVisitTypeNotOffered):
			h.logger.Warn("POST /appointments - Visit type not offered: vet_id=%d, visit_type=%s",
				req.VetID, req.VisitType)
			handlers.RespondBadRequest(w, msgVisitTypeNotOffered)

		case errors.Is(err, createAppointment.ErrInvalidDate):
			h.logger.Warn("POST /appointments - Invalid date: user_id=%d, vet_id=%d", userID, req.VetID)
			handlers.RespondBadRequest(w, msgInvalidDate)

		case errors.Is(err, createAppointment.ErrDayClosed):
			h.logger.Warn("POST /appointments - Day closed: vet_id=%d, date=%s", req.VetID, req.Date)
			handlers.RespondBadRequest(w, msgDayClosed)

		case errors.Is(err, createAppointment.ErrInvalidTimeSlot):
			h.logger.Warn("POST /appointments - Invalid time slot: vet_id=%d, start_time=%s",
				req.VetID, req.StartTime)
			handlers.RespondBadRequest(w, msgInvalidTimeSlot)

		case errors.Is(err, createAppointment.ErrSlotInPast):
			h.logger.Warn("POST /appointments - Slot in the past: vet_id=%d, date=%s, start_time=%s",
				req.VetID, req.Date, req.StartTime)
			handlers.RespondBadRequest(w, msgSlotInPast)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: user_id=%d, error=%v", userID, err)
			handlers.RespondBadRequest(w, msgInvalidRequestBody)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: user_id=%d, vet_id=%d, error=%v",
				userID, req.VetID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created successfully: appointment_id=%d, user_id=%d, vet_id=%d",
		result.ID, userID, req.VetID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
