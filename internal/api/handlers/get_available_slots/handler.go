package get_available_slots

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"github.com/gorilla/mux"

	"github.com/m04kA/PCM-ScheduleService/internal/api/handlers"
	"github.com/m04kA/PCM-ScheduleService/internal/api/middleware"
	"github.com/m04kA/PCM-ScheduleService/internal/domain"
	getAvailableSlots "github.com/m04kA/PCM-ScheduleService/internal/usecase/get_available_slots"
)

const (
	msgInvalidVetID  = "некорректный ID ветеринара"
	msgInvalidDate   = "некорректный формат даты, ожидается YYYY-MM-DD"
	msgInvalidDays   = "некорректное количество дней"
	msgVetNotFound   = "ветеринар не найден"
	msgDateInPast    = "дата не может быть в прошлом"
	msgInvalidParams = "некорректные параметры запроса"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/vets/{vetId}/available-slots?date=YYYY-MM-DD&days=N&visitType=...
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	// Извлекаем vetId из URL
	vars := mux.Vars(r)
	vetIDStr := vars["vetId"]

	vetID, err := strconv.ParseInt(vetIDStr, 10, 64)
	if err != nil {
		h.logger.Warn("GET /vets/{vetId}/available-slots - Invalid vet ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidVetID)
		return
	}

	// Дата начала диапазона; по умолчанию сегодня
	fromDate := time.Now()
	if dateStr := r.URL.Query().Get("date"); dateStr != "" {
		fromDate, err = time.Parse(domain.DateFormat, dateStr)
		if err != nil {
			h.logger.Warn("GET /vets/{vetId}/available-slots - Invalid date %q: %v", dateStr, err)
			handlers.RespondBadRequest(w, msgInvalidDate)
			return
		}
	}

	// Размер диапазона в днях; 0 = значение по умолчанию
	rangeDays := 0
	if daysStr := r.URL.Query().Get("days"); daysStr != "" {
		rangeDays, err = strconv.Atoi(daysStr)
		if err != nil {
			h.logger.Warn("GET /vets/{vetId}/available-slots - Invalid days %q: %v", daysStr, err)
			handlers.RespondBadRequest(w, msgInvalidDays)
			return
		}
	}

	var visitType *string
	if vt := r.URL.Query().Get("visitType"); vt != "" {
		visitType = &vt
	}

	// Эндпоинт публичный: userID опционален и используется только для логирования
	userID, _ := middleware.GetUserID(r.Context())

	result, err := h.useCase.Execute(r.Context(), &getAvailableSlots.Request{
		UserID:    userID,
		VetID:     vetID,
		FromDate:  fromDate,
		RangeDays: rangeDays,
		VisitType: visitType,
	})
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrVetNotFound):
			h.logger.Warn("GET /vets/{vetId}/available-slots - Vet not found: vet_id=%d", vetID)
			handlers.RespondNotFound(w, msgVetNotFound)

		case errors.Is(err, getAvailableSlots.ErrInvalidDate):
			h.logger.Warn("GET /vets/{vetId}/available-slots - Date in the past: vet_id=%d", vetID)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /vets/{vetId}/available-slots - Invalid params: vet_id=%d, error=%v", vetID, err)
			handlers.RespondBadRequest(w, msgInvalidParams)

		default:
			h.logger.Error("GET /vets/{vetId}/available-slots - Failed to get slots: vet_id=%d, error=%v", vetID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /vets/{vetId}/available-slots - Slots retrieved successfully: vet_id=%d, days=%d",
		vetID, len(result.Days))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
