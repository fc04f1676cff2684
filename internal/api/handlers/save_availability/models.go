package save_availability

import (
	"github.com/m04kA/PCM-ScheduleService/internal/service/availability/models"
)

// SaveAvailabilityRequest HTTP request model: полная замена недельного расписания
type SaveAvailabilityRequest struct {
	Days []models.DayInput `json:"days"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *SaveAvailabilityRequest) ToServiceRequest(userID, vetID int64) *models.SaveWeekRequest {
	return &models.SaveWeekRequest{
		UserID: userID,
		VetID:  vetID,
		Days:   r.Days,
	}
}
