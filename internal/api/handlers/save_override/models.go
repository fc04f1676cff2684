package save_override

import (
	"github.com/m04kA/PCM-ScheduleService/internal/service/availability/models"
	"github.com/m04kA/PCM-ScheduleService/pkg/types"
)

// SaveOverrideRequest HTTP request model: переопределение расписания на дату.
// Дата берётся из URL, а не из тела
type SaveOverrideRequest struct {
	IsClosed            bool             `json:"isClosed"`
	StartTime           types.TimeString `json:"startTime,omitempty"`
	EndTime             types.TimeString `json:"endTime,omitempty"`
	SlotDurationMinutes int              `json:"slotDurationMinutes,omitempty"`
	VisitTypes          []string         `json:"visitTypes,omitempty"`
}

// ToServiceRequest конвертирует HTTP запрос в модель сервиса
func (r *SaveOverrideRequest) ToServiceRequest(userID, vetID int64, date string) *models.UpsertOverrideRequest {
	return &models.UpsertOverrideRequest{
		UserID:              userID,
		VetID:               vetID,
		Date:                date,
		IsClosed:            r.IsClosed,
		StartTime:           r.StartTime,
		EndTime:             r.EndTime,
		SlotDurationMinutes: r.SlotDurationMinutes,
		VisitTypes:          r.VisitTypes,
	}
}
