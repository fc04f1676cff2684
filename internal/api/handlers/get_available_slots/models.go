package get_available_slots

import (
	getAvailableSlots "github.com/m04kA/PCM-ScheduleService/internal/usecase/get_available_slots"
)

// SlotResponse HTTP модель слота
type SlotResponse struct {
	Time            string `json:"time"` // 12-часовой формат, например "10:30 AM"
	DurationMinutes int    `json:"durationMinutes"`
	Status          string `json:"status"` // available | booked
}

// DaySlotsResponse слоты одного календарного дня
type DaySlotsResponse struct {
	Date  string         `json:"date"` // YYYY-MM-DD
	Slots []SlotResponse `json:"slots"`
}

// SlotsResponse HTTP модель ответа
type SlotsResponse struct {
	VetID int64              `json:"vetId"`
	Days  []DaySlotsResponse `json:"days"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *getAvailableSlots.Response) *SlotsResponse {
	out := &SlotsResponse{
		VetID: resp.VetID,
		Days:  make([]DaySlotsResponse, 0, len(resp.Days)),
	}
	for _, day := range resp.Days {
		dayResp := DaySlotsResponse{
			Date:  day.Date,
			Slots: make([]SlotResponse, 0, len(day.Slots)),
		}
		for _, slot := range day.Slots {
			dayResp.Slots = append(dayResp.Slots, SlotResponse{
				Time:            slot.Time,
				DurationMinutes: slot.DurationMinutes,
				Status:          slot.Status,
			})
		}
		out.Days = append(out.Days, dayResp)
	}
	return out
}
