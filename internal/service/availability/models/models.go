package models

import (
	"time"

	"github.com/m04kA/PCM-ScheduleService/internal/domain"
	"github.com/m04kA/PCM-ScheduleService/pkg/types"
)

// Request модели

// BreakInput перерыв внутри рабочего дня
type BreakInput struct {
	StartTime types.TimeString `json:"startTime"`
	EndTime   types.TimeString `json:"endTime"`
}

// DayInput конфигурация одного дня недели
// Для закрытого дня (isClosed=true) интервал и перерывы не передаются
type DayInput struct {
	DayOfWeek           int              `json:"dayOfWeek"` // 0 = воскресенье .. 6 = суббота
	IsClosed            bool             `json:"isClosed"`
	StartTime           types.TimeString `json:"startTime,omitempty"`
	EndTime             types.TimeString `json:"endTime,omitempty"`
	SlotDurationMinutes int              `json:"slotDurationMinutes,omitempty"`
	VisitTypes          []string         `json:"visitTypes,omitempty"`
	Breaks              []BreakInput     `json:"breaks,omitempty"`
}

// SaveWeekRequest запрос на полную замену недельного расписания ветеринара
type SaveWeekRequest struct {
	UserID int64      `json:"userId"`
	VetID  int64      `json:"vetId"`
	Days   []DayInput `json:"days"`
}

// UpsertOverrideRequest запрос на создание/обновление переопределения даты
type UpsertOverrideRequest struct {
	UserID              int64            `json:"userId"`
	VetID               int64            `json:"vetId"`
	Date                string           `json:"date"` // YYYY-MM-DD
	IsClosed            bool             `json:"isClosed"`
	StartTime           types.TimeString `json:"startTime,omitempty"`
	EndTime             types.TimeString `json:"endTime,omitempty"`
	SlotDurationMinutes int              `json:"slotDurationMinutes,omitempty"`
	VisitTypes          []string         `json:"visitTypes,omitempty"`
}

// Response модели

// BreakResponse перерыв дня в ответе
type BreakResponse struct {
	StartTime types.TimeString `json:"startTime"`
	EndTime   types.TimeString `json:"endTime"`
}

// DayResponse конфигурация дня недели в ответе
type DayResponse struct {
	DayOfWeek           int              `json:"dayOfWeek"`
	IsClosed            bool             `json:"isClosed"`
	StartTime           types.TimeString `json:"startTime,omitempty"`
	EndTime             types.TimeString `json:"endTime,omitempty"`
	SlotDurationMinutes int              `json:"slotDurationMinutes,omitempty"`
	VisitTypes          []string         `json:"visitTypes"`
	Breaks              []BreakResponse  `json:"breaks"`
}

// OverrideResponse переопределение даты в ответе
type OverrideResponse struct {
	Date                string           `json:"date"`
	IsClosed            bool             `json:"isClosed"`
	StartTime           types.TimeString `json:"startTime,omitempty"`
	EndTime             types.TimeString `json:"endTime,omitempty"`
	SlotDurationMinutes int              `json:"slotDurationMinutes,omitempty"`
	VisitTypes          []string         `json:"visitTypes"`
}

// WeekResponse недельное расписание с ближайшими переопределениями
type WeekResponse struct {
	VetID     int64              `json:"vetId"`
	Days      []DayResponse      `json:"days"`
	Overrides []OverrideResponse `json:"overrides"`
}

// Методы конвертации

// ToDomainWeek конвертирует запрос в список доменных моделей дней недели
func (r *SaveWeekRequest) ToDomainWeek() []*domain.WeeklyAvailability {
	week := make([]*domain.WeeklyAvailability, 0, len(r.Days))
	for _, day := range r.Days {
		entry := &domain.WeeklyAvailability{
			VetID:               r.VetID,
			DayOfWeek:           day.DayOfWeek,
			IsClosed:            day.IsClosed,
			StartTime:           day.StartTime,
			EndTime:             day.EndTime,
			SlotDurationMinutes: day.SlotDurationMinutes,
			VisitTypes:          day.VisitTypes,
			Breaks:              make([]domain.Break, 0, len(day.Breaks)),
		}
		if entry.VisitTypes == nil {
			entry.VisitTypes = []string{}
		}
		for _, b := range day.Breaks {
			entry.Breaks = append(entry.Breaks, domain.Break{
				StartTime: b.StartTime,
				EndTime:   b.EndTime,
			})
		}
		week = append(week, entry)
	}
	return week
}

// ToDomainOverride конвертирует запрос в доменную модель переопределения
func (r *UpsertOverrideRequest) ToDomainOverride(date time.Time) *domain.Override {
	visitTypes := r.VisitTypes
	if visitTypes == nil {
		visitTypes = []string{}
	}
	return &domain.Override{
		VetID:               r.VetID,
		Date:                date,
		IsClosed:            r.IsClosed,
		StartTime:           r.StartTime,
		EndTime:             r.EndTime,
		SlotDurationMinutes: r.SlotDurationMinutes,
		VisitTypes:          visitTypes,
	}
}

// FromDomainWeek конвертирует доменные модели недели и переопределений в DTO
func FromDomainWeek(vetID int64, week []*domain.WeeklyAvailability, overrides []*domain.Override) *WeekResponse {
	resp := &WeekResponse{
		VetID:     vetID,
		Days:      make([]DayResponse, 0, len(week)),
		Overrides: make([]OverrideResponse, 0, len(overrides)),
	}

	for _, day := range week {
		dayResp := DayResponse{
			DayOfWeek:           day.DayOfWeek,
			IsClosed:            day.IsClosed,
			StartTime:           day.StartTime,
			EndTime:             day.EndTime,
			SlotDurationMinutes: day.SlotDurationMinutes,
			VisitTypes:          day.VisitTypes,
			Breaks:              make([]BreakResponse, 0, len(day.Breaks)),
		}
		if dayResp.VisitTypes == nil {
			dayResp.VisitTypes = []string{}
		}
		for _, b := range day.Breaks {
			dayResp.Breaks = append(dayResp.Breaks, BreakResponse{
				StartTime: b.StartTime,
				EndTime:   b.EndTime,
			})
		}
		resp.Days = append(resp.Days, dayResp)
	}

	for _, o := range overrides {
		if ovResp := FromDomainOverride(o); ovResp != nil {
			resp.Overrides = append(resp.Overrides, *ovResp)
		}
	}

	return resp
}

// FromDomainOverride конвертирует доменную модель переопределения в DTO
func FromDomainOverride(o *domain.Override) *OverrideResponse {
	if o == nil {
		return nil
	}
	visitTypes := o.VisitTypes
	if visitTypes == nil {
		visitTypes = []string{}
	}
	return &OverrideResponse{
		Date:                o.Date.Format(domain.DateFormat),
		IsClosed:            o.IsClosed,
		StartTime:           o.StartTime,
		EndTime:             o.EndTime,
		SlotDurationMinutes: o.SlotDurationMinutes,
		VisitTypes:          visitTypes,
	}
}
