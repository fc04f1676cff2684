package save_availability

import (
	"context"

	"github.com/m04kA/PCM-ScheduleService/internal/service/availability/models"
)

type AvailabilityService interface {
	SaveWeek(ctx context.Context, req *models.SaveWeekRequest) (*models.WeekResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
