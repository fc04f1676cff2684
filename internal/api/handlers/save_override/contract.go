package save_override

import (
	"context"

	"github.com/m04kA/PCM-ScheduleService/internal/service/availability/models"
)

type AvailabilityService interface {
	UpsertOverride(ctx context.Context, req *models.UpsertOverrideRequest) (*models.OverrideResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
