package delete_override

import (
	"context"
)

type AvailabilityService interface {
	DeleteOverride(ctx context.Context, userID, vetID int64, date string) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
