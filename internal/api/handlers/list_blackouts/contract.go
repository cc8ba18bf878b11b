package list_blackouts

import (
	"context"

	"github.com/appointly/booking-engine/internal/service/timetable/models"
)

type TimetableService interface {
	ListBlackouts(ctx context.Context, businessID int64, userID int64) (*models.BlackoutListResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
