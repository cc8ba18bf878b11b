package update_schedule

import (
	"context"

	"github.com/appointly/booking-engine/internal/service/timetable/models"
)

type TimetableService interface {
	UpdateSchedule(ctx context.Context, req *models.UpdateScheduleRequest) (*models.WeekScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
