package get_schedule

import (
	"context"

	"github.com/appointly/booking-engine/internal/domain"
	"github.com/appointly/booking-engine/internal/service/timetable/models"
)

type TimetableService interface {
	GetSchedule(ctx context.Context, owner domain.ScheduleOwner) (*models.WeekScheduleResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
