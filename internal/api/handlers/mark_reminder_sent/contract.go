package mark_reminder_sent

import (
	"context"

	"github.com/appointly/booking-engine/internal/service/bookings/models"
)

type BookingService interface {
	MarkReminderSent(ctx context.Context, bookingID int64, req *models.MarkReminderSentRequest) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
