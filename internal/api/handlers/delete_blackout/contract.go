package delete_blackout

import (
	"context"
)

type TimetableService interface {
	DeleteBlackout(ctx context.Context, blackoutID int64, userID int64) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
