package get_business_config

import (
	"context"

	"github.com/appointly/booking-engine/internal/service/config/models"
)

type ConfigService interface {
	GetEffective(ctx context.Context, businessID int64, employeeID *int64) (*models.EffectiveConfigResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
