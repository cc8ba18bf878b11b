package config

import (
	"context"

	"github.com/appointly/booking-engine/internal/domain"
	"github.com/appointly/booking-engine/internal/integrations/businessservice"
)

// ConfigRepository интерфейс репозитория конфигурации сетки слотов
type ConfigRepository interface {
	GetByBusinessAndEmployee(ctx context.Context, businessID int64, employeeID *int64) (*domain.BusinessSlotsConfig, error)
	GetConfigWithHierarchy(ctx context.Context, businessID int64, employeeID *int64) (*domain.BusinessSlotsConfig, error)
	GetAllByBusiness(ctx context.Context, businessID int64) ([]*domain.BusinessSlotsConfig, error)
	Upsert(ctx context.Context, config *domain.BusinessSlotsConfig) (*domain.BusinessSlotsConfig, error)
	Delete(ctx context.Context, businessID int64, employeeID *int64) error
}

// BusinessServiceClient интерфейс клиента для BusinessService
type BusinessServiceClient interface {
	GetBusiness(ctx context.Context, businessID int64) (*businessservice.Business, error)
	GetServices(ctx context.Context, businessID int64) ([]businessservice.Service, error)
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
