package create_booking

import (
	"context"
	"time"

	"github.com/appointly/booking-engine/internal/domain"
	"github.com/appointly/booking-engine/internal/integrations/businessservice"
)

// BookingRepository интерфейс репозитория бронирований
type BookingRepository interface {
	Create(ctx context.Context, booking *domain.Booking) (*domain.Booking, error)
	GetByBusinessWithFilter(ctx context.Context, filter domain.BusinessBookingsFilter) ([]*domain.Booking, error)
}

// ScheduleRepository интерфейс репозитория недельных расписаний
type ScheduleRepository interface {
	GetByOwner(ctx context.Context, owner domain.ScheduleOwner) (*domain.WeekSchedule, error)
}

// BlackoutRepository интерфейс репозитория периодов блокировок
type BlackoutRepository interface {
	ListForDate(ctx context.Context, businessID int64, date time.Time) ([]domain.BlackoutPeriod, error)
}

// ConfigRepository интерфейс репозитория конфигурации сетки слотов
type ConfigRepository interface {
	GetConfigWithHierarchy(ctx context.Context, businessID int64, employeeID *int64) (*domain.BusinessSlotsConfig, error)
}

// BusinessServiceClient интерфейс клиента для BusinessService
type BusinessServiceClient interface {
	GetBusiness(ctx context.Context, businessID int64) (*businessservice.Business, error)
	GetService(ctx context.Context, businessID, serviceID int64) (*businessservice.Service, error)
	GetServices(ctx context.Context, businessID int64) ([]businessservice.Service, error)
}

// SlotLocker короткоживущая блокировка слота перед транзакцией.
// Опциональная зависимость: nil-реализация допустима, финальную гарантию
// даёт сериализуемая транзакция и уникальный индекс.
type SlotLocker interface {
	Acquire(ctx context.Context, businessID int64, employeeID *int64, date string, startTime string) (string, error)
	Release(ctx context.Context, businessID int64, employeeID *int64, date string, startTime string, token string) error
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
