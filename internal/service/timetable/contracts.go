package timetable

import (
	"context"
	"time"

	"github.com/appointly/booking-engine/internal/domain"
	"github.com/appointly/booking-engine/internal/integrations/businessservice"
)

// ScheduleRepository интерфейс репозитория недельных расписаний
type ScheduleRepository interface {
	GetByOwner(ctx context.Context, owner domain.ScheduleOwner) (*domain.WeekSchedule, error)
	Replace(ctx context.Context, owner domain.ScheduleOwner, week *domain.WeekSchedule) error
}

// BlackoutRepository интерфейс репозитория периодов блокировок
type BlackoutRepository interface {
	Create(ctx context.Context, period *domain.BlackoutPeriod) (*domain.BlackoutPeriod, error)
	GetByID(ctx context.Context, id int64) (*domain.BlackoutPeriod, error)
	Delete(ctx context.Context, id int64) error
	ListByBusiness(ctx context.Context, businessID int64) ([]domain.BlackoutPeriod, error)
	ListForDate(ctx context.Context, businessID int64, date time.Time) ([]domain.BlackoutPeriod, error)
}

// BusinessServiceClient интерфейс клиента для BusinessService
type BusinessServiceClient interface {
	GetBusiness(ctx context.Context, businessID int64) (*businessservice.Business, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
