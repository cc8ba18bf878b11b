package get_day_schedule

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/appointly/booking-engine/internal/domain"
	"github.com/appointly/booking-engine/internal/engine"
	configRepo "github.com/appointly/booking-engine/internal/infra/storage/config"
	scheduleRepo "github.com/appointly/booking-engine/internal/infra/storage/schedule"
	businessClient "github.com/appointly/booking-engine/internal/integrations/businessservice"
)

// UseCase use case построения расписания дня: классифицирует каждый
// кандидат-слот запрошенной даты как available / booked / past / blocked
type UseCase struct {
	bookingRepo    BookingRepository
	scheduleRepo   ScheduleRepository
	blackoutRepo   BlackoutRepository
	configRepo     ConfigRepository
	businessClient BusinessServiceClient
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	blackoutRepo BlackoutRepository,
	configRepo ConfigRepository,
	businessClient BusinessServiceClient,
	timeProvider TimeProvider,
	logger Logger,
) *UseCase {
	if timeProvider == nil {
		timeProvider = &RealTimeProvider{}
	}
	return &UseCase{
		bookingRepo:    bookingRepo,
		scheduleRepo:   scheduleRepo,
		blackoutRepo:   blackoutRepo,
		configRepo:     configRepo,
		businessClient: businessClient,
		timeProvider:   timeProvider,
		logger:         logger,
	}
}

// Execute выполняет use case построения расписания дня
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetDaySchedule: user=%d, business=%d, employee=%v, service=%d, date=%s",
		req.UserID, req.BusinessID, req.EmployeeID, req.ServiceID, req.Date.Format(domain.DateFormat))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("GetDaySchedule: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Получаем бизнес и его таймзону
	business, err := uc.businessClient.GetBusiness(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, businessClient.ErrBusinessNotFound) {
			uc.logger.Warn("GetDaySchedule: business id=%d not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("GetDaySchedule: failed to get business id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	loc, err := time.LoadLocation(business.Timezone)
	if err != nil {
		uc.logger.Error("GetDaySchedule: bad timezone %q for business=%d: %v", business.Timezone, business.ID, err)
		return nil, fmt.Errorf("%w: bad business timezone: %v", ErrInternal, err)
	}

	// 3. Получаем услугу
	service, err := uc.businessClient.GetService(ctx, req.BusinessID, req.ServiceID)
	if err != nil {
		if errors.Is(err, businessClient.ErrServiceNotFound) {
			uc.logger.Warn("GetDaySchedule: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("GetDaySchedule: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 4. Проверяем сотрудника, если он указан
	if req.EmployeeID != nil {
		if err := validateEmployee(business, service, *req.EmployeeID); err != nil {
			uc.logger.Warn("GetDaySchedule: employee id=%d check failed: %v", *req.EmployeeID, err)
			return nil, err
		}
	}

	// 5. Дата не должна быть в прошлом по календарю бизнеса
	if err := validateDate(req.Date, now, loc); err != nil {
		uc.logger.Warn("GetDaySchedule: date validation failed: %v", err)
		return nil, err
	}

	// 6. Разрешаем рабочие часы: расписание сотрудника, затем расписание
	// бизнеса, затем дефолтное окно
	week, err := uc.resolveSchedule(ctx, req.BusinessID, req.EmployeeID)
	if err != nil {
		return nil, err
	}

	// 7. Блокировки, действующие на дату
	blackouts, err := uc.blackoutRepo.ListForDate(ctx, req.BusinessID, req.Date)
	if err != nil {
		uc.logger.Error("GetDaySchedule: failed to get blackouts: %v", err)
		return nil, fmt.Errorf("%w: failed to get blackouts: %v", ErrInternal, err)
	}

	// 8. Активные бронирования бизнеса на дату. Фильтрация по ресурсу
	// происходит в движке: бронирования чужих сотрудников слот не занимают
	bookings, err := uc.bookingRepo.GetByBusinessWithFilter(ctx, domain.BusinessBookingsFilter{
		BusinessID:  req.BusinessID,
		AnyEmployee: true,
		StartDate:   &req.Date,
		EndDate:     &req.Date,
	})
	if err != nil {
		uc.logger.Error("GetDaySchedule: failed to get bookings: %v", err)
		return nil, fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
	}

	// 9. Действующий шаг сетки
	granularity, err := uc.resolveGranularity(ctx, req.BusinessID, req.EmployeeID)
	if err != nil {
		return nil, err
	}

	// 10. Классифицируем слоты
	slots, err := engine.Classify(engine.ClassifyInput{
		Date:                   req.Date,
		Schedule:               *week,
		Blackouts:              blackouts,
		Bookings:               bookings,
		EmployeeID:             req.EmployeeID,
		ServiceDurationMinutes: service.DurationMinutes,
		GranularityMinutes:     granularity,
		Now:                    now,
		Location:               loc,
	})
	if err != nil {
		uc.logger.Error("GetDaySchedule: classification failed: %v", err)
		return nil, fmt.Errorf("%w: classification failed: %v", ErrInternal, err)
	}

	uc.logger.Info("GetDaySchedule: classified %d slots for business=%d, date=%s",
		len(slots), req.BusinessID, req.Date.Format(domain.DateFormat))

	return &Response{
		Date:               req.Date,
		BusinessID:         req.BusinessID,
		EmployeeID:         req.EmployeeID,
		ServiceID:          req.ServiceID,
		GranularityMinutes: granularity,
		Slots:              toSlots(slots),
	}, nil
}

// resolveSchedule возвращает действующее недельное расписание:
// сотрудника, затем бизнеса, затем дефолтное окно 08:00-19:00
func (uc *UseCase) resolveSchedule(ctx context.Context, businessID int64, employeeID *int64) (*domain.WeekSchedule, error) {
	if employeeID != nil {
		week, err := uc.scheduleRepo.GetByOwner(ctx, domain.ScheduleOwner{BusinessID: businessID, EmployeeID: employeeID})
		if err == nil {
			return week, nil
		}
		if !errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			uc.logger.Error("GetDaySchedule: failed to get employee schedule: %v", err)
			return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
		}
	}

	week, err := uc.scheduleRepo.GetByOwner(ctx, domain.ScheduleOwner{BusinessID: businessID})
	if err == nil {
		return week, nil
	}
	if !errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
		uc.logger.Error("GetDaySchedule: failed to get business schedule: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	uc.logger.Info("GetDaySchedule: no schedule for business=%d, using default window", businessID)
	defaultWeek := domain.DefaultWeekSchedule()
	return &defaultWeek, nil
}

// resolveGranularity возвращает действующий шаг сетки: явный из конфигурации
// либо выведенный из длительности самой короткой услуги бизнеса
func (uc *UseCase) resolveGranularity(ctx context.Context, businessID int64, employeeID *int64) (int, error) {
	config, err := uc.configRepo.GetConfigWithHierarchy(ctx, businessID, employeeID)
	if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
		uc.logger.Error("GetDaySchedule: failed to get config: %v", err)
		return 0, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}

	if config != nil && config.HasExplicitGranularity() {
		return *config.GranularityMinutes, nil
	}

	services, err := uc.businessClient.GetServices(ctx, businessID)
	if err != nil {
		uc.logger.Error("GetDaySchedule: failed to get services for business=%d: %v", businessID, err)
		return 0, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}

	durations := make([]int, 0, len(services))
	for _, svc := range services {
		durations = append(durations, svc.DurationMinutes)
	}
	return domain.InferGranularity(durations), nil
}

func toSlots(candidates []domain.CandidateSlot) []Slot {
	slots := make([]Slot, 0, len(candidates))
	for _, c := range candidates {
		slots = append(slots, Slot{
			StartTime: c.StartTime,
			Status:    c.Status,
			Reason:    c.Reason,
		})
	}
	return slots
}
