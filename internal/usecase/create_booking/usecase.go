package create_booking

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/appointly/booking-engine/internal/domain"
	"github.com/appointly/booking-engine/internal/engine"
	bookingRepo "github.com/appointly/booking-engine/internal/infra/storage/booking"
	configRepo "github.com/appointly/booking-engine/internal/infra/storage/config"
	scheduleRepo "github.com/appointly/booking-engine/internal/infra/storage/schedule"
	businessClient "github.com/appointly/booking-engine/internal/integrations/businessservice"
)

// UseCase use case создания бронирования.
//
// Проверка доступности и вставка выполняются в одной сериализуемой
// транзакции: повторная классификация запрошенного слота внутри транзакции
// видит те же бронирования, что и вставка (FOR UPDATE на бронированиях дня).
// Уникальный индекс по активным слотам - страховка на случай гонки,
// Redis-блокировка перед транзакцией - барьер от лишних конфликтов.
type UseCase struct {
	bookingRepo    BookingRepository
	scheduleRepo   ScheduleRepository
	blackoutRepo   BlackoutRepository
	configRepo     ConfigRepository
	businessClient BusinessServiceClient
	slotLocker     SlotLocker
	txManager      TransactionManager
	timeProvider   TimeProvider
	logger         Logger
}

// NewUseCase создает новый экземпляр use case
// slotLocker может быть nil - тогда барьер перед транзакцией не используется
func NewUseCase(
	bookingRepo BookingRepository,
	scheduleRepo ScheduleRepository,
	blackoutRepo BlackoutRepository,
	configRepo ConfigRepository,
	businessClient BusinessServiceClient,
	slotLocker SlotLocker,
	txManager TransactionManager,
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
		slotLocker:     slotLocker,
		txManager:      txManager,
		timeProvider:   timeProvider,
		logger:         logger,
	}
}

// Execute выполняет use case создания бронирования
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateBooking: user=%d, business=%d, employee=%v, service=%d, date=%s, time=%s",
		req.UserID, req.BusinessID, req.EmployeeID, req.ServiceID, req.Date.Format(domain.DateFormat), req.StartTime)

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateBooking: validation failed: %v", err)
		return nil, err
	}

	now := uc.timeProvider.Now()

	// 2. Получаем бизнес и его таймзону
	business, err := uc.businessClient.GetBusiness(ctx, req.BusinessID)
	if err != nil {
		if errors.Is(err, businessClient.ErrBusinessNotFound) {
			uc.logger.Warn("CreateBooking: business id=%d not found", req.BusinessID)
			return nil, ErrBusinessNotFound
		}
		uc.logger.Error("CreateBooking: failed to get business id=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	loc, err := time.LoadLocation(business.Timezone)
	if err != nil {
		uc.logger.Error("CreateBooking: bad timezone %q for business=%d: %v", business.Timezone, business.ID, err)
		return nil, fmt.Errorf("%w: bad business timezone: %v", ErrInternal, err)
	}

	// 3. Получаем услугу
	service, err := uc.businessClient.GetService(ctx, req.BusinessID, req.ServiceID)
	if err != nil {
		if errors.Is(err, businessClient.ErrServiceNotFound) {
			uc.logger.Warn("CreateBooking: service id=%d not found", req.ServiceID)
			return nil, ErrServiceNotFound
		}
		uc.logger.Error("CreateBooking: failed to get service id=%d: %v", req.ServiceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	// 4. Проверяем сотрудника, если он указан
	if req.EmployeeID != nil {
		if err := validateEmployee(business, service, *req.EmployeeID); err != nil {
			uc.logger.Warn("CreateBooking: employee id=%d check failed: %v", *req.EmployeeID, err)
			return nil, err
		}
	}

	// 5. Дата не должна быть в прошлом по календарю бизнеса
	if err := validateDate(req.Date, now, loc); err != nil {
		uc.logger.Warn("CreateBooking: date validation failed: %v", err)
		return nil, err
	}

	// 6. Барьер перед транзакцией: блокируем пару (ресурс, слот)
	if uc.slotLocker != nil {
		dateStr := req.Date.Format(domain.DateFormat)
		token, err := uc.slotLocker.Acquire(ctx, req.BusinessID, req.EmployeeID, dateStr, req.StartTime.String())
		if err != nil {
			uc.logger.Warn("CreateBooking: slot lock busy for business=%d, date=%s, time=%s",
				req.BusinessID, dateStr, req.StartTime)
			return nil, fmt.Errorf("%w: %s", ErrSlotNotAvailable, engine.MsgSlotUnavailable)
		}
		defer func() {
			if err := uc.slotLocker.Release(ctx, req.BusinessID, req.EmployeeID, dateStr, req.StartTime.String(), token); err != nil {
				uc.logger.Warn("CreateBooking: failed to release slot lock: %v", err)
			}
		}()
	}

	var result *domain.Booking

	// 7. Проверка доступности и вставка в одной сериализуемой транзакции
	err = uc.txManager.DoSerializable(ctx, func(txCtx context.Context) error {
		// 7.1. Действующий шаг сетки
		granularity, err := uc.resolveGranularity(txCtx, req.BusinessID, req.EmployeeID)
		if err != nil {
			return err
		}

		// 7.2. Действующее недельное расписание
		week, err := uc.resolveSchedule(txCtx, req.BusinessID, req.EmployeeID)
		if err != nil {
			return err
		}

		// 7.3. Блокировки и активные бронирования дня
		// Чтение бронирований внутри транзакции берет FOR UPDATE на строках дня
		blackouts, err := uc.blackoutRepo.ListForDate(txCtx, req.BusinessID, req.Date)
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get blackouts: %v", err)
			return fmt.Errorf("%w: failed to get blackouts: %v", ErrInternal, err)
		}

		bookings, err := uc.bookingRepo.GetByBusinessWithFilter(txCtx, domain.BusinessBookingsFilter{
			BusinessID:  req.BusinessID,
			AnyEmployee: true,
			StartDate:   &req.Date,
			EndDate:     &req.Date,
		})
		if err != nil {
			uc.logger.Error("CreateBooking: failed to get bookings: %v", err)
			return fmt.Errorf("%w: failed to get bookings: %v", ErrInternal, err)
		}

		// 7.4. Повторная классификация: запрошенный слот обязан быть available
		// по тем же правилам, по которым он показывался клиенту
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
			uc.logger.Error("CreateBooking: classification failed: %v", err)
			return fmt.Errorf("%w: classification failed: %v", ErrInternal, err)
		}

		if err := uc.checkRequestedSlot(slots, req); err != nil {
			return err
		}

		// 7.5. Статус по требованию согласия бизнеса
		status := domain.StatusConfirmed
		if business.ConsentRequired {
			status = domain.StatusPendingConsent
		}

		// 7.6. Создаем бронирование с денормализацией данных услуги
		booking := &domain.Booking{
			ConfirmationCode: uuid.NewString(),
			ClientID:         req.UserID,
			BusinessID:       req.BusinessID,
			EmployeeID:       req.EmployeeID,
			ServiceID:        req.ServiceID,
			BookingDate:      req.Date,
			StartTime:        req.StartTime,
			DurationMinutes:  service.DurationMinutes,
			Status:           status,
			ServiceName:      service.Name,
			ServicePrice:     servicePrice(service),
			Notes:            req.Notes,
		}

		created, err := uc.bookingRepo.Create(txCtx, booking)
		if err != nil {
			if errors.Is(err, bookingRepo.ErrDuplicateSlot) {
				uc.logger.Warn("CreateBooking: duplicate slot for business=%d, date=%s, time=%s",
					req.BusinessID, req.Date.Format(domain.DateFormat), req.StartTime)
				return fmt.Errorf("%w: %s", ErrSlotNotAvailable, engine.MsgSlotUnavailable)
			}
			uc.logger.Error("CreateBooking: failed to create booking: %v", err)
			return fmt.Errorf("%w: failed to create booking: %v", ErrInternal, err)
		}

		result = created
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info("CreateBooking: successfully created booking id=%d, status=%s", result.ID, result.Status)

	return &Response{
		ID:               result.ID,
		ConfirmationCode: result.ConfirmationCode,
		ClientID:         result.ClientID,
		BusinessID:       result.BusinessID,
		EmployeeID:       result.EmployeeID,
		ServiceID:        result.ServiceID,
		BookingDate:      result.BookingDate,
		StartTime:        result.StartTime,
		DurationMinutes:  result.DurationMinutes,
		Status:           string(result.Status),
		ServiceName:      result.ServiceName,
		ServicePrice:     result.ServicePrice,
		Notes:            result.Notes,
		CreatedAt:        result.CreatedAt,
		UpdatedAt:        result.UpdatedAt,
	}, nil
}

// checkRequestedSlot находит запрошенный слот среди кандидатов дня
// и переводит его классификацию в ошибку usecase
func (uc *UseCase) checkRequestedSlot(slots []domain.CandidateSlot, req *Request) error {
	for i := range slots {
		if slots[i].StartTime != req.StartTime {
			continue
		}

		switch slots[i].Status {
		case domain.SlotAvailable:
			return nil
		case domain.SlotPast:
			uc.logger.Warn("CreateBooking: slot %s is in the past", req.StartTime)
			return ErrTooLateToBook
		case domain.SlotBooked:
			uc.logger.Warn("CreateBooking: slot %s is already booked", req.StartTime)
			return fmt.Errorf("%w: %s", ErrSlotNotAvailable, engine.MsgSlotUnavailable)
		case domain.SlotBlocked:
			if slots[i].Reason == engine.MsgTooSoon {
				uc.logger.Warn("CreateBooking: slot %s violates the booking lead time", req.StartTime)
				return fmt.Errorf("%w: %s", ErrTooLateToBook, engine.MsgTooSoon)
			}
			uc.logger.Warn("CreateBooking: slot %s is blocked: %s", req.StartTime, slots[i].Reason)
			return fmt.Errorf("%w: %s", ErrSlotBlocked, slots[i].Reason)
		}
	}

	// Метки нет среди кандидатов: время вне рабочих часов или не на сетке
	uc.logger.Warn("CreateBooking: slot %s is not on the grid", req.StartTime)
	return ErrInvalidTimeSlot
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
			uc.logger.Error("CreateBooking: failed to get employee schedule: %v", err)
			return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
		}
	}

	week, err := uc.scheduleRepo.GetByOwner(ctx, domain.ScheduleOwner{BusinessID: businessID})
	if err == nil {
		return week, nil
	}
	if !errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
		uc.logger.Error("CreateBooking: failed to get business schedule: %v", err)
		return nil, fmt.Errorf("%w: failed to get schedule: %v", ErrInternal, err)
	}

	defaultWeek := domain.DefaultWeekSchedule()
	return &defaultWeek, nil
}

// resolveGranularity возвращает действующий шаг сетки: явный из конфигурации
// либо выведенный из длительности самой короткой услуги бизнеса
func (uc *UseCase) resolveGranularity(ctx context.Context, businessID int64, employeeID *int64) (int, error) {
	config, err := uc.configRepo.GetConfigWithHierarchy(ctx, businessID, employeeID)
	if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
		uc.logger.Error("CreateBooking: failed to get config: %v", err)
		return 0, fmt.Errorf("%w: failed to get config: %v", ErrInternal, err)
	}

	if config != nil && config.HasExplicitGranularity() {
		return *config.GranularityMinutes, nil
	}

	services, err := uc.businessClient.GetServices(ctx, businessID)
	if err != nil {
		uc.logger.Error("CreateBooking: failed to get services for business=%d: %v", businessID, err)
		return 0, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}

	durations := make([]int, 0, len(services))
	for _, svc := range services {
		durations = append(durations, svc.DurationMinutes)
	}
	return domain.InferGranularity(durations), nil
}

// servicePrice извлекает цену из услуги
// Если цена не указана (nil), возвращает 0.0
func servicePrice(service *businessClient.Service) float64 {
	if service.Price == nil {
		return 0.0
	}
	return *service.Price
}
