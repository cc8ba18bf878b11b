package timetable

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/appointly/booking-engine/internal/domain"
	blackoutRepo "github.com/appointly/booking-engine/internal/infra/storage/blackout"
	scheduleRepo "github.com/appointly/booking-engine/internal/infra/storage/schedule"
	businessClient "github.com/appointly/booking-engine/internal/integrations/businessservice"
	"github.com/appointly/booking-engine/internal/service/timetable/models"
)

// Service сервис для работы с рабочими расписаниями и блокировками
type Service struct {
	scheduleRepo   ScheduleRepository
	blackoutRepo   BlackoutRepository
	businessClient BusinessServiceClient
	txManager      TransactionManager
	logger         Logger
}

// NewService создает новый экземпляр сервиса расписаний
func NewService(
	scheduleRepo ScheduleRepository,
	blackoutRepo BlackoutRepository,
	businessClient BusinessServiceClient,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		scheduleRepo:   scheduleRepo,
		blackoutRepo:   blackoutRepo,
		businessClient: businessClient,
		txManager:      txManager,
		logger:         logger,
	}
}

// GetSchedule возвращает недельное расписание владельца
// Публичный метод. Если расписание не настроено, возвращает дефолтное
// рабочее окно 08:00-19:00 с признаком isDefault.
func (s *Service) GetSchedule(ctx context.Context, owner domain.ScheduleOwner) (*models.WeekScheduleResponse, error) {
	s.logger.Info("GetSchedule: business=%d, employee=%v", owner.BusinessID, owner.EmployeeID)

	week, err := s.scheduleRepo.GetByOwner(ctx, owner)
	if err != nil {
		if errors.Is(err, scheduleRepo.ErrScheduleNotFound) {
			s.logger.Info("GetSchedule: no schedule for business=%d, employee=%v, using default",
				owner.BusinessID, owner.EmployeeID)
			defaultWeek := domain.DefaultWeekSchedule()
			return models.FromDomainWeek(owner, defaultWeek, true), nil
		}
		s.logger.Error("GetSchedule: repository error for business=%d: %v", owner.BusinessID, err)
		return nil, fmt.Errorf("%w: GetSchedule - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainWeek(owner, *week, false), nil
}

// UpdateSchedule полностью заменяет недельное расписание владельца
// Доступно только менеджерам бизнеса. Валидация интервалов происходит
// здесь, на записи: чтение расписания при построении календаря
// уже не обязано перепроверять инварианты.
func (s *Service) UpdateSchedule(ctx context.Context, req *models.UpdateScheduleRequest) (*models.WeekScheduleResponse, error) {
	s.logger.Info("UpdateSchedule: business=%d, employee=%v by user=%d",
		req.BusinessID, req.EmployeeID, req.UserID)

	// 1. Валидируем расписание
	week, err := req.ToDomainWeek()
	if err != nil {
		s.logger.Warn("UpdateSchedule: validation failed for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Проверяем права доступа и принадлежность сотрудника
	business, err := s.checkManagerAccess(ctx, req.BusinessID, req.UserID)
	if err != nil {
		return nil, err
	}
	if req.EmployeeID != nil && !business.IsEmployee(*req.EmployeeID) {
		s.logger.Warn("UpdateSchedule: employee id=%d not found in business=%d", *req.EmployeeID, req.BusinessID)
		return nil, ErrEmployeeNotFound
	}

	owner := domain.ScheduleOwner{BusinessID: req.BusinessID, EmployeeID: req.EmployeeID}

	// 3. Заменяем расписание атомарно
	err = s.txManager.Do(ctx, func(ctx context.Context) error {
		return s.scheduleRepo.Replace(ctx, owner, week)
	})
	if err != nil {
		s.logger.Error("UpdateSchedule: repository error for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: UpdateSchedule - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("UpdateSchedule: successfully replaced schedule for business=%d, employee=%v",
		req.BusinessID, req.EmployeeID)
	return models.FromDomainWeek(owner, *week, false), nil
}

// CreateBlackout создает период блокировки
// Доступно только менеджерам бизнеса
func (s *Service) CreateBlackout(ctx context.Context, req *models.CreateBlackoutRequest) (*models.BlackoutResponse, error) {
	s.logger.Info("CreateBlackout: business=%d, employee=%v, %s..%s by user=%d",
		req.BusinessID, req.EmployeeID, req.StartDate, req.EndDate, req.UserID)

	// 1. Валидируем даты
	startDate, err := time.Parse(domain.DateFormat, req.StartDate)
	if err != nil {
		s.logger.Warn("CreateBlackout: invalid startDate=%s", req.StartDate)
		return nil, fmt.Errorf("%w: invalid startDate format, expected YYYY-MM-DD", ErrInvalidInput)
	}
	endDate, err := time.Parse(domain.DateFormat, req.EndDate)
	if err != nil {
		s.logger.Warn("CreateBlackout: invalid endDate=%s", req.EndDate)
		return nil, fmt.Errorf("%w: invalid endDate format, expected YYYY-MM-DD", ErrInvalidInput)
	}
	if endDate.Before(startDate) {
		s.logger.Warn("CreateBlackout: endDate=%s before startDate=%s", req.EndDate, req.StartDate)
		return nil, fmt.Errorf("%w: endDate must not be before startDate", ErrInvalidInput)
	}
	if req.Reason != nil && len(*req.Reason) > domain.MaxBlackoutReasonLength {
		return nil, fmt.Errorf("%w: reason is too long", ErrInvalidInput)
	}

	// 2. Проверяем права доступа и принадлежность сотрудника
	business, err := s.checkManagerAccess(ctx, req.BusinessID, req.UserID)
	if err != nil {
		return nil, err
	}
	if req.EmployeeID != nil && !business.IsEmployee(*req.EmployeeID) {
		s.logger.Warn("CreateBlackout: employee id=%d not found in business=%d", *req.EmployeeID, req.BusinessID)
		return nil, ErrEmployeeNotFound
	}

	// 3. Создаем период
	created, err := s.blackoutRepo.Create(ctx, &domain.BlackoutPeriod{
		BusinessID: req.BusinessID,
		EmployeeID: req.EmployeeID,
		StartDate:  startDate,
		EndDate:    endDate,
		Reason:     req.Reason,
	})
	if err != nil {
		s.logger.Error("CreateBlackout: repository error: %v", err)
		return nil, fmt.Errorf("%w: CreateBlackout - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateBlackout: successfully created blackout id=%d", created.ID)
	return models.FromDomainBlackout(created), nil
}

// DeleteBlackout удаляет период блокировки
// Доступно только менеджерам бизнеса-владельца периода
func (s *Service) DeleteBlackout(ctx context.Context, blackoutID int64, userID int64) error {
	s.logger.Info("DeleteBlackout: blackout id=%d by user=%d", blackoutID, userID)

	period, err := s.blackoutRepo.GetByID(ctx, blackoutID)
	if err != nil {
		if errors.Is(err, blackoutRepo.ErrBlackoutNotFound) {
			s.logger.Warn("DeleteBlackout: blackout id=%d not found", blackoutID)
			return ErrBlackoutNotFound
		}
		s.logger.Error("DeleteBlackout: repository error for blackout id=%d: %v", blackoutID, err)
		return fmt.Errorf("%w: DeleteBlackout - repository error: %v", ErrInternal, err)
	}

	if _, err := s.checkManagerAccess(ctx, period.BusinessID, userID); err != nil {
		return err
	}

	if err := s.blackoutRepo.Delete(ctx, blackoutID); err != nil {
		if errors.Is(err, blackoutRepo.ErrBlackoutNotFound) {
			return ErrBlackoutNotFound
		}
		s.logger.Error("DeleteBlackout: repository error for blackout id=%d: %v", blackoutID, err)
		return fmt.Errorf("%w: DeleteBlackout - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("DeleteBlackout: successfully deleted blackout id=%d", blackoutID)
	return nil
}

// ListBlackouts возвращает все периоды блокировок бизнеса
// Доступно только менеджерам бизнеса
func (s *Service) ListBlackouts(ctx context.Context, businessID int64, userID int64) (*models.BlackoutListResponse, error) {
	s.logger.Info("ListBlackouts: business=%d by user=%d", businessID, userID)

	if _, err := s.checkManagerAccess(ctx, businessID, userID); err != nil {
		return nil, err
	}

	periods, err := s.blackoutRepo.ListByBusiness(ctx, businessID)
	if err != nil {
		s.logger.Error("ListBlackouts: repository error for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: ListBlackouts - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListBlackouts: successfully fetched %d blackouts for business=%d", len(periods), businessID)
	return models.FromDomainBlackoutList(periods), nil
}

// checkManagerAccess проверяет, что пользователь является менеджером бизнеса
func (s *Service) checkManagerAccess(ctx context.Context, businessID int64, userID int64) (*businessClient.Business, error) {
	business, err := s.businessClient.GetBusiness(ctx, businessID)
	if err != nil {
		if errors.Is(err, businessClient.ErrBusinessNotFound) {
			s.logger.Warn("checkManagerAccess: business id=%d not found", businessID)
			return nil, ErrBusinessNotFound
		}
		s.logger.Error("checkManagerAccess: failed to get business id=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}

	if !business.IsManager(userID) {
		s.logger.Warn("checkManagerAccess: user=%d is not a manager of business=%d", userID, businessID)
		return nil, ErrAccessDenied
	}

	return business, nil
}
