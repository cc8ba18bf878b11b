package config

import (
	"context"
	"errors"
	"fmt"

	"github.com/appointly/booking-engine/internal/domain"
	configRepo "github.com/appointly/booking-engine/internal/infra/storage/config"
	businessClient "github.com/appointly/booking-engine/internal/integrations/businessservice"
	"github.com/appointly/booking-engine/internal/service/config/models"
)

// Service сервис для работы с конфигурацией сетки слотов
type Service struct {
	configRepo     ConfigRepository
	businessClient BusinessServiceClient
	logger         Logger
}

// NewService создает новый экземпляр сервиса конфигурации
func NewService(
	configRepo ConfigRepository,
	businessClient BusinessServiceClient,
	logger Logger,
) *Service {
	return &Service{
		configRepo:     configRepo,
		businessClient: businessClient,
		logger:         logger,
	}
}

// GetEffective возвращает действующий шаг сетки для уровня (бизнес, сотрудник)
// Публичный метод - используется при построении расписания дня.
// Если явная конфигурация не найдена ни на одном уровне, шаг выводится
// из длительности самой короткой услуги бизнеса.
func (s *Service) GetEffective(ctx context.Context, businessID int64, employeeID *int64) (*models.EffectiveConfigResponse, error) {
	s.logger.Info("GetEffective: fetching config for business=%d, employee=%v", businessID, employeeID)

	config, err := s.configRepo.GetConfigWithHierarchy(ctx, businessID, employeeID)
	if err != nil && !errors.Is(err, configRepo.ErrConfigNotFound) {
		s.logger.Error("GetEffective: repository error for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: GetEffective - repository error: %v", ErrInternal, err)
	}

	if config != nil && config.HasExplicitGranularity() {
		s.logger.Info("GetEffective: explicit granularity=%d for business=%d", *config.GranularityMinutes, businessID)
		return &models.EffectiveConfigResponse{
			BusinessID:         businessID,
			EmployeeID:         employeeID,
			GranularityMinutes: *config.GranularityMinutes,
			Inferred:           false,
		}, nil
	}

	// Явного шага нет - выводим из длительностей услуг
	durations, err := s.serviceDurations(ctx, businessID)
	if err != nil {
		return nil, err
	}

	granularity := domain.InferGranularity(durations)
	s.logger.Info("GetEffective: inferred granularity=%d for business=%d", granularity, businessID)
	return &models.EffectiveConfigResponse{
		BusinessID:         businessID,
		EmployeeID:         employeeID,
		GranularityMinutes: granularity,
		Inferred:           true,
	}, nil
}

// GetAllByBusiness получает все конфигурации бизнеса (общую и по сотрудникам)
// Доступно только менеджерам бизнеса
func (s *Service) GetAllByBusiness(ctx context.Context, businessID int64, userID int64) (*models.ConfigListResponse, error) {
	s.logger.Info("GetAllByBusiness: fetching configs for business=%d by user=%d", businessID, userID)

	if _, err := s.checkManagerAccess(ctx, businessID, userID); err != nil {
		return nil, err
	}

	configs, err := s.configRepo.GetAllByBusiness(ctx, businessID)
	if err != nil {
		s.logger.Error("GetAllByBusiness: repository error for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: GetAllByBusiness - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetAllByBusiness: successfully fetched %d configs for business=%d", len(configs), businessID)
	return models.FromDomainConfigList(configs), nil
}

// Upsert создает или обновляет конфигурацию уровня (бизнес, сотрудник)
// Доступно только менеджерам бизнеса
func (s *Service) Upsert(ctx context.Context, req *models.UpsertConfigRequest) (*models.ConfigResponse, error) {
	s.logger.Info("Upsert: config for business=%d, employee=%v by user=%d",
		req.BusinessID, req.EmployeeID, req.UserID)

	// 1. Валидируем шаг сетки, если он задан явно
	if req.GranularityMinutes != nil && !isAllowedGranularity(*req.GranularityMinutes) {
		s.logger.Warn("Upsert: granularity=%d is not allowed", *req.GranularityMinutes)
		return nil, fmt.Errorf("%w: granularityMinutes must be one of %v", ErrInvalidInput, domain.AllowedGranularities)
	}

	// 2. Проверяем права доступа (только менеджер бизнеса)
	business, err := s.checkManagerAccess(ctx, req.BusinessID, req.UserID)
	if err != nil {
		return nil, err
	}

	// 3. Если конфигурация уровня сотрудника - проверяем его принадлежность бизнесу
	if req.EmployeeID != nil && !business.IsEmployee(*req.EmployeeID) {
		s.logger.Warn("Upsert: employee id=%d not found in business=%d", *req.EmployeeID, req.BusinessID)
		return nil, ErrEmployeeNotFound
	}

	// 4. Сохраняем конфигурацию
	created, err := s.configRepo.Upsert(ctx, req.ToDomainConfig())
	if err != nil {
		s.logger.Error("Upsert: repository error: %v", err)
		return nil, fmt.Errorf("%w: Upsert - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Upsert: successfully saved config id=%d", created.ID)
	return models.FromDomainConfig(created), nil
}

// Delete удаляет конфигурацию уровня (бизнес, сотрудник)
// Доступно только менеджерам бизнеса
func (s *Service) Delete(ctx context.Context, req *models.DeleteConfigRequest) error {
	s.logger.Info("Delete: config for business=%d, employee=%v by user=%d",
		req.BusinessID, req.EmployeeID, req.UserID)

	if _, err := s.checkManagerAccess(ctx, req.BusinessID, req.UserID); err != nil {
		return err
	}

	if err := s.configRepo.Delete(ctx, req.BusinessID, req.EmployeeID); err != nil {
		if errors.Is(err, configRepo.ErrConfigNotFound) {
			s.logger.Warn("Delete: config not found for business=%d, employee=%v", req.BusinessID, req.EmployeeID)
			return ErrConfigNotFound
		}
		s.logger.Error("Delete: repository error: %v", err)
		return fmt.Errorf("%w: Delete - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Delete: successfully deleted config for business=%d, employee=%v", req.BusinessID, req.EmployeeID)
	return nil
}

// Вспомогательные методы

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

// serviceDurations возвращает длительности всех услуг бизнеса
func (s *Service) serviceDurations(ctx context.Context, businessID int64) ([]int, error) {
	services, err := s.businessClient.GetServices(ctx, businessID)
	if err != nil {
		if errors.Is(err, businessClient.ErrBusinessNotFound) {
			return nil, ErrBusinessNotFound
		}
		s.logger.Error("serviceDurations: failed to get services for business=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: failed to get services: %v", ErrInternal, err)
	}

	durations := make([]int, 0, len(services))
	for _, service := range services {
		durations = append(durations, service.DurationMinutes)
	}
	return durations, nil
}

func isAllowedGranularity(minutes int) bool {
	for _, allowed := range domain.AllowedGranularities {
		if minutes == allowed {
			return true
		}
	}
	return false
}
