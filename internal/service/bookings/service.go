package bookings

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/appointly/booking-engine/internal/domain"
	"github.com/appointly/booking-engine/internal/engine"
	bookingRepo "github.com/appointly/booking-engine/internal/infra/storage/booking"
	businessClient "github.com/appointly/booking-engine/internal/integrations/businessservice"
	"github.com/appointly/booking-engine/internal/service/bookings/models"
)

// Service сервис для работы с бронированиями
type Service struct {
	bookingRepo    BookingRepository
	businessClient BusinessServiceClient
	timeProvider   TimeProvider
	logger         Logger
}

// NewService создает новый экземпляр сервиса бронирований
func NewService(
	bookingRepo BookingRepository,
	businessClient BusinessServiceClient,
	timeProvider TimeProvider,
	logger Logger,
) *Service {
	return &Service{
		bookingRepo:    bookingRepo,
		businessClient: businessClient,
		timeProvider:   timeProvider,
		logger:         logger,
	}
}

// GetByID получает бронирование по ID
// Проверяет права доступа - клиент видит только своё бронирование,
// менеджеры и сотрудники бизнеса видят все бронирования бизнеса
func (s *Service) GetByID(ctx context.Context, id int64, userID int64) (*models.BookingResponse, error) {
	s.logger.Info("GetByID: fetching booking id=%d for user=%d", id, userID)

	booking, err := s.bookingRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("GetByID: booking id=%d not found", id)
			return nil, ErrBookingNotFound
		}
		s.logger.Error("GetByID: repository error for booking id=%d: %v", id, err)
		return nil, fmt.Errorf("%w: GetByID - repository error: %v", ErrInternal, err)
	}

	if err := s.checkUserAccess(ctx, booking, userID); err != nil {
		s.logger.Warn("GetByID: access denied for user=%d to booking id=%d", userID, id)
		return nil, err
	}

	s.logger.Info("GetByID: successfully fetched booking id=%d", id)
	return models.FromDomainBooking(booking), nil
}

// GetUserBookings получает историю бронирований клиента
// Опционально фильтрует по статусу
func (s *Service) GetUserBookings(ctx context.Context, req *models.GetUserBookingsRequest) (*models.BookingListResponse, error) {
	s.logger.Info("GetUserBookings: fetching bookings for user=%d, status=%v", req.UserID, req.Status)

	var domainStatus *domain.BookingStatus
	if req.Status != nil {
		status, err := models.ToDomainBookingStatus(*req.Status)
		if err != nil {
			s.logger.Warn("GetUserBookings: invalid status=%s for user=%d", *req.Status, req.UserID)
			return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
		}
		domainStatus = &status
	}

	bookings, err := s.bookingRepo.GetByClientID(ctx, req.UserID, domainStatus)
	if err != nil {
		s.logger.Error("GetUserBookings: repository error for user=%d: %v", req.UserID, err)
		return nil, fmt.Errorf("%w: GetUserBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetUserBookings: successfully fetched %d bookings for user=%d", len(bookings), req.UserID)
	return models.FromDomainBookingList(bookings), nil
}

// GetBusinessBookings получает бронирования бизнеса с гибкой фильтрацией
// Поддерживает фильтрацию по сотруднику, периоду, статусу и включению
// неактивных бронирований. Доступно только менеджерам бизнеса.
//
// Примеры использования:
// - Все активные бронирования: указать только BusinessID
// - Бронирования одного сотрудника: указать EmployeeID
// - Бронирования на дату: StartDate и EndDate указывают на одну дату
// - Только подтвержденные: указать Status = "confirmed"
// - Включая отменённые: IncludeInactive = true
func (s *Service) GetBusinessBookings(ctx context.Context, req *models.GetBusinessBookingsRequest) (*models.BookingListResponse, error) {
	logMsg := fmt.Sprintf("GetBusinessBookings: fetching bookings for business=%d, user=%d", req.BusinessID, req.UserID)
	if req.EmployeeID != nil {
		logMsg += fmt.Sprintf(", employee=%d", *req.EmployeeID)
	}
	if req.StartDate != nil && req.EndDate != nil {
		logMsg += fmt.Sprintf(", period=%s to %s", req.StartDate.Format(domain.DateFormat), req.EndDate.Format(domain.DateFormat))
	}
	if req.Status != nil {
		logMsg += fmt.Sprintf(", status=%s", *req.Status)
	}
	if req.IncludeInactive {
		logMsg += ", includeInactive=true"
	}
	s.logger.Info(logMsg)

	if _, err := s.checkManagerAccess(ctx, req.BusinessID, req.UserID); err != nil {
		return nil, err
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("GetBusinessBookings: invalid filter for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: invalid filter", ErrInvalidInput)
	}

	bookings, err := s.bookingRepo.GetByBusinessWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("GetBusinessBookings: repository error for business=%d: %v", req.BusinessID, err)
		return nil, fmt.Errorf("%w: GetBusinessBookings - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetBusinessBookings: successfully fetched %d bookings for business=%d", len(bookings), req.BusinessID)
	return models.FromDomainBookingList(bookings), nil
}

// Cancel отменяет бронирование
//
// Клиент может отменить только своё бронирование (cancelled_by_client)
// и только пока открыто окно отмены: не позднее чем за 23 часа до начала,
// а после отправки напоминания - в течение часа после него.
// Менеджер или сотрудник бизнеса отменяет любое бронирование бизнеса
// (cancelled_by_business) без ограничений по срокам.
func (s *Service) Cancel(ctx context.Context, bookingID int64, req *models.CancelBookingRequest) error {
	s.logger.Info("Cancel: cancelling booking id=%d by user=%d", bookingID, req.UserID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("Cancel: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	if !booking.CanBeCancelled() {
		s.logger.Warn("Cancel: booking id=%d cannot be cancelled, status=%s", bookingID, booking.Status)
		return ErrCannotCancel
	}

	business, err := s.getBusiness(ctx, booking.BusinessID)
	if err != nil {
		return err
	}

	// 1. Определяем роль: владелец бронирования или представитель бизнеса
	elevated := business.HasElevatedAccess(req.UserID)
	cancelStatus := domain.StatusCancelledByBusiness
	if booking.ClientID == req.UserID {
		cancelStatus = domain.StatusCancelledByClient
	} else if !elevated {
		s.logger.Warn("Cancel: access denied for user=%d to cancel booking id=%d", req.UserID, bookingID)
		return ErrAccessDenied
	}

	// 2. Проверяем политику сроков отмены в таймзоне бизнеса
	loc, err := time.LoadLocation(business.Timezone)
	if err != nil {
		s.logger.Error("Cancel: bad timezone %q for business=%d: %v", business.Timezone, business.ID, err)
		return fmt.Errorf("%w: Cancel - bad business timezone: %v", ErrInternal, err)
	}

	normalizer := engine.NewNormalizer(loc)
	start, _, err := normalizer.BookingInterval(booking, domain.DefaultGranularityMinutes)
	if err != nil {
		s.logger.Error("Cancel: failed to resolve interval for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - resolve booking interval: %v", ErrInternal, err)
	}

	if ok, reason := engine.CheckCancellation(start, s.timeProvider.Now(), booking.ReminderSentAt, elevated); !ok {
		s.logger.Warn("Cancel: window closed for booking id=%d: %s", bookingID, reason)
		return fmt.Errorf("%w: %s", ErrCancellationWindowClosed, reason)
	}

	// 3. Отменяем бронирование
	if err := s.bookingRepo.Cancel(ctx, bookingID, cancelStatus, req.CancellationReason); err != nil {
		if errors.Is(err, bookingRepo.ErrCannotCancel) {
			s.logger.Warn("Cancel: booking id=%d already cancelled", bookingID)
			return ErrCannotCancel
		}
		s.logger.Error("Cancel: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("Cancel: successfully cancelled booking id=%d with status=%s", bookingID, cancelStatus)
	return nil
}

// MarkReminderSent отмечает момент отправки напоминания по бронированию.
// После этой отметки окно отмены клиента сужается до часа.
// Доступно только менеджерам и сотрудникам бизнеса (вызывает планировщик
// напоминаний от имени сервисного аккаунта бизнеса).
func (s *Service) MarkReminderSent(ctx context.Context, bookingID int64, req *models.MarkReminderSentRequest) error {
	s.logger.Info("MarkReminderSent: booking id=%d by user=%d", bookingID, req.UserID)

	booking, err := s.bookingRepo.GetByID(ctx, bookingID)
	if err != nil {
		if errors.Is(err, bookingRepo.ErrBookingNotFound) {
			s.logger.Warn("MarkReminderSent: booking id=%d not found", bookingID)
			return ErrBookingNotFound
		}
		s.logger.Error("MarkReminderSent: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: MarkReminderSent - repository error: %v", ErrInternal, err)
	}

	if _, err := s.checkManagerAccess(ctx, booking.BusinessID, req.UserID); err != nil {
		return err
	}

	sentAt := s.timeProvider.Now()
	if req.SentAt != nil {
		sentAt = *req.SentAt
	}

	if err := s.bookingRepo.MarkReminderSent(ctx, bookingID, sentAt); err != nil {
		s.logger.Error("MarkReminderSent: repository error for booking id=%d: %v", bookingID, err)
		return fmt.Errorf("%w: MarkReminderSent - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("MarkReminderSent: booking id=%d marked at %s", bookingID, sentAt.Format(time.RFC3339))
	return nil
}

// Вспомогательные методы

// checkUserAccess проверяет, что пользователь имеет доступ к бронированию
func (s *Service) checkUserAccess(ctx context.Context, booking *domain.Booking, userID int64) error {
	if booking.ClientID == userID {
		return nil
	}

	if _, err := s.checkManagerAccess(ctx, booking.BusinessID, userID); err != nil {
		return ErrAccessDenied
	}

	return nil
}

// checkManagerAccess проверяет, что пользователь представляет бизнес
// (менеджер или сотрудник)
func (s *Service) checkManagerAccess(ctx context.Context, businessID int64, userID int64) (*businessClient.Business, error) {
	business, err := s.getBusiness(ctx, businessID)
	if err != nil {
		return nil, err
	}

	if !business.HasElevatedAccess(userID) {
		s.logger.Warn("checkManagerAccess: user=%d has no access to business=%d", userID, businessID)
		return nil, ErrAccessDenied
	}

	return business, nil
}

func (s *Service) getBusiness(ctx context.Context, businessID int64) (*businessClient.Business, error) {
	business, err := s.businessClient.GetBusiness(ctx, businessID)
	if err != nil {
		if errors.Is(err, businessClient.ErrBusinessNotFound) {
			s.logger.Warn("getBusiness: business id=%d not found", businessID)
			return nil, ErrBusinessNotFound
		}
		s.logger.Error("getBusiness: failed to get business id=%d: %v", businessID, err)
		return nil, fmt.Errorf("%w: failed to get business: %v", ErrInternal, err)
	}
	return business, nil
}
