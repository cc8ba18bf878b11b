package create_booking

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appointly/booking-engine/internal/domain"
	bookingRepo "github.com/appointly/booking-engine/internal/infra/storage/booking"
	configRepo "github.com/appointly/booking-engine/internal/infra/storage/config"
	scheduleRepo "github.com/appointly/booking-engine/internal/infra/storage/schedule"
	"github.com/appointly/booking-engine/internal/integrations/businessservice"
	"github.com/appointly/booking-engine/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type inlineTxManager struct{}

func (inlineTxManager) DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error {
	return fn(ctx)
}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fakeBookingRepo struct {
	bookings  []*domain.Booking
	createErr error
	nextID    int64
}

func (r *fakeBookingRepo) Create(_ context.Context, b *domain.Booking) (*domain.Booking, error) {
	if r.createErr != nil {
		return nil, r.createErr
	}
	r.nextID++
	stored := *b
	stored.ID = r.nextID
	stored.CreatedAt = time.Now()
	stored.UpdatedAt = stored.CreatedAt
	r.bookings = append(r.bookings, &stored)
	return &stored, nil
}

func (r *fakeBookingRepo) GetByBusinessWithFilter(_ context.Context, _ domain.BusinessBookingsFilter) ([]*domain.Booking, error) {
	return r.bookings, nil
}

type fakeScheduleRepo struct {
	week *domain.WeekSchedule
}

func (r *fakeScheduleRepo) GetByOwner(_ context.Context, _ domain.ScheduleOwner) (*domain.WeekSchedule, error) {
	if r.week == nil {
		return nil, scheduleRepo.ErrScheduleNotFound
	}
	return r.week, nil
}

type fakeBlackoutRepo struct {
	periods []domain.BlackoutPeriod
}

func (r *fakeBlackoutRepo) ListForDate(_ context.Context, _ int64, _ time.Time) ([]domain.BlackoutPeriod, error) {
	return r.periods, nil
}

type fakeConfigRepo struct {
	config *domain.BusinessSlotsConfig
}

func (r *fakeConfigRepo) GetConfigWithHierarchy(_ context.Context, _ int64, _ *int64) (*domain.BusinessSlotsConfig, error) {
	if r.config == nil {
		return nil, configRepo.ErrConfigNotFound
	}
	return r.config, nil
}

type fakeBusinessClient struct {
	business *businessservice.Business
	service  *businessservice.Service
}

func (c *fakeBusinessClient) GetBusiness(_ context.Context, _ int64) (*businessservice.Business, error) {
	if c.business == nil {
		return nil, businessservice.ErrBusinessNotFound
	}
	return c.business, nil
}

func (c *fakeBusinessClient) GetService(_ context.Context, _, _ int64) (*businessservice.Service, error) {
	if c.service == nil {
		return nil, businessservice.ErrServiceNotFound
	}
	return c.service, nil
}

func (c *fakeBusinessClient) GetServices(_ context.Context, _ int64) ([]businessservice.Service, error) {
	if c.service == nil {
		return nil, nil
	}
	return []businessservice.Service{*c.service}, nil
}

type busyLocker struct{}

func (busyLocker) Acquire(_ context.Context, _ int64, _ *int64, _ string, _ string) (string, error) {
	return "", errors.New("slot is locked")
}

func (busyLocker) Release(_ context.Context, _ int64, _ *int64, _ string, _ string, _ string) error {
	return nil
}

type testEnv struct {
	bookings  *fakeBookingRepo
	schedules *fakeScheduleRepo
	blackouts *fakeBlackoutRepo
	configs   *fakeConfigRepo
	client    *fakeBusinessClient
	clock     fixedClock
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	price := 1500.0
	return &testEnv{
		bookings:  &fakeBookingRepo{},
		schedules: &fakeScheduleRepo{},
		blackouts: &fakeBlackoutRepo{},
		configs:   &fakeConfigRepo{},
		client: &fakeBusinessClient{
			business: &businessservice.Business{
				ID:          1,
				Name:        "Салон",
				Timezone:    "Europe/Moscow",
				ManagerIDs:  []int64{100},
				EmployeeIDs: []int64{200},
			},
			service: &businessservice.Service{
				ID:              10,
				BusinessID:      1,
				Name:            "Стрижка",
				DurationMinutes: 60,
				Price:           &price,
			},
		},
		// За день до запрашиваемой даты, середина рабочего дня
		clock: fixedClock{now: time.Date(2026, time.March, 10, 12, 0, 0, 0, loc)},
	}
}

func (e *testEnv) useCase(locker SlotLocker) *UseCase {
	return NewUseCase(
		e.bookings,
		e.schedules,
		e.blackouts,
		e.configs,
		e.client,
		locker,
		inlineTxManager{},
		e.clock,
		nopLogger{},
	)
}

func validRequest() *Request {
	return &Request{
		UserID:     42,
		BusinessID: 1,
		ServiceID:  10,
		Date:       time.Date(2026, time.March, 11, 0, 0, 0, 0, time.UTC),
		StartTime:  types.TimeString("10:00"),
	}
}

func TestExecute_CreatesConfirmedBooking(t *testing.T) {
	env := newTestEnv(t)
	uc := env.useCase(nil)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.NotZero(t, resp.ID)
	assert.NotEmpty(t, resp.ConfirmationCode)
	assert.Equal(t, int64(42), resp.ClientID)
	assert.Equal(t, string(domain.StatusConfirmed), resp.Status)
	assert.Equal(t, "10:00", resp.StartTime.String())
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, "Стрижка", resp.ServiceName)
	assert.Equal(t, 1500.0, resp.ServicePrice)
}

func TestExecute_ConsentRequiredCreatesPendingBooking(t *testing.T) {
	env := newTestEnv(t)
	env.client.business.ConsentRequired = true
	uc := env.useCase(nil)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
	assert.Equal(t, string(domain.StatusPendingConsent), resp.Status)
}

func TestExecute_SameSlotTwiceConflicts(t *testing.T) {
	env := newTestEnv(t)
	uc := env.useCase(nil)

	_, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Повторная классификация внутри транзакции видит первое бронирование
	_, err = uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_CancelledBookingDoesNotBlockSlot(t *testing.T) {
	env := newTestEnv(t)
	uc := env.useCase(nil)

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Отменяем первое бронирование - слот снова свободен
	for _, b := range env.bookings.bookings {
		if b.ID == resp.ID {
			b.Status = domain.StatusCancelledByClient
		}
	}

	_, err = uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)
}

func TestExecute_BlackoutBlocksSlot(t *testing.T) {
	env := newTestEnv(t)
	env.blackouts.periods = []domain.BlackoutPeriod{{
		ID:         1,
		BusinessID: 1,
		StartDate:  time.Date(2026, time.March, 11, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, time.March, 11, 0, 0, 0, 0, time.UTC),
	}}
	uc := env.useCase(nil)

	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrSlotBlocked)
}

func TestExecute_LeadTimeViolationIsTooLate(t *testing.T) {
	env := newTestEnv(t)
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)

	// 09:30 дня бронирования: до слота 10:00 меньше двух часов
	env.clock = fixedClock{now: time.Date(2026, time.March, 11, 9, 30, 0, 0, loc)}
	uc := env.useCase(nil)

	_, err = uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrTooLateToBook)
}

func TestExecute_OffGridTimeIsInvalidSlot(t *testing.T) {
	env := newTestEnv(t)
	uc := env.useCase(nil)

	req := validRequest()
	req.StartTime = types.TimeString("10:07")

	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidTimeSlot)
}

func TestExecute_PastDateRejected(t *testing.T) {
	env := newTestEnv(t)
	uc := env.useCase(nil)

	req := validRequest()
	req.Date = time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_DuplicateSlotFromStorageMapsToConflict(t *testing.T) {
	env := newTestEnv(t)
	env.bookings.createErr = bookingRepo.ErrDuplicateSlot
	uc := env.useCase(nil)

	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_BusyLockerMapsToConflict(t *testing.T) {
	env := newTestEnv(t)
	uc := env.useCase(busyLocker{})

	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrSlotNotAvailable)
}

func TestExecute_ExplicitGranularityShiftsGrid(t *testing.T) {
	env := newTestEnv(t)
	granularity := 90
	env.configs.config = &domain.BusinessSlotsConfig{
		ID:                 1,
		BusinessID:         1,
		GranularityMinutes: &granularity,
	}
	uc := env.useCase(nil)

	// 10:00 лежит на сетке 90 минут от 08:00 (08:00, 09:30, 11:00...)?
	// Нет: метки 08:00, 09:30, 11:00 - поэтому 10:00 вне сетки
	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrInvalidTimeSlot)

	req := validRequest()
	req.StartTime = types.TimeString("09:30")
	_, err = uc.Execute(context.Background(), req)
	require.NoError(t, err)
}

func TestExecute_EmployeeMustBelongToBusiness(t *testing.T) {
	env := newTestEnv(t)
	uc := env.useCase(nil)

	stranger := int64(999)
	req := validRequest()
	req.EmployeeID = &stranger

	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrEmployeeNotFound)
}

func TestExecute_ServiceNotOfferedByEmployee(t *testing.T) {
	env := newTestEnv(t)
	// У услуги есть ресурсная модель, но наш сотрудник её не оказывает
	env.client.business.EmployeeIDs = []int64{200, 201}
	env.client.service.EmployeeIDs = []int64{201}
	uc := env.useCase(nil)

	employee := int64(200)
	req := validRequest()
	req.EmployeeID = &employee

	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrServiceNotAvailableForEmployee)
}
