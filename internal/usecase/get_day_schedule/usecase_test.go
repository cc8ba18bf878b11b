package get_day_schedule

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appointly/booking-engine/internal/domain"
	configRepo "github.com/appointly/booking-engine/internal/infra/storage/config"
	scheduleRepo "github.com/appointly/booking-engine/internal/infra/storage/schedule"
	"github.com/appointly/booking-engine/internal/integrations/businessservice"
	"github.com/appointly/booking-engine/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fakeBookingRepo struct {
	bookings []*domain.Booking
}

func (r *fakeBookingRepo) GetByBusinessWithFilter(_ context.Context, _ domain.BusinessBookingsFilter) ([]*domain.Booking, error) {
	return r.bookings, nil
}

type fakeScheduleRepo struct {
	businessWeek *domain.WeekSchedule
	employeeWeek *domain.WeekSchedule
}

func (r *fakeScheduleRepo) GetByOwner(_ context.Context, owner domain.ScheduleOwner) (*domain.WeekSchedule, error) {
	if owner.EmployeeID != nil {
		if r.employeeWeek == nil {
			return nil, scheduleRepo.ErrScheduleNotFound
		}
		return r.employeeWeek, nil
	}
	if r.businessWeek == nil {
		return nil, scheduleRepo.ErrScheduleNotFound
	}
	return r.businessWeek, nil
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
				EmployeeIDs: []int64{200},
			},
			service: &businessservice.Service{
				ID:              10,
				BusinessID:      1,
				Name:            "Стрижка",
				DurationMinutes: 60,
			},
		},
		clock: fixedClock{now: time.Date(2026, time.March, 10, 12, 0, 0, 0, loc)},
	}
}

func (e *testEnv) useCase() *UseCase {
	return NewUseCase(
		e.bookings,
		e.schedules,
		e.blackouts,
		e.configs,
		e.client,
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
	}
}

func slotByLabel(t *testing.T, slots []Slot, label string) Slot {
	t.Helper()
	for _, s := range slots {
		if s.StartTime.String() == label {
			return s
		}
	}
	t.Fatalf("slot %s not found", label)
	return Slot{}
}

func TestExecute_DefaultScheduleFullDayAvailable(t *testing.T) {
	env := newTestEnv(t)
	uc := env.useCase()

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	// Дефолтное окно 08:00-19:00, шаг выведен из 60-минутной услуги
	assert.Equal(t, 60, resp.GranularityMinutes)
	require.Len(t, resp.Slots, 11)
	for _, s := range resp.Slots {
		assert.Equal(t, domain.SlotAvailable, s.Status, "slot %s", s.StartTime)
	}
}

func TestExecute_BookedSlotForSameScope(t *testing.T) {
	env := newTestEnv(t)
	env.bookings.bookings = []*domain.Booking{{
		ID:              1,
		BusinessID:      1,
		BookingDate:     time.Date(2026, time.March, 11, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString("10:00"),
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
	}}
	uc := env.useCase()

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	assert.Equal(t, domain.SlotBooked, slotByLabel(t, resp.Slots, "10:00").Status)
	assert.Equal(t, domain.SlotAvailable, slotByLabel(t, resp.Slots, "11:00").Status)
}

func TestExecute_OtherEmployeeBookingDoesNotOccupySlot(t *testing.T) {
	env := newTestEnv(t)
	env.client.business.EmployeeIDs = []int64{200, 201}
	other := int64(201)
	env.bookings.bookings = []*domain.Booking{{
		ID:              1,
		BusinessID:      1,
		EmployeeID:      &other,
		BookingDate:     time.Date(2026, time.March, 11, 0, 0, 0, 0, time.UTC),
		StartTime:       types.TimeString("10:00"),
		DurationMinutes: 60,
		Status:          domain.StatusConfirmed,
	}}
	uc := env.useCase()

	employee := int64(200)
	req := validRequest()
	req.EmployeeID = &employee

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Equal(t, domain.SlotAvailable, slotByLabel(t, resp.Slots, "10:00").Status)
}

func TestExecute_EmployeeScheduleOverridesBusiness(t *testing.T) {
	env := newTestEnv(t)

	// Сотрудник работает только 10:00-14:00
	narrow := domain.WeekSchedule{}
	for wd := time.Sunday; wd <= time.Saturday; wd++ {
		narrow.SetDay(wd, domain.DaySchedule{
			Enabled: true,
			Ranges: []domain.TimeRange{{
				Start: types.TimeString("10:00"),
				End:   types.TimeString("14:00"),
			}},
		})
	}
	env.schedules.employeeWeek = &narrow
	uc := env.useCase()

	employee := int64(200)
	req := validRequest()
	req.EmployeeID = &employee

	resp, err := uc.Execute(context.Background(), req)
	require.NoError(t, err)

	require.Len(t, resp.Slots, 4)
	assert.Equal(t, "10:00", resp.Slots[0].StartTime.String())
	assert.Equal(t, "13:00", resp.Slots[3].StartTime.String())
}

func TestExecute_BlackoutWithReason(t *testing.T) {
	env := newTestEnv(t)
	reason := "санитарный день"
	env.blackouts.periods = []domain.BlackoutPeriod{{
		ID:         1,
		BusinessID: 1,
		StartDate:  time.Date(2026, time.March, 11, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2026, time.March, 11, 0, 0, 0, 0, time.UTC),
		Reason:     &reason,
	}}
	uc := env.useCase()

	resp, err := uc.Execute(context.Background(), validRequest())
	require.NoError(t, err)

	for _, s := range resp.Slots {
		assert.Equal(t, domain.SlotBlocked, s.Status, "slot %s", s.StartTime)
		assert.Equal(t, reason, s.Reason, "slot %s", s.StartTime)
	}
}

func TestExecute_PastDateRejected(t *testing.T) {
	env := newTestEnv(t)
	uc := env.useCase()

	req := validRequest()
	req.Date = time.Date(2026, time.March, 9, 0, 0, 0, 0, time.UTC)

	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrInvalidDate)
}

func TestExecute_BusinessNotFound(t *testing.T) {
	env := newTestEnv(t)
	env.client.business = nil
	uc := env.useCase()

	_, err := uc.Execute(context.Background(), validRequest())
	require.ErrorIs(t, err, ErrBusinessNotFound)
}

func TestExecute_UnknownEmployeeRejected(t *testing.T) {
	env := newTestEnv(t)
	uc := env.useCase()

	stranger := int64(999)
	req := validRequest()
	req.EmployeeID = &stranger

	_, err := uc.Execute(context.Background(), req)
	require.ErrorIs(t, err, ErrEmployeeNotFound)
}
