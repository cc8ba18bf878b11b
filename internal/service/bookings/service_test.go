package bookings

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appointly/booking-engine/internal/domain"
	bookingRepo "github.com/appointly/booking-engine/internal/infra/storage/booking"
	"github.com/appointly/booking-engine/internal/integrations/businessservice"
	"github.com/appointly/booking-engine/internal/service/bookings/models"
	"github.com/appointly/booking-engine/pkg/types"
)

type nopLogger struct{}

func (nopLogger) Info(string, ...interface{})  {}
func (nopLogger) Warn(string, ...interface{})  {}
func (nopLogger) Error(string, ...interface{}) {}

type fixedClock struct{ now time.Time }

func (c fixedClock) Now() time.Time { return c.now }

type fakeBookingRepo struct {
	booking *domain.Booking

	cancelledStatus domain.BookingStatus
	cancelledReason string
	reminderSentAt  *time.Time
}

func (r *fakeBookingRepo) GetByID(_ context.Context, _ int64) (*domain.Booking, error) {
	if r.booking == nil {
		return nil, bookingRepo.ErrBookingNotFound
	}
	return r.booking, nil
}

func (r *fakeBookingRepo) GetByClientID(_ context.Context, _ int64, _ *domain.BookingStatus) ([]*domain.Booking, error) {
	if r.booking == nil {
		return nil, nil
	}
	return []*domain.Booking{r.booking}, nil
}

func (r *fakeBookingRepo) GetByBusinessWithFilter(_ context.Context, _ domain.BusinessBookingsFilter) ([]*domain.Booking, error) {
	if r.booking == nil {
		return nil, nil
	}
	return []*domain.Booking{r.booking}, nil
}

func (r *fakeBookingRepo) Cancel(_ context.Context, _ int64, status domain.BookingStatus, reason string) error {
	r.cancelledStatus = status
	r.cancelledReason = reason
	return nil
}

func (r *fakeBookingRepo) MarkReminderSent(_ context.Context, _ int64, sentAt time.Time) error {
	r.reminderSentAt = &sentAt
	return nil
}

type fakeBusinessClient struct {
	business *businessservice.Business
}

func (c *fakeBusinessClient) GetBusiness(_ context.Context, _ int64) (*businessservice.Business, error) {
	if c.business == nil {
		return nil, businessservice.ErrBusinessNotFound
	}
	return c.business, nil
}

const (
	clientID   = int64(42)
	managerID  = int64(100)
	employeeID = int64(200)
	strangerID = int64(999)
)

func testBooking() *domain.Booking {
	return &domain.Booking{
		ID:               1,
		ConfirmationCode: "c0ffee",
		ClientID:         clientID,
		BusinessID:       1,
		ServiceID:        10,
		BookingDate:      time.Date(2026, time.March, 12, 0, 0, 0, 0, time.UTC),
		StartTime:        types.TimeString("10:00"),
		DurationMinutes:  60,
		Status:           domain.StatusConfirmed,
	}
}

func testService(booking *domain.Booking, now time.Time) (*Service, *fakeBookingRepo) {
	repo := &fakeBookingRepo{booking: booking}
	client := &fakeBusinessClient{
		business: &businessservice.Business{
			ID:          1,
			Timezone:    "Europe/Moscow",
			ManagerIDs:  []int64{managerID},
			EmployeeIDs: []int64{employeeID},
		},
	}
	return NewService(repo, client, fixedClock{now: now}, nopLogger{}), repo
}

func mskTime(t *testing.T, day, hour int) time.Time {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)
	return time.Date(2026, time.March, day, hour, 0, 0, 0, loc)
}

func TestCancel_ClientWithinWindow(t *testing.T) {
	// За 24 часа до начала - лимит в 23 часа не нарушен
	svc, repo := testService(testBooking(), mskTime(t, 11, 10))

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{
		UserID:             clientID,
		CancellationReason: "передумал",
	})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelledByClient, repo.cancelledStatus)
	assert.Equal(t, "передумал", repo.cancelledReason)
}

func TestCancel_ClientTooLate(t *testing.T) {
	// За 22 часа до начала - окно отмены уже закрыто
	svc, _ := testService(testBooking(), mskTime(t, 11, 12))

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: clientID})
	require.ErrorIs(t, err, ErrCancellationWindowClosed)
}

func TestCancel_BusinessBypassesWindow(t *testing.T) {
	// Менеджер отменяет за час до начала, лимиты его не касаются
	svc, repo := testService(testBooking(), mskTime(t, 12, 9))

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: managerID})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelledByBusiness, repo.cancelledStatus)
}

func TestCancel_ReminderGraceStillOpen(t *testing.T) {
	booking := testBooking()
	sent := mskTime(t, 11, 9)
	booking.ReminderSentAt = &sent

	// Полчаса после напоминания - часовое окно ещё открыто
	svc, repo := testService(booking, sent.Add(30*time.Minute))

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: clientID})
	require.NoError(t, err)
	assert.Equal(t, domain.StatusCancelledByClient, repo.cancelledStatus)
}

func TestCancel_ReminderGraceExpired(t *testing.T) {
	booking := testBooking()
	sent := mskTime(t, 11, 9)
	booking.ReminderSentAt = &sent

	// Два часа после напоминания - окно закрыто, хотя до записи ещё сутки
	svc, _ := testService(booking, sent.Add(2*time.Hour))

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: clientID})
	require.ErrorIs(t, err, ErrCancellationWindowClosed)
}

func TestCancel_StrangerDenied(t *testing.T) {
	svc, _ := testService(testBooking(), mskTime(t, 11, 10))

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: strangerID})
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestCancel_AlreadyCancelled(t *testing.T) {
	booking := testBooking()
	booking.Status = domain.StatusCancelledByClient
	svc, _ := testService(booking, mskTime(t, 11, 10))

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: clientID})
	require.ErrorIs(t, err, ErrCannotCancel)
}

func TestCancel_NotFound(t *testing.T) {
	svc, _ := testService(nil, mskTime(t, 11, 10))

	err := svc.Cancel(context.Background(), 1, &models.CancelBookingRequest{UserID: clientID})
	require.ErrorIs(t, err, ErrBookingNotFound)
}

func TestGetByID_OwnerAndBusinessAllowed(t *testing.T) {
	svc, _ := testService(testBooking(), mskTime(t, 11, 10))

	for _, userID := range []int64{clientID, managerID, employeeID} {
		resp, err := svc.GetByID(context.Background(), 1, userID)
		require.NoError(t, err, "user %d", userID)
		assert.Equal(t, int64(1), resp.ID)
	}
}

func TestGetByID_StrangerDenied(t *testing.T) {
	svc, _ := testService(testBooking(), mskTime(t, 11, 10))

	_, err := svc.GetByID(context.Background(), 1, strangerID)
	require.ErrorIs(t, err, ErrAccessDenied)
}

func TestMarkReminderSent_ManagerSetsCurrentTime(t *testing.T) {
	now := mskTime(t, 11, 9)
	svc, repo := testService(testBooking(), now)

	err := svc.MarkReminderSent(context.Background(), 1, &models.MarkReminderSentRequest{UserID: managerID})
	require.NoError(t, err)
	require.NotNil(t, repo.reminderSentAt)
	assert.True(t, repo.reminderSentAt.Equal(now))
}

func TestMarkReminderSent_ClientDenied(t *testing.T) {
	svc, _ := testService(testBooking(), mskTime(t, 11, 9))

	err := svc.MarkReminderSent(context.Background(), 1, &models.MarkReminderSentRequest{UserID: clientID})
	require.ErrorIs(t, err, ErrAccessDenied)
}
