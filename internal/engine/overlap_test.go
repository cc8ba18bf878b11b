package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appointly/booking-engine/internal/domain"
	"github.com/appointly/booking-engine/pkg/ptr"
	"github.com/appointly/booking-engine/pkg/types"
)

func booking(id int64, day time.Time, start string, duration int, status domain.BookingStatus) *domain.Booking {
	return &domain.Booking{
		ID:              id,
		BusinessID:      10,
		ServiceID:       1,
		BookingDate:     day,
		StartTime:       types.TimeString(start),
		DurationMinutes: duration,
		Status:          status,
	}
}

func TestOverlappingBookings_StrictHalfOpenInterval(t *testing.T) {
	loc := mustLoadLoc(t)
	n := NewNormalizer(loc)
	d := date(2026, time.March, 10)

	bookings := []*domain.Booking{
		booking(1, d, "11:20", 20, domain.StatusConfirmed), // 11:20-11:40, пересекает
		booking(2, d, "11:00", 30, domain.StatusConfirmed), // 11:00-11:30, граничит
		booking(3, d, "12:00", 30, domain.StatusConfirmed), // 12:00-12:30, граничит
	}

	slotStart := time.Date(2026, time.March, 10, 11, 30, 0, 0, loc).UTC()
	slotEnd := slotStart.Add(30 * time.Minute)

	overlapping := OverlappingBookings(n, slotStart, slotEnd, nil, 30, bookings)
	require.Len(t, overlapping, 1)
	assert.Equal(t, int64(1), overlapping[0].ID)
}

func TestOverlappingBookings_CancelledVacatesRange(t *testing.T) {
	loc := mustLoadLoc(t)
	n := NewNormalizer(loc)
	d := date(2026, time.March, 10)

	bookings := []*domain.Booking{
		booking(1, d, "10:00", 60, domain.StatusCancelledByClient),
		booking(2, d, "10:00", 60, domain.StatusCancelledByBusiness),
	}

	slotStart := time.Date(2026, time.March, 10, 10, 0, 0, 0, loc).UTC()
	assert.False(t, HasOverlap(n, slotStart, slotStart.Add(time.Hour), nil, 60, bookings))
}

func TestOverlappingBookings_PendingConsentOccupiesRange(t *testing.T) {
	loc := mustLoadLoc(t)
	n := NewNormalizer(loc)
	d := date(2026, time.March, 10)

	bookings := []*domain.Booking{
		booking(1, d, "10:00", 60, domain.StatusPendingConsent),
	}

	slotStart := time.Date(2026, time.March, 10, 10, 30, 0, 0, loc).UTC()
	assert.True(t, HasOverlap(n, slotStart, slotStart.Add(time.Hour), nil, 60, bookings))
}

func TestOverlappingBookings_ResourceScope(t *testing.T) {
	loc := mustLoadLoc(t)
	n := NewNormalizer(loc)
	d := date(2026, time.March, 10)

	employeeBooking := booking(1, d, "10:00", 60, domain.StatusConfirmed)
	employeeBooking.EmployeeID = ptr.Ptr(int64(5))

	businessWide := booking(2, d, "10:00", 60, domain.StatusConfirmed)

	bookings := []*domain.Booking{employeeBooking, businessWide}

	slotStart := time.Date(2026, time.March, 10, 10, 0, 0, 0, loc).UTC()
	slotEnd := slotStart.Add(time.Hour)

	// Запрос по сотруднику 5 видит только его бронирование
	overlapping := OverlappingBookings(n, slotStart, slotEnd, ptr.Ptr(int64(5)), 60, bookings)
	require.Len(t, overlapping, 1)
	assert.Equal(t, int64(1), overlapping[0].ID)

	// Запрос по другому сотруднику не видит ничего
	assert.Empty(t, OverlappingBookings(n, slotStart, slotEnd, ptr.Ptr(int64(6)), 60, bookings))

	// Запрос без ресурсной модели видит только business-wide бронирование
	overlapping = OverlappingBookings(n, slotStart, slotEnd, nil, 60, bookings)
	require.Len(t, overlapping, 1)
	assert.Equal(t, int64(2), overlapping[0].ID)
}

func TestOverlappingBookings_ZeroDurationDefaultsToGranularity(t *testing.T) {
	loc := mustLoadLoc(t)
	n := NewNormalizer(loc)
	d := date(2026, time.March, 10)

	// Legacy-запись без длительности занимает один слот сетки
	legacy := booking(1, d, "10:00", 0, domain.StatusConfirmed)
	bookings := []*domain.Booking{legacy}

	inside := time.Date(2026, time.March, 10, 10, 15, 0, 0, loc).UTC()
	assert.True(t, HasOverlap(n, inside, inside.Add(30*time.Minute), nil, 30, bookings))

	after := time.Date(2026, time.March, 10, 10, 30, 0, 0, loc).UTC()
	assert.False(t, HasOverlap(n, after, after.Add(30*time.Minute), nil, 30, bookings))
}
