package domain

import (
	"time"

	"github.com/appointly/booking-engine/pkg/types"
)

// BookingStatus represents the status of a booking
type BookingStatus string

const (
	StatusPendingConsent      BookingStatus = "pending_consent"
	StatusConfirmed           BookingStatus = "confirmed"
	StatusCancelledByClient   BookingStatus = "cancelled_by_client"
	StatusCancelledByBusiness BookingStatus = "cancelled_by_business"
)

// Booking represents a reserved time span for a resource scope.
// A non-cancelled booking owns the half-open interval
// [start, start+duration) and no other non-cancelled booking for the
// same scope may overlap it.
type Booking struct {
	ID               int64
	ConfirmationCode string // внешний идентификатор для клиента (uuid)
	ClientID         int64
	BusinessID       int64
	EmployeeID       *int64 // nil = бронирование на бизнес целиком (без ресурсной модели)
	ServiceID        int64
	BookingDate      time.Time
	StartTime        types.TimeString
	DurationMinutes  int
	Status           BookingStatus
	Paid             bool

	// Denormalized data for history
	ServiceName  string
	ServicePrice float64
	Notes        *string

	ReminderSentAt     *time.Time
	CancellationReason *string
	CancelledAt        *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsCancelled returns true if the booking has been cancelled (by either side)
func (b *Booking) IsCancelled() bool {
	return b.Status == StatusCancelledByClient || b.Status == StatusCancelledByBusiness
}

// IsActive returns true if the booking still occupies its time range
func (b *Booking) IsActive() bool {
	return !b.IsCancelled()
}

// CanBeCancelled returns true if the booking is in a cancellable state
func (b *Booking) CanBeCancelled() bool {
	return b.Status == StatusPendingConsent || b.Status == StatusConfirmed
}

// SameScope проверяет, что бронирование относится к тому же ресурсу:
// оба без сотрудника (бизнес целиком) либо один и тот же сотрудник
func (b *Booking) SameScope(employeeID *int64) bool {
	if b.EmployeeID == nil && employeeID == nil {
		return true
	}
	if b.EmployeeID != nil && employeeID != nil {
		return *b.EmployeeID == *employeeID
	}
	return false
}

// BusinessBookingsFilter фильтр для получения бронирований бизнеса
type BusinessBookingsFilter struct {
	BusinessID      int64          // Обязательный параметр
	EmployeeID      *int64         // Фильтр по сотруднику (nil - бронирования без ресурсной модели)
	AnyEmployee     bool           // true - не фильтровать по сотруднику вообще
	StartDate       *time.Time     // Начало периода (опционально)
	EndDate         *time.Time     // Конец периода (опционально)
	Status          *BookingStatus // Фильтр по статусу (опционально)
	IncludeInactive bool           // Включать ли отмененные бронирования
}
