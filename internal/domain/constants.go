package domain

// Timing policy constants
const (
	// MinBookingLeadMinutes минимальный интервал между "сейчас" и началом
	// бронирования при создании (2 часа)
	MinBookingLeadMinutes = 120

	// CancellationLimitMinutes минимальный интервал между "сейчас" и началом
	// бронирования при отмене (23 часа)
	CancellationLimitMinutes = 1380

	// ReminderGraceMinutes окно после отправки напоминания, в течение которого
	// отмена остаётся доступной (1 час)
	ReminderGraceMinutes = 60
)

// Default working window, used when a business has no configured schedule.
// Keeps the calendar usable before onboarding is complete.
const (
	DefaultWorkdayStart = "08:00"
	DefaultWorkdayEnd   = "19:00"
)

// Slot granularity
const (
	DefaultGranularityMinutes = 30
	MinGranularityMinutes     = 15
	MaxGranularityMinutes     = 240
)

// AllowedGranularities допустимые значения шага сетки слотов (по возрастанию)
// Используется при выводе шага из длительности самой короткой услуги
var AllowedGranularities = []int{15, 30, 45, 60, 90, 120, 180, 240}

// Business validation constants
const (
	MaxNotesLength              = 500
	MaxCancellationReasonLength = 500
	MaxBlackoutReasonLength     = 300
	MaxRangesPerDay             = 10
)

// Time format constants
const (
	TimeFormat = "15:04"      // HH:MM
	DateFormat = "2006-01-02" // YYYY-MM-DD
)

// InactiveStatuses список статусов, при которых бронирование освобождает слот
// Используется для фильтрации при подсчёте занятости
var InactiveStatuses = []BookingStatus{
	StatusCancelledByClient,
	StatusCancelledByBusiness,
}

// ActiveStatuses список статусов, при которых бронирование занимает слот
var ActiveStatuses = []BookingStatus{
	StatusPendingConsent,
	StatusConfirmed,
}
