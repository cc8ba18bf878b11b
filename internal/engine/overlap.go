package engine

import (
	"time"

	"github.com/appointly/booking-engine/internal/domain"
)

// OverlappingBookings возвращает все активные бронирования того же ресурса,
// чей интервал [start, start+duration) пересекает [start, end) по строгому
// тесту: границы, совпадающие встык, пересечением не считаются.
//
// Примеры:
// - Слот 11:30-12:00, бронирование 11:20-11:40 → ЕСТЬ пересечение
// - Слот 11:30-12:00, бронирование 11:00-11:30 → НЕТ пересечения (граничат)
// - Слот 11:30-12:00, бронирование 12:00-12:30 → НЕТ пересечения (граничат)
func OverlappingBookings(
	n Normalizer,
	start, end time.Time,
	employeeID *int64,
	defaultDurationMinutes int,
	bookings []*domain.Booking,
) []*domain.Booking {
	overlapping := make([]*domain.Booking, 0)

	for _, booking := range bookings {
		// Отмененные бронирования освобождают свой интервал
		if !booking.IsActive() {
			continue
		}

		if !booking.SameScope(employeeID) {
			continue
		}

		bStart, bEnd, err := n.BookingInterval(booking, defaultDurationMinutes)
		if err != nil {
			// Битую запись пропускаем, а не роняем запрос
			continue
		}

		if bStart.Before(end) && bEnd.After(start) {
			overlapping = append(overlapping, booking)
		}
	}

	return overlapping
}

// HasOverlap сокращение для проверки занятости без сбора списка
func HasOverlap(
	n Normalizer,
	start, end time.Time,
	employeeID *int64,
	defaultDurationMinutes int,
	bookings []*domain.Booking,
) bool {
	return len(OverlappingBookings(n, start, end, employeeID, defaultDurationMinutes, bookings)) > 0
}
