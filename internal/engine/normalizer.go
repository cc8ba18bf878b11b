package engine

import (
	"fmt"
	"time"

	"github.com/appointly/booking-engine/internal/domain"
	"github.com/appointly/booking-engine/pkg/types"
)

// Normalizer converts between a business's local wall-clock representation
// (calendar date + "HH:MM" label) and canonical UTC instants. All engine
// comparisons happen on canonical instants; labels exist for storage and
// display only.
type Normalizer struct {
	loc *time.Location
}

// NewNormalizer создает нормализатор для таймзоны бизнеса
// При nil используется UTC
func NewNormalizer(loc *time.Location) Normalizer {
	if loc == nil {
		loc = time.UTC
	}
	return Normalizer{loc: loc}
}

// Location возвращает таймзону бизнеса
func (n Normalizer) Location() *time.Location {
	return n.loc
}

// SlotStart собирает канонический момент начала слота из календарной даты
// и локальной метки времени
func (n Normalizer) SlotStart(date time.Time, ts types.TimeString) (time.Time, error) {
	minutes, err := ts.Minutes()
	if err != nil {
		return time.Time{}, fmt.Errorf("normalizer: slot label %q: %w", ts, err)
	}
	y, m, d := date.Date()
	return time.Date(y, m, d, 0, minutes, 0, 0, n.loc).UTC(), nil
}

// BookingInterval возвращает канонический интервал [start, end) бронирования
// Если длительность не задана (legacy-данные), подставляется defaultDuration
func (n Normalizer) BookingInterval(b *domain.Booking, defaultDurationMinutes int) (time.Time, time.Time, error) {
	duration := b.DurationMinutes
	if duration <= 0 {
		duration = defaultDurationMinutes
	}

	start, err := n.SlotStart(b.BookingDate, b.StartTime)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	return start, start.Add(time.Duration(duration) * time.Minute), nil
}

// BlackoutBounds разворачивает даты блэкаута в канонический интервал:
// начало первого дня 00:00:00 по локальному времени, конец последнего дня
// 23:59:59.999
func (n Normalizer) BlackoutBounds(b *domain.BlackoutPeriod) (time.Time, time.Time) {
	sy, sm, sd := b.StartDate.Date()
	ey, em, ed := b.EndDate.Date()

	start := time.Date(sy, sm, sd, 0, 0, 0, 0, n.loc)
	end := time.Date(ey, em, ed, 0, 0, 0, 0, n.loc).Add(24*time.Hour - time.Millisecond)
	return start.UTC(), end.UTC()
}

// Local переводит канонический момент в локальное время бизнеса
func (n Normalizer) Local(instant time.Time) time.Time {
	return instant.In(n.loc)
}
