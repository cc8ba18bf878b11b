package engine

import (
	"time"

	"github.com/appointly/booking-engine/internal/domain"
)

// ClassifyInput входные данные классификации слотов одного дня.
// Классификация - чистая функция этих данных и Now: при одинаковом входе
// результат всегда одинаков.
type ClassifyInput struct {
	Date                   time.Time // календарная дата запрошенного дня
	Schedule               domain.WeekSchedule
	Blackouts              []domain.BlackoutPeriod
	Bookings               []*domain.Booking
	EmployeeID             *int64 // ресурс; nil = бизнес целиком
	ServiceDurationMinutes int
	GranularityMinutes     int
	Now                    time.Time
	Location               *time.Location
}

// Classify классифицирует каждый кандидат-слот запрошенного дня.
//
// Порядок проверок фиксирован: past > blocked (блэкаут или слишком рано) >
// booked > недостаточная последовательность > available. Слот в прошлом,
// пересекающийся с бронированием, показывается как past: прошедшее время -
// более жесткий факт, чем любое решение политики.
func Classify(in ClassifyInput) ([]domain.CandidateSlot, error) {
	n := NewNormalizer(in.Location)
	granularity := in.GranularityMinutes
	if granularity <= 0 {
		granularity = domain.DefaultGranularityMinutes
	}

	labels := CandidateSlotsForDay(in.Schedule.ForDay(in.Date.Weekday()), granularity)

	slots := make([]domain.CandidateSlot, 0, len(labels))
	step := time.Duration(granularity) * time.Minute

	for _, label := range labels {
		start, err := n.SlotStart(in.Date, label)
		if err != nil {
			return nil, err
		}
		end := start.Add(step)

		slot := domain.CandidateSlot{
			StartTime: label,
			Start:     start,
		}

		switch {
		case start.Before(in.Now):
			slot.Status = domain.SlotPast

		case blackoutReason(n, start, end, in) != "":
			slot.Status = domain.SlotBlocked
			slot.Reason = blackoutReason(n, start, end, in)

		case !leadTimeOK(start, in.Now):
			slot.Status = domain.SlotBlocked
			slot.Reason = MsgTooSoon

		case HasOverlap(n, start, end, in.EmployeeID, granularity, in.Bookings):
			slot.Status = domain.SlotBooked

		default:
			slot.Status = domain.SlotAvailable
		}

		slots = append(slots, slot)
	}

	// Для услуг длиннее одного слота проверяем последовательную серию:
	// стартовый слот остаётся available, только если вся серия свободна
	// и непрерывна по времени (разрывы между диапазонами серию прерывают)
	slotsNeeded := domain.SlotsNeeded(in.ServiceDurationMinutes, granularity)
	if slotsNeeded > 1 {
		markInsufficientRuns(slots, slotsNeeded, step)
	}

	return slots, nil
}

func blackoutReason(n Normalizer, start, end time.Time, in ClassifyInput) string {
	matched := MatchBlackout(n, start, end, in.EmployeeID, in.Blackouts)
	if matched == nil {
		return ""
	}
	if matched.Reason != nil && *matched.Reason != "" {
		return *matched.Reason
	}
	return MsgSlotBlocked
}

func leadTimeOK(start, now time.Time) bool {
	ok, _ := CheckLeadTime(start, now)
	return ok
}

// markInsufficientRuns помечает available-слоты, за которыми не следует
// достаточная непрерывная серия свободных слотов
func markInsufficientRuns(slots []domain.CandidateSlot, slotsNeeded int, step time.Duration) {
	// Снимок базовых статусов: решение по каждому слоту принимается
	// по состоянию до прохода, иначе помеченные слоты каскадно
	// блокировали бы соседей
	base := make([]domain.SlotStatus, len(slots))
	for i := range slots {
		base[i] = slots[i].Status
	}

	for i := range slots {
		if base[i] != domain.SlotAvailable {
			continue
		}

		if !runIsFree(slots, base, i, slotsNeeded, step) {
			slots[i].Status = domain.SlotBlocked
			slots[i].Reason = MsgInsufficientRun
		}
	}
}

func runIsFree(slots []domain.CandidateSlot, base []domain.SlotStatus, from, slotsNeeded int, step time.Duration) bool {
	for k := 1; k < slotsNeeded; k++ {
		idx := from + k
		if idx >= len(slots) {
			return false
		}
		// Серия должна быть непрерывной по времени
		if !slots[idx].Start.Equal(slots[from].Start.Add(time.Duration(k) * step)) {
			return false
		}
		if base[idx] != domain.SlotAvailable {
			return false
		}
	}
	return true
}
