package domain

import (
	"time"

	"github.com/appointly/booking-engine/pkg/types"
)

// TimeRange one working interval inside a day, local wall-clock times.
// Invariant: Start < End; ranges of one day do not overlap.
type TimeRange struct {
	Start types.TimeString
	End   types.TimeString
}

// IsValid проверяет инвариант start < end при корректном формате
func (r TimeRange) IsValid() bool {
	if r.Start.Validate() != nil || r.End.Validate() != nil {
		return false
	}
	return r.Start.IsBefore(r.End)
}

// DaySchedule schedule entry for one weekday: either disabled, or enabled
// with an ordered set of disjoint ranges
type DaySchedule struct {
	Enabled bool
	Ranges  []TimeRange
}

// WeekSchedule per-business or per-employee weekly schedule, one entry per
// weekday. Indexed by time.Weekday so invalid day keys are unrepresentable.
type WeekSchedule [7]DaySchedule

// ForDay возвращает расписание на день недели
func (s WeekSchedule) ForDay(weekday time.Weekday) DaySchedule {
	return s[int(weekday)]
}

// SetDay устанавливает расписание на день недели
func (s *WeekSchedule) SetDay(weekday time.Weekday, day DaySchedule) {
	s[int(weekday)] = day
}

// DefaultWeekSchedule возвращает дефолтное расписание 08:00-19:00 все дни
// Применяется, когда у бизнеса ещё нет настроенного расписания
func DefaultWeekSchedule() WeekSchedule {
	var schedule WeekSchedule
	for i := range schedule {
		schedule[i] = DaySchedule{
			Enabled: true,
			Ranges: []TimeRange{
				{Start: types.TimeString(DefaultWorkdayStart), End: types.TimeString(DefaultWorkdayEnd)},
			},
		}
	}
	return schedule
}

// ScheduleOwner идентифицирует владельца расписания: бизнес целиком
// либо конкретный сотрудник
type ScheduleOwner struct {
	BusinessID int64
	EmployeeID *int64
}
