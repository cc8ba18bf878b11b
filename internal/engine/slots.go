package engine

import (
	"sort"

	"github.com/appointly/booking-engine/internal/domain"
	"github.com/appointly/booking-engine/pkg/types"
)

// CandidateSlotsForDay генерирует упорядоченный список меток начала слотов
// на день: каждый рабочий диапазон обходится с шагом granularityMinutes,
// слот попадает в результат, только если целиком помещается до конца
// диапазона. Выключенный день или день без диапазонов дают пустой список.
//
// Некорректные диапазоны (start >= end, битый формат) пропускаются
// молча: их отбраковка - задача валидации при сохранении расписания,
// а генератор не должен падать и не должен выдавать слоты
// отрицательной длины.
func CandidateSlotsForDay(day domain.DaySchedule, granularityMinutes int) []types.TimeString {
	if !day.Enabled || len(day.Ranges) == 0 || granularityMinutes <= 0 {
		return []types.TimeString{}
	}

	seen := make(map[types.TimeString]bool)
	slots := make([]types.TimeString, 0)

	for _, r := range day.Ranges {
		if !r.IsValid() {
			continue
		}

		current := r.Start
		for current.IsBefore(r.End) {
			slotEnd, err := current.AddMinutes(granularityMinutes)
			if err != nil {
				break
			}
			if slotEnd.IsAfter(r.End) {
				break
			}

			// Дедупликация на случай пересекающихся диапазонов во входе
			if !seen[current] {
				seen[current] = true
				slots = append(slots, current)
			}

			current = slotEnd
		}
	}

	sort.Slice(slots, func(i, j int) bool {
		return slots[i].IsBefore(slots[j])
	})

	return slots
}
