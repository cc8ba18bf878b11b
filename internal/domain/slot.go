package domain

import (
	"time"

	"github.com/appointly/booking-engine/pkg/types"
)

// SlotStatus классификация кандидата-слота на календаре
type SlotStatus string

const (
	SlotAvailable SlotStatus = "available"
	SlotBooked    SlotStatus = "booked"
	SlotPast      SlotStatus = "past"
	SlotBlocked   SlotStatus = "blocked"
)

// CandidateSlot is a query-time-only value: one quantized start time on a
// requested day together with its classification. Never persisted,
// recomputed on every query.
type CandidateSlot struct {
	StartTime types.TimeString // локальное время начала ("10:00")
	Start     time.Time        // канонический момент начала (UTC)
	Status    SlotStatus
	Reason    string // человекочитаемая причина для blocked-слотов
}

// IsBookable returns true if the slot can be the start of a new booking
func (s *CandidateSlot) IsBookable() bool {
	return s.Status == SlotAvailable
}

// SlotsNeeded возвращает количество последовательных слотов, необходимое
// услуге длительностью durationMinutes на сетке granularityMinutes
// Округление вверх: хвост последнего слота резервируется как мертвое время
func SlotsNeeded(durationMinutes, granularityMinutes int) int {
	if granularityMinutes <= 0 {
		return 1
	}
	n := (durationMinutes + granularityMinutes - 1) / granularityMinutes
	if n < 1 {
		return 1
	}
	return n
}

// InferGranularity выводит шаг сетки из длительностей услуг бизнеса:
// наибольшее допустимое значение, не превышающее самую короткую услугу
// Если услуг нет или все короче минимального шага, возвращает дефолт/минимум
func InferGranularity(serviceDurations []int) int {
	if len(serviceDurations) == 0 {
		return DefaultGranularityMinutes
	}

	shortest := serviceDurations[0]
	for _, d := range serviceDurations[1:] {
		if d < shortest {
			shortest = d
		}
	}

	granularity := 0
	for _, g := range AllowedGranularities {
		if g <= shortest {
			granularity = g
		}
	}
	if granularity == 0 {
		return MinGranularityMinutes
	}
	return granularity
}
