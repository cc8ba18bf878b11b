package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appointly/booking-engine/internal/domain"
	"github.com/appointly/booking-engine/pkg/types"
)

func day(enabled bool, ranges ...domain.TimeRange) domain.DaySchedule {
	return domain.DaySchedule{Enabled: enabled, Ranges: ranges}
}

func tr(start, end string) domain.TimeRange {
	return domain.TimeRange{Start: types.TimeString(start), End: types.TimeString(end)}
}

func labels(slots []types.TimeString) []string {
	out := make([]string, len(slots))
	for i, s := range slots {
		out[i] = s.String()
	}
	return out
}

func TestCandidateSlotsForDay_SingleRange(t *testing.T) {
	slots := CandidateSlotsForDay(day(true, tr("09:00", "12:00")), 60)

	assert.Equal(t, []string{"09:00", "10:00", "11:00"}, labels(slots))
}

func TestCandidateSlotsForDay_SlotMustFitBeforeRangeEnd(t *testing.T) {
	// 10:30-11:00 не помещается до 10:45 и не должен быть выдан
	slots := CandidateSlotsForDay(day(true, tr("09:30", "10:45")), 30)

	assert.Equal(t, []string{"09:30", "10:00"}, labels(slots))
}

func TestCandidateSlotsForDay_MultipleRangesSorted(t *testing.T) {
	slots := CandidateSlotsForDay(day(true, tr("14:00", "16:00"), tr("09:00", "11:00")), 60)

	assert.Equal(t, []string{"09:00", "10:00", "14:00", "15:00"}, labels(slots))
}

func TestCandidateSlotsForDay_DisabledDay(t *testing.T) {
	slots := CandidateSlotsForDay(day(false, tr("09:00", "18:00")), 30)

	require.NotNil(t, slots)
	assert.Empty(t, slots)
}

func TestCandidateSlotsForDay_NoRanges(t *testing.T) {
	slots := CandidateSlotsForDay(day(true), 30)

	assert.Empty(t, slots)
}

func TestCandidateSlotsForDay_MalformedRangesSkipped(t *testing.T) {
	// Перевернутый и нулевой диапазоны игнорируются, корректный работает
	slots := CandidateSlotsForDay(day(true,
		tr("18:00", "09:00"),
		tr("12:00", "12:00"),
		tr("10:00", "11:00"),
	), 30)

	assert.Equal(t, []string{"10:00", "10:30"}, labels(slots))
}

func TestCandidateSlotsForDay_OverlappingRangesDeduplicated(t *testing.T) {
	slots := CandidateSlotsForDay(day(true, tr("09:00", "11:00"), tr("10:00", "12:00")), 60)

	assert.Equal(t, []string{"09:00", "10:00", "11:00"}, labels(slots))
}

func TestCandidateSlotsForDay_DefaultScheduleWindow(t *testing.T) {
	schedule := domain.DefaultWeekSchedule()
	slots := CandidateSlotsForDay(schedule[1], 60) // любой день дефолтного расписания

	require.Len(t, slots, 11)
	assert.Equal(t, "08:00", slots[0].String())
	assert.Equal(t, "18:00", slots[len(slots)-1].String())
}

func TestCandidateSlotsForDay_InvalidGranularity(t *testing.T) {
	assert.Empty(t, CandidateSlotsForDay(day(true, tr("09:00", "18:00")), 0))
	assert.Empty(t, CandidateSlotsForDay(day(true, tr("09:00", "18:00")), -15))
}
