package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appointly/booking-engine/internal/domain"
	"github.com/appointly/booking-engine/pkg/ptr"
)

func mustLoadLoc(t *testing.T) *time.Location {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Moscow")
	require.NoError(t, err)
	return loc
}

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestMatchBlackout_SingleDayBlocksWholeDay(t *testing.T) {
	loc := mustLoadLoc(t)
	n := NewNormalizer(loc)

	blackout := domain.BlackoutPeriod{
		ID:         1,
		BusinessID: 10,
		StartDate:  date(2026, time.March, 10),
		EndDate:    date(2026, time.March, 10),
		Reason:     ptr.Ptr("выходной день"),
	}

	firstSlot := time.Date(2026, time.March, 10, 8, 0, 0, 0, loc)
	lastSlot := time.Date(2026, time.March, 10, 18, 0, 0, 0, loc)

	matched := MatchBlackout(n, firstSlot.UTC(), firstSlot.Add(time.Hour).UTC(), nil, []domain.BlackoutPeriod{blackout})
	require.NotNil(t, matched)
	assert.Equal(t, int64(1), matched.ID)

	matched = MatchBlackout(n, lastSlot.UTC(), lastSlot.Add(time.Hour).UTC(), nil, []domain.BlackoutPeriod{blackout})
	require.NotNil(t, matched)
}

func TestMatchBlackout_AdjacentDaysUnaffected(t *testing.T) {
	loc := mustLoadLoc(t)
	n := NewNormalizer(loc)

	blackouts := []domain.BlackoutPeriod{{
		ID:         1,
		BusinessID: 10,
		StartDate:  date(2026, time.March, 10),
		EndDate:    date(2026, time.March, 10),
	}}

	// Последний слот дня D-1 и первый слот дня D+1 не затронуты
	dayBefore := time.Date(2026, time.March, 9, 23, 0, 0, 0, loc)
	assert.Nil(t, MatchBlackout(n, dayBefore.UTC(), dayBefore.Add(time.Hour).UTC(), nil, blackouts))

	dayAfter := time.Date(2026, time.March, 11, 0, 0, 0, 0, loc)
	assert.Nil(t, MatchBlackout(n, dayAfter.UTC(), dayAfter.Add(time.Hour).UTC(), nil, blackouts))
}

func TestMatchBlackout_MultiDayRange(t *testing.T) {
	loc := mustLoadLoc(t)
	n := NewNormalizer(loc)

	blackouts := []domain.BlackoutPeriod{{
		ID:         2,
		BusinessID: 10,
		StartDate:  date(2026, time.July, 1),
		EndDate:    date(2026, time.July, 14),
		Reason:     ptr.Ptr("отпуск"),
	}}

	middle := time.Date(2026, time.July, 7, 12, 0, 0, 0, loc)
	matched := MatchBlackout(n, middle.UTC(), middle.Add(30*time.Minute).UTC(), nil, blackouts)
	require.NotNil(t, matched)
	assert.Equal(t, "отпуск", *matched.Reason)
}

func TestMatchBlackout_EmployeeScope(t *testing.T) {
	loc := mustLoadLoc(t)
	n := NewNormalizer(loc)

	employeeBlackout := domain.BlackoutPeriod{
		ID:         3,
		BusinessID: 10,
		EmployeeID: ptr.Ptr(int64(5)),
		StartDate:  date(2026, time.March, 10),
		EndDate:    date(2026, time.March, 10),
	}

	slot := time.Date(2026, time.March, 10, 10, 0, 0, 0, loc)
	blackouts := []domain.BlackoutPeriod{employeeBlackout}

	// Блэкаут сотрудника действует только для него
	assert.NotNil(t, MatchBlackout(n, slot.UTC(), slot.Add(time.Hour).UTC(), ptr.Ptr(int64(5)), blackouts))
	assert.Nil(t, MatchBlackout(n, slot.UTC(), slot.Add(time.Hour).UTC(), ptr.Ptr(int64(6)), blackouts))
	assert.Nil(t, MatchBlackout(n, slot.UTC(), slot.Add(time.Hour).UTC(), nil, blackouts))

	// Блэкаут бизнеса действует для всех ресурсов
	businessBlackout := domain.BlackoutPeriod{
		ID:         4,
		BusinessID: 10,
		StartDate:  date(2026, time.March, 10),
		EndDate:    date(2026, time.March, 10),
	}
	blackouts = []domain.BlackoutPeriod{businessBlackout}
	assert.NotNil(t, MatchBlackout(n, slot.UTC(), slot.Add(time.Hour).UTC(), ptr.Ptr(int64(5)), blackouts))
}

func TestMatchBlackout_FirstMatchWins(t *testing.T) {
	loc := mustLoadLoc(t)
	n := NewNormalizer(loc)

	blackouts := []domain.BlackoutPeriod{
		{ID: 1, StartDate: date(2026, time.March, 10), EndDate: date(2026, time.March, 12)},
		{ID: 2, StartDate: date(2026, time.March, 11), EndDate: date(2026, time.March, 11)},
	}

	slot := time.Date(2026, time.March, 11, 10, 0, 0, 0, loc)
	matched := MatchBlackout(n, slot.UTC(), slot.Add(time.Hour).UTC(), nil, blackouts)
	require.NotNil(t, matched)
	assert.Equal(t, int64(1), matched.ID)
}
