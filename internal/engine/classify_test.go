package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/appointly/booking-engine/internal/domain"
	"github.com/appointly/booking-engine/pkg/types"
)

// расписание 08:00-19:00 на все дни для тестов классификации
func openAllWeek() domain.WeekSchedule {
	return domain.DefaultWeekSchedule()
}

func statusOf(t *testing.T, slots []domain.CandidateSlot, label string) domain.CandidateSlot {
	t.Helper()
	for _, s := range slots {
		if s.StartTime.String() == label {
			return s
		}
	}
	t.Fatalf("slot %s not found", label)
	return domain.CandidateSlot{}
}

func TestClassify_SimpleDayAllAvailable(t *testing.T) {
	loc := mustLoadLoc(t)

	// Завтрашний день, запрос задолго до него
	in := ClassifyInput{
		Date:                   date(2026, time.March, 11),
		Schedule:               openAllWeek(),
		ServiceDurationMinutes: 60,
		GranularityMinutes:     60,
		Now:                    time.Date(2026, time.March, 10, 12, 0, 0, 0, loc).UTC(),
		Location:               loc,
	}

	slots, err := Classify(in)
	require.NoError(t, err)
	require.Len(t, slots, 11)

	for _, s := range slots {
		assert.Equal(t, domain.SlotAvailable, s.Status, "slot %s", s.StartTime)
	}
}

func TestClassify_PastDominatesEverything(t *testing.T) {
	loc := mustLoadLoc(t)
	d := date(2026, time.March, 10)

	// 09:00 одновременно в прошлом, занят и в блэкауте - должен быть past
	in := ClassifyInput{
		Date:     d,
		Schedule: openAllWeek(),
		Blackouts: []domain.BlackoutPeriod{
			{ID: 1, StartDate: d, EndDate: d},
		},
		Bookings: []*domain.Booking{
			booking(1, d, "09:00", 60, domain.StatusConfirmed),
		},
		ServiceDurationMinutes: 60,
		GranularityMinutes:     60,
		Now:                    time.Date(2026, time.March, 10, 12, 0, 0, 0, loc).UTC(),
		Location:               loc,
	}

	slots, err := Classify(in)
	require.NoError(t, err)

	assert.Equal(t, domain.SlotPast, statusOf(t, slots, "09:00").Status)
	assert.Equal(t, domain.SlotPast, statusOf(t, slots, "10:00").Status)
	assert.Equal(t, domain.SlotPast, statusOf(t, slots, "11:00").Status)
}

func TestClassify_BlackoutBlocksWholeDayWithReason(t *testing.T) {
	loc := mustLoadLoc(t)
	d := date(2026, time.March, 12)
	reason := "санитарный день"

	in := ClassifyInput{
		Date:     d,
		Schedule: openAllWeek(),
		Blackouts: []domain.BlackoutPeriod{
			{ID: 1, StartDate: d, EndDate: d, Reason: &reason},
		},
		ServiceDurationMinutes: 60,
		GranularityMinutes:     60,
		Now:                    time.Date(2026, time.March, 10, 12, 0, 0, 0, loc).UTC(),
		Location:               loc,
	}

	slots, err := Classify(in)
	require.NoError(t, err)
	require.NotEmpty(t, slots)

	for _, s := range slots {
		assert.Equal(t, domain.SlotBlocked, s.Status)
		assert.Equal(t, reason, s.Reason)
	}
}

func TestClassify_TooSoonSlotsBlocked(t *testing.T) {
	loc := mustLoadLoc(t)
	d := date(2026, time.March, 10)

	// Сейчас 10:30 локального: 11:00 и 12:00 ближе двух часов, 12:30 ровно на границе
	in := ClassifyInput{
		Date:                   d,
		Schedule:               openAllWeek(),
		ServiceDurationMinutes: 30,
		GranularityMinutes:     30,
		Now:                    time.Date(2026, time.March, 10, 10, 30, 0, 0, loc).UTC(),
		Location:               loc,
	}

	slots, err := Classify(in)
	require.NoError(t, err)

	assert.Equal(t, domain.SlotPast, statusOf(t, slots, "10:00").Status)

	eleven := statusOf(t, slots, "11:00")
	assert.Equal(t, domain.SlotBlocked, eleven.Status)
	assert.Equal(t, MsgTooSoon, eleven.Reason)

	assert.Equal(t, domain.SlotBlocked, statusOf(t, slots, "12:00").Status)

	// Ровно now + 2h - уже доступен
	assert.Equal(t, domain.SlotAvailable, statusOf(t, slots, "12:30").Status)
}

func TestClassify_BookedSlot(t *testing.T) {
	loc := mustLoadLoc(t)
	d := date(2026, time.March, 11)

	in := ClassifyInput{
		Date:     d,
		Schedule: openAllWeek(),
		Bookings: []*domain.Booking{
			booking(1, d, "10:00", 60, domain.StatusConfirmed),
		},
		ServiceDurationMinutes: 60,
		GranularityMinutes:     60,
		Now:                    time.Date(2026, time.March, 10, 12, 0, 0, 0, loc).UTC(),
		Location:               loc,
	}

	slots, err := Classify(in)
	require.NoError(t, err)

	assert.Equal(t, domain.SlotBooked, statusOf(t, slots, "10:00").Status)
	assert.Equal(t, domain.SlotAvailable, statusOf(t, slots, "09:00").Status)
	assert.Equal(t, domain.SlotAvailable, statusOf(t, slots, "11:00").Status)
}

func TestClassify_MultiSlotServiceInsufficientRun(t *testing.T) {
	loc := mustLoadLoc(t)
	d := date(2026, time.March, 11)

	// Услуга 90 минут на сетке 30 минут = 3 слота
	// 10:30 занят: старт в 10:00 должен стать blocked, старт в 11:30 - available
	in := ClassifyInput{
		Date:     d,
		Schedule: openAllWeek(),
		Bookings: []*domain.Booking{
			booking(1, d, "10:30", 30, domain.StatusConfirmed),
		},
		ServiceDurationMinutes: 90,
		GranularityMinutes:     30,
		Now:                    time.Date(2026, time.March, 10, 12, 0, 0, 0, loc).UTC(),
		Location:               loc,
	}

	slots, err := Classify(in)
	require.NoError(t, err)

	tenSharp := statusOf(t, slots, "10:00")
	assert.Equal(t, domain.SlotBlocked, tenSharp.Status)
	assert.Equal(t, MsgInsufficientRun, tenSharp.Reason)

	// 09:30 тоже упирается в занятый 10:30
	assert.Equal(t, domain.SlotBlocked, statusOf(t, slots, "09:30").Status)

	assert.Equal(t, domain.SlotBooked, statusOf(t, slots, "10:30").Status)

	// 11:00/11:30/12:00 свободны - старты с достаточной серией available
	assert.Equal(t, domain.SlotAvailable, statusOf(t, slots, "11:00").Status)
	assert.Equal(t, domain.SlotAvailable, statusOf(t, slots, "11:30").Status)
}

func TestClassify_MultiSlotRunBrokenByRangeGap(t *testing.T) {
	loc := mustLoadLoc(t)
	d := date(2026, time.March, 11) // среда

	// Перерыв 12:00-14:00: серия не может перешагнуть разрыв
	var schedule domain.WeekSchedule
	schedule.SetDay(d.Weekday(), domain.DaySchedule{
		Enabled: true,
		Ranges: []domain.TimeRange{
			{Start: types.TimeString("10:00"), End: types.TimeString("12:00")},
			{Start: types.TimeString("14:00"), End: types.TimeString("16:00")},
		},
	})

	in := ClassifyInput{
		Date:                   d,
		Schedule:               schedule,
		ServiceDurationMinutes: 90,
		GranularityMinutes:     30,
		Now:                    time.Date(2026, time.March, 10, 12, 0, 0, 0, loc).UTC(),
		Location:               loc,
	}

	slots, err := Classify(in)
	require.NoError(t, err)

	// 11:00 требует 11:00/11:30/12:00, но 12:00 уже за пределами диапазона
	assert.Equal(t, domain.SlotBlocked, statusOf(t, slots, "11:00").Status)
	assert.Equal(t, domain.SlotBlocked, statusOf(t, slots, "11:30").Status)

	assert.Equal(t, domain.SlotAvailable, statusOf(t, slots, "10:30").Status)
	assert.Equal(t, domain.SlotAvailable, statusOf(t, slots, "14:00").Status)
	assert.Equal(t, domain.SlotAvailable, statusOf(t, slots, "14:30").Status)
}

func TestClassify_LastStartsOfDayBlockedForLongService(t *testing.T) {
	loc := mustLoadLoc(t)
	d := date(2026, time.March, 11)

	in := ClassifyInput{
		Date:                   d,
		Schedule:               openAllWeek(),
		ServiceDurationMinutes: 120,
		GranularityMinutes:     60,
		Now:                    time.Date(2026, time.March, 10, 12, 0, 0, 0, loc).UTC(),
		Location:               loc,
	}

	slots, err := Classify(in)
	require.NoError(t, err)

	// Последний слот 18:00: двухчасовой услуге нужен ещё 19:00, которого нет
	assert.Equal(t, domain.SlotBlocked, statusOf(t, slots, "18:00").Status)
	assert.Equal(t, domain.SlotAvailable, statusOf(t, slots, "17:00").Status)
}

func TestClassify_Deterministic(t *testing.T) {
	loc := mustLoadLoc(t)
	d := date(2026, time.March, 11)

	in := ClassifyInput{
		Date:     d,
		Schedule: openAllWeek(),
		Blackouts: []domain.BlackoutPeriod{
			{ID: 1, StartDate: date(2026, time.March, 11), EndDate: date(2026, time.March, 11), EmployeeID: nil},
		},
		Bookings: []*domain.Booking{
			booking(1, d, "10:00", 60, domain.StatusConfirmed),
			booking(2, d, "15:00", 90, domain.StatusPendingConsent),
		},
		ServiceDurationMinutes: 60,
		GranularityMinutes:     30,
		Now:                    time.Date(2026, time.March, 10, 12, 0, 0, 0, loc).UTC(),
		Location:               loc,
	}

	first, err := Classify(in)
	require.NoError(t, err)
	second, err := Classify(in)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestClassify_ClosedDayYieldsNoSlots(t *testing.T) {
	loc := mustLoadLoc(t)
	d := date(2026, time.March, 15) // воскресенье

	var schedule domain.WeekSchedule // все дни выключены

	in := ClassifyInput{
		Date:                   d,
		Schedule:               schedule,
		ServiceDurationMinutes: 60,
		GranularityMinutes:     60,
		Now:                    time.Date(2026, time.March, 10, 12, 0, 0, 0, loc).UTC(),
		Location:               loc,
	}

	slots, err := Classify(in)
	require.NoError(t, err)
	assert.Empty(t, slots)
}
