package engine

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/appointly/booking-engine/pkg/ptr"
)

func TestCheckLeadTime_Boundary(t *testing.T) {
	now := time.Date(2026, time.March, 10, 10, 0, 0, 0, time.UTC)

	// Ровно за 2 часа - можно
	ok, msg := CheckLeadTime(now.Add(2*time.Hour), now)
	assert.True(t, ok)
	assert.Empty(t, msg)

	// На секунду раньше - нельзя
	ok, msg = CheckLeadTime(now.Add(2*time.Hour-time.Second), now)
	assert.False(t, ok)
	assert.Equal(t, MsgTooSoon, msg)
}

func TestCheckLeadTime_PastStart(t *testing.T) {
	now := time.Date(2026, time.March, 10, 10, 0, 0, 0, time.UTC)

	ok, _ := CheckLeadTime(now.Add(-time.Hour), now)
	assert.False(t, ok)
}

func TestCheckCancellation_GeneralWindow(t *testing.T) {
	now := time.Date(2026, time.March, 10, 10, 0, 0, 0, time.UTC)

	// Ровно за 23 часа - можно
	ok, msg := CheckCancellation(now.Add(23*time.Hour), now, nil, false)
	assert.True(t, ok)
	assert.Empty(t, msg)

	// На секунду позже порога - нельзя
	ok, msg = CheckCancellation(now.Add(23*time.Hour-time.Second), now, nil, false)
	assert.False(t, ok)
	assert.Equal(t, MsgCancellationWindowClosed, msg)
}

func TestCheckCancellation_ReminderGraceBoundary(t *testing.T) {
	reminderAt := time.Date(2026, time.March, 10, 9, 0, 0, 0, time.UTC)
	// Запись через неделю - без напоминания отмена была бы разрешена
	start := reminderAt.Add(7 * 24 * time.Hour)

	// Внутри грейс-окна после напоминания - можно
	ok, _ := CheckCancellation(start, reminderAt.Add(30*time.Minute), ptr.Ptr(reminderAt), false)
	assert.True(t, ok)

	// Ровно на границе окна - ещё можно
	ok, _ = CheckCancellation(start, reminderAt.Add(time.Hour), ptr.Ptr(reminderAt), false)
	assert.True(t, ok)

	// После окна - нельзя, сколько бы времени ни оставалось до записи
	ok, msg := CheckCancellation(start, reminderAt.Add(time.Hour+time.Second), ptr.Ptr(reminderAt), false)
	assert.False(t, ok)
	assert.Equal(t, MsgReminderGraceExpired, msg)
}

func TestCheckCancellation_ElevatedBypassesBothRules(t *testing.T) {
	now := time.Date(2026, time.March, 10, 10, 0, 0, 0, time.UTC)
	reminderAt := now.Add(-2 * time.Hour)

	// За час до начала и с истекшим грейс-окном: бизнесу всё равно можно
	ok, msg := CheckCancellation(now.Add(time.Hour), now, ptr.Ptr(reminderAt), true)
	assert.True(t, ok)
	assert.Empty(t, msg)
}
